// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared by the panel client and the
// stub panel server: the resty client wrapper, JSON and panel error envelope
// writers, and the UUID generator used for mutation ids.
package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every request of an [HTTPClient].
const UserAgent = "go-panel-client"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent HTTPClient with its own connection
// pool and the client User-Agent preset.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().
//	    SetHeader("Accept", "application/json").
//	    Get("https://panel.example.com/api/client")
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New().SetHeader("User-Agent", UserAgent)}
}
