// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// FlashType is the severity of a flash message.
type FlashType string

const (
	FlashError   FlashType = "error"
	FlashWarning FlashType = "warning"
	FlashSuccess FlashType = "success"
	FlashInfo    FlashType = "info"
)

// FlashMessage is a user-visible notification posted under a topic key such as
// "server:network" or "schedule:edit".
type FlashMessage struct {
	Key     string
	Type    FlashType
	Title   string
	Message string
}
