// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-panel-client/internal/config"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/utils"
	"github.com/MKhiriev/go-panel-client/models"
	"github.com/go-resty/resty/v2"
)

type httpPanelAdapter struct {
	client *utils.HTTPClient

	apiKey string

	logger *logger.Logger
}

// NewHTTPPanelAdapter constructs a resty implementation of [PanelAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the request timeout and transport retries. Retries apply to
// connection failures, 429 and 5xx responses.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPPanelAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, log *logger.Logger) (PanelAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(adapterCfg.RetryCount).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil || resp == nil {
				return true
			}
			return resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= http.StatusInternalServerError
		})

	h := &httpPanelAdapter{
		client: client,
		apiKey: strings.TrimSpace(appCfg.APIKey),
		logger: log.WithComponent("adapter"),
	}
	client.OnAfterResponse(h.logResponse)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// GetAllocations implements [PanelAdapter] via
// GET /api/client/servers/{server}/network/allocations.
func (h *httpPanelAdapter) GetAllocations(ctx context.Context, server string) ([]models.Allocation, error) {
	var list models.APIList[models.Allocation]

	resp, err := h.authedRequest(ctx).
		SetResult(&list).
		Get(allocationsPath(server))
	if err != nil {
		return nil, fmt.Errorf("get allocations request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return list.Items(), nil
}

// SetPrimaryAllocation implements [PanelAdapter] via
// PUT /api/client/servers/{server}/network/allocations/{id}/primary.
func (h *httpPanelAdapter) SetPrimaryAllocation(ctx context.Context, server string, id int64) error {
	resp, err := h.authedRequest(ctx).
		Put(allocationPath(server, id) + "/primary")
	if err != nil {
		return fmt.Errorf("set primary allocation request: %w", err)
	}

	return mapHTTPError(resp)
}

// SetAllocationNotes implements [PanelAdapter] via
// PATCH /api/client/servers/{server}/network/allocations/{id}/notes.
func (h *httpPanelAdapter) SetAllocationNotes(ctx context.Context, server string, id int64, notes string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.UpdateNotesRequest{Notes: notes}).
		Patch(allocationPath(server, id) + "/notes")
	if err != nil {
		return fmt.Errorf("set allocation notes request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteAllocation implements [PanelAdapter] via
// DELETE /api/client/servers/{server}/network/allocations/{id}.
func (h *httpPanelAdapter) DeleteAllocation(ctx context.Context, server string, id int64) error {
	resp, err := h.authedRequest(ctx).
		Delete(allocationPath(server, id))
	if err != nil {
		return fmt.Errorf("delete allocation request: %w", err)
	}

	return mapHTTPError(resp)
}

// GetSchedules implements [PanelAdapter] via
// GET /api/client/servers/{server}/schedules.
func (h *httpPanelAdapter) GetSchedules(ctx context.Context, server string) ([]models.Schedule, error) {
	var list models.APIList[models.Schedule]

	resp, err := h.authedRequest(ctx).
		SetResult(&list).
		Get(schedulesPath(server))
	if err != nil {
		return nil, fmt.Errorf("get schedules request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return list.Items(), nil
}

// SaveSchedule implements [PanelAdapter]. New schedules are POSTed to
// /api/client/servers/{server}/schedules, existing ones to
// /api/client/servers/{server}/schedules/{id}.
func (h *httpPanelAdapter) SaveSchedule(ctx context.Context, server string, in models.ScheduleInput) (models.Schedule, error) {
	var obj models.APIObject[models.Schedule]

	path := schedulesPath(server)
	if !in.IsNew() {
		path += "/" + strconv.FormatInt(in.ID, 10)
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.NewScheduleRequest(in)).
		SetResult(&obj).
		Post(path)
	if err != nil {
		return models.Schedule{}, fmt.Errorf("save schedule request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Schedule{}, err
	}

	return obj.Attributes, nil
}

func (h *httpPanelAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.apiKey != "" {
		req.SetAuthToken(h.apiKey)
	}
	return req
}

func (h *httpPanelAdapter) logResponse(_ *resty.Client, resp *resty.Response) error {
	h.logger.Debug().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("took", resp.Time()).
		Msg("panel response")
	return nil
}

func allocationsPath(server string) string {
	return "/api/client/servers/" + url.PathEscape(server) + "/network/allocations"
}

func allocationPath(server string, id int64) string {
	return allocationsPath(server) + "/" + strconv.FormatInt(id, 10)
}

func schedulesPath(server string) string {
	return "/api/client/servers/" + url.PathEscape(server) + "/schedules"
}
