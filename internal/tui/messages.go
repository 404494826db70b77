// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-panel-client/internal/cache"
	"github.com/MKhiriev/go-panel-client/models"
)

type snapshotMsg[T any] struct {
	snap cache.Snapshot[T]
}

type subscriptionClosedMsg struct{}

type flashChangedMsg struct{}

type mutationDoneMsg struct {
	id  string
	err error
}

type refreshDoneMsg struct {
	err error
}

type scheduleSavedMsg struct {
	schedule models.Schedule
	err      error
}

type copiedMsg struct {
	text string
}

type copyFailedMsg struct {
	err error
}

type clearStatusMsg struct{}
