// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-panel-client/internal/cache"
	"github.com/MKhiriev/go-panel-client/internal/service"
	"github.com/MKhiriev/go-panel-client/models"
)

const statusTTL = 2 * time.Second

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func waitForSnapshot[T any](updates <-chan cache.Snapshot[T]) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return subscriptionClosedMsg{}
		}
		return snapshotMsg[T]{snap: snap}
	}
}

func waitForFlash(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return flashChangedMsg{}
	}
}

// cmdWaitMutation reports when the mutation settles. The wait is bound to the
// view context only; the mutation itself keeps running after the view quits.
func (m appModel) cmdWaitMutation(mutation *service.Mutation) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		err := mutation.Wait(ctx)
		return mutationDoneMsg{id: mutation.ID, err: err}
	}
}

func (m appModel) cmdRefreshAllocations() tea.Cmd {
	ctx, svc, server := m.ctx, m.deps.allocations, m.deps.server
	return func() tea.Msg {
		return refreshDoneMsg{err: svc.Refresh(ctx, server)}
	}
}

func (m appModel) cmdRefreshSchedules() tea.Cmd {
	ctx, svc, server := m.ctx, m.deps.schedules, m.deps.server
	return func() tea.Msg {
		return refreshDoneMsg{err: svc.Refresh(ctx, server)}
	}
}

func (m appModel) cmdSaveSchedule(in models.ScheduleInput) tea.Cmd {
	ctx, svc, server := m.ctx, m.deps.schedules, m.deps.server
	return func() tea.Msg {
		saved, err := svc.Save(ctx, server, in)
		return scheduleSavedMsg{schedule: saved, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return copyFailedMsg{err: err}
		}
		return copiedMsg{text: text}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
