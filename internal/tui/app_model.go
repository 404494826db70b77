// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-panel-client/internal/cache"
	"github.com/MKhiriev/go-panel-client/internal/flash"
	"github.com/MKhiriev/go-panel-client/internal/service"
	"github.com/MKhiriev/go-panel-client/models"
)

type screen int

const (
	screenNetwork screen = iota
	screenSchedules
	screenScheduleForm
	screenBuildInfo
)

type appDeps struct {
	server      string
	allocations service.AllocationService
	schedules   service.ScheduleService
	flashes     *flash.Store
	buildInfo   models.AppBuildInfo

	allocationUpdates <-chan cache.Snapshot[models.Allocation]
	scheduleUpdates   <-chan cache.Snapshot[models.Schedule]
}

type appModel struct {
	ctx  context.Context
	deps appDeps

	currentScreen screen
	previous      screen

	network       networkModel
	scheduleList  schedulesModel
	scheduleForm  scheduleFormModel
	spinner       spinner.Model
	showConfirm   bool
	confirm       confirmModel
	status        string
	quitByUser    bool
	updatesClosed bool
}

func newAppModel(ctx context.Context, deps appDeps) appModel {
	return appModel{
		ctx:           ctx,
		deps:          deps,
		currentScreen: screenNetwork,
		network:       newNetworkModel(deps.allocations.Read(deps.server)),
		scheduleList:  newSchedulesModel(deps.schedules.Read(deps.server)),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshot(m.deps.allocationUpdates),
		waitForSnapshot(m.deps.scheduleUpdates),
		waitForFlash(m.deps.flashes.Changes()),
		m.spinner.Tick,
	)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.forceQuit) {
			m.quitByUser = true
			return m, tea.Quit
		}
		if m.showConfirm {
			return m.updateConfirm(msg)
		}
	case snapshotMsg[models.Allocation]:
		m.network.setSnapshot(msg.snap)
		return m, waitForSnapshot(m.deps.allocationUpdates)
	case snapshotMsg[models.Schedule]:
		m.scheduleList.setSnapshot(msg.snap)
		return m, waitForSnapshot(m.deps.scheduleUpdates)
	case subscriptionClosedMsg:
		m.updatesClosed = true
		return m, nil
	case flashChangedMsg:
		return m, waitForFlash(m.deps.flashes.Changes())
	case mutationDoneMsg:
		// failures are already on the flash channel
		return m, nil
	case refreshDoneMsg:
		m.network.refreshing = false
		m.scheduleList.refreshing = false
		return m, nil
	case scheduleSavedMsg:
		m.scheduleForm.submitting = false
		if msg.err != nil {
			return m, nil
		}
		m.currentScreen = screenSchedules
		m.status = "Schedule \"" + msg.schedule.Name + "\" saved."
		return m, cmdClearStatus()
	case copiedMsg:
		m.status = "Copied " + msg.text + " to the clipboard."
		return m, cmdClearStatus()
	case copyFailedMsg:
		m.status = describeError(msg.err)
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenNetwork:
		return m.updateNetwork(msg)
	case screenSchedules:
		return m.updateSchedules(msg)
	case screenScheduleForm:
		return m.updateScheduleForm(msg)
	case screenBuildInfo:
		return m.updateBuildInfo(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenNetwork:
		body = m.viewNetwork()
	case screenSchedules:
		body = m.viewSchedules()
	case screenScheduleForm:
		body = m.viewScheduleForm()
	case screenBuildInfo:
		body = renderBuildInfoWindow(m.deps.buildInfo)
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.status != "" {
		body += "\n\n  " + m.status
	}

	return appStyle.Render(body)
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.showConfirm = false
		mutation := m.deps.allocations.Delete(m.deps.server, m.confirm.id)
		return m, m.cmdWaitMutation(mutation)
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		m.showConfirm = false
	}
	return m, nil
}

func (m appModel) updateBuildInfo(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(keyMsg, keys.esc) || key.Matches(keyMsg, keys.enter) {
		m.currentScreen = m.previous
	}
	return m, nil
}

func (m appModel) showBuildInfo() appModel {
	m.previous = m.currentScreen
	m.currentScreen = screenBuildInfo
	return m
}
