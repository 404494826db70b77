// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-panel-client/internal/cache"
	"github.com/MKhiriev/go-panel-client/models"
)

type schedulesModel struct {
	snap       cache.Snapshot[models.Schedule]
	idx        int
	refreshing bool
}

func newSchedulesModel(snap cache.Snapshot[models.Schedule]) schedulesModel {
	m := schedulesModel{}
	m.setSnapshot(snap)
	return m
}

func (m *schedulesModel) setSnapshot(snap cache.Snapshot[models.Schedule]) {
	m.snap = snap
	if m.idx >= len(snap.Items) {
		m.idx = len(snap.Items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m schedulesModel) current() (models.Schedule, bool) {
	if m.idx < 0 || m.idx >= len(m.snap.Items) {
		return models.Schedule{}, false
	}
	return m.snap.Items[m.idx], true
}

func (m appModel) updateSchedules(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.scheduleList.idx > 0 {
			m.scheduleList.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.scheduleList.idx < len(m.scheduleList.snap.Items)-1 {
			m.scheduleList.idx++
		}
	case key.Matches(keyMsg, keys.newItem):
		return m.openScheduleForm(models.DefaultScheduleInput())
	case key.Matches(keyMsg, keys.enter), key.Matches(keyMsg, keys.edit):
		schedule, ok := m.scheduleList.current()
		if !ok {
			return m, nil
		}
		return m.openScheduleForm(models.ScheduleInputFrom(schedule))
	case key.Matches(keyMsg, keys.refresh):
		if m.scheduleList.refreshing {
			return m, nil
		}
		m.scheduleList.refreshing = true
		return m, m.cmdRefreshSchedules()
	case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenNetwork
	case key.Matches(keyMsg, keys.info):
		return m.showBuildInfo(), nil
	case key.Matches(keyMsg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	}

	return m, nil
}

func (m appModel) viewSchedules() string {
	var b strings.Builder

	snap := m.scheduleList.snap
	switch {
	case !snap.HasData() && snap.Err != nil:
		b.WriteString(errorStyle.Render(describeError(snap.Err)))
		b.WriteString("\n")
	case !snap.HasData():
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading schedules...\n")
	case len(snap.Items) == 0:
		b.WriteString("There are no schedules configured for this server.\n")
	default:
		for i, s := range snap.Items {
			cursor := "  "
			if i == m.scheduleList.idx {
				cursor = "> "
			}
			row := fmt.Sprintf("%s%-28s %-22s %-8s next run: %s",
				cursor, fitText(s.Name, 28), cronExpression(s.Cron), activeLabel(s.IsActive), formatRunTime(s.NextRunAt))
			if i == m.scheduleList.idx {
				row = selectedStyle.Render(row)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	if m.scheduleList.refreshing {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" Refreshing...")
	}

	return renderPage("SCHEDULES  "+m.deps.server, b.String(),
		"↑/↓: select  n: new  enter: edit  r: refresh  tab: network  i: about  q: quit")
}

func cronExpression(c models.ScheduleCron) string {
	return strings.Join([]string{c.Minute, c.Hour, c.DayOfMonth, c.Month, c.DayOfWeek}, " ")
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func formatRunTime(t *time.Time) string {
	if t == nil {
		return "n/a"
	}
	return t.Local().Format("2006-01-02 15:04")
}
