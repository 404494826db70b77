// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-panel-client/internal/service"
	"github.com/MKhiriev/go-panel-client/models"
)

// Input order of the schedule form.
const (
	fieldName = iota
	fieldMinute
	fieldHour
	fieldDayOfMonth
	fieldMonth
	fieldDayOfWeek
)

var scheduleFieldLabels = []string{"Name", "Minute", "Hour", "Day of month", "Month", "Day of week"}

type scheduleFormModel struct {
	id             int64
	isActive       bool
	onlyWhenOnline bool

	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newScheduleFormModel(in models.ScheduleInput) scheduleFormModel {
	values := []string{in.Name, in.Cron.Minute, in.Cron.Hour, in.Cron.DayOfMonth, in.Cron.Month, in.Cron.DayOfWeek}

	inputs := make([]textinput.Model, len(values))
	for i, v := range values {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = strings.ToLower(scheduleFieldLabels[i])
		inputs[i].SetValue(v)
	}
	inputs[fieldName].CharLimit = 255
	inputs[fieldName].Focus()

	return scheduleFormModel{
		id:             in.ID,
		isActive:       in.IsActive,
		onlyWhenOnline: in.OnlyWhenOnline,
		inputs:         inputs,
	}
}

// toInput collects the form values. Cron fields are passed through as typed.
func (f scheduleFormModel) toInput() models.ScheduleInput {
	return models.ScheduleInput{
		ID:   f.id,
		Name: strings.TrimSpace(f.inputs[fieldName].Value()),
		Cron: models.ScheduleCron{
			Minute:     strings.TrimSpace(f.inputs[fieldMinute].Value()),
			Hour:       strings.TrimSpace(f.inputs[fieldHour].Value()),
			DayOfMonth: strings.TrimSpace(f.inputs[fieldDayOfMonth].Value()),
			Month:      strings.TrimSpace(f.inputs[fieldMonth].Value()),
			DayOfWeek:  strings.TrimSpace(f.inputs[fieldDayOfWeek].Value()),
		},
		IsActive:       f.isActive,
		OnlyWhenOnline: f.onlyWhenOnline,
	}
}

func (f scheduleFormModel) focusNext() scheduleFormModel {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
	return f
}

func (f scheduleFormModel) focusPrev() scheduleFormModel {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
	return f
}

func (m appModel) openScheduleForm(in models.ScheduleInput) (tea.Model, tea.Cmd) {
	m.deps.flashes.Clear(service.TopicScheduleEdit)
	m.scheduleForm = newScheduleFormModel(in)
	m.currentScreen = screenScheduleForm
	return m, textinput.Blink
}

func (m appModel) updateScheduleForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		if m.scheduleForm.submitting {
			return m, nil
		}
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.deps.flashes.Clear(service.TopicScheduleEdit)
			m.currentScreen = screenSchedules
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.scheduleForm = m.scheduleForm.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.scheduleForm = m.scheduleForm.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.toggleActive):
			m.scheduleForm.isActive = !m.scheduleForm.isActive
			return m, nil
		case key.Matches(keyMsg, keys.toggleOnline):
			m.scheduleForm.onlyWhenOnline = !m.scheduleForm.onlyWhenOnline
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			m.scheduleForm.submitting = true
			return m, m.cmdSaveSchedule(m.scheduleForm.toInput())
		}
	}

	var cmd tea.Cmd
	f := &m.scheduleForm
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

func (m appModel) viewScheduleForm() string {
	var b strings.Builder
	b.WriteString(renderFlashes(m.deps.flashes.Messages(service.TopicScheduleEdit)))

	for i, input := range m.scheduleForm.inputs {
		b.WriteString(padLabel(scheduleFieldLabels[i]))
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(padLabel("Enabled"))
	b.WriteString(checkbox(m.scheduleForm.isActive))
	b.WriteString("\n")
	b.WriteString(padLabel("Only when online"))
	b.WriteString(checkbox(m.scheduleForm.onlyWhenOnline))
	b.WriteString("\n")

	if m.scheduleForm.submitting {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" Saving...")
	}

	title := "CREATE SCHEDULE"
	if m.scheduleForm.id != 0 {
		title = "EDIT SCHEDULE"
	}
	return renderPage(title, b.String(), "tab: next field  ctrl+a: enabled  ctrl+o: only when online  enter: save  esc: cancel")
}

func padLabel(label string) string {
	const width = 18
	if len(label) >= width {
		return label + " "
	}
	return label + strings.Repeat(" ", width-len(label))
}

func checkbox(v bool) string {
	if v {
		return "[x]"
	}
	return "[ ]"
}
