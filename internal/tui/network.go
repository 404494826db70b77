// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-panel-client/internal/cache"
	"github.com/MKhiriev/go-panel-client/internal/service"
	"github.com/MKhiriev/go-panel-client/models"
)

const notesCharLimit = 256

type networkModel struct {
	snap       cache.Snapshot[models.Allocation]
	idx        int
	refreshing bool

	editing bool
	editID  int64
	notes   textinput.Model
}

func newNetworkModel(snap cache.Snapshot[models.Allocation]) networkModel {
	m := networkModel{}
	m.setSnapshot(snap)
	return m
}

func (m *networkModel) setSnapshot(snap cache.Snapshot[models.Allocation]) {
	m.snap = snap
	if m.idx >= len(snap.Items) {
		m.idx = len(snap.Items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
	if m.editing && indexOf(snap.Items, m.editID) < 0 {
		m.editing = false
	}
}

func (m networkModel) current() (models.Allocation, bool) {
	if m.idx < 0 || m.idx >= len(m.snap.Items) {
		return models.Allocation{}, false
	}
	return m.snap.Items[m.idx], true
}

func (m appModel) updateNetwork(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.network.editing {
		return m.updateNotesEditor(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.network.idx > 0 {
			m.network.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.network.idx < len(m.network.snap.Items)-1 {
			m.network.idx++
		}
	case key.Matches(keyMsg, keys.enter), key.Matches(keyMsg, keys.edit):
		alloc, ok := m.network.current()
		if !ok {
			return m, nil
		}
		m.network.editing = true
		m.network.editID = alloc.ID
		m.network.notes = textinput.New()
		m.network.notes.Placeholder = "notes"
		m.network.notes.CharLimit = notesCharLimit
		m.network.notes.SetValue(alloc.NotesText())
		m.network.notes.CursorEnd()
		return m, m.network.notes.Focus()
	case key.Matches(keyMsg, keys.primary):
		alloc, ok := m.network.current()
		if !ok || alloc.IsDefault {
			return m, nil
		}
		return m, m.cmdWaitMutation(m.deps.allocations.SetPrimary(m.deps.server, alloc.ID))
	case key.Matches(keyMsg, keys.delete):
		alloc, ok := m.network.current()
		if !ok {
			return m, nil
		}
		if alloc.IsDefault {
			m.status = "The primary allocation cannot be deleted."
			return m, cmdClearStatus()
		}
		m.showConfirm = true
		m.confirm = confirmModel{message: allocationAddress(alloc), id: alloc.ID}
	case key.Matches(keyMsg, keys.copy):
		alloc, ok := m.network.current()
		if !ok {
			return m, nil
		}
		return m, cmdCopyToClipboard(allocationAddress(alloc))
	case key.Matches(keyMsg, keys.refresh):
		if m.network.refreshing {
			return m, nil
		}
		m.network.refreshing = true
		return m, m.cmdRefreshAllocations()
	case key.Matches(keyMsg, keys.tab):
		m.currentScreen = screenSchedules
	case key.Matches(keyMsg, keys.info):
		return m.showBuildInfo(), nil
	case key.Matches(keyMsg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	}

	return m, nil
}

// updateNotesEditor forwards keystrokes to the notes input. Every change is
// written through the service, which shows it at once and saves it after the
// typing settles.
func (m appModel) updateNotesEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.esc) || key.Matches(msg, keys.enter) {
		m.network.editing = false
		m.network.notes.Blur()
		return m, nil
	}

	before := m.network.notes.Value()
	var cmd tea.Cmd
	m.network.notes, cmd = m.network.notes.Update(msg)

	if value := m.network.notes.Value(); value != before {
		if err := m.deps.allocations.UpdateNotes(m.deps.server, m.network.editID, value); err != nil {
			if errors.Is(err, service.ErrAllocationNotFound) {
				m.network.editing = false
			}
			m.status = describeError(err)
			return m, tea.Batch(cmd, cmdClearStatus())
		}
	}

	return m, cmd
}

func (m appModel) viewNetwork() string {
	var b strings.Builder
	b.WriteString(renderFlashes(m.deps.flashes.Messages(service.TopicNetwork)))

	snap := m.network.snap
	switch {
	case !snap.HasData() && snap.Err != nil:
		b.WriteString(errorStyle.Render(describeError(snap.Err)))
		b.WriteString("\n")
	case !snap.HasData():
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading allocations...\n")
	case len(snap.Items) == 0:
		b.WriteString("This server has no allocations.\n")
	default:
		for i, alloc := range snap.Items {
			b.WriteString(m.renderAllocationRow(i, alloc))
			b.WriteString("\n")
		}
	}

	if m.network.refreshing {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" Refreshing...")
	} else if m.deps.allocations.Saving(m.deps.server) {
		b.WriteString("\n")
		b.WriteString(pendingStyle.Render("Saving changes..."))
	}

	hotKeys := "↑/↓: select  enter: notes  p: make primary  d: delete  c: copy  r: refresh  tab: schedules  i: about  q: quit"
	if m.network.editing {
		hotKeys = "enter / esc: done editing"
	}

	return renderPage("NETWORK  "+m.deps.server, b.String(), hotKeys)
}

func (m appModel) renderAllocationRow(i int, alloc models.Allocation) string {
	cursor := "  "
	if i == m.network.idx {
		cursor = "> "
	}

	label := "Auxiliary Port"
	if alloc.IsDefault {
		label = primaryStyle.Render("Primary Port  ")
	}

	host := "IP " + fitText(alloc.IP, 15)
	if alloc.HasAlias() {
		host = "Hostname " + fitText(*alloc.Alias, 24)
	}

	notes := helpStyle.Render(fitText(valueOrDash(alloc.NotesText()), 40))
	if m.network.editing && m.network.editID == alloc.ID {
		notes = m.network.notes.View()
	}
	if m.deps.allocations.NotesSaving(m.deps.server, alloc.ID) {
		notes += " " + m.spinner.View()
	}

	row := fmt.Sprintf("%s%s  %-34s port %-6s %s", cursor, label, host, strconv.Itoa(alloc.Port), notes)
	if i == m.network.idx {
		return selectedStyle.Render(row)
	}
	return row
}

// allocationAddress is what the copy action puts on the clipboard.
func allocationAddress(alloc models.Allocation) string {
	return alloc.Address() + ":" + strconv.Itoa(alloc.Port)
}

func indexOf(items []models.Allocation, id int64) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
