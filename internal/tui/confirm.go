// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

type confirmModel struct {
	message string
	id      int64
}

func (m confirmModel) View() string {
	content := "Delete allocation " + m.message + "?\n\n"
	content += "y yes    n no"
	return overlayBoxStyle.Render(content)
}
