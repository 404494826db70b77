// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-panel-client/internal/adapter"
)

const msgPanelUnreachable = "No network connection or the panel is unreachable."

// describeError turns a fetch or edit error into a single display line.
func describeError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") {
		return msgPanelUnreachable
	}

	return adapter.HumanMessage(err)
}
