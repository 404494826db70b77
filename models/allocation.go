// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Allocation is a single network allocation (ip:port pair) assigned to a game
// server.
type Allocation struct {
	// ID is the panel-wide allocation identifier. Stable and unique within the
	// allocation list of a server.
	ID int64 `json:"id"`

	// IP is the bound address.
	IP string `json:"ip"`

	// Alias is an optional hostname shown instead of IP when present.
	Alias *string `json:"ip_alias"`

	// Port is the bound port.
	Port int `json:"port"`

	// Notes is free text set by the operator. Nil when never set.
	Notes *string `json:"notes"`

	// IsDefault marks the primary allocation. At most one allocation of a
	// server is primary in any server-confirmed list.
	IsDefault bool `json:"is_default"`
}

// NotesText returns the notes or an empty string.
func (a Allocation) NotesText() string {
	if a.Notes == nil {
		return ""
	}
	return *a.Notes
}

// Address returns the alias when set, otherwise the IP.
func (a Allocation) Address() string {
	if a.Alias != nil && *a.Alias != "" {
		return *a.Alias
	}
	return a.IP
}

// HasAlias reports whether the allocation has a non-empty hostname alias.
func (a Allocation) HasAlias() bool {
	return a.Alias != nil && *a.Alias != ""
}
