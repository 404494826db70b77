// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up           key.Binding
	down         key.Binding
	enter        key.Binding
	esc          key.Binding
	tab          key.Binding
	backtab      key.Binding
	quit         key.Binding
	forceQuit    key.Binding
	refresh      key.Binding
	primary      key.Binding
	edit         key.Binding
	delete       key.Binding
	copy         key.Binding
	newItem      key.Binding
	info         key.Binding
	toggleActive key.Binding
	toggleOnline key.Binding
	yes          key.Binding
	no           key.Binding
}

var keys = keyMap{
	up:           key.NewBinding(key.WithKeys("up", "k")),
	down:         key.NewBinding(key.WithKeys("down", "j")),
	enter:        key.NewBinding(key.WithKeys("enter")),
	esc:          key.NewBinding(key.WithKeys("esc")),
	tab:          key.NewBinding(key.WithKeys("tab")),
	backtab:      key.NewBinding(key.WithKeys("shift+tab")),
	quit:         key.NewBinding(key.WithKeys("q")),
	forceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),
	refresh:      key.NewBinding(key.WithKeys("r")),
	primary:      key.NewBinding(key.WithKeys("p")),
	edit:         key.NewBinding(key.WithKeys("e")),
	delete:       key.NewBinding(key.WithKeys("d")),
	copy:         key.NewBinding(key.WithKeys("c")),
	newItem:      key.NewBinding(key.WithKeys("n")),
	info:         key.NewBinding(key.WithKeys("i")),
	toggleActive: key.NewBinding(key.WithKeys("ctrl+a")),
	toggleOnline: key.NewBinding(key.WithKeys("ctrl+o")),
	yes:          key.NewBinding(key.WithKeys("y")),
	no:           key.NewBinding(key.WithKeys("n")),
}
