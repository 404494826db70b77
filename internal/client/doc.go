// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI, the client services, the optional snapshot
// storage and the background jobs into a single process lifecycle.
package client
