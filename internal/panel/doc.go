// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package panel keeps the in-memory game server state served by the stub
// panel: allocations and schedules per server, plus injectable failures so
// that rollbacks and error messages can be exercised end to end.
package panel
