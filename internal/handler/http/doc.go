// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST API of the stub panel.
//
// It serves the client endpoints of a single panel (allocations and
// schedules of game servers) from an in-memory [panel.State]. Cross-cutting
// concerns such as API key authentication, request tracing, access logging,
// response compression, artificial latency and rate limiting are handled by
// middleware in this package. Errors are written in the panel envelope
// {"errors":[{"code":...,"status":...,"detail":...}]}.
package http
