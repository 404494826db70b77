// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import "errors"

var (
	// errStaleRevalidation marks a fetch overtaken by an optimistic write. It
	// only drives the re-issue of the fetch and never leaves the store.
	errStaleRevalidation = errors.New("revalidation overtaken by an optimistic write")

	// ErrStoreClosed is returned by operations on a closed [Store].
	ErrStoreClosed = errors.New("cache store closed")
)
