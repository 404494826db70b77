// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

// Status describes where the items of a [Snapshot] come from.
type Status int

const (
	// StatusEmpty means nothing is known about the collection.
	StatusEmpty Status = iota
	// StatusLoading means the first fetch is in flight. Items may hold a
	// snapshot restored from persistence.
	StatusLoading
	// StatusPending means the items include an optimistic write newer than the
	// last authoritative replacement.
	StatusPending
	// StatusCommitted means the items are the last authoritative list.
	StatusCommitted
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusLoading:
		return "loading"
	case StatusPending:
		return "pending"
	case StatusCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of one cached collection. Items is shared
// between every reader of the same generation and must not be modified.
type Snapshot[T any] struct {
	Key        string
	Status     Status
	Generation uint64
	Items      []T
	// Err is the error of the last failed fetch. It is cleared by the next
	// successful replacement.
	Err error
}

// HasData reports whether the snapshot carries a list, possibly empty, that
// can be rendered.
func (s Snapshot[T]) HasData() bool {
	return s.Items != nil || s.Status == StatusPending || s.Status == StatusCommitted
}
