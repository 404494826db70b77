// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
)

// Mutation is the handle of one asynchronous edit. It settles after the
// remote call and, on failure, after the compensating action.
type Mutation struct {
	ID string

	done chan struct{}
	once sync.Once
	err  error
}

func newMutation(id string) *Mutation {
	return &Mutation{ID: id, done: make(chan struct{})}
}

func failedMutation(id string, err error) *Mutation {
	m := newMutation(id)
	m.finish(err)
	return m
}

// Done is closed when the mutation has settled.
func (m *Mutation) Done() <-chan struct{} {
	return m.done
}

// Err returns the error of a settled mutation, nil while it is in flight.
func (m *Mutation) Err() error {
	select {
	case <-m.done:
		return m.err
	default:
		return nil
	}
}

// Wait blocks until the mutation settles or ctx is done.
func (m *Mutation) Wait(ctx context.Context) error {
	select {
	case <-m.done:
		return m.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mutation) finish(err error) {
	m.once.Do(func() {
		m.err = err
		close(m.done)
	})
}
