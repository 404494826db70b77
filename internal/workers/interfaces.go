// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the panel client: periodic
// revalidation of the cached collections and pruning of old snapshots.
// The Workers aggregate starts and stops every job together.
package workers

import "context"

// Worker is a background job. Start returns immediately; the job runs until
// ctx is cancelled or Stop is called.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Start(ctx context.Context) {
//	    // launch background processing
//	}
//
//	func (w *MyWorker) Stop() {
//	    // cancel and wait
//	}
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
