// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the mutation coordinators of the panel client.
//
// [AllocationService] turns one user edit of the allocation list into an
// optimistic cache write followed by a remote call. Set-primary failures are
// compensated by a full revalidation of the list; notes failures are only
// reported, so text the user is still typing is never overwritten. Notes
// edits go through a debounce funnel so a burst of keystrokes costs a single
// remote call.
//
// [ScheduleService] saves schedules without optimism and merges the stored
// schedule into the cached list.
//
// Every failure is posted to the flash topic of the page that issued the
// edit. Nothing in this package is fatal to the process.
package service
