// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache implements the local cache store of remote-owned collections.
//
// A [Store] holds the latest known snapshot of each collection, addressed by a
// stable key such as a server UUID. Snapshots change in exactly two ways:
//
//   - [Store.OptimisticWrite] applies a transform synchronously and notifies
//     subscribers without contacting the source of truth;
//   - [Store.Revalidate] fetches the authoritative list and replaces the
//     snapshot.
//
// Every replacement increments the entry generation. A revalidation remembers
// the generation it observed before fetching; if an optimistic write happened
// while the fetch was in flight, the result is discarded and the revalidation
// is re-issued, so a late response never clobbers a newer local edit.
//
// Entries are created by the first [Store.Subscribe] for a key and evicted a
// configurable delay after the last subscription is closed.
package cache
