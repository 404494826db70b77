// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLoadSnapshotQuery(t *testing.T) {
	query, args, err := buildLoadSnapshotQuery("allocations", "srv-1")

	require.NoError(t, err)
	assert.Equal(t, "SELECT payload FROM snapshots WHERE collection = ? AND snapshot_key = ? LIMIT 1", query)
	assert.Equal(t, []any{"allocations", "srv-1"}, args)
}

func TestBuildSaveSnapshotQuery(t *testing.T) {
	savedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3*3600))

	query, args, err := buildSaveSnapshotQuery("schedules", "srv-1", []byte(`[]`), savedAt)

	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO snapshots (collection,snapshot_key,payload,saved_at) VALUES (?,?,?,?) "+
			"ON CONFLICT (collection, snapshot_key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at",
		query)
	require.Len(t, args, 4)
	assert.Equal(t, "schedules", args[0])
	assert.Equal(t, "srv-1", args[1])
	assert.Equal(t, []byte(`[]`), args[2])
	assert.Equal(t, savedAt.UTC(), args[3])
}

func TestBuildPruneSnapshotsQuery(t *testing.T) {
	before := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := buildPruneSnapshotsQuery(before)

	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM snapshots WHERE saved_at < ?", query)
	assert.Equal(t, []any{before}, args)
}
