// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	"github.com/Masterminds/squirrel"
)

const snapshotsTable = "snapshots"

var sqlite = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

func buildLoadSnapshotQuery(collection, key string) (string, []any, error) {
	return sqlite.
		Select("payload").
		From(snapshotsTable).
		Where(squirrel.Eq{"collection": collection, "snapshot_key": key}).
		Limit(1).
		ToSql()
}

func buildSaveSnapshotQuery(collection, key string, payload []byte, savedAt time.Time) (string, []any, error) {
	return sqlite.
		Insert(snapshotsTable).
		Columns("collection", "snapshot_key", "payload", "saved_at").
		Values(collection, key, payload, savedAt.UTC()).
		Suffix("ON CONFLICT (collection, snapshot_key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at").
		ToSql()
}

func buildPruneSnapshotsQuery(before time.Time) (string, []any, error) {
	return sqlite.
		Delete(snapshotsTable).
		Where(squirrel.Lt{"saved_at": before.UTC()}).
		ToSql()
}
