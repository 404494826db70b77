// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a snapshot row fails.
	ErrScanningRow = errors.New("failed to scan snapshot row")

	// ErrSnapshotNotSaved is returned when an upsert affects no rows.
	ErrSnapshotNotSaved = errors.New("snapshot was not saved")
)
