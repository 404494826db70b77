// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrAllocationNotFound = errors.New("allocation not found")
	ErrPrimaryAllocation  = errors.New("the primary allocation cannot be deleted")
	ErrServiceClosed      = errors.New("service closed")
)
