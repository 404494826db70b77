// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package panel

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrServerNotFound     = errors.New("server not found")
	ErrAllocationNotFound = errors.New("allocation not found")
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrPrimaryAllocation  = errors.New("cannot delete the primary allocation")
)

// Failure is an injected error response.
type Failure struct {
	Status int
	Code   string
	Detail string
}

func (f Failure) Error() string {
	return fmt.Sprintf("injected failure: http %d: %s", f.Status, f.Detail)
}

// InternalFailure is the failure a crashed panel would produce.
func InternalFailure() Failure {
	return Failure{Status: http.StatusInternalServerError, Code: "InternalServerErrorHttpException"}
}
