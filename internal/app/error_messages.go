// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings shared by the panel
// client and the panel stub.
//
// The stub writes them as the "detail" of its error envelope and the client
// shows them in flash messages, so both sides word failures the same way.
package app

const (
	// MsgUnexpected is shown when a failure carries no better description.
	MsgUnexpected = "An unexpected error was encountered while processing this request, please try again."

	// MsgTimedOut is shown when a request to the panel ran past its deadline.
	MsgTimedOut = "The request to the panel timed out."

	// MsgAllocationGone is shown when an edit targets an allocation that is no
	// longer in the cached list.
	MsgAllocationGone = "That allocation no longer exists."

	// MsgServerNotFound is returned for an unknown server identifier.
	MsgServerNotFound = "The requested server could not be found."

	// MsgAllocationNotFound is returned for an unknown allocation identifier.
	MsgAllocationNotFound = "The requested allocation could not be found."

	// MsgScheduleNotFound is returned for an unknown schedule identifier.
	MsgScheduleNotFound = "The requested schedule could not be found."

	// MsgResourceNotFound is returned for malformed identifiers and unknown
	// routes.
	MsgResourceNotFound = "The requested resource could not be found."

	// MsgPrimaryAllocation is returned when deleting the primary allocation.
	MsgPrimaryAllocation = "You cannot delete the primary allocation for this server."

	// MsgNotesTooLong is returned when allocation notes exceed 256 characters.
	MsgNotesTooLong = "The notes may not be greater than 256 characters."

	// MsgNameRequired is returned when a schedule has no name.
	MsgNameRequired = "The name field is required."

	// MsgNameTooLong is returned when a schedule name exceeds 255 characters.
	MsgNameTooLong = "The name may not be greater than 255 characters."

	// MsgScheduleIDInvalid is returned for a negative schedule identifier.
	MsgScheduleIDInvalid = "The schedule id is invalid."

	// MsgInvalidBody is returned when the request body cannot be decoded.
	MsgInvalidBody = "The request body could not be decoded."

	// MsgUnauthenticated is returned when the bearer token is missing or
	// does not match.
	MsgUnauthenticated = "Unauthenticated."

	// MsgTooManyRequests is returned when the rate limit is exceeded.
	MsgTooManyRequests = "Too many requests, please slow down."
)
