// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when there is no panel
// state to serve or no HTTP address to serve it on. The stub treats it as a
// fatal misconfiguration.
var errNoHandlersAreCreated = errors.New("no handlers are created")
