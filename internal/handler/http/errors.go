// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrInvalidRequestBody is returned when a commit request body is not a
// JSON encoded change record.
var ErrInvalidRequestBody = errors.New("invalid request body")
