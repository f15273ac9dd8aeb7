// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the session middleware when extracting the session
// token from the inbound request. Callers can match against them with
// [errors.Is].
var (
	// ErrNoSessionCookie is returned when the incoming request carries no
	// session cookie at all.
	ErrNoSessionCookie = errors.New("missing session cookie")

	// ErrEmptySessionToken is returned when the session cookie is present
	// but its value is an empty string.
	ErrEmptySessionToken = errors.New("empty session token in cookie")
)
