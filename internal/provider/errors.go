// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider implements the HTTP gateway to OpenAI-compatible
// completion backends.
package provider

import "errors"

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents a failed completion attempt. It never crosses
// the Complete boundary; it exists for logging and for tests that
// exercise the request/decode internals directly.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeTransport covers request construction, connection, and
	// non-2xx status failures.
	ErrTypeTransport
	// ErrTypeDecode covers body read failures, unparseable JSON, and
	// responses with no choices.
	ErrTypeDecode
)

// IsTransport reports whether err is a transport-class client error.
func IsTransport(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeTransport
}

// IsDecode reports whether err is a decode-class client error.
func IsDecode(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeDecode
}

// transportError wraps err as a transport-class failure.
func transportError(msg string, err error) *ClientError {
	return &ClientError{Type: ErrTypeTransport, Message: msg, Cause: err}
}

// decodeError wraps err as a decode-class failure.
func decodeError(msg string, err error) *ClientError {
	return &ClientError{Type: ErrTypeDecode, Message: msg, Cause: err}
}
