// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// ErrNotFound indicates a requested record does not exist in storage.
	ErrNotFound = errors.New("not found")

	// ErrInvalidWindow indicates an unsupported signal window string.
	ErrInvalidWindow = errors.New("invalid signal window")
)
