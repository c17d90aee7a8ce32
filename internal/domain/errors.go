package domain

import "errors"

var (
	// ErrDuplicateKey is returned when a user already owns a command
	// with the same normalized key.
	ErrDuplicateKey = errors.New("command key already exists")

	// ErrCommandNotFound is returned when no command matches the given
	// owner and key.
	ErrCommandNotFound = errors.New("command not found")

	// ErrUnsupportedResponse is returned when a message cannot be used
	// as a command response.
	ErrUnsupportedResponse = errors.New("unsupported response type")
)
