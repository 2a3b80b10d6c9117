package entities

import "errors"

var (
	// ErrTimeout is wrapped by every engine error caused by an expired wait.
	ErrTimeout = errors.New("timeout")

	ErrFixtureNotFound = errors.New("fixture not found")
	ErrUnknownEngine   = errors.New("unknown browser engine")
	ErrEmptySelector   = errors.New("empty selector")
)
