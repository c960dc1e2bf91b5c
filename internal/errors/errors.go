package errors

import (
	"errors"
	"fmt"
)

// Custom error types for the command catalog application

// ErrCommandNotFound is returned when an id or short id doesn't resolve to a command
var ErrCommandNotFound = errors.New("command not found")

// ErrInvalidAPIKey is returned when the upload API key is missing or wrong
var ErrInvalidAPIKey = errors.New("invalid API key")

// ErrMissingFields is returned when a submission lacks required fields
var ErrMissingFields = errors.New("missing required fields")

// ErrDuplicateName is returned when a submission reuses an existing command name
var ErrDuplicateName = errors.New("a command with this name already exists")

// ErrShortIDGenerationFailed is returned when we can't generate a unique short id
var ErrShortIDGenerationFailed = errors.New("failed to generate unique short id")

// ErrAccessRecordingFailed is returned when persisting an access record fails
type ErrAccessRecordingFailed struct {
	CommandID uint
	Reason    string
}

func (e ErrAccessRecordingFailed) Error() string {
	return fmt.Sprintf("failed to record access for command %d: %s", e.CommandID, e.Reason)
}

// ErrConfigLoad is returned when configuration loading fails
type ErrConfigLoad struct {
	Path   string
	Reason string
}

func (e ErrConfigLoad) Error() string {
	return fmt.Sprintf("failed to load config from %s: %s", e.Path, e.Reason)
}
