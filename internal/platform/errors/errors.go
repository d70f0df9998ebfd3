package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEntryNotFound     = errors.New("log entry not found")
	ErrArchiveNotFound   = errors.New("archived session not found")
	ErrEmptySession      = errors.New("session has no recorded entries")
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrNotRecording      = errors.New("session is not recording")
	ErrKeyNotFound       = errors.New("storage key not found")
)
