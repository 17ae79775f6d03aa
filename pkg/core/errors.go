package core

import (
	"errors"
	"fmt"
)

// ErrEntryNotFound is returned when a history entry does not exist.
var ErrEntryNotFound = errors.New("history entry not found")

// ParseError reports a token that is not a valid integer.
type ParseError struct {
	Token    string
	Position int // 1-based token index
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed number %q at position %d", e.Token, e.Position)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InputTooLongError reports raw input longer than MaxInputLength characters.
type InputTooLongError struct {
	Length int
	Limit  int
}

func (e *InputTooLongError) Error() string {
	return fmt.Sprintf("input is %d characters, limit is %d", e.Length, e.Limit)
}

// StorageError reports a failure to persist or read history.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// SerializationError reports a tree that could not be encoded or decoded.
type SerializationError struct {
	Op  string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization: %s: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
