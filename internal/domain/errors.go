package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEmptyQuery     = errors.New("empty query")
	ErrNoSession      = errors.New("no active session")
)
