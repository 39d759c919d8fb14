package interfaces

import "errors"

// Store-level conditions reported by repositories.
var (
	ErrAlreadyExists   = errors.New("record already exists")
	ErrConditionFailed = errors.New("record condition failed")
)
