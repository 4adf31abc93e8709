package types

import "errors"

// Domain errors for type validation
var (
	ErrEmptyLinkName = errors.New("link names cannot be empty")
	ErrInvalidScore  = errors.New("score must be between 0 and 1")
)
