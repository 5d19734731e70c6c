package tag

import "errors"

var (
	ErrTagNotFound  = errors.New("tag not found")
	ErrSlugTaken    = errors.New("tag slug already exists")
	ErrInvalidInput = errors.New("invalid input")
)
