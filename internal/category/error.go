package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryCycle    = errors.New("category parent would create a cycle")
	ErrSlugTaken        = errors.New("category slug already exists")
	ErrInvalidInput     = errors.New("invalid category input")
	ErrNothingToUpdate  = errors.New("no category fields to update")
)
