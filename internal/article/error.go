package article

import "errors"

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrSlugTaken        = errors.New("article slug already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidReference = errors.New("referenced category or tag does not exist")
	ErrNothingToUpdate  = errors.New("nothing to update")
)
