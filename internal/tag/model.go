package tag

import "time"

const (
	DefaultColor        = "#6366f1"
	DefaultPopularLimit = 10
)

type Tag struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description,omitempty" db:"description"`
	Color       string    `json:"color" db:"color"`
	UsageCount  int       `json:"usage_count" db:"usage_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateInput struct {
	Name        string  `json:"name" validate:"required,max=50"`
	Slug        string  `json:"slug" validate:"omitempty,slug,max=60"`
	Description *string `json:"description"`
	Color       string  `json:"color" validate:"omitempty,hexcolor"`
}
