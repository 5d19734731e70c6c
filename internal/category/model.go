package category

import "time"

const DefaultColor = "#6366f1"

type Category struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	Description  *string   `json:"description,omitempty" db:"description"`
	ParentID     *string   `json:"parent_id,omitempty" db:"parent_id"`
	Color        string    `json:"color" db:"color"`
	Icon         *string   `json:"icon,omitempty" db:"icon"`
	SortOrder    int       `json:"sort_order" db:"sort_order"`
	ArticleCount int       `json:"article_count" db:"article_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Node is a category placed in the tree. Children is never nil.
type Node struct {
	Category
	Children []*Node `json:"children"`
}

// FlatNode is a tree entry with its depth, used for indented lists.
type FlatNode struct {
	Category
	Depth int `json:"depth"`
}

type CreateInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Slug        string  `json:"slug" validate:"omitempty,slug,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ParentID    *string `json:"parent_id"`
	Color       string  `json:"color" validate:"omitempty,hexcolor"`
	Icon        *string `json:"icon" validate:"omitempty,max=50"`
	SortOrder   int     `json:"sort_order" validate:"gte=0"`
}

// UpdateInput carries the mutable fields. Nil fields are left unchanged;
// ClearParent moves the category to the root level.
type UpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,slug,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ParentID    *string `json:"parent_id"`
	ClearParent bool    `json:"clear_parent"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	Icon        *string `json:"icon" validate:"omitempty,max=50"`
	SortOrder   *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

func (in UpdateInput) IsEmpty() bool {
	return in.Name == nil &&
		in.Slug == nil &&
		in.Description == nil &&
		in.ParentID == nil &&
		!in.ClearParent &&
		in.Color == nil &&
		in.Icon == nil &&
		in.SortOrder == nil
}
