package article

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
	StatusArchived  = "archived"

	DefaultTemplate = "default"

	DefaultLimit = 10
	MaxLimit     = 100

	wordsPerMinute = 200
)

type TagRef struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Slug  string `json:"slug" db:"slug"`
	Color string `json:"color" db:"color"`
}

type Article struct {
	ID               string     `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Slug             string     `json:"slug" db:"slug"`
	Content          string     `json:"content" db:"content"`
	Excerpt          *string    `json:"excerpt,omitempty" db:"excerpt"`
	FeaturedImage    *string    `json:"featured_image,omitempty" db:"featured_image"`
	FeaturedImageAlt *string    `json:"featured_image_alt,omitempty" db:"featured_image_alt"`
	Status           string     `json:"status" db:"status"`
	AuthorID         string     `json:"author_id" db:"author_id"`
	CategoryID       *string    `json:"category_id,omitempty" db:"category_id"`
	MetaTitle        *string    `json:"meta_title,omitempty" db:"meta_title"`
	MetaDescription  *string    `json:"meta_description,omitempty" db:"meta_description"`
	MetaKeywords     *string    `json:"meta_keywords,omitempty" db:"meta_keywords"`
	OGTitle          *string    `json:"og_title,omitempty" db:"og_title"`
	OGDescription    *string    `json:"og_description,omitempty" db:"og_description"`
	OGImage          *string    `json:"og_image,omitempty" db:"og_image"`
	ScheduledAt      *time.Time `json:"scheduled_at,omitempty" db:"scheduled_at"`
	PublishedAt      *time.Time `json:"published_at,omitempty" db:"published_at"`
	ViewCount        int        `json:"view_count" db:"view_count"`
	ReadingTime      int        `json:"reading_time" db:"reading_time"`
	Template         string     `json:"template" db:"template"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`

	AuthorName   *string  `json:"author_name,omitempty" db:"author_name"`
	CategoryName *string  `json:"category_name,omitempty" db:"category_name"`
	Tags         []TagRef `json:"tags" db:"-"`
}

// ListFilter narrows List. Category matches a category id or slug.
type ListFilter struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Search   string `form:"search"`
	Limit    int    `form:"limit"`
	Page     int    `form:"page"`
}

type ListResult struct {
	Articles   []Article `json:"articles"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

type CreateInput struct {
	Title            string     `json:"title" validate:"required,max=200"`
	Slug             string     `json:"slug" validate:"omitempty,slug,max=220"`
	Content          string     `json:"content" validate:"required"`
	Excerpt          *string    `json:"excerpt" validate:"omitempty,max=500"`
	FeaturedImage    *string    `json:"featured_image" validate:"omitempty,url"`
	FeaturedImageAlt *string    `json:"featured_image_alt" validate:"omitempty,max=200"`
	Status           string     `json:"status" validate:"omitempty,oneof=draft published scheduled archived"`
	CategoryID       *string    `json:"category_id"`
	MetaTitle        *string    `json:"meta_title" validate:"omitempty,max=70"`
	MetaDescription  *string    `json:"meta_description" validate:"omitempty,max=160"`
	MetaKeywords     *string    `json:"meta_keywords" validate:"omitempty,max=255"`
	OGTitle          *string    `json:"og_title" validate:"omitempty,max=95"`
	OGDescription    *string    `json:"og_description" validate:"omitempty,max=200"`
	OGImage          *string    `json:"og_image" validate:"omitempty,url"`
	ScheduledAt      *time.Time `json:"scheduled_at"`
	Template         string     `json:"template" validate:"omitempty,max=50"`
	TagIDs           []string   `json:"tag_ids" validate:"omitempty,dive,required"`
}

// UpdateInput carries a partial update. An empty CategoryID detaches the
// article from its category; a non-nil TagIDs replaces the tag set.
type UpdateInput struct {
	Title            *string    `json:"title" validate:"omitempty,max=200"`
	Slug             *string    `json:"slug" validate:"omitempty,slug,max=220"`
	Content          *string    `json:"content"`
	Excerpt          *string    `json:"excerpt" validate:"omitempty,max=500"`
	FeaturedImage    *string    `json:"featured_image" validate:"omitempty,url"`
	FeaturedImageAlt *string    `json:"featured_image_alt" validate:"omitempty,max=200"`
	Status           *string    `json:"status" validate:"omitempty,oneof=draft published scheduled archived"`
	CategoryID       *string    `json:"category_id"`
	MetaTitle        *string    `json:"meta_title" validate:"omitempty,max=70"`
	MetaDescription  *string    `json:"meta_description" validate:"omitempty,max=160"`
	MetaKeywords     *string    `json:"meta_keywords" validate:"omitempty,max=255"`
	OGTitle          *string    `json:"og_title" validate:"omitempty,max=95"`
	OGDescription    *string    `json:"og_description" validate:"omitempty,max=200"`
	OGImage          *string    `json:"og_image" validate:"omitempty,url"`
	ScheduledAt      *time.Time `json:"scheduled_at"`
	Template         *string    `json:"template" validate:"omitempty,max=50"`
	TagIDs           *[]string  `json:"tag_ids"`
}

func (in UpdateInput) IsEmpty() bool {
	return in.Title == nil && in.Slug == nil && in.Content == nil && in.Excerpt == nil &&
		in.FeaturedImage == nil && in.FeaturedImageAlt == nil && in.Status == nil &&
		in.CategoryID == nil && in.MetaTitle == nil && in.MetaDescription == nil &&
		in.MetaKeywords == nil && in.OGTitle == nil && in.OGDescription == nil &&
		in.OGImage == nil && in.ScheduledAt == nil && in.Template == nil && in.TagIDs == nil
}
