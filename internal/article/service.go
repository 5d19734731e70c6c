package article

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"blogcms-be/internal/logger"
	"blogcms-be/internal/utils"
	"blogcms-be/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, f ListFilter) (*ListResult, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*Article, error)
	Get(ctx context.Context, id string) (*Article, error)
	Create(ctx context.Context, authorID string, in CreateInput) (*Article, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Article, error)
	Delete(ctx context.Context, id string) error
	PublishDue(ctx context.Context) (int64, error)
}

type service struct {
	repo  Repository
	newID func() string
	now   func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, newID: uuid.NewString, now: time.Now}
}

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// ReadingTime estimates minutes to read content at 200 words per minute,
// never less than one.
func ReadingTime(content string) int {
	words := len(strings.Fields(htmlTagRegex.ReplaceAllString(content, " ")))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

func normalizeFilter(f ListFilter) ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.TrimSpace(f.Category)
	return f
}

func validStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusScheduled, StatusArchived:
		return true
	}
	return false
}

func (s *service) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	f = normalizeFilter(f)
	if f.Status != "" && !validStatus(f.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, f.Status)
	}

	articles, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Articles:   articles,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: (total + f.Limit - 1) / f.Limit,
	}, nil
}

// GetPublishedBySlug returns a published article and counts the view. A
// failed view update is logged and does not fail the read.
func (s *service) GetPublishedBySlug(ctx context.Context, slug string) (*Article, error) {
	a, err := s.repo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViewCount(ctx, a.ID); err != nil {
		logger.FromCtx(ctx).Warn("failed to increment view count",
			zap.String("article_id", a.ID),
			zap.Error(err),
		)
	} else {
		a.ViewCount++
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, id string) (*Article, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, authorID string, in CreateInput) (*Article, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateArticle"),
		zap.String("author_id", authorID),
	)

	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		log.Warn("article validation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	slug := in.Slug
	if slug == "" {
		slug = utils.Slugify(in.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug cannot be derived from title", ErrInvalidInput)
	}

	status := in.Status
	if status == "" {
		status = StatusDraft
	}
	template := in.Template
	if template == "" {
		template = DefaultTemplate
	}

	now := s.now()
	a := &Article{
		ID:               s.newID(),
		Title:            in.Title,
		Slug:             slug,
		Content:          in.Content,
		Excerpt:          utils.NilIfEmpty(in.Excerpt),
		FeaturedImage:    utils.NilIfEmpty(in.FeaturedImage),
		FeaturedImageAlt: utils.NilIfEmpty(in.FeaturedImageAlt),
		Status:           status,
		AuthorID:         authorID,
		CategoryID:       utils.NilIfEmpty(in.CategoryID),
		MetaTitle:        utils.NilIfEmpty(in.MetaTitle),
		MetaDescription:  utils.NilIfEmpty(in.MetaDescription),
		MetaKeywords:     utils.NilIfEmpty(in.MetaKeywords),
		OGTitle:          utils.NilIfEmpty(in.OGTitle),
		OGDescription:    utils.NilIfEmpty(in.OGDescription),
		OGImage:          utils.NilIfEmpty(in.OGImage),
		ScheduledAt:      in.ScheduledAt,
		ReadingTime:      ReadingTime(in.Content),
		Template:         template,
	}
	if err := applyStatus(a, now); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, a, in.TagIDs); err != nil {
		return nil, err
	}

	log.Info("article created", zap.String("article_id", a.ID), zap.String("status", a.Status))
	return s.repo.GetByID(ctx, a.ID)
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Article, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateArticle"),
		zap.String("article_id", id),
	)

	if in.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	if err := validation.Struct(in); err != nil {
		log.Warn("article validation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		a.Title = title
	}
	if in.Slug != nil {
		a.Slug = *in.Slug
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
		}
		a.Content = *in.Content
		a.ReadingTime = ReadingTime(a.Content)
	}
	setOptional(&a.Excerpt, in.Excerpt)
	setOptional(&a.FeaturedImage, in.FeaturedImage)
	setOptional(&a.FeaturedImageAlt, in.FeaturedImageAlt)
	setOptional(&a.CategoryID, in.CategoryID)
	setOptional(&a.MetaTitle, in.MetaTitle)
	setOptional(&a.MetaDescription, in.MetaDescription)
	setOptional(&a.MetaKeywords, in.MetaKeywords)
	setOptional(&a.OGTitle, in.OGTitle)
	setOptional(&a.OGDescription, in.OGDescription)
	setOptional(&a.OGImage, in.OGImage)
	if in.Template != nil && *in.Template != "" {
		a.Template = *in.Template
	}
	if in.ScheduledAt != nil {
		a.ScheduledAt = in.ScheduledAt
	}
	if in.Status != nil {
		a.Status = *in.Status
	}

	now := s.now()
	if err := applyStatus(a, now); err != nil {
		return nil, err
	}
	a.UpdatedAt = now

	var tagIDs []string
	if in.TagIDs != nil {
		tagIDs = append([]string{}, (*in.TagIDs)...)
	}

	if err := s.repo.Update(ctx, a, tagIDs); err != nil {
		return nil, err
	}

	log.Info("article updated", zap.String("status", a.Status))
	return s.repo.GetByID(ctx, a.ID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("article deleted", zap.String("article_id", id))
	return nil
}

func (s *service) PublishDue(ctx context.Context) (int64, error) {
	return s.repo.PublishDue(ctx, s.now())
}

// applyStatus enforces status rules: scheduled needs a scheduled_at, and
// the first move to published stamps published_at.
func applyStatus(a *Article, now time.Time) error {
	if !validStatus(a.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, a.Status)
	}
	if a.Status == StatusScheduled && a.ScheduledAt == nil {
		return fmt.Errorf("%w: scheduled_at is required for scheduled articles", ErrInvalidInput)
	}
	if a.Status == StatusPublished && a.PublishedAt == nil {
		a.PublishedAt = &now
	}
	return nil
}

func setOptional(dst **string, v *string) {
	if v != nil {
		*dst = utils.NilIfEmpty(v)
	}
}
