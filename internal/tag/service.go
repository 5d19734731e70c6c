package tag

import (
	"context"
	"fmt"
	"strings"

	"blogcms-be/internal/logger"
	"blogcms-be/internal/utils"
	"blogcms-be/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Tag, error)
	Popular(ctx context.Context, limit int) ([]Tag, error)
	Create(ctx context.Context, in CreateInput) (*Tag, error)
}

type service struct {
	repo  Repository
	newID func() string
}

func NewService(repo Repository) Service {
	return &service{repo: repo, newID: uuid.NewString}
}

func (s *service) List(ctx context.Context) ([]Tag, error) {
	return s.repo.List(ctx)
}

// Popular returns tags in use, most used first. Non-positive limits fall
// back to DefaultPopularLimit.
func (s *service) Popular(ctx context.Context, limit int) ([]Tag, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return s.repo.Popular(ctx, limit)
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Tag, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateTag"),
	)

	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		log.Warn("tag validation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	slug := in.Slug
	if slug == "" {
		slug = utils.Slugify(in.Name)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug cannot be derived from name", ErrInvalidInput)
	}

	color := in.Color
	if color == "" {
		color = DefaultColor
	}

	t := &Tag{
		ID:          s.newID(),
		Name:        in.Name,
		Slug:        slug,
		Description: utils.NilIfEmpty(in.Description),
		Color:       color,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	log.Info("tag created", zap.String("tag_id", t.ID), zap.String("slug", t.Slug))
	return t, nil
}
