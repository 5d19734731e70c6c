package tag

import (
	"context"

	"blogcms-be/internal/db"
	"blogcms-be/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Tag, error)
	Popular(ctx context.Context, limit int) ([]Tag, error)
	Create(ctx context.Context, t *Tag) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectTag = `SELECT id, name, slug, description, color, usage_count, created_at FROM tags`

func (r *repository) List(ctx context.Context) ([]Tag, error) {
	tags := []Tag{}
	err := r.db.SelectContext(ctx, &tags, selectTag+" ORDER BY usage_count DESC, name ASC")
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list tags", zap.Error(err))
		return nil, err
	}
	return tags, nil
}

func (r *repository) Popular(ctx context.Context, limit int) ([]Tag, error) {
	tags := []Tag{}
	err := r.db.SelectContext(ctx, &tags,
		selectTag+" WHERE usage_count > 0 ORDER BY usage_count DESC, name ASC LIMIT $1",
		limit,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list popular tags", zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}
	return tags, nil
}

func (r *repository) Create(ctx context.Context, t *Tag) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO tags (id, name, slug, description, color)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING usage_count, created_at`,
		t.ID, t.Name, t.Slug, t.Description, t.Color,
	).Scan(&t.UsageCount, &t.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrSlugTaken
		}
		logger.FromCtx(ctx).Error("db: failed to insert tag", zap.String("slug", t.Slug), zap.Error(err))
		return err
	}
	return nil
}
