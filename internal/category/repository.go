package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogcms-be/internal/db"
	"blogcms-be/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectCategory = `
	SELECT
		c.id, c.name, c.slug, c.description, c.parent_id,
		c.color, c.icon, c.sort_order, c.created_at,
		COUNT(a.id) AS article_count
	FROM categories c
	LEFT JOIN articles a ON a.category_id = c.id AND a.status = 'published'
`

func (r *repository) List(ctx context.Context) ([]Category, error) {
	log := logger.FromCtx(ctx)

	query := selectCategory + `
	GROUP BY c.id
	ORDER BY c.sort_order ASC, c.name ASC`

	categories := []Category{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		log.Error("DB query failed ListCategories", zap.Error(err))
		return nil, fmt.Errorf("list categories failed: %w", err)
	}

	log.Debug("ListCategories done", zap.Int("count", len(categories)))
	return categories, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Category, error) {
	return r.getOne(ctx, "c.id", id)
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	return r.getOne(ctx, "c.slug", slug)
}

func (r *repository) getOne(ctx context.Context, column, value string) (*Category, error) {
	query := selectCategory + `
	WHERE ` + column + ` = $1
	GROUP BY c.id`

	var c Category
	err := r.db.GetContext(ctx, &c, query, value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed GetCategory",
			zap.String("column", column),
			zap.String("value", value),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get category failed: %w", err)
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Category) error {
	log := logger.FromCtx(ctx).With(
		zap.String("category_id", c.ID),
		zap.String("slug", c.Slug),
	)

	query := `
		INSERT INTO categories (id, name, slug, description, parent_id, color, icon, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID, c.Name, c.Slug, c.Description, c.ParentID, c.Color, c.Icon, c.SortOrder,
	).Scan(&c.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Warn("CreateCategory slug conflict")
			return ErrSlugTaken
		}
		log.Error("CreateCategory DB query failed", zap.Error(err))
		return fmt.Errorf("create category failed: %w", err)
	}

	log.Info("CreateCategory success")
	return nil
}

func (r *repository) Update(ctx context.Context, c *Category) error {
	log := logger.FromCtx(ctx).With(zap.String("category_id", c.ID))

	query := `
		UPDATE categories
		SET name = :name,
			slug = :slug,
			description = :description,
			parent_id = :parent_id,
			color = :color,
			icon = :icon,
			sort_order = :sort_order
		WHERE id = :id
	`

	res, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Warn("UpdateCategory slug conflict", zap.String("slug", c.Slug))
			return ErrSlugTaken
		}
		log.Error("UpdateCategory DB query failed", zap.Error(err))
		return fmt.Errorf("update category failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category failed: %w", err)
	}
	if n == 0 {
		return ErrCategoryNotFound
	}

	log.Info("UpdateCategory success")
	return nil
}
