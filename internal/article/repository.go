package article

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogcms-be/internal/db"
	"blogcms-be/internal/logger"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]Article, int, error)
	GetByID(ctx context.Context, id string) (*Article, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*Article, error)
	// Create inserts a and links tagIDs in one transaction.
	Create(ctx context.Context, a *Article, tagIDs []string) error
	// Update saves a. A nil tagIDs leaves the tag set untouched.
	Update(ctx context.Context, a *Article, tagIDs []string) error
	Delete(ctx context.Context, id string) error
	IncrementViewCount(ctx context.Context, id string) error
	PublishDue(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectArticle = `SELECT a.id, a.title, a.slug, a.content, a.excerpt, a.featured_image,
	a.featured_image_alt, a.status, a.author_id, a.category_id, a.meta_title,
	a.meta_description, a.meta_keywords, a.og_title, a.og_description, a.og_image,
	a.scheduled_at, a.published_at, a.view_count, a.reading_time, a.template,
	a.created_at, a.updated_at, u.name AS author_name, c.name AS category_name
FROM articles a
LEFT JOIN users u ON u.id = a.author_id
LEFT JOIN categories c ON c.id = a.category_id`

const selectTags = `SELECT at.article_id, t.id, t.name, t.slug, t.color
FROM article_tags at
JOIN tags t ON t.id = at.tag_id
WHERE at.article_id = ANY($1)
ORDER BY t.name ASC`

type tagRow struct {
	ArticleID string `db:"article_id"`
	TagRef
}

func whereClause(f ListFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("(c.id = $%d OR c.slug = $%d)", len(args), len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(a.title ILIKE $%d OR a.content ILIKE $%d OR a.excerpt ILIKE $%d)", n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Article, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListArticles"),
		zap.Int("limit", f.Limit),
		zap.Int("page", f.Page),
	)

	where, args := whereClause(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM articles a LEFT JOIN categories c ON c.id = a.category_id` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		log.Error("failed to count articles", zap.Error(err))
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	query := selectArticle + where +
		fmt.Sprintf(" ORDER BY a.created_at DESC, a.id ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, offset)

	articles := []Article{}
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		log.Error("failed to list articles", zap.Error(err))
		return nil, 0, err
	}

	if err := r.attachTags(ctx, r.db, articles); err != nil {
		log.Error("failed to load article tags", zap.Error(err))
		return nil, 0, err
	}

	return articles, total, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Article, error) {
	return r.getOne(ctx, selectArticle+" WHERE a.id = $1", id)
}

func (r *repository) GetPublishedBySlug(ctx context.Context, slug string) (*Article, error) {
	return r.getOne(ctx, selectArticle+" WHERE a.slug = $1 AND a.status = 'published'", slug)
}

func (r *repository) getOne(ctx context.Context, query, arg string) (*Article, error) {
	var a Article
	if err := r.db.GetContext(ctx, &a, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		logger.FromCtx(ctx).Error("db: failed to load article", zap.Error(err))
		return nil, err
	}

	one := []Article{a}
	if err := r.attachTags(ctx, r.db, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (r *repository) attachTags(ctx context.Context, q sqlx.QueryerContext, articles []Article) error {
	if len(articles) == 0 {
		return nil
	}

	ids := make([]string, len(articles))
	pos := make(map[string]int, len(articles))
	for i := range articles {
		ids[i] = articles[i].ID
		pos[articles[i].ID] = i
		articles[i].Tags = []TagRef{}
	}

	var rows []tagRow
	if err := sqlx.SelectContext(ctx, q, &rows, selectTags, pq.Array(ids)); err != nil {
		return err
	}
	for _, row := range rows {
		if i, ok := pos[row.ArticleID]; ok {
			articles[i].Tags = append(articles[i].Tags, row.TagRef)
		}
	}
	return nil
}

func (r *repository) Create(ctx context.Context, a *Article, tagIDs []string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateArticle"),
		zap.String("article_id", a.ID),
	)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO articles (
			id, title, slug, content, excerpt, featured_image, featured_image_alt,
			status, author_id, category_id, meta_title, meta_description, meta_keywords,
			og_title, og_description, og_image, scheduled_at, published_at,
			reading_time, template
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING view_count, created_at, updated_at`,
		a.ID, a.Title, a.Slug, a.Content, a.Excerpt, a.FeaturedImage, a.FeaturedImageAlt,
		a.Status, a.AuthorID, a.CategoryID, a.MetaTitle, a.MetaDescription, a.MetaKeywords,
		a.OGTitle, a.OGDescription, a.OGImage, a.ScheduledAt, a.PublishedAt,
		a.ReadingTime, a.Template,
	).Scan(&a.ViewCount, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		log.Error("failed to insert article", zap.Error(err))
		return mapWriteError(err)
	}

	if len(tagIDs) > 0 {
		if err := replaceTags(ctx, tx, a.ID, tagIDs); err != nil {
			log.Error("failed to link article tags", zap.Error(err))
			return mapWriteError(err)
		}
	}

	return tx.Commit()
}

func (r *repository) Update(ctx context.Context, a *Article, tagIDs []string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateArticle"),
		zap.String("article_id", a.ID),
	)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, `
		UPDATE articles SET
			title = :title, slug = :slug, content = :content, excerpt = :excerpt,
			featured_image = :featured_image, featured_image_alt = :featured_image_alt,
			status = :status, category_id = :category_id, meta_title = :meta_title,
			meta_description = :meta_description, meta_keywords = :meta_keywords,
			og_title = :og_title, og_description = :og_description, og_image = :og_image,
			scheduled_at = :scheduled_at, published_at = :published_at,
			reading_time = :reading_time, template = :template, updated_at = :updated_at
		WHERE id = :id`, a)
	if err != nil {
		log.Error("failed to update article", zap.Error(err))
		return mapWriteError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrArticleNotFound
	}

	if tagIDs != nil {
		if err := replaceTags(ctx, tx, a.ID, tagIDs); err != nil {
			log.Error("failed to replace article tags", zap.Error(err))
			return mapWriteError(err)
		}
	}

	return tx.Commit()
}

// replaceTags makes tagIDs the article's exact tag set and keeps
// tags.usage_count in step with the links added and removed.
func replaceTags(ctx context.Context, tx *sqlx.Tx, articleID string, tagIDs []string) error {
	want := dedupe(tagIDs)

	var current []string
	if err := tx.SelectContext(ctx, &current,
		`SELECT tag_id FROM article_tags WHERE article_id = $1`, articleID,
	); err != nil {
		return err
	}

	added := difference(want, current)
	removed := difference(current, want)

	if len(removed) > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM article_tags WHERE article_id = $1 AND tag_id = ANY($2)`,
			articleID, pq.Array(removed),
		); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE tags SET usage_count = GREATEST(usage_count - 1, 0) WHERE id = ANY($1)`,
			pq.Array(removed),
		); err != nil {
			return err
		}
	}

	if len(added) > 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO article_tags (article_id, tag_id) SELECT $1, UNNEST($2::text[])`,
			articleID, pq.Array(added),
		); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE tags SET usage_count = usage_count + 1 WHERE id = ANY($1)`,
			pq.Array(added),
		); err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE tags SET usage_count = GREATEST(usage_count - 1, 0)
		 WHERE id IN (SELECT tag_id FROM article_tags WHERE article_id = $1)`, id,
	); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to delete article", zap.String("article_id", id), zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrArticleNotFound
	}

	return tx.Commit()
}

func (r *repository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE articles SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

// PublishDue flips scheduled articles whose scheduled_at has passed to
// published and reports how many changed.
func (r *repository) PublishDue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE articles
		SET status = 'published', published_at = COALESCE(published_at, scheduled_at), updated_at = $1
		WHERE status = 'scheduled' AND scheduled_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func mapWriteError(err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return ErrSlugTaken
	case db.IsForeignKeyViolation(err):
		return ErrInvalidReference
	default:
		return err
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// difference returns the members of a missing from b, in a's order.
func difference(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, id := range b {
		in[id] = struct{}{}
	}
	var out []string
	for _, id := range a {
		if _, ok := in[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
