package tag

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tagColumns = []string{"id", "name", "slug", "description", "color", "usage_count", "created_at"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM tags ORDER BY usage_count DESC, name ASC`).
			WillReturnRows(sqlmock.NewRows(tagColumns).
				AddRow("t-1", "Go", "go", nil, "#00add8", 7, now).
				AddRow("t-2", "Rust", "rust", "Systems", "#6366f1", 0, now))

		tags, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, 7, tags[0].UsageCount)
		assert.Equal(t, "Systems", *tags[1].Description)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM tags`).WillReturnError(errors.New("db error"))

		_, err := repo.List(context.Background())
		assert.Error(t, err)
	})
}

func TestRepository_Popular(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM tags WHERE usage_count > 0 .* LIMIT \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(tagColumns))

	tags, err := repo.Popular(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	tg := &Tag{ID: "t-1", Name: "Go", Slug: "go", Color: DefaultColor}

	t.Run("Success", func(t *testing.T) {
		created := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
		mock.ExpectQuery(`INSERT INTO tags`).
			WithArgs("t-1", "Go", "go", nil, DefaultColor).
			WillReturnRows(sqlmock.NewRows([]string{"usage_count", "created_at"}).AddRow(0, created))

		require.NoError(t, repo.Create(context.Background(), tg))
		assert.Equal(t, created, tg.CreatedAt)
	})

	t.Run("SlugTaken", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO tags`).WillReturnError(&pq.Error{Code: "23505"})

		assert.ErrorIs(t, repo.Create(context.Background(), tg), ErrSlugTaken)
	})
}
