package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"blogcms-be/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectUser = `SELECT id, email, name, role, password_hash, last_login_at, created_at, updated_at FROM users`

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, selectUser+" WHERE LOWER(email) = LOWER($1)", email)
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.getOne(ctx, selectUser+" WHERE id = $1", id)
}

func (r *repository) getOne(ctx context.Context, query string, arg string) (*User, error) {
	var u User
	if err := r.db.GetContext(ctx, &u, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.FromCtx(ctx).Error("db: failed to load user", zap.Error(err))
		return nil, err
	}
	return &u, nil
}

func (r *repository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = $1, updated_at = $1 WHERE id = $2`,
		at, id,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update last login",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
