package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogcms-be/internal/auth"
	"blogcms-be/internal/logger"
	"blogcms-be/internal/validation"

	"go.uber.org/zap"
)

type Service interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type service struct {
	repo   Repository
	tokens *auth.TokenManager
	now    func() time.Time
}

func NewService(repo Repository, tokens *auth.TokenManager) Service {
	return &service{repo: repo, tokens: tokens, now: time.Now}
}

// Login verifies credentials and issues an access token. Unknown emails
// and wrong passwords return the same error.
func (s *service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("email", in.Email),
	)

	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	u, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("login rejected: unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(in.Password, u.PasswordHash) {
		log.Info("login rejected: password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID, u.Email, u.Name, u.Role)
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return nil, err
	}

	now := s.now()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		log.Warn("failed to record last login", zap.Error(err))
	} else {
		u.LastLoginAt = &now
	}

	log.Info("login success", zap.String("user_id", u.ID))
	return &LoginResult{Token: token, User: *u}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}
