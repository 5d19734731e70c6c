package category

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

// Service defines the business logic for categories.
type Service interface {
	List(ctx context.Context) ([]Category, error)
	Tree(ctx context.Context) ([]*Node, error)
	ParentOptions(ctx context.Context, excludeID string) ([]FlatNode, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	Create(ctx context.Context, in CreateInput) (*Category, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Category, error)
}

type service struct {
	repo  Repository
	newID func() string
}

func NewService(repo Repository) Service {
	return &service{repo: repo, newID: uuid.NewString}
}

func (s *service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

// Tree rebuilds the category forest from the current rows. Parent cycles
// in stored data are logged; the builder still places every category.
func (s *service) Tree(ctx context.Context) ([]*Node, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Tree"),
	)

	categories, err := s.repo.List(ctx)
	if err != nil {
		log.Error("failed to list categories", zap.Error(err))
		return nil, err
	}

	if cycles := FindCycles(categories); len(cycles) > 0 {
		log.Warn("category parent cycles detected", zap.Any("cycles", cycles))
	}

	return BuildTree(categories), nil
}

func (s *service) ParentOptions(ctx context.Context, excludeID string) ([]FlatNode, error) {
	forest, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return ParentOptions(forest, excludeID), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", in.Name),
	)
	log.Info("Create category started")

	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		log.Warn("category validation failed", zap.Error(err))
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

	parentID := utils.NilIfEmpty(in.ParentID)
	if parentID != nil {
		if _, err := s.repo.GetByID(ctx, *parentID); err != nil {
			log.Warn("parent category lookup failed", zap.String("parent_id", *parentID), zap.Error(err))
			return nil, fmt.Errorf("parent category: %w", err)
		}
	}

	c := &Category{
		ID:          s.newID(),
		Name:        in.Name,
		Slug:        slug,
		Description: utils.NilIfEmpty(in.Description),
		ParentID:    parentID,
		Color:       color,
		Icon:        utils.NilIfEmpty(in.Icon),
		SortOrder:   in.SortOrder,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		log.Error("failed to create category", zap.Error(err))
		return nil, err
	}

	log.Info("Create category success", zap.String("category_id", c.ID))
	return c, nil
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("category_id", id),
	)

	if in.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	if err := validation.Struct(in); err != nil {
		log.Warn("category validation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		c.Name = name
	}
	if in.Slug != nil {
		c.Slug = *in.Slug
	}
	if in.Description != nil {
		c.Description = utils.NilIfEmpty(in.Description)
	}
	if in.Color != nil {
		c.Color = *in.Color
	}
	if in.Icon != nil {
		c.Icon = utils.NilIfEmpty(in.Icon)
	}
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}

	switch {
	case in.ClearParent:
		c.ParentID = nil
	case in.ParentID != nil:
		parentID := utils.NilIfEmpty(in.ParentID)
		if parentID != nil {
			if err := s.checkParent(ctx, id, *parentID); err != nil {
				log.Warn("parent change rejected", zap.String("parent_id", *parentID), zap.Error(err))
				return nil, err
			}
		}
		c.ParentID = parentID
	}

	if err := s.repo.Update(ctx, c); err != nil {
		log.Error("failed to update category", zap.Error(err))
		return nil, err
	}

	log.Info("Update category success")
	return c, nil
}

// checkParent verifies parentID exists and is not id or one of its
// descendants.
func (s *service) checkParent(ctx context.Context, id, parentID string) error {
	if parentID == id {
		return ErrCategoryCycle
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	found := false
	for _, c := range all {
		if c.ID == parentID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("parent category: %w", ErrCategoryNotFound)
	}

	if WouldCreateCycle(all, id, parentID) {
		return ErrCategoryCycle
	}
	return nil
}
