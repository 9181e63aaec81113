package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/IrinaIzq/To-do-list-app/internal/cache"
	apperrors "github.com/IrinaIzq/To-do-list-app/internal/errors"
	"github.com/IrinaIzq/To-do-list-app/internal/model"
	"github.com/IrinaIzq/To-do-list-app/internal/repository"
)

const categoryListCacheTTL = 5 * time.Minute

// CategoryService handles category lifecycle operations. Category names are
// unique per owner; the repository unique index backstops concurrent
// duplicate creation.
type CategoryService interface {
	Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*model.Category, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Category, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Category, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch CategoryPatch) (*model.Category, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	GetOrCreateByName(ctx context.Context, ownerID uuid.UUID, name string) (*model.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

func (s *categoryService) listCacheKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("categories:%s", ownerID)
}

func (s *categoryService) invalidateList(ctx context.Context, ownerID uuid.UUID) {
	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
}

// Create creates a new category owned by ownerID. Surrounding whitespace is
// trimmed before storing.
func (s *categoryService) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidation("category name is required")
	}

	existing, err := s.repo.FindByName(ctx, ownerID, name)
	if err == nil && existing != nil {
		return nil, apperrors.NewConflict("category already exists")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check category existence: %w", err)
	}

	category := &model.Category{
		ID:          uuid.New(),
		UserID:      ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict("category already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.invalidateList(ctx, ownerID)
	return category, nil
}

// List returns the owner's categories in creation order, cached per owner.
func (s *categoryService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Category, error) {
	if data, _ := s.cache.Get(ctx, s.listCacheKey(ownerID)); data != nil {
		var cached []model.Category
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if payload, err := json.Marshal(categories); err == nil {
		_ = s.cache.Set(ctx, s.listCacheKey(ownerID), payload, categoryListCacheTTL)
	}
	return categories, nil
}

// Get returns the owner's category by id.
func (s *categoryService) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("category not found")
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return category, nil
}

// Update applies a partial update. Omitted fields stay unchanged; an
// explicit null description clears it.
func (s *categoryService) Update(ctx context.Context, ownerID, id uuid.UUID, patch CategoryPatch) (*model.Category, error) {
	category, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name.Set {
		name := strings.TrimSpace(patch.Name.Value)
		if !patch.Name.Valid || name == "" {
			return nil, apperrors.NewValidation("category name cannot be empty")
		}
		if name != category.Name {
			existing, err := s.repo.FindByName(ctx, ownerID, name)
			if err == nil && existing != nil && existing.ID != id {
				return nil, apperrors.NewConflict("category name already exists")
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("check category name: %w", err)
			}
			category.Name = name
		}
	}

	if patch.Description.Set {
		if patch.Description.Valid {
			category.Description = strings.TrimSpace(patch.Description.Value)
		} else {
			category.Description = ""
		}
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict("category name already exists")
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.invalidateList(ctx, ownerID)
	return category, nil
}

// Delete removes the owner's category. Deletion is blocked while tasks
// still reference the category, so no task is ever left dangling.
func (s *categoryService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	count, err := s.repo.CountTasks(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("count category tasks: %w", err)
	}
	if count > 0 {
		return apperrors.NewConflict("category has tasks assigned")
	}

	rows, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("category not found")
	}

	s.invalidateList(ctx, ownerID)
	return nil
}

// GetOrCreateByName looks up the owner's category by name, creating it with
// the auto-created sentinel description when absent. Used by the task
// service when a task names its category instead of referencing an id.
func (s *categoryService) GetOrCreateByName(ctx context.Context, ownerID uuid.UUID, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidation("category name is required")
	}

	category, err := s.repo.FindByName(ctx, ownerID, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find category by name: %w", err)
	}

	category = &model.Category{
		ID:          uuid.New(),
		UserID:      ownerID,
		Name:        name,
		Description: model.AutoCreatedDescription,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a concurrent create race; the winner's row is the one.
			return s.repo.FindByName(ctx, ownerID, name)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.invalidateList(ctx, ownerID)
	return category, nil
}
