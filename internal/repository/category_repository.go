package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/IrinaIzq/To-do-list-app/internal/model"
)

// CategoryRepository defines category persistence operations. Every lookup
// is scoped by the owning user, so a foreign owner's category is
// indistinguishable from an absent one.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error)
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Category, error)
	FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*model.Category, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Category, error)
	CountTasks(ctx context.Context, ownerID, id uuid.UUID) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create persists a new category. A duplicate (owner, name) pair surfaces
// as gorm.ErrDuplicatedKey via the unique index.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update saves all fields of an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes the owner's category and reports how many rows went away.
func (r *categoryRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&model.Category{})
	return res.RowsAffected, res.Error
}

// FindByID finds the owner's category by ID.
func (r *categoryRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", ownerID, id).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName finds the owner's category by exact name.
func (r *categoryRepository) FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ? AND name = ?", ownerID, name).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListByOwner lists the owner's categories in creation order.
func (r *categoryRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).
		Order("created_at").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CountTasks counts tasks still referencing the owner's category.
func (r *categoryRepository) CountTasks(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND category_id = ?", ownerID, id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
