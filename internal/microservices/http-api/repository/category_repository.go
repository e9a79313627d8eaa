package repository

import (
	"context"
	"fmt"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, category *models.Category) error
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Category{})
		if search != "" {
			q = q.Where("name ILIKE ?", containsPattern(search))
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	var categories []models.Category
	if err := query().
		Order("id DESC").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&categories).Error; err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	return categories, total, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", translateError(err, nil))
	}
	return nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, translateError(err, ErrCategoryNotFound)
	}
	return &category, nil
}

// DeleteBySlug removes a category; titles that referenced it keep existing
// with no category.
func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("slug = ?", slug).First(&category).Error; err != nil {
			return translateError(err, ErrCategoryNotFound)
		}
		if err := tx.Model(&models.Title{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach titles from category: %w", err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}
