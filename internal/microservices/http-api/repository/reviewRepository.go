package repository

import (
	"context"
	"fmt"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, titleID, reviewID int64) error
	GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	ExistsByAuthorAndTitle(ctx context.Context, authorID string, titleID int64) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create relies on uq_review_author_title; a concurrent duplicate surfaces
// as ErrAlreadyReviewed.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Title").Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", translateError(err, nil))
	}
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ? AND title_id = ?", review.ID, review.TitleID).
		Updates(map[string]interface{}{
			"text":  review.Text,
			"score": review.Score,
		})
	if result.Error != nil {
		return fmt.Errorf("update review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, titleID, reviewID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id IN (?)",
			tx.Model(&models.Review{}).Select("id").Where("id = ? AND title_id = ?", reviewID, titleID),
		).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete review comments: %w", err)
		}
		result := tx.Where("id = ? AND title_id = ?", reviewID, titleID).Delete(&models.Review{})
		if result.Error != nil {
			return fmt.Errorf("delete review: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrReviewNotFound
		}
		return nil
	})
}

func (r *reviewRepository) GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND title_id = ?", reviewID, titleID).
		First(&review).Error; err != nil {
		return nil, translateError(err, ErrReviewNotFound)
	}
	return &review, nil
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("title_id = ?", titleID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ?", titleID).
		Order("id DESC").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *reviewRepository) ExistsByAuthorAndTitle(ctx context.Context, authorID string, titleID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("author_id = ? AND title_id = ?", authorID, titleID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check review: %w", err)
	}
	return count > 0, nil
}
