package repository

import (
	"context"
	"fmt"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, reviewID, commentID int64) error
	GetByID(ctx context.Context, reviewID, commentID int64) (*models.Comment, error)
	ListByReview(ctx context.Context, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Review").Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", translateError(err, nil))
	}
	return nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND review_id = ?", comment.ID, comment.ReviewID).
		Update("text", comment.Text)
	if result.Error != nil {
		return fmt.Errorf("update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, reviewID, commentID int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND review_id = ?", commentID, reviewID).
		Delete(&models.Comment{})
	if result.Error != nil {
		return fmt.Errorf("delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND review_id = ?", commentID, reviewID).
		First(&comment).Error; err != nil {
		return nil, translateError(err, ErrCommentNotFound)
	}
	return &comment, nil
}

func (r *commentRepository) ListByReview(ctx context.Context, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("review_id = ?", reviewID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("review_id = ?", reviewID).
		Order("id DESC").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&comments).Error; err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	return comments, total, nil
}
