package service

import (
	"context"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/validation"
)

type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, caller *models.User, titleID, reviewID int64, req dto.CreateCommentRequest) (*models.Comment, error)
	Update(ctx context.Context, caller *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, caller *models.User, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// ensureReview checks that reviewID belongs to titleID.
func (s *commentService) ensureReview(ctx context.Context, titleID, reviewID int64) error {
	_, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	return err
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, reviewID, commentID)
}

func (s *commentService) Create(ctx context.Context, caller *models.User, titleID, reviewID int64, req dto.CreateCommentRequest) (*models.Comment, error) {
	if caller == nil {
		return nil, policy.ErrAuthenticationRequired
	}
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	if err := validation.Text("text", req.Text); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     req.Text,
		AuthorID: caller.ID,
		ReviewID: reviewID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = caller
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, caller *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanModifyAuthored(caller, comment.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		if err := validation.Text("text", *req.Text); err != nil {
			return nil, err
		}
		comment.Text = *req.Text
	}
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, caller *models.User, titleID, reviewID, commentID int64) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := policy.CanModifyAuthored(caller, comment.AuthorID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, reviewID, commentID)
}
