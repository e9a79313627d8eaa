package service

import (
	"context"
	"testing"

	"yamdb/internal/apperr"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(t *testing.T) (CommentService, *MockCommentRepository, *models.Review) {
	t.Helper()
	reviews := newMemoryReviewRepository()
	review := &models.Review{Text: "r", Score: 5, AuthorID: author.ID, TitleID: 1}
	require.NoError(t, reviews.Create(context.Background(), review))

	comments := new(MockCommentRepository)
	return NewCommentService(comments, reviews), comments, review
}

func TestCreateComment(t *testing.T) {
	svc, comments, review := newCommentFixture(t)

	comments.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.AuthorID == bystander.ID && c.ReviewID == review.ID
	})).Return(nil)

	comment, err := svc.Create(context.Background(), bystander, 1, review.ID, dto.CreateCommentRequest{Text: "agreed"})
	require.NoError(t, err)
	assert.Equal(t, "bystander", comment.Author.Username)

	_, err = svc.Create(context.Background(), nil, 1, review.ID, dto.CreateCommentRequest{Text: "anon"})
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), bystander, 2, review.ID, dto.CreateCommentRequest{Text: "wrong title"})
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)

	_, err = svc.Create(context.Background(), bystander, 1, review.ID, dto.CreateCommentRequest{Text: ""})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDeleteCommentPermissions(t *testing.T) {
	svc, comments, review := newCommentFixture(t)
	written := &models.Comment{ID: 4, Text: "mine", AuthorID: bystander.ID, ReviewID: review.ID}
	comments.On("GetByID", mock.Anything, review.ID, int64(4)).Return(written, nil)
	comments.On("Delete", mock.Anything, review.ID, int64(4)).Return(nil)

	// the review's author is not the comment's author
	assert.ErrorIs(t, svc.Delete(context.Background(), author, 1, review.ID, 4), policy.ErrPermissionDenied)
	assert.NoError(t, svc.Delete(context.Background(), moderator, 1, review.ID, 4))
	assert.NoError(t, svc.Delete(context.Background(), bystander, 1, review.ID, 4))
}
