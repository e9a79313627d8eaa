package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
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

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

var (
	author    = &models.User{ID: "author", Username: "author", Role: models.RoleUser, IsActive: true}
	bystander = &models.User{ID: "bystander", Username: "bystander", Role: models.RoleUser, IsActive: true}
	moderator = &models.User{ID: "moderator", Username: "moderator", Role: models.RoleModerator, IsActive: true}
	admin     = &models.User{ID: "admin", Username: "admin", Role: models.RoleAdmin, IsActive: true}
)

func newReviewFixture(t *testing.T) (ReviewService, *memoryReviewRepository, *MockTitleRepository) {
	t.Helper()
	reviews := newMemoryReviewRepository()
	titles := new(MockTitleRepository)
	titles.On("Exists", mock.Anything, int64(1)).Return(true, nil).Maybe()
	titles.On("Exists", mock.Anything, int64(404)).Return(false, nil).Maybe()
	return NewReviewService(reviews, titles), reviews, titles
}

func TestCreateReview(t *testing.T) {
	svc, _, _ := newReviewFixture(t)

	review, err := svc.Create(context.Background(), author, 1, dto.CreateReviewRequest{Text: "Great", Score: intPtr(9)})
	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.Equal(t, author.ID, review.AuthorID)
	assert.Equal(t, "author", review.Author.Username)
	assert.Equal(t, 9, review.Score)
}

func TestCreateReviewValidation(t *testing.T) {
	svc, _, _ := newReviewFixture(t)
	ctx := context.Background()

	for _, score := range []int{0, 11, -3} {
		_, err := svc.Create(ctx, author, 1, dto.CreateReviewRequest{Text: "x", Score: intPtr(score)})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "score %d", score)
	}
	for _, score := range []int{1, 10} {
		_, err := svc.Create(ctx, &models.User{ID: fmt.Sprintf("scorer-%d", score)}, 1, dto.CreateReviewRequest{Text: "x", Score: intPtr(score)})
		assert.NoError(t, err, "score %d", score)
	}

	_, err := svc.Create(ctx, author, 1, dto.CreateReviewRequest{Text: "  ", Score: intPtr(5)})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(ctx, author, 1, dto.CreateReviewRequest{Text: "no score"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateReviewRequiresCallerAndTitle(t *testing.T) {
	svc, _, _ := newReviewFixture(t)

	_, err := svc.Create(context.Background(), nil, 1, dto.CreateReviewRequest{Text: "x", Score: intPtr(5)})
	assert.ErrorIs(t, err, policy.ErrAuthenticationRequired)

	_, err = svc.Create(context.Background(), author, 404, dto.CreateReviewRequest{Text: "x", Score: intPtr(5)})
	assert.ErrorIs(t, err, repository.ErrTitleNotFound)
}

func TestCreateReviewTwiceIsRejected(t *testing.T) {
	svc, reviews, _ := newReviewFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, author, 1, dto.CreateReviewRequest{Text: "first", Score: intPtr(7)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, author, 1, dto.CreateReviewRequest{Text: "second", Score: intPtr(3)})
	assert.ErrorIs(t, err, repository.ErrAlreadyReviewed)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	list, total, err := reviews.ListByTitle(ctx, 1, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "first", list[0].Text)
}

func TestConcurrentReviewCreatesExactlyOneWins(t *testing.T) {
	svc, reviews, _ := newReviewFixture(t)
	ctx := context.Background()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Create(ctx, author, 1, dto.CreateReviewRequest{Text: "race", Score: intPtr(5)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, repository.ErrAlreadyReviewed):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
	_, total, err := reviews.ListByTitle(ctx, 1, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestListReviewsUnknownTitle(t *testing.T) {
	svc, _, _ := newReviewFixture(t)

	_, _, err := svc.List(context.Background(), 404, 1, 20)
	assert.ErrorIs(t, err, repository.ErrTitleNotFound)
}

func TestModifyReviewPermissions(t *testing.T) {
	cases := []struct {
		name    string
		caller  *models.User
		wantErr error
	}{
		{"author", author, nil},
		{"moderator", moderator, nil},
		{"admin", admin, nil},
		{"other user", bystander, policy.ErrPermissionDenied},
		{"anonymous", nil, policy.ErrAuthenticationRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newReviewFixture(t)
			ctx := context.Background()
			review, err := svc.Create(ctx, author, 1, dto.CreateReviewRequest{Text: "orig", Score: intPtr(4)})
			require.NoError(t, err)

			updated, err := svc.Update(ctx, tc.caller, 1, review.ID, dto.UpdateReviewRequest{Score: intPtr(6)})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 6, updated.Score)
				assert.Equal(t, "orig", updated.Text)
			}

			err = svc.Delete(ctx, tc.caller, 1, review.ID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			_, err = svc.Get(ctx, 1, review.ID)
			assert.ErrorIs(t, err, repository.ErrReviewNotFound)
		})
	}
}

func TestUpdateReviewRejectsBadScore(t *testing.T) {
	svc, _, _ := newReviewFixture(t)
	ctx := context.Background()
	review, err := svc.Create(ctx, author, 1, dto.CreateReviewRequest{Text: "orig", Score: intPtr(4)})
	require.NoError(t, err)

	_, err = svc.Update(ctx, author, 1, review.ID, dto.UpdateReviewRequest{Score: intPtr(11)})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Update(ctx, author, 1, review.ID, dto.UpdateReviewRequest{Text: strPtr("")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestReviewUnderAnotherTitleIsNotFound(t *testing.T) {
	svc, _, titles := newReviewFixture(t)
	titles.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	ctx := context.Background()
	review, err := svc.Create(ctx, author, 1, dto.CreateReviewRequest{Text: "orig", Score: intPtr(4)})
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, review.ID)
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, author, 2, review.ID), repository.ErrReviewNotFound)
}
