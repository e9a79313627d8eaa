package service

import (
	"context"
	"sync"
	"time"

	"yamdb/internal/mailer"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) Activate(ctx context.Context, userID string, previousLogin *time.Time, at time.Time) (bool, error) {
	args := m.Called(ctx, userID, previousLogin, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

// MockTitleRepository mocks the TitleRepository interface
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTitleRepository) Create(ctx context.Context, title *models.Title, genres []models.Genre) error {
	args := m.Called(ctx, title, genres)
	return args.Error(0)
}

func (m *MockTitleRepository) Update(ctx context.Context, title *models.Title, genres []models.Genre) error {
	args := m.Called(ctx, title, genres)
	return args.Error(0)
}

func (m *MockTitleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *MockGenreRepository) Create(ctx context.Context, genre *models.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreRepository) FindBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, reviewID, commentID int64) error {
	args := m.Called(ctx, reviewID, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByReview(ctx context.Context, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, reviewID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

// memoryReviewRepository enforces one review per (author, title) the way
// uq_review_author_title does, so concurrent creates can be exercised.
type memoryReviewRepository struct {
	mu      sync.Mutex
	nextID  int64
	reviews map[int64]models.Review
}

func newMemoryReviewRepository() *memoryReviewRepository {
	return &memoryReviewRepository{reviews: make(map[int64]models.Review)}
}

func (r *memoryReviewRepository) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.AuthorID == review.AuthorID && existing.TitleID == review.TitleID {
			return repository.ErrAlreadyReviewed
		}
	}
	r.nextID++
	review.ID = r.nextID
	review.PubDate = time.Now()
	r.reviews[review.ID] = *review
	return nil
}

func (r *memoryReviewRepository) Update(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.reviews[review.ID]
	if !ok || existing.TitleID != review.TitleID {
		return repository.ErrReviewNotFound
	}
	existing.Text = review.Text
	existing.Score = review.Score
	r.reviews[review.ID] = existing
	return nil
}

func (r *memoryReviewRepository) Delete(_ context.Context, titleID, reviewID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.reviews[reviewID]
	if !ok || existing.TitleID != titleID {
		return repository.ErrReviewNotFound
	}
	delete(r.reviews, reviewID)
	return nil
}

func (r *memoryReviewRepository) GetByID(_ context.Context, titleID, reviewID int64) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.reviews[reviewID]
	if !ok || existing.TitleID != titleID {
		return nil, repository.ErrReviewNotFound
	}
	return &existing, nil
}

func (r *memoryReviewRepository) ListByTitle(_ context.Context, titleID int64, _, _ int) ([]models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, review := range r.reviews {
		if review.TitleID == titleID {
			out = append(out, review)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryReviewRepository) ExistsByAuthorAndTitle(_ context.Context, authorID string, titleID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.AuthorID == authorID && review.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

// captureSender records every message instead of delivering it.
type captureSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (s *captureSender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *captureSender) messages() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mailer.Message(nil), s.sent...)
}
