package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yamdb/internal/apperr"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/validation"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, req dto.CreateTitleRequest) (*models.Title, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	now          func() time.Time
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		now:          time.Now,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	titles, total, err := s.titleRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	roundTitleRatings(titles)
	return titles, total, nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	title.Rating = RoundRating(title.Rating)
	return title, nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleRequest) (*models.Title, error) {
	if req.Year == nil {
		return nil, apperr.Validation("year", "year is required")
	}
	title := &models.Title{
		Name:        req.Name,
		Year:        *req.Year,
		Description: req.Description,
	}
	if err := s.validate(title); err != nil {
		return nil, err
	}
	if len(req.Genre) == 0 {
		return nil, apperr.Validation("genre", "genre is required")
	}

	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}
	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	if err := s.titleRepo.Create(ctx, title, genres); err != nil {
		return nil, err
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if err := s.validate(title); err != nil {
		return nil, err
	}

	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}
	var genres []models.Genre
	if req.Genre != nil {
		if len(req.Genre) == 0 {
			return nil, apperr.Validation("genre", "genre must not be empty")
		}
		if genres, err = s.resolveGenres(ctx, req.Genre); err != nil {
			return nil, err
		}
	}

	if err := s.titleRepo.Update(ctx, title, genres); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	return s.titleRepo.Delete(ctx, id)
}

// validate checks the title's scalar fields; the year bound uses the clock
// at request time.
func (s *titleService) validate(title *models.Title) error {
	if err := validation.Name("name", title.Name); err != nil {
		return err
	}
	return validation.Year(title.Year, s.now())
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, apperr.Validation("category", fmt.Sprintf("category %q does not exist", slug))
	}
	return category, err
}

// resolveGenres maps slugs onto genres, ignoring duplicates, and rejects the
// first unknown slug.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	unique := make([]string, 0, len(slugs))
	seen := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		unique = append(unique, slug)
	}

	genres, err := s.genreRepo.FindBySlugs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(genres) == len(unique) {
		return genres, nil
	}

	found := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		found[g.Slug] = struct{}{}
	}
	for _, slug := range unique {
		if _, ok := found[slug]; !ok {
			return nil, apperr.Validation("genre", fmt.Sprintf("genre %q does not exist", slug))
		}
	}
	return genres, nil
}
