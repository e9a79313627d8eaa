package service

import (
	"context"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/validation"
)

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, req dto.CategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.repo.List(ctx, search, page, pageSize)
}

func (s *categoryService) Create(ctx context.Context, req dto.CategoryRequest) (*models.Category, error) {
	if err := validateNameSlug(req.Name, req.Slug); err != nil {
		return nil, err
	}
	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	return s.repo.DeleteBySlug(ctx, slug)
}

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(ctx context.Context, req dto.GenreRequest) (*models.Genre, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.repo.List(ctx, search, page, pageSize)
}

func (s *genreService) Create(ctx context.Context, req dto.GenreRequest) (*models.Genre, error) {
	if err := validateNameSlug(req.Name, req.Slug); err != nil {
		return nil, err
	}
	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	return s.repo.DeleteBySlug(ctx, slug)
}

func validateNameSlug(name, slug string) error {
	if err := validation.Name("name", name); err != nil {
		return err
	}
	return validation.Slug(slug)
}
