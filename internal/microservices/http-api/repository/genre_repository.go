package repository

import (
	"context"
	"fmt"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(ctx context.Context, genre *models.Genre) error
	FindBySlug(ctx context.Context, slug string) (*models.Genre, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Genre{})
		if search != "" {
			q = q.Where("name ILIKE ?", containsPattern(search))
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count genres: %w", err)
	}

	var genres []models.Genre
	if err := query().
		Order("id DESC").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&genres).Error; err != nil {
		return nil, 0, fmt.Errorf("list genres: %w", err)
	}
	return genres, total, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		return fmt.Errorf("create genre: %w", translateError(err, nil))
	}
	return nil
}

func (r *genreRepository) FindBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, translateError(err, ErrGenreNotFound)
	}
	return &genre, nil
}

// FindBySlugs returns the genres that exist among slugs. Callers compare the
// result length to detect unknown slugs.
func (r *genreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if len(slugs) == 0 {
		return genres, nil
	}
	if err := r.db.WithContext(ctx).
		Where("slug IN ?", slugs).
		Order("id").
		Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}
	return genres, nil
}

// DeleteBySlug removes a genre and its title links; the titles stay.
func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre models.Genre
		if err := tx.Where("slug = ?", slug).First(&genre).Error; err != nil {
			return translateError(err, ErrGenreNotFound)
		}
		if err := tx.Where("genre_id = ?", genre.ID).Delete(&models.GenreTitle{}).Error; err != nil {
			return fmt.Errorf("unlink genre: %w", err)
		}
		if err := tx.Delete(&genre).Error; err != nil {
			return fmt.Errorf("delete genre: %w", err)
		}
		return nil
	})
}
