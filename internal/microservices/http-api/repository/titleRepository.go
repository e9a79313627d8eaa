package repository

import (
	"context"
	"fmt"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// ratingColumn is the correlated sub-select backing Title.Rating. It yields
// NULL for titles without reviews.
const ratingColumn = "(SELECT AVG(reviews.score)::float8 FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// TitleFilter narrows a title listing. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, title *models.Title, genres []models.Genre) error
	Update(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func applyTitleFilter(q *gorm.DB, filter TitleFilter) *gorm.DB {
	if filter.CategorySlug != "" {
		q = q.Where("titles.category_id IN (SELECT id FROM categories WHERE slug = ?)", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Where("titles.id IN (SELECT genre_titles.title_id FROM genre_titles "+
			"JOIN genres ON genres.id = genre_titles.genre_id WHERE genres.slug = ?)", filter.GenreSlug)
	}
	if filter.Name != "" {
		q = q.Where("titles.name ILIKE ?", containsPattern(filter.Name))
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}
	return q
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var total int64
	if err := applyTitleFilter(r.db.WithContext(ctx).Model(&models.Title{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	var titles []models.Title
	if err := applyTitleFilter(r.db.WithContext(ctx).Model(&models.Title{}), filter).
		Select("titles.*, " + ratingColumn).
		Preload("Category").
		Preload("Genres").
		Order("titles.id DESC").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&titles).Error; err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}
	return titles, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	if err := r.db.WithContext(ctx).
		Select("titles.*, "+ratingColumn).
		Preload("Category").
		Preload("Genres").
		Where("titles.id = ?", id).
		First(&title).Error; err != nil {
		return nil, translateError(err, ErrTitleNotFound)
	}
	return &title, nil
}

func (r *titleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Title{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check title: %w", err)
	}
	return count > 0, nil
}

// Create inserts the title and its genre links in one transaction.
func (r *titleRepository) Create(ctx context.Context, title *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Category", "Genres").Create(title).Error; err != nil {
			return fmt.Errorf("create title: %w", err)
		}
		if err := linkGenres(tx, title.ID, genres); err != nil {
			return err
		}
		title.Genres = genres
		return nil
	})
}

// Update saves the scalar columns. A nil genres slice leaves the links
// untouched; otherwise they are replaced.
func (r *titleRepository) Update(ctx context.Context, title *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Title{}).
			Where("id = ?", title.ID).
			Updates(map[string]interface{}{
				"name":        title.Name,
				"year":        title.Year,
				"description": title.Description,
				"category_id": title.CategoryID,
			})
		if result.Error != nil {
			return fmt.Errorf("update title: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTitleNotFound
		}
		if genres == nil {
			return nil
		}
		if err := tx.Where("title_id = ?", title.ID).Delete(&models.GenreTitle{}).Error; err != nil {
			return fmt.Errorf("unlink title genres: %w", err)
		}
		if err := linkGenres(tx, title.ID, genres); err != nil {
			return err
		}
		title.Genres = genres
		return nil
	})
}

// Delete removes the title with its reviews, their comments, and its genre
// links.
func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviews := tx.Model(&models.Review{}).Select("id").Where("title_id = ?", id)
		if err := tx.Where("review_id IN (?)", reviews).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete title comments: %w", err)
		}
		if err := tx.Where("title_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete title reviews: %w", err)
		}
		if err := tx.Where("title_id = ?", id).Delete(&models.GenreTitle{}).Error; err != nil {
			return fmt.Errorf("unlink title genres: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.Title{})
		if result.Error != nil {
			return fmt.Errorf("delete title: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTitleNotFound
		}
		return nil
	})
}

func linkGenres(tx *gorm.DB, titleID int64, genres []models.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	links := make([]models.GenreTitle, 0, len(genres))
	for _, g := range genres {
		links = append(links, models.GenreTitle{TitleID: titleID, GenreID: g.ID})
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("link title genres: %w", err)
	}
	return nil
}
