package dto

import "yamdb/internal/microservices/http-api/models"

// CreateTitleRequest used for POST /api/v1/titles. Category and genres are
// referenced by slug.
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        *int     `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre" binding:"required,min=1,dive,slug"`
	Category    *string  `json:"category" binding:"omitempty,slug"`
}

// UpdateTitleRequest used for PATCH /api/v1/titles/:title_id
type UpdateTitleRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=256"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre" binding:"omitempty,min=1,dive,slug"`
	Category    *string  `json:"category" binding:"omitempty,slug"`
}

// TitleQuery carries the list filters of GET /api/v1/titles
type TitleQuery struct {
	Category string `form:"category"`
	Genre    string `form:"genre"`
	Name     string `form:"name"`
	Year     *int   `form:"year"`
}

type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func NewTitleResponse(t *models.Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       NewGenreResponses(t.Genres),
	}
	if t.Category != nil {
		category := NewCategoryResponse(t.Category)
		resp.Category = &category
	}
	return resp
}

func NewTitleResponses(titles []models.Title) []TitleResponse {
	out := make([]TitleResponse, 0, len(titles))
	for i := range titles {
		out = append(out, NewTitleResponse(&titles[i]))
	}
	return out
}
