package dto

import "yamdb/internal/microservices/http-api/models"

// CategoryRequest used for POST /api/v1/categories
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50,slug"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}

func NewCategoryResponses(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryResponse(&categories[i]))
	}
	return out
}

// GenreRequest used for POST /api/v1/genres
type GenreRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50,slug"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func NewGenreResponse(g *models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}

func NewGenreResponses(genres []models.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for i := range genres {
		out = append(out, NewGenreResponse(&genres[i]))
	}
	return out
}
