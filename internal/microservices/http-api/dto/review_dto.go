package dto

import (
	"time"

	"yamdb/internal/microservices/http-api/models"
)

// CreateReviewRequest used for POST /api/v1/titles/:title_id/reviews
type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score" binding:"required,score"`
}

// UpdateReviewRequest used for PATCH .../reviews/:review_id
type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" binding:"omitempty,score"`
}

type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func NewReviewResponse(r *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
	if r.Author != nil {
		resp.Author = r.Author.Username
	}
	return resp
}

func NewReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, NewReviewResponse(&reviews[i]))
	}
	return out
}
