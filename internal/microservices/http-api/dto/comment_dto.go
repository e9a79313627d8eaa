package dto

import (
	"time"

	"yamdb/internal/microservices/http-api/models"
)

// CreateCommentRequest used for POST .../reviews/:review_id/comments
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateCommentRequest used for PATCH .../comments/:comment_id
type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func NewCommentResponse(c *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:      c.ID,
		Text:    c.Text,
		PubDate: c.PubDate,
	}
	if c.Author != nil {
		resp.Author = c.Author.Username
	}
	return resp
}

func NewCommentResponses(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return out
}
