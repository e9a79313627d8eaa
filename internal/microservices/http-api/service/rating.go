package service

import (
	"math"

	"yamdb/internal/microservices/http-api/models"
)

// RoundRating rounds an average score to two decimals, halves away from
// zero. nil stays nil: a title without reviews has no rating.
func RoundRating(avg *float64) *float64 {
	if avg == nil {
		return nil
	}
	rounded := math.Round(*avg*100) / 100
	return &rounded
}

func roundTitleRatings(titles []models.Title) {
	for i := range titles {
		titles[i].Rating = RoundRating(titles[i].Rating)
	}
}
