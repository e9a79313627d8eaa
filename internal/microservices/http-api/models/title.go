package models

import "time"

type Title struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:256;not null;index"`
	Year        int       `json:"year" gorm:"not null;index"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	CategoryID  *int64    `json:"category_id,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// association
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:genre_titles;"`

	// Rating is AVG(reviews.score), only populated by read queries; never stored.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`
}

func (Title) TableName() string {
	return "titles"
}
