package models

// Category is referenced weakly by Title: deleting one nulls titles.category_id.
type Category struct {
	ID   int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:256;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex:uq_categories_slug;size:50;not null"`
}

func (Category) TableName() string {
	return "categories"
}
