package models

// explicit join model for Title.Genres, registered with SetupJoinTable
type GenreTitle struct {
	TitleID int64 `json:"title_id" gorm:"primaryKey"`
	GenreID int64 `json:"genre_id" gorm:"primaryKey;index"`

	Title *Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
	Genre *Genre `json:"-" gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE;"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
