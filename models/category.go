package models

import "time"

type MajorCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);unique;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	MinorCategories []MinorCategory `gorm:"foreignKey:MajorCategoryID" json:"minor_categories,omitempty"`
}

type MinorCategory struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	MajorCategoryID uint      `gorm:"not null;index" json:"major_category_id"`
	Name            string    `gorm:"type:varchar(100);unique;not null" json:"name"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
