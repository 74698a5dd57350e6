package models

import "time"

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RevieweeID uint      `gorm:"not null;index" json:"reviewee_id"`
	Reviewee   User      `gorm:"foreignKey:RevieweeID" json:"reviewee,omitempty"`
	ReviewerID uint      `gorm:"not null;index" json:"reviewer_id"`
	Reviewer   User      `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
