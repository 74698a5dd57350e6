package models

import "time"

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type JobPost struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CityID      uint       `gorm:"not null;index" json:"city_id"`
	City        City       `gorm:"foreignKey:CityID" json:"city,omitempty"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Summary     string     `gorm:"type:text;not null" json:"summary"`
	Fee         float64    `gorm:"type:decimal(5,2);not null" json:"fee"`
	ContactInfo string     `gorm:"type:varchar(100);not null" json:"contact_info"`
	Status      string     `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`

	Categories []JobCategory `gorm:"foreignKey:JobPostID" json:"categories,omitempty"`
}

// JobCategory is the join row between a job post and a minor category.
type JobCategory struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	JobPostID       uint          `gorm:"not null;index;uniqueIndex:idx_job_minor" json:"job_post_id"`
	MinorCategoryID uint          `gorm:"not null;uniqueIndex:idx_job_minor" json:"minor_category_id"`
	MinorCategory   MinorCategory `gorm:"foreignKey:MinorCategoryID" json:"minor_category,omitempty"`
}

func ValidJobStatus(status string) bool {
	return status == JobStatusOpen || status == JobStatusClosed
}
