package models

import "time"

const (
	RoleGeneral = "general"
	RoleAdmin   = "admin"
)

type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"type:varchar(255);not null" json:"name"`
	Email           string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password        string     `gorm:"type:varchar(255);not null" json:"-"`
	PhoneNumber     string     `gorm:"type:varchar(50)" json:"phone_number"`
	Role            string     `gorm:"type:varchar(20);not null;default:'general'" json:"role"`
	CityID          *uint      `gorm:"index" json:"city_id,omitempty"`
	City            *City      `gorm:"foreignKey:CityID" json:"city,omitempty"`
	ProfileImageURL string     `gorm:"type:varchar(512)" json:"profile_image_url,omitempty"`
	IsDeleted       bool       `gorm:"not null;default:false" json:"is_deleted"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`

	Preferences []UserPreference `gorm:"foreignKey:UserID" json:"preferences,omitempty"`
}

// UserPreference links a user to a minor category they offer services in.
type UserPreference struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"not null;index;uniqueIndex:idx_user_minor" json:"user_id"`
	MinorCategoryID uint          `gorm:"not null;uniqueIndex:idx_user_minor" json:"minor_category_id"`
	MinorCategory   MinorCategory `gorm:"foreignKey:MinorCategoryID" json:"minor_category,omitempty"`
}
