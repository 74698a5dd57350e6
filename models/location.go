package models

type Region struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);unique;not null" json:"name"`

	Cities []City `gorm:"foreignKey:RegionID" json:"cities,omitempty"`
}

type City struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RegionID uint   `gorm:"not null;index" json:"region_id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
}
