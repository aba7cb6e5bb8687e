package models

import "time"

type User struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	FirstName       string  `gorm:"size:100;not null" json:"first_name"`
	LastName        string  `gorm:"size:100;not null" json:"last_name"`
	Email           string  `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Phone           string  `gorm:"size:25" json:"phone"`
	PasswordHash    string  `gorm:"size:255" json:"-"`
	Address         string  `gorm:"size:255" json:"address"`
	AgeRange        string  `gorm:"size:20" json:"age_range"`
	ProfilePhotoURL string  `gorm:"size:500" json:"profile_photo_url"`
	GoogleID        *string `gorm:"size:64;uniqueIndex" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
