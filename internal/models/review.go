package models

import "time"

type Review struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"uniqueIndex:idx_review_user_shop;not null" json:"user_id"`
	BarbershopID uint   `gorm:"uniqueIndex:idx_review_user_shop;index;not null" json:"barbershop_id"`
	Rating       int    `gorm:"not null" json:"rating"`
	Comment      string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
