package models

import "time"

type Barber struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index;not null" json:"barbershop_id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Specialty string `gorm:"size:100" json:"specialty"`
	Phone     string `gorm:"size:25" json:"phone"`
	PhotoURL  string `gorm:"size:500" json:"photo_url"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
