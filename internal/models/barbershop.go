package models

import "time"

type Barbershop struct {
	ID                uint     `gorm:"primaryKey" json:"id"`
	Name              string   `gorm:"size:100;not null" json:"name"`
	Email             string   `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash      string   `gorm:"size:255;not null" json:"-"`
	Phone             string   `gorm:"size:25" json:"phone"`
	Address           string   `gorm:"size:255" json:"address"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	ResponsiblePerson string   `gorm:"size:100" json:"responsible_person"`
	IDDocument        string   `gorm:"size:50" json:"id_document"`
	OwnerPhone        string   `gorm:"size:25" json:"owner_phone"`
	Description       string   `gorm:"type:text" json:"description"`
	ProfilePhotoURL   string   `gorm:"size:500" json:"profile_photo_url"`
	CoverPhotoURL     string   `gorm:"size:500" json:"cover_photo_url"`
	Timezone          string   `gorm:"size:64;default:'America/Bogota'" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BarbershopWithDistance is a radius search hit.
type BarbershopWithDistance struct {
	Barbershop
	DistanceKm *float64 `json:"distance_km,omitempty"`
}
