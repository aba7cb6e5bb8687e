package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barberin/internal/models"
)

func TestNewAppointmentDTOUsesShopTimezone(t *testing.T) {
	barberID := uint(5)
	ap := models.Appointment{
		ID:           1,
		UserID:       10,
		BarbershopID: 2,
		BarberID:     &barberID,
		StartTime:    time.Date(2026, 3, 3, 15, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 3, 3, 15, 30, 0, 0, time.UTC),
		Status:       "scheduled",
		User:         &models.User{FirstName: "Ana", LastName: "Lopez"},
		Barbershop:   &models.Barbershop{Name: "Corte Fino", Timezone: "America/Bogota"},
		Barber:       &models.Barber{Name: "Leo"},
		Service:      &models.Service{Name: "Haircut", Price: 25000},
	}

	out := NewAppointmentDTO(ap, "UTC")

	assert.Equal(t, "2026-03-03", out.Date)
	assert.Equal(t, "10:00", out.Time)
	assert.Equal(t, "America/Bogota", out.Timezone)
	assert.Equal(t, "Ana Lopez", out.ClientName)
	assert.Equal(t, "Corte Fino", out.BarbershopName)
	assert.Equal(t, "Leo", out.BarberName)
	assert.Equal(t, 25000.0, out.Price)
}

func TestNewAppointmentDTOFallsBack(t *testing.T) {
	ap := models.Appointment{StartTime: time.Date(2026, 3, 3, 23, 30, 0, 0, time.UTC)}

	out := NewAppointmentDTO(ap, "America/Bogota")
	assert.Equal(t, "18:30", out.Time)
	assert.Empty(t, out.ServiceName)

	assert.NotNil(t, NewAppointmentList(nil, "UTC"))
}
