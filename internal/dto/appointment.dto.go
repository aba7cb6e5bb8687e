package dto

import (
	"time"

	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/timezone"
)

// AppointmentDTO is an appointment as shown to clients: instants in UTC
// plus the local date and time in the barbershop's timezone.
type AppointmentDTO struct {
	ID           uint       `json:"id"`
	UserID       uint       `json:"user_id"`
	BarbershopID uint       `json:"barbershop_id"`
	BarberID     *uint      `json:"barber_id"`
	ServiceID    uint       `json:"service_id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Timezone     string     `json:"timezone"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`

	ClientName     string  `json:"client_name,omitempty"`
	BarbershopName string  `json:"barbershop_name,omitempty"`
	BarberName     string  `json:"barber_name,omitempty"`
	ServiceName    string  `json:"service_name,omitempty"`
	Price          float64 `json:"price,omitempty"`
}

// NewAppointmentDTO flattens ap and whatever relations are loaded.
// fallbackTZ applies when the barbershop is not loaded.
func NewAppointmentDTO(ap models.Appointment, fallbackTZ string) AppointmentDTO {
	tz := fallbackTZ
	if ap.Barbershop != nil && ap.Barbershop.Timezone != "" {
		tz = ap.Barbershop.Timezone
	}
	local := ap.StartTime.In(timezone.Location(tz))

	out := AppointmentDTO{
		ID:           ap.ID,
		UserID:       ap.UserID,
		BarbershopID: ap.BarbershopID,
		BarberID:     ap.BarberID,
		ServiceID:    ap.ServiceID,
		StartTime:    ap.StartTime.UTC(),
		EndTime:      ap.EndTime.UTC(),
		Date:         local.Format(timezone.DateLayout),
		Time:         local.Format(timezone.TimeLayout),
		Timezone:     local.Location().String(),
		Status:       ap.Status,
		Notes:        ap.Notes,
		CancelledAt:  ap.CancelledAt,
		CompletedAt:  ap.CompletedAt,
	}

	if ap.User != nil {
		out.ClientName = ap.User.FirstName + " " + ap.User.LastName
	}
	if ap.Barbershop != nil {
		out.BarbershopName = ap.Barbershop.Name
	}
	if ap.Barber != nil {
		out.BarberName = ap.Barber.Name
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
		out.Price = ap.Service.Price
	}
	return out
}

func NewAppointmentList(aps []models.Appointment, fallbackTZ string) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, NewAppointmentDTO(ap, fallbackTZ))
	}
	return out
}
