package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barberin/internal/models"
)

// ListFilter narrows a barbershop's agenda. Zero values mean no filter.
type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Status Status
}

// Repository finders return (nil, nil) when nothing matches.
type Repository interface {
	// -------- Lookups --------
	GetBarbershop(ctx context.Context, id uint) (*models.Barbershop, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error)
	GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.Barber, error)

	// CreateIfFree inserts ap unless it overlaps a scheduled appointment of
	// the same barber, or of the same user when no barber is set. The check
	// and the insert happen in one transaction.
	CreateIfFree(ctx context.Context, ap *models.Appointment) error

	// -------- State --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Listings --------
	ListForBarbershop(ctx context.Context, barbershopID uint, f ListFilter) ([]models.Appointment, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Appointment, error)
}
