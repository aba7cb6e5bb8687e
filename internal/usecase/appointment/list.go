package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barberin/internal/domain/appointment"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/timezone"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

type BarbershopAgendaInput struct {
	CallerID     uint
	BarbershopID uint
	Date         string
	Status       string
}

// ForBarbershop lists a shop's agenda. Only the shop itself may read it.
func (uc *ListAppointments) ForBarbershop(ctx context.Context, in BarbershopAgendaInput) ([]models.Appointment, error) {
	if in.CallerID != in.BarbershopID {
		return nil, httperr.Forbidden("Access denied")
	}

	shop, err := uc.repo.GetBarbershop(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, httperr.NotFound("Barbershop not found")
	}

	var f domain.ListFilter
	if in.Date != "" {
		from, to, err := timezone.DayBounds(in.Date, shop.Timezone)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}
		f.From, f.To = &from, &to
	}
	if in.Status != "" {
		st, ok := domain.ParseStatus(in.Status)
		if !ok {
			return nil, httperr.Invalid("status must be one of: scheduled, cancelled, completed")
		}
		f.Status = st
	}

	return nonNil(uc.repo.ListForBarbershop(ctx, in.BarbershopID, f))
}

func (uc *ListAppointments) ForUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	return nonNil(uc.repo.ListForUser(ctx, userID))
}

func nonNil(aps []models.Appointment, err error) ([]models.Appointment, error) {
	if err != nil {
		return nil, err
	}
	if aps == nil {
		aps = []models.Appointment{}
	}
	return aps, nil
}
