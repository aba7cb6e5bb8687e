package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barberin/internal/auth"
	domain "github.com/BruksfildServices01/barberin/internal/domain/appointment"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/metrics"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/service"
	"github.com/BruksfildServices01/barberin/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID       uint
	BarbershopID uint
	ServiceID    uint
	BarberID     *uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit Auditor
	now   func() time.Time
}

func NewCreateAppointment(repo domain.Repository, audit Auditor, now func() time.Time) *CreateAppointment {
	return &CreateAppointment{repo: repo, audit: audit, now: defaultClock(now)}
}

func (uc *CreateAppointment) Execute(ctx context.Context, in CreateAppointmentInput) (*models.Appointment, error) {
	// 1. barbershop
	shop, err := uc.repo.GetBarbershop(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, httperr.NotFound("Barbershop not found")
	}

	// 2. date and time in the shop's timezone
	start, err := timezone.ParseLocal(in.Date, in.Time, shop.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if !start.After(uc.now()) {
		return nil, httperr.ErrBusiness("in_the_past")
	}

	// 3. service and barber must belong to the shop
	svc, err := uc.repo.GetService(ctx, shop.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if in.BarberID != nil {
		barber, err := uc.repo.GetBarber(ctx, shop.ID, *in.BarberID)
		if err != nil {
			return nil, err
		}
		if barber == nil || !barber.Active {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
	}

	duration := svc.DurationMin
	if duration <= 0 {
		duration = service.DefaultServiceDuration
	}

	// 4. conflict check and insert
	ap := &models.Appointment{
		UserID:       in.UserID,
		BarbershopID: shop.ID,
		BarberID:     in.BarberID,
		ServiceID:    svc.ID,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(duration) * time.Minute),
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	actor := auth.Identity{SubjectID: in.UserID, Role: auth.RoleUser}
	if err := uc.repo.CreateIfFree(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Dispatch(event(ap, actor, "appointment_conflict", map[string]any{
				"start": ap.StartTime,
				"end":   ap.EndTime,
			}))
		}
		return nil, err
	}

	// 5. audit
	metrics.AppointmentsBooked.Inc()
	uc.audit.Dispatch(event(ap, actor, "appointment_created", nil))

	ap.Barbershop = shop
	ap.Service = svc
	return ap, nil
}
