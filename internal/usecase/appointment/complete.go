package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barberin/internal/auth"
	domain "github.com/BruksfildServices01/barberin/internal/domain/appointment"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/models"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit Auditor
	now   func() time.Time
}

func NewCompleteAppointment(repo domain.Repository, audit Auditor, now func() time.Time) *CompleteAppointment {
	return &CompleteAppointment{repo: repo, audit: audit, now: defaultClock(now)}
}

func (uc *CompleteAppointment) Execute(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error) {
	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, errNotFound
	}
	if ap.BarbershopID != barbershopID {
		return nil, httperr.Forbidden("Access denied")
	}

	if err := domain.Complete(ap, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}
	if err := withBarbershop(ctx, uc.repo, ap); err != nil {
		return nil, err
	}

	actor := auth.Identity{SubjectID: barbershopID, Role: auth.RoleBarbershop}
	uc.audit.Dispatch(event(ap, actor, "appointment_completed", nil))
	return ap, nil
}
