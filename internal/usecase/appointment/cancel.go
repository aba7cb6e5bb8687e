package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barberin/internal/auth"
	domain "github.com/BruksfildServices01/barberin/internal/domain/appointment"
	"github.com/BruksfildServices01/barberin/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit Auditor
	now   func() time.Time
}

func NewCancelAppointment(repo domain.Repository, audit Auditor, now func() time.Time) *CancelAppointment {
	return &CancelAppointment{repo: repo, audit: audit, now: defaultClock(now)}
}

// Execute cancels on behalf of either party to the appointment.
func (uc *CancelAppointment) Execute(ctx context.Context, actor auth.Identity, appointmentID uint) (*models.Appointment, error) {
	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, errNotFound
	}
	if err := authorize(ap, actor); err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}
	if err := withBarbershop(ctx, uc.repo, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(ap, actor, "appointment_cancelled", nil))
	return ap, nil
}
