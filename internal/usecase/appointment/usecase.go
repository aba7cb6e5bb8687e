package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barberin/internal/audit"
	"github.com/BruksfildServices01/barberin/internal/auth"
	domain "github.com/BruksfildServices01/barberin/internal/domain/appointment"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/models"
)

// Auditor is satisfied by *audit.Dispatcher.
type Auditor interface {
	Dispatch(ev audit.Event)
}

var errNotFound = httperr.NotFound("Appointment not found")

// authorize checks that actor is the user or the barbershop on ap.
func authorize(ap *models.Appointment, actor auth.Identity) error {
	switch actor.Role {
	case auth.RoleUser:
		if ap.UserID == actor.SubjectID {
			return nil
		}
	case auth.RoleBarbershop:
		if ap.BarbershopID == actor.SubjectID {
			return nil
		}
	}
	return httperr.Forbidden("Access denied")
}

// withBarbershop loads the shop onto ap when the repository left it empty.
func withBarbershop(ctx context.Context, repo domain.Repository, ap *models.Appointment) error {
	if ap.Barbershop != nil {
		return nil
	}
	shop, err := repo.GetBarbershop(ctx, ap.BarbershopID)
	if err != nil {
		return err
	}
	ap.Barbershop = shop
	return nil
}

func event(ap *models.Appointment, actor auth.Identity, action string, meta any) audit.Event {
	shopID, apID := ap.BarbershopID, ap.ID
	return audit.Event{
		BarbershopID: &shopID,
		ActorID:      actor.SubjectID,
		ActorRole:    string(actor.Role),
		Action:       action,
		Entity:       "appointment",
		EntityID:     &apID,
		Metadata:     meta,
	}
}

func defaultClock(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
