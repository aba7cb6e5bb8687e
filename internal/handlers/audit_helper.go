package handlers

import (
	"github.com/BruksfildServices01/barberin/internal/audit"
	"github.com/BruksfildServices01/barberin/internal/auth"
)

// Auditor is satisfied by *audit.Dispatcher.
type Auditor interface {
	Dispatch(ev audit.Event)
}

type noopAuditor struct{}

func (noopAuditor) Dispatch(audit.Event) {}

func orNoop(a Auditor) Auditor {
	if a == nil {
		return noopAuditor{}
	}
	return a
}

// writeAudit records a change made by actor inside barbershopID.
func writeAudit(a Auditor, actor auth.Identity, barbershopID uint, action, entity string, entityID uint, meta any) {
	shop, id := barbershopID, entityID
	a.Dispatch(audit.Event{
		BarbershopID: &shop,
		ActorID:      actor.SubjectID,
		ActorRole:    string(actor.Role),
		Action:       action,
		Entity:       entity,
		EntityID:     &id,
		Metadata:     meta,
	})
}
