package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/barberin/internal/auth"
	domain "github.com/BruksfildServices01/barberin/internal/domain/appointment"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/payment"
)

// PaymentGateway is satisfied by *payment.MercadoPago.
type PaymentGateway interface {
	Enabled() bool
	CreateCheckout(ctx context.Context, item payment.CheckoutItem) (*payment.Checkout, error)
}

type CheckoutAppointment struct {
	repo     domain.Repository
	payments PaymentGateway
	audit    Auditor
}

func NewCheckoutAppointment(repo domain.Repository, payments PaymentGateway, audit Auditor) *CheckoutAppointment {
	return &CheckoutAppointment{repo: repo, payments: payments, audit: audit}
}

// Execute opens a payment for the user's scheduled appointment.
func (uc *CheckoutAppointment) Execute(ctx context.Context, userID, appointmentID uint) (*payment.Checkout, error) {
	if uc.payments == nil || !uc.payments.Enabled() {
		return nil, httperr.Unavailable("Payments are not available")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, errNotFound
	}
	actor := auth.Identity{SubjectID: userID, Role: auth.RoleUser}
	if err := authorize(ap, actor); err != nil {
		return nil, err
	}
	if domain.Status(ap.Status) != domain.StatusScheduled {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	svc, err := uc.repo.GetService(ctx, ap.BarbershopID, ap.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := payment.CheckoutItem{
		Reference:   fmt.Sprintf("appointment-%d", ap.ID),
		Title:       svc.Name,
		Description: svc.Description,
		UnitPrice:   svc.Price,
	}
	if user != nil {
		item.PayerEmail = user.Email
	}

	out, err := uc.payments.CreateCheckout(ctx, item)
	if errors.Is(err, payment.ErrDisabled) {
		return nil, httperr.Unavailable("Payments are not available")
	}
	if err != nil {
		return nil, err
	}

	ap.PaymentPreferenceID = out.PreferenceID
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(ap, actor, "appointment_checkout", map[string]any{"preference_id": out.PreferenceID}))
	return out, nil
}
