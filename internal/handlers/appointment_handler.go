package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barberin/internal/auth"
	"github.com/BruksfildServices01/barberin/internal/dto"
	"github.com/BruksfildServices01/barberin/internal/httpresp"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/payment"
	"github.com/BruksfildServices01/barberin/internal/usecase/appointment"
	"github.com/BruksfildServices01/barberin/internal/validators"
)

// ======================================================
// USE CASES
// ======================================================

type (
	AppointmentCreator interface {
		Execute(ctx context.Context, in appointment.CreateAppointmentInput) (*models.Appointment, error)
	}
	AppointmentCanceller interface {
		Execute(ctx context.Context, actor auth.Identity, appointmentID uint) (*models.Appointment, error)
	}
	AppointmentCompleter interface {
		Execute(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error)
	}
	AppointmentLister interface {
		ForBarbershop(ctx context.Context, in appointment.BarbershopAgendaInput) ([]models.Appointment, error)
		ForUser(ctx context.Context, userID uint) ([]models.Appointment, error)
	}
	AppointmentCheckout interface {
		Execute(ctx context.Context, userID, appointmentID uint) (*payment.Checkout, error)
	}
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   AppointmentCreator
	cancel   AppointmentCanceller
	complete AppointmentCompleter
	list     AppointmentLister
	checkout AppointmentCheckout
	timezone string
	log      *zap.Logger
}

type AppointmentDeps struct {
	Create          AppointmentCreator
	Cancel          AppointmentCanceller
	Complete        AppointmentCompleter
	List            AppointmentLister
	Checkout        AppointmentCheckout
	DefaultTimezone string
}

func NewAppointmentHandler(deps AppointmentDeps, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		create:   deps.Create,
		cancel:   deps.Cancel,
		complete: deps.Complete,
		list:     deps.List,
		checkout: deps.Checkout,
		timezone: deps.DefaultTimezone,
		log:      log.Named("appointments"),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarbershopID uint   `json:"barbershop_id" binding:"required"`
	ServiceID    uint   `json:"service_id" binding:"required"`
	BarberID     *uint  `json:"barber_id" binding:"omitempty,gt=0"`
	Date         string `json:"date" binding:"required,datetime=2006-01-02"`
	Time         string `json:"time" binding:"required,hhmm"`
	Notes        string `json:"notes" binding:"max=255"`
}

type AgendaQuery struct {
	Date   string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Status string `form:"status" binding:"omitempty,oneof=scheduled cancelled completed"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		UserID:       me.SubjectID,
		BarbershopID: req.BarbershopID,
		ServiceID:    req.ServiceID,
		BarberID:     req.BarberID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        validators.SanitizeString(req.Notes),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(*ap, h.timezone), "Appointment booked successfully")
}

func (h *AppointmentHandler) ListForUser(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	aps, err := h.list.ForUser(c.Request.Context(), me.SubjectID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentList(aps, h.timezone), "Appointments retrieved successfully")
}

func (h *AppointmentHandler) ListForBarbershop(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	shopID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var q AgendaQuery
	if !bindQuery(c, &q) {
		return
	}

	aps, err := h.list.ForBarbershop(c.Request.Context(), appointment.BarbershopAgendaInput{
		CallerID:     me.SubjectID,
		BarbershopID: shopID,
		Date:         q.Date,
		Status:       q.Status,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentList(aps, h.timezone), "Appointments retrieved successfully")
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), me, id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(*ap, h.timezone), "Appointment cancelled successfully")
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), me.SubjectID, id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(*ap, h.timezone), "Appointment completed successfully")
}

func (h *AppointmentHandler) Checkout(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	out, err := h.checkout.Execute(c.Request.Context(), me.SubjectID, id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{
		"preference_id": out.PreferenceID,
		"checkout_url":  out.CheckoutURL,
	}, "Checkout created successfully")
}
