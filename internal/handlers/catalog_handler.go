package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barberin/internal/httpresp"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/service"
	"github.com/BruksfildServices01/barberin/internal/validators"
)

// BarberService is implemented by *service.BarberService.
type BarberService interface {
	Create(ctx context.Context, barbershopID uint, in service.BarberInput) (*models.Barber, error)
	Update(ctx context.Context, barbershopID, barberID uint, patch service.BarberPatch) (*models.Barber, error)
	ListByBarbershop(ctx context.Context, barbershopID uint, includeInactive bool) ([]models.Barber, error)
}

// CatalogService is implemented by *service.CatalogService.
type CatalogService interface {
	Create(ctx context.Context, barbershopID uint, in service.ServiceInput) (*models.Service, error)
	Update(ctx context.Context, barbershopID, serviceID uint, patch service.ServicePatch) (*models.Service, error)
	ListByBarbershop(ctx context.Context, barbershopID uint, includeInactive bool) ([]models.Service, error)
}

// CatalogHandler serves what a barbershop offers: its barbers and its
// services.
type CatalogHandler struct {
	barbers  BarberService
	services CatalogService
	audit    Auditor
	log      *zap.Logger
}

func NewCatalogHandler(barbers BarberService, services CatalogService, audit Auditor, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{barbers: barbers, services: services, audit: orNoop(audit), log: log.Named("catalog")}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Specialty string `json:"specialty" binding:"max=100"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
	PhotoURL  string `json:"photo_url" binding:"omitempty,url,max=500"`
}

type UpdateBarberRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=100"`
	Specialty *string `json:"specialty" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,phone"`
	PhotoURL  *string `json:"photo_url" binding:"omitempty,url,max=500"`
	Active    *bool   `json:"active"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description string  `json:"description" binding:"max=255"`
	Price       float64 `json:"price" binding:"gte=0"`
	DurationMin int     `json:"duration_min" binding:"omitempty,min=5,max=480"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	DurationMin *int     `json:"duration_min" binding:"omitempty,min=5,max=480"`
	Active      *bool    `json:"active"`
}

// --------- Barbers ---------

func (h *CatalogHandler) CreateBarber(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req CreateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	barber, err := h.barbers.Create(c.Request.Context(), me.SubjectID, service.BarberInput{
		Name:      validators.SanitizeString(req.Name),
		Specialty: validators.SanitizeString(req.Specialty),
		Phone:     validators.SanitizeString(req.Phone),
		PhotoURL:  req.PhotoURL,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	writeAudit(h.audit, me, me.SubjectID, "barber_created", "barber", barber.ID, nil)
	httpresp.Created(c, barber, "Barber created successfully")
}

func (h *CatalogHandler) UpdateBarber(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	barber, err := h.barbers.Update(c.Request.Context(), me.SubjectID, id, service.BarberPatch{
		Name:      validators.SanitizePtr(req.Name),
		Specialty: validators.SanitizePtr(req.Specialty),
		Phone:     validators.SanitizePtr(req.Phone),
		PhotoURL:  req.PhotoURL,
		Active:    req.Active,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	writeAudit(h.audit, me, me.SubjectID, "barber_updated", "barber", barber.ID, nil)
	httpresp.OK(c, barber, "Barber updated successfully")
}

// ListBarbers is public and shows active barbers only.
func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	shopID, ok := idParam(c, "id")
	if !ok {
		return
	}

	barbers, err := h.barbers.ListByBarbershop(c.Request.Context(), shopID, false)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, barbers, "Barbers retrieved successfully")
}

// --------- Services ---------

func (h *CatalogHandler) CreateService(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.services.Create(c.Request.Context(), me.SubjectID, service.ServiceInput{
		Name:        validators.SanitizeString(req.Name),
		Description: validators.SanitizeString(req.Description),
		Price:       req.Price,
		DurationMin: req.DurationMin,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	writeAudit(h.audit, me, me.SubjectID, "service_created", "service", svc.ID, nil)
	httpresp.Created(c, svc, "Service created successfully")
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.services.Update(c.Request.Context(), me.SubjectID, id, service.ServicePatch{
		Name:        validators.SanitizePtr(req.Name),
		Description: validators.SanitizePtr(req.Description),
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Active:      req.Active,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	writeAudit(h.audit, me, me.SubjectID, "service_updated", "service", svc.ID, nil)
	httpresp.OK(c, svc, "Service updated successfully")
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	shopID, ok := idParam(c, "id")
	if !ok {
		return
	}

	services, err := h.services.ListByBarbershop(c.Request.Context(), shopID, false)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, services, "Services retrieved successfully")
}
