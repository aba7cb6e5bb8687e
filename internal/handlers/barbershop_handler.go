package handlers

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/httpresp"
	"github.com/BruksfildServices01/barberin/internal/media"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/service"
	"github.com/BruksfildServices01/barberin/internal/validators"
)

// BarbershopService is implemented by *service.BarbershopService.
type BarbershopService interface {
	Register(ctx context.Context, in service.RegisterBarbershopInput) (*models.Barbershop, error)
	Login(ctx context.Context, email, password string) (*service.BarbershopSession, error)
	GetByID(ctx context.Context, id uint) (*models.Barbershop, error)
	Update(ctx context.Context, id uint, patch service.BarbershopPatch) (bool, error)
	List(ctx context.Context, f service.BarbershopFilter) ([]models.BarbershopWithDistance, error)
}

type BarbershopHandler struct {
	shops  BarbershopService
	photos PhotoStore
	audit  Auditor
	log    *zap.Logger
}

func NewBarbershopHandler(shops BarbershopService, photos PhotoStore, audit Auditor, log *zap.Logger) *BarbershopHandler {
	return &BarbershopHandler{shops: shops, photos: photos, audit: orNoop(audit), log: log.Named("barbershops")}
}

// --------- Requests ---------

type RegisterBarbershopRequest struct {
	Name              string   `json:"name" binding:"required,min=3,max=100"`
	Email             string   `json:"email" binding:"required,email,max=150"`
	Phone             string   `json:"phone" binding:"required,phone"`
	Password          string   `json:"password" binding:"required,password"`
	Address           string   `json:"address" binding:"required,min=10,max=255"`
	Latitude          *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude         *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	ResponsiblePerson string   `json:"responsible_person" binding:"required,min=5,max=100"`
	IDDocument        string   `json:"id_document" binding:"required,min=6,max=50"`
	OwnerPhone        string   `json:"owner_phone" binding:"omitempty,phone"`
	Description       string   `json:"description" binding:"max=1000"`
	Timezone          string   `json:"timezone" binding:"max=64"`
}

type UpdateBarbershopRequest struct {
	Name              *string  `json:"name" binding:"omitempty,min=3,max=100"`
	Phone             *string  `json:"phone" binding:"omitempty,phone"`
	Address           *string  `json:"address" binding:"omitempty,min=10,max=255"`
	Latitude          *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude         *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	ResponsiblePerson *string  `json:"responsible_person" binding:"omitempty,min=5,max=100"`
	OwnerPhone        *string  `json:"owner_phone" binding:"omitempty,phone"`
	Description       *string  `json:"description" binding:"omitempty,max=1000"`
	Timezone          *string  `json:"timezone" binding:"omitempty,max=64"`
}

type BarbershopQuery struct {
	Latitude  *float64 `form:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `form:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Radius    float64  `form:"radius" binding:"omitempty,gt=0,lte=20000"`
}

type PhotoQuery struct {
	Kind string `form:"kind" binding:"omitempty,oneof=profile cover"`
}

// --------- Handlers ---------

func (h *BarbershopHandler) Register(c *gin.Context) {
	var req RegisterBarbershopRequest
	if !bindJSON(c, &req) {
		return
	}

	shop, err := h.shops.Register(c.Request.Context(), service.RegisterBarbershopInput{
		Name:              validators.SanitizeString(req.Name),
		Email:             req.Email,
		Phone:             validators.SanitizeString(req.Phone),
		Password:          req.Password,
		Address:           validators.SanitizeString(req.Address),
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		ResponsiblePerson: validators.SanitizeString(req.ResponsiblePerson),
		IDDocument:        validators.SanitizeString(req.IDDocument),
		OwnerPhone:        validators.SanitizeString(req.OwnerPhone),
		Description:       validators.SanitizeString(req.Description),
		Timezone:          validators.SanitizeString(req.Timezone),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Created(c, shop, "Barbershop registered successfully")
}

func (h *BarbershopHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.shops.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, session, "Login successful")
}

func (h *BarbershopHandler) List(c *gin.Context) {
	var q BarbershopQuery
	if !bindQuery(c, &q) {
		return
	}

	shops, err := h.shops.List(c.Request.Context(), service.BarbershopFilter{
		Latitude:  q.Latitude,
		Longitude: q.Longitude,
		RadiusKm:  q.Radius,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, shops, "Barbershops retrieved successfully")
}

func (h *BarbershopHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.respondShop(c, id, "Barbershop retrieved successfully")
}

func (h *BarbershopHandler) Profile(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	h.respondShop(c, me.SubjectID, "Profile retrieved successfully")
}

func (h *BarbershopHandler) UpdateProfile(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req UpdateBarbershopRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := service.BarbershopPatch{
		Name:              validators.SanitizePtr(req.Name),
		Phone:             validators.SanitizePtr(req.Phone),
		Address:           validators.SanitizePtr(req.Address),
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		ResponsiblePerson: validators.SanitizePtr(req.ResponsiblePerson),
		OwnerPhone:        validators.SanitizePtr(req.OwnerPhone),
		Description:       validators.SanitizePtr(req.Description),
		Timezone:          validators.SanitizePtr(req.Timezone),
	}
	if !h.update(c, me.SubjectID, patch) {
		return
	}

	writeAudit(h.audit, me, me.SubjectID, "profile_updated", "barbershop", me.SubjectID, nil)
	h.respondShop(c, me.SubjectID, "Profile updated successfully")
}

func (h *BarbershopHandler) UploadPhoto(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var q PhotoQuery
	if !bindQuery(c, &q) {
		return
	}
	kind := q.Kind
	if kind == "" {
		kind = "profile"
	}

	opts := media.ProfilePhoto
	if kind == "cover" {
		opts = media.CoverPhoto
	}

	url, ok, err := uploadPhoto(c, h.photos, fmt.Sprintf("barbershops/%d/%s", me.SubjectID, kind), opts)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if !ok {
		return
	}

	var patch service.BarbershopPatch
	if kind == "cover" {
		patch.CoverPhotoURL = &url
	} else {
		patch.ProfilePhotoURL = &url
	}
	if !h.update(c, me.SubjectID, patch) {
		return
	}

	writeAudit(h.audit, me, me.SubjectID, "photo_uploaded", "barbershop", me.SubjectID, map[string]string{"kind": kind})
	h.respondShop(c, me.SubjectID, "Photo uploaded successfully")
}

func (h *BarbershopHandler) update(c *gin.Context, id uint, patch service.BarbershopPatch) bool {
	found, err := h.shops.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, h.log, err)
		return false
	}
	if !found {
		writeError(c, h.log, httperr.NotFound("Barbershop not found"))
		return false
	}
	return true
}

func (h *BarbershopHandler) respondShop(c *gin.Context, id uint, msg string) {
	shop, err := h.shops.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if shop == nil {
		httpresp.NotFound(c, "Barbershop not found")
		return
	}
	httpresp.OK(c, shop, msg)
}
