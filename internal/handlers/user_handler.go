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

// UserService is implemented by *service.UserService.
type UserService interface {
	Register(ctx context.Context, in service.RegisterUserInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*service.UserSession, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id uint, patch service.UserPatch) (bool, error)
	List(ctx context.Context, page, limit int) (*service.Page[models.User], error)
}

type UserHandler struct {
	users  UserService
	photos PhotoStore
	log    *zap.Logger
}

func NewUserHandler(users UserService, photos PhotoStore, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, photos: photos, log: log.Named("users")}
}

// --------- Requests ---------

type RegisterUserRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=100"`
	LastName  string `json:"last_name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email,max=150"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
	Password  string `json:"password" binding:"required,password"`
	Address   string `json:"address" binding:"max=255"`
	AgeRange  string `json:"age_range" binding:"max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,phone"`
	Address   *string `json:"address" binding:"omitempty,max=255"`
	AgeRange  *string `json:"age_range" binding:"omitempty,max=20"`
}

type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// --------- Handlers ---------

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterUserInput{
		FirstName: validators.SanitizeString(req.FirstName),
		LastName:  validators.SanitizeString(req.LastName),
		Email:     req.Email,
		Phone:     validators.SanitizeString(req.Phone),
		Password:  req.Password,
		Address:   validators.SanitizeString(req.Address),
		AgeRange:  validators.SanitizeString(req.AgeRange),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Created(c, user, "User registered successfully")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, session, "Login successful")
}

func (h *UserHandler) List(c *gin.Context) {
	var q PageQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.users.List(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, page, "Users retrieved successfully")
}

func (h *UserHandler) Profile(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), me.SubjectID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if user == nil {
		httpresp.NotFound(c, "User not found")
		return
	}

	httpresp.OK(c, user, "Profile retrieved successfully")
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	h.update(c, me.SubjectID, service.UserPatch{
		FirstName: validators.SanitizePtr(req.FirstName),
		LastName:  validators.SanitizePtr(req.LastName),
		Phone:     validators.SanitizePtr(req.Phone),
		Address:   validators.SanitizePtr(req.Address),
		AgeRange:  validators.SanitizePtr(req.AgeRange),
	}, "Profile updated successfully")
}

func (h *UserHandler) UploadPhoto(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	url, ok, err := uploadPhoto(c, h.photos, fmt.Sprintf("users/%d", me.SubjectID), media.ProfilePhoto)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if !ok {
		return
	}

	h.update(c, me.SubjectID, service.UserPatch{ProfilePhotoURL: &url}, "Photo uploaded successfully")
}

func (h *UserHandler) update(c *gin.Context, id uint, patch service.UserPatch, msg string) {
	ctx := c.Request.Context()

	found, err := h.users.Update(ctx, id, patch)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if !found {
		writeError(c, h.log, httperr.NotFound("User not found"))
		return
	}

	user, err := h.users.GetByID(ctx, id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, user, msg)
}
