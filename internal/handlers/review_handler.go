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

// ReviewService is implemented by *service.ReviewService.
type ReviewService interface {
	Create(ctx context.Context, userID uint, in service.ReviewInput) (*models.Review, error)
	Update(ctx context.Context, userID, reviewID uint, patch service.ReviewPatch) (*models.Review, error)
	ListByBarbershop(ctx context.Context, barbershopID uint) (*service.ReviewSummary, error)
}

type ReviewHandler struct {
	reviews ReviewService
	audit   Auditor
	log     *zap.Logger
}

func NewReviewHandler(reviews ReviewService, audit Auditor, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, audit: orNoop(audit), log: log.Named("reviews")}
}

type CreateReviewRequest struct {
	BarbershopID uint   `json:"barbershop_id" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment" binding:"max=1000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), me.SubjectID, service.ReviewInput{
		BarbershopID: req.BarbershopID,
		Rating:       req.Rating,
		Comment:      validators.SanitizeString(req.Comment),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	writeAudit(h.audit, me, review.BarbershopID, "review_created", "review", review.ID, map[string]int{"rating": review.Rating})
	httpresp.Created(c, review, "Review created successfully")
}

func (h *ReviewHandler) Update(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviews.Update(c.Request.Context(), me.SubjectID, id, service.ReviewPatch{
		Rating:  req.Rating,
		Comment: validators.SanitizePtr(req.Comment),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	writeAudit(h.audit, me, review.BarbershopID, "review_updated", "review", review.ID, nil)
	httpresp.OK(c, review, "Review updated successfully")
}

func (h *ReviewHandler) ListByBarbershop(c *gin.Context) {
	shopID, ok := idParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.reviews.ListByBarbershop(c.Request.Context(), shopID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, summary, "Reviews retrieved successfully")
}
