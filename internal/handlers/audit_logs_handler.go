package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barberin/internal/audit"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/httpresp"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/service"
	"github.com/BruksfildServices01/barberin/internal/timezone"
)

// AuditReader is implemented by *audit.Logger.
type AuditReader interface {
	ListForBarbershop(ctx context.Context, barbershopID uint, f audit.Filter, page, limit int) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs AuditReader
	log  *zap.Logger
}

func NewAuditLogsHandler(logs AuditReader, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, log: log.Named("audit")}
}

type AuditLogQuery struct {
	PageQuery
	Action string `form:"action" binding:"max=64"`
	Entity string `form:"entity" binding:"max=64"`
	From   string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// List pages through the caller's own audit trail. from/to are whole
// days, both inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var q AuditLogQuery
	if !bindQuery(c, &q) {
		return
	}

	f := audit.Filter{Action: q.Action, Entity: q.Entity}
	if q.From != "" {
		from, err := time.ParseInLocation(timezone.DateLayout, q.From, time.UTC)
		if err != nil {
			writeError(c, h.log, httperr.Invalid("from must match the format 2006-01-02"))
			return
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := time.ParseInLocation(timezone.DateLayout, q.To, time.UTC)
		if err != nil {
			writeError(c, h.log, httperr.Invalid("to must match the format 2006-01-02"))
			return
		}
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	page, limit := service.NormalizePage(q.Page, q.Limit)
	rows, total, err := h.logs.ListForBarbershop(c.Request.Context(), me.SubjectID, f, page, limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if rows == nil {
		rows = []models.AuditLog{}
	}

	httpresp.OK(c, service.Page[models.AuditLog]{
		Items: rows,
		Page:  page,
		Limit: limit,
		Total: total,
	}, "Audit logs retrieved successfully")
}
