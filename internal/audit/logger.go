package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberin/internal/models"
)

// Logger is the gorm-backed Sink.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	actor := ev.ActorID
	row := models.AuditLog{
		BarbershopID: ev.BarbershopID,
		ActorID:      &actor,
		ActorRole:    ev.ActorRole,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// Filter narrows a barbershop's audit trail. Zero values mean no filter.
type Filter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
}

// ListForBarbershop returns the newest entries for a barbershop.
func (l *Logger) ListForBarbershop(ctx context.Context, barbershopID uint, f Filter, page, limit int) ([]models.AuditLog, int64, error) {
	q := l.db.WithContext(ctx).Model(&models.AuditLog{}).Where("barbershop_id = ?", barbershopID)
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AuditLog
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&rows).Error
	return rows, total, err
}
