package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barberin/internal/domain/appointment"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershop(ctx context.Context, id uint) (*models.Barbershop, error) {
	return first[models.Barbershop](ctx, r.db, "id = ?", id)
}

func (r *AppointmentGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return first[models.User](ctx, r.db, "id = ?", id)
}

func (r *AppointmentGormRepository) GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	return first[models.Service](ctx, r.db, "id = ? AND barbershop_id = ?", serviceID, barbershopID)
}

func (r *AppointmentGormRepository) GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.Barber, error) {
	return first[models.Barber](ctx, r.db, "id = ? AND barbershop_id = ?", barberID, barbershopID)
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateIfFree(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lock := clause.Locking{Strength: "UPDATE"}

		// Serialize bookings on the owner row so two concurrent inserts
		// cannot both miss each other.
		scope := tx.Model(&models.Appointment{}).Where("status = ?", string(domain.StatusScheduled))
		if ap.BarberID != nil {
			if err := tx.Clauses(lock).First(&models.Barber{}, *ap.BarberID).Error; err != nil {
				return err
			}
			scope = scope.Where("barber_id = ?", *ap.BarberID)
		} else {
			if err := tx.Clauses(lock).First(&models.User{}, ap.UserID).Error; err != nil {
				return err
			}
			scope = scope.Where("user_id = ? AND barber_id IS NULL", ap.UserID)
		}

		var clashing []models.Appointment
		if err := scope.
			Clauses(lock).
			Select("id").
			Where("start_time < ? AND end_time > ?", ap.EndTime, ap.StartTime).
			Limit(1).
			Find(&clashing).Error; err != nil {
			return err
		}
		if len(clashing) > 0 {
			return httperr.ErrBusinessConflict("time_conflict")
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// State
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	return first[models.Appointment](ctx, r.db.Preload("Barbershop"), "id = ?", id)
}

func (r *AppointmentGormRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).
		Model(ap).
		Select("status", "cancelled_at", "completed_at", "payment_preference_id").
		Updates(ap).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForBarbershop(ctx context.Context, barbershopID uint, f domain.ListFilter) ([]models.Appointment, error) {
	q := r.withRelations(ctx).Where("barbershop_id = ?", barbershopID)
	if f.From != nil {
		q = q.Where("start_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_time < ?", *f.To)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var apps []models.Appointment
	err := q.Order("start_time ASC").Find(&apps).Error
	return apps, err
}

func (r *AppointmentGormRepository) ListForUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	var apps []models.Appointment
	err := r.withRelations(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&apps).Error
	return apps, err
}

func (r *AppointmentGormRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Barbershop").
		Preload("Barber").
		Preload("Service")
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
