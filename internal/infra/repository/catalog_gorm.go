package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/service"
)

// --------------------------------------------------
// Barbers
// --------------------------------------------------

type BarberGormRepository struct {
	db *gorm.DB
}

func NewBarberGormRepository(db *gorm.DB) *BarberGormRepository {
	return &BarberGormRepository{db: db}
}

func (r *BarberGormRepository) Create(ctx context.Context, b *models.Barber) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BarberGormRepository) FindByID(ctx context.Context, id uint) (*models.Barber, error) {
	return first[models.Barber](ctx, r.db, "id = ?", id)
}

func (r *BarberGormRepository) Update(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	return updateColumns[models.Barber](ctx, r.db, id, fields)
}

func (r *BarberGormRepository) ListByBarbershop(ctx context.Context, barbershopID uint, onlyActive bool) ([]models.Barber, error) {
	q := r.db.WithContext(ctx).Where("barbershop_id = ?", barbershopID)
	if onlyActive {
		q = q.Where("active = ?", true)
	}

	var barbers []models.Barber
	err := q.Order("name ASC").Find(&barbers).Error
	return barbers, err
}

// --------------------------------------------------
// Services
// --------------------------------------------------

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) Create(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceGormRepository) FindByID(ctx context.Context, id uint) (*models.Service, error) {
	return first[models.Service](ctx, r.db, "id = ?", id)
}

func (r *ServiceGormRepository) Update(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	return updateColumns[models.Service](ctx, r.db, id, fields)
}

func (r *ServiceGormRepository) ListByBarbershop(ctx context.Context, barbershopID uint, onlyActive bool) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Where("barbershop_id = ?", barbershopID)
	if onlyActive {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	err := q.Order("name ASC").Find(&services).Error
	return services, err
}

// --------------------------------------------------
// Reviews
// --------------------------------------------------

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Create(ctx context.Context, rv *models.Review) error {
	err := r.db.WithContext(ctx).Create(rv).Error
	if isUniqueViolation(err) {
		return httperr.Conflict("You have already reviewed this barbershop")
	}
	return err
}

func (r *ReviewGormRepository) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	return first[models.Review](ctx, r.db, "id = ?", id)
}

func (r *ReviewGormRepository) Update(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	return updateColumns[models.Review](ctx, r.db, id, fields)
}

func (r *ReviewGormRepository) ListByBarbershop(ctx context.Context, barbershopID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// Compile-time checks
var (
	_ service.BarberRepository  = (*BarberGormRepository)(nil)
	_ service.ServiceRepository = (*ServiceGormRepository)(nil)
	_ service.ReviewRepository  = (*ReviewGormRepository)(nil)
)
