package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberin/internal/geo"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/service"
)

type BarbershopGormRepository struct {
	db *gorm.DB
}

func NewBarbershopGormRepository(db *gorm.DB) *BarbershopGormRepository {
	return &BarbershopGormRepository{db: db}
}

func (r *BarbershopGormRepository) Create(ctx context.Context, b *models.Barbershop) error {
	err := r.db.WithContext(ctx).Create(b).Error
	if isUniqueViolation(err) {
		return httperr.Conflict("Barbershop with this email already exists")
	}
	return err
}

func (r *BarbershopGormRepository) FindByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	return first[models.Barbershop](ctx, r.db, "id = ?", id)
}

func (r *BarbershopGormRepository) FindByEmail(ctx context.Context, email string) (*models.Barbershop, error) {
	return first[models.Barbershop](ctx, r.db, "email = ?", email)
}

func (r *BarbershopGormRepository) Update(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	return updateColumns[models.Barbershop](ctx, r.db, id, fields)
}

func (r *BarbershopGormRepository) List(ctx context.Context) ([]models.Barbershop, error) {
	var shops []models.Barbershop
	err := r.db.WithContext(ctx).Order("name ASC").Find(&shops).Error
	return shops, err
}

func (r *BarbershopGormRepository) ListLocated(ctx context.Context, box *geo.Box) ([]models.Barbershop, error) {
	q := r.db.WithContext(ctx).Where("latitude IS NOT NULL AND longitude IS NOT NULL")
	if box != nil {
		q = q.Where(
			"latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?",
			box.MinLat, box.MaxLat, box.MinLng, box.MaxLng,
		)
	}

	var shops []models.Barbershop
	err := q.Find(&shops).Error
	return shops, err
}

var _ service.BarbershopRepository = (*BarbershopGormRepository)(nil)
