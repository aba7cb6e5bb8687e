package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/service"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if isUniqueViolation(err) {
		return httperr.Conflict("User with this email already exists")
	}
	return err
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return first[models.User](ctx, r.db, "id = ?", id)
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return first[models.User](ctx, r.db, "email = ?", email)
}

func (r *UserGormRepository) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return first[models.User](ctx, r.db, "google_id = ?", googleID)
}

func (r *UserGormRepository) Update(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	ok, err := updateColumns[models.User](ctx, r.db, id, fields)
	if isUniqueViolation(err) {
		return false, httperr.Conflict("Account is already linked to another user")
	}
	return ok, err
}

func (r *UserGormRepository) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

var _ service.UserRepository = (*UserGormRepository)(nil)
