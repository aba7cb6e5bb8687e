package service

import (
	"context"

	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/models"
)

type BarberRepository interface {
	Create(ctx context.Context, b *models.Barber) error
	FindByID(ctx context.Context, id uint) (*models.Barber, error)
	Update(ctx context.Context, id uint, fields map[string]any) (bool, error)
	ListByBarbershop(ctx context.Context, barbershopID uint, onlyActive bool) ([]models.Barber, error)
}

// ShopLookup is the part of BarbershopRepository the catalog services need.
type ShopLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Barbershop, error)
}

type BarberInput struct {
	Name      string
	Specialty string
	Phone     string
	PhotoURL  string
}

type BarberPatch struct {
	Name      *string
	Specialty *string
	Phone     *string
	PhotoURL  *string
	Active    *bool
}

func (p BarberPatch) fields() map[string]any {
	f := map[string]any{}
	setIf(f, "name", p.Name)
	setIf(f, "specialty", p.Specialty)
	setIf(f, "phone", p.Phone)
	setIf(f, "photo_url", p.PhotoURL)
	setIf(f, "active", p.Active)
	return f
}

type BarberService struct {
	repo  BarberRepository
	shops ShopLookup
}

func NewBarberService(repo BarberRepository, shops ShopLookup) *BarberService {
	return &BarberService{repo: repo, shops: shops}
}

func (s *BarberService) Create(ctx context.Context, barbershopID uint, in BarberInput) (*models.Barber, error) {
	if err := requireShop(ctx, s.shops, barbershopID); err != nil {
		return nil, err
	}
	b := &models.Barber{
		BarbershopID: barbershopID,
		Name:         in.Name,
		Specialty:    in.Specialty,
		Phone:        in.Phone,
		PhotoURL:     in.PhotoURL,
		Active:       true,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update changes a barber owned by barbershopID and returns the stored row.
func (s *BarberService) Update(ctx context.Context, barbershopID, barberID uint, patch BarberPatch) (*models.Barber, error) {
	b, err := s.repo.FindByID(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, httperr.NotFound("Barber not found")
	}
	if err := ownedBy(b.BarbershopID, barbershopID, "Barber"); err != nil {
		return nil, err
	}

	ok, err := s.repo.Update(ctx, barberID, patch.fields())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.NotFound("Barber not found")
	}
	return s.repo.FindByID(ctx, barberID)
}

// ListByBarbershop returns the shop's active barbers, or all of them when
// the caller owns the shop.
func (s *BarberService) ListByBarbershop(ctx context.Context, barbershopID uint, includeInactive bool) ([]models.Barber, error) {
	if err := requireShop(ctx, s.shops, barbershopID); err != nil {
		return nil, err
	}
	return s.repo.ListByBarbershop(ctx, barbershopID, !includeInactive)
}

func requireShop(ctx context.Context, shops ShopLookup, id uint) error {
	shop, err := shops.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if shop == nil {
		return httperr.NotFound("Barbershop not found")
	}
	return nil
}
