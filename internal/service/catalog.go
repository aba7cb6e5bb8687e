package service

import (
	"context"

	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/models"
)

const DefaultServiceDuration = 30

type ServiceRepository interface {
	Create(ctx context.Context, s *models.Service) error
	FindByID(ctx context.Context, id uint) (*models.Service, error)
	Update(ctx context.Context, id uint, fields map[string]any) (bool, error)
	ListByBarbershop(ctx context.Context, barbershopID uint, onlyActive bool) ([]models.Service, error)
}

type ServiceInput struct {
	Name        string
	Description string
	Price       float64
	DurationMin int
}

type ServicePatch struct {
	Name        *string
	Description *string
	Price       *float64
	DurationMin *int
	Active      *bool
}

func (p ServicePatch) fields() map[string]any {
	f := map[string]any{}
	setIf(f, "name", p.Name)
	setIf(f, "description", p.Description)
	setIf(f, "price", p.Price)
	setIf(f, "duration_min", p.DurationMin)
	setIf(f, "active", p.Active)
	return f
}

// CatalogService manages what a barbershop offers.
type CatalogService struct {
	repo  ServiceRepository
	shops ShopLookup
}

func NewCatalogService(repo ServiceRepository, shops ShopLookup) *CatalogService {
	return &CatalogService{repo: repo, shops: shops}
}

func (s *CatalogService) Create(ctx context.Context, barbershopID uint, in ServiceInput) (*models.Service, error) {
	if err := requireShop(ctx, s.shops, barbershopID); err != nil {
		return nil, err
	}
	duration := in.DurationMin
	if duration <= 0 {
		duration = DefaultServiceDuration
	}
	svc := &models.Service{
		BarbershopID: barbershopID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		DurationMin:  duration,
		Active:       true,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) Update(ctx context.Context, barbershopID, serviceID uint, patch ServicePatch) (*models.Service, error) {
	svc, err := s.repo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, httperr.NotFound("Service not found")
	}
	if err := ownedBy(svc.BarbershopID, barbershopID, "Service"); err != nil {
		return nil, err
	}

	ok, err := s.repo.Update(ctx, serviceID, patch.fields())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.NotFound("Service not found")
	}
	return s.repo.FindByID(ctx, serviceID)
}

func (s *CatalogService) ListByBarbershop(ctx context.Context, barbershopID uint, includeInactive bool) ([]models.Service, error) {
	if err := requireShop(ctx, s.shops, barbershopID); err != nil {
		return nil, err
	}
	return s.repo.ListByBarbershop(ctx, barbershopID, !includeInactive)
}
