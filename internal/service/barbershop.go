package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/BruksfildServices01/barberin/internal/auth"
	"github.com/BruksfildServices01/barberin/internal/geo"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/metrics"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/timezone"
	"github.com/BruksfildServices01/barberin/internal/validators"
)

const DefaultRadiusKm = 10.0

type BarbershopRepository interface {
	Create(ctx context.Context, b *models.Barbershop) error
	FindByID(ctx context.Context, id uint) (*models.Barbershop, error)
	FindByEmail(ctx context.Context, email string) (*models.Barbershop, error)
	Update(ctx context.Context, id uint, fields map[string]any) (bool, error)
	List(ctx context.Context) ([]models.Barbershop, error)
	// ListLocated returns shops with coordinates, inside box when given.
	ListLocated(ctx context.Context, box *geo.Box) ([]models.Barbershop, error)
}

type RegisterBarbershopInput struct {
	Name              string
	Email             string
	Phone             string
	Password          string
	Address           string
	Latitude          *float64
	Longitude         *float64
	ResponsiblePerson string
	IDDocument        string
	OwnerPhone        string
	Description       string
	Timezone          string
}

type BarbershopPatch struct {
	Name              *string
	Phone             *string
	Address           *string
	Latitude          *float64
	Longitude         *float64
	ResponsiblePerson *string
	OwnerPhone        *string
	Description       *string
	ProfilePhotoURL   *string
	CoverPhotoURL     *string
	Timezone          *string
}

func (p BarbershopPatch) fields() map[string]any {
	f := map[string]any{}
	setIf(f, "name", p.Name)
	setIf(f, "phone", p.Phone)
	setIf(f, "address", p.Address)
	setIf(f, "latitude", p.Latitude)
	setIf(f, "longitude", p.Longitude)
	setIf(f, "responsible_person", p.ResponsiblePerson)
	setIf(f, "owner_phone", p.OwnerPhone)
	setIf(f, "description", p.Description)
	setIf(f, "profile_photo_url", p.ProfilePhotoURL)
	setIf(f, "cover_photo_url", p.CoverPhotoURL)
	setIf(f, "timezone", p.Timezone)
	return f
}

// BarbershopFilter narrows List to shops within RadiusKm of a point when
// both coordinates are set.
type BarbershopFilter struct {
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64
}

type BarbershopSession struct {
	Token      string             `json:"token"`
	Barbershop *models.Barbershop `json:"barbershop"`
}

type BarbershopService struct {
	repo            BarbershopRepository
	tokens          TokenIssuer
	emails          EmailChecker
	defaultTimezone string
}

func NewBarbershopService(repo BarbershopRepository, tokens TokenIssuer, emails EmailChecker, defaultTimezone string) *BarbershopService {
	if defaultTimezone == "" {
		defaultTimezone = timezone.DefaultTimezone
	}
	return &BarbershopService{repo: repo, tokens: tokens, emails: emails, defaultTimezone: defaultTimezone}
}

func (s *BarbershopService) Register(ctx context.Context, in RegisterBarbershopInput) (*models.Barbershop, error) {
	email := validators.NormalizeEmail(in.Email)
	if err := checkEmailDomain(ctx, s.emails, email); err != nil {
		return nil, err
	}

	tz := in.Timezone
	if tz == "" {
		tz = s.defaultTimezone
	}
	if !timezone.IsValid(tz) {
		return nil, httperr.Invalid("Unknown timezone")
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	b := &models.Barbershop{
		Name:              in.Name,
		Email:             email,
		PasswordHash:      hash,
		Phone:             in.Phone,
		Address:           in.Address,
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		ResponsiblePerson: in.ResponsiblePerson,
		IDDocument:        in.IDDocument,
		OwnerPhone:        in.OwnerPhone,
		Description:       in.Description,
		Timezone:          tz,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	metrics.Registrations.WithLabelValues(string(auth.RoleBarbershop)).Inc()
	return b, nil
}

func (s *BarbershopService) Login(ctx context.Context, email, password string) (*BarbershopSession, error) {
	b, err := s.repo.FindByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if b == nil || !checkPassword(b.PasswordHash, password) {
		metrics.Logins.WithLabelValues(string(auth.RoleBarbershop), "failed").Inc()
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.Issue(b.ID, auth.RoleBarbershop)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	metrics.Logins.WithLabelValues(string(auth.RoleBarbershop), "ok").Inc()
	return &BarbershopSession{Token: token, Barbershop: b}, nil
}

func (s *BarbershopService) GetByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BarbershopService) Update(ctx context.Context, id uint, patch BarbershopPatch) (bool, error) {
	if patch.Timezone != nil && !timezone.IsValid(*patch.Timezone) {
		return false, httperr.Invalid("Unknown timezone")
	}
	return s.repo.Update(ctx, id, patch.fields())
}

// List returns every shop, or, when the filter carries a point, the shops
// within the radius sorted nearest first.
func (s *BarbershopService) List(ctx context.Context, f BarbershopFilter) ([]models.BarbershopWithDistance, error) {
	if f.Latitude == nil || f.Longitude == nil {
		shops, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]models.BarbershopWithDistance, 0, len(shops))
		for _, b := range shops {
			out = append(out, models.BarbershopWithDistance{Barbershop: b})
		}
		return out, nil
	}

	center := geo.Point{Lat: *f.Latitude, Lng: *f.Longitude}
	if !geo.ValidPoint(center) {
		return nil, httperr.Invalid("Invalid coordinates")
	}
	radius := f.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}

	var box *geo.Box
	if b, ok := geo.BoundingBox(center, radius); ok {
		box = &b
	}
	shops, err := s.repo.ListLocated(ctx, box)
	if err != nil {
		return nil, err
	}

	out := make([]models.BarbershopWithDistance, 0, len(shops))
	for _, b := range shops {
		if b.Latitude == nil || b.Longitude == nil {
			continue
		}
		d, ok := geo.Within(center, geo.Point{Lat: *b.Latitude, Lng: *b.Longitude}, radius)
		if !ok {
			continue
		}
		out = append(out, models.BarbershopWithDistance{Barbershop: b, DistanceKm: &d})
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].DistanceKm < *out[j].DistanceKm })
	return out, nil
}
