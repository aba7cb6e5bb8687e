package service

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barberin/internal/geo"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/models"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

type memUsers struct {
	mu      sync.Mutex
	rows    map[uint]*models.User
	nextID  uint
	updates []map[string]any
}

func newMemUsers() *memUsers { return &memUsers{rows: map[uint]*models.User{}} }

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Email == u.Email {
			return httperr.Conflict("User with this email already exists")
		}
	}
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.rows[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByGoogleID(_ context.Context, gid string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.GoogleID != nil && *u.GoogleID == gid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, id uint, fields map[string]any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, fields)
	u, ok := m.rows[id]
	if !ok {
		return false, nil
	}
	for k, v := range fields {
		switch k {
		case "first_name":
			u.FirstName = v.(string)
		case "last_name":
			u.LastName = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "address":
			u.Address = v.(string)
		case "age_range":
			u.AgeRange = v.(string)
		case "profile_photo_url":
			u.ProfilePhotoURL = v.(string)
		case "google_id":
			gid := v.(string)
			u.GoogleID = &gid
		}
	}
	return true, nil
}

func (m *memUsers) List(_ context.Context, offset, limit int) ([]models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	var out []models.User
	for i, id := range ids {
		if i >= offset && len(out) < limit {
			out = append(out, *m.rows[uint(id)])
		}
	}
	return out, int64(len(ids)), nil
}

type memShops struct {
	rows   map[uint]*models.Barbershop
	nextID uint
	boxes  []*geo.Box
}

func newMemShops(shops ...models.Barbershop) *memShops {
	m := &memShops{rows: map[uint]*models.Barbershop{}}
	for i := range shops {
		_ = m.Create(context.Background(), &shops[i])
	}
	return m
}

func (m *memShops) Create(_ context.Context, b *models.Barbershop) error {
	for _, row := range m.rows {
		if row.Email != "" && row.Email == b.Email {
			return httperr.Conflict("Barbershop with this email already exists")
		}
	}
	m.nextID++
	b.ID = m.nextID
	cp := *b
	m.rows[b.ID] = &cp
	return nil
}

func (m *memShops) FindByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if b, ok := m.rows[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (m *memShops) FindByEmail(_ context.Context, email string) (*models.Barbershop, error) {
	for _, b := range m.rows {
		if b.Email == email {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memShops) Update(_ context.Context, id uint, fields map[string]any) (bool, error) {
	b, ok := m.rows[id]
	if !ok {
		return false, nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			b.Name = v.(string)
		case "description":
			b.Description = v.(string)
		case "timezone":
			b.Timezone = v.(string)
		}
	}
	return true, nil
}

func (m *memShops) sorted() []models.Barbershop {
	out := make([]models.Barbershop, 0, len(m.rows))
	for _, b := range m.rows {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memShops) List(context.Context) ([]models.Barbershop, error) {
	return m.sorted(), nil
}

func (m *memShops) ListLocated(_ context.Context, box *geo.Box) ([]models.Barbershop, error) {
	m.boxes = append(m.boxes, box)
	var out []models.Barbershop
	for _, b := range m.sorted() {
		if b.Latitude == nil || b.Longitude == nil {
			continue
		}
		if box != nil && !box.Contains(geo.Point{Lat: *b.Latitude, Lng: *b.Longitude}) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type memBarbers struct {
	rows   map[uint]*models.Barber
	nextID uint
}

func newMemBarbers() *memBarbers { return &memBarbers{rows: map[uint]*models.Barber{}} }

func (m *memBarbers) Create(_ context.Context, b *models.Barber) error {
	m.nextID++
	b.ID = m.nextID
	cp := *b
	m.rows[b.ID] = &cp
	return nil
}

func (m *memBarbers) FindByID(_ context.Context, id uint) (*models.Barber, error) {
	if b, ok := m.rows[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (m *memBarbers) Update(_ context.Context, id uint, fields map[string]any) (bool, error) {
	b, ok := m.rows[id]
	if !ok {
		return false, nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			b.Name = v.(string)
		case "specialty":
			b.Specialty = v.(string)
		case "active":
			b.Active = v.(bool)
		}
	}
	return true, nil
}

func (m *memBarbers) ListByBarbershop(_ context.Context, shopID uint, onlyActive bool) ([]models.Barber, error) {
	var out []models.Barber
	for id := uint(1); id <= m.nextID; id++ {
		b, ok := m.rows[id]
		if ok && b.BarbershopID == shopID && (!onlyActive || b.Active) {
			out = append(out, *b)
		}
	}
	return out, nil
}

type memServices struct {
	rows   map[uint]*models.Service
	nextID uint
}

func newMemServices() *memServices { return &memServices{rows: map[uint]*models.Service{}} }

func (m *memServices) Create(_ context.Context, s *models.Service) error {
	m.nextID++
	s.ID = m.nextID
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memServices) FindByID(_ context.Context, id uint) (*models.Service, error) {
	if s, ok := m.rows[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *memServices) Update(_ context.Context, id uint, fields map[string]any) (bool, error) {
	s, ok := m.rows[id]
	if !ok {
		return false, nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			s.Name = v.(string)
		case "price":
			s.Price = v.(float64)
		case "duration_min":
			s.DurationMin = v.(int)
		case "active":
			s.Active = v.(bool)
		}
	}
	return true, nil
}

func (m *memServices) ListByBarbershop(_ context.Context, shopID uint, onlyActive bool) ([]models.Service, error) {
	var out []models.Service
	for id := uint(1); id <= m.nextID; id++ {
		s, ok := m.rows[id]
		if ok && s.BarbershopID == shopID && (!onlyActive || s.Active) {
			out = append(out, *s)
		}
	}
	return out, nil
}

type memReviews struct {
	rows   map[uint]*models.Review
	nextID uint
}

func newMemReviews() *memReviews { return &memReviews{rows: map[uint]*models.Review{}} }

func (m *memReviews) Create(_ context.Context, r *models.Review) error {
	for _, row := range m.rows {
		if row.UserID == r.UserID && row.BarbershopID == r.BarbershopID {
			return httperr.Conflict("You have already reviewed this barbershop")
		}
	}
	m.nextID++
	r.ID = m.nextID
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memReviews) FindByID(_ context.Context, id uint) (*models.Review, error) {
	if r, ok := m.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (m *memReviews) Update(_ context.Context, id uint, fields map[string]any) (bool, error) {
	r, ok := m.rows[id]
	if !ok {
		return false, nil
	}
	if v, ok := fields["rating"]; ok {
		r.Rating = v.(int)
	}
	if v, ok := fields["comment"]; ok {
		r.Comment = v.(string)
	}
	return true, nil
}

func (m *memReviews) ListByBarbershop(_ context.Context, shopID uint) ([]models.Review, error) {
	var out []models.Review
	for id := uint(1); id <= m.nextID; id++ {
		if r, ok := m.rows[id]; ok && r.BarbershopID == shopID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type stubEmails bool

func (s stubEmails) Valid(context.Context, string) bool { return bool(s) }

func ptr[T any](v T) *T { return &v }
