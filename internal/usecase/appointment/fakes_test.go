package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/barberin/internal/audit"
	domain "github.com/BruksfildServices01/barberin/internal/domain/appointment"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/payment"
)

type memRepo struct {
	mu       sync.Mutex
	shops    map[uint]*models.Barbershop
	users    map[uint]*models.User
	services map[uint]*models.Service
	barbers  map[uint]*models.Barber
	apps     []*models.Appointment
}

func newMemRepo() *memRepo {
	return &memRepo{
		shops: map[uint]*models.Barbershop{
			1: {ID: 1, Name: "Corte Fino", Timezone: "America/Bogota"},
			2: {ID: 2, Name: "Navaja", Timezone: "America/Bogota"},
			3: {ID: 3, Name: "Tijeras", Timezone: "Europe/Madrid"},
		},
		users: map[uint]*models.User{
			10: {ID: 10, Email: "ana@example.com"},
			11: {ID: 11, Email: "luis@example.com"},
		},
		services: map[uint]*models.Service{
			100: {ID: 100, BarbershopID: 1, Name: "Haircut", DurationMin: 30, Price: 25000, Active: true},
			101: {ID: 101, BarbershopID: 1, Name: "Old", DurationMin: 30, Active: false},
			200: {ID: 200, BarbershopID: 2, Name: "Beard", DurationMin: 20, Active: true},
			300: {ID: 300, BarbershopID: 3, Name: "Corte", DurationMin: 30, Active: true},
		},
		barbers: map[uint]*models.Barber{
			5: {ID: 5, BarbershopID: 1, Name: "Leo", Active: true},
			6: {ID: 6, BarbershopID: 1, Name: "Off", Active: false},
		},
	}
}

func (m *memRepo) GetBarbershop(_ context.Context, id uint) (*models.Barbershop, error) {
	return m.shops[id], nil
}

func (m *memRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	return m.users[id], nil
}

func (m *memRepo) GetService(_ context.Context, shopID, id uint) (*models.Service, error) {
	s := m.services[id]
	if s == nil || s.BarbershopID != shopID {
		return nil, nil
	}
	return s, nil
}

func (m *memRepo) GetBarber(_ context.Context, shopID, id uint) (*models.Barber, error) {
	b := m.barbers[id]
	if b == nil || b.BarbershopID != shopID {
		return nil, nil
	}
	return b, nil
}

func (m *memRepo) CreateIfFree(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, other := range m.apps {
		if other.Status != string(domain.StatusScheduled) {
			continue
		}
		same := false
		switch {
		case ap.BarberID != nil:
			same = other.BarberID != nil && *other.BarberID == *ap.BarberID
		default:
			same = other.BarberID == nil && other.UserID == ap.UserID
		}
		if same && domain.Overlaps(ap.StartTime, ap.EndTime, other.StartTime, other.EndTime) {
			return httperr.ErrBusinessConflict("time_conflict")
		}
	}
	ap.ID = uint(len(m.apps) + 1)
	cp := *ap
	m.apps = append(m.apps, &cp)
	return nil
}

func (m *memRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	for _, ap := range m.apps {
		if ap.ID == id {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, other := range m.apps {
		if other.ID == ap.ID {
			cp := *ap
			m.apps[i] = &cp
		}
	}
	return nil
}

func (m *memRepo) ListForBarbershop(_ context.Context, shopID uint, f domain.ListFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range m.apps {
		if ap.BarbershopID != shopID {
			continue
		}
		if f.From != nil && ap.StartTime.Before(*f.From) {
			continue
		}
		if f.To != nil && !ap.StartTime.Before(*f.To) {
			continue
		}
		if f.Status != "" && ap.Status != string(f.Status) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (m *memRepo) ListForUser(_ context.Context, userID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range m.apps {
		if ap.UserID == userID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type fakeGateway struct {
	enabled bool
	err     error
	got     payment.CheckoutItem
}

func (g *fakeGateway) Enabled() bool { return g.enabled }

func (g *fakeGateway) CreateCheckout(_ context.Context, item payment.CheckoutItem) (*payment.Checkout, error) {
	g.got = item
	if g.err != nil {
		return nil, g.err
	}
	return &payment.Checkout{PreferenceID: "pref-1", CheckoutURL: "https://mp.test/pref-1"}, nil
}

// fixed is 2026-03-02 08:00 in Bogota.
func fixed() time.Time {
	return time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
}

func uintPtr(v uint) *uint { return &v }
