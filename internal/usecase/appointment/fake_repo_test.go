package appointment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/office-master/internal/audit"
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/models"
)

// ======================================================
// Fake repository
// ======================================================

type fakeRepo struct {
	workshops    map[uint]models.Workshop
	clients      map[uint]models.Client
	appointments []models.Appointment
	nextID       uint

	periodCalls int
	ownerCalls  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		workshops: map[uint]models.Workshop{
			1: {ID: 1, Name: "Oficina Centro", Timezone: "America/Sao_Paulo"},
			2: {ID: 2, Name: "Oficina Norte", Timezone: "America/Sao_Paulo"},
		},
		clients: map[uint]models.Client{
			10: {ID: 10, WorkshopID: 1, Name: "Ana", Phone: "11999990000"},
			20: {ID: 20, WorkshopID: 2, Name: "Bruno"},
		},
		nextID: 100,
	}
}

func (r *fakeRepo) seed(ap models.Appointment) models.Appointment {
	if ap.ID == 0 {
		r.nextID++
		ap.ID = r.nextID
	}
	if ap.Status == "" {
		ap.Status = "scheduled"
	}
	r.appointments = append(r.appointments, ap)
	return ap
}

func (r *fakeRepo) GetWorkshopByID(_ context.Context, id uint) (*models.Workshop, error) {
	shop, ok := r.workshops[id]
	if !ok {
		return nil, errors.New("workshop not found")
	}
	return &shop, nil
}

func (r *fakeRepo) GetClient(_ context.Context, workshopID, clientID uint) (*models.Client, error) {
	c, ok := r.clients[clientID]
	if !ok || c.WorkshopID != workshopID {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	return &c, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.nextID++
	ap.ID = r.nextID
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, workshopID, id uint) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == id && ap.WorkshopID == workshopID {
			cp := ap
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeNotFound)
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, workshopID, id uint) error {
	for i, ap := range r.appointments {
		if ap.ID == id && ap.WorkshopID == workshopID {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeNotFound)
}

func (r *fakeRepo) ListAppointmentsForDate(_ context.Context, workshopID uint, date string) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.WorkshopID == workshopID && ap.Date == date {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForOwner(_ context.Context, workshopID uint) ([]models.Appointment, error) {
	r.ownerCalls++
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.WorkshopID == workshopID {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, workshopID uint, from, to string) ([]models.Appointment, error) {
	r.periodCalls++
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.WorkshopID == workshopID && ap.Date >= from && ap.Date <= to {
			out = append(out, ap)
		}
	}
	return out, nil
}

// ======================================================
// Audit sink
// ======================================================

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Log(ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

func newDispatcher(t *testing.T) (*audit.Dispatcher, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	d := audit.NewDispatcher(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return d, sink
}

// fixNow congela o relógio em 2024-03-15 10:00 de São Paulo.
func fixNow(t *testing.T) {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	fixed := time.Date(2024, 3, 15, 10, 0, 0, 0, loc)
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })
}

func wantBusiness(t *testing.T, err error, code string) {
	t.Helper()
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected business error %s, got %v", code, err)
	}
}
