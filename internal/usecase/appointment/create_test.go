package appointment

import (
	"context"
	"reflect"
	"testing"

	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/models"
)

func validCreateInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		WorkshopID: 1,
		UserID:     7,
		ClientID:   10,
		Title:      "Revisão 10 mil km",
		Date:       "2024-03-20",
		Time:       "9:00",
	}
}

func TestCreateAppointment_Defaults(t *testing.T) {
	fixNow(t)
	repo := newFakeRepo()
	d, sink := newDispatcher(t)

	ap, err := NewCreateAppointment(repo, d).Execute(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d.Close()

	if ap.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}
	if ap.Status != "scheduled" || ap.Type != "other" || ap.DurationMinutes != 60 {
		t.Fatalf("unexpected defaults: %+v", ap)
	}
	if ap.Time != "09:00" {
		t.Fatalf("expected normalized time 09:00, got %s", ap.Time)
	}
	if got := sink.actions(); !reflect.DeepEqual(got, []string{"appointment_created"}) {
		t.Fatalf("unexpected audit trail %v", got)
	}
}

func TestCreateAppointment_Validation(t *testing.T) {
	fixNow(t)

	cases := []struct {
		name string
		mut  func(*CreateAppointmentInput)
		code string
	}{
		{"short title", func(in *CreateAppointmentInput) { in.Title = "ab" }, httperr.CodeInvalidTitle},
		{"bad time", func(in *CreateAppointmentInput) { in.Time = "25:00" }, httperr.CodeInvalidTimeFormat},
		{"bad date", func(in *CreateAppointmentInput) { in.Date = "20/03/2024" }, httperr.CodeInvalidDate},
		{"short duration", func(in *CreateAppointmentInput) { in.Duration = 10 }, httperr.CodeInvalidDuration},
		{"bad type", func(in *CreateAppointmentInput) { in.Type = "wash" }, httperr.CodeInvalidType},
		{"past date", func(in *CreateAppointmentInput) { in.Date = "2024-03-14" }, httperr.CodeDateInPast},
		{"client of other workshop", func(in *CreateAppointmentInput) { in.ClientID = 20 }, httperr.CodeClientNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			d, _ := newDispatcher(t)
			defer d.Close()

			in := validCreateInput()
			tc.mut(&in)
			_, err := NewCreateAppointment(repo, d).Execute(context.Background(), in)
			wantBusiness(t, err, tc.code)
			if len(repo.appointments) != 0 {
				t.Fatalf("expected nothing persisted")
			}
		})
	}
}

func TestCreateAppointment_TodayIsAllowed(t *testing.T) {
	fixNow(t)
	repo := newFakeRepo()
	d, _ := newDispatcher(t)
	defer d.Close()

	in := validCreateInput()
	in.Date = "2024-03-15"
	if _, err := NewCreateAppointment(repo, d).Execute(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateAppointment_Conflict(t *testing.T) {
	fixNow(t)
	repo := newFakeRepo()
	repo.seed(models.Appointment{WorkshopID: 1, Date: "2024-03-20", Time: "09:30", DurationMinutes: 60})
	// outra oficina no mesmo horário não interfere
	repo.seed(models.Appointment{WorkshopID: 2, Date: "2024-03-20", Time: "14:00", DurationMinutes: 60})

	d, sink := newDispatcher(t)
	uc := NewCreateAppointment(repo, d)

	_, err := uc.Execute(context.Background(), validCreateInput())
	wantBusiness(t, err, httperr.CodeTimeConflict)

	in := validCreateInput()
	in.Time = "10:30"
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("touching slot should be accepted: %v", err)
	}

	in = validCreateInput()
	in.Time = "14:00"
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("other workshop should not block: %v", err)
	}

	in = validCreateInput()
	in.AllowConflict = true
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("override should be accepted: %v", err)
	}
	d.Close()

	want := []string{
		"appointment_created",
		"appointment_created",
		"appointment_created",
		"appointment_conflict_overridden",
	}
	if got := sink.actions(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
