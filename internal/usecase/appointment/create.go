package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/office-master/internal/audit"
	domain "github.com/BruksfildServices01/office-master/internal/domain/appointment"
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	WorkshopID uint
	UserID     uint

	ClientID uint

	Title       string
	Description string
	Date        string
	Time        string
	Duration    int
	Type        string
	VehicleInfo string
	Notes       string

	// AllowConflict grava mesmo com sobreposição ("criar mesmo assim").
	AllowConflict bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Oficina
	// --------------------------------------------------
	shop, err := uc.repo.GetWorkshopByID(ctx, in.WorkshopID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Campos + defaults
	// --------------------------------------------------
	ap := &models.Appointment{
		WorkshopID:      in.WorkshopID,
		ClientID:        in.ClientID,
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Date:            in.Date,
		Time:            in.Time,
		DurationMinutes: in.Duration,
		Type:            in.Type,
		VehicleInfo:     in.VehicleInfo,
		Notes:           in.Notes,
		Status:          string(domain.InitialStatus()),
	}
	if ap.DurationMinutes == 0 {
		ap.DurationMinutes = domain.DefaultDurationMinutes
	}
	if ap.Type == "" {
		ap.Type = string(domain.TypeOther)
	}

	if err := domain.Validate(ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Data no fuso da oficina
	// --------------------------------------------------
	if ap.Date < todayInWorkshop(shop) {
		return nil, httperr.ErrBusiness(httperr.CodeDateInPast)
	}

	// --------------------------------------------------
	// 4️⃣ Cliente
	// --------------------------------------------------
	if _, err := uc.repo.GetClient(ctx, in.WorkshopID, in.ClientID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Conflito de horário
	// --------------------------------------------------
	sameDay, err := uc.repo.ListAppointmentsForDate(ctx, in.WorkshopID, ap.Date)
	if err != nil {
		return nil, err
	}

	conflict, err := domain.HasConflict(sameDay, ap.Time, ap.DurationMinutes, 0)
	if err != nil {
		return nil, err
	}
	if conflict && !in.AllowConflict {
		return nil, httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	ap.Time = normalizeTime(ap.Time)

	// --------------------------------------------------
	// 6️⃣ Persistência
	// --------------------------------------------------
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.DispatchContext(ctx, audit.Event{
		WorkshopID: in.WorkshopID,
		UserID:     &in.UserID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	if conflict {
		uc.audit.DispatchContext(ctx, audit.Event{
			WorkshopID: in.WorkshopID,
			UserID:     &in.UserID,
			Action:     "appointment_conflict_overridden",
			Entity:     "appointment",
			EntityID:   &ap.ID,
			Metadata: map[string]any{
				"date": ap.Date,
				"time": ap.Time,
			},
		})
	}

	return ap, nil
}

// normalizeTime grava sempre HH:MM com dois dígitos. Só é chamado depois
// de Validate, então o parse não falha.
func normalizeTime(hm string) string {
	m, err := domain.ParseTimeToMinutes(hm)
	if err != nil {
		return hm
	}
	return domain.FormatMinutes(m)
}
