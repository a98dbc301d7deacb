package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/office-master/internal/audit"
	domain "github.com/BruksfildServices01/office-master/internal/domain/appointment"
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/models"
)

// UpdateAppointmentInput usa ponteiros: nil mantém o valor atual.
type UpdateAppointmentInput struct {
	WorkshopID    uint
	UserID        uint
	AppointmentID uint

	ClientID    *uint
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Duration    *int
	Type        *string
	VehicleInfo *string
	Notes       *string

	AllowConflict bool
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetWorkshopByID(ctx, in.WorkshopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.WorkshopID, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	prevDate := ap.Date
	prevTime := ap.Time
	prevDuration := ap.DurationMinutes

	if in.Title != nil {
		ap.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		ap.Description = *in.Description
	}
	if in.Date != nil {
		ap.Date = *in.Date
	}
	if in.Time != nil {
		ap.Time = *in.Time
	}
	if in.Duration != nil {
		ap.DurationMinutes = *in.Duration
	}
	if in.Type != nil {
		ap.Type = *in.Type
	}
	if in.VehicleInfo != nil {
		ap.VehicleInfo = *in.VehicleInfo
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if err := domain.Validate(ap); err != nil {
		return nil, err
	}

	if ap.Date != prevDate && ap.Date < todayInWorkshop(shop) {
		return nil, httperr.ErrBusiness(httperr.CodeDateInPast)
	}

	if in.ClientID != nil && *in.ClientID != ap.ClientID {
		client, err := uc.repo.GetClient(ctx, in.WorkshopID, *in.ClientID)
		if err != nil {
			return nil, err
		}
		ap.ClientID = client.ID
		ap.Client = *client
	}

	// --------------------------------------------------
	// Conflito só quando o horário muda; o próprio registro é excluído
	// --------------------------------------------------
	rescheduled := ap.Date != prevDate ||
		normalizeTime(ap.Time) != normalizeTime(prevTime) ||
		ap.DurationMinutes != prevDuration

	conflict := false
	if rescheduled && domain.Status(ap.Status) != domain.StatusCancelled {
		sameDay, err := uc.repo.ListAppointmentsForDate(ctx, in.WorkshopID, ap.Date)
		if err != nil {
			return nil, err
		}

		conflict, err = domain.HasConflict(sameDay, ap.Time, ap.DurationMinutes, ap.ID)
		if err != nil {
			return nil, err
		}
		if conflict && !in.AllowConflict {
			return nil, httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
	}

	ap.Time = normalizeTime(ap.Time)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.DispatchContext(ctx, audit.Event{
		WorkshopID: in.WorkshopID,
		UserID:     &in.UserID,
		Action:     "appointment_updated",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"rescheduled": rescheduled,
		},
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
