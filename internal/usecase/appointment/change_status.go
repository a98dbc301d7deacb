package appointment

import (
	"context"

	"github.com/BruksfildServices01/office-master/internal/audit"
	domain "github.com/BruksfildServices01/office-master/internal/domain/appointment"
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/models"
)

type ChangeAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewChangeAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ChangeAppointmentStatus {
	return &ChangeAppointmentStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute aplica uma transição da tabela de status. Reabrir um cancelado
// volta a ocupar a agenda, então passa pela checagem de conflito.
func (uc *ChangeAppointmentStatus) Execute(
	ctx context.Context,
	workshopID uint,
	userID uint,
	appointmentID uint,
	rawStatus string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	shop, err := uc.repo.GetWorkshopByID(ctx, workshopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, workshopID, appointmentID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(ap.Status)

	if from == domain.StatusCancelled && to == domain.StatusScheduled {
		sameDay, err := uc.repo.ListAppointmentsForDate(ctx, workshopID, ap.Date)
		if err != nil {
			return nil, err
		}
		conflict, err := domain.HasConflict(sameDay, ap.Time, ap.DurationMinutes, ap.ID)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
	}

	if err := domain.Transition(ap, to, nowInWorkshop(shop)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.DispatchContext(ctx, audit.Event{
		WorkshopID: workshopID,
		UserID:     &userID,
		Action:     "appointment_" + string(to),
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"from": string(from),
			"to":   string(to),
		},
	})

	return ap, nil
}
