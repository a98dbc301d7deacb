package appointment

import (
	"context"

	"github.com/BruksfildServices01/office-master/internal/audit"
	domain "github.com/BruksfildServices01/office-master/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	workshopID uint,
	userID uint,
	appointmentID uint,
) error {

	if err := uc.repo.DeleteAppointment(ctx, workshopID, appointmentID); err != nil {
		return err
	}

	uc.audit.DispatchContext(ctx, audit.Event{
		WorkshopID: workshopID,
		UserID:     &userID,
		Action:     "appointment_deleted",
		Entity:     "appointment",
		EntityID:   &appointmentID,
	})

	return nil
}
