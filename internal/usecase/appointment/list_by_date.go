package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/office-master/internal/domain/appointment"
	"github.com/BruksfildServices01/office-master/internal/dto"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	workshopID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if err := domain.ValidateDate(date); err != nil {
		return nil, err
	}

	aps, err := uc.repo.ListAppointmentsForDate(ctx, workshopID, date)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(domain.AppointmentsOn(aps, date)), nil
}
