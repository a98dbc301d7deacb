package appointment

import (
	"context"

	"github.com/BruksfildServices01/office-master/internal/models"
)

// Repository é o "record store" da agenda. Todas as consultas são
// escopadas por dono (workshopID). As funções puras deste pacote nunca o
// chamam: os casos de uso buscam primeiro e depois calculam.
type Repository interface {
	// -------- Workshop --------
	GetWorkshopByID(
		ctx context.Context,
		id uint,
	) (*models.Workshop, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		workshopID uint,
		clientID uint,
	) (*models.Client, error)

	// -------- Appointment (CRUD) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		workshopID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		workshopID uint,
		appointmentID uint,
	) error

	// -------- Queries --------
	ListAppointmentsForDate(
		ctx context.Context,
		workshopID uint,
		date string,
	) ([]models.Appointment, error)

	ListAppointmentsForOwner(
		ctx context.Context,
		workshopID uint,
	) ([]models.Appointment, error)

	// ListAppointmentsForPeriod usa datas YYYY-MM-DD, intervalo fechado.
	ListAppointmentsForPeriod(
		ctx context.Context,
		workshopID uint,
		from string,
		to string,
	) ([]models.Appointment, error)
}
