package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/office-master/internal/domain/appointment"
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Workshop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkshopByID(
	ctx context.Context,
	id uint,
) (*models.Workshop, error) {

	var shop models.Workshop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, fmt.Errorf("get workshop %d: %w", id, err)
	}
	return &shop, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	workshopID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("id = ? AND workshop_id = ?", clientID, workshopID).
		First(&client).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get client %d: %w", clientID, err)
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Client").Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	workshopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("id = ? AND workshop_id = ?", appointmentID, workshopID).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment %d: %w", appointmentID, err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Client").Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	workshopID uint,
	appointmentID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND workshop_id = ?", appointmentID, workshopID).
		Delete(&models.Appointment{})

	if res.Error != nil {
		return fmt.Errorf("delete appointment %d: %w", appointmentID, res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDate(
	ctx context.Context,
	workshopID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("workshop_id = ? AND scheduled_date = ?", workshopID, date).
		Order("scheduled_time ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments for %s: %w", date, err)
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForOwner(
	ctx context.Context,
	workshopID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("workshop_id = ?", workshopID).
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	workshopID uint,
	from string,
	to string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("workshop_id = ? AND scheduled_date >= ? AND scheduled_date <= ?", workshopID, from, to).
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments %s..%s: %w", from, to, err)
	}

	return apps, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

// ListDueReminders devolve, de todos os donos, os agendamentos de date ainda
// sem lembrete e que não foram cancelados nem concluídos.
func (r *AppointmentGormRepository) ListDueReminders(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where(
			"scheduled_date = ? AND reminder_sent = ? AND status NOT IN ?",
			date,
			false,
			[]string{string(domain.StatusCancelled), string(domain.StatusCompleted)},
		).
		Order("workshop_id ASC, scheduled_time ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list due reminders for %s: %w", date, err)
	}

	return apps, nil
}

func (r *AppointmentGormRepository) MarkReminderSent(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("reminder_sent", true).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
