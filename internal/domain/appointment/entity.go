package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/models"
)

const (
	DefaultDurationMinutes = 60
	MinDurationMinutes     = 15
	MaxDurationMinutes     = 480
	minTitleLength         = 3
)

type Type string

const (
	TypeMaintenance  Type = "maintenance"
	TypeRepair       Type = "repair"
	TypeInspection   Type = "inspection"
	TypeConsultation Type = "consultation"
	TypeOther        Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeMaintenance, TypeRepair, TypeInspection, TypeConsultation, TypeOther:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// ValidateDate exige YYYY-MM-DD de calendário.
func ValidateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidDate)
	}
	return nil
}

func ValidateDuration(minutes int) error {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return httperr.ErrBusiness(httperr.CodeInvalidDuration)
	}
	return nil
}

// Validate confere os campos de um agendamento antes de gravar.
func Validate(ap *models.Appointment) error {
	if len(strings.TrimSpace(ap.Title)) < minTitleLength {
		return httperr.ErrBusiness(httperr.CodeInvalidTitle)
	}
	if err := ValidateDate(ap.Date); err != nil {
		return err
	}
	if _, err := ParseTimeToMinutes(ap.Time); err != nil {
		return err
	}
	if err := ValidateDuration(ap.DurationMinutes); err != nil {
		return err
	}
	if !Type(ap.Type).Valid() {
		return httperr.ErrBusiness(httperr.CodeInvalidType)
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

// Transition aplica from -> to conforme a tabela de status.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if !CanTransition(Status(ap.Status), to) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusInProgress:
		ap.StartedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusScheduled:
		ap.ConfirmedAt = nil
		ap.StartedAt = nil
		ap.CompletedAt = nil
		ap.CancelledAt = nil
	}

	ap.Status = string(to)
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCompleted, now)
}

func Reopen(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusScheduled, now)
}
