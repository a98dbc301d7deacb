package httperr

import "errors"

// Códigos de negócio compartilhados entre domínio, casos de uso e handlers.
const (
	CodeInvalidTimeFormat = "invalid_time_format"
	CodeInvalidDate       = "invalid_date"
	CodeInvalidDuration   = "invalid_duration"
	CodeInvalidStatus     = "invalid_status"
	CodeInvalidState      = "invalid_state"
	CodeTimeConflict      = "time_conflict"
	CodeNotFound          = "appointment_not_found"
	CodeClientNotFound    = "client_not_found"
	CodeDateInPast        = "date_in_past"
	CodeInvalidTitle      = "invalid_title"
	CodeInvalidType       = "invalid_type"
	CodeInvalidMonth      = "invalid_month"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode devolve o código quando err é (ou embrulha) um BusinessError.
func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
