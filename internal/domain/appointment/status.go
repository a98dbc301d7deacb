package appointment

import "github.com/BruksfildServices01/office-master/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// transitions é a única fonte de verdade do ciclo de vida.
// completed e cancelled são terminais na prática, mas aceitam reabertura.
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusInProgress, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusScheduled},
	StatusCancelled:  {StatusScheduled},
}

func InitialStatus() Status {
	return StatusScheduled
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal indica estados que só saem por reabertura.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.ErrBusiness(httperr.CodeInvalidStatus)
	}
	return s, nil
}

// CanTransition diz se from -> to é uma transição legal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions devolve os próximos estados possíveis a partir de s.
func AllowedTransitions(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}
