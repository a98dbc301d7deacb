package appointment

import (
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/models"
)

// Workday é a janela de atendimento usada para sugerir horários livres.
type Workday struct {
	Start string
	End   string
	Step  int
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FreeSlots lista os inícios, a cada Step minutos dentro de Workday, em que
// um agendamento de durationMinutes não conflita com existingOnDate.
func FreeSlots(
	existingOnDate []models.Appointment,
	day Workday,
	durationMinutes int,
	excludeID uint,
) ([]TimeSlot, error) {

	dayStart, err := ParseTimeToMinutes(day.Start)
	if err != nil {
		return nil, err
	}
	dayEnd, err := ParseTimeToMinutes(day.End)
	if err != nil {
		return nil, err
	}
	if durationMinutes <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDuration)
	}

	step := day.Step
	if step <= 0 {
		step = 30
	}

	slots := []TimeSlot{}
	for cur := dayStart; cur+durationMinutes <= dayEnd; cur += step {
		conflict, err := HasConflict(existingOnDate, FormatMinutes(cur), durationMinutes, excludeID)
		if err != nil {
			return nil, err
		}
		if !conflict {
			slots = append(slots, TimeSlot{
				Start: FormatMinutes(cur),
				End:   FormatMinutes(cur + durationMinutes),
			})
		}
	}

	return slots, nil
}
