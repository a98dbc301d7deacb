package appointment

import (
	"github.com/BruksfildServices01/office-master/internal/models"
)

// HasConflict decide se [candidateTime, candidateTime+candidateDuration)
// sobrepõe algum agendamento já existente no mesmo dia e dono.
//
// existingOnDate já deve vir filtrado por dono e data. Agendamentos
// cancelados não bloqueiam horário. excludeID == 0 desliga a exclusão;
// na edição, o próprio ID é excluído para não conflitar consigo mesmo.
func HasConflict(
	existingOnDate []models.Appointment,
	candidateTime string,
	candidateDuration int,
	excludeID uint,
) (bool, error) {

	candidate, err := NewInterval(candidateTime, candidateDuration)
	if err != nil {
		return false, err
	}

	for _, ap := range existingOnDate {
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if Status(ap.Status) == StatusCancelled {
			continue
		}

		existing, err := NewInterval(ap.Time, ap.DurationMinutes)
		if err != nil {
			return false, err
		}

		if candidate.Overlaps(existing) {
			return true, nil
		}
	}

	return false, nil
}
