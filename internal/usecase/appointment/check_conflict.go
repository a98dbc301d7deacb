package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/office-master/internal/domain/appointment"
)

type CheckConflictInput struct {
	WorkshopID uint
	Date       string
	Time       string
	Duration   int
	ExcludeID  uint
}

type CheckConflictOutput struct {
	Conflict    bool              `json:"conflict"`
	Suggestions []domain.TimeSlot `json:"suggestions"`
}

// CheckConflict responde antes de gravar se o horário sobrepõe algum
// agendamento do dia e, se sim, sugere horários livres.
type CheckConflict struct {
	repo    domain.Repository
	workday domain.Workday
}

func NewCheckConflict(repo domain.Repository, workday domain.Workday) *CheckConflict {
	return &CheckConflict{repo: repo, workday: workday}
}

func (uc *CheckConflict) Execute(
	ctx context.Context,
	in CheckConflictInput,
) (*CheckConflictOutput, error) {

	if err := domain.ValidateDate(in.Date); err != nil {
		return nil, err
	}

	duration := in.Duration
	if duration == 0 {
		duration = domain.DefaultDurationMinutes
	}

	sameDay, err := uc.repo.ListAppointmentsForDate(ctx, in.WorkshopID, in.Date)
	if err != nil {
		return nil, err
	}

	conflict, err := domain.HasConflict(sameDay, in.Time, duration, in.ExcludeID)
	if err != nil {
		return nil, err
	}

	out := &CheckConflictOutput{
		Conflict:    conflict,
		Suggestions: []domain.TimeSlot{},
	}
	if !conflict {
		return out, nil
	}

	slots, err := domain.FreeSlots(sameDay, uc.workday, duration, in.ExcludeID)
	if err != nil {
		return nil, err
	}
	out.Suggestions = slots

	return out, nil
}
