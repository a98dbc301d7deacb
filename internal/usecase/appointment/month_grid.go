package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/office-master/internal/domain/appointment"
	"github.com/BruksfildServices01/office-master/internal/dto"
	"github.com/BruksfildServices01/office-master/internal/httperr"
)

type MonthGridInput struct {
	WorkshopID uint
	Year       int
	Month      int

	// Selected vazio seleciona hoje.
	Selected string
}

type MonthGridOutput struct {
	Year                 int                      `json:"year"`
	Month                int                      `json:"month"`
	Days                 []domain.CalendarDay     `json:"days"`
	SelectedDate         string                   `json:"selected_date"`
	SelectedAppointments []dto.AppointmentListDTO `json:"selected_appointments"`
}

type GetMonthGrid struct {
	repo domain.Repository
}

func NewGetMonthGrid(repo domain.Repository) *GetMonthGrid {
	return &GetMonthGrid{repo: repo}
}

func (uc *GetMonthGrid) Execute(
	ctx context.Context,
	in MonthGridInput,
) (*MonthGridOutput, error) {

	if in.Month < 1 || in.Month > 12 || in.Year < 1 || in.Year > 9999 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidMonth)
	}

	shop, err := uc.repo.GetWorkshopByID(ctx, in.WorkshopID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Só o intervalo visível da grade
	// --------------------------------------------------
	from, to := gridRange(in.Year, time.Month(in.Month))

	aps, err := uc.repo.ListAppointmentsForPeriod(ctx, in.WorkshopID, from, to)
	if err != nil {
		return nil, err
	}

	today := nowInWorkshop(shop)
	days := domain.BuildMonthGrid(in.Year, time.Month(in.Month), aps, today)

	selected := in.Selected
	if selected == "" {
		selected = todayInWorkshop(shop)
	}
	if err := domain.ValidateDate(selected); err != nil {
		return nil, err
	}

	selectedAps := aps
	if !domain.SelectDay(days, selected) {
		selectedAps, err = uc.repo.ListAppointmentsForDate(ctx, in.WorkshopID, selected)
		if err != nil {
			return nil, err
		}
	}

	return &MonthGridOutput{
		Year:                 in.Year,
		Month:                in.Month,
		Days:                 days,
		SelectedDate:         selected,
		SelectedAppointments: dto.NewAppointmentList(domain.AppointmentsOn(selectedAps, selected)),
	}, nil
}

// gridRange devolve a primeira e a última data das 42 células.
func gridRange(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := start.AddDate(0, 0, domain.GridSize-1)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}
