package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/office-master/internal/models"
)

// GridSize é fixo: 6 semanas x 7 dias, domingo na coluna 0.
const GridSize = 42

type CalendarDay struct {
	Date            string               `json:"date"`
	DayOfMonth      int                  `json:"day_of_month"`
	IsInTargetMonth bool                 `json:"is_in_target_month"`
	IsToday         bool                 `json:"is_today"`
	IsSelected      bool                 `json:"is_selected"`
	Appointments    []models.Appointment `json:"appointments"`
}

// BuildMonthGrid monta a grade de 42 dias do mês (year, month), começando no
// domingo anterior (ou igual) ao dia 1. Cada célula recebe, na ordem de
// entrada, os agendamentos cuja Date é igual à data da célula, inclusive os
// cancelados. today é comparado só pela data de calendário.
func BuildMonthGrid(
	year int,
	month time.Month,
	all []models.Appointment,
	today time.Time,
) []CalendarDay {

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	todayKey := today.Format(dateLayout)

	byDate := make(map[string][]models.Appointment)
	for _, ap := range all {
		byDate[ap.Date] = append(byDate[ap.Date], ap)
	}

	days := make([]CalendarDay, 0, GridSize)
	for i := 0; i < GridSize; i++ {
		d := start.AddDate(0, 0, i)
		key := d.Format(dateLayout)

		aps := byDate[key]
		if aps == nil {
			aps = []models.Appointment{}
		}

		days = append(days, CalendarDay{
			Date:            key,
			DayOfMonth:      d.Day(),
			IsInTargetMonth: d.Year() == first.Year() && d.Month() == first.Month(),
			IsToday:         key == todayKey,
			Appointments:    aps,
		})
	}

	return days
}

// SelectDay marca a célula de date como selecionada. Devolve false quando a
// data não está na grade.
func SelectDay(days []CalendarDay, date string) bool {
	found := false
	for i := range days {
		days[i].IsSelected = days[i].Date == date
		if days[i].IsSelected {
			found = true
		}
	}
	return found
}

// AppointmentsOn filtra um dia e ordena por horário de início.
// Horários inválidos vão para o fim, mantendo a ordem original.
func AppointmentsOn(all []models.Appointment, date string) []models.Appointment {
	out := make([]models.Appointment, 0)
	for _, ap := range all {
		if ap.Date == date {
			out = append(out, ap)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, errA := ParseTimeToMinutes(out[i].Time)
		b, errB := ParseTimeToMinutes(out[j].Time)
		if errA != nil || errB != nil {
			return errA == nil && errB != nil
		}
		return a < b
	})

	return out
}
