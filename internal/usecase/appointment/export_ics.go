package appointment

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	domain "github.com/BruksfildServices01/office-master/internal/domain/appointment"
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/models"
	"github.com/BruksfildServices01/office-master/internal/timezone"
)

// ExportICS gera um feed iCalendar da agenda. Com Year/Month zerados
// exporta todos os agendamentos da oficina.
type ExportICS struct {
	repo domain.Repository
}

type ExportICSInput struct {
	WorkshopID uint
	Year       int
	Month      int
}

func NewExportICS(repo domain.Repository) *ExportICS {
	return &ExportICS{repo: repo}
}

func (uc *ExportICS) Execute(ctx context.Context, in ExportICSInput) (string, error) {
	shop, err := uc.repo.GetWorkshopByID(ctx, in.WorkshopID)
	if err != nil {
		return "", err
	}

	var aps []models.Appointment
	switch {
	case in.Year == 0 && in.Month == 0:
		aps, err = uc.repo.ListAppointmentsForOwner(ctx, in.WorkshopID)
	case in.Month < 1 || in.Month > 12 || in.Year < 1 || in.Year > 9999:
		return "", httperr.ErrBusiness(httperr.CodeInvalidMonth)
	default:
		first := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		aps, err = uc.repo.ListAppointmentsForPeriod(
			ctx,
			in.WorkshopID,
			first.Format("2006-01-02"),
			last.Format("2006-01-02"),
		)
	}
	if err != nil {
		return "", err
	}

	loc := timezone.Location(shop.Timezone)
	stamp := now()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Office Master//Agenda//PT")
	cal.SetXWRCalName(shop.Name)
	cal.SetXWRTimezone(loc.String())

	for _, ap := range aps {
		start, err := time.ParseInLocation("2006-01-02 15:04", ap.Date+" "+normalizeTime(ap.Time), loc)
		if err != nil {
			// registro legado com horário inválido fica fora do feed
			continue
		}

		ev := cal.AddEvent(fmt.Sprintf("appointment-%d@office-master", ap.ID))
		ev.SetDtStampTime(stamp)
		ev.SetCreatedTime(ap.CreatedAt)
		ev.SetModifiedAt(ap.UpdatedAt)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(time.Duration(ap.DurationMinutes) * time.Minute))
		ev.SetSummary(ap.Title)
		if desc := eventDescription(ap); desc != "" {
			ev.SetDescription(desc)
		}
		ev.SetStatus(eventStatus(domain.Status(ap.Status)))
	}

	return cal.Serialize(), nil
}

func eventStatus(s domain.Status) ics.ObjectStatus {
	switch s {
	case domain.StatusCancelled:
		return ics.ObjectStatusCancelled
	case domain.StatusScheduled:
		return ics.ObjectStatusTentative
	default:
		return ics.ObjectStatusConfirmed
	}
}

func eventDescription(ap models.Appointment) string {
	desc := ap.Description
	if ap.Client.Name != "" {
		desc = joinLine(desc, "Cliente: "+ap.Client.Name)
	}
	if ap.VehicleInfo != "" {
		desc = joinLine(desc, "Veículo: "+ap.VehicleInfo)
	}
	return desc
}

func joinLine(a, b string) string {
	if a == "" {
		return b
	}
	return a + "\n" + b
}
