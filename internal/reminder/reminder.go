package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/office-master/internal/audit"
	"github.com/BruksfildServices01/office-master/internal/models"
	"github.com/BruksfildServices01/office-master/internal/timezone"
)

// Store é o recorte do repositório que a varredura usa.
type Store interface {
	ListDueReminders(ctx context.Context, date string) ([]models.Appointment, error)
	MarkReminderSent(ctx context.Context, appointmentID uint) error
	GetWorkshopByID(ctx context.Context, id uint) (*models.Workshop, error)
}

type Sweeper struct {
	store    Store
	audit    *audit.Dispatcher
	log      *slog.Logger
	timezone string
	now      func() time.Time
}

func NewSweeper(store Store, dispatcher *audit.Dispatcher, log *slog.Logger, tz string) *Sweeper {
	return &Sweeper{
		store:    store,
		audit:    dispatcher,
		log:      log,
		timezone: tz,
		now:      time.Now,
	}
}

// SweepDueReminders registra o lembrete de cada agendamento de date ainda
// pendente e marca como enviado. Devolve quantos foram marcados.
func (s *Sweeper) SweepDueReminders(ctx context.Context, date string) (int, error) {
	due, err := s.store.ListDueReminders(ctx, date)
	if err != nil {
		return 0, err
	}
	return s.send(ctx, due)
}

func (s *Sweeper) send(ctx context.Context, due []models.Appointment) (int, error) {
	sent := 0
	for _, ap := range due {
		if err := s.store.MarkReminderSent(ctx, ap.ID); err != nil {
			return sent, fmt.Errorf("mark reminder %d: %w", ap.ID, err)
		}

		id := ap.ID
		s.audit.DispatchContext(ctx, audit.Event{
			WorkshopID: ap.WorkshopID,
			Action:     "appointment_reminder_due",
			Entity:     "appointment",
			EntityID:   &id,
			Metadata: map[string]any{
				"date":         ap.Date,
				"time":         ap.Time,
				"client_name":  ap.Client.Name,
				"client_phone": ap.Client.Phone,
			},
		})
		sent++
	}

	return sent, nil
}

// tomorrowIn é o dia seguinte no fuso tz; vazio usa o fuso padrão do sweeper.
func (s *Sweeper) tomorrowIn(tz string) string {
	if tz == "" {
		tz = s.timezone
	}
	return timezone.DateString(s.now().In(timezone.Location(tz)).AddDate(0, 0, 1))
}

// SweepTomorrow envia os lembretes do dia seguinte de cada oficina, no fuso
// dela. Hoje em qualquer fuso fica a um dia da data UTC, então o amanhã de
// cada oficina está entre hoje e depois de amanhã em UTC.
func (s *Sweeper) SweepTomorrow(ctx context.Context) (int, error) {
	utcToday := s.now().UTC()
	zones := map[uint]string{}

	sent := 0
	for offset := 0; offset <= 2; offset++ {
		date := timezone.DateString(utcToday.AddDate(0, 0, offset))

		due, err := s.store.ListDueReminders(ctx, date)
		if err != nil {
			return sent, err
		}

		var mine []models.Appointment
		for _, ap := range due {
			tz, ok := zones[ap.WorkshopID]
			if !ok {
				shop, err := s.store.GetWorkshopByID(ctx, ap.WorkshopID)
				if err != nil {
					return sent, fmt.Errorf("workshop %d timezone: %w", ap.WorkshopID, err)
				}
				tz = shop.Timezone
				zones[ap.WorkshopID] = tz
			}
			if ap.Date == s.tomorrowIn(tz) {
				mine = append(mine, ap)
			}
		}

		n, err := s.send(ctx, mine)
		sent += n
		if err != nil {
			return sent, err
		}
	}

	return sent, nil
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.SweepTomorrow(ctx)
	if err != nil {
		s.log.Error("reminder sweep failed", "sent", n, "err", err)
		return
	}
	s.log.Info("reminder sweep done", "sent", n)
}

// Start agenda a varredura com uma expressão cron de 5 campos.
// O chamador deve parar o *cron.Cron devolvido no shutdown.
func (s *Sweeper) Start(schedule string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(timezone.Location(s.timezone)))
	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
