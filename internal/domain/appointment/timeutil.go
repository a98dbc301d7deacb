package appointment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/office-master/internal/httperr"
)

const (
	minutesPerDay = 24 * 60
	dateLayout    = "2006-01-02"
)

// Interval é um intervalo semiaberto [Start, End) em minutos desde a meia-noite.
type Interval struct {
	Start int
	End   int
}

// ParseTimeToMinutes converte "HH:MM" (24h) em minutos desde a meia-noite.
// Entradas fora do formato retornam invalid_time_format.
func ParseTimeToMinutes(hm string) (int, error) {
	parts := strings.Split(hm, ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidTimeFormat)
	}
	// Atoi aceita sinal; aqui só dígitos ASCII.
	if !allDigits(parts[0]) || !allDigits(parts[1]) {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidTimeFormat)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidTimeFormat)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidTimeFormat)
	}

	return hour*60 + minute, nil
}

func allDigits(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}

// FormatMinutes é o inverso de ParseTimeToMinutes.
func FormatMinutes(m int) string {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// IntervalsOverlap testa sobreposição de intervalos semiabertos.
// Intervalos que apenas se tocam (endA == startB) não se sobrepõem.
func IntervalsOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && endA > startB
}

func NewInterval(hm string, durationMinutes int) (Interval, error) {
	if durationMinutes <= 0 {
		return Interval{}, httperr.ErrBusiness(httperr.CodeInvalidDuration)
	}

	start, err := ParseTimeToMinutes(hm)
	if err != nil {
		return Interval{}, err
	}

	return Interval{Start: start, End: start + durationMinutes}, nil
}

func (i Interval) Overlaps(o Interval) bool {
	return IntervalsOverlap(i.Start, i.End, o.Start, o.End)
}
