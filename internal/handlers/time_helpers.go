package handlers

import (
	"time"

	"github.com/BruksfildServices01/office-master/internal/models"
	"github.com/BruksfildServices01/office-master/internal/timezone"
)

// --------------------------------------------------
// Datas no fuso da oficina
// --------------------------------------------------

// parseDateInWorkshop interpreta YYYY-MM-DD como meia-noite local.
func parseDateInWorkshop(shop *models.Workshop, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(shop.Timezone),
	)
}

// optionalDate converte "" em nil e datas válidas em ponteiro.
func optionalDate(shop *models.Workshop, dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}
	t, err := parseDateInWorkshop(shop, dateStr)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
