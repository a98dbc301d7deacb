package appointment

import (
	"time"

	"github.com/BruksfildServices01/office-master/internal/models"
	"github.com/BruksfildServices01/office-master/internal/timezone"
)

// now é trocado nos testes.
var now = time.Now

func nowInWorkshop(shop *models.Workshop) time.Time {
	return now().In(timezone.Location(shop.Timezone))
}

func todayInWorkshop(shop *models.Workshop) string {
	return timezone.DateString(nowInWorkshop(shop))
}
