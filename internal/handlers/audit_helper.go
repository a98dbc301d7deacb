package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/office-master/internal/audit"
	"github.com/BruksfildServices01/office-master/internal/middleware"
)

// owner devolve a oficina e o usuário do token.
func owner(c *gin.Context) (workshopID uint, userID uint) {
	return c.MustGet(middleware.ContextWorkshopID).(uint),
		c.MustGet(middleware.ContextUserID).(uint)
}

func writeAudit(
	c *gin.Context,
	d *audit.Dispatcher,
	action string,
	entity string,
	entityID uint,
	meta any,
) {
	workshopID, userID := owner(c)

	d.DispatchContext(c.Request.Context(), audit.Event{
		WorkshopID: workshopID,
		UserID:     &userID,
		Action:     action,
		Entity:     entity,
		EntityID:   &entityID,
		Metadata:   meta,
	})
}

// paramID lê :id como uint; ok=false para valores inválidos.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
