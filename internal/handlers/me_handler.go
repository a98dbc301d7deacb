package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/office-master/internal/audit"
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/models"
	"github.com/BruksfildServices01/office-master/internal/timezone"
	"github.com/BruksfildServices01/office-master/internal/validators"
)

type MeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewMeHandler(db *gorm.DB, d *audit.Dispatcher) *MeHandler {
	return &MeHandler{db: db, audit: d}
}

type UpdateWorkshopRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	_, userID := owner(c)

	var user models.User
	if err := h.db.Preload("Workshop").First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     userPayload(&user),
		"workshop": user.Workshop,
	})
}

func (h *MeHandler) GetWorkshop(c *gin.Context) {
	workshopID, _ := owner(c)

	var shop models.Workshop
	if err := h.db.First(&shop, workshopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "workshop_not_found", "Oficina não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_workshop", "Erro ao buscar dados da oficina.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *MeHandler) UpdateWorkshop(c *gin.Context) {
	workshopID, _ := owner(c)

	var shop models.Workshop
	if err := h.db.First(&shop, workshopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "workshop_not_found", "Oficina não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_workshop", "Erro ao buscar dados da oficina.")
		return
	}

	var req UpdateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
			return
		}
		shop.Name = name
	}
	if req.Phone != nil {
		shop.Phone = validators.NormalizePhone(*req.Phone)
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_workshop", "Erro ao salvar os dados da oficina.")
		return
	}

	writeAudit(c, h.audit, "workshop_updated", "workshop", shop.ID, nil)

	c.JSON(http.StatusOK, shop)
}

// Summary devolve os totais da oficina exibidos na tela inicial.
func (h *MeHandler) Summary(c *gin.Context) {
	workshopID, _ := owner(c)

	counts := []struct {
		key   string
		model any
	}{
		{"clients", &models.Client{}},
		{"service_orders", &models.ServiceOrder{}},
		{"appointments", &models.Appointment{}},
		{"inventory_items", &models.InventoryItem{}},
	}

	out := make(gin.H, len(counts))
	for _, ct := range counts {
		var n int64
		if err := h.db.Model(ct.model).Where("workshop_id = ?", workshopID).Count(&n).Error; err != nil {
			httperr.Internal(c, "failed_to_load_summary", "Erro ao carregar resumo.")
			return
		}
		out[ct.key] = n
	}

	c.JSON(http.StatusOK, out)
}
