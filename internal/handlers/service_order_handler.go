package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/office-master/internal/audit"
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/httpresp"
	"github.com/BruksfildServices01/office-master/internal/models"
	"github.com/BruksfildServices01/office-master/internal/timezone"
)

var (
	serviceOrderStatuses   = []string{"pending", "in_progress", "completed", "cancelled"}
	serviceOrderPriorities = []string{"low", "medium", "high", "urgent"}
)

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

type ServiceOrderHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceOrderHandler(db *gorm.DB, d *audit.Dispatcher) *ServiceOrderHandler {
	return &ServiceOrderHandler{db: db, audit: d}
}

// --------- Requests ---------

type ServiceOrderRequest struct {
	ClientID            *uint            `json:"client_id"`
	Title               *string          `json:"title"`
	Description         *string          `json:"description"`
	Status              *string          `json:"status"`
	Priority            *string          `json:"priority"`
	VehicleInfo         *string          `json:"vehicle_info"`
	LaborCost           *decimal.Decimal `json:"labor_cost"`
	PartsCost           *decimal.Decimal `json:"parts_cost"`
	EstimatedCompletion *string          `json:"estimated_completion"`
	Notes               *string          `json:"notes"`
}

// --------- Handlers ---------

func (h *ServiceOrderHandler) List(c *gin.Context) {
	workshopID, _ := owner(c)

	q := h.db.Preload("Client").Where("workshop_id = ?", workshopID)

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !oneOf(status, serviceOrderStatuses) {
			httperr.BadRequest(c, "invalid_status", "Status inválido.")
			return
		}
		q = q.Where("status = ?", status)
	}

	if clientStr := c.Query("client_id"); clientStr != "" {
		clientID, err := strconv.ParseUint(clientStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_client_id", "Cliente inválido.")
			return
		}
		q = q.Where("client_id = ?", clientID)
	}

	var orders []models.ServiceOrder
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_service_orders", "Erro ao listar ordens de serviço.")
		return
	}

	httpresp.List(c, orders)
}

func (h *ServiceOrderHandler) Get(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, order)
}

func (h *ServiceOrderHandler) Create(c *gin.Context) {
	workshopID, _ := owner(c)

	var req ServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if req.ClientID == nil || req.Title == nil {
		httperr.BadRequest(c, "invalid_request", "Cliente e título são obrigatórios.")
		return
	}

	order := models.ServiceOrder{
		WorkshopID: workshopID,
		Status:     "pending",
		Priority:   "medium",
	}
	if !h.apply(c, &order, req) {
		return
	}

	if err := h.db.Omit("Client").Create(&order).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service_order", "Erro ao criar ordem de serviço.")
		return
	}

	writeAudit(c, h.audit, "service_order_created", "service_order", order.ID, nil)
	httpresp.Created(c, order)
}

func (h *ServiceOrderHandler) Update(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}

	var req ServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	prevStatus := order.Status
	if !h.apply(c, order, req) {
		return
	}

	if err := h.db.Omit("Client").Save(order).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service_order", "Erro ao salvar ordem de serviço.")
		return
	}

	writeAudit(c, h.audit, "service_order_updated", "service_order", order.ID, map[string]any{
		"from_status": prevStatus,
		"to_status":   order.Status,
	})
	httpresp.OK(c, order)
}

func (h *ServiceOrderHandler) Delete(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.Delete(order).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service_order", "Erro ao remover ordem de serviço.")
		return
	}

	writeAudit(c, h.audit, "service_order_deleted", "service_order", order.ID, nil)
	c.Status(http.StatusNoContent)
}

// apply valida e copia os campos; escreve a resposta de erro e devolve
// false quando algo é inválido.
func (h *ServiceOrderHandler) apply(c *gin.Context, order *models.ServiceOrder, req ServiceOrderRequest) bool {
	var shop models.Workshop
	if err := h.db.First(&shop, order.WorkshopID).Error; err != nil {
		httperr.Internal(c, "workshop_not_found", "Oficina não encontrada.")
		return false
	}

	if req.ClientID != nil && *req.ClientID != order.ClientID {
		var count int64
		if err := h.db.Model(&models.Client{}).
			Where("id = ? AND workshop_id = ?", *req.ClientID, order.WorkshopID).
			Count(&count).Error; err != nil {
			httperr.Internal(c, "failed_to_check_client", "Erro ao verificar cliente.")
			return false
		}
		if count == 0 {
			httperr.BadRequest(c, httperr.CodeClientNotFound, "Cliente não encontrado.")
			return false
		}
		order.ClientID = *req.ClientID
	}

	if req.Title != nil {
		order.Title = strings.TrimSpace(*req.Title)
	}
	if len(order.Title) < 3 {
		httperr.BadRequest(c, "invalid_title", "Título deve ter ao menos 3 caracteres.")
		return false
	}

	if req.Description != nil {
		order.Description = *req.Description
	}
	if req.VehicleInfo != nil {
		order.VehicleInfo = *req.VehicleInfo
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	if req.Priority != nil {
		if !oneOf(*req.Priority, serviceOrderPriorities) {
			httperr.BadRequest(c, "invalid_priority", "Prioridade inválida.")
			return false
		}
		order.Priority = *req.Priority
	}

	if req.Status != nil && *req.Status != order.Status {
		if !oneOf(*req.Status, serviceOrderStatuses) {
			httperr.BadRequest(c, "invalid_status", "Status inválido.")
			return false
		}
		order.Status = *req.Status

		if order.Status == "completed" {
			now := timezone.NowIn(shop.Timezone)
			order.ActualCompletion = &now
		} else {
			order.ActualCompletion = nil
		}
	}

	if req.LaborCost != nil {
		order.LaborCost = *req.LaborCost
	}
	if req.PartsCost != nil {
		order.PartsCost = *req.PartsCost
	}
	if order.LaborCost.IsNegative() || order.PartsCost.IsNegative() {
		httperr.BadRequest(c, "invalid_cost", "Custos não podem ser negativos.")
		return false
	}
	order.RecalculateTotal()

	if req.EstimatedCompletion != nil {
		est, err := optionalDate(&shop, *req.EstimatedCompletion)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data prevista inválida.")
			return false
		}
		order.EstimatedCompletion = est
	}

	return true
}

func (h *ServiceOrderHandler) load(c *gin.Context) (*models.ServiceOrder, bool) {
	workshopID, _ := owner(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var order models.ServiceOrder
	if err := h.db.
		Preload("Client").
		Where("id = ? AND workshop_id = ?", id, workshopID).
		First(&order).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_order_not_found", "Ordem de serviço não encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_service_order", "Erro ao buscar ordem de serviço.")
		return nil, false
	}

	return &order, true
}
