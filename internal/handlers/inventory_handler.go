package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/office-master/internal/audit"
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/httpresp"
	"github.com/BruksfildServices01/office-master/internal/models"
)

type InventoryHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewInventoryHandler(db *gorm.DB, d *audit.Dispatcher) *InventoryHandler {
	return &InventoryHandler{db: db, audit: d}
}

// --------- Requests ---------

type InventoryItemRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	Brand        *string          `json:"brand"`
	PartNumber   *string          `json:"part_number"`
	CurrentStock *int             `json:"current_stock"`
	MinStock     *int             `json:"min_stock"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Supplier     *string          `json:"supplier"`
	Location     *string          `json:"location"`
}

// StockAdjustRequest soma Delta ao estoque atual (negativo = saída).
type StockAdjustRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

type inventoryItemView struct {
	models.InventoryItem
	StockStatus string `json:"stock_status"`
}

func viewOf(item models.InventoryItem) inventoryItemView {
	return inventoryItemView{InventoryItem: item, StockStatus: item.StockStatus()}
}

// --------- Handlers ---------

func (h *InventoryHandler) List(c *gin.Context) {
	workshopID, _ := owner(c)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	lowStock := c.Query("low_stock") == "true"

	q := h.db.Where("workshop_id = ?", workshopID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(part_number) LIKE ?",
			like, like, like,
		)
	}

	if lowStock {
		q = q.Where("current_stock <= min_stock")
	}

	var items []models.InventoryItem
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_inventory", "Erro ao listar estoque.")
		return
	}

	views := make([]inventoryItemView, 0, len(items))
	for _, it := range items {
		views = append(views, viewOf(it))
	}

	httpresp.List(c, views)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, viewOf(*item))
}

func (h *InventoryHandler) Create(c *gin.Context) {
	workshopID, _ := owner(c)

	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	item := models.InventoryItem{WorkshopID: workshopID}
	if code, msg := req.apply(&item); code != "" {
		httperr.BadRequest(c, code, msg)
		return
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_item", "Erro ao criar item.")
		return
	}

	writeAudit(c, h.audit, "inventory_item_created", "inventory_item", item.ID, nil)
	httpresp.Created(c, viewOf(item))
}

func (h *InventoryHandler) Update(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}

	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if code, msg := req.apply(item); code != "" {
		httperr.BadRequest(c, code, msg)
		return
	}

	if err := h.db.Save(item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_item", "Erro ao salvar item.")
		return
	}

	writeAudit(c, h.audit, "inventory_item_updated", "inventory_item", item.ID, nil)
	httpresp.OK(c, viewOf(*item))
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.Delete(item).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_item", "Erro ao remover item.")
		return
	}

	writeAudit(c, h.audit, "inventory_item_deleted", "inventory_item", item.ID, nil)
	c.Status(http.StatusNoContent)
}

// AdjustStock aplica entrada/saída; o estoque nunca fica negativo.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}

	var req StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe a quantidade.")
		return
	}

	// checagem e escrita no mesmo UPDATE: saídas concorrentes não se perdem
	res := h.db.
		Model(&models.InventoryItem{}).
		Where("id = ? AND workshop_id = ? AND current_stock + ? >= 0", item.ID, item.WorkshopID, req.Delta).
		UpdateColumn("current_stock", gorm.Expr("current_stock + ?", req.Delta))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_adjust_stock", "Erro ao ajustar estoque.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Conflict(c, "insufficient_stock", "Estoque insuficiente.")
		return
	}

	var updated models.InventoryItem
	if err := h.db.First(&updated, item.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_item", "Erro ao buscar item.")
		return
	}

	writeAudit(c, h.audit, "inventory_stock_adjusted", "inventory_item", item.ID, map[string]any{
		"delta":  req.Delta,
		"to":     updated.CurrentStock,
		"reason": req.Reason,
	})
	httpresp.OK(c, viewOf(updated))
}

func (req InventoryItemRequest) apply(item *models.InventoryItem) (code, message string) {
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Brand != nil {
		item.Brand = *req.Brand
	}
	if req.PartNumber != nil {
		item.PartNumber = strings.TrimSpace(*req.PartNumber)
	}
	if req.CurrentStock != nil {
		item.CurrentStock = *req.CurrentStock
	}
	if req.MinStock != nil {
		item.MinStock = *req.MinStock
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.Supplier != nil {
		item.Supplier = *req.Supplier
	}
	if req.Location != nil {
		item.Location = *req.Location
	}

	switch {
	case len(item.Name) < 2:
		return "invalid_name", "Nome deve ter ao menos 2 caracteres."
	case item.CurrentStock < 0 || item.MinStock < 0:
		return "invalid_stock", "Estoque não pode ser negativo."
	case item.UnitPrice.IsNegative():
		return "invalid_price", "Preço não pode ser negativo."
	}
	return "", ""
}

func (h *InventoryHandler) load(c *gin.Context) (*models.InventoryItem, bool) {
	workshopID, _ := owner(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var item models.InventoryItem
	if err := h.db.
		Where("id = ? AND workshop_id = ?", id, workshopID).
		First(&item).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "item_not_found", "Item não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_item", "Erro ao buscar item.")
		return nil, false
	}

	return &item, true
}
