package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// auditLogFilter reúne os filtros opcionais da trilha.
type auditLogFilter struct {
	Action    string
	Entity    string
	EntityID  uint
	RequestID string
	From      *time.Time
	To        *time.Time // exclusivo
	Page      int
	Limit     int
}

func (f auditLogFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != 0 {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.RequestID != "" {
		q = q.Where("request_id = ?", f.RequestID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}
	return q
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return page, limit
}

// parseFilter lê a query string; from/to são datas civis no fuso da oficina.
func (h *AuditLogsHandler) parseFilter(c *gin.Context, workshopID uint) (auditLogFilter, bool) {
	f := auditLogFilter{
		Action:    c.Query("action"),
		Entity:    c.Query("entity"),
		RequestID: c.Query("request_id"),
	}
	f.Page, f.Limit = pagination(c)

	if raw := c.Query("entity_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, "invalid_entity_id", "ID inválido.")
			return f, false
		}
		f.EntityID = uint(id)
	}

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr == "" && toStr == "" {
		return f, true
	}

	var shop models.Workshop
	if err := h.db.First(&shop, workshopID).Error; err != nil {
		httperr.Internal(c, "workshop_not_found", "Oficina não encontrada.")
		return f, false
	}

	if fromStr != "" {
		from, err := parseDateInWorkshop(&shop, fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
			return f, false
		}
		f.From = &from
	}
	if toStr != "" {
		to, err := parseDateInWorkshop(&shop, toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data final inválida.")
			return f, false
		}
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	return f, true
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	workshopID, _ := owner(c)

	f, ok := h.parseFilter(c, workshopID)
	if !ok {
		return
	}

	q := f.apply(h.db.
		Model(&models.AuditLog{}).
		Where("workshop_id = ?", workshopID))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
