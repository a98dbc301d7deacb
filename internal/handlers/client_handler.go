package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/office-master/internal/audit"
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/httpresp"
	"github.com/BruksfildServices01/office-master/internal/models"
	"github.com/BruksfildServices01/office-master/internal/validators"
)

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, d *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, audit: d}
}

// --------- Requests ---------

type ClientRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// apply copia os campos presentes e valida o resultado.
func (req ClientRequest) apply(client *models.Client) (code, message string) {
	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		client.Phone = validators.NormalizePhone(*req.Phone)
	}
	if req.Email != nil {
		client.Email = validators.NormalizeEmail(*req.Email)
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if len(client.Name) < 2 {
		return "invalid_name", "Nome deve ter ao menos 2 caracteres."
	}
	if client.Phone != "" && !validators.IsPhoneValid(client.Phone) {
		return "invalid_phone", "Telefone inválido."
	}
	if client.Email != "" && !validators.IsEmailFormatValid(client.Email) {
		return "invalid_email", "E-mail inválido."
	}
	return "", ""
}

// ======================================================
// LIST (busca por nome, telefone ou e-mail)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	workshopID, _ := owner(c)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("workshop_id = ?", workshopID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("name ASC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	workshopID, _ := owner(c)

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	client := models.Client{WorkshopID: workshopID}
	if code, msg := req.apply(&client); code != "" {
		httperr.BadRequest(c, code, msg)
		return
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	writeAudit(c, h.audit, "client_created", "client", client.ID, nil)
	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if code, msg := req.apply(client); code != "" {
		httperr.BadRequest(c, code, msg)
		return
	}

	if err := h.db.Save(client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao salvar cliente.")
		return
	}

	writeAudit(c, h.audit, "client_updated", "client", client.ID, nil)
	httpresp.OK(c, client)
}

// Delete recusa clientes com agendamentos ou ordens de serviço.
func (h *ClientHandler) Delete(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}

	var appointments, orders int64
	if err := h.db.Model(&models.Appointment{}).Where("client_id = ?", client.ID).Count(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_check_client", "Erro ao verificar cliente.")
		return
	}
	if err := h.db.Model(&models.ServiceOrder{}).Where("client_id = ?", client.ID).Count(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_check_client", "Erro ao verificar cliente.")
		return
	}
	if appointments+orders > 0 {
		httperr.Conflict(c, "client_in_use", "Cliente possui agendamentos ou ordens de serviço.")
		return
	}

	if err := h.db.Delete(client).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_client", "Erro ao remover cliente.")
		return
	}

	writeAudit(c, h.audit, "client_deleted", "client", client.ID, nil)
	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) load(c *gin.Context) (*models.Client, bool) {
	workshopID, _ := owner(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND workshop_id = ?", id, workshopID).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return nil, false
	}

	return &client, true
}
