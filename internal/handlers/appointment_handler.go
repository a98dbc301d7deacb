package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/office-master/internal/domain/appointment"
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/office-master/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo domain.Repository

	create       *ucAppointment.CreateAppointment
	update       *ucAppointment.UpdateAppointment
	changeStatus *ucAppointment.ChangeAppointmentStatus
	remove       *ucAppointment.DeleteAppointment
	listByDate   *ucAppointment.ListAppointmentsByDate
	monthGrid    *ucAppointment.GetMonthGrid
	conflict     *ucAppointment.CheckConflict
	exportICS    *ucAppointment.ExportICS
}

func NewAppointmentHandler(
	repo domain.Repository,
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	changeStatus *ucAppointment.ChangeAppointmentStatus,
	remove *ucAppointment.DeleteAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
	monthGrid *ucAppointment.GetMonthGrid,
	conflict *ucAppointment.CheckConflict,
	exportICS *ucAppointment.ExportICS,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:         repo,
		create:       create,
		update:       update,
		changeStatus: changeStatus,
		remove:       remove,
		listByDate:   listByDate,
		monthGrid:    monthGrid,
		conflict:     conflict,
		exportICS:    exportICS,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID        uint   `json:"client_id" binding:"required"`
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
	Type            string `json:"type"`
	VehicleInfo     string `json:"vehicle_info"`
	Notes           string `json:"notes"`
	AllowConflict   bool   `json:"allow_conflict"`
}

type UpdateAppointmentRequest struct {
	ClientID        *uint   `json:"client_id"`
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	DurationMinutes *int    `json:"duration_minutes"`
	Type            *string `json:"type"`
	VehicleInfo     *string `json:"vehicle_info"`
	Notes           *string `json:"notes"`
	AllowConflict   bool    `json:"allow_conflict"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// ERRORS
// ======================================================

var appointmentErrorMessages = map[string]string{
	httperr.CodeInvalidTimeFormat: "Horário inválido. Use HH:MM.",
	httperr.CodeInvalidDate:       "Data inválida. Use AAAA-MM-DD.",
	httperr.CodeInvalidDuration:   "Duração deve ficar entre 15 e 480 minutos.",
	httperr.CodeInvalidStatus:     "Status inválido.",
	httperr.CodeInvalidState:      "Transição de status não permitida.",
	httperr.CodeTimeConflict:      "Conflito de horário com outro agendamento.",
	httperr.CodeNotFound:          "Agendamento não encontrado.",
	httperr.CodeClientNotFound:    "Cliente não encontrado.",
	httperr.CodeDateInPast:        "A data não pode estar no passado.",
	httperr.CodeInvalidTitle:      "Título deve ter ao menos 3 caracteres.",
	httperr.CodeInvalidType:       "Tipo de agendamento inválido.",
	httperr.CodeInvalidMonth:      "Ano ou mês inválido.",
}

func mapAppointmentErrors(c *gin.Context, err error) {
	if httperr.IsExclusionConflict(err) {
		httperr.Conflict(c, httperr.CodeTimeConflict, appointmentErrorMessages[httperr.CodeTimeConflict])
		return
	}

	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	msg := appointmentErrorMessages[code]
	if msg == "" {
		msg = "Operação inválida."
	}

	httperr.Write(c, httperr.StatusFor(code), code, msg)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	workshopID, userID := owner(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		WorkshopID:    workshopID,
		UserID:        userID,
		ClientID:      req.ClientID,
		Title:         req.Title,
		Description:   req.Description,
		Date:          req.Date,
		Time:          req.Time,
		Duration:      req.DurationMinutes,
		Type:          req.Type,
		VehicleInfo:   req.VehicleInfo,
		Notes:         req.Notes,
		AllowConflict: req.AllowConflict,
	})
	if err != nil {
		mapAppointmentErrors(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	workshopID, _ := owner(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), workshopID, id)
	if err != nil {
		mapAppointmentErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	workshopID, _ := owner(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), workshopID, date)
	if err != nil {
		mapAppointmentErrors(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) Month(c *gin.Context) {
	workshopID, _ := owner(c)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	out, err := h.monthGrid.Execute(c.Request.Context(), ucAppointment.MonthGridInput{
		WorkshopID: workshopID,
		Year:       year,
		Month:      month,
		Selected:   c.Query("selected"),
	})
	if err != nil {
		mapAppointmentErrors(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AppointmentHandler) Conflict(c *gin.Context) {
	workshopID, _ := owner(c)

	in := ucAppointment.CheckConflictInput{
		WorkshopID: workshopID,
		Date:       c.Query("date"),
		Time:       c.Query("time"),
	}

	if s := c.Query("duration"); s != "" {
		d, err := strconv.Atoi(s)
		if err != nil {
			mapAppointmentErrors(c, httperr.ErrBusiness(httperr.CodeInvalidDuration))
			return
		}
		in.Duration = d
	}
	if s := c.Query("exclude_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_exclude_id", "ID inválido.")
			return
		}
		in.ExcludeID = uint(id)
	}

	out, err := h.conflict.Execute(c.Request.Context(), in)
	if err != nil {
		mapAppointmentErrors(c, err)
		return
	}

	httpresp.OK(c, out)
}

// CalendarICS exporta o mês (ou tudo, sem year/month) em text/calendar.
func (h *AppointmentHandler) CalendarICS(c *gin.Context) {
	workshopID, _ := owner(c)

	in := ucAppointment.ExportICSInput{WorkshopID: workshopID}
	if c.Query("year") != "" || c.Query("month") != "" {
		year, errY := strconv.Atoi(c.Query("year"))
		month, errM := strconv.Atoi(c.Query("month"))
		if errY != nil || errM != nil {
			mapAppointmentErrors(c, httperr.ErrBusiness(httperr.CodeInvalidMonth))
			return
		}
		in.Year, in.Month = year, month
	}

	body, err := h.exportICS.Execute(c.Request.Context(), in)
	if err != nil {
		mapAppointmentErrors(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="agenda.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// ======================================================
// UPDATE / STATUS / DELETE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	workshopID, userID := owner(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		WorkshopID:    workshopID,
		UserID:        userID,
		AppointmentID: id,
		ClientID:      req.ClientID,
		Title:         req.Title,
		Description:   req.Description,
		Date:          req.Date,
		Time:          req.Time,
		Duration:      req.DurationMinutes,
		Type:          req.Type,
		VehicleInfo:   req.VehicleInfo,
		Notes:         req.Notes,
		AllowConflict: req.AllowConflict,
	})
	if err != nil {
		mapAppointmentErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	workshopID, userID := owner(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status obrigatório.")
		return
	}

	ap, err := h.changeStatus.Execute(c.Request.Context(), workshopID, userID, id, req.Status)
	if err != nil {
		mapAppointmentErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment":         ap,
		"allowed_transitions": domain.AllowedTransitions(domain.Status(ap.Status)),
	})
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	workshopID, userID := owner(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	if err := h.remove.Execute(c.Request.Context(), workshopID, userID, id); err != nil {
		mapAppointmentErrors(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
