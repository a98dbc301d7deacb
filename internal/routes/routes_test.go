package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/office-master/internal/audit"
	"github.com/BruksfildServices01/office-master/internal/config"
	dbpkg "github.com/BruksfildServices01/office-master/internal/db"
	"github.com/BruksfildServices01/office-master/internal/middleware"
	"github.com/BruksfildServices01/office-master/internal/models"
)

// ======================================================
// Helpers
// ======================================================

type testServer struct {
	r     *gin.Engine
	db    *gorm.DB
	audit *audit.Dispatcher
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		DefaultTimezone: "America/Sao_Paulo",
		WorkdayStart:    "08:00",
		WorkdayEnd:      "18:00",
		SlotStep:        30,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := audit.NewDispatcher(audit.New(db), logger)

	r := gin.New()
	r.Use(middleware.RequestID())
	RegisterRoutes(r, db, cfg, d, nil)

	return &testServer{r: r, db: db, audit: d}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
}

func expectErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, w, status)
	var body struct {
		ErrorCode string `json:"error_code"`
	}
	decode(t, w, &body)
	if body.ErrorCode != code {
		t.Fatalf("expected error_code %s, got %s", code, body.ErrorCode)
	}
}

func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"workshop_name": "Oficina " + email,
		"first_name":    "Carlos",
		"email":         email,
		"password":      "segredo123",
	})
	expectStatus(t, w, http.StatusCreated)

	var out struct {
		Token string `json:"token"`
	}
	decode(t, w, &out)
	return out.Token
}

func (s *testServer) createClient(t *testing.T, token, name string) uint {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/me/clients", token, map[string]any{
		"name":  name,
		"phone": "(11) 98888-7777",
		"email": strings.ToLower(name) + "@example.com",
	})
	expectStatus(t, w, http.StatusCreated)

	var out struct {
		ID uint `json:"id"`
	}
	decode(t, w, &out)
	return out.ID
}

// futureDate devolve uma data daqui a n dias no fuso padrão.
func futureDate(t *testing.T, days int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return time.Now().In(loc).AddDate(0, 0, days)
}

// ======================================================
// Tests
// ======================================================

func TestHealth(t *testing.T) {
	s := newServer(t)
	defer s.audit.Close()

	expectStatus(t, s.do(t, http.MethodGet, "/health", "", nil), http.StatusOK)
}

func TestAuth_RegisterLoginAndMe(t *testing.T) {
	s := newServer(t)
	defer s.audit.Close()

	token := s.register(t, "dono@oficina.com")

	w := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"workshop_name": "Outra",
		"first_name":    "Ana",
		"email":         "DONO@oficina.com",
		"password":      "segredo123",
	})
	expectErrorCode(t, w, http.StatusConflict, "email_already_exists")

	w = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"workshop_name": "Outra",
		"first_name":    "Ana",
		"email":         "sem-arroba",
		"password":      "segredo123",
	})
	expectErrorCode(t, w, http.StatusBadRequest, "invalid_email")

	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "dono@oficina.com", "password": "errada"})
	expectErrorCode(t, w, http.StatusUnauthorized, "invalid_credentials")

	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "dono@oficina.com", "password": "segredo123"})
	expectStatus(t, w, http.StatusOK)

	expectStatus(t, s.do(t, http.MethodGet, "/api/me", "", nil), http.StatusUnauthorized)

	w = s.do(t, http.MethodGet, "/api/me", token, nil)
	expectStatus(t, w, http.StatusOK)

	var me struct {
		User struct {
			Email       string     `json:"email"`
			Name        string     `json:"name"`
			LastLoginAt *time.Time `json:"last_login_at"`
		} `json:"user"`
		Workshop struct {
			Timezone string `json:"timezone"`
		} `json:"workshop"`
	}
	decode(t, w, &me)
	if me.User.Email != "dono@oficina.com" || me.Workshop.Timezone != "America/Sao_Paulo" {
		t.Fatalf("unexpected /me payload %+v", me)
	}
	if me.User.Name != "Carlos" || me.User.LastLoginAt == nil {
		t.Fatalf("expected name and last login after login, got %+v", me.User)
	}

	w = s.do(t, http.MethodPatch, "/api/me/workshop", token, map[string]any{"timezone": "Mars/Olympus"})
	expectErrorCode(t, w, http.StatusBadRequest, "invalid_timezone")

	w = s.do(t, http.MethodPatch, "/api/me/workshop", token, map[string]any{"name": "Auto Center", "timezone": "America/Manaus"})
	expectStatus(t, w, http.StatusOK)
}

func TestClients_SearchAndDelete(t *testing.T) {
	s := newServer(t)
	defer s.audit.Close()
	token := s.register(t, "clientes@oficina.com")

	ana := s.createClient(t, token, "Ana")
	s.createClient(t, token, "Bruno")

	w := s.do(t, http.MethodPost, "/api/me/clients", token, map[string]any{"name": "Zé", "phone": "123"})
	expectErrorCode(t, w, http.StatusBadRequest, "invalid_phone")

	w = s.do(t, http.MethodGet, "/api/me/clients?query=bru", token, nil)
	expectStatus(t, w, http.StatusOK)
	var list struct {
		Total int `json:"total"`
	}
	decode(t, w, &list)
	if list.Total != 1 {
		t.Fatalf("expected 1 match, got %d", list.Total)
	}

	date := futureDate(t, 3).Format("2006-01-02")
	w = s.do(t, http.MethodPost, "/api/me/appointments", token, map[string]any{
		"client_id": ana, "title": "Revisão", "date": date, "time": "08:00",
	})
	expectStatus(t, w, http.StatusCreated)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/me/clients/%d", ana), token, nil)
	expectErrorCode(t, w, http.StatusConflict, "client_in_use")

	other := s.register(t, "outra@oficina.com")
	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/me/clients/%d", ana), other, nil)
	expectErrorCode(t, w, http.StatusNotFound, "client_not_found")
}

func TestAppointments_Flow(t *testing.T) {
	s := newServer(t)
	defer s.audit.Close()
	token := s.register(t, "agenda@oficina.com")
	client := s.createClient(t, token, "Ana")

	day := futureDate(t, 7)
	date := day.Format("2006-01-02")

	create := func(body map[string]any) *httptest.ResponseRecorder {
		body["client_id"] = client
		body["date"] = date
		return s.do(t, http.MethodPost, "/api/me/appointments", token, body)
	}

	// criação + normalização de horário
	w := create(map[string]any{"title": "Troca de óleo", "time": "9:00", "type": "maintenance"})
	expectStatus(t, w, http.StatusCreated)
	var first struct {
		ID              uint   `json:"id"`
		Time            string `json:"time"`
		DurationMinutes int    `json:"duration_minutes"`
		Status          string `json:"status"`
	}
	decode(t, w, &first)
	if first.Time != "09:00" || first.DurationMinutes != 60 || first.Status != "scheduled" {
		t.Fatalf("unexpected appointment %+v", first)
	}

	// validações
	expectErrorCode(t, create(map[string]any{"title": "Alinhamento", "time": "9h30"}), http.StatusBadRequest, "invalid_time_format")
	expectErrorCode(t, create(map[string]any{"title": "Alinhamento", "time": "11:00", "duration_minutes": 600}), http.StatusBadRequest, "invalid_duration")

	// conflito, vizinho encostado e override
	expectErrorCode(t, create(map[string]any{"title": "Alinhamento", "time": "09:30"}), http.StatusConflict, "time_conflict")
	expectStatus(t, create(map[string]any{"title": "Alinhamento", "time": "10:00"}), http.StatusCreated)
	expectStatus(t, create(map[string]any{"title": "Encaixe", "time": "09:15", "duration_minutes": 15, "allow_conflict": true}), http.StatusCreated)

	// checagem prévia com sugestões
	w = s.do(t, http.MethodGet, "/api/me/appointments/conflict?date="+date+"&time=09:30&duration=60", token, nil)
	expectStatus(t, w, http.StatusOK)
	var check struct {
		Conflict    bool `json:"conflict"`
		Suggestions []struct {
			Start string `json:"start"`
		} `json:"suggestions"`
	}
	decode(t, w, &check)
	if !check.Conflict || len(check.Suggestions) == 0 || check.Suggestions[0].Start != "08:00" {
		t.Fatalf("unexpected conflict check %+v", check)
	}

	// lista do dia ordenada
	w = s.do(t, http.MethodGet, "/api/me/appointments?date="+date, token, nil)
	expectStatus(t, w, http.StatusOK)
	var list struct {
		Data []struct {
			Time    string `json:"time"`
			EndTime string `json:"end_time"`
		} `json:"data"`
		Total int `json:"total"`
	}
	decode(t, w, &list)
	if list.Total != 3 || list.Data[0].Time != "09:00" || list.Data[2].EndTime != "11:00" {
		t.Fatalf("unexpected day list %+v", list)
	}

	// grade do mês
	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/me/appointments/month?year=%d&month=%d&selected=%s", day.Year(), int(day.Month()), date), token, nil)
	expectStatus(t, w, http.StatusOK)
	var grid struct {
		Days []struct {
			Date         string `json:"date"`
			IsSelected   bool   `json:"is_selected"`
			Appointments []any  `json:"appointments"`
		} `json:"days"`
		SelectedAppointments []any `json:"selected_appointments"`
	}
	decode(t, w, &grid)
	if len(grid.Days) != 42 || len(grid.SelectedAppointments) != 3 {
		t.Fatalf("unexpected grid: %d days, %d selected", len(grid.Days), len(grid.SelectedAppointments))
	}
	for _, d := range grid.Days {
		if d.Date == date && (!d.IsSelected || len(d.Appointments) != 3) {
			t.Fatalf("unexpected selected cell %+v", d)
		}
	}

	expectErrorCode(t, s.do(t, http.MethodGet, "/api/me/appointments/month?year=2024&month=13", token, nil), http.StatusBadRequest, "invalid_month")

	// ciclo de status
	statusPath := fmt.Sprintf("/api/me/appointments/%d/status", first.ID)
	expectStatus(t, s.do(t, http.MethodPatch, statusPath, token, map[string]any{"status": "confirmed"}), http.StatusOK)
	expectErrorCode(t, s.do(t, http.MethodPatch, statusPath, token, map[string]any{"status": "completed"}), http.StatusConflict, "invalid_state")
	expectErrorCode(t, s.do(t, http.MethodPatch, statusPath, token, map[string]any{"status": "archived"}), http.StatusBadRequest, "invalid_status")

	// edição sem auto-conflito
	w = s.do(t, http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d", first.ID), token, map[string]any{"time": "08:45"})
	expectErrorCode(t, w, http.StatusConflict, "time_conflict")
	w = s.do(t, http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d", first.ID), token, map[string]any{"notes": "cliente aguarda"})
	expectStatus(t, w, http.StatusOK)

	// ICS
	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/me/appointments/calendar.ics?year=%d&month=%d", day.Year(), int(day.Month())), token, nil)
	expectStatus(t, w, http.StatusOK)
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar") || strings.Count(w.Body.String(), "BEGIN:VEVENT") != 3 {
		t.Fatalf("unexpected ics response %q", w.Body.String())
	}

	// isolamento entre oficinas
	other := s.register(t, "vizinha@oficina.com")
	expectErrorCode(t, s.do(t, http.MethodGet, fmt.Sprintf("/api/me/appointments/%d", first.ID), other, nil), http.StatusNotFound, "appointment_not_found")

	// remoção
	expectStatus(t, s.do(t, http.MethodDelete, fmt.Sprintf("/api/me/appointments/%d", first.ID), token, nil), http.StatusNoContent)
	expectErrorCode(t, s.do(t, http.MethodGet, fmt.Sprintf("/api/me/appointments/%d", first.ID), token, nil), http.StatusNotFound, "appointment_not_found")
}

func TestServiceOrders(t *testing.T) {
	s := newServer(t)
	defer s.audit.Close()
	token := s.register(t, "os@oficina.com")
	client := s.createClient(t, token, "Ana")

	w := s.do(t, http.MethodPost, "/api/me/service-orders", token, map[string]any{
		"client_id":  client,
		"title":      "Troca de embreagem",
		"priority":   "high",
		"labor_cost": "350.00",
		"parts_cost": 820.5,
	})
	expectStatus(t, w, http.StatusCreated)

	var order struct {
		ID        uint            `json:"id"`
		Status    string          `json:"status"`
		TotalCost decimal.Decimal `json:"total_cost"`
	}
	decode(t, w, &order)
	if order.Status != "pending" || !order.TotalCost.Equal(decimal.RequireFromString("1170.5")) {
		t.Fatalf("unexpected order %+v", order)
	}

	path := fmt.Sprintf("/api/me/service-orders/%d", order.ID)
	expectErrorCode(t, s.do(t, http.MethodPatch, path, token, map[string]any{"priority": "asap"}), http.StatusBadRequest, "invalid_priority")
	expectErrorCode(t, s.do(t, http.MethodPatch, path, token, map[string]any{"labor_cost": -1}), http.StatusBadRequest, "invalid_cost")

	w = s.do(t, http.MethodPatch, path, token, map[string]any{"status": "completed", "labor_cost": 400})
	expectStatus(t, w, http.StatusOK)
	var updated struct {
		TotalCost        decimal.Decimal `json:"total_cost"`
		ActualCompletion *time.Time      `json:"actual_completion"`
	}
	decode(t, w, &updated)
	if updated.ActualCompletion == nil || !updated.TotalCost.Equal(decimal.RequireFromString("1220.5")) {
		t.Fatalf("unexpected update %+v", updated)
	}

	w = s.do(t, http.MethodGet, "/api/me/service-orders?status=completed", token, nil)
	expectStatus(t, w, http.StatusOK)
	var list struct {
		Total int `json:"total"`
	}
	decode(t, w, &list)
	if list.Total != 1 {
		t.Fatalf("expected 1 completed order, got %d", list.Total)
	}

	expectStatus(t, s.do(t, http.MethodDelete, path, token, nil), http.StatusNoContent)
	expectErrorCode(t, s.do(t, http.MethodGet, path, token, nil), http.StatusNotFound, "service_order_not_found")
}

func TestInventory_StockStatus(t *testing.T) {
	s := newServer(t)
	defer s.audit.Close()
	token := s.register(t, "estoque@oficina.com")

	w := s.do(t, http.MethodPost, "/api/me/inventory", token, map[string]any{
		"name":          "Filtro de óleo",
		"category":      "Filtros",
		"current_stock": 5,
		"min_stock":     2,
		"unit_price":    "32.90",
	})
	expectStatus(t, w, http.StatusCreated)
	var item struct {
		ID          uint   `json:"id"`
		Category    string `json:"category"`
		StockStatus string `json:"stock_status"`
	}
	decode(t, w, &item)
	if item.StockStatus != "ok" || item.Category != "filtros" {
		t.Fatalf("unexpected item %+v", item)
	}

	stock := fmt.Sprintf("/api/me/inventory/%d/stock", item.ID)

	w = s.do(t, http.MethodPost, stock, token, map[string]any{"delta": -4, "reason": "OS 12"})
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &item)
	if item.StockStatus != "low" {
		t.Fatalf("expected low, got %s", item.StockStatus)
	}

	expectErrorCode(t, s.do(t, http.MethodPost, stock, token, map[string]any{"delta": -2}), http.StatusConflict, "insufficient_stock")

	w = s.do(t, http.MethodGet, "/api/me/inventory?low_stock=true", token, nil)
	expectStatus(t, w, http.StatusOK)
	var list struct {
		Total int `json:"total"`
	}
	decode(t, w, &list)
	if list.Total != 1 {
		t.Fatalf("expected 1 low stock item, got %d", list.Total)
	}

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/me/inventory/%d", item.ID), token, nil)
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &item)
	if item.StockStatus != "low" {
		t.Fatalf("expected low on get, got %s", item.StockStatus)
	}

	other := s.register(t, "outro-estoque@oficina.com")
	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/me/inventory/%d", item.ID), other, nil)
	expectErrorCode(t, w, http.StatusNotFound, "item_not_found")
}

func TestInventory_ConcurrentWithdrawalsNeverOversell(t *testing.T) {
	s := newServer(t)
	defer s.audit.Close()
	token := s.register(t, "concorrencia@oficina.com")

	w := s.do(t, http.MethodPost, "/api/me/inventory", token, map[string]any{
		"name":          "Pastilha de freio",
		"current_stock": 5,
	})
	expectStatus(t, w, http.StatusCreated)
	var item struct {
		ID           uint `json:"id"`
		CurrentStock int  `json:"current_stock"`
	}
	decode(t, w, &item)

	stock := fmt.Sprintf("/api/me/inventory/%d/stock", item.ID)

	const workers = 6
	codes := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, stock, strings.NewReader(`{"delta":-2}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			s.r.ServeHTTP(rec, req)
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)

	ok, conflicts := 0, 0
	for code := range codes {
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusConflict:
			conflicts++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	if ok != 2 || conflicts != workers-2 {
		t.Fatalf("expected 2 withdrawals and %d conflicts, got %d and %d", workers-2, ok, conflicts)
	}

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/me/inventory/%d", item.ID), token, nil)
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &item)
	if item.CurrentStock != 1 {
		t.Fatalf("expected stock 1 after two withdrawals, got %d", item.CurrentStock)
	}
}

func TestAuditLogs(t *testing.T) {
	s := newServer(t)
	token := s.register(t, "auditoria@oficina.com")
	s.createClient(t, token, "Ana")

	// drena a fila antes de consultar
	s.audit.Close()

	w := s.do(t, http.MethodGet, "/api/me/audit-logs?entity=client", token, nil)
	expectStatus(t, w, http.StatusOK)

	var out struct {
		Total int64 `json:"total"`
		Logs  []struct {
			Action string `json:"action"`
		} `json:"logs"`
	}
	decode(t, w, &out)
	if out.Total != 1 || out.Logs[0].Action != "client_created" {
		t.Fatalf("unexpected audit logs %+v", out)
	}
}

func TestAuditLogs_ByRequestID(t *testing.T) {
	s := newServer(t)
	token := s.register(t, "rastreio@oficina.com")

	const reqID = "6f1c2a5e-9b7d-4c3e-8a21-0d5f4e3b2a10"
	req := httptest.NewRequest(http.MethodPost, "/api/me/clients", strings.NewReader(`{"name":"Bruno"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(middleware.RequestIDHeader, reqID)
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	expectStatus(t, w, http.StatusCreated)

	s.createClient(t, token, "Carla")
	s.audit.Close()

	w = s.do(t, http.MethodGet, "/api/me/audit-logs?request_id="+reqID, token, nil)
	expectStatus(t, w, http.StatusOK)

	var out struct {
		Total int64 `json:"total"`
		Logs  []struct {
			Action    string `json:"action"`
			RequestID string `json:"request_id"`
		} `json:"logs"`
	}
	decode(t, w, &out)
	if out.Total != 1 || out.Logs[0].RequestID != reqID || out.Logs[0].Action != "client_created" {
		t.Fatalf("unexpected audit logs %+v", out)
	}

	w = s.do(t, http.MethodGet, "/api/me/audit-logs?entity_id=abc", token, nil)
	expectErrorCode(t, w, http.StatusBadRequest, "invalid_entity_id")
}

func TestReferenceChecks_DatabaseErrorIsInternal(t *testing.T) {
	s := newServer(t)
	defer s.audit.Close()
	token := s.register(t, "falha@oficina.com")
	ana := s.createClient(t, token, "Ana")

	if err := s.db.Migrator().DropTable(&models.Appointment{}); err != nil {
		t.Fatalf("drop appointments: %v", err)
	}
	w := s.do(t, http.MethodDelete, fmt.Sprintf("/api/me/clients/%d", ana), token, nil)
	expectErrorCode(t, w, http.StatusInternalServerError, "failed_to_check_client")

	if err := s.db.Migrator().DropTable(&models.Client{}); err != nil {
		t.Fatalf("drop clients: %v", err)
	}
	w = s.do(t, http.MethodPost, "/api/me/service-orders", token, map[string]any{
		"client_id": ana, "title": "Troca de óleo",
	})
	expectErrorCode(t, w, http.StatusInternalServerError, "failed_to_check_client")
}

func TestSummary_CountsPerWorkshop(t *testing.T) {
	s := newServer(t)
	defer s.audit.Close()
	token := s.register(t, "resumo@oficina.com")

	ana := s.createClient(t, token, "Ana")
	s.createClient(t, token, "Bruno")

	w := s.do(t, http.MethodPost, "/api/me/service-orders", token, map[string]any{
		"client_id": ana, "title": "Troca de óleo",
	})
	expectStatus(t, w, http.StatusCreated)

	w = s.do(t, http.MethodPost, "/api/me/appointments", token, map[string]any{
		"client_id": ana, "title": "Revisão", "date": futureDate(t, 2).Format("2006-01-02"), "time": "09:00",
	})
	expectStatus(t, w, http.StatusCreated)

	w = s.do(t, http.MethodPost, "/api/me/inventory", token, map[string]any{"name": "Vela", "current_stock": 4})
	expectStatus(t, w, http.StatusCreated)

	other := s.register(t, "vizinha@oficina.com")
	s.createClient(t, other, "Carla")

	w = s.do(t, http.MethodGet, "/api/me/summary", token, nil)
	expectStatus(t, w, http.StatusOK)

	var out struct {
		Clients        int64 `json:"clients"`
		ServiceOrders  int64 `json:"service_orders"`
		Appointments   int64 `json:"appointments"`
		InventoryItems int64 `json:"inventory_items"`
	}
	decode(t, w, &out)
	if out.Clients != 2 || out.ServiceOrders != 1 || out.Appointments != 1 || out.InventoryItems != 1 {
		t.Fatalf("unexpected summary %+v", out)
	}

	expectStatus(t, s.do(t, http.MethodGet, "/api/me/summary", "", nil), http.StatusUnauthorized)
}
