package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/office-master/internal/audit"
	"github.com/BruksfildServices01/office-master/internal/config"
	domain "github.com/BruksfildServices01/office-master/internal/domain/appointment"
	"github.com/BruksfildServices01/office-master/internal/handlers"
	infraRepo "github.com/BruksfildServices01/office-master/internal/infra/repository"
	"github.com/BruksfildServices01/office-master/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/office-master/internal/usecase/appointment"
)

// RegisterRoutes monta a API. loginGuard é opcional (nil quando não há
// Redis para limitar tentativas de login).
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	auditDispatcher *audit.Dispatcher,
	loginGuard gin.HandlerFunc,
) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	workday := domain.Workday{
		Start: cfg.WorkdayStart,
		End:   cfg.WorkdayEnd,
		Step:  cfg.SlotStep,
	}

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentRepo,
		ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher),
		ucAppointment.NewUpdateAppointment(appointmentRepo, auditDispatcher),
		ucAppointment.NewChangeAppointmentStatus(appointmentRepo, auditDispatcher),
		ucAppointment.NewDeleteAppointment(appointmentRepo, auditDispatcher),
		ucAppointment.NewListAppointmentsByDate(appointmentRepo),
		ucAppointment.NewGetMonthGrid(appointmentRepo),
		ucAppointment.NewCheckConflict(appointmentRepo, workday),
		ucAppointment.NewExportICS(appointmentRepo),
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, auditDispatcher)
	clientHandler := handlers.NewClientHandler(db, auditDispatcher)
	serviceOrderHandler := handlers.NewServiceOrderHandler(db, auditDispatcher)
	inventoryHandler := handlers.NewInventoryHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		auth := api.Group("/auth")
		if loginGuard != nil {
			auth.Use(loginGuard)
		}
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("", meHandler.GetMe)
			secured.GET("/summary", meHandler.Summary)

			secured.GET("/workshop", meHandler.GetWorkshop)
			secured.PATCH("/workshop", meHandler.UpdateWorkshop)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.GET("/service-orders", serviceOrderHandler.List)
			secured.POST("/service-orders", serviceOrderHandler.Create)
			secured.GET("/service-orders/:id", serviceOrderHandler.Get)
			secured.PATCH("/service-orders/:id", serviceOrderHandler.Update)
			secured.DELETE("/service-orders/:id", serviceOrderHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.Month)
			secured.GET("/appointments/conflict", appointmentHandler.Conflict)
			secured.GET("/appointments/calendar.ics", appointmentHandler.CalendarICS)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/appointments/:id/status", appointmentHandler.ChangeStatus)

			secured.GET("/inventory", inventoryHandler.List)
			secured.POST("/inventory", inventoryHandler.Create)
			secured.GET("/inventory/:id", inventoryHandler.Get)
			secured.PATCH("/inventory/:id", inventoryHandler.Update)
			secured.DELETE("/inventory/:id", inventoryHandler.Delete)
			secured.POST("/inventory/:id/stock", inventoryHandler.AdjustStock)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
