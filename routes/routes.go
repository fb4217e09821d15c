package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bookwise/handlers"
)

// RegisterTenantRoutes registers tenant, schedule, availability, client
// and appointment endpoints.
func RegisterTenantRoutes(
	r *gin.Engine,
	tenants *handlers.TenantHandler,
	schedules *handlers.ScheduleHandler,
	avail *handlers.AvailabilityHandler,
	clients *handlers.ClientHandler,
	appts *handlers.AppointmentHandler,
) {
	api := r.Group("/api/tenants")
	{
		api.POST("", tenants.CreateTenant)
		api.GET("/:id", tenants.GetTenant)
		api.DELETE("/:id", tenants.DeleteTenant)

		api.GET("/:id/schedule", schedules.GetSchedule)
		api.PUT("/:id/schedule", schedules.UpdateSchedule)

		api.GET("/:id/availability", avail.GetAvailability)

		api.POST("/:id/clients", clients.CreateClient)
		api.GET("/:id/clients", clients.ListClients)
		api.GET("/:id/clients/:clientID", clients.GetClient)
		api.POST("/:id/clients/:clientID/archive", clients.ArchiveClient)
		api.DELETE("/:id/clients/:clientID", clients.DeleteClient)
		api.GET("/:id/quota", clients.GetQuota)

		api.POST("/:id/appointments", appts.CreateAppointment)
		api.GET("/:id/appointments", appts.ListAppointments)
		api.POST("/:id/appointments/:apptID/cancel", appts.CancelAppointment)
	}
}

// RegisterSystemRoutes registers health and readiness endpoints.
func RegisterSystemRoutes(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}

// CORSMiddleware returns the CORS policy for browser clients.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
