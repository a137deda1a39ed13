package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"medbuddy/config"
	"medbuddy/handlers"
	"medbuddy/middleware"
)

// RegisterRoutes wires the public and admin API surfaces.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, ah *handlers.AdminHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  config.AppConfig.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	{
		api.GET("/slots", bh.ListSlots)
		api.POST("/book", bh.Book)
		api.POST("/status", bh.Status)
		api.POST("/history", bh.History)
		api.POST("/cancel/:code", bh.Cancel)
		api.GET("/appointment/pdf/:code", bh.AppointmentPDF)
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/login", ah.Login)

		// Protected routes (Require Authentication)
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.GET("/dashboard", ah.Dashboard)
		admin.POST("/slots", ah.AddSlot)
		admin.POST("/update/:id", ah.UpdateAppointment)
		admin.POST("/settings", ah.UpdateSettings)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
