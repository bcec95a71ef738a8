package routes

import (
	"net/http"
	"time"

	"drivebook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSearchRoutes registers the landing and availability endpoints.
func RegisterSearchRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.IndexHandler)
	r.POST("/", hb.SubmitSearchHandler)
	r.GET("/search", hb.SearchHandler)
}

// RegisterBookingRoutes registers the booking form and write path.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/book", hb.BookingFormHandler)
	r.POST("/book", hb.ConfirmBookingHandler)
}

// RegisterPartnerRoutes registers partner self-registration and calendar
// connection endpoints.
func RegisterPartnerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/join", hb.JoinHandler)
	api := r.Group("/api/partners")
	{
		api.GET("/connect/callback", hb.ConnectCallbackHandler)
	}
}

// RegisterWebhookRoute registers the provider notification endpoint.
func RegisterWebhookRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/webhook", hb.WebhookHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Drivebook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSearchRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPartnerRoutes(r, hb)
	RegisterWebhookRoute(r, hb)
	RegisterHealthRoute(r)
}
