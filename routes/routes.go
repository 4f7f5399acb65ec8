package routes

import (
	"time"

	"bookingwizard/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterWizardRoutes sets up the endpoints that drive a wizard session.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	wizardGroup := r.Group("/api/wizard")
	{
		wizardGroup.GET("/catalog", hb.GetCatalog)
		wizardGroup.POST("/session", hb.StartSession)
		wizardGroup.GET("/session/:sessionID", hb.GetSession)
		wizardGroup.DELETE("/session/:sessionID", hb.CancelSession)
		wizardGroup.PATCH("/session/:sessionID/fields", hb.SetFields)
		wizardGroup.PUT("/session/:sessionID/sensory", hb.SetSensory)
		wizardGroup.POST("/session/:sessionID/next", hb.NextStep)
		wizardGroup.POST("/session/:sessionID/prev", hb.PrevStep)
		wizardGroup.POST("/session/:sessionID/goto/:step", hb.GoToStep)
		wizardGroup.POST("/session/:sessionID/submit", hb.SubmitBooking)
		wizardGroup.DELETE("/session/:sessionID/error", hb.DismissError)
	}
}

// RegisterBookingRoutes sets up the booking submission endpoint.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/book", hb.CreateBooking)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "Location", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterWizardRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
