package routes

import (
	"bookingwizard/handlers"
	"bookingwizard/middleware"
	"bookingwizard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter creates the Gin engine with the global middleware stack and all routes.
func NewRouter(hb *handlers.HandlerBundle, logger *zap.Logger, maxRequestsPerMin int) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(maxRequestsPerMin, logger))

	RegisterRoutes(router, hb)
	return router
}
