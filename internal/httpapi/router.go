// README: HTTP router registration (Gin).
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"itinerary/internal/httpapi/handlers"
	"itinerary/internal/httpapi/middleware"
	"itinerary/internal/infra"
)

// NewRouter wires the itinerary-planning endpoint behind the auth/logging/
// recovery middleware chain.
func NewRouter(planHandler *handlers.PlanHandler, verifier infra.TokenVerifier) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logging())
	r.Use(middleware.Auth(verifier))

	r.POST("/api/plan", planHandler.Plan)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
