// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/http/handlers"
	"tripdesk/internal/http/middleware"
	"tripdesk/internal/infra"
	"tripdesk/internal/modules/trip"
)

type RouterDeps struct {
	Trips    *trip.Service
	Verifier infra.TokenVerifier
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	tripHandler := handlers.NewTripHandler(deps.Trips)
	adminHandler := handlers.NewAdminHandler(deps.Trips)

	api := r.Group("/api", middleware.Auth(deps.Verifier))

	trips := api.Group("/trips")
	trips.POST("", tripHandler.Create)
	trips.GET("", tripHandler.List)
	trips.GET("/stats", tripHandler.Stats)
	trips.GET("/:id", tripHandler.Get)
	trips.PATCH("/:id", tripHandler.Update)
	trips.POST("/:id/cancel", tripHandler.Cancel)

	admin := api.Group("/admin/trips", middleware.RequireRole("admin"))
	admin.GET("", adminHandler.List)
	admin.POST("/:id/assign", adminHandler.Assign)
	admin.PATCH("/:id/status", adminHandler.UpdateStatus)

	return r
}
