package server

import (
	"github.com/dgc-tools/metaquery/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Query routes
	apiRoutes.POST("/query", routes.QueryHandler)

	// Schema routes
	apiRoutes.GET("/schema", routes.GetSchemaHandler)
	apiRoutes.POST("/schema/refresh", routes.RefreshSchemaHandler)

	// Diagnostics routes
	apiRoutes.GET("/info", routes.GetInfoHandler)
	apiRoutes.GET("/health", routes.GetHealthHandler)

	// Cache routes
	apiRoutes.DELETE("/cache", routes.ClearCacheHandler)
	apiRoutes.GET("/cache/stats", routes.GetCacheStatsHandler)
}
