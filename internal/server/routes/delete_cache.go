package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dgc-tools/metaquery/internal/server/middleware"
)

func ClearCacheHandler(c echo.Context) error {
	ac := c.(*middleware.AppContext)
	ac.App.Pipeline.ClearCache()

	return c.JSON(http.StatusOK, map[string]string{"message": "Cache cleared"})
}

func GetCacheStatsHandler(c echo.Context) error {
	ac := c.(*middleware.AppContext)

	return c.JSON(http.StatusOK, ac.App.Pipeline.GetCacheStats())
}
