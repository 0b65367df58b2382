package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dgc-tools/metaquery/internal/server/middleware"
)

func GetSchemaHandler(c echo.Context) error {
	type getSchemaResponse struct {
		Message string `json:"message"`
		Schema  string `json:"schema,omitempty"`
	}

	ac := c.(*middleware.AppContext)

	schema, err := ac.App.Pipeline.GetSchemaInfo(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, getSchemaResponse{
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, getSchemaResponse{
		Message: "Schema retrieved",
		Schema:  schema,
	})
}

func RefreshSchemaHandler(c echo.Context) error {
	type refreshSchemaResponse struct {
		Message string `json:"message"`
		Schema  string `json:"schema,omitempty"`
	}

	ac := c.(*middleware.AppContext)

	schema, err := ac.App.Pipeline.RefreshSchema(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, refreshSchemaResponse{
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, refreshSchemaResponse{
		Message: "Schema refreshed",
		Schema:  schema,
	})
}
