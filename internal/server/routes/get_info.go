package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dgc-tools/metaquery/internal/server/middleware"
	"github.com/dgc-tools/metaquery/pkg/ai"
)

func GetHealthHandler(c echo.Context) error {
	type getHealthResponse struct {
		Status    string `json:"status"`
		Connected bool   `json:"connected"`
	}

	ac := c.(*middleware.AppContext)

	connected := ac.App.Pipeline.TestConnection(c.Request().Context())
	status := http.StatusOK
	if !connected {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, getHealthResponse{
		Status:    "up",
		Connected: connected,
	})
}

func GetInfoHandler(c echo.Context) error {
	type getInfoResponse struct {
		Connected bool            `json:"connected"`
		Database  map[string]any  `json:"database,omitempty"`
		Model     ai.ModelMetrics `json:"model_metrics"`
	}

	ac := c.(*middleware.AppContext)
	pipeline := ac.App.Pipeline
	ctx := c.Request().Context()

	resp := getInfoResponse{
		Connected: pipeline.TestConnection(ctx),
		Model:     pipeline.ModelMetrics(),
	}

	if resp.Connected {
		info, err := pipeline.GetDatabaseInfo(ctx)
		if err == nil {
			resp.Database = info
		}
	}

	return c.JSON(http.StatusOK, resp)
}
