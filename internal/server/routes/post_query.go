package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dgc-tools/metaquery/internal/server/middleware"
	"github.com/dgc-tools/metaquery/pkg/logger"
	"github.com/dgc-tools/metaquery/pkg/query"
)

func QueryHandler(c echo.Context) error {
	type queryParams struct {
		Question string `json:"question" validate:"required"`
		UseCache *bool  `json:"use_cache"`
		Page     int    `json:"page" validate:"omitempty,min=1"`
		PageSize int    `json:"page_size" validate:"omitempty,min=1,max=1000"`
	}

	params := new(queryParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}

	ac := c.(*middleware.AppContext)

	opts := []query.QueryOption{}
	if params.UseCache != nil && !*params.UseCache {
		opts = append(opts, query.WithoutCache())
	}
	if params.PageSize > 0 {
		page := params.Page
		if page < 1 {
			page = 1
		}
		opts = append(opts, query.WithPagination(params.PageSize, page))
	}

	outcome := ac.App.Pipeline.Query(c.Request().Context(), params.Question, opts...)
	if outcome.Error != "" {
		logger.Warn("Query returned an error outcome", "request_id", ac.RequestID, "error", outcome.Error)
	} else {
		logger.Info("Query answered", "request_id", ac.RequestID, "rows", len(outcome.QueryResults))
	}

	return c.JSON(http.StatusOK, outcome)
}
