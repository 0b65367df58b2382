package middleware

import (
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/dgc-tools/metaquery/pkg/query"
)

// App holds the shared application state handlers need.
type App struct {
	Pipeline *query.Client
}

// AppContext extends echo.Context with the application state and a
// per-request id used to correlate log lines.
type AppContext struct {
	echo.Context
	App       *App
	RequestID string
}

// AppContextMiddleware wraps every request context with the shared
// application state.
func AppContextMiddleware(pipeline *query.Client) echo.MiddlewareFunc {
	app := &App{Pipeline: pipeline}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := gonanoid.New()
			if err != nil {
				id = "unknown"
			}
			return next(&AppContext{
				Context:   c,
				App:       app,
				RequestID: id,
			})
		}
	}
}
