package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// BaseURL prefixes every API operation.
const BaseURL = "/api/v1"

// MetricsRecorder observes requests and serves the metrics endpoint.
type MetricsRecorder interface {
	requestRecorder
	Handler() http.Handler
}

type RouterConfig struct {
	Server  *Server
	Metrics MetricsRecorder
	Logger  *slog.Logger
	// LogLevel applies to echo's own logger.
	LogLevel log.Lvl
	// Ping reports database reachability to the health check; nil skips it.
	Ping func(ctx context.Context) error
}

// NewRouter builds the echo instance serving the API, its contract
// validation, docs, health and metrics endpoints.
func NewRouter(ctx context.Context, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}

	validation, err := openAPIValidation(doc)
	if err != nil {
		return nil, err
	}

	if err = registerSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(cfg.LogLevel)
	e.Validator = requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
	e.HTTPErrorHandler = newErrorHandler(cfg.Logger)

	e.Use(
		middleware.Recover(),
		requestLogger(cfg.Logger),
		requestMetrics(cfg.Metrics),
	)

	e.GET("/health", health(cfg.Ping))
	e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(SwaggerInstance)))

	api := e.Group(BaseURL, validation)
	RegisterHandlers(api, cfg.Server, "")

	return e, nil
}

func health(ping func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ping != nil {
			if err := ping(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "Database is unavailable")
			}
		}
		return c.String(http.StatusOK, "Healthy")
	}
}

// ParseLogLevel maps LOG_LEVEL to slog and echo levels. Unknown values mean info.
func ParseLogLevel(level string) (slog.Level, log.Lvl) {
	switch level {
	case "debug", "DEBUG":
		return slog.LevelDebug, log.DEBUG
	case "warn", "WARN", "warning":
		return slog.LevelWarn, log.WARN
	case "error", "ERROR":
		return slog.LevelError, log.ERROR
	default:
		return slog.LevelInfo, log.INFO
	}
}
