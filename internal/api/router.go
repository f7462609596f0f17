package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/healthlog/health-backend/docs" // registers the swagger spec
	"github.com/healthlog/health-backend/internal/api/handler"
	"github.com/healthlog/health-backend/internal/api/middleware"
	"github.com/healthlog/health-backend/internal/core/ports"
)

// Dependencies is everything the router needs from the composition root.
type Dependencies struct {
	Service ports.HealthService
	Pingers map[string]ports.Pinger
	Log     zerolog.Logger

	CORSOrigins []string
	// AuthRateLimit is the sustained requests per second allowed per client
	// IP on /register and /login. Zero disables limiting.
	AuthRateLimit float64
	AuthRateBurst int
}

var (
	httpMetricsOnce sync.Once
	httpMetrics     echo.MiddlewareFunc
)

// httpMetricsMiddleware registers the request collectors once per process so
// several routers (tests) can share the default registry.
func httpMetricsMiddleware() echo.MiddlewareFunc {
	httpMetricsOnce.Do(func() {
		httpMetrics = echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace: "healthlog",
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		})
	})
	return httpMetrics
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			middleware.HeaderAuthToken,
		},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(httpMetricsMiddleware())

	// --- Dependencies ---
	svc := deps.Service
	auth := middleware.Auth()
	authHandler := handler.NewAuthHandler(svc)
	userHandler := handler.NewUserHandler(svc)
	waterHandler := handler.NewWaterHandler(svc)
	sleepHandler := handler.NewSleepHandler(svc)
	activityHandler := handler.NewActivityHandler(svc)
	categoryHandler := handler.NewCategoryHandler(svc)
	healthHandler := handler.NewHealthHandler(svc, deps.Pingers)

	// --- Auth routes ---
	limited := authRateLimiter(deps.AuthRateLimit, deps.AuthRateBurst)
	e.POST("/register", authHandler.Register, limited...)
	e.POST("/login", authHandler.Login, limited...)
	e.POST("/logout", authHandler.Logout, auth)

	// --- User ---
	user := e.Group("/user", auth)
	user.GET("/profile", userHandler.Profile)
	user.PUT("/profile", userHandler.UpdateProfile)
	user.GET("/bmi", userHandler.BMI)
	user.DELETE("", userHandler.Delete)

	// --- Records ---
	waters := e.Group("/waters", auth)
	waters.GET("", waterHandler.List)
	waters.POST("", waterHandler.Add)
	waters.GET("/weekly", waterHandler.Weekly)
	waters.GET("/enough", waterHandler.Enough)
	waters.PUT("/:index", waterHandler.Update)
	waters.DELETE("/:index", waterHandler.Delete)

	sleeps := e.Group("/sleeps", auth)
	sleeps.GET("", sleepHandler.List)
	sleeps.POST("", sleepHandler.Add)
	sleeps.GET("/last", sleepHandler.Last)
	sleeps.GET("/enough", sleepHandler.Enough)
	sleeps.PUT("/:index", sleepHandler.Update)
	sleeps.DELETE("/:index", sleepHandler.Delete)

	activities := e.Group("/activities", auth)
	activities.GET("", activityHandler.List)
	activities.POST("", activityHandler.Add)
	activities.POST("/sort", activityHandler.Sort)
	activities.PUT("/:index", activityHandler.Update)
	activities.DELETE("/:index", activityHandler.Delete)

	// --- Categories ---
	categories := e.Group("/categories", auth)
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)
	categories.DELETE("/:name", categoryHandler.Delete)
	categories.GET("/:name/items", categoryHandler.Items)
	categories.POST("/:name/items", categoryHandler.AddItem)
	categories.PUT("/:name/items/:index", categoryHandler.UpdateItem)
	categories.DELETE("/:name/items/:index", categoryHandler.DeleteItem)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – snapshot writes and backends
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// authRateLimiter throttles credential endpoints per client IP.
func authRateLimiter(perSecond float64, burst int) []echo.MiddlewareFunc {
	if perSecond <= 0 {
		return nil
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return []echo.MiddlewareFunc{echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "client identity unavailable")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		},
	})}
}
