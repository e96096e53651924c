// Package server exposes the portfolio use cases over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	apierrors "github.com/Apurer/portfolio-api/internal/shared/errors"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// Handlers groups the API implementations mounted by the router.
type Handlers struct {
	ProjectsAPI ProjectsAPI
	ContactsAPI ContactsAPI
	SystemAPI   SystemAPI
}

// RouterConfig carries the cross-cutting middleware settings.
type RouterConfig struct {
	ServiceName    string
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	// AllowOrigins lists CORS origins; empty or "*" allows any origin.
	AllowOrigins []string
}

// NewRouter returns a new router.
func NewRouter(cfg RouterConfig, handlers Handlers) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), cfg, handlers)
}

// NewRouterWithGinEngine adds middleware and routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, cfg RouterConfig, handlers Handlers) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	responder := apierrors.NewResponder(logger)

	router.Use(gin.CustomRecoveryWithWriter(nil, responder.Recovery))
	router.Use(RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg.AllowOrigins)))
	if cfg.ServiceName != "" {
		var opts []otelgin.Option
		if cfg.TracerProvider != nil {
			opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
		}
		router.Use(otelgin.Middleware(cfg.ServiceName, opts...))
	}

	for _, route := range getRoutes(handlers) {
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	router.NoRoute(responder.NoRoute)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		ExposeHeaders: []string{"Content-Length", "X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}
	var explicit []string
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
		if origin != "" {
			explicit = append(explicit, origin)
		}
	}
	if len(explicit) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = explicit
	return cfg
}

func getRoutes(handlers Handlers) []Route {
	return []Route{
		{
			"ListProjects",
			http.MethodGet,
			"/api/projects",
			handlers.ProjectsAPI.ListProjects,
		},
		{
			"CreateProject",
			http.MethodPost,
			"/api/projects",
			handlers.ProjectsAPI.CreateProject,
		},
		{
			"UpdateProject",
			http.MethodPut,
			"/api/projects/:id",
			handlers.ProjectsAPI.UpdateProject,
		},
		{
			"DeleteProject",
			http.MethodDelete,
			"/api/projects/:id",
			handlers.ProjectsAPI.DeleteProject,
		},
		{
			"SubmitContact",
			http.MethodPost,
			"/api/contact",
			handlers.ContactsAPI.SubmitContact,
		},
		{
			"ListContacts",
			http.MethodGet,
			"/api/contacts",
			handlers.ContactsAPI.ListContacts,
		},
		{
			"Health",
			http.MethodGet,
			"/api/health",
			handlers.SystemAPI.Health,
		},
		{
			"EmailTest",
			http.MethodGet,
			"/api/email-test",
			handlers.SystemAPI.EmailTest,
		},
	}
}
