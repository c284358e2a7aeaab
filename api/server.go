package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"regdash/app"
	"regdash/internal/config"
	"regdash/internal/mockdata"
	"regdash/ports"
)

// Deps bundles everything the HTTP layer needs. Registrations may be nil
// when the database is disabled; Mock is the shared demo fallback store.
type Deps struct {
	Aggregator    *app.Aggregator
	Analytics     *app.AnalyticsService
	Intake        *app.IntakeService
	Registrations ports.RegistrationRepository
	Mock          *mockdata.Store
	SheetsEnabled bool
}

// Server is the registration dashboard HTTP server.
type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	deps     Deps
	sessions *sessionStore
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		router:   gin.Default(),
		cfg:      cfg,
		deps:     deps,
		sessions: newSessionStore(0),
	}

	s.router.Use(corsMiddleware())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.POST("/api/login", s.handleLogin)
	s.router.GET("/api/config", s.handleConfig)
	s.router.GET("/healthz", s.handleHealth)

	reg := s.router.Group("/api/register")
	{
		reg.POST("", s.handleRegister)
		reg.GET("/excel", s.handleExcel)
		reg.GET("/analytics", s.handleAnalytics)
		reg.GET("/stats", s.handleStats)
		reg.GET("/debug/sheets", s.handleDebugSheets)
		reg.DELETE("/delete/:id", s.requireAuth(), s.handleDelete)
	}
}

// Run starts the HTTP server on the configured port.
func (s *Server) Run() error {
	return s.router.Run(":" + s.cfg.Server.Port)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requireAuth rejects requests without a live bearer token.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if !s.sessions.Valid(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized",
			})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// corsMiddleware allows the dashboard front end to be served from another
// origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
