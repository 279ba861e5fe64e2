package http

import (
	"net/http"

	"authcore/internal/auth"
	"authcore/internal/config"
	"authcore/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg config.Config
	log *zap.Logger
	r   *gin.Engine

	codec   *auth.Codec
	tokens  *usecase.TokenService
	users   usecase.UserRepository
	tenants usecase.TenantRepository
	orgs    usecase.OrganizationRepository
}

type ServerDeps struct {
	Codec         *auth.Codec
	Tokens        *usecase.TokenService
	Users         usecase.UserRepository
	Tenants       usecase.TenantRepository
	Organizations usecase.OrganizationRepository
	Logger        *zap.Logger
}

func NewServer(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:     cfg,
		log:     deps.Logger,
		r:       r,
		codec:   deps.Codec,
		tokens:  deps.Tokens,
		users:   deps.Users,
		tenants: deps.Tenants,
		orgs:    deps.Organizations,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.r.Group("/v1", s.authenticate())

	authGroup := v1.Group("/auth")
	authGroup.POST("/login", s.handleLogin)
	authGroup.POST("/refresh", s.handleRefresh)
	authGroup.POST("/logout", s.requireAuthenticated(), s.handleLogout)
	authGroup.GET("/me", s.requireAuthenticated(), s.handleMe)

	for _, g := range s.guardedRoutes() {
		v1.Handle(g.Method, g.Path, s.requireDecision(g.Decide), g.Handler)
	}

	s.r.NoRoute(func(c *gin.Context) {
		writeErrorCode(c, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
}

func (s *Server) Run() error {
	return s.r.Run(s.cfg.HTTPAddr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.r
}
