package http

import (
	"net/http"

	"authcore/internal/authz"
	"authcore/internal/domain"

	"github.com/gin-gonic/gin"
)

// guardFunc is one resource-access decision evaluated against the bound
// caller and the route parameters.
type guardFunc func(domain.SecurityContext, gin.Params) bool

type routeGuard struct {
	Method  string
	Path    string
	Decide  guardFunc
	Handler gin.HandlerFunc
}

// guardedRoutes is the endpoint-to-decision table: which AccessDecision a
// route requires is data here, not an expression embedded per handler.
func (s *Server) guardedRoutes() []routeGuard {
	return []routeGuard{
		{
			Method: http.MethodGet,
			Path:   "/tenants/:id",
			Decide: func(sc domain.SecurityContext, p gin.Params) bool {
				return authz.Tenant(sc, p.ByName("id"), authz.ActionRead)
			},
			Handler: s.handleGetTenant,
		},
		{
			Method: http.MethodGet,
			Path:   "/organizations/:id",
			Decide: func(sc domain.SecurityContext, p gin.Params) bool {
				return authz.Organization(sc, p.ByName("id"), authz.ActionRead)
			},
			Handler: s.handleGetOrganization,
		},
		{
			Method: http.MethodGet,
			Path:   "/users/:id",
			Decide: func(sc domain.SecurityContext, p gin.Params) bool {
				return authz.User(sc, p.ByName("id"), authz.ActionRead)
			},
			Handler: s.handleGetUser,
		},
	}
}

// requireDecision maps an anonymous caller to unauthenticated and a denied
// decision to forbidden; the two stay distinct so a denial does not read
// as a missing resource.
func (s *Server) requireDecision(decide guardFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := currentContext(c)
		if !sc.IsAuthenticated() {
			writeErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		if !decide(sc, c.Params) {
			writeErrorCode(c, http.StatusForbidden, "FORBIDDEN", "forbidden")
			return
		}
		c.Next()
	}
}
