package http

import (
	"net/http"
	"strings"

	"authcore/internal/domain"
	"authcore/internal/secctx"

	"github.com/gin-gonic/gin"
)

const securityContextKey = "securityContext"

// Header names accepted from a trusted gateway. When X-User-Id is present
// the gateway has already authenticated the caller and the bearer token is
// not consulted.
const (
	headerUserID        = "X-User-Id"
	headerTenantID      = "X-Tenant-Id"
	headerOrganization  = "X-Organization-Id"
	headerRoles         = "X-User-Roles"
	headerPermissions   = "X-Permissions"
	headerTraceID       = "X-Trace-Id"
	headerCorrelationID = "X-Correlation-Id"
	headerRequestSource = "X-Request-Source"
)

// authenticate builds and binds the per-request SecurityContext, then
// unconditionally clears it when the request completes. Gin recycles its
// contexts across requests, so the clear is what keeps a pooled worker from
// serving the next request with this caller's identity.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := s.buildSecurityContext(c)
		bindContext(c, sc)
		defer clearContext(c)
		c.Next()
	}
}

func (s *Server) buildSecurityContext(c *gin.Context) domain.SecurityContext {
	if userID := strings.TrimSpace(c.GetHeader(headerUserID)); userID != "" {
		return gatewayContext(c, userID)
	}
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" {
		// No credentials is anonymous traffic, not an error; guards
		// decide what anonymous callers may reach.
		return domain.Anonymous()
	}
	claims, err := s.codec.Verify(token)
	if err != nil {
		return domain.Anonymous()
	}
	sc := domain.FromClaims(claims)
	sc.TraceID = c.GetHeader(headerTraceID)
	sc.CorrelationID = c.GetHeader(headerCorrelationID)
	sc.RequestSource = c.GetHeader(headerRequestSource)
	return sc
}

func gatewayContext(c *gin.Context, userID string) domain.SecurityContext {
	sc := domain.FromClaims(domain.Claims{
		UserID:         userID,
		TenantID:       strings.TrimSpace(c.GetHeader(headerTenantID)),
		OrganizationID: strings.TrimSpace(c.GetHeader(headerOrganization)),
		Roles:          splitCSV(c.GetHeader(headerRoles)),
		Permissions:    splitCSV(c.GetHeader(headerPermissions)),
	})
	sc.TraceID = c.GetHeader(headerTraceID)
	sc.CorrelationID = c.GetHeader(headerCorrelationID)
	sc.RequestSource = c.GetHeader(headerRequestSource)
	return sc
}

func bindContext(c *gin.Context, sc domain.SecurityContext) {
	c.Set(securityContextKey, sc)
	c.Request = c.Request.WithContext(secctx.With(c.Request.Context(), sc))
}

// clearContext is idempotent; it runs on every exit path of authenticate.
func clearContext(c *gin.Context) {
	c.Set(securityContextKey, domain.Anonymous())
	c.Request = c.Request.WithContext(secctx.Cleared(c.Request.Context()))
}

func currentContext(c *gin.Context) domain.SecurityContext {
	if raw, ok := c.Get(securityContextKey); ok {
		if sc, ok := raw.(domain.SecurityContext); ok {
			return sc
		}
	}
	return secctx.From(c.Request.Context())
}

func (s *Server) requireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentContext(c).IsAuthenticated() {
			writeErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		c.Next()
	}
}

func extractBearerToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(value), "bearer ") {
		return ""
	}
	return strings.TrimSpace(value[len("bearer "):])
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
