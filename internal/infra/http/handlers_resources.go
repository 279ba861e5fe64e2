package http

import (
	"errors"
	"net/http"

	"authcore/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) handleGetTenant(c *gin.Context) {
	tenant, err := s.tenants.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         tenant.ID,
		"name":       tenant.Name,
		"created_at": tenant.CreatedAt,
	})
}

func (s *Server) handleGetOrganization(c *gin.Context) {
	org, err := s.orgs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        org.ID,
		"tenant_id": org.TenantID,
		"name":      org.Name,
	})
}

func (s *Server) handleGetUser(c *gin.Context) {
	user, err := s.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":              user.ID,
		"tenant_id":       user.TenantID,
		"organization_id": user.OrganizationID,
		"status":          user.Status,
	})
}

func (s *Server) writeLookupError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeErrorCode(c, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}
	s.log.Error("resource lookup failed", zap.Error(err))
	writeErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal error")
}
