package http

import (
	"errors"
	"net/http"

	"authcore/internal/authz"
	"authcore/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	AccessExpiresIn  int64  `json:"access_expires_in"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
	TokenType        string `json:"token_type"`
}

func toTokenResponse(pair domain.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresIn:  pair.AccessTTLSeconds,
		RefreshExpiresIn: pair.RefreshTTLSeconds,
		TokenType:        pair.TokenType,
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	pair, err := s.tokens.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		s.writeLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTokenResponse(pair))
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	pair, err := s.tokens.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		s.writeLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTokenResponse(pair))
}

func (s *Server) handleLogout(c *gin.Context) {
	sc := currentContext(c)
	if err := s.tokens.RevokeUser(c.Request.Context(), sc.UserID); err != nil {
		s.writeLifecycleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleMe(c *gin.Context) {
	sc := currentContext(c)
	c.JSON(http.StatusOK, gin.H{
		"user_id":         sc.UserID,
		"tenant_id":       sc.TenantID,
		"organization_id": sc.OrganizationID,
		"roles":           sc.Roles,
		"permissions":     sc.Permissions,
		"service_account": sc.ServiceAccount,
		"scope":           authz.ResolveScope(sc).String(),
	})
}

func (s *Server) writeLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeErrorCode(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
	case errors.Is(err, domain.ErrInvalidRefreshToken):
		writeErrorCode(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "invalid refresh token")
	case errors.Is(err, domain.ErrUserInactive):
		writeErrorCode(c, http.StatusForbidden, "USER_INACTIVE", "user inactive")
	default:
		s.log.Error("token lifecycle operation failed", zap.Error(err))
		writeErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
