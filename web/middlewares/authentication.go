package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"neemba.com/sepkpi/config"
	"neemba.com/sepkpi/web/common"
)

// Context keys set by EmailAuth.
const (
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// Roles.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Paths reachable without an identity header.
var exemptPaths = map[string]bool{
	"/health": true,
}

// EmailAuth trusts the X-User-Email header set by the corporate reverse
// proxy. Requests from outside the corporate domain are rejected, and the
// configured admin emails get the admin role.
func EmailAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if exemptPaths[c.FullPath()] || exemptPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		email := strings.ToLower(strings.TrimSpace(c.GetHeader("X-User-Email")))
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("missing X-User-Email header"))
			return
		}
		if !strings.HasSuffix(email, cfg.Domain) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("email outside the corporate domain"))
			return
		}

		role := RoleViewer
		if cfg.IsAllowedAdmin(email) {
			role = RoleAdmin
		}

		c.Set(ContextUserEmail, email)
		c.Set(ContextUserRole, role)
		c.Next()
	}
}

// RequireAdmin gates the mutation endpoints on the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				common.NewErrorResponse("admin role required"))
			return
		}
		c.Next()
	}
}

// RequireUploadPassword additionally checks the shared upload password on
// the data ingestion endpoints.
func RequireUploadPassword(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AdminPassword == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-Admin-Password") != cfg.AdminPassword {
			c.AbortWithStatusJSON(http.StatusForbidden,
				common.NewErrorResponse("invalid upload password"))
			return
		}
		c.Next()
	}
}
