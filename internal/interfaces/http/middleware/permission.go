package middleware

import (
	"net/http"

	"github.com/chickenviken/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for capability middleware
type PermissionConfig struct {
	Logger *zap.Logger
}

// RequireCapability creates middleware that admits only admins holding the
// given capability. Super admins pass every check. Requests without claims
// are denied outright.
func RequireCapability(capability identity.Capability) gin.HandlerFunc {
	return RequireCapabilityWithConfig(capability, PermissionConfig{})
}

// RequireCapabilityWithConfig creates capability middleware with custom config
func RequireCapabilityWithConfig(capability identity.Capability, cfg PermissionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortForbidden(c, cfg, capability, "no authentication claims found")
			return
		}

		if !claimsAllow(claims.Role, claims.Capabilities, capability) {
			abortForbidden(c, cfg, capability, "capability not granted")
			return
		}

		c.Next()
	}
}

// RequireSuperAdmin creates middleware that admits only super admins
func RequireSuperAdmin(cfg PermissionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortForbidden(c, cfg, identity.CapabilityManageAdmins, "no authentication claims found")
			return
		}

		if !isSuperAdmin(claims.Role, claims.Capabilities) {
			abortForbidden(c, cfg, identity.CapabilityManageAdmins, "super admin rank required")
			return
		}

		c.Next()
	}
}

func claimsAllow(role string, capabilities []string, capability identity.Capability) bool {
	if isSuperAdmin(role, capabilities) {
		return true
	}
	for _, held := range capabilities {
		if held == string(capability) {
			return true
		}
	}
	return false
}

func isSuperAdmin(role string, capabilities []string) bool {
	if identity.Role(role) == identity.RoleSuperAdmin {
		return true
	}
	for _, held := range capabilities {
		if held == string(identity.CapabilityManageAdmins) {
			return true
		}
	}
	return false
}

func abortForbidden(c *gin.Context, cfg PermissionConfig, capability identity.Capability, reason string) {
	if cfg.Logger != nil {
		userID := ""
		if claims := GetJWTClaims(c); claims != nil {
			userID = claims.UserID
		}
		cfg.Logger.Warn("capability check failed",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.String("required_capability", string(capability)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "Access denied",
		},
	})
}
