package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/assetsvc/domain"
)

// CasbinMW enforces role policies on authenticated routes
type CasbinMW struct {
	enforcer domain.CasbinEnforcer
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer domain.CasbinEnforcer) *CasbinMW {
	return &CasbinMW{enforcer: enforcer}
}

// Enforce returns the casbin authorization middleware. It must run after AuthMiddleware.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		userID, hasUser := CurrentUserID(c)
		role, hasRole := c.Get(ContextUserRole)
		if !hasUser || !hasRole {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User ID or role not found in token"})
			return
		}

		// Identity comes from the token only; a conflicting client header is rejected
		if header := c.GetHeader("x-user-id"); header != "" && header != strconv.FormatUint(uint64(userID), 10) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Header x-user-id does not match token user ID"})
			return
		}

		allowed, err := mw.enforcer.Enforce("role_"+role.(string), c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Authorization check failed"})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access Denied"})
			return
		}

		c.Next()
	})
}
