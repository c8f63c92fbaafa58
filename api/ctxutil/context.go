// Package ctxutil moves request scoped values between gin and context.Context.
package ctxutil

import (
	"context"
	"strconv"

	"storefront/api/response"
	"storefront/domain/shared"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PrincipalKey gin context key holding the authenticated shared.Principal
const PrincipalKey = "principal"

// Context returns the request context carrying the request id for logging
func Context(c *gin.Context) context.Context {
	return logger.ContextWithRequestID(c.Request.Context(), response.GetRequestID(c))
}

func SetPrincipal(c *gin.Context, p shared.Principal) {
	c.Set(PrincipalKey, p)
}

// Principal returns the caller, or the anonymous principal when none was set
func Principal(c *gin.Context) shared.Principal {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(shared.Principal); ok {
			return p
		}
	}
	return shared.Principal{}
}

// QueryInt reads a numeric query parameter; absent or malformed values yield 0
// so the application layer applies its defaults.
func QueryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
