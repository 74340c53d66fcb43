package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soundem/soundem/internal/domain/entity"
	"github.com/soundem/soundem/pkg/response"
)

const (
	// CtxUserIDKey is the Gin context key carrying the authenticated user id.
	CtxUserIDKey = "userID"
	// CtxUserEmailKey carries the authenticated user's email.
	CtxUserEmailKey = "userEmail"
)

// TokenResolver resolves a bearer token to a user. A bad token resolves to
// (nil, nil), not an error; errors mean the store itself failed.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*entity.User, error)
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth requires a valid bearer token and injects the user into the context.
// Malformed tokens, bad signatures and deleted users all get the same 401.
func Auth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		u, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			resp := response.Error[any](c, http.StatusInternalServerError, "auth unavailable", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		if u == nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserEmailKey, u.Email)
		c.Next()
	}
}

// OptionalAuth injects the user when a valid token is presented and lets the
// request through anonymously otherwise. Listing endpoints use it to fill in
// per-user flags.
func OptionalAuth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if u, err := resolver.ResolveToken(c.Request.Context(), token); err == nil && u != nil {
				c.Set(CtxUserIDKey, u.ID)
				c.Set(CtxUserEmailKey, u.Email)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user id from the context, if any.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
