package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Context keys set by Authenticate. "userID" holds the decimal string form
// so logging, rate limiting and idempotency can read it without parsing.
const (
	ctxKeyUserID  = "userID"
	ctxKeyUID     = "uid"
	ctxKeyRole    = "role"
	bearerPrefix  = "bearer "
	authHeaderKey = "Authorization"
)

// TokenParser turns a bearer token into the caller's id and role.
type TokenParser func(token string) (userID uint, role string, err error)

// Authenticate parses an optional bearer token. Requests without an
// Authorization header pass through anonymously; a present but invalid
// token is rejected with 401.
func Authenticate(parse TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := strings.TrimSpace(c.GetHeader(authHeaderKey))
		if h == "" {
			c.Next()
			return
		}
		if len(h) <= len(bearerPrefix) || !strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
			abortJSON(c, http.StatusUnauthorized, "invalid_token", "expected a bearer token")
			return
		}
		uid, role, err := parse(strings.TrimSpace(h[len(bearerPrefix):]))
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
			return
		}
		c.Set(ctxKeyUID, uid)
		c.Set(ctxKeyUserID, strconv.FormatUint(uint64(uid), 10))
		c.Set(ctxKeyRole, role)
		withLogger(c, func(l zerolog.Context) zerolog.Context {
			return l.Uint("user_id", uid).Str("role", role)
		})
		c.Next()
	}
}

// UserID returns the authenticated user id, if any.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxKeyUID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// Role returns the authenticated user's role, or "".
func Role(c *gin.Context) string {
	return c.GetString(ctxKeyRole)
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		c.Next()
	}
}

// RequireRole rejects anonymous requests with 401 and callers lacking role
// with 403.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		if Role(c) != role {
			abortJSON(c, http.StatusForbidden, "forbidden", "insufficient role")
			return
		}
		c.Next()
	}
}

// abortJSON writes the same envelope the handlers package uses.
func abortJSON(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       code,
		"message":    msg,
	})
}
