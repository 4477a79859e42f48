package middleware

import (
	"strings"

	"github.com/dhima/event-records/internal/auth"
	"github.com/dhima/event-records/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionCookie is the cookie the identity provider's browser SDK sets.
const SessionCookie = "__session"

// Identity resolves the caller from a bearer token or session cookie and stores it on the
// request context. It never rejects: without a valid token the request continues anonymous
// and the operations that need a caller report unauthorized themselves.
func Identity(verifier auth.Verifier, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debug("ignoring invalid token",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
