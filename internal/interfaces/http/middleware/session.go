package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/compras/backend/internal/domain/shared"
	"github.com/compras/backend/internal/infrastructure/auth"
	"github.com/compras/backend/internal/interfaces/http/dto"
)

// Session context key
const (
	SessionKey    = "session"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Session resolves the authenticated identity from the session cookie or a
// Bearer token. A missing or invalid token yields a nil session and the
// request continues; page handlers render the denial view and API handlers
// answer 401. Only revocation store failures abort here, with a 500.
func Session(sessions *auth.SessionService, revocations auth.RevocationList, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			c.Next()
			return
		}

		sess, claims, err := sessions.Validate(token)
		if err != nil {
			logger.Debug("Session token rejected", zap.Error(err))
			c.Next()
			return
		}

		if revocations != nil {
			ctx := c.Request.Context()

			if claims.ID != "" {
				revoked, err := revocations.IsRevoked(ctx, claims.ID)
				if err != nil {
					logger.Error("Session revocation check failed", zap.Error(err))
					c.AbortWithStatusJSON(http.StatusInternalServerError,
						dto.NewErrorResponse(dto.ErrCodeInternal, "Session verification is unavailable"))
					return
				}
				if revoked {
					c.Next()
					return
				}
			}

			var issuedAt time.Time
			if claims.IssuedAt != nil {
				issuedAt = claims.IssuedAt.Time
			}
			revoked, err := revocations.IsUserRevoked(ctx, sess.UserID.String(), issuedAt)
			if err != nil {
				logger.Error("User revocation check failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponse(dto.ErrCodeInternal, "Session verification is unavailable"))
				return
			}
			if revoked {
				c.Next()
				return
			}
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// extractToken prefers the cookie; a Bearer token serves API clients.
func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader(AuthHeaderKey)
	if strings.HasPrefix(authHeader, BearerPrefix) {
		return strings.TrimPrefix(authHeader, BearerPrefix)
	}
	return ""
}

// GetSession returns the resolved session, or nil when the request is
// anonymous.
func GetSession(c *gin.Context) *shared.Session {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}
	sess, ok := v.(*shared.Session)
	if !ok {
		return nil
	}
	return sess
}

// RequireSession aborts anonymous requests with 401. For API routes only;
// page routes render their own denial view.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "A valid session is required"))
			return
		}
		c.Next()
	}
}
