package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sheeto/backend/internal/infrastructure/config"
)

// SessionIDKey is the context key holding the cart session ID
const SessionIDKey = "cart_session_id"

// CartSession ensures every request carries a cart session cookie. A new
// session ID is minted and set on the response when the cookie is missing
// or not a UUID, so a tampered cookie can never address another session.
func CartSession(cfg config.SessionConfig) gin.HandlerFunc {
	sameSite := parseSameSite(cfg.SameSite)
	return func(c *gin.Context) {
		sessionID := ""
		if raw, err := c.Cookie(cfg.CookieName); err == nil {
			if parsed, err := uuid.Parse(raw); err == nil {
				sessionID = parsed.String()
			}
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
			c.SetSameSite(sameSite)
			c.SetCookie(
				cfg.CookieName,
				sessionID,
				int(cfg.MaxAge.Seconds()),
				cfg.Path,
				cfg.Domain,
				cfg.Secure,
				true, // HttpOnly, the cart is only touched through the API
			)
		}
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetCartSession returns the cart session ID for the request
func GetCartSession(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
