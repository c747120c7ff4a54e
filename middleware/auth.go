package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/silluthedon/Zerotreat/backend"
)

// SessionKey is where RequireSession stores the verified session in the
// request context.
const SessionKey = "session"

// BearerToken extracts the access token from the Authorization header.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// RequireSession guards the admin routes. The backend issues HMAC-signed JWT
// access tokens, so signature and expiry are checked locally with the shared
// secret first; only a structurally valid token costs a round trip to the
// session service. Requests without a live session get a 401 with the login
// route to redirect to.
func RequireSession(sessions backend.SessionAuth, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			reject(c)
			return
		}

		if jwtSecret != "" {
			parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("invalid token signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !parsed.Valid {
				reject(c)
				return
			}
		}

		session, err := sessions.GetSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, backend.ErrNoSession) {
				reject(c)
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "সেশন যাচাই করতে ত্রুটি হয়েছে।"})
			c.Abort()
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

func reject(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":    "অনুগ্রহ করে আগে লগইন করুন।",
		"redirect": "/login",
	})
	c.Abort()
}
