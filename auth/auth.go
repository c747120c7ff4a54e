package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/silluthedon/Zerotreat/backend"
	"github.com/silluthedon/Zerotreat/middleware"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges email+password for a session with the backend's auth
// service. Wrong credentials leave no session behind.
func Login(sessions backend.SessionAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ইমেইল এবং পাসওয়ার্ড লিখুন।"})
			return
		}

		session, err := sessions.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			var be *backend.Error
			if errors.As(err, &be) && be.Status < 500 {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "লগইন ব্যর্থ হয়েছে। ইমেইল বা পাসওয়ার্ড চেক করুন।"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "লগইন করতে ত্রুটি হয়েছে। আবার চেষ্টা করুন।"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": session.AccessToken,
			"email":        session.Email,
			"expires_at":   session.ExpiresAt,
		})
	}
}

// Logout invalidates the presented session.
func Logout(sessions backend.SessionAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middleware.BearerToken(c)
		if err := sessions.SignOut(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "লগআউট করতে ত্রুটি হয়েছে। আবার চেষ্টা করুন।"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "লগআউট সফল হয়েছে।"})
	}
}

// SessionCheck reports whether the presented token is a live session, so the
// admin pages can gate themselves before rendering.
func SessionCheck(sessions backend.SessionAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middleware.BearerToken(c)
		session, err := sessions.GetSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, backend.ErrNoSession) {
				c.JSON(http.StatusOK, gin.H{"authenticated": false})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "সেশন যাচাই করতে ত্রুটি হয়েছে।"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"authenticated": true, "email": session.Email})
	}
}
