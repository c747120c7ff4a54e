package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/silluthedon/Zerotreat/backend"
	"github.com/silluthedon/Zerotreat/backend/backendtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func gateRouter(fake *backendtest.Fake, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/orders", RequireSession(fake, secret), func(c *gin.Context) {
		session := c.MustGet(SessionKey).(backend.Session)
		c.JSON(http.StatusOK, gin.H{"email": session.Email})
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSessionRejectsMissingToken(t *testing.T) {
	fake := backendtest.New()
	w := get(gateRouter(fake, testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/login"`)
}

func TestRequireSessionRejectsExpiredToken(t *testing.T) {
	fake := backendtest.New()
	token := signToken(t, testSecret, time.Now().Add(-time.Hour))
	fake.Sessions[token] = backend.Session{AccessToken: token, Email: "admin@zerotreat.com"}

	// The local expiry check fires before any backend round trip.
	w := get(gateRouter(fake, testSecret), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSessionRejectsWrongSignature(t *testing.T) {
	fake := backendtest.New()
	token := signToken(t, "some-other-secret", time.Now().Add(time.Hour))
	w := get(gateRouter(fake, testSecret), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSessionRejectsUnknownSession(t *testing.T) {
	fake := backendtest.New()
	token := signToken(t, testSecret, time.Now().Add(time.Hour))
	// Structurally valid token, but the backend has no session for it.
	w := get(gateRouter(fake, testSecret), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSessionPassesLiveSession(t *testing.T) {
	fake := backendtest.New()
	token := signToken(t, testSecret, time.Now().Add(time.Hour))
	fake.Sessions[token] = backend.Session{AccessToken: token, Email: "admin@zerotreat.com"}

	w := get(gateRouter(fake, testSecret), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@zerotreat.com")
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Empty(t, BearerToken(c))
	c.Request.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", BearerToken(c))
}
