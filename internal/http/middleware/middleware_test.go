package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Tripcarte/easytix-booking/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func echoEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/echo", func(c *gin.Context) {
		actor, _ := domain.ActorFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"request_id": domain.RequestIDFrom(c.Request.Context()),
			"sub":        actor.Subject,
		})
	})
	return r
}

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func get(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := echoEngine(RequestID())

	w := get(r, nil)
	require.Equal(t, http.StatusOK, w.Code)
	generated := w.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Contains(t, w.Body.String(), generated)

	w = get(r, map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), `"request_id":"abc-123"`)
}

func TestActor(t *testing.T) {
	r := echoEngine(Actor(testSecret))
	claims := jwt.RegisteredClaims{Subject: "agent-7", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	t.Run("anonymous", func(t *testing.T) {
		w := get(r, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"sub":""`)
	})

	t.Run("valid token", func(t *testing.T) {
		tok := signed(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
		w := get(r, map[string]string{"Authorization": "Bearer " + tok})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"sub":"agent-7"`)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := signed(t, jwt.SigningMethodHS256, []byte("other"), claims)
		w := get(r, map[string]string{"Authorization": "Bearer " + tok})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"error"`)
	})

	t.Run("expired", func(t *testing.T) {
		old := jwt.RegisteredClaims{Subject: "agent-7", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}
		tok := signed(t, jwt.SigningMethodHS256, []byte(testSecret), old)
		w := get(r, map[string]string{"Authorization": "Bearer " + tok})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no subject", func(t *testing.T) {
		tok := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{})
		w := get(r, map[string]string{"Authorization": "Bearer " + tok})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("other algorithm", func(t *testing.T) {
		tok := signed(t, jwt.SigningMethodHS512, []byte(testSecret), claims)
		w := get(r, map[string]string{"Authorization": "Bearer " + tok})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestActor_NoSecretIsNoop(t *testing.T) {
	r := echoEngine(Actor(""))
	w := get(r, map[string]string{"Authorization": "Bearer not-a-jwt"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS(t *testing.T) {
	r := echoEngine(CORS([]string{"http://localhost:5173"}))

	w := get(r, map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(r, map[string]string{"Origin": "http://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogger_PassesThrough(t *testing.T) {
	r := echoEngine(RequestID(), Logger(zap.NewNop()))
	w := get(r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
