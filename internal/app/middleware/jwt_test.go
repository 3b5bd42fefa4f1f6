package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:   "test-secret",
		Issuer:   "macrolog",
		TokenTTL: time.Hour,
	}
}

func protectedRouter(config JWTConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTMiddleware(config))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetUID(c))
	})
	return router
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testJWTConfig(), "alice", "alice@example.com")
	require.NoError(t, err)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "macrolog", claims.Issuer)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(testJWTConfig(), "alice", "")
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.EqualError(t, err, "invalid token")
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	config := testJWTConfig()
	config.TokenTTL = -time.Minute
	token, err := GenerateToken(config, "alice", "")
	require.NoError(t, err)

	_, err = ValidateToken(token, config.Secret)
	assert.EqualError(t, err, "token has expired")
}

func TestJWTMiddlewareSetsUID(t *testing.T) {
	config := testJWTConfig()
	token, err := GenerateToken(config, "alice", "alice@example.com")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(config).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	protectedRouter(testJWTConfig()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareRejectsForeignIssuer(t *testing.T) {
	foreign := testJWTConfig()
	foreign.Issuer = "someone-else"
	token, err := GenerateToken(foreign, "alice", "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(testJWTConfig()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
