package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUsers() []Credential {
	return []Credential{
		{Username: "admin", Password: "admin_password", Role: RoleAdmin},
		{Username: "agent", Password: "agent_password", Role: RoleAgent},
		{Username: "user", Password: "user_password", Role: RoleUser},
	}
}

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager("test-secret", ttl, testUsers())
	require.NoError(t, err)
	return m
}

func TestLoginAndVerify(t *testing.T) {
	m := newTestManager(t, time.Minute)

	token, expires, err := m.Login("agent", "agent_password")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Minute), expires, 5*time.Second)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "agent", claims.Subject)
	assert.Equal(t, RoleAgent, claims.Role)
	assert.WithinDuration(t, expires, claims.ExpiresAt, time.Second)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	m := newTestManager(t, time.Minute)

	_, _, err := m.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = m.Login("nobody", "admin_password")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newTestManager(t, time.Minute)
	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m, err := NewManager("test-secret", time.Minute, testUsers())
	require.NoError(t, err)
	// Hand-sign an already expired token with the right secret.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuer, err := NewManager("other-secret", time.Minute, testUsers())
	require.NoError(t, err)
	token, _, err := issuer.Login("admin", "admin_password")
	require.NoError(t, err)

	m := newTestManager(t, time.Minute)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	m := newTestManager(t, time.Minute)
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	m := newTestManager(t, time.Minute)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin",
		"role": "superuser",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManagerValidation(t *testing.T) {
	_, err := NewManager("", time.Minute, testUsers())
	assert.Error(t, err)

	_, err = NewManager("s", time.Minute, []Credential{{Username: "x", Password: "p", Role: "boss"}})
	assert.Error(t, err)

	_, err = NewManager("s", time.Minute, []Credential{
		{Username: "x", Password: "p", Role: RoleUser},
		{Username: "x", Password: "q", Role: RoleAdmin},
	})
	assert.Error(t, err)
}

func newAuthRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/", Middleware(m))
	protected.GET("/any", func(c *gin.Context) {
		sub, _ := SubjectFromContext(c)
		c.JSON(http.StatusOK, gin.H{"subject": sub})
	})
	admin := protected.Group("/", RequireRole(RoleAdmin))
	admin.POST("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	m := newTestManager(t, time.Minute)
	r := newAuthRouter(m)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/any", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestMiddlewareRejectsNonBearer(t *testing.T) {
	m := newTestManager(t, time.Minute)
	r := newAuthRouter(m)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/any", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	m := newTestManager(t, time.Minute)
	r := newAuthRouter(m)
	token, _, err := m.Login("user", "user_password")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/any", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subject":"user"`)
}

func TestRequireRoleForbidsLowerRole(t *testing.T) {
	m := newTestManager(t, time.Minute)
	r := newAuthRouter(m)
	token, _, err := m.Login("agent", "agent_password")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	m := newTestManager(t, time.Minute)
	r := newAuthRouter(m)
	token, _, err := m.Login("admin", "admin_password")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
