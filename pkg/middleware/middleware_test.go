package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbridge/internal/models/db_models"
	mem "foodbridge/pkg/memcache"
	"foodbridge/pkg/utils"
)

func newTestRouter(issuer *utils.TokenIssuer, store mem.TokenStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())

	auth := r.Group("/", JWTAuthMiddleware(issuer, store))
	auth.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetAccountID(c), "role": GetRole(c), "jti": GetTokenID(c)})
	})
	auth.GET("/menu", RequireCapability(db_models.CapOwnMenu), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	store := mem.NewTokens()
	r := newTestRouter(issuer, store)

	token, claims, err := issuer.CreateToken(3, string(db_models.RoleRestaurant))
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		w := doGet(r, "/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		w := doGet(r, "/whoami", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"restaurant"`)
		assert.Contains(t, w.Body.String(), claims.ID)
	})

	t.Run("capability granted", func(t *testing.T) {
		w := doGet(r, "/menu", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("capability denied", func(t *testing.T) {
		ngoToken, _, err := issuer.CreateToken(7, string(db_models.RoleNGO))
		require.NoError(t, err)
		w := doGet(r, "/menu", ngoToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		store.Set(mem.RevokedSessionKey(claims.ID), "1", time.Hour)
		w := doGet(r, "/whoami", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTraceIDMiddleware(t *testing.T) {
	r := newTestRouter(utils.NewTokenIssuer("secret", time.Hour), mem.NewTokens())

	w := doGet(r, "/whoami", "")
	_, err := uuid.Parse(w.Header().Get("X-Trace-ID"))
	assert.NoError(t, err)

	supplied := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Trace-ID", supplied)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, supplied, w.Header().Get("X-Trace-ID"))
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestJWTAuthMiddleware_AccountRevocation(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	store := mem.NewTokens()
	r := newTestRouter(issuer, store)

	token, claims, err := issuer.CreateToken(3, string(db_models.RoleRestaurant))
	require.NoError(t, err)
	other, _, err := issuer.CreateToken(4, string(db_models.RoleRestaurant))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doGet(r, "/whoami", token).Code)

	mem.RevokeAccountSessions(store, 3, claims.IssuedAt.Time, time.Hour)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/whoami", token).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "/whoami", other).Code)
}
