package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chickenviken/backend/internal/domain/identity"
	"github.com/chickenviken/backend/internal/infrastructure/auth"
	"github.com/chickenviken/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		AdminSecret:     "admin-secret-for-tests-0123456789abcdef",
		UserSecret:      "user-secret-for-tests-0123456789abcdef",
		TokenExpiration: time.Hour,
		Issuer:          "chickenviken-test",
	})
}

func newAuthRouter(cfg AuthConfig, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireAuth(cfg)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetJWTUserID(c)})
	})
	r.GET("/guarded", handlers...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	tokens := testJWTService()
	router := newAuthRouter(AuthConfig{JWTService: tokens, Namespace: auth.NamespaceAdmin})

	adminToken, _, err := tokens.GenerateToken(auth.GenerateTokenInput{
		Namespace: auth.NamespaceAdmin,
		UserID:    uuid.New(),
		Email:     "root@example.com",
		Role:      "superadmin",
	})
	require.NoError(t, err)

	userToken, _, err := tokens.GenerateToken(auth.GenerateTokenInput{
		Namespace: auth.NamespaceUser,
		UserID:    uuid.New(),
		Email:     "ravi@example.com",
	})
	require.NoError(t, err)

	t.Run("valid token passes", func(t *testing.T) {
		w := doRequest(router, adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := doRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		w := doRequest(router, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token from the other namespace is rejected", func(t *testing.T) {
		w := doRequest(router, userToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAuth_Blacklist(t *testing.T) {
	tokens := testJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	router := newAuthRouter(AuthConfig{
		JWTService:     tokens,
		Namespace:      auth.NamespaceUser,
		TokenBlacklist: blacklist,
	})

	userID := uuid.New()
	token, _, err := tokens.GenerateToken(auth.GenerateTokenInput{
		Namespace: auth.NamespaceUser,
		UserID:    userID,
		Email:     "ravi@example.com",
	})
	require.NoError(t, err)

	w := doRequest(router, token)
	require.Equal(t, http.StatusOK, w.Code)

	claims, err := tokens.ValidateToken(token, auth.NamespaceUser)
	require.NoError(t, err)

	t.Run("blacklisted jti is rejected", func(t *testing.T) {
		require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))
		w := doRequest(router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("user-wide invalidation rejects earlier tokens", func(t *testing.T) {
		fresh, _, err := tokens.GenerateToken(auth.GenerateTokenInput{
			Namespace: auth.NamespaceUser,
			UserID:    userID,
			Email:     "ravi@example.com",
		})
		require.NoError(t, err)

		time.Sleep(1100 * time.Millisecond)
		require.NoError(t, blacklist.InvalidateUserTokens(context.Background(), userID.String(), time.Hour))

		w := doRequest(router, fresh)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func capabilityRouter(tokens *auth.JWTService, capability identity.Capability) *gin.Engine {
	r := gin.New()
	r.GET("/guarded",
		RequireAuth(AuthConfig{JWTService: tokens, Namespace: auth.NamespaceAdmin}),
		RequireCapability(capability),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestRequireCapability(t *testing.T) {
	tokens := testJWTService()
	router := capabilityRouter(tokens, identity.CapabilityOrders)

	issue := func(role string, caps []string) string {
		token, _, err := tokens.GenerateToken(auth.GenerateTokenInput{
			Namespace:    auth.NamespaceAdmin,
			UserID:       uuid.New(),
			Email:        "admin@example.com",
			Role:         role,
			Capabilities: caps,
		})
		require.NoError(t, err)
		return token
	}

	t.Run("holder of the capability passes", func(t *testing.T) {
		w := doRequest(router, issue("admin", []string{"orders"}))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("super admin bypasses the check", func(t *testing.T) {
		w := doRequest(router, issue("superadmin", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("manageAdmins counts as super admin", func(t *testing.T) {
		w := doRequest(router, issue("admin", []string{"manageAdmins"}))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("capability-less admin is denied", func(t *testing.T) {
		w := doRequest(router, issue("admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unrelated capability is denied", func(t *testing.T) {
		w := doRequest(router, issue("admin", []string{"products"}))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRequireSuperAdmin(t *testing.T) {
	tokens := testJWTService()
	r := gin.New()
	r.GET("/guarded",
		RequireAuth(AuthConfig{JWTService: tokens, Namespace: auth.NamespaceAdmin}),
		RequireSuperAdmin(PermissionConfig{}),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	superToken, _, err := tokens.GenerateToken(auth.GenerateTokenInput{
		Namespace: auth.NamespaceAdmin,
		UserID:    uuid.New(),
		Email:     "root@example.com",
		Role:      "superadmin",
	})
	require.NoError(t, err)

	plainToken, _, err := tokens.GenerateToken(auth.GenerateTokenInput{
		Namespace:    auth.NamespaceAdmin,
		UserID:       uuid.New(),
		Email:        "vik@example.com",
		Role:         "admin",
		Capabilities: []string{"orders", "products"},
	})
	require.NoError(t, err)

	w := doRequest(r, superToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, plainToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
