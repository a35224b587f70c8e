package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	appidentity "github.com/chickenviken/backend/internal/application/identity"
	appordering "github.com/chickenviken/backend/internal/application/ordering"
	"github.com/chickenviken/backend/internal/domain/identity"
	"github.com/chickenviken/backend/internal/domain/ordering"
	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/chickenviken/backend/internal/infrastructure/auth"
	"github.com/chickenviken/backend/internal/infrastructure/availability"
	"github.com/chickenviken/backend/internal/infrastructure/config"
	"github.com/chickenviken/backend/internal/interfaces/http/handler"
	"github.com/chickenviken/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[uuid.UUID]ordering.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[uuid.UUID]ordering.Order)}
}

func (f *fakeOrderStore) Save(_ context.Context, o *ordering.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[o.ID] = *o
	return nil
}

func (f *fakeOrderStore) FindByID(_ context.Context, id uuid.UUID) (*ordering.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOrderStore) FindByUser(_ context.Context, userID uuid.UUID) ([]ordering.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ordering.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) FindAll(_ context.Context, _ shared.Filter) ([]ordering.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ordering.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderStore) Count(_ context.Context, _ shared.Filter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.orders)), nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

type fakeAdminStore struct {
	mu     sync.Mutex
	admins map[uuid.UUID]identity.Admin
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: make(map[uuid.UUID]identity.Admin)}
}

func (f *fakeAdminStore) Save(_ context.Context, a *identity.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.admins[a.ID] = *a
	return nil
}

func (f *fakeAdminStore) FindByID(_ context.Context, id uuid.UUID) (*identity.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.admins[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAdminStore) FindByEmail(_ context.Context, email string) (*identity.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.admins {
		if a.Email == strings.ToLower(email) {
			found := a
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeAdminStore) FindAll(_ context.Context, _ shared.Filter) ([]identity.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]identity.Admin, 0, len(f.admins))
	for _, a := range f.admins {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAdminStore) Count(_ context.Context, _ shared.Filter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.admins)), nil
}

func (f *fakeAdminStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.admins[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.admins, id)
	return nil
}

type testEnv struct {
	engine *gin.Engine
	tokens *auth.JWTService
	orders *fakeOrderStore
	admins *fakeAdminStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	tokens := auth.NewJWTService(config.JWTConfig{
		AdminSecret:     "admin-secret-for-tests-0123456789abcdef",
		UserSecret:      "user-secret-for-tests-0123456789abcdef",
		TokenExpiration: time.Hour,
		Issuer:          "chickenviken-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	orderStore := newFakeOrderStore()
	adminStore := newFakeAdminStore()

	orderService := appordering.NewOrderService(orderStore, orderStore, logger)
	adminService := appidentity.NewAdminService(adminStore, tokens, blacklist, logger)

	engine := gin.New()
	router.Setup(engine, router.Dependencies{
		JWTService:     tokens,
		TokenBlacklist: blacklist,
		Logger:         logger,
		System:         handler.NewSystemHandler("test", nil),
		Orders:         handler.NewOrderHandler(orderService),
		Admins:         handler.NewAdminHandler(adminService),
		Products:       handler.NewProductHandler(nil),
		Customers:      handler.NewCustomerHandler(nil),
		Settings:       handler.NewSettingsHandler(nil),
	})

	return &testEnv{engine: engine, tokens: tokens, orders: orderStore, admins: adminStore}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) userToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, _, err := e.tokens.GenerateToken(auth.GenerateTokenInput{
		Namespace: auth.NamespaceUser,
		UserID:    userID,
		Email:     "customer@example.com",
	})
	require.NoError(t, err)
	return token
}

func (e *testEnv) adminToken(t *testing.T, adminID uuid.UUID, role string, caps []string) string {
	t.Helper()
	token, _, err := e.tokens.GenerateToken(auth.GenerateTokenInput{
		Namespace:    auth.NamespaceAdmin,
		UserID:       adminID,
		Email:        "admin@example.com",
		Role:         role,
		Capabilities: caps,
	})
	require.NoError(t, err)
	return token
}

func seedAdmin(t *testing.T, store *fakeAdminStore, email string, super bool) *identity.Admin {
	t.Helper()
	hash, err := auth.HashPassword("sup3rsecret")
	require.NoError(t, err)
	admin, err := identity.NewAdmin("Seeded", email, hash)
	require.NoError(t, err)
	if super {
		admin.Promote()
	}
	require.NoError(t, store.Save(context.Background(), admin))
	return admin
}

func checkoutPayload() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"productId": uuid.New().String(), "name": "Fried Chicken Bucket", "price": 299.0, "quantity": 2},
		},
		"subtotal": 598.0,
		"shippingAddress": map[string]any{
			"name": "Ravi", "street": "12 MG Road", "city": "Bengaluru", "zipCode": 560001,
		},
		"paymentMethod": "card",
	}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope["success"])
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "ok", data["status"])
}

type downPinger struct{}

func (downPinger) Ping() error { return errors.New("connection refused") }

func TestHealth_DegradedDependency(t *testing.T) {
	h := handler.NewSystemHandler("test", map[string]availability.Pinger{"redis": downPinger{}})
	engine := gin.New()
	engine.GET("/health", h.Health)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "degraded", data["status"])
	deps := data["dependencies"].(map[string]any)
	assert.Equal(t, "unavailable", deps["redis"])
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	token := env.userToken(t, userID)

	t.Run("placing an order succeeds", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/orders", token, checkoutPayload())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		envelope := decodeEnvelope(t, w)
		assert.Equal(t, true, envelope["success"])
		data := envelope["data"].(map[string]any)
		assert.Equal(t, "pending", data["status"])
		assert.Equal(t, "paid", data["paymentStatus"])
		assert.Contains(t, data["orderCode"], "ORD")
	})

	t.Run("empty cart is a 400", func(t *testing.T) {
		payload := checkoutPayload()
		payload["items"] = []map[string]any{}
		w := env.do(t, http.MethodPost, "/api/orders", token, payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("anonymous checkout is a 401", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/orders", "", checkoutPayload())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin token cannot reach the storefront", func(t *testing.T) {
		adminTok := env.adminToken(t, uuid.New(), "superadmin", nil)
		w := env.do(t, http.MethodPost, "/api/orders", adminTok, checkoutPayload())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOwnOrderIsolation(t *testing.T) {
	env := newTestEnv(t)
	owner := uuid.New()
	stranger := uuid.New()

	w := env.do(t, http.MethodPost, "/api/orders", env.userToken(t, owner), checkoutPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeEnvelope(t, w)["data"].(map[string]any)["id"].(string)

	w = env.do(t, http.MethodGet, "/api/orders/"+orderID, env.userToken(t, owner), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// another customer must not learn the order exists
	w = env.do(t, http.MethodGet, "/api/orders/"+orderID, env.userToken(t, stranger), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminOrderLifecycle(t *testing.T) {
	env := newTestEnv(t)
	userTok := env.userToken(t, uuid.New())

	w := env.do(t, http.MethodPost, "/api/orders", userTok, checkoutPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeEnvelope(t, w)["data"].(map[string]any)["id"].(string)

	opsTok := env.adminToken(t, uuid.New(), "admin", []string{"orders"})

	t.Run("capability holder updates status", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, "/api/admin/orders/"+orderID+"/status", opsTok,
			map[string]any{"status": "delivered"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := decodeEnvelope(t, w)["data"].(map[string]any)
		assert.Equal(t, "delivered", data["status"])
	})

	t.Run("transition out of a terminal state is a 422", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, "/api/admin/orders/"+orderID+"/status", opsTok,
			map[string]any{"status": "processing"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("capability-less admin is a 403", func(t *testing.T) {
		bareTok := env.adminToken(t, uuid.New(), "admin", nil)
		w := env.do(t, http.MethodGet, "/api/admin/orders", bareTok, nil)
		require.Equal(t, http.StatusForbidden, w.Code)
		envelope := decodeEnvelope(t, w)
		errInfo := envelope["error"].(map[string]any)
		assert.Equal(t, "Access denied", errInfo["message"])
	})

	t.Run("storefront token is a 401 on admin routes", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/admin/orders", userTok, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPromotionFunctions(t *testing.T) {
	env := newTestEnv(t)
	root := seedAdmin(t, env.admins, "root@example.com", true)
	target := seedAdmin(t, env.admins, "vik@example.com", false)
	rootTok := env.adminToken(t, root.ID, "superadmin", nil)

	t.Run("promote grants role and permissions", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/admin/functions/promote", rootTok,
			map[string]any{"targetUserId": target.ID.String(), "adminRole": "superadmin", "permissions": []string{"orders"}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := decodeEnvelope(t, w)["data"].(map[string]any)
		assert.Equal(t, true, data["success"])

		promoted, err := env.admins.FindByID(context.Background(), target.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleSuperAdmin, promoted.Role)
	})

	t.Run("missing target is a 400", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/admin/functions/promote", rootTok,
			map[string]any{"adminRole": "admin"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown target is a 404", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/admin/functions/promote", rootTok,
			map[string]any{"targetUserId": uuid.NewString()})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("plain admin is blocked at the gate", func(t *testing.T) {
		plainTok := env.adminToken(t, target.ID, "admin", []string{"orders"})
		w := env.do(t, http.MethodPost, "/api/admin/functions/promote", plainTok,
			map[string]any{"targetUserId": root.ID.String()})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("self-revocation is an invalid argument", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/admin/functions/revoke", rootTok,
			map[string]any{"targetUserId": root.ID.String()})
		require.Equal(t, http.StatusBadRequest, w.Code)
		errInfo := decodeEnvelope(t, w)["error"].(map[string]any)
		assert.Equal(t, "SELF_REVOCATION", errInfo["code"])
	})

	t.Run("revocation demotes", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/admin/functions/revoke", rootTok,
			map[string]any{"targetUserId": target.ID.String()})
		require.Equal(t, http.StatusOK, w.Code)

		demoted, err := env.admins.FindByID(context.Background(), target.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleAdmin, demoted.Role)
		assert.Empty(t, demoted.Capabilities)
	})
}

func TestAdminAccountsSuperAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	root := seedAdmin(t, env.admins, "root@example.com", true)
	rootTok := env.adminToken(t, root.ID, "superadmin", nil)

	t.Run("super admin lists accounts", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/admin/admins", rootTok, nil)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("users capability is not enough", func(t *testing.T) {
		staff := seedAdmin(t, env.admins, "staff@example.com", false)
		staffTok := env.adminToken(t, staff.ID, "admin", []string{"users"})
		w := env.do(t, http.MethodGet, "/api/admin/admins", staffTok, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
