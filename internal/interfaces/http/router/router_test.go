package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appcatalog "github.com/gestock/backend/internal/application/catalog"
	appidentity "github.com/gestock/backend/internal/application/identity"
	appinventory "github.com/gestock/backend/internal/application/inventory"
	appordering "github.com/gestock/backend/internal/application/ordering"
	appreport "github.com/gestock/backend/internal/application/report"
	"github.com/gestock/backend/internal/domain/catalog"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/inventory"
	"github.com/gestock/backend/internal/domain/ordering"
	"github.com/gestock/backend/internal/infrastructure/auth"
	"github.com/gestock/backend/internal/infrastructure/cache"
	"github.com/gestock/backend/internal/infrastructure/config"
	"github.com/gestock/backend/internal/infrastructure/event"
	"github.com/gestock/backend/internal/infrastructure/persistence"
	"github.com/gestock/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer wires the full stack over an in-memory database, the way
// cmd/server does against Postgres
type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
	tokens *auth.JWTManager
	admin  *identity.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.PriceChange{},
		&inventory.Stock{},
		&inventory.StockMovement{},
		&ordering.Order{},
		&ordering.OrderLine{},
		&ordering.OrderHistoryEntry{},
	))

	log := zap.NewNop()
	tokens := auth.NewJWTManager(config.JWTConfig{
		Secret:     "test-secret-test-secret-test-secret",
		Expiration: time.Hour,
		Issuer:     "gestock-test",
	})

	userRepo := persistence.NewGormUserRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	priceChangeRepo := persistence.NewGormPriceChangeRepository(db)
	stockRepo := persistence.NewGormStockRepository(db)
	movementRepo := persistence.NewGormStockMovementRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	historyRepo := persistence.NewGormOrderHistoryRepository(db)
	reportRepo := persistence.NewGormReportRepository(db)

	bus := event.NewInMemoryEventBus(log)

	userService := appidentity.NewUserService(userRepo, log)
	authService := appidentity.NewAuthService(userRepo, tokens, log)
	productService := appcatalog.NewProductService(productRepo, categoryRepo, priceChangeRepo, log)
	stockService := appinventory.NewStockService(
		persistence.NewGormInventoryTransactionScope(db), stockRepo, movementRepo, bus, log)
	workflowService := appordering.NewWorkflowService(
		persistence.NewGormOrderWorkflowScope(db), orderRepo, historyRepo, productRepo, userRepo, bus, log)
	dashboardService := appreport.NewDashboardService(reportRepo, cache.NewInMemoryDashboardCache(), log)

	cfg := &config.Config{
		App: config.AppConfig{Name: "gestock-test", Env: "test"},
		HTTP: config.HTTPConfig{
			CORSAllowOrigins: []string{"*"},
			CORSAllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			CORSAllowHeaders: []string{"Content-Type", "Authorization"},
		},
	}

	engine := New(cfg, log, tokens, Handlers{
		System:   handler.NewSystemHandler(nil),
		Auth:     handler.NewAuthHandler(authService, userService),
		User:     handler.NewUserHandler(userService),
		Product:  handler.NewProductHandler(productService),
		Category: handler.NewCategoryHandler(productService),
		Stock:    handler.NewStockHandler(stockService),
		Order:    handler.NewOrderHandler(workflowService),
		Report:   handler.NewReportHandler(dashboardService),
	})

	admin, err := identity.NewUser("Admin", "admin@gestock.test", "password123", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, userRepo.Save(context.Background(), admin))

	return &testServer{engine: engine, db: db, tokens: tokens, admin: admin}
}

func (s *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
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
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := s.tokens.Issue(s.admin)
	require.NoError(t, err)
	return token
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "response body: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, "GET", "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRouter_LoginFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@gestock.test",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login appidentity.LoginResponse
	decodeData(t, w, &login)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "admin", login.User.Role)

	w = s.request(t, "GET", "/api/v1/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me appidentity.UserResponse
	decodeData(t, w, &me)
	assert.Equal(t, s.admin.ID, me.ID)
}

func TestRouter_RejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@gestock.test",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, "GET", "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_EnforcesRoles(t *testing.T) {
	s := newTestServer(t)

	courier, err := identity.NewUser("Courier", "courier@gestock.test", "password123", identity.RoleCourier)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormUserRepository(s.db).Save(context.Background(), courier))
	token, _, err := s.tokens.Issue(courier)
	require.NoError(t, err)

	// Couriers can read the catalog but not change it
	w := s.request(t, "GET", "/api/v1/products", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.request(t, "POST", "/api/v1/products", token, map[string]any{"name": "Sneaky", "price": "1.00"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.request(t, "GET", "/api/v1/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_OrderLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	// Catalog setup
	w := s.request(t, "POST", "/api/v1/categories", token, map[string]string{"name": "Textiles"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var category appcatalog.CategoryResponse
	decodeData(t, w, &category)

	w = s.request(t, "POST", "/api/v1/products", token, map[string]any{
		"name":        "Wax Print Fabric",
		"price":       "25.50",
		"category_id": category.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product appcatalog.ProductResponse
	decodeData(t, w, &product)

	// Receive 10 units
	w = s.request(t, "POST", "/api/v1/stocks/movements", token, map[string]any{
		"product_id": product.ID,
		"type":       "in",
		"quantity":   10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Draft an order for 2 units
	w = s.request(t, "POST", "/api/v1/orders", token, map[string]any{
		"customer_name": "Awa Diop",
		"lines": []map[string]any{
			{"product_id": product.ID, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order appordering.OrderResponse
	decodeData(t, w, &order)
	assert.Equal(t, "draft", order.Status.String())
	assert.Equal(t, "51", order.TotalAmount.String())

	// Confirm deducts stock
	w = s.request(t, "POST", fmt.Sprintf("/api/v1/orders/%s/confirm", order.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &order)
	assert.Equal(t, "confirmed", order.Status.String())

	w = s.request(t, "GET", fmt.Sprintf("/api/v1/stocks/product/%s", product.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stock appinventory.StockResponse
	decodeData(t, w, &stock)
	assert.Equal(t, int64(8), stock.Quantity)

	// Confirming again is an invalid transition
	w = s.request(t, "POST", fmt.Sprintf("/api/v1/orders/%s/confirm", order.ID), token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Pay and walk the fulfillment chain
	w = s.request(t, "POST", fmt.Sprintf("/api/v1/orders/%s/pay", order.ID), token, map[string]any{
		"payment_type": "cash",
		"amount_paid":  "51.00",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &order)
	assert.Equal(t, "paid", order.Status.String())

	for _, status := range []string{"in_preparation", "in_delivery", "delivered"} {
		w = s.request(t, "POST", fmt.Sprintf("/api/v1/orders/%s/status", order.ID), token, map[string]any{
			"status": status,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		decodeData(t, w, &order)
		assert.Equal(t, status, order.Status.String())
	}

	// The audit trail recorded the whole journey
	w = s.request(t, "GET", fmt.Sprintf("/api/v1/orders/%s/history", order.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []appordering.HistoryEntryResponse
	decodeData(t, w, &history)
	assert.GreaterOrEqual(t, len(history), 6)
}

func TestRouter_CancelRestocks(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	w := s.request(t, "POST", "/api/v1/products", token, map[string]any{
		"name":  "Shea Butter 250g",
		"price": "4.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product appcatalog.ProductResponse
	decodeData(t, w, &product)

	w = s.request(t, "POST", "/api/v1/stocks/movements", token, map[string]any{
		"product_id": product.ID,
		"type":       "in",
		"quantity":   5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(t, "POST", "/api/v1/orders", token, map[string]any{
		"customer_name": "Moussa Ba",
		"lines":         []map[string]any{{"product_id": product.ID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order appordering.OrderResponse
	decodeData(t, w, &order)

	w = s.request(t, "POST", fmt.Sprintf("/api/v1/orders/%s/confirm", order.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.request(t, "POST", fmt.Sprintf("/api/v1/orders/%s/cancel", order.ID), token, map[string]any{
		"reason": "customer changed their mind",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &order)
	assert.Equal(t, "cancelled", order.Status.String())

	w = s.request(t, "GET", fmt.Sprintf("/api/v1/stocks/product/%s", product.ID), token, nil)
	var stock appinventory.StockResponse
	decodeData(t, w, &stock)
	assert.Equal(t, int64(5), stock.Quantity)
}

func TestRouter_InsufficientStockOnConfirm(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	w := s.request(t, "POST", "/api/v1/products", token, map[string]any{
		"name":  "Bissap Syrup",
		"price": "3.50",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product appcatalog.ProductResponse
	decodeData(t, w, &product)

	// Only 1 in stock, order asks for 4
	w = s.request(t, "POST", "/api/v1/stocks/movements", token, map[string]any{
		"product_id": product.ID,
		"type":       "in",
		"quantity":   1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(t, "POST", "/api/v1/orders", token, map[string]any{
		"customer_name": "Fatou Sall",
		"lines":         []map[string]any{{"product_id": product.ID, "quantity": 4}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order appordering.OrderResponse
	decodeData(t, w, &order)

	w = s.request(t, "POST", fmt.Sprintf("/api/v1/orders/%s/confirm", order.ID), token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INSUFFICIENT_STOCK")

	// Stock untouched by the failed confirmation
	w = s.request(t, "GET", fmt.Sprintf("/api/v1/stocks/product/%s", product.ID), token, nil)
	var stock appinventory.StockResponse
	decodeData(t, w, &stock)
	assert.Equal(t, int64(1), stock.Quantity)
}

func TestRouter_DashboardEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	w := s.request(t, "GET", "/api/v1/reports/dashboard", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.request(t, "GET", "/api/v1/reports/dashboard?start=2026-02-01&end=2026-01-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_UnknownOrderIs404(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	w := s.request(t, "GET", "/api/v1/orders/0c7d38a4-9a93-4a4e-9a36-9e27fb0c2d6f", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(t, "GET", "/api/v1/orders/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
