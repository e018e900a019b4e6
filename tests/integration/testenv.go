package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appalerting "github.com/storefront/backend/internal/application/alerting"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
	appcustomer "github.com/storefront/backend/internal/application/customer"
	appidentity "github.com/storefront/backend/internal/application/identity"
	appshopping "github.com/storefront/backend/internal/application/shopping"
	"github.com/storefront/backend/internal/domain/alerting"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shopping"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv assembles the full HTTP surface against an in-memory database
// and in-memory caches, mirroring the production wiring in cmd/server.
type testEnv struct {
	engine   *gin.Engine
	db       *gorm.DB
	eventBus *event.InMemoryEventBus

	users      *appidentity.UserService
	roles      *appidentity.RoleService
	apiKeys    *appidentity.APIKeyService
	brands     *appcatalog.BrandService
	categories *appcatalog.CategoryService
	products   *appcatalog.ProductService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&identity.UserRole{},
		&identity.Role{},
		&identity.RolePermission{},
		&identity.APIKey{},
		&catalog.Brand{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.Attribute{},
		&catalog.MasterDataEntry{},
		&customer.Customer{},
		&customer.Address{},
		&shopping.Order{},
		&shopping.OrderItem{},
		&alerting.AlertRule{},
		&alerting.NotificationTemplate{},
	))

	log := zap.NewNop()

	jwtCfg := config.JWTConfig{
		Secret:                 "integration-test-secret-0123456789abcdef",
		RefreshSecret:          "integration-test-refresh-0123456789abcdef",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "storefront-backend",
		MaxRefreshCount:        10,
	}
	httpCfg := config.HTTPConfig{
		MaxBodySize: 1 << 20,
	}

	brandRepo := persistence.NewGormBrandRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	attributeRepo := persistence.NewGormAttributeRepository(db)
	masterDataRepo := persistence.NewGormMasterDataRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	addressRepo := persistence.NewGormAddressRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	roleRepo := persistence.NewGormRoleRepository(db)
	apiKeyRepo := persistence.NewGormAPIKeyRepository(db)
	alertRuleRepo := persistence.NewGormAlertRuleRepository(db)
	templateRepo := persistence.NewGormTemplateRepository(db)

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(appalerting.NewAlertEventHandler(alertRuleRepo, templateRepo, log))
	require.NoError(t, eventBus.Start(context.Background()))
	t.Cleanup(func() { _ = eventBus.Stop(context.Background()) })

	cartStore := cache.NewInMemoryCartStore(72 * time.Hour)
	blacklist := auth.NewInMemoryTokenBlacklist()
	jwtService := auth.NewJWTService(jwtCfg)

	authService := appidentity.NewAuthService(
		userRepo, roleRepo, customerRepo, jwtService, blacklist,
		config.AuthConfig{MaxLoginAttempts: 5, LockoutDuration: 15 * time.Minute},
		eventBus, log,
	)
	authService.SetSessionStore(auth.NewInMemorySessionStore())

	userService := appidentity.NewUserService(userRepo, roleRepo, log)
	roleService := appidentity.NewRoleService(roleRepo, userRepo)
	apiKeyService := appidentity.NewAPIKeyService(apiKeyRepo, log)

	brandService := appcatalog.NewBrandService(brandRepo, productRepo)
	categoryService := appcatalog.NewCategoryService(categoryRepo, productRepo)
	productService := appcatalog.NewProductService(productRepo, brandRepo, categoryRepo)
	attributeService := appcatalog.NewAttributeService(attributeRepo)
	masterDataService := appcatalog.NewMasterDataService(masterDataRepo)

	customerService := appcustomer.NewCustomerService(customerRepo, addressRepo, eventBus, log)

	cartService := appshopping.NewCartService(cartStore, productRepo)
	orderService, err := appshopping.NewOrderService(
		orderRepo, cartStore, productRepo, customerRepo, eventBus,
		config.CheckoutConfig{ShippingFlatRate: "5.00", FreeShippingOver: "100.00"},
		log,
	)
	require.NoError(t, err)

	alertRuleService := appalerting.NewAlertRuleService(alertRuleRepo, templateRepo)
	templateService := appalerting.NewTemplateService(templateRepo)

	handlers := router.Handlers{
		System:     handler.NewSystemHandler(db, nil),
		Auth:       handler.NewAuthHandler(authService, jwtCfg),
		Shop:       handler.NewShopHandler(productService, categoryService, brandService),
		Cart:       handler.NewCartHandler(cartService, customerService),
		Order:      handler.NewOrderHandler(orderService, customerService),
		Brand:      handler.NewBrandHandler(brandService),
		Category:   handler.NewCategoryHandler(categoryService),
		Product:    handler.NewProductHandler(productService),
		Attribute:  handler.NewAttributeHandler(attributeService),
		MasterData: handler.NewMasterDataHandler(masterDataService),
		Customer:   handler.NewCustomerHandler(customerService),
		User:       handler.NewUserHandler(userService),
		Role:       handler.NewRoleHandler(roleService),
		APIKey:     handler.NewAPIKeyHandler(apiKeyService),
		Alerting:   handler.NewAlertingHandler(alertRuleService, templateService),
	}

	engine := router.New(router.Config{
		Env:    "test",
		HTTP:   httpCfg,
		Logger: log,
		JWT: middleware.JWTConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		},
		APIKeys: apiKeyService,
	}, handlers)

	return &testEnv{
		engine:     engine,
		db:         db,
		eventBus:   eventBus,
		users:      userService,
		roles:      roleService,
		apiKeys:    apiKeyService,
		brands:     brandService,
		categories: categoryService,
		products:   productService,
	}
}

// apiResponse is the wire envelope every endpoint responds with.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp),
			"response is not the standard envelope: %s", rec.Body.String())
	}
	return rec, resp
}

func decodeData(t *testing.T, resp apiResponse, target interface{}) {
	t.Helper()
	require.NotNil(t, resp.Data, "expected a data payload")
	require.NoError(t, json.Unmarshal(resp.Data, target))
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// registerShopper signs up a shopper account over HTTP and returns the
// auth payload with tokens.
func (e *testEnv) registerShopper(t *testing.T, email string) appidentity.AuthResponse {
	t.Helper()

	rec, resp := e.request(t, http.MethodPost, "/api/v1/auth/register", appidentity.RegisterRequest{
		Email:     email,
		Password:  "shopper-pass-1",
		FirstName: "Test",
		LastName:  "Shopper",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var authResp appidentity.AuthResponse
	decodeData(t, resp, &authResp)
	require.NotNil(t, authResp.Tokens)
	return authResp
}

// createStaff provisions a staff user holding a role with the given
// permissions and returns an access token obtained through login.
func (e *testEnv) createStaff(t *testing.T, email string, permissions ...string) string {
	t.Helper()
	ctx := context.Background()

	role, err := e.roles.Create(ctx, appidentity.CreateRoleRequest{
		Code:        "staff_" + uuid.NewString()[:8],
		Name:        "Integration Staff",
		Permissions: permissions,
	})
	require.NoError(t, err)

	_, err = e.users.Create(ctx, appidentity.CreateUserRequest{
		Email:     email,
		Password:  "staff-pass-123",
		FirstName: "Store",
		LastName:  "Staff",
		IsStaff:   true,
		RoleIDs:   []uuid.UUID{role.ID},
	})
	require.NoError(t, err)

	rec, resp := e.request(t, http.MethodPost, "/api/v1/auth/login", appidentity.LoginRequest{
		Email:    email,
		Password: "staff-pass-123",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var authResp appidentity.AuthResponse
	decodeData(t, resp, &authResp)
	return authResp.Tokens.AccessToken
}
