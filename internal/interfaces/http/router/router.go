package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/validation"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System     *handler.SystemHandler
	Auth       *handler.AuthHandler
	Shop       *handler.ShopHandler
	Cart       *handler.CartHandler
	Order      *handler.OrderHandler
	Brand      *handler.BrandHandler
	Category   *handler.CategoryHandler
	Product    *handler.ProductHandler
	Attribute  *handler.AttributeHandler
	MasterData *handler.MasterDataHandler
	Customer   *handler.CustomerHandler
	User       *handler.UserHandler
	Role       *handler.RoleHandler
	APIKey     *handler.APIKeyHandler
	Alerting   *handler.AlertingHandler
}

// Config carries the cross-cutting dependencies of the route tree
type Config struct {
	Env         string
	HTTP        config.HTTPConfig
	Logger      *zap.Logger
	JWT         middleware.JWTConfig
	APIKeys     middleware.APIKeyAuthenticator
	RateLimiter *middleware.RateLimiter
}

// New builds the gin engine with the full route tree
func New(cfg Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerSlugValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.Secure(),
		middleware.BodySizeLimit(cfg.HTTP.MaxBodySize),
	)

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")

	registerAuthRoutes(api, cfg, h)
	registerShopRoutes(api, h)
	registerShopperRoutes(api, cfg, h)
	registerAdminRoutes(api, cfg, h)

	return engine
}

// registerSlugValidator wires the shared slug rule into gin's binding
// layer so DTOs can declare `binding:"slug"`.
func registerSlugValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return validation.ValidateField(fl.Field().String(), validation.Slug, "slug") == ""
	})
}

func registerAuthRoutes(api *gin.RouterGroup, cfg Config, h Handlers) {
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	authed := auth.Group("", middleware.JWTAuth(cfg.JWT))
	authed.GET("/me", h.Auth.Me)
	authed.POST("/password", h.Auth.ChangePassword)
	authed.POST("/logout-all", h.Auth.LogoutAll)
}

func registerShopRoutes(api *gin.RouterGroup, h Handlers) {
	shop := api.Group("/shop")
	shop.GET("/products", h.Shop.ListProducts)
	shop.GET("/products/:slug", h.Shop.GetProduct)
	shop.GET("/categories", h.Shop.ListCategories)
	shop.GET("/brands", h.Shop.ListBrands)
}

func registerShopperRoutes(api *gin.RouterGroup, cfg Config, h Handlers) {
	shopper := api.Group("", middleware.JWTAuth(cfg.JWT))

	cart := shopper.Group("/cart")
	cart.GET("", h.Cart.Get)
	cart.DELETE("", h.Cart.Clear)
	cart.POST("/items", h.Cart.AddItem)
	cart.PUT("/items/:productId", h.Cart.UpdateItem)
	cart.DELETE("/items/:productId", h.Cart.RemoveItem)

	shopper.POST("/checkout", h.Order.Checkout)
	shopper.GET("/orders", h.Order.ListMine)
	shopper.GET("/orders/:id", h.Order.GetMine)
}

func registerAdminRoutes(api *gin.RouterGroup, cfg Config, h Handlers) {
	// Staff enforcement happens inside RequirePermission so API key
	// callers, which carry scopes instead of claims, are not rejected.
	admin := api.Group("/admin", middleware.AdminAuth(cfg.APIKeys, cfg.JWT))

	brands := admin.Group("/brands", middleware.RequirePermission(identity.PermCatalogManage))
	brands.POST("", h.Brand.Create)
	brands.GET("", h.Brand.List)
	brands.GET("/:id", h.Brand.Get)
	brands.PUT("/:id", h.Brand.Update)
	brands.DELETE("/:id", h.Brand.Delete)
	brands.POST("/:id/activate", h.Brand.Activate)
	brands.POST("/:id/deactivate", h.Brand.Deactivate)

	categories := admin.Group("/categories", middleware.RequirePermission(identity.PermCatalogManage))
	categories.POST("", h.Category.Create)
	categories.GET("", h.Category.List)
	categories.GET("/tree", h.Category.Tree)
	categories.GET("/:id", h.Category.Get)
	categories.PUT("/:id", h.Category.Update)
	categories.POST("/:id/move", h.Category.Move)
	categories.DELETE("/:id", h.Category.Delete)

	products := admin.Group("/products")
	products.POST("", middleware.RequirePermission(identity.PermProductCreate), h.Product.Create)
	products.GET("", middleware.RequirePermission(identity.PermProductRead), h.Product.List)
	products.GET("/:id", middleware.RequirePermission(identity.PermProductRead), h.Product.Get)
	products.PUT("/:id", middleware.RequirePermission(identity.PermProductUpdate), h.Product.Update)
	products.POST("/:id/status", middleware.RequirePermission(identity.PermProductUpdate), h.Product.SetStatus)
	products.DELETE("/:id", middleware.RequirePermission(identity.PermProductDelete), h.Product.Delete)

	attributes := admin.Group("/attributes", middleware.RequirePermission(identity.PermCatalogManage))
	attributes.POST("", h.Attribute.Create)
	attributes.GET("", h.Attribute.List)
	attributes.GET("/:id", h.Attribute.Get)
	attributes.PUT("/:id", h.Attribute.Update)
	attributes.DELETE("/:id", h.Attribute.Delete)

	masterData := admin.Group("/master-data", middleware.RequirePermission(identity.PermCatalogManage))
	masterData.GET("", h.MasterData.Kinds)
	masterData.GET("/:kind", h.MasterData.List)
	masterData.POST("/:kind", h.MasterData.Create)
	masterData.PUT("/:kind/:id", h.MasterData.Update)
	masterData.DELETE("/:kind/:id", h.MasterData.Delete)

	customers := admin.Group("/customers", middleware.RequirePermission(identity.PermCustomerRead, identity.PermCustomerManage))
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.Get)
	customers.GET("/:id/addresses", h.Customer.ListAddresses)

	customersManage := admin.Group("/customers", middleware.RequirePermission(identity.PermCustomerManage))
	customersManage.POST("", h.Customer.Create)
	customersManage.PUT("/:id", h.Customer.Update)
	customersManage.DELETE("/:id", h.Customer.Delete)
	customersManage.POST("/:id/level", h.Customer.SetLevel)
	customersManage.POST("/:id/store-credit", h.Customer.AddStoreCredit)
	customersManage.POST("/:id/status", h.Customer.SetStatus)
	customersManage.POST("/:id/addresses", h.Customer.AddAddress)
	customersManage.PUT("/:id/addresses/:addressId", h.Customer.UpdateAddress)
	customersManage.POST("/:id/addresses/:addressId/default", h.Customer.SetDefaultAddress)
	customersManage.DELETE("/:id/addresses/:addressId", h.Customer.DeleteAddress)

	orders := admin.Group("/orders")
	orders.GET("", middleware.RequirePermission(identity.PermOrderRead, identity.PermOrderManage), h.Order.List)
	orders.GET("/:id", middleware.RequirePermission(identity.PermOrderRead, identity.PermOrderManage), h.Order.Get)
	orders.POST("/:id/confirm", middleware.RequirePermission(identity.PermOrderManage), h.Order.Confirm)
	orders.POST("/:id/ship", middleware.RequirePermission(identity.PermOrderManage), h.Order.Ship)
	orders.POST("/:id/deliver", middleware.RequirePermission(identity.PermOrderManage), h.Order.Deliver)
	orders.POST("/:id/cancel", middleware.RequirePermission(identity.PermOrderManage), h.Order.Cancel)

	users := admin.Group("/users", middleware.RequirePermission(identity.PermUserManage))
	users.POST("", h.User.Create)
	users.GET("", h.User.List)
	users.GET("/:id", h.User.Get)
	users.PUT("/:id", h.User.Update)
	users.PUT("/:id/roles", h.User.AssignRoles)
	users.POST("/:id/activate", h.User.Activate)
	users.POST("/:id/deactivate", h.User.Deactivate)
	users.POST("/:id/unlock", h.User.Unlock)
	users.DELETE("/:id", h.User.Delete)

	roles := admin.Group("/roles", middleware.RequirePermission(identity.PermRoleManage))
	roles.POST("", h.Role.Create)
	roles.GET("", h.Role.List)
	roles.GET("/permissions", h.Role.Permissions)
	roles.GET("/:id", h.Role.Get)
	roles.PUT("/:id", h.Role.Update)
	roles.DELETE("/:id", h.Role.Delete)

	apiKeys := admin.Group("/api-keys", middleware.RequirePermission(identity.PermAPIKeyManage))
	apiKeys.POST("", h.APIKey.Create)
	apiKeys.GET("", h.APIKey.List)
	apiKeys.GET("/:id", h.APIKey.Get)
	apiKeys.PUT("/:id", h.APIKey.Rename)
	apiKeys.POST("/:id/revoke", h.APIKey.Revoke)
	apiKeys.DELETE("/:id", h.APIKey.Delete)

	alertRules := admin.Group("/alert-rules", middleware.RequirePermission(identity.PermAlertManage))
	alertRules.POST("", h.Alerting.CreateRule)
	alertRules.GET("", h.Alerting.ListRules)
	alertRules.GET("/event-types", h.Alerting.EventTypes)
	alertRules.GET("/:id", h.Alerting.GetRule)
	alertRules.PUT("/:id", h.Alerting.UpdateRule)
	alertRules.DELETE("/:id", h.Alerting.DeleteRule)

	templates := admin.Group("/templates", middleware.RequirePermission(identity.PermAlertManage))
	templates.POST("", h.Alerting.CreateTemplate)
	templates.GET("", h.Alerting.ListTemplates)
	templates.GET("/:id", h.Alerting.GetTemplate)
	templates.GET("/:id/preview", h.Alerting.PreviewTemplate)
	templates.PUT("/:id", h.Alerting.UpdateTemplate)
	templates.DELETE("/:id", h.Alerting.DeleteTemplate)
}
