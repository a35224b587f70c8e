package router

import (
	"github.com/chickenviken/backend/internal/domain/identity"
	"github.com/chickenviken/backend/internal/infrastructure/auth"
	"github.com/chickenviken/backend/internal/interfaces/http/handler"
	"github.com/chickenviken/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies carries everything the route table needs
type Dependencies struct {
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger

	System    *handler.SystemHandler
	Products  *handler.ProductHandler
	Orders    *handler.OrderHandler
	Customers *handler.CustomerHandler
	Admins    *handler.AdminHandler
	Settings  *handler.SettingsHandler
}

// Setup registers the full route table on the engine. Storefront routes live
// under /api and authenticate against the user namespace; dashboard routes
// live under /api/admin and authenticate against the admin namespace, with a
// capability gate per resource group.
func Setup(engine *gin.Engine, deps Dependencies) {
	engine.GET("/health", deps.System.Health)

	userAuth := middleware.RequireAuth(middleware.AuthConfig{
		JWTService:     deps.JWTService,
		Namespace:      auth.NamespaceUser,
		TokenBlacklist: deps.TokenBlacklist,
		Logger:         deps.Logger,
	})
	adminAuth := middleware.RequireAuth(middleware.AuthConfig{
		JWTService:     deps.JWTService,
		Namespace:      auth.NamespaceAdmin,
		TokenBlacklist: deps.TokenBlacklist,
		Logger:         deps.Logger,
	})
	permCfg := middleware.PermissionConfig{Logger: deps.Logger}

	api := engine.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", deps.Customers.SignUp)
			authGroup.POST("/signin", deps.Customers.SignIn)
			authGroup.POST("/signout", userAuth, deps.Customers.SignOut)
		}

		products := api.Group("/products")
		{
			products.GET("", deps.Products.List)
			products.GET("/popular", deps.Products.Popular)
			products.GET("/:id", deps.Products.Get)
		}

		api.GET("/settings", deps.Settings.Get)

		orders := api.Group("/orders", userAuth)
		{
			orders.POST("", deps.Orders.Create)
			orders.GET("", deps.Orders.ListOwn)
			orders.GET("/:id", deps.Orders.GetOwn)
			orders.POST("/:id/cancel", deps.Orders.CancelOwn)
		}

		profile := api.Group("/profile", userAuth)
		{
			profile.GET("", deps.Customers.GetProfile)
			profile.PUT("", deps.Customers.UpdateProfile)
			profile.POST("/addresses", deps.Customers.AddAddress)
			profile.PUT("/addresses/:addressId", deps.Customers.UpdateAddress)
			profile.DELETE("/addresses/:addressId", deps.Customers.RemoveAddress)
		}
	}

	admin := engine.Group("/api/admin")
	{
		adminAuthGroup := admin.Group("/auth")
		{
			adminAuthGroup.POST("/signup", deps.Admins.SignUp)
			adminAuthGroup.POST("/signin", deps.Admins.SignIn)
			adminAuthGroup.POST("/signout", adminAuth, deps.Admins.SignOut)
		}

		admin.GET("/me", adminAuth, deps.Admins.Me)
		admin.DELETE("/me", adminAuth, deps.Admins.DeleteOwnAccount)

		adminProducts := admin.Group("/products", adminAuth,
			middleware.RequireCapabilityWithConfig(identity.CapabilityProducts, permCfg))
		{
			adminProducts.POST("", deps.Products.Create)
			adminProducts.PUT("/:id", deps.Products.Update)
			adminProducts.DELETE("/:id", deps.Products.Delete)
			adminProducts.POST("/:id/image", deps.Products.UploadImage)
		}

		adminInventory := admin.Group("/products", adminAuth,
			middleware.RequireCapabilityWithConfig(identity.CapabilityInventory, permCfg))
		{
			adminInventory.PATCH("/:id/stock", deps.Products.AdjustStock)
			adminInventory.PATCH("/:id/in-stock", deps.Products.SetInStock)
		}

		adminOrders := admin.Group("/orders", adminAuth,
			middleware.RequireCapabilityWithConfig(identity.CapabilityOrders, permCfg))
		{
			adminOrders.GET("", deps.Orders.ListAll)
			adminOrders.GET("/:id", deps.Orders.Get)
			adminOrders.PATCH("/:id/status", deps.Orders.UpdateStatus)
			adminOrders.POST("/:id/cancel", deps.Orders.Cancel)
			adminOrders.DELETE("/:id", deps.Orders.Delete)
		}

		adminUsers := admin.Group("/users", adminAuth,
			middleware.RequireCapabilityWithConfig(identity.CapabilityUsers, permCfg))
		{
			adminUsers.GET("", deps.Customers.List)
			adminUsers.DELETE("/:id", deps.Customers.Delete)
		}

		adminSettings := admin.Group("/settings", adminAuth,
			middleware.RequireCapabilityWithConfig(identity.CapabilitySettings, permCfg))
		{
			adminSettings.PUT("", deps.Settings.Update)
		}

		adminAdmins := admin.Group("/admins", adminAuth, middleware.RequireSuperAdmin(permCfg))
		{
			adminAdmins.GET("", deps.Admins.List)
			adminAdmins.PUT("/:id/capabilities", deps.Admins.SetCapabilities)
		}

		functions := admin.Group("/functions", adminAuth, middleware.RequireSuperAdmin(permCfg))
		{
			functions.POST("/promote", deps.Admins.PromoteToAdmin)
			functions.POST("/revoke", deps.Admins.RevokeAdminPrivileges)
		}
	}
}
