package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/bodo2020/market-maadaoui-sells-sub000/config"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/cache"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/handler"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/logging"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/middleware"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/pos"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/printer"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/repository"
	"github.com/bodo2020/market-maadaoui-sells-sub000/pkg/database"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()
	logging.Init(config.AppConfig.Server.Env)
	defer logging.L.Sync()

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")

	err := database.DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.LoginHistory{},
		&models.Category{},
		&models.Product{},
		&models.StockEntry{},
		&models.DeliveryZone{},
		&models.Customer{},
		&models.Coupon{},
		&models.Sale{},
		&models.SaleItem{},
		&models.CashMovement{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Data
	database.SeedRolesAndAdmin()

	// 4. Build POS core
	var lookup pos.ProductLookup = repository.NewProductRepository(database.DB)
	var scanCache *cache.CachedProductLookup
	if config.AppConfig.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.Redis.Addr,
			Password: config.AppConfig.Redis.Password,
			DB:       config.AppConfig.Redis.DB,
		})
		scanCache = cache.NewCachedProductLookup(lookup, rdb, logging.L)
		lookup = scanCache
	}

	interpreter := pos.NewInterpreter(lookup)
	sessions := pos.NewSessionStore(time.Duration(config.AppConfig.POS.ScanDebounceMS) * time.Millisecond)
	finalizer := pos.NewFinalizer(
		repository.NewSaleRepository(database.DB, config.AppConfig.POS.InvoicePrefix),
		repository.NewRegisterRepository(database.DB),
		printer.New(config.AppConfig.POS.PrinterAddr),
		logging.L,
	)

	// 5. Initialize Router
	r := gin.Default()

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 6. Setup Routes
	authHandler := &handler.AuthHandler{}
	authRoutes := r.Group("/api/v1/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}

	userRoutes := r.Group("/api/v1/user")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.PUT("/password", authHandler.ChangePassword)
	}

	adminHandler := &handler.AdminHandler{}
	adminRoutes := r.Group("/api/v1/admin")
	adminRoutes.Use(middleware.AuthMiddleware("admin"))
	{
		adminRoutes.POST("/employees", adminHandler.CreateEmployee)
		adminRoutes.GET("/employees", adminHandler.ListEmployees)
		adminRoutes.PUT("/employees/:id", adminHandler.UpdateEmployee)
		adminRoutes.PUT("/employees/:id/role", adminHandler.UpdateEmployeeRole)
		adminRoutes.PUT("/employees/:id/status", adminHandler.UpdateEmployeeStatus)
		adminRoutes.PUT("/employees/:id/password", adminHandler.ResetEmployeePassword)
		adminRoutes.GET("/login-history", adminHandler.GetLoginHistory)
		adminRoutes.GET("/dashboard", adminHandler.GetDashboardStats)
	}

	inventoryHandler := handler.NewInventoryHandler(scanCache)

	// Public Read (Authenticated)
	r.GET("/api/v1/inventory/products", middleware.AuthMiddleware(), inventoryHandler.ListProducts)
	r.GET("/api/v1/inventory/categories", middleware.AuthMiddleware(), inventoryHandler.ListCategories)

	// Protected Inventory Ops
	invRoutes := r.Group("/api/v1/inventory")
	invRoutes.Use(middleware.AuthMiddleware("admin", "manager", "inventory"))
	{
		invRoutes.POST("/products", inventoryHandler.CreateProduct)
		invRoutes.PUT("/products/:id", inventoryHandler.UpdateProduct)
		invRoutes.DELETE("/products/:id", inventoryHandler.DeactivateProduct)
		invRoutes.POST("/stock", inventoryHandler.AddStock)
		invRoutes.GET("/alerts", inventoryHandler.GetLowStockAlerts)
		invRoutes.POST("/categories", inventoryHandler.CreateCategory)
		invRoutes.PUT("/categories/:id", inventoryHandler.UpdateCategory)
		invRoutes.DELETE("/categories/:id", inventoryHandler.DeleteCategory)
	}

	posHandler := handler.NewPOSHandler(sessions, interpreter, finalizer)
	crmHandler := &handler.CRMHandler{}
	couponHandler := &handler.CouponHandler{}
	posRoutes := r.Group("/api/v1/pos")
	posRoutes.Use(middleware.AuthMiddleware("cashier", "manager", "admin"))
	{
		posRoutes.POST("/sessions", posHandler.OpenSession)
		posRoutes.DELETE("/sessions/:id", posHandler.CloseSession)
		posRoutes.GET("/sessions/:id/cart", posHandler.GetCart)
		posRoutes.POST("/sessions/:id/scan", posHandler.Scan)
		posRoutes.POST("/sessions/:id/keys", posHandler.PushKey)
		posRoutes.POST("/sessions/:id/lines", posHandler.AddLine)
		posRoutes.PATCH("/sessions/:id/lines/:index", posHandler.ChangeQuantity)
		posRoutes.DELETE("/sessions/:id/lines/:index", posHandler.RemoveLine)
		posRoutes.GET("/sessions/:id/payment-defaults", posHandler.PaymentDefaults)
		posRoutes.POST("/sessions/:id/checkout", posHandler.Checkout)

		posRoutes.POST("/customers", crmHandler.CreateCustomer)
		posRoutes.GET("/customers", crmHandler.SearchCustomers)
		posRoutes.GET("/coupons/validate", couponHandler.ValidateCoupon)
	}

	managerHandler := &handler.ManagerHandler{}
	registerHandler := &handler.RegisterHandler{}
	deliveryHandler := &handler.DeliveryHandler{}
	managerRoutes := r.Group("/api/v1/manager")
	managerRoutes.Use(middleware.AuthMiddleware("manager", "admin"))
	{
		managerRoutes.GET("/reports/sales", managerHandler.GetSalesReport)
		managerRoutes.GET("/sales", managerHandler.ListSales)
		managerRoutes.GET("/dashboard", managerHandler.GetDashboardStats)

		managerRoutes.GET("/registers/movements", registerHandler.ListMovements)
		managerRoutes.POST("/registers/movements", registerHandler.CreateMovement)
		managerRoutes.GET("/registers/balance", registerHandler.GetBalance)

		managerRoutes.GET("/delivery-zones", deliveryHandler.ListZones)
		managerRoutes.POST("/delivery-zones", deliveryHandler.CreateZone)
		managerRoutes.PUT("/delivery-zones/:id", deliveryHandler.UpdateZone)
		managerRoutes.DELETE("/delivery-zones/:id", deliveryHandler.DeleteZone)

		managerRoutes.POST("/coupons", couponHandler.CreateCoupon)
		managerRoutes.GET("/coupons", couponHandler.ListCoupons)
		managerRoutes.PUT("/coupons/:id/deactivate", couponHandler.DeactivateCoupon)

		managerRoutes.PUT("/customers/:id", crmHandler.UpdateCustomer)
		managerRoutes.GET("/customers", crmHandler.SearchCustomers)
		managerRoutes.GET("/customers/:id/history", crmHandler.GetCustomerHistory)
	}

	cashierRoutes := r.Group("/api/v1/cashier")
	cashierRoutes.Use(middleware.AuthMiddleware("cashier", "manager", "admin"))
	{
		cashierRoutes.GET("/my-sales", managerHandler.MyTodaySales)
	}

	publicHandler := &handler.PublicHandler{}
	publicRoutes := r.Group("/api/v1/public")
	{
		publicRoutes.GET("/config", publicHandler.GetPublicConfig)
		publicRoutes.GET("/products", publicHandler.ListPublicProducts)
		publicRoutes.GET("/store-info", publicHandler.GetStoreInfo)
		publicRoutes.GET("/delivery-zones", publicHandler.ListPublicZones)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 7. Start Server
	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
