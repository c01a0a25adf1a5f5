package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"clothing-mall/internal/cache"
	"clothing-mall/internal/event"
	"clothing-mall/internal/handler"
	"clothing-mall/internal/middleware"
	"clothing-mall/internal/model"
	"clothing-mall/internal/service"
	"clothing-mall/pkg/config"
	"clothing-mall/pkg/database"
	"clothing-mall/pkg/jwt"
	"clothing-mall/pkg/response"
	"clothing-mall/pkg/tracer"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	c, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyEnvOverrides(c)

	jwt.SetSecret(c.Jwt.Secret)

	if c.Telemetry.OtlpEndpoint != "" {
		tp, err := tracer.InitTracer(c.Service.Name, c.Telemetry.OtlpEndpoint)
		if err != nil {
			log.Printf("Init tracer failed: %v", err)
		} else {
			defer func() { _ = tp.Shutdown(context.Background()) }()
		}
	}

	db, err := database.InitMySQL(c.Mysql)
	if err != nil {
		log.Fatalf("Failed to init mysql: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.VendorProfile{}, &model.Address{},
		&model.Product{}, &model.Sku{},
		&model.Cart{}, &model.CartItem{},
		&model.Order{}, &model.OrderItem{}, &model.PaymentRecord{},
		&model.Review{},
	); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	var publisher *event.Publisher
	if c.RabbitMQ.URL != "" {
		publisher, err = event.NewPublisher(c.RabbitMQ.URL, c.RabbitMQ.Exchange)
		if err != nil {
			log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	authSvc := service.NewAuthService(db)
	catalogSvc := service.NewCatalogService(db)
	cartSvc := service.NewCartService(db)
	reviewSvc := service.NewReviewService(db)
	adminSvc := service.NewAdminService(db)
	customerSvc := service.NewCustomerService(db)

	var orderSvc *service.OrderService
	if publisher != nil {
		orderSvc = service.NewOrderService(db, publisher)
	} else {
		orderSvc = service.NewOrderService(db, nil)
	}

	var catalogCache *cache.CatalogCache
	if c.Redis.Address != "" {
		rdb, err := database.InitRedis(c.Redis)
		if err != nil {
			log.Printf("Redis unavailable, catalog cache disabled: %v", err)
		} else {
			catalogCache = cache.NewCatalogCache(catalogSvc, rdb)
		}
	}

	authH := handler.NewAuthHandler(authSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc, reviewSvc, catalogCache)
	cartH := handler.NewCartHandler(cartSvc)
	orderH := handler.NewOrderHandler(orderSvc, cartSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	adminH := handler.NewAdminHandler(adminSvc, orderSvc)
	customerH := handler.NewCustomerHandler(customerSvc)
	vendorH := handler.NewVendorHandler(customerSvc, orderSvc)

	r := gin.Default()
	r.Use(middleware.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	// Public storefront
	r.POST("/api/auth/register", authH.Register)
	r.POST("/api/auth/login", authH.Login)
	r.GET("/api/products", catalogH.ListAvailable)
	r.GET("/api/products/category/:category", catalogH.ListByCategory)
	r.GET("/api/products/:id", catalogH.GetProduct)
	r.GET("/api/products/:id/reviews", reviewH.ListForProduct)

	// Any authenticated account
	authed := r.Group("/api", middleware.AuthMiddleware())
	authed.PUT("/password", authH.ChangePassword)
	authed.PUT("/profile", customerH.UpdateProfile)

	// Customer operations
	customer := r.Group("/api", middleware.AuthMiddleware(), middleware.RequireRole(model.RoleCustomer))
	customer.GET("/cart", cartH.GetCart)
	customer.POST("/cart/items", cartH.AddItem)
	customer.PUT("/cart/items/:skuId", cartH.UpdateQuantity)
	customer.DELETE("/cart/items/:skuId", cartH.RemoveItem)
	customer.DELETE("/cart", cartH.Clear)
	customer.POST("/orders", orderH.Checkout)
	customer.GET("/orders", orderH.ListMine)
	customer.POST("/orders/:id/payment", orderH.AttachPayment)
	customer.POST("/products/:id/reviews", reviewH.Add)
	customer.PUT("/reviews/:reviewId", reviewH.Update)
	customer.DELETE("/reviews/:reviewId", reviewH.Delete)
	customer.POST("/addresses", customerH.AddAddress)
	customer.GET("/addresses", customerH.ListAddresses)
	customer.DELETE("/addresses/:id", customerH.DeleteAddress)

	// Order detail is shared between owner and admin
	orderRead := r.Group("/api", middleware.AuthMiddleware(), middleware.RequireRole(model.RoleCustomer, model.RoleAdmin))
	orderRead.GET("/orders/:id", orderH.Get)

	// Vendor listing management
	vendor := r.Group("/api/vendor", middleware.AuthMiddleware(), middleware.RequireRole(model.RoleVendor, model.RoleAdmin))
	vendor.GET("/profile", vendorH.GetProfile)
	vendor.GET("/orders", vendorH.ListOrders)
	vendor.GET("/products", catalogH.ListMine)
	vendor.POST("/products", catalogH.CreateProduct)
	vendor.PUT("/products/:id", catalogH.UpdateProduct)
	vendor.DELETE("/products/:id", catalogH.DeleteProduct)
	vendor.POST("/products/:id/skus", catalogH.AddSku)
	vendor.PUT("/skus/:skuId", catalogH.UpdateSku)
	vendor.DELETE("/skus/:skuId", catalogH.DeleteSku)

	// Admin moderation
	admin := r.Group("/api/admin", middleware.AuthMiddleware(), middleware.RequireRole(model.RoleAdmin))
	admin.GET("/users", adminH.ListUsers)
	admin.GET("/vendors", adminH.ListVendors)
	admin.POST("/vendors/:id/approve", adminH.ApproveVendor)
	admin.POST("/users/:id/suspend", adminH.SuspendAccount)
	admin.POST("/users/:id/reactivate", adminH.ReactivateAccount)
	admin.GET("/orders", adminH.ListOrders)
	admin.PUT("/orders/:id/status", orderH.UpdateStatus)

	addr := fmt.Sprintf(":%d", c.Service.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Printf("%s listening on %s", c.Service.Name, addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}

func applyEnvOverrides(c *config.Config) {
	if v := os.Getenv("MYSQL_HOST"); v != "" {
		c.Mysql.Host = v
	}
	if v := os.Getenv("MYSQL_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Mysql.Port = p
		}
	}
	if v := os.Getenv("MYSQL_USER"); v != "" {
		c.Mysql.User = v
	}
	if v := os.Getenv("MYSQL_PASSWORD"); v != "" {
		c.Mysql.Password = v
	}
	if v := os.Getenv("MYSQL_DBNAME"); v != "" {
		c.Mysql.DbName = v
	}
	if v := os.Getenv("REDIS_ADDRESS"); v != "" {
		c.Redis.Address = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		c.RabbitMQ.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Jwt.Secret = v
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		c.Telemetry.OtlpEndpoint = v
	}
	if v := os.Getenv("SERVICE_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Service.Port = p
		}
	}
}
