// @title Pacific Tide Storefront API
// @version 1.0
// @description Sauna catalog, configurator pricing, quote requests and customer accounts
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/controllers/ecommerce/auth_controller"
	"github.com/Pacific-Tide/pacific-tide-backend/controllers/ecommerce/product_controller"
	"github.com/Pacific-Tide/pacific-tide-backend/controllers/ecommerce/quote_controller"
	"github.com/Pacific-Tide/pacific-tide-backend/controllers/ecommerce/user_controller/profile_controller"
	_ "github.com/Pacific-Tide/pacific-tide-backend/docs"
	"github.com/Pacific-Tide/pacific-tide-backend/routes/cms_routes"
	"github.com/Pacific-Tide/pacific-tide-backend/routes/ecommerce_routes"
	"github.com/Pacific-Tide/pacific-tide-backend/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	_ = godotenv.Load()
}

func allowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000", "http://localhost:3001"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

const shutdownTimeout = 20 * time.Second

func main() {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to DB
	config.InitDB()
	defer config.CloseDB()

	// Redis connection (rate limiting only)
	config.ConnectRedis()
	defer config.CloseRedis()

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("❌ JWT_SECRET environment variable not set")
	}

	// Initialize Cloudinary thumbnails
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	if cloudName != "" {
		if err := product_controller.InitCloudinary(cloudName, os.Getenv("CLOUDINARY_API_KEY"), os.Getenv("CLOUDINARY_API_SECRET")); err != nil {
			log.Fatalf("Failed to initialize Cloudinary: %v", err)
		}
		log.Println("✅ Cloudinary thumbnails enabled")
	}

	// ✅ Quote notifications
	mailCfg := config.LoadMailConfig()
	mailer := services.NewMailer(mailCfg)
	quote_controller.Init(services.NewQuoteNotifier(mailer, mailCfg, services.NewQuoteLogStore(config.StoreDB)))
	if mailCfg.To == "" {
		log.Println("⚠️  MAIL_TO/MAIL_USER not set, quote requests will fail with 500")
	}

	// ✅ Customer accounts
	userRepo := services.NewGormUserRepository(config.StoreGorm)
	auth_controller.Init(userRepo)
	profile_controller.Init(userRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := config.InitGoogleOAuth(ctx); err != nil {
		log.Printf("❌ Google OAuth disabled: %v", err)
	}
	cancel()

	corsCfg := cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.New(corsCfg))

	// Register API routes
	api := router.Group("/api/v1")
	ecommerce_routes.SetupStorefrontRoutes(api)
	ecommerce_routes.SetupQuoteRoutes(api)
	ecommerce_routes.SetupAuthRoutes(api)
	ecommerce_routes.SetupUserRoutes(api)
	cms_routes.SetupLeadRoutes(api)

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("🚀 Server is running on http://localhost:%s\n", port)
	if err := serve(sigCtx, srv, shutdownTimeout); err != nil {
		log.Printf("❌ Server stopped: %v", err)
	}
}

// serve runs srv until ctx is cancelled, then drains in-flight requests for at most grace.
func serve(ctx context.Context, srv *http.Server, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
