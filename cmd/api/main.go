package main

import (
	"log"
	"os"
	"strings"

	"quotepanel/internal/handler"
	"quotepanel/internal/repository"
	"quotepanel/internal/service"
	"quotepanel/internal/storage"
	"quotepanel/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title           Farber Panel Pro API
// @version         1.0
// @description     Quoting panel backend: product catalog, clients, budgets, purchase orders, settings and backups.
// @host            localhost:8080
// @BasePath        /
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	var store storage.Store
	if dataDir == ":memory:" {
		store = storage.NewMemoryStore()
		log.Println("Using in-memory store; data is lost on exit.")
	} else {
		badgerStore, err := storage.NewBadgerStore(dataDir)
		if err != nil {
			log.Fatalf("Storage open failed: %v", err)
		}
		store = badgerStore
		log.Printf("Storage opened at %s", dataDir)
	}

	gw := storage.NewGateway(store)
	defer func() {
		if err := gw.Close(); err != nil {
			log.Printf("Storage close failed: %v", err)
		}
	}()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	budgetRepo := repository.NewBudgetRepository(gw)
	clientRepo := repository.NewClientRepository(gw)
	productRepo := repository.NewProductRepository(gw)
	orderRepo := repository.NewOrderRepository(gw)
	configRepo := repository.NewConfigRepository(gw)
	counterRepo := repository.NewCounterRepository(gw)

	catalogService := service.NewCatalogService(productRepo, wsHub)
	budgetService := service.NewBudgetService(budgetRepo, clientRepo, counterRepo, configRepo, catalogService, wsHub)
	clientService := service.NewClientService(clientRepo, budgetRepo, wsHub)
	orderService := service.NewOrderService(orderRepo, budgetService, wsHub)
	configService := service.NewConfigService(configRepo, budgetService, wsHub)
	backupService := service.NewBackupService(clientRepo, productRepo, budgetRepo, catalogService, wsHub)
	dashboardService := service.NewDashboardService(budgetService, clientService, catalogService, orderService)

	// Initialize Handlers
	budgetHandler := handler.NewBudgetHandler(budgetService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	clientHandler := handler.NewClientHandler(clientService)
	orderHandler := handler.NewOrderHandler(orderService)
	configHandler := handler.NewConfigHandler(configService)
	backupHandler := handler.NewBackupHandler(backupService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173,http://127.0.0.1:5173"
	}
	corsConfig.AllowOrigins = strings.Split(origins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// Register API Routes
	budgetHandler.RegisterRoutes(router.Group(""))
	catalogHandler.RegisterRoutes(router.Group(""))
	clientHandler.RegisterRoutes(router.Group(""))
	orderHandler.RegisterRoutes(router.Group(""))
	configHandler.RegisterRoutes(router.Group(""))
	backupHandler.RegisterRoutes(router.Group(""))
	dashboardHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
