package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/debtwatch/backend/docs"
	"github.com/debtwatch/backend/internal/config"
	"github.com/debtwatch/backend/internal/database"
	"github.com/debtwatch/backend/internal/handlers"
	mW "github.com/debtwatch/backend/internal/middleware"
	"github.com/debtwatch/backend/internal/services"
	"github.com/debtwatch/backend/internal/storage"
)

// @title Debt Tracking Dashboard API
// @version 1.0
// @description API for the personal debt-tracking dashboard
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize config
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	docs.SwaggerInfo.Host = viper.GetString("swagger.host")
	if docs.SwaggerInfo.Host == "" {
		docs.SwaggerInfo.Host = "localhost:8080"
	}

	trackerCfg := config.LoadTrackerConfig()

	// Storage chain: Postgres first, Redis cache next, memory last.
	var backends []storage.Store

	db := database.InitDatabase()
	if db != nil {
		defer db.Close()
		pg := storage.NewPostgresStore(db)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to ensure database schema: %v", err)
		}
		backends = append(backends, pg)
	}

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
		backends = append(backends, storage.NewRedisStore(redisClient))
	}

	backends = append(backends, storage.NewMemoryStore())
	store := storage.NewChain(backends...)

	// Services and handlers
	transactionService := services.NewTransactionService(store, trackerCfg)
	reportService := services.NewReportService(transactionService, trackerCfg)
	adviceService := services.NewAdviceService(trackerCfg)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	reportHandler := handlers.NewReportHandler(reportService, adviceService)

	// Setup router
	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/transactions", transactionHandler.ListTransactions)
		r.Get("/transactions/view", transactionHandler.ViewTransactions)
		r.Post("/transactions/import", transactionHandler.ImportCSV)
		r.Get("/transactions/export", transactionHandler.ExportTransactions)

		r.Get("/report", reportHandler.GetReport)
		r.Get("/report/advice", reportHandler.GetAdvice)
	})

	// Dashboard assets
	r.Handle("/*", mW.StaticFileServer("./static/dashboard"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
