// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linkupapp/linkup-backend/internal/activity"
	"github.com/linkupapp/linkup-backend/internal/auth"
	"github.com/linkupapp/linkup-backend/internal/category"
	"github.com/linkupapp/linkup-backend/internal/common/database"
	"github.com/linkupapp/linkup-backend/internal/config"
	"github.com/linkupapp/linkup-backend/internal/connections"
	"github.com/linkupapp/linkup-backend/internal/geo"
	"github.com/linkupapp/linkup-backend/internal/users"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting LinkUp Activity API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load and validate configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration loaded and valid")

	// 3. Connect to PostgreSQL
	log.Println("\n🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 4. Connect to Redis. The geo index lives here, so Redis is required.
	log.Println("\n📮 Step 4: Connecting to Redis...")
	redisClient, err := database.NewRedisClientFromURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to Redis:", err)
	}
	defer redisClient.Close()
	log.Println("✅ Connected to Redis successfully")

	// 5. Run database migrations
	log.Println("\n🔨 Step 5: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 6. Initialize geo index and location store
	log.Println("\n🌍 Step 6: Initializing geo index...")
	geoIndex := geo.NewIndex(redisClient)
	locationStore := geo.NewStore(db, geoIndex)
	log.Println("✅ Geo index initialized")

	// 7. Initialize auth middleware
	log.Println("\n🔐 Step 7: Initializing authentication...")
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)
	log.Println("✅ Authentication initialized")

	// 8. Initialize Categories module
	log.Println("\n🏷️  Step 8: Initializing Categories module...")
	categoryRepo := category.NewPostgresRepository(db)
	categoryImages := category.NewImageResolver(cfg.BaseURL)
	categoryHandler := category.NewHandler(categoryRepo, categoryImages)
	log.Println("✅ Categories module initialized")

	// 9. Initialize Connections module
	log.Println("\n🤝 Step 9: Initializing Connections module...")
	photoResolver := users.NewPhotoResolver(cfg.BaseURL)
	connectionsRepo := connections.NewPostgresRepository(db)
	connectionsService := connections.NewService(connectionsRepo, photoResolver)
	connectionsHandler := connections.NewHandler(connectionsService)
	log.Println("✅ Connections module initialized")

	// 10. Initialize Activities module
	log.Println("\n🎯 Step 10: Initializing Activities module...")
	usersRepo := users.NewPostgresRepository(db)
	activityRepo := activity.NewPostgresRepository(db)
	activityService := activity.NewService(
		activityRepo,
		locationStore,
		geoIndex,
		usersRepo,
		categoryRepo,
		connectionsService,
		photoResolver,
		categoryImages,
		cfg.DefaultSearchRadiusKm,
		cfg.DefaultPageSize,
	)
	activityHandler := activity.NewHandler(activityService)
	log.Println("✅ Activities module initialized")

	// 11. Initialize Users module
	log.Println("\n👤 Step 11: Initializing Users module...")
	usersService := users.NewService(usersRepo, locationStore, activityService, connectionsService)
	usersHandler := users.NewHandler(usersService)
	log.Println("✅ Users module initialized")

	// 12. Setup routes
	log.Println("\n🛣️  Step 12: Setting up routes...")
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	if cfg.EnableMetrics {
		router.Handle("/metrics", promhttp.Handler()).Methods("GET")
		log.Println("   ✅ Prometheus metrics exposed on /metrics")
	}

	category.RegisterRoutes(router, categoryHandler)
	log.Println("   ✅ Category routes registered")

	connections.RegisterRoutes(router, connectionsHandler, authMiddleware)
	log.Println("   ✅ Connections routes registered")

	activity.RegisterRoutes(router, activityHandler, authMiddleware)
	log.Println("   ✅ Activity routes registered")

	users.RegisterRoutes(router, usersHandler, authMiddleware)
	log.Println("   ✅ Users routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 13. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// loggingMiddleware logs all requests with a per-request id
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		log.Printf("→ [%s] %s %s from %s", requestID, r.Method, r.RequestURI, r.RemoteAddr)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← [%s] %s %s [%d] %v", requestID, r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations creates tables if they don't exist
func runMigrations(db *sqlx.DB) error {
	log.Println("   - Creating/updating tables...")

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE,
			first_name VARCHAR(100),
			last_name VARCHAR(100),
			gender VARCHAR(20),
			age VARCHAR(10),
			about_me TEXT,
			photo_id INTEGER,
			category_id INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			category_id SERIAL PRIMARY KEY,
			title VARCHAR(100) NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS activities (
			id SERIAL PRIMARY KEY,
			owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category_id INTEGER DEFAULT 0,
			date VARCHAR(10) NOT NULL,
			time VARCHAR(8) NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			capacity VARCHAR(20),
			start_age VARCHAR(10),
			end_age VARCHAR(10),
			skill VARCHAR(50),
			gender VARCHAR(20),
			sponsored BOOLEAN DEFAULT FALSE,
			scheduled_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS locations (
			id SERIAL PRIMARY KEY,
			resource_id INTEGER NOT NULL,
			resource_type VARCHAR(20) NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			name VARCHAR(255) DEFAULT '',
			formatted_address VARCHAR(255) DEFAULT '',
			country VARCHAR(100) DEFAULT '',
			state VARCHAR(100) DEFAULT '',
			city VARCHAR(100) DEFAULT '',
			zipcode VARCHAR(20) DEFAULT '',
			address VARCHAR(255) DEFAULT '',
			UNIQUE (resource_id, resource_type)
		)`,

		`CREATE TABLE IF NOT EXISTS activity_requests (
			id SERIAL PRIMARY KEY,
			activity_id INTEGER NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
			owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			status SMALLINT NOT NULL DEFAULT 0,
			user_message TEXT,
			owner_message TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (activity_id, owner_id, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS connections (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			friend_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			status BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, friend_id)
		)`,

		`CREATE TABLE IF NOT EXISTS blocked_users (
			owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (owner_id, user_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_owner_id ON activities(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_scheduled_at ON activities(scheduled_at)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_category_id ON activities(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_requests_user_id ON activity_requests(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_requests_activity_id ON activity_requests(activity_id)`,
		`CREATE INDEX IF NOT EXISTS idx_locations_resource ON locations(resource_id, resource_type)`,
		`CREATE INDEX IF NOT EXISTS idx_connections_friend_id ON connections(friend_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
