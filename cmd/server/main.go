package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/aburtocampos/taskmanager/internal/auth/http"
	authrepo "github.com/aburtocampos/taskmanager/internal/auth/repository"
	authservice "github.com/aburtocampos/taskmanager/internal/auth/service"
	"github.com/aburtocampos/taskmanager/internal/common/clock"
	"github.com/aburtocampos/taskmanager/internal/common/config"
	"github.com/aburtocampos/taskmanager/internal/common/constants"
	commoncrypto "github.com/aburtocampos/taskmanager/internal/common/crypto"
	"github.com/aburtocampos/taskmanager/internal/common/db"
	commonhttp "github.com/aburtocampos/taskmanager/internal/common/http"
	"github.com/aburtocampos/taskmanager/internal/common/jwtverify"
	"github.com/aburtocampos/taskmanager/internal/common/logger"
	srv "github.com/aburtocampos/taskmanager/internal/common/server"
	taskhttp "github.com/aburtocampos/taskmanager/internal/task/http"
	taskrepo "github.com/aburtocampos/taskmanager/internal/task/repository"
	taskservice "github.com/aburtocampos/taskmanager/internal/task/service"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_DIR"), "taskmanager", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	db.StartPoolMetrics(pool, constants.DBPoolMetricsInterval)

	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer schemaCancel()
	if err := db.EnsureSchema(schemaCtx, pool); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	clk := clock.NewRealClock()
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := commoncrypto.NewUUIDGenerator()

	userRepo := authrepo.NewPgRepository(pool)
	authService := authservice.NewAuthService(
		userRepo,
		hasher,
		idGenerator,
		cfg.JWTSecret,
		cfg.TokenTTL,
		clk,
		log,
	)

	taskRepo := taskrepo.NewPgRepository(pool)
	taskService := taskservice.NewTaskService(taskRepo, log)

	router := mux.NewRouter()
	router.HandleFunc("/health", commonhttp.HealthHandler(log)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	authhttp.NewHandler(authService, cfg.RequestTimeout, log).RegisterRoutes(api)

	private := api.NewRoute().Subrouter()
	private.Use(jwtverify.Middleware(cfg.JWTSecret, log))
	taskhttp.NewHandler(taskService, cfg.RequestTimeout, log).RegisterRoutes(private)

	rateLimiter := commonhttp.NewStrictRateLimiter()
	corsHandler := commonhttp.CORSMiddleware(cfg.AllowedOrigins)

	handler := commonhttp.BuildBaseHandler(log, corsHandler(rateLimiter.Middleware(router)))

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, handler)

	srv.StartWithGracefulShutdown(server, log, "taskmanager")
}
