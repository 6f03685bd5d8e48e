package server

import (
	"fmt"
	"net/http"
	"time"

	"olshop/internal/config"
	"olshop/internal/database"
	custommiddleware "olshop/internal/middleware"
	"olshop/internal/repository"
	"olshop/internal/service"
	"olshop/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config  *config.Config
	logger  *zap.Logger
	factory *database.ConnectionFactory
}

func NewServer(cfg *config.Config, logger *zap.Logger, factory *database.ConnectionFactory) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))

	// Health check endpoint: opens a scoped connection against the
	// configured backend and runs a probe query
	health := database.NewHealthChecker(factory)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := health.Check(r.Context()); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			custommiddleware.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"driver": factory.DriverName(),
			})
			return
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"driver": factory.DriverName(),
		})
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(factory, logger)

	// Initialize services
	catalogService := service.NewCatalogService(productRepo)
	adminService := service.NewAdminService(productRepo)

	// Initialize handlers and register routes
	transport.NewProductHandler(catalogService, logger).RegisterRoutes(router)
	transport.NewAdminHandler(adminService, logger).RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:  cfg,
		logger:  logger,
		factory: factory,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Connections are scoped per request, so there is no shared database
	// handle to release here.
	s.logger.Sync()
	return nil
}
