package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/flock-console/internal/config"
	"github.com/yukikurage/flock-console/internal/constants"
	"github.com/yukikurage/flock-console/internal/database"
	"github.com/yukikurage/flock-console/internal/handlers"
	"github.com/yukikurage/flock-console/internal/logging"
	"github.com/yukikurage/flock-console/internal/querycache"
	"github.com/yukikurage/flock-console/internal/services"
	"github.com/yukikurage/flock-console/internal/sessionstore"
	"github.com/yukikurage/flock-console/internal/upstream"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Init(logging.Config{Format: cfg.LogFormat, Level: cfg.LogLevel})

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database when sessions are stored there
	var db *gorm.DB
	if cfg.SessionBackend == config.SessionBackendGorm {
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
	}

	store, err := sessionstore.New(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.SessionBackend).Msg("Failed to create session store")
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger())
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize services
	api := upstream.NewClient(cfg.APIBaseURL, cfg.UpstreamTimeout)
	cache := querycache.New(querycache.Options{
		StaleTime:  cfg.QueryStaleTime,
		Retry:      cfg.QueryRetry,
		RetryDelay: cfg.QueryRetryDelay,
	})
	orgService := services.NewOrganizationService(api, cache)
	branchService := services.NewBranchService(orgService, cache)
	authService := services.NewAuthService(api, cache)
	recordService := services.NewRecordService(api, cache)

	// Initialize handlers
	routes := handlers.Routes{
		Auth:         handlers.NewAuthHandler(authService),
		Organization: handlers.NewOrganizationHandler(orgService),
		Entitlement:  handlers.NewEntitlementHandler(orgService, cfg.UpgradePath),
		Branch:       handlers.NewBranchHandler(branchService),
		Record:       handlers.NewRecordHandler(recordService, branchService),
		Entitlements: orgService,
		UpgradePath:  cfg.UpgradePath,
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		if db != nil {
			if err := database.Ping(c.Request.Context(), db); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "degraded",
					"message": "Session database is unreachable",
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Flock console is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	routes.Register(r.Group("/api"))

	// Start server
	log.Info().Str("addr", cfg.ListenAddr).Str("upstream", cfg.APIBaseURL).Msg("Server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
