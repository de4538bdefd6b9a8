package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fuga-catalog/catalog/internal/apiserver/database"
	"github.com/fuga-catalog/catalog/internal/apiserver/handler"
	"github.com/fuga-catalog/catalog/internal/apiserver/scheduler"
	"github.com/fuga-catalog/catalog/internal/auth/jwt"
	"github.com/fuga-catalog/catalog/internal/catalog"
	"github.com/fuga-catalog/catalog/internal/common/config"
	"github.com/fuga-catalog/catalog/internal/storage"
	"github.com/fuga-catalog/catalog/pkg/logger"
	"github.com/fuga-catalog/catalog/pkg/metrics"
	"github.com/fuga-catalog/catalog/pkg/version"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "apiserver",
		Short: "Music catalog API server",
		Long:  `Serves the music catalog REST API: products, artists, cover art and authentication`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "configs/apiserver.yaml", "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	zapLogger.Info("starting apiserver", zap.String("version", version.Get()))

	store, err := database.NewStore(&cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer store.Close()

	if cfg.SuperAdmin.Email != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdmin.Password), bcrypt.DefaultCost)
		if err != nil {
			zapLogger.Fatal("failed to hash super admin password", zap.Error(err))
		}
		if err := store.EnsureSeedData(context.Background(), cfg.SuperAdmin.Email, string(hash)); err != nil {
			zapLogger.Fatal("failed to seed database", zap.Error(err))
		}
	}

	provider, err := storage.NewProvider(&cfg.Storage, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize storage", zap.Error(err))
	}

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  cfg.JWT.Duration,
	})
	if err != nil {
		zapLogger.Fatal("failed to initialize JWT service", zap.Error(err))
	}

	authService := catalog.NewAuthService(store, jwtService, zapLogger)
	artistService := catalog.NewArtistService(store)
	contributionTypeService := catalog.NewContributionTypeService(store)
	coverArtService := catalog.NewCoverArtService(store, provider, zapLogger)
	productService := catalog.NewProductService(store, coverArtService, zapLogger)

	m := metrics.New(cfg.Metrics)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), m.HTTPMiddleware())

	h := handler.NewHandler(authService, artistService, contributionTypeService, coverArtService, productService, zapLogger)
	h.RegisterRoutes(r, jwtService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Cleanup.Enabled {
		cleanup := scheduler.NewCleanupScheduler(coverArtService, cfg.Cleanup.Interval, m, zapLogger)
		cleanup.Start(ctx)
		defer cleanup.Stop()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		zapLogger.Info("listening", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("shutdown error", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
