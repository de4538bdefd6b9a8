package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fuga-catalog/catalog/internal/apiserver/database"
	"github.com/fuga-catalog/catalog/internal/catalog"
	"github.com/fuga-catalog/catalog/internal/common/config"
	"github.com/fuga-catalog/catalog/internal/storage"
	"github.com/fuga-catalog/catalog/pkg/logger"
	"github.com/fuga-catalog/catalog/pkg/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of cleanup",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cleanup version %s\n", version.Get())
		},
	}

	// rootCmd runs a single sweep and exits, suitable for cron.
	rootCmd = &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired orphaned cover art",
		Long:  `Runs one cover art cleanup sweep: permanently removes cover art whose deletion mark has passed and that no active product references`,
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

	store, err := database.NewStore(&cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer store.Close()

	provider, err := storage.NewProvider(&cfg.Storage, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize storage", zap.Error(err))
	}

	coverArtService := catalog.NewCoverArtService(store, provider, zapLogger)

	deleted, err := coverArtService.CleanupExpired(context.Background(), time.Now())
	if err != nil {
		zapLogger.Fatal("cleanup sweep failed", zap.Error(err))
	}

	zapLogger.Info("cleanup sweep finished", zap.Int("deleted", deleted))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
