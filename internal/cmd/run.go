package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sweetdelights/backend/internal/config"
	"github.com/sweetdelights/backend/internal/database"
	"github.com/sweetdelights/backend/internal/events"
	"github.com/sweetdelights/backend/internal/logging"
	"github.com/sweetdelights/backend/internal/server"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Sweet Delights API server",
	Long: `Start the API server which provides:
- REST API for the sweet catalog, cart and checkout
- Order history grouped per customer and day
- Customer analytics for the admin dashboard`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	log := logging.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("database connected")

	var broker *events.Broker
	if cfg.Events.Enabled {
		broker, err = events.NewBroker(&cfg.Events)
		if err != nil {
			return fmt.Errorf("failed to connect to message broker: %w", err)
		}
		defer broker.Close()

		if err := broker.SetupTopology(); err != nil {
			return fmt.Errorf("failed to set up broker topology: %w", err)
		}
		if err := broker.StartStockAlertConsumer(); err != nil {
			return fmt.Errorf("failed to start stock alert consumer: %w", err)
		}
		log.Info("message broker connected")
	}

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create uploads dir: %w", err)
	}

	srv := server.NewServer(db, cfg, broker)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithField("addr", cfg.Server.Addr).Info("server starting")
	if err := srv.Start(ctx, cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	log.Info("server exited")
	return nil
}
