// cmd/shopctl/commands/worker.go
package commands

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javajoker/orders-backend/internal/queue"
	"github.com/javajoker/orders-backend/internal/services"
)

// workerCmd delivers notification emails from the shared queue
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the notification worker until interrupted",
	Long: `Run the notification worker until interrupted.

The worker needs REDIS_HOST: the in-memory queue is not shared between processes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if !cfg.Redis.Enabled() {
			return errors.New("REDIS_HOST is not set; a standalone worker needs the redis queue")
		}

		jobs, err := queue.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer jobs.Close()

		worker := services.NewNotificationWorker(db, jobs, services.NewMailer(cfg.Email))
		return worker.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
