// cmd/shopctl/commands/root.go
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/javajoker/orders-backend/internal/config"
	"github.com/javajoker/orders-backend/internal/database"
)

var (
	// Global flags
	logLevel string

	cfg *config.Config
	db  *gorm.DB
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Operator tool for the orders backend",
	Long: `shopctl runs maintenance tasks against the orders backend database.

Configuration is read from the same environment variables (and .env file) as the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		config.ConfigureLogging(cfg)

		db, err = database.Initialize(cfg.Database)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			database.Close(db)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL")
}
