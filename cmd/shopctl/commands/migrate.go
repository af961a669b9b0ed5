// cmd/shopctl/commands/migrate.go
package commands

import (
	"github.com/spf13/cobra"

	"github.com/javajoker/orders-backend/internal/database"
)

// migrateCmd brings the schema up to date
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.RunMigrations(db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
