// cmd/shopctl/commands/import.go
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javajoker/orders-backend/internal/services"
)

var (
	// Import flags
	importUserID uint
	importFile   string
	importURL    string
)

// importCmd loads a catalog feed on behalf of a partner
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a partner catalog feed",
	Long: `Import a partner catalog feed, replacing every listing of the feed's shop.

Examples:
  shopctl import --user 3 --file data/shop1.yaml
  shopctl import --user 3 --url https://example.com/shop1.yaml
  shopctl import --user 3 --url s3://feeds/shop1.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().UintVar(&importUserID, "user", 0, "Partner account id that owns the shop")
	importCmd.Flags().StringVar(&importFile, "file", "", "Path to a local feed file")
	importCmd.Flags().StringVar(&importURL, "url", "", "Feed URL (http, https or s3)")
	importCmd.MarkFlagRequired("user")
	importCmd.MarkFlagsMutuallyExclusive("file", "url")
	importCmd.MarkFlagsOneRequired("file", "url")
}

func runImport(cmd *cobra.Command) error {
	ctx := cmd.Context()

	storage, err := services.NewStorageService(cfg.AWS)
	if err != nil {
		return err
	}
	catalog := services.NewCatalogService(db, services.NewFeedFetcher(cfg.Import, storage))

	var result *services.ImportResult
	if importURL != "" {
		result, err = catalog.ImportFromURL(ctx, importUserID, &services.ImportFeedRequest{URL: importURL})
	} else {
		result, err = importLocalFile(cmd, catalog)
	}
	if err != nil {
		var feedErr *services.FeedError
		if errors.As(err, &feedErr) {
			return fmt.Errorf("feed rejected: %s", feedErr.Reason)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "shop %d: %d categories, %d listings, %d parameter values\n",
		result.ShopID, result.Categories, result.ProductInfos, result.Parameters)
	return nil
}

func importLocalFile(cmd *cobra.Command, catalog *services.CatalogService) (*services.ImportResult, error) {
	f, err := os.Open(importFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}
	defer f.Close()

	feed, err := services.ParseFeed(f)
	if err != nil {
		return nil, err
	}
	return catalog.Import(cmd.Context(), importUserID, feed, "")
}
