// ABOUTME: CLI commands for inspecting and clearing the embedding cache
// ABOUTME: The cache is a local SQLite database keyed by text hash and model
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"docsum/internal/config"
	"docsum/internal/storage/sqlite"
)

// NewCacheCmd creates the cache command group.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the embedding cache",
	}

	cmd.AddCommand(newCacheStatsCmd())
	cmd.AddCommand(newCachePurgeCmd())

	return cmd
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cached embedding count and location",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cache, err := openCache()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			count, err := cache.Count()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cache path: %s\n", db.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "Cached embeddings: %d\n", count)
			return nil
		},
	}
}

func newCachePurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete all cached embeddings",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cache, err := openCache()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			removed, err := cache.Purge()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached embeddings\n", removed)
			return nil
		},
	}
}

func openCache() (*sqlite.DB, *sqlite.EmbeddingCache, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	path := cfg.CachePath
	if path == "" {
		path = sqlite.DefaultCachePath()
	}
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return db, sqlite.NewEmbeddingCache(db), nil
}
