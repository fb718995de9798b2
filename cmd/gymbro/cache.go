package gymbro

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/di"
	"github.com/saadjs/gymbro/internal/offline"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the offline response cache used by serve",
}

func withOfflineCache(cmd *cobra.Command, run func(*offline.Cache) error) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd, conf)
	return withDB(func(sqldb *sql.DB) error {
		cache, err := di.InitOfflineCache(conf, sqldb, logger)
		if err != nil {
			return err
		}
		return run(cache)
	})
}

var cacheInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Precache the app shell and drop outdated caches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withOfflineCache(cmd, func(c *offline.Cache) error {
			n, err := c.Install(cmd.Context())
			if err != nil {
				return err
			}
			deleted, err := c.Activate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Precached %d asset(s), deleted %d old cache(s)\n", n, len(deleted))
			return nil
		})
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached responses per cache version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withOfflineCache(cmd, func(c *offline.Cache) error {
			stats, err := c.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "CACHE\tENTRIES\tCURRENT")
			for _, s := range stats {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%t\n", s.Name, s.Entries, s.Current)
			}
			return nil
		})
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached response",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withOfflineCache(cmd, func(c *offline.Cache) error {
			n, err := c.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d cached response(s)\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheInstallCmd, cacheStatsCmd, cacheClearCmd)
}
