package gymbro

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect gymbro configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		source := conf.Path
		if source == "" {
			source = "(defaults and environment)"
		}
		rows := [][2]string{
			{"file", source},
			{"remote.url", conf.Remote.URL},
			{"remote.anonKey", mask(conf.Remote.AnonKey)},
			{"remote.accessToken", mask(conf.Remote.AccessToken)},
			{"log.level", conf.Log.Level},
			{"lookup.foodBaseURL", conf.Lookup.FoodBaseURL},
			{"lookup.exerciseBaseURL", conf.Lookup.ExerciseBaseURL},
			{"lookup.cacheMB", fmt.Sprint(conf.Lookup.CacheMB)},
			{"serve.addr", conf.Serve.Addr},
			{"serve.origin", conf.Serve.Origin},
			{"serve.allowedOrigins", strings.Join(conf.Serve.AllowedOrigins, ",")},
			{"offline.version", conf.Offline.Version},
			{"offline.offlineURL", conf.Offline.OfflineURL},
			{"offline.precache", strings.Join(conf.Offline.Precache, ",")},
			{"metrics.enabled", fmt.Sprint(conf.Metrics.Enabled)},
		}
		fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
		for _, r := range rows {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r[0], r[1])
		}
		if !conf.RemoteConfigured() {
			fmt.Fprintln(cmd.OutOrStdout(), "Backend not configured: running local-only")
		}
		return nil
	},
}

// mask keeps secrets out of terminal scrollback.
func mask(secret string) string {
	secret = strings.TrimSpace(secret)
	switch {
	case secret == "":
		return ""
	case len(secret) <= 8:
		return "****"
	default:
		return secret[:4] + "…" + secret[len(secret)-4:]
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}
