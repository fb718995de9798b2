package gymbro

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/service"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show or change the cached user profile",
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile, tier and where records are saved",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			p := e.session.Profile
			tier := "free"
			if p.IsPaid {
				tier = "paid"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User: %s\n", p.ID)
			if p.Email != "" {
				fmt.Fprintf(out, "Email: %s\n", p.Email)
			}
			fmt.Fprintf(out, "Tier: %s\n", tier)
			fmt.Fprintf(out, "Backend configured: %t\n", e.conf.RemoteConfigured())
			fmt.Fprintf(out, "Storage: %s\n", storageLabel(e.session))
			return nil
		})
	},
}

var accountUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Mark the profile as paid (mock checkout, no payment taken)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			profile, err := service.MockCheckout(e.ctx, e.session)
			if err != nil {
				return err
			}
			e.session.Profile = profile
			fmt.Fprintf(cmd.OutOrStdout(), "Upgraded %s (storage: %s)\n", profile.ID, storageLabel(e.session))
			return nil
		})
	},
}

var accountLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Adopt the backend user from the configured access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			profile, err := service.AdoptRemoteIdentity(e.ctx, e.session)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Linked profile to %s (%s)\n", profile.ID, profile.Email)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountShowCmd, accountUpgradeCmd, accountLinkCmd)
}
