package main

import (
	"encoding/json"
	"fmt"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/prefs"
	"github.com/spf13/cobra"
)

var consentCmd = &cobra.Command{
	Use:   "consent",
	Short: "Inspect or reset the stored cookie choice",
}

var consentShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored cookie choice as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		c, ok, err := prefs.LoadConsent(cmd.Context(), store)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "no choice stored; the banner will be shown")
			return nil
		}

		out, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var consentResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored cookie choice so the banner shows again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := prefs.ClearConsent(cmd.Context(), store); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cookie choice cleared")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sectiondeck %s\n", Version)
	},
}

func init() {
	consentCmd.AddCommand(consentShowCmd, consentResetCmd)
	rootCmd.AddCommand(consentCmd, versionCmd)
}
