package main

import (
	"fmt"
	"os"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "sectiondeck",
	Short:         "Present a deck of full-screen sections",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long:          `sectiondeck shows a deck of full-screen sections, either as a paged
deck that moves one section per gesture or as a vertical page that scrolls
freely. It runs in an SDL window or in the terminal.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $SECTIONDECK_CONFIG or sectiondeck.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "application log level: debug, info, warn or error")
}

func main() {
	defer sectiondeck.CloseLogger()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		sectiondeck.CloseLogger()
		os.Exit(1)
	}
}
