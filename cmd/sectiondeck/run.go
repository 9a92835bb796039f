package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/app"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/platform/sdlhost"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/platform/terminal"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the deck",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hostName, _ := cmd.Flags().GetString("host")
		lang, _ := cmd.Flags().GetString("lang")

		if hostName != "sdl" && hostName != "terminal" {
			return fmt.Errorf("unknown host %q (want sdl or terminal)", hostName)
		}

		// The terminal host owns stdout.
		cfg, err := loadConfig(hostName != "terminal")
		if err != nil {
			return err
		}
		logger := sectiondeck.GetLogger()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		env, err := app.NewEnv(ctx, cfg, store, logger)
		if err != nil {
			return err
		}
		if lang != "" {
			if err := env.Text.SetLanguage(ctx, lang); err != nil {
				return err
			}
		}

		logger.Info("Starting deck", "host", hostName, "layout", cfg.Layout, "sections", len(cfg.Panels))

		if hostName == "terminal" {
			return app.Run(ctx, terminal.New(terminal.Options{}), env)
		}
		return runSDL(ctx, env)
	},
}

func runSDL(ctx context.Context, env *app.Env) error {
	host, err := sdlhost.Init(env.Config, sdlhost.Options{})
	if err != nil {
		return withHostHint(err)
	}
	defer host.Close()

	// SDL has to stay on the main goroutine; the signal only flips the
	// host's running flag and the frame loop returns on its own.
	go func() {
		<-ctx.Done()
		host.Stop()
	}()

	err = app.Run(ctx, host, env)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// withHostHint points at the terminal host when the display could not be
// brought up.
func withHostHint(err error) error {
	if !sectiondeck.IsHostError(err) {
		return err
	}
	return fmt.Errorf("%w (no display? try --host terminal)", err)
}

func init() {
	// SDL calls must come from the thread that initialized it.
	runtime.LockOSThread()

	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("host", "sdl", "where to show the deck: sdl or terminal")
	runCmd.Flags().String("lang", "", "language to show, overriding the saved choice (en, es)")
}
