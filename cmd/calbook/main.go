package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/fx"

	"github.com/brizzai/calbook/internal/auth"
	"github.com/brizzai/calbook/internal/booking"
	"github.com/brizzai/calbook/internal/config"
	"github.com/brizzai/calbook/internal/gcal"
	"github.com/brizzai/calbook/internal/logger"
	"github.com/brizzai/calbook/internal/server"
	"github.com/brizzai/calbook/internal/token"
)

func main() {
	Execute()
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "calbook",
	Short: "Appointment booking service backed by Google Calendar",
	Long: `calbook exposes a small HTTP API to check and book 30-minute
appointments against a single shared Google Calendar, using the OAuth2
authorization-code flow for access.`,
	RunE: runServer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	config.InitFlags()
	rootCmd.Flags().AddFlagSet(pflag.CommandLine)
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.InitLogger(&cfg.Logging); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var srv *server.Server
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		auth.Module,
		token.Module,
		gcal.Module,
		booking.Module,
		server.Module,
		fx.Populate(&srv),
	)

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	// Blocks until the signal context is cancelled.
	return srv.Start(ctx)
}
