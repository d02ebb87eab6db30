package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every command
type globalFlags struct {
	workDir    string
	configPath string
	debug      bool
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:          "abik",
		Short:        "ABIK - boot image kitchen",
		Long:         "Extract boot images into projects, build projects back into images and clean up old projects.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.workDir, "workdir", "w", "", "working directory holding the projects (overrides the config)")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/abik/config.toml)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable verbose logging to .abik/logs/abik.log next to the config")

	cmd.AddCommand(extractCmd(flags))
	cmd.AddCommand(buildCmd(flags))
	cmd.AddCommand(cleanCmd(flags))
	cmd.AddCommand(versionCmd())
	return cmd
}
