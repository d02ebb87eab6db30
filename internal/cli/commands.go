package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"abik/internal/app"
)

// errFailed is returned once the failure was already reported
var errFailed = errors.New("operation did not complete")

func extractCmd(flags *globalFlags) *cobra.Command {
	var noDecompress bool

	c := &cobra.Command{
		Use:   "extract IMAGE",
		Short: "Extract a boot or vendor_boot image into a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(flags)
			if err != nil {
				return err
			}
			defer e.close()

			decompress := e.cfg.DecompressRamdisk && !noDecompress
			return runHeadless(cmd.Context(), e, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(k *app.Kitchen) {
				k.Extract(args[0], decompress)
			})
		},
	}

	c.Flags().BoolVar(&noDecompress, "no-decompress", false, "keep the ramdisk compressed")
	return c
}

func buildCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "build [PROJECT]",
		Short: "Build a project back into an image (prompts when no project is named)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(flags)
			if err != nil {
				return err
			}
			defer e.close()

			return runHeadless(cmd.Context(), e, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(k *app.Kitchen) {
				if len(args) == 1 {
					k.BuildProject(args[0])
					return
				}
				k.Build()
			})
		},
	}
}

func cleanCmd(flags *globalFlags) *cobra.Command {
	var all bool

	c := &cobra.Command{
		Use:   "clean [NAME...]",
		Short: "Remove projects and files from the working directory (prompts when nothing is named)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(flags)
			if err != nil {
				return err
			}
			defer e.close()

			return runHeadless(cmd.Context(), e, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(k *app.Kitchen) {
				if all || len(args) > 0 {
					k.CleanNames(all, args...)
					return
				}
				k.Clean()
			})
		},
	}

	c.Flags().BoolVar(&all, "all", false, "remove everything in the working directory")
	return c
}
