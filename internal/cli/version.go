package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"
)

// Version is set at build time
var Version = "0.1.0"

func versionCmd() *cobra.Command {
	var check bool

	c := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "abik version %s\n", Version)
			if check {
				checkUpdate(cmd, Version)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return c
}

func checkUpdate(cmd *cobra.Command, currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "abik-project",
		Repository: "abik",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Could not check for updates: %v\n", err)
		return
	}

	if res.Outdated {
		fmt.Fprintf(cmd.OutOrStdout(), "A new version is available: %s (you have %s)\n", res.Current, currentVer)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "You are using the latest version: %s\n", currentVer)
	}
}
