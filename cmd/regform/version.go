package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				printf(out, "%s\n", version)
				return
			}
			printf(out, "regform %s\n", version)
			printf(out, "  Commit:     %s\n", commit)
			printf(out, "  Built:      %s\n", date)
			printf(out, "  Go version: %s\n", runtime.Version())
			printf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}
