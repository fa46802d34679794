package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display the dashmorph version, Git commit, build date, and Go version",
	Run: func(cmd *cobra.Command, args []string) {
		// Set GoVersion to actual runtime if not set at build time
		goVer := GoVersion
		if goVer == "unknown" {
			goVer = runtime.Version()
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Dashmorph version: %s\n", Version)
		fmt.Fprintf(cmd.OutOrStdout(), "Git commit: %s\n", GitCommit)
		fmt.Fprintf(cmd.OutOrStdout(), "Build date: %s\n", BuildDate)
		fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", goVer)
	},
}
