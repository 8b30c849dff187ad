package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version, VCS revision and Go version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString(readRevision()))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionString renders "lexiroute <version> (<revision>, <go version>)". The
// revision is omitted when unknown.
func versionString(revision string) string {
	if revision == "" {
		return fmt.Sprintf("lexiroute %s (%s)", version, runtime.Version())
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	return fmt.Sprintf("lexiroute %s (%s, %s)", version, revision, runtime.Version())
}

func readRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
