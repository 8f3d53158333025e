package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pez-cli/pez/pkg/runtime"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints the version, commit hash, and build date for the pez binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		writeVersion(cmd.OutOrStdout())
	},
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.Version = runtime.Version
	rootCmd.AddCommand(versionCmd)
}

func writeVersion(w io.Writer) {
	fmt.Fprintf(w, "Version:     %s\n", runtime.Version)
	fmt.Fprintf(w, "Commit:      %s\n", runtime.GitCommit)

	if runtime.Timestamp == "" || runtime.Timestamp == "unknown" {
		return
	}
	if unixTime, err := strconv.ParseInt(runtime.Timestamp, 10, 64); err == nil {
		fmt.Fprintf(w, "Build Time:  %s\n", time.Unix(unixTime, 0).UTC().Format(time.RFC3339))
	} else {
		fmt.Fprintf(w, "Build Time:  %s (raw)\n", runtime.Timestamp)
	}
}
