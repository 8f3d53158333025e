package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pez-cli/pez/pkg/logger"
	"github.com/pez-cli/pez/pkg/regex"
)

var matchCmd = &cobra.Command{
	Use:   "match [DESCRIPTOR] [EXPRESSION] [TEXT]",
	Short: "Match text against an expression of a descriptor",
	Long: `This command matches text against a named expression and prints the named capture groups.
It exits with status 1 when the text does not match.`,

	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		initCore()

		log := logger.GetLogger("match")

		d := loadDescriptor(log, args[0])

		ev, ok := d.Expressions[args[1]]
		if !ok {
			log.Fatalf("No expression named: %q", args[1])
		}

		captures, matched, err := regex.Match(args[2], ev.Pattern)
		if err != nil {
			log.WithError(err).Fatal("Failed matching text")
		}
		if !matched {
			log.Warnf("%q does not match %s: %s", args[2], ev.Name, ev.Source())
			os.Exit(1)
		}

		log.Debugf("%q matches %s", args[2], ev.Name)
		writeCaptures(cmd.OutOrStdout(), captures)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}
