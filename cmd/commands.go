package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pez-cli/pez/pkg/logger"
)

var commandsCmd = &cobra.Command{
	Use:   "commands [DESCRIPTOR]",
	Short: "List the concrete commands of a descriptor",
	Long:  `This command builds the concrete commands of a descriptor with their inherited and resolved arguments.`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initCore()

		log := logger.GetLogger("commands")

		d := loadDescriptor(log, args[0])
		if len(d.Commands) == 0 {
			log.Warnf("No commands defined in: %q", args[0])
			return
		}

		for _, c := range d.Commands {
			writeCommand(cmd.OutOrStdout(), c)
		}
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
