package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pez-cli/pez/pkg/logger"
	"github.com/pez-cli/pez/pkg/query"
)

var (
	flagWhere []string
)

var expressionsCmd = &cobra.Command{
	Use:   "expressions [DESCRIPTOR]",
	Short: "List the evaluated regular expressions of a descriptor",
	Long: `This command builds every expression of a descriptor, resolving links between them, and
prints the composed regular expression, named capture groups and example text of each.
Use --where to select expressions with a boolean query, e.g. --where 'HasGroup("year")'.`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initCore()

		log := logger.GetLogger("expressions")

		var queries []*query.CompiledQuery
		for _, text := range flagWhere {
			q, err := query.Compile(text)
			if err != nil {
				log.WithError(err).Fatal("Failed compiling query")
			}
			queries = append(queries, q)
		}

		d := loadDescriptor(log, args[0])

		names, err := query.Filter(queries, d.Expressions)
		if err != nil {
			log.WithError(err).Fatal("Failed filtering expressions")
		}

		for _, name := range names {
			writeExpression(cmd.OutOrStdout(), d.Expressions[name])
		}

		log.Infof("Listed %s of %s expressions", humanize.Comma(int64(len(names))),
			humanize.Comma(int64(len(d.Expressions))))
	},
}

func init() {
	rootCmd.AddCommand(expressionsCmd)

	expressionsCmd.Flags().StringArrayVar(&flagWhere, "where", nil, "Only list expressions matching this query (repeatable)")
}
