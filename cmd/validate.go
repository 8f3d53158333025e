package cmd

import (
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pez-cli/pez/pkg/cfgerr"
	"github.com/pez-cli/pez/pkg/config"
	"github.com/pez-cli/pez/pkg/descriptor"
	"github.com/pez-cli/pez/pkg/logger"
)

var (
	flagStrictExamples bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [PATH]",
	Short: "Validate a descriptor, or every descriptor in a directory",
	Long: `This command builds every descriptor found at PATH and reports configuration errors.
It also warns about expressions whose example text is not matched by the expression itself.`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initCore()

		log := logger.GetLogger("validate")

		paths, err := descriptor.Find(args[0])
		if err != nil {
			log.WithError(err).Fatalf("Failed finding descriptors in: %q", args[0])
		}

		failed := 0
		for _, path := range paths {
			d, err := descriptor.Load(path, config.Config)
			if err != nil {
				failed++
				if cfgerr.Is(err) {
					log.WithError(err).Errorf("Invalid descriptor: %s", path)
				} else {
					log.WithError(err).Errorf("Failed loading descriptor: %s", path)
				}
				continue
			}

			mismatches, err := exampleMismatches(d.Expressions)
			if err != nil {
				failed++
				log.WithError(err).Errorf("Failed checking examples: %s", path)
				continue
			}
			if len(mismatches) > 0 {
				log.Warnf("%s: examples not matched by their expression: %s", path, strings.Join(mismatches, ", "))
				if flagStrictExamples {
					failed++
					continue
				}
			}

			log.Infof("Valid: %s (%s expressions, %s commands)", path,
				humanize.Comma(int64(len(d.Expressions))), humanize.Comma(int64(len(d.Commands))))
		}

		log.Infof("Validated %s descriptors, %s failures",
			humanize.Comma(int64(len(paths))), humanize.Comma(int64(failed)))
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&flagStrictExamples, "strict-examples", false, "Treat examples not matched by their expression as failures")
}
