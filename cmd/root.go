package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pez-cli/pez/pkg/config"
	"github.com/pez-cli/pez/pkg/logger"
)

var (
	// Global flags
	flagConfigFile = ""
	flagLogFile    = ""
	flagVerbosity  = 0

	// Global vars
	initialized = false
)

var rootCmd = &cobra.Command{
	Use:   "pez",
	Short: "Build and inspect the expressions and commands of an application descriptor",
	Long: `pez builds the typed command, argument and regular expression model described by an
XML application descriptor and reports any configuration defects it finds.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "Config file (yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagLogFile, "log", "l", "", "Log file")
	rootCmd.PersistentFlags().CountVarP(&flagVerbosity, "verbose", "v", "Verbose level")
}

func initCore() {
	if initialized {
		return
	}

	if err := config.Init(flagConfigFile); err != nil {
		logrus.WithError(err).Fatal("Failed initializing config")
	}

	logFile := config.Config.Logging.File
	if flagLogFile != "" {
		logFile = flagLogFile
	}

	if err := logger.Init(logger.Options{
		Level:      config.Config.Logging.Level,
		Verbosity:  flagVerbosity,
		File:       logFile,
		MaxSize:    config.Config.Logging.MaxSize,
		MaxBackups: config.Config.Logging.MaxBackups,
		MaxAge:     config.Config.Logging.MaxAge,
	}); err != nil {
		logrus.WithError(err).Fatal("Failed initializing logger")
	}

	config.ShowUsing()
	initialized = true
}
