package cmd

import (
	"os"

	log "github.com/jensneuse/abstractlogger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var debug bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "federation",
	Short: "federation is a toolset for working with graphql query documents",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func logger() log.Logger {
	config := zap.NewProductionConfig()
	if debug {
		config = zap.NewDevelopmentConfig()
	}
	zapLogger, err := config.Build()
	if err != nil {
		panic(err)
	}

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewZapLogger(zapLogger, level)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}
