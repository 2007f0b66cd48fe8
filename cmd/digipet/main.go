package main

import (
	"fmt"
	"os"

	"github.com/cbodonnell/digipet/pkg/log"
	"github.com/cbodonnell/digipet/pkg/version"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:           "digipet",
	Short:         "Digipet, the digital pet game",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("log-level") {
			return nil
		}
		return setupLogger(logLevel)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the digipet version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (error, warn, info, debug, trace)")
	rootCmd.AddCommand(versionCmd)
}

func setupLogger(level string) error {
	parsedLogLevel, err := log.ParseLogLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	log.SetDefaultLogger(log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
