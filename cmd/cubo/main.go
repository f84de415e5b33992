package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	strict     bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "cubo",
		Short: "Load, merge and inspect Cubo data objects",
		Long: `cubo resolves data sources the way Cubo data objects do.

A source is either a local JSON file or a remote locator (scheme:rest,
e.g. https://example.test/site.json or s3://bucket/site.json). Sources that
cannot be read or parsed resolve to an empty object unless --strict is set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file (default ./cubo.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&flags.strict, "strict", false, "fail on unresolvable sources instead of using empty data")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(
		loadCmd(flags),
		getCmd(flags),
		versionCmd(),
	)

	return rootCmd
}
