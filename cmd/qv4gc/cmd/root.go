package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/neuroradiology/qtdeclarative/engine"
)

var (
	// Global flags
	verbose     bool
	aggressive  bool

	// eng is the shared engine instance every subcommand's RunE operates
	// against, built in PersistentPreRunE once flags are parsed.
	eng *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "qv4gc",
	Short: "Inspect this module's GC and shape engine",
	Long: `qv4gc drives the pagealloc/heap/gc/shape engine from the command
line: allocate objects, force collections, dump shape transitions, and
raise errobj errors, to exercise the engine without embedding it in a
larger program.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := engine.LoadConfig()
		if err != nil {
			return err
		}
		if verbose {
			cfg.Stats = true
		}
		cfg.AggressiveGC = cfg.AggressiveGC || aggressive

		e, err := engine.New(cfg)
		if err != nil {
			return err
		}
		eng = e
		return nil
	},
}

// Execute runs the root command, exiting the process with status 1 on
// error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable stats logging")
	rootCmd.PersistentFlags().BoolVar(&aggressive, "aggressive-gc", false, "force a collection before every allocation")
}
