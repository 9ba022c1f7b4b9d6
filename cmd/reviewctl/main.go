package main

import (
	"fmt"
	"os"

	"github.com/fadilmartias/review-composer/internal/config"
	"github.com/fadilmartias/review-composer/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reviewctl",
		Short:         "Offline tools for the review composer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			level := config.LoadAppConfig().LogLevel
			if verbose {
				level = "debug"
			}
			return logger.Init(level, "console")
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	root.AddCommand(newRenderCmd(), newSeedCmd(), newAssignmentsCmd())
	return root
}

func main() {
	defer logger.Sync()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
