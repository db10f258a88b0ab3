// Command cmdstatectl is the outward CLI for the commanded-state engine:
// it opens a command archive and prints the resulting interval table.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orbops/cmdstate/config"
)

var (
	configPathFlag string
	cfg            *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cmdstatectl",
	Short: "reconstruct commanded spacecraft state from an archive of commands",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPathFlag)
		if err != nil {
			return fmt.Errorf("cmdstatectl: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "cmdstate.yaml", "path to the engine config file")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(intervalCmd)
	rootCmd.AddCommand(reduceCmd)
	rootCmd.AddCommand(eventsCmd)
}
