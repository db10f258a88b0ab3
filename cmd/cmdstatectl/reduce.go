package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orbops/cmdstate"
)

var reduceKeysFlag string

var reduceCmd = &cobra.Command{
	Use:   "reduce <start> <stop>",
	Short: "print the interval table collapsed to rows where keys change",
	Long: `reduce runs the same fold as interval, then drops every row where
none of --keys differs from the previous row (row 0 always survives).

Examples:
  cmdstatectl reduce 2020:001:00:00:00.000 2020:010:00:00:00.000 --keys obsid`,
	Args: cobra.ExactArgs(2),
	RunE: runReduce,
}

func init() {
	reduceCmd.Flags().StringVar(&reduceKeysFlag, "keys", "", "comma-separated state keys (required)")
}

func runReduce(cmd *cobra.Command, args []string) error {
	keys := splitKeys(reduceKeysFlag)
	if len(keys) == 0 {
		return fmt.Errorf("cmdstatectl: --keys is required")
	}

	eng := cmdstate.Open(cfg.ArchiveDSN)
	table, warnings, err := eng.States(args[0], args[1], keys)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	printTable(cmdstate.ReduceStates(table, keys))
	return nil
}
