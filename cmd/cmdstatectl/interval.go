package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/orbops/cmdstate"
	"github.com/orbops/cmdstate/fold"
)

var intervalKeysFlag string

var intervalCmd = &cobra.Command{
	Use:   "interval <start> <stop>",
	Short: "print the commanded-state interval table over [start, stop)",
	Long: `interval resolves state0 as of start, folds the matching commands,
and prints one row per interval of unchanged state.

Examples:
  cmdstatectl interval 2020:001:00:00:00.000 2020:010:00:00:00.000 --keys hetg,si_mode`,
	Args: cobra.ExactArgs(2),
	RunE: runInterval,
}

func init() {
	intervalCmd.Flags().StringVar(&intervalKeysFlag, "keys", "", "comma-separated state keys (required)")
}

func runInterval(cmd *cobra.Command, args []string) error {
	keys := splitKeys(intervalKeysFlag)
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
	printTable(table)
	return nil
}

func printTable(table *fold.IntervalTable) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprint(w, "datestart\tdatestop")
	for _, k := range table.Keys {
		fmt.Fprintf(w, "\t%s", k)
	}
	fmt.Fprintln(w)

	for i := 0; i < table.Len(); i++ {
		fmt.Fprintf(w, "%s\t%s", table.Datestart[i], table.Datestop[i])
		for _, k := range table.Keys {
			v, _ := table.Get(i, k)
			fmt.Fprintf(w, "\t%v", v)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
