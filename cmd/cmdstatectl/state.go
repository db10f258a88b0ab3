package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orbops/cmdstate"
)

var stateKeysFlag string

var stateCmd = &cobra.Command{
	Use:   "state <date>",
	Short: "print the initial commanded state as of a date",
	Long: `state resolves the initial state as of a date by searching the
expanding lookback ladder configured in the engine config.

Examples:
  cmdstatectl state 2020:001:00:00:00.000 --keys hetg,pcad_mode`,
	Args: cobra.ExactArgs(1),
	RunE: runState,
}

func init() {
	stateCmd.Flags().StringVar(&stateKeysFlag, "keys", "", "comma-separated state keys (required)")
}

func runState(cmd *cobra.Command, args []string) error {
	keys := splitKeys(stateKeysFlag)
	if len(keys) == 0 {
		return fmt.Errorf("cmdstatectl: --keys is required")
	}

	eng := cmdstate.Open(cfg.ArchiveDSN)
	state0, err := eng.GetState0(args[0], keys, cfg.LookbackDays)
	if err != nil {
		return err
	}

	for _, k := range keys {
		fmt.Printf("%s = %v\n", k, state0[k])
	}
	return nil
}

func splitKeys(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
