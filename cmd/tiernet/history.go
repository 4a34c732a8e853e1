// History command: list evaluated runs from the store.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tiernet/internal/sqlite"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List evaluated runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		store, err := sqlite.Open(dataDir)
		if err != nil {
			return fmt.Errorf("open run store: %w", err)
		}
		defer store.Close()

		runs, err := store.ListRuns(flagLimit)
		if err != nil {
			return err
		}

		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(runs)
		}

		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}
		for _, run := range runs {
			fmt.Printf("%s  %-20s steps=%-3d fitness=%-14g tax=%-14g %s\n",
				run.CreatedAt.Format(time.RFC3339), run.Scenario,
				run.Steps, run.Fitness, run.TotalTax, run.RunID)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "maximum runs to list (0 for all)")
}
