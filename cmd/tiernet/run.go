// Run command: evaluate a scenario's transaction sequence.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tiernet/internal/scenario"
	"github.com/mesh-intelligence/tiernet/internal/sqlite"
	"github.com/mesh-intelligence/tiernet/pkg/network"
)

var flagNoStore bool

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Evaluate a scenario's transaction sequence and report fitness",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "do not read or write the run store")
}

// runResult is the machine-readable evaluation outcome.
type runResult struct {
	Scenario    string             `json:"scenario"`
	Steps       int                `json:"steps"`
	TotalCash   float64            `json:"total_cash"`
	TotalTax    float64            `json:"total_tax"`
	Fitness     float64            `json:"fitness"`
	Liabilities map[string]float64 `json:"liabilities"`
	Cached      bool               `json:"cached"`
}

func runRun(cmd *cobra.Command, args []string) error {
	doc, err := scenario.LoadFile(args[0])
	if err != nil {
		return err
	}

	var store *sqlite.Store
	if !flagNoStore {
		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		store, err = sqlite.Open(dataDir)
		if err != nil {
			return fmt.Errorf("open run store: %w", err)
		}
		defer store.Close()
	}

	digest := doc.Digest()
	if store != nil {
		cached, err := store.FindByDigest(digest)
		if err == nil {
			return printResult(runResult{
				Scenario:    cached.Scenario,
				Steps:       cached.Steps,
				TotalCash:   cached.TotalCash,
				TotalTax:    cached.TotalTax,
				Fitness:     cached.Fitness,
				Liabilities: cached.Liabilities,
				Cached:      true,
			})
		}
		if !errors.Is(err, sqlite.ErrRunNotFound) {
			return fmt.Errorf("consult run store: %w", err)
		}
	}

	net, err := network.InitializeNetwork(doc.Config())
	if err != nil {
		return err
	}

	seq := doc.Sequence()
	for i, tx := range seq {
		net, err = network.ApplyTransaction(net, tx)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, tx, err)
		}
		if !flagJSON {
			fmt.Printf("step %d: %s\n", i+1, tx)
			fmt.Printf("  total tax liability: %g\n", net.TotalTaxLiability())
			fmt.Printf("  total cash balance:  %g\n", net.TotalCash())
			fmt.Printf("  fitness:             %g\n", net.Fitness())
		}
	}

	result := runResult{
		Scenario:    doc.Name,
		Steps:       len(seq),
		TotalCash:   net.TotalCash(),
		TotalTax:    net.TotalTaxLiability(),
		Fitness:     net.Fitness(),
		Liabilities: net.TaxRecords(),
	}

	if store != nil {
		_, err := store.SaveRun(&sqlite.Run{
			Scenario:    doc.Name,
			Digest:      digest,
			Steps:       result.Steps,
			TotalCash:   result.TotalCash,
			TotalTax:    result.TotalTax,
			Fitness:     result.Fitness,
			Liabilities: result.Liabilities,
		})
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
	}

	return printResult(result)
}

// printResult writes the evaluation outcome in text or JSON form.
func printResult(r runResult) error {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	if r.Cached {
		fmt.Printf("scenario %q (cached, %d steps)\n", r.Scenario, r.Steps)
	} else {
		fmt.Printf("scenario %q (%d steps)\n", r.Scenario, r.Steps)
	}
	fmt.Printf("total cash balance:  %g\n", r.TotalCash)
	fmt.Printf("total tax liability: %g\n", r.TotalTax)
	fmt.Printf("fitness:             %g\n", r.Fitness)
	return nil
}
