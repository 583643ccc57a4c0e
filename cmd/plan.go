package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cloneplan/config"
	"cloneplan/internal/plan"
)

var (
	planIn  string
	planOut string
)

// planCmd searches for a multi-step cloning strategy building the target
// assembly described in a YAML spec
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a multi-step cloning strategy from a YAML spec",
	Long: `Search for a sequence of digest, ligate and Golden Gate steps that
assembles the spec's target construct from its vector and inserts.

The spec names the constructs, the target part order and junction
requirements, and constraints like enzyme allow/deny lists. The result is
a JSON plan: ordered steps with their enzymes and diagnostics, a score,
and a feasible flag with a reason when no route was found.`,
	Run: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVarP(&planIn, "in", "i", "", "YAML cloning spec")
	planCmd.Flags().StringVarP(&planOut, "out", "o", "-", "where to write the JSON plan ('-' for stdout)")

	planCmd.MarkFlagRequired("in")
}

func runPlan(cmd *cobra.Command, args []string) {
	spec, err := plan.ReadSpec(planIn)
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	planner := plan.New(enzymeDB(), config.New())
	result, err := planner.Plan(spec)
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	if planOut == "-" {
		fmt.Println(string(b))
	} else if err := os.WriteFile(planOut, b, 0644); err != nil {
		stderr.Fatalf("%v", err)
	}

	if !result.Feasible {
		stderr.Fatalf("no feasible plan: %s", result.Reason)
	}
}
