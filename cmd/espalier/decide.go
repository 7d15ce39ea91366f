package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
)

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Select the next operator by minimum cost",
	Long:  `Runs the decision pipeline from the given state and prints the chosen operator with the full candidate table.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDecide(cmd); err != nil {
			fmt.Printf("Decision failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(decideCmd)
	decideCmd.Flags().String("phase", string(domain.InitialPhase), "Current phase P1-P5")
	decideCmd.Flags().String("scale", config.ScaleFine, "Temporal scale")
	decideCmd.Flags().String("history", "", "Comma-separated list of already-applied operators")
	decideCmd.Flags().Int("inputs", 0, "Number of inputs for a Fusion candidate")
	decideCmd.Flags().Bool("json", false, "Output as JSON")
}

func runDecide(cmd *cobra.Command) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}

	phaseFlag, _ := cmd.Flags().GetString("phase")
	phase := domain.Phase(phaseFlag)
	if !phase.Valid() {
		return fmt.Errorf("unknown phase %q", phaseFlag)
	}

	historyFlag, _ := cmd.Flags().GetString("history")
	history, err := parseHistory(historyFlag)
	if err != nil {
		return err
	}

	scale, _ := cmd.Flags().GetString("scale")
	inputs, _ := cmd.Flags().GetInt("inputs")

	decision, err := eng.SelectNextOperator(domain.Selection{
		State:      domain.DefaultState(),
		Phase:      phase,
		History:    history,
		Scale:      scale,
		InputCount: inputs,
	})
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, _ := json.MarshalIndent(decision, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	render := tui.NewRenderer()
	out, err := render(tui.DecisionMarkdown(decision))
	if err != nil {
		// Fall back to plain markdown when the terminal renderer fails.
		out = tui.DecisionMarkdown(decision)
	}
	fmt.Print(out)
	return nil
}
