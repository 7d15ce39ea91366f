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

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate an operator sequence",
	Long:  `Repeatedly selects the minimum-cost legal operator from the starting state until the recursion cap or candidate exhaustion.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGen(cmd); err != nil {
			fmt.Printf("Generation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().String("phase", string(domain.InitialPhase), "Starting phase P1-P5")
	genCmd.Flags().String("scale", config.ScaleFine, "Temporal scale")
	genCmd.Flags().Bool("json", false, "Output as JSON")
}

func runGen(cmd *cobra.Command) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}

	phaseFlag, _ := cmd.Flags().GetString("phase")
	phase := domain.Phase(phaseFlag)
	if !phase.Valid() {
		return fmt.Errorf("unknown phase %q", phaseFlag)
	}
	scale, _ := cmd.Flags().GetString("scale")

	run, err := eng.Generate(domain.Selection{
		State: domain.DefaultState(),
		Phase: phase,
		Scale: scale,
	})
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, _ := json.MarshalIndent(run, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	render := tui.NewRenderer()
	out, err := render(tui.SequenceMarkdown(run.Steps, run.Exhausted))
	if err != nil {
		out = tui.SequenceMarkdown(run.Steps, run.Exhausted)
	}
	fmt.Print(out)
	return nil
}
