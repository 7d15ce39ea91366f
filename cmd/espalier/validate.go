package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
)

var validateCmd = &cobra.Command{
	Use:   "validate <operator>",
	Short: "Check an operator application for legality",
	Long:  `Checks one prospective operator application against the structural rules and the scalar thresholds of the predicted post-state.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Application is legal ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("history", "", "Comma-separated list of already-applied operators")
	validateCmd.Flags().String("successor", "", "Planned next operator")
	validateCmd.Flags().Int("inputs", 0, "Number of inputs for a Fusion application")
}

func runValidate(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}

	op, ok := token.ParseOperator(args[0])
	if !ok {
		return fmt.Errorf("unknown operator %q", args[0])
	}

	app := domain.Application{Operator: op}
	if inputs, _ := cmd.Flags().GetInt("inputs"); inputs > 0 {
		app.InputCount = inputs
	}
	if succLabel, _ := cmd.Flags().GetString("successor"); succLabel != "" {
		succ, ok := token.ParseOperator(succLabel)
		if !ok {
			return fmt.Errorf("unknown successor %q", succLabel)
		}
		app.Successor = &succ
	}

	historyFlag, _ := cmd.Flags().GetString("history")
	history, err := parseHistory(historyFlag)
	if err != nil {
		return err
	}

	return eng.ValidateOperator(app, history, domain.DefaultState())
}
