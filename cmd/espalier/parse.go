package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <token>",
	Short: "Parse canonical token text",
	Long:  `Parses token text of the form Field:Machine(Operator)TruthState@Tier and prints its components.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		parsed, err := eng.ParseToken(args[0])
		if err != nil {
			fmt.Printf("Parse failed: %v\n", err)
			os.Exit(1)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out := map[string]any{
				"field":     string(parsed.Field),
				"machine":   string(parsed.Machine),
				"intent":    parsed.Intent,
				"truth":     string(parsed.Truth),
				"tier":      parsed.Tier,
				"canonical": parsed.String(),
			}
			data, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(data))
			return
		}

		fmt.Printf("Field:   %s\n", parsed.Field)
		fmt.Printf("Machine: %s\n", parsed.Machine)
		fmt.Printf("Intent:  %s\n", parsed.Intent)
		fmt.Printf("Truth:   %s\n", parsed.Truth)
		fmt.Printf("Tier:    %d\n", parsed.Tier)

		if entry, err := eng.Describe(parsed.String()); err == nil {
			fmt.Printf("Catalog: %s (%s)\n", entry.Label, entry.Category)
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().Bool("json", false, "Output as JSON")
}
