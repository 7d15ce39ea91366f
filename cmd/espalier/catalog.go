package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/presentation/tui"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [token]",
	Short: "Look up catalog metadata for a token",
	Long:  `With a token argument, prints its catalog entry. Without arguments, lists all catalogued tokens.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		if len(args) == 0 {
			tokens := eng.Catalog().Tokens()
			if len(tokens) == 0 {
				fmt.Println("Catalog is empty (pass --catalog to load one)")
				return
			}
			for _, text := range tokens {
				entry, _ := eng.Catalog().Lookup(text)
				fmt.Printf("%s\t%s (%s)\n", text, entry.Label, entry.Category)
			}
			return
		}

		entry, err := eng.Describe(args[0])
		if err != nil {
			fmt.Printf("Lookup failed: %v\n", err)
			os.Exit(1)
		}

		md := fmt.Sprintf("# %s\n\n- **Label**: %s\n- **Category**: %s\n", args[0], entry.Label, entry.Category)
		render := tui.NewRenderer()
		out, err := render(md)
		if err != nil {
			out = md
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
