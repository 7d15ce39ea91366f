package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	espalier "github.com/aretw0/espalier"
	redisStore "github.com/aretw0/espalier/internal/adapters/redis"
	"github.com/aretw0/espalier/internal/adapters/loamcat"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/catalog"
	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "Espalier is a symbolic-token grammar and sequence generation engine",
	Long: `Espalier parses operator tokens, checks the structural legality rules,
evolves the scalar state vector and selects operator sequences by cost.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a configuration document (defaults to the reference configuration)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to the token catalog: a YAML document or a loam directory")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for session persistence (defaults to in-memory)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}

// newEngine assembles the engine from the persistent flags.
func newEngine(cmd *cobra.Command) (*espalier.Engine, error) {
	level, _ := cmd.Flags().GetString("log-level")
	logger := logging.New(logging.ParseLevel(level))

	opts := []espalier.Option{espalier.WithLogger(logger)}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, espalier.WithConfig(cfg))
	}

	if path, _ := cmd.Flags().GetString("catalog"); path != "" {
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			cat, err := catalog.Load(path)
			if err != nil {
				return nil, err
			}
			opts = append(opts, espalier.WithCatalog(cat))
		default:
			source, err := loamcat.Open(path)
			if err != nil {
				return nil, err
			}
			opts = append(opts, espalier.WithCatalogSource(source))
		}
	}

	if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
		opts = append(opts, espalier.WithStore(redisStore.New(addr, "", 0)))
	}

	return espalier.New(opts...)
}

// parseHistory turns a comma-separated flag value into a History.
func parseHistory(value string) (domain.History, error) {
	if value == "" {
		return nil, nil
	}

	var history domain.History
	for _, label := range strings.Split(value, ",") {
		label = strings.TrimSpace(label)
		op, ok := token.ParseOperator(label)
		if !ok {
			return nil, fmt.Errorf("unknown operator %q in history", label)
		}
		history = append(history, op)
	}
	return history, nil
}
