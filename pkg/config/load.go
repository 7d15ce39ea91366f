package config

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// rawConfig mirrors the YAML document shape with string keys. Operator and
// phase labels are normalized into their closed types afterwards so that a
// typo in the document fails loading instead of silently self-looping.
type rawConfig struct {
	Deltas       map[string][]Delta           `mapstructure:"deltas"`
	Bounds       map[string]Range             `mapstructure:"bounds"`
	Thresholds   Thresholds                   `mapstructure:"thresholds"`
	PhaseTable   map[string]map[string]string `mapstructure:"phase_table"`
	PhaseAllowed map[string][]string          `mapstructure:"phase_allowed"`
	Scales       map[string][]string          `mapstructure:"scales"`
	Cost         Cost                         `mapstructure:"cost"`
	Clamp        bool                         `mapstructure:"clamp"`
	RecursionMax int                          `mapstructure:"recursion_max"`
}

// FromYAML parses a configuration document.
func FromYAML(data []byte) (Config, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("invalid config document: %w", err)
	}

	var raw rawConfig
	if err := mapstructure.Decode(doc, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to decode config document: %w", err)
	}

	return normalize(raw)
}

// Load reads and parses a configuration document from disk.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := FromYAML(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func normalize(raw rawConfig) (Config, error) {
	cfg := Config{
		Bounds:       raw.Bounds,
		Thresholds:   raw.Thresholds,
		Cost:         raw.Cost,
		Clamp:        raw.Clamp,
		RecursionMax: raw.RecursionMax,
	}

	if len(raw.Deltas) > 0 {
		cfg.Deltas = make(map[token.Operator][]Delta, len(raw.Deltas))
		for label, deltas := range raw.Deltas {
			op, err := operator(label)
			if err != nil {
				return Config{}, fmt.Errorf("deltas: %w", err)
			}
			cfg.Deltas[op] = deltas
		}
	}

	if len(raw.PhaseTable) > 0 {
		cfg.PhaseTable = make(PhaseTable, len(raw.PhaseTable))
		for phaseLabel, row := range raw.PhaseTable {
			p, err := phase(phaseLabel)
			if err != nil {
				return Config{}, fmt.Errorf("phase_table: %w", err)
			}
			entry := make(map[token.Operator]domain.Phase, len(row))
			for opLabel, nextLabel := range row {
				op, err := operator(opLabel)
				if err != nil {
					return Config{}, fmt.Errorf("phase_table.%s: %w", phaseLabel, err)
				}
				next, err := phase(nextLabel)
				if err != nil {
					return Config{}, fmt.Errorf("phase_table.%s.%s: %w", phaseLabel, opLabel, err)
				}
				entry[op] = next
			}
			cfg.PhaseTable[p] = entry
		}
	}

	if len(raw.PhaseAllowed) > 0 {
		cfg.PhaseAllowed = make(map[domain.Phase][]token.Operator, len(raw.PhaseAllowed))
		for phaseLabel, labels := range raw.PhaseAllowed {
			p, err := phase(phaseLabel)
			if err != nil {
				return Config{}, fmt.Errorf("phase_allowed: %w", err)
			}
			ops, err := operators(labels)
			if err != nil {
				return Config{}, fmt.Errorf("phase_allowed.%s: %w", phaseLabel, err)
			}
			cfg.PhaseAllowed[p] = ops
		}
	}

	if len(raw.Scales) > 0 {
		cfg.Scales = make(map[string][]token.Operator, len(raw.Scales))
		for scale, labels := range raw.Scales {
			ops, err := operators(labels)
			if err != nil {
				return Config{}, fmt.Errorf("scales.%s: %w", scale, err)
			}
			cfg.Scales[scale] = ops
		}
	}

	return cfg, nil
}

func operator(label string) (token.Operator, error) {
	op, ok := token.ParseOperator(label)
	if !ok {
		return "", fmt.Errorf("unknown operator %q", label)
	}
	return op, nil
}

func operators(labels []string) ([]token.Operator, error) {
	ops := make([]token.Operator, 0, len(labels))
	for _, label := range labels {
		op, err := operator(label)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func phase(label string) (domain.Phase, error) {
	p := domain.Phase(label)
	if !p.Valid() {
		return "", fmt.Errorf("unknown phase %q", label)
	}
	return p, nil
}
