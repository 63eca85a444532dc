package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/poiesic/addrect/match"
)

// matcherConfigFile is the YAML form of the matcher configuration.
// Omitted fields keep the package defaults.
type matcherConfigFile struct {
	TopK                int     `yaml:"top_k"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	VendorWeight        float64 `yaml:"vendor_weight"`
	AddressWeight       float64 `yaml:"address_weight"`
	EmbeddingWeight     float64 `yaml:"embedding_weight"`
}

// loadMatcherConfig reads a matcher configuration from a YAML file.
// An empty path returns the default configuration.
func loadMatcherConfig(path string) (match.Config, error) {
	if path == "" {
		return match.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return match.Config{}, err
	}

	var file matcherConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return match.Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return match.Config{
		TopK:                file.TopK,
		ConfidenceThreshold: file.ConfidenceThreshold,
		VendorWeight:        file.VendorWeight,
		AddressWeight:       file.AddressWeight,
		EmbeddingWeight:     file.EmbeddingWeight,
	}, nil
}
