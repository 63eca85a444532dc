package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/addrect/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"debug level", "debug", false},
		{"info level", "info", false},
		{"warn level", "warn", false},
		{"error level", "error", false},
		{"uppercase is normalized", "INFO", false},
		{"invalid level", "verbose", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := flag.NewFlagSet("test", flag.ContinueOnError)
			set.String("log-level", tt.level, "")
			ctx := cli.NewContext(&cli.App{}, set, nil)

			err := setupLogger(ctx)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadMatcherConfig_EmptyPath(t *testing.T) {
	cfg, err := loadMatcherConfig("")
	require.NoError(t, err)
	assert.Equal(t, match.DefaultConfig(), cfg)
}

func TestLoadMatcherConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matcher.yaml")
	contents := []byte("top_k: 10\nconfidence_threshold: 0.6\nvendor_weight: 0.4\naddress_weight: 0.4\nembedding_weight: 0.2\n")
	require.NoError(t, os.WriteFile(path, contents, 0644))

	cfg, err := loadMatcherConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.TopK)
	assert.InDelta(t, 0.6, cfg.ConfidenceThreshold, 0.0001)
	assert.InDelta(t, 0.4, cfg.VendorWeight, 0.0001)
	assert.InDelta(t, 0.4, cfg.AddressWeight, 0.0001)
	assert.InDelta(t, 0.2, cfg.EmbeddingWeight, 0.0001)
}

func TestLoadMatcherConfig_MissingFile(t *testing.T) {
	_, err := loadMatcherConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMatcherConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matcher.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_k: [not an int"), 0644))

	_, err := loadMatcherConfig(path)
	assert.Error(t, err)
}
