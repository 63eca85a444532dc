package addrect

import (
	"context"
	"testing"

	"github.com/poiesic/addrect/corpus"
	"github.com/poiesic/addrect/index"
	"github.com/poiesic/addrect/match"
	"github.com/poiesic/addrect/storage/badger"
	"github.com/poiesic/addrect/vectorizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestIndex fits a small model on the sample corpus, saves it to
// modelDir, and builds the index database at dbPath.
func buildTestIndex(t *testing.T, dbPath, modelDir string) {
	t.Helper()

	cfg := vectorizer.DefaultConfig()
	cfg.Components = 32
	vec, err := vectorizer.New(cfg)
	require.NoError(t, err)

	backend, err := badger.OpenBackend(dbPath, false)
	require.NoError(t, err)

	store, err := badger.NewReferenceStore(backend)
	require.NoError(t, err)

	builder, err := index.NewBuilder(store, vec)
	require.NoError(t, err)

	require.NoError(t, builder.Build(context.Background(), corpus.SampleReferences()))
	require.NoError(t, vec.Save(modelDir))

	builder.Release()
	require.NoError(t, store.Close())
	require.NoError(t, backend.Close())
}

func TestCorrector_EndToEnd(t *testing.T) {
	dbPath := t.TempDir()
	modelDir := t.TempDir()
	buildTestIndex(t, dbPath, modelDir)

	corrector, err := NewCorrector(dbPath, modelDir)
	require.NoError(t, err)
	defer corrector.Close()

	ctx := context.Background()
	result, err := corrector.Correct(ctx, "Apple Store", "1B9 The Gr0ve Dr")
	require.NoError(t, err)

	assert.True(t, result.Matched)
	assert.Equal(t, "189 The Grove Dr", result.CorrectedAddress)
	assert.Equal(t, "Los Angeles", result.CorrectedCity)
	assert.Greater(t, result.Confidence, match.DefaultConfidenceThreshold)
}

func TestCorrector_MissingModel(t *testing.T) {
	dbPath := t.TempDir()

	_, err := NewCorrector(dbPath, t.TempDir())
	assert.Error(t, err)
}

func TestCorrector_CustomMatcherConfig(t *testing.T) {
	dbPath := t.TempDir()
	modelDir := t.TempDir()
	buildTestIndex(t, dbPath, modelDir)

	cfg := match.DefaultConfig()
	cfg.ConfidenceThreshold = 0.99

	corrector, err := NewCorrector(dbPath, modelDir, WithMatcherConfig(cfg))
	require.NoError(t, err)
	defer corrector.Close()

	result, err := corrector.Correct(context.Background(), "Apple Store", "1B9 The Gr0ve Dr")
	require.NoError(t, err)

	// The strict gate rejects what the default configuration accepts.
	assert.False(t, result.Matched)
}
