//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/deckmerge/internal/export"
)

var update = flag.Bool("update", false, "update golden files")

// goldenPath returns the path of the combined outline golden file.
func goldenPath() string {
	return filepath.Join("..", "..", "testdata", "golden", "combined_outline.json")
}

// combineForGolden runs combine on the sample inputs and returns the
// combined outline as printed JSON.
func combineForGolden(t *testing.T) []byte {
	t.Helper()

	deckPath, docPath := writeProjectInputs(t)
	pipeline := newPipeline(t)

	res, err := pipeline.Combine(context.Background(), deckPath, docPath, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf, res.Outline))
	return buf.Bytes()
}

// TestGolden compares the combined outline against the golden file. If the
// golden file does not exist, the test is skipped with a message to run
// with -update.
func TestGolden(t *testing.T) {
	actual := combineForGolden(t)

	golden, err := os.ReadFile(goldenPath())
	if os.IsNotExist(err) {
		t.Skip("golden file not found; run with -update to generate")
	}
	require.NoError(t, err)

	assert.Equal(t, string(golden), string(actual), "combined outline does not match golden file")
}

// TestUpdateGolden regenerates the golden file from the current output.
// Run with: go test -tags e2e -run TestUpdateGolden ./internal/e2e/ -update
func TestUpdateGolden(t *testing.T) {
	if !*update {
		t.Skip("skipping golden file update; run with -update flag")
	}

	actual := combineForGolden(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath()), 0o755))
	require.NoError(t, os.WriteFile(goldenPath(), actual, 0o644))
	t.Logf("updated %s", goldenPath())
}
