package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/quantsim/internal/config"
	"github.com/san-kum/quantsim/internal/quantity"
)

func sampleResult() quantity.Frame {
	return quantity.Frame{
		"TTc":  {0, 0, 0, 0, 5.0 / 24, 15.0 / 24, 25.0 / 24, 40.0 / 24, 60.0 / 24, 82.0 / 24},
		"time": {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		"temp": {5, 8, 10, 15, 20, 20, 25, 30, 32, 40},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	cfg := config.GetPreset("thermal")
	runID, err := store.Save(cfg, "euler required 9 steps to integrate the system", sampleResult())
	require.NoError(t, err)
	assert.Contains(t, runID, "thermal_")

	meta, err := store.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "thermal", meta.Name)
	assert.Equal(t, "euler", meta.Method)
	assert.Equal(t, 10, meta.Rows)
	assert.Equal(t, []string{"TTc", "temp", "time"}, meta.Columns)
	assert.Contains(t, meta.Report, "required 9 steps")
}

func TestResultRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	original := sampleResult()
	runID, err := store.Save(config.GetPreset("thermal"), "report", original)
	require.NoError(t, err)

	loaded, err := store.LoadResult(runID)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestListSkipsJunkEntries(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	require.NoError(t, store.Init())

	_, err := store.Save(config.GetPreset("thermal"), "report", sampleResult())
	require.NoError(t, err)
	_, err = store.Save(config.GetPreset("harmonic"), "report", sampleResult())
	require.NoError(t, err)

	// A stray file and a directory without metadata must not break List.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "not_a_run"), 0755))

	runs, err := store.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	names := []string{runs[0].Name, runs[1].Name}
	assert.Contains(t, names, "thermal")
	assert.Contains(t, names, "harmonic")
}

func TestListMissingBaseDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never_created"))

	runs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadUnknownRun(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Load("ghost_1")
	assert.Error(t, err)
	_, err = store.LoadResult("ghost_1")
	assert.Error(t, err)
}

func TestLoadResultRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	runDir := filepath.Join(dir, "bad_1")
	require.NoError(t, os.MkdirAll(runDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "result.csv"),
		[]byte("a,b\n1,2\nnot_a_number,4\n"), 0644))

	_, err := store.LoadResult("bad_1")
	assert.Error(t, err)
}
