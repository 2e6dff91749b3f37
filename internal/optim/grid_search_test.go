package optim

import (
	"context"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/quantsim/internal/config"
)

func TestSearchRanksByObjective(t *testing.T) {
	gs := NewGridSearch(Axis{Parameter: "tbase", Values: []float64{0, 5, 10, 20, 30}})

	points, err := gs.Search(context.Background(), config.GetPreset("thermal"), FinalValue("TTc"))
	require.NoError(t, err)
	require.Len(t, points, 5)

	// Raising the base temperature gates out more of the series, so the
	// highest base accumulates the least thermal time.
	best := points[0]
	assert.Equal(t, 30.0, best.Parameters["tbase"])
	assert.InDelta(t, 2.0/24.0, best.Score, 1e-12)

	scores := make([]float64, len(points))
	for i, p := range points {
		scores[i] = p.Score
	}
	assert.True(t, sort.Float64sAreSorted(scores))
}

func TestSearchCoversTheCrossProduct(t *testing.T) {
	base := config.GetPreset("thermal")
	gs := NewGridSearch(
		Axis{Parameter: "tbase", Values: []float64{10, 20}},
		Axis{Parameter: "sowing_time", Values: []float64{0, 100}},
	)

	points, err := gs.Search(context.Background(), base, FinalValue("TTc"))
	require.NoError(t, err)
	require.Len(t, points, 4)

	// Sowing after the series ends gates out everything regardless of
	// the base temperature.
	assert.Equal(t, 100.0, points[0].Parameters["sowing_time"])
	assert.Equal(t, 0.0, points[0].Score)
	assert.Equal(t, 100.0, points[1].Parameters["sowing_time"])
	assert.Equal(t, 0.0, points[1].Score)

	// The base definition stays untouched.
	assert.Equal(t, 10.0, base.Parameters["tbase"])
	assert.Equal(t, 0.0, base.Parameters["sowing_time"])
}

func TestSearchMissingColumnNeverWins(t *testing.T) {
	gs := NewGridSearch(Axis{Parameter: "tbase", Values: []float64{10, 20}})

	points, err := gs.Search(context.Background(), config.GetPreset("thermal"), FinalValue("no_such_column"))
	require.NoError(t, err)
	for _, p := range points {
		assert.True(t, math.IsInf(p.Score, 1))
	}
}

func TestSearchHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gs := NewGridSearch(Axis{Parameter: "tbase", Values: []float64{0, 10, 20}})
	_, err := gs.Search(ctx, config.GetPreset("thermal"), FinalValue("TTc"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchRejectsEmptyGrids(t *testing.T) {
	_, err := NewGridSearch().Search(context.Background(), config.GetPreset("thermal"), FinalValue("TTc"))
	assert.Error(t, err)

	gs := NewGridSearch(Axis{Parameter: "tbase"})
	_, err = gs.Search(context.Background(), config.GetPreset("thermal"), FinalValue("TTc"))
	assert.Error(t, err)
}

func TestSearchPropagatesBuildErrors(t *testing.T) {
	// Sweeping a quantity that is already in the initial state makes
	// every cell an invalid system.
	gs := NewGridSearch(Axis{Parameter: "TTc", Values: []float64{1, 2}})

	_, err := gs.Search(context.Background(), config.GetPreset("thermal"), FinalValue("TTc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot form a valid dynamical system")
}
