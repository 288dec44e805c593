package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindHotspotsRanking(t *testing.T) {
	res := Result{
		Counts:       map[string]uint64{"a": 10, "b": 40, "c": 25},
		TotalSamples: 100,
	}

	hotspots := FindHotspots(res, 0)

	require.Len(t, hotspots, 3)
	assert.Equal(t, "b", hotspots[0].Name)
	assert.Equal(t, "c", hotspots[1].Name)
	assert.Equal(t, "a", hotspots[2].Name)
	assert.InDelta(t, 40.0, hotspots[0].Percent, 1e-9)
	assert.InDelta(t, 10.0, hotspots[2].Percent, 1e-9)
}

func TestFindHotspotsTieBreakByName(t *testing.T) {
	res := Result{
		Counts:       map[string]uint64{"zeta": 5, "alpha": 5, "mid": 5},
		TotalSamples: 15,
	}

	hotspots := FindHotspots(res, 0)

	require.Len(t, hotspots, 3)
	assert.Equal(t, "alpha", hotspots[0].Name)
	assert.Equal(t, "mid", hotspots[1].Name)
	assert.Equal(t, "zeta", hotspots[2].Name)
}

func TestFindHotspotsTopN(t *testing.T) {
	res := Result{
		Counts:       map[string]uint64{"a": 1, "b": 2, "c": 3, "d": 4},
		TotalSamples: 10,
	}

	hotspots := FindHotspots(res, 2)

	require.Len(t, hotspots, 2)
	assert.Equal(t, "d", hotspots[0].Name)
	assert.Equal(t, "c", hotspots[1].Name)
}

func TestFindHotspotsZeroTotal(t *testing.T) {
	res := Result{Counts: map[string]uint64{"a": 3}}

	hotspots := FindHotspots(res, 0)

	require.Len(t, hotspots, 1)
	assert.Zero(t, hotspots[0].Percent)
}

func TestFilterHotspots(t *testing.T) {
	hotspots := []Hotspot{
		{Name: "fire_sim_core::update"},
		{Name: "rayon::join"},
		{Name: "0xdeadbeef"},
	}

	filtered := FilterHotspots(hotspots, []string{"fire_sim_core", "rayon"})
	require.Len(t, filtered, 2)
	assert.Equal(t, "fire_sim_core::update", filtered[0].Name)
	assert.Equal(t, "rayon::join", filtered[1].Name)

	assert.Equal(t, hotspots, FilterHotspots(hotspots, nil))
}

func TestKeyFunctionUsage(t *testing.T) {
	res := Result{
		Counts:       map[string]uint64{"hot::path": 30},
		TotalSamples: 60,
	}
	keys := []KeyFunction{
		{Name: "hot::path", Label: "HOT"},
		{Name: "cold::path", Label: "COLD"},
	}

	usage := KeyFunctionUsage(res, keys)

	require.Len(t, usage, 2)
	assert.Equal(t, uint64(30), usage[0].Samples)
	assert.InDelta(t, 50.0, usage[0].Percent, 1e-9)
	assert.Zero(t, usage[1].Samples, "absent key functions report zero")
	assert.Zero(t, usage[1].Percent)
}
