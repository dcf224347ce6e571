package analytics

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func assertPNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic), "%s is not a PNG", path)
}

func TestRender_WritesNonEmptySeries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	c := Charts{
		CycleLengths: Series{Name: "Cycle Length (days)", Points: []Point{{"Cycle 1", 28}, {"Cycle 2", 30}, {"Cycle 3", 27}}},
		Symptoms:     Series{Name: "Frequency", Points: []Point{{"cramps", 5}, {"headache", 3}}},
		Moods:        Series{Name: "Mood Count", Points: []Point{{"HAPPY", 2}, {"TIRED", 4}}},
	}

	paths, err := Render(c, dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, FileCycleLengths),
		filepath.Join(dir, FileSymptoms),
		filepath.Join(dir, FileMoods),
	}, paths)

	for _, p := range paths {
		assertPNG(t, p)
	}
}

func TestRender_SkipsEmptySeries(t *testing.T) {
	dir := t.TempDir()
	c := Charts{
		CycleLengths: Series{Name: "Cycle Length (days)", Points: []Point{{"Cycle 1", 29}}},
	}

	paths, err := Render(c, dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, FileCycleLengths)}, paths)
	assertPNG(t, paths[0])

	_, err = os.Stat(filepath.Join(dir, FileSymptoms))
	assert.True(t, os.IsNotExist(err))
}

func TestRender_SingleCycleKeepsOtherCharts(t *testing.T) {
	dir := t.TempDir()
	c := Transform(decode(t, `{"cycleConsistency":{"cycleLengths":[28]},"moodTrends":{"moodDistribution":{"HAPPY":3}}}`))

	paths, err := Render(c, dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, FileCycleLengths),
		filepath.Join(dir, FileMoods),
	}, paths)
	for _, p := range paths {
		assertPNG(t, p)
	}
}

func TestRender_ZeroFrequenciesSkipPie(t *testing.T) {
	dir := t.TempDir()
	c := Charts{
		Symptoms: Series{Name: "Frequency", Points: []Point{{"CRAMPS", 0}}},
		Moods:    Series{Name: "Mood Count", Points: []Point{{"HAPPY", 3}}},
	}

	paths, err := Render(c, dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, FileMoods)}, paths)

	_, err = os.Stat(filepath.Join(dir, FileSymptoms))
	assert.True(t, os.IsNotExist(err))
}

func TestRender_FailureDoesNotStopLaterCharts(t *testing.T) {
	dir := t.TempDir()
	// a directory in the way makes the symptoms file uncreatable
	require.NoError(t, os.Mkdir(filepath.Join(dir, FileSymptoms), 0o755))

	c := Charts{
		CycleLengths: Series{Name: "Cycle Length (days)", Points: []Point{{"Cycle 1", 28}, {"Cycle 2", 30}}},
		Symptoms:     Series{Name: "Frequency", Points: []Point{{"cramps", 2}}},
		Moods:        Series{Name: "Mood Count", Points: []Point{{"HAPPY", 3}}},
	}

	paths, err := Render(c, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render "+FileSymptoms)
	require.Equal(t, []string{
		filepath.Join(dir, FileCycleLengths),
		filepath.Join(dir, FileMoods),
	}, paths)
	assertPNG(t, paths[1])
}

func TestRender_NothingToDraw(t *testing.T) {
	paths, err := Render(Charts{}, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestUpperBound(t *testing.T) {
	assert.Equal(t, 1.0, upperBound(nil))
	assert.Equal(t, 1.0, upperBound([]float64{0, 0}))
	top := upperBound([]float64{28, 30})
	assert.GreaterOrEqual(t, top, 33.0)
	assert.LessOrEqual(t, top, 34.0)
}
