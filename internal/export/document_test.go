package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SeasonalityExplorer/internal/model"
	"SeasonalityExplorer/internal/selection"
)

var exportedAt = time.Date(2024, 3, 9, 18, 4, 5, 123_000_000, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleState() *selection.State {
	s := selection.New(day(2024, 3, 1))
	s.Select(day(2024, 3, 5))
	s.SetRange(day(2024, 3, 10), day(2024, 3, 2))
	s.ViewMode = model.ViewWeekly
	s.Layer = model.LayerLiquidity
	s.Filters.Currency = "INR"
	s.Filters.MinVolatility = 10
	return s
}

func TestBuild_Schema(t *testing.T) {
	data, err := Encode(Build(sampleState(), exportedAt))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "2024-03-05", raw["selectedDate"])
	assert.Equal(t, map[string]any{"start": "2024-03-02", "end": "2024-03-10"}, raw["dateRange"])
	assert.Equal(t, "weekly", raw["viewMode"])
	assert.Equal(t, "liquidity", raw["dataLayer"])
	assert.Equal(t, "2024-03-09T18:04:05.123Z", raw["timestamp"])

	filters := raw["filters"].(map[string]any)
	assert.Equal(t, "BTC/USD", filters["instrument"])
	assert.Equal(t, "1D", filters["timeframe"])
	assert.Equal(t, "INR", filters["currency"])
	assert.Equal(t, 10.0, filters["minVolatility"])
	assert.Equal(t, 100.0, filters["maxVolatility"])

	assert.Contains(t, string(data), "\n  \"selectedDate\"", "two-space indent")
}

func TestBuild_NullsWhenEmpty(t *testing.T) {
	data, err := Encode(Build(selection.New(exportedAt), exportedAt))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "selectedDate")
	assert.Nil(t, raw["selectedDate"])
	assert.Equal(t, map[string]any{"start": nil, "end": nil}, raw["dateRange"])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "market-analysis-2024-03-09.json", Filename(exportedAt))
}

func TestRoundTrip(t *testing.T) {
	original := Build(sampleState(), exportedAt)
	data, err := Encode(original)
	require.NoError(t, err)

	doc, err := Decode(data)
	require.NoError(t, err)

	restored := selection.New(day(2020, 1, 1))
	require.NoError(t, Apply(doc, restored, time.UTC))
	assert.Equal(t, original, Build(restored, exportedAt))
}

func TestDecode_Rejects(t *testing.T) {
	bad := []string{
		`not json`,
		`{"viewMode":"yearly","dataLayer":"all"}`,
		`{"viewMode":"daily","dataLayer":"heat"}`,
		`{"viewMode":"daily","dataLayer":"all","selectedDate":"03/05/2024"}`,
		`{"viewMode":"daily","dataLayer":"all","dateRange":{"start":null,"end":"2024-01-01"}}`,
	}
	for _, b := range bad {
		_, err := Decode([]byte(b))
		assert.ErrorIs(t, err, ErrInvalidDocument, b)
	}
}

func TestApply_PartialRange(t *testing.T) {
	start := "2024-01-04"
	doc := Document{DateRange: Range{Start: &start}, ViewMode: model.ViewDaily, DataLayer: model.LayerAll}
	s := selection.New(day(2024, 1, 1))
	s.Select(day(2024, 1, 9))

	require.NoError(t, Apply(doc, s, time.UTC))
	assert.Nil(t, s.Selected)
	require.NotNil(t, s.Range.Start)
	assert.Equal(t, day(2024, 1, 4), *s.Range.Start)
	assert.Nil(t, s.Range.End)
	assert.Equal(t, model.LayerAll, s.Layer)
}

func TestWriteAndReadFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	doc := Build(sampleState(), exportedAt)

	path, err := WriteFile(dir, doc, exportedAt)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "market-analysis-2024-03-09.json"), path)

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, os.IsNotExist(err))
}
