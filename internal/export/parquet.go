package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"SeasonalityExplorer/internal/model"
)

// WriteSeries dumps series to a Parquet file, creating parent directories.
func WriteSeries(path string, series []model.MarketRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := parquet.WriteFile(path, series); err != nil {
		return fmt.Errorf("write parquet %s: %w", path, err)
	}
	return nil
}

// ReadSeries loads a series written by WriteSeries.
func ReadSeries(path string) ([]model.MarketRecord, error) {
	rows, err := parquet.ReadFile[model.MarketRecord](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}

// EncodeSeries streams series as a Parquet file to w.
func EncodeSeries(w io.Writer, series []model.MarketRecord) error {
	return parquet.Write(w, series)
}

// DecodeSeries parses a Parquet file held in memory.
func DecodeSeries(data []byte) ([]model.MarketRecord, error) {
	return parquet.Read[model.MarketRecord](bytes.NewReader(data), int64(len(data)))
}
