package repositories

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/carolinefzhang/selective-practice/workers/publisher/domain"
)

// CSVReader parses the intermediate CSV file written by the scraper.
type CSVReader struct {
	path string
}

func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

func (r *CSVReader) ReadRows() ([]domain.Row, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var rows []domain.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		row, err := domain.RowFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("malformed CSV record: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func checkHeader(header []string) error {
	if len(header) != len(domain.CSVHeader) {
		return fmt.Errorf("unexpected CSV header: %v", header)
	}
	for i, name := range domain.CSVHeader {
		if header[i] != name {
			return fmt.Errorf("unexpected CSV column %d: got %q, want %q", i, header[i], name)
		}
	}
	return nil
}
