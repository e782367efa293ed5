package repositories

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carolinefzhang/selective-practice/workers/scraper/domain"
)

func TestCSVWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	rows := []domain.CSVRow{
		{
			Question:       "What is 2+2?",
			QuestionImages: "[]",
			Options:        "3 | 4",
			OptionsImages:  "[[],[]]",
			Answer:         "4",
			AnswerImages:   "[]",
			Note:           "term4",
		},
		{
			Question:       "Line one\nLine two",
			QuestionImages: `["https://cdn.example.com/q.png"]`,
			Options:        "yes | no",
			OptionsImages:  `[["https://cdn.example.com/a.png"],[]]`,
			Answer:         "yes",
			AnswerImages:   `["https://cdn.example.com/a.png"]`,
			Note:           "term4",
		},
	}

	writer := NewCSVWriter(path)
	assert.NoError(t, writer.Write(rows))

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, domain.CSVHeader, records[0])
	assert.Equal(t, rows[0].Fields(), records[1])
	// Embedded newlines survive CSV quoting.
	assert.Equal(t, "Line one\nLine two", records[2][0])
}

func TestCSVWriterEmptyInputStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	writer := NewCSVWriter(path)
	assert.NoError(t, writer.Write(nil))

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, domain.CSVHeader, records[0])
}

func TestCSVWriterBadPath(t *testing.T) {
	writer := NewCSVWriter(filepath.Join(t.TempDir(), "missing", "out.csv"))
	assert.Error(t, writer.Write(nil))
}
