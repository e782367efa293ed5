package domain

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Row is one parsed record of the intermediate CSV file. Image URL columns
// are decoded from their JSON-array encoding; option texts are split on the
// " | " separator. OptionImages is positionally aligned with OptionTexts,
// but consumers must index defensively: a malformed row is passed through
// rather than dropped.
type Row struct {
	Question       string
	QuestionImages []string
	OptionTexts    []string
	OptionImages   [][]string
	Answer         string
	AnswerImages   []string
	Note           string
}

// RowFromRecord parses a raw CSV record. Malformed JSON cells degrade to
// empty lists so a single bad cell never loses the rest of the row.
func RowFromRecord(record []string) (Row, error) {
	if len(record) != len(CSVHeader) {
		return Row{}, fmt.Errorf("expected %d columns, got %d", len(CSVHeader), len(record))
	}

	row := Row{
		Question: record[0],
		Answer:   record[4],
		Note:     record[6],
	}

	row.QuestionImages = parseURLList(record[1], "question_images")
	row.AnswerImages = parseURLList(record[5], "answer_images")

	if record[2] != "" {
		row.OptionTexts = strings.Split(record[2], OptionSeparator)
	}

	if record[3] != "" {
		if err := json.Unmarshal([]byte(record[3]), &row.OptionImages); err != nil {
			log.Printf("Error parsing options_images JSON: %v", err)
			row.OptionImages = nil
		}
	}

	return row, nil
}

func parseURLList(cell, column string) []string {
	if cell == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(cell), &urls); err != nil {
		log.Printf("Error parsing %s JSON: %v", column, err)
		return nil
	}
	return urls
}
