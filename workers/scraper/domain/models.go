package domain

import (
	"encoding/json"
	"strings"
)

// Option is a single answer choice belonging to a question.
type Option struct {
	Text      string
	ImageURLs []string
}

// QuestionRecord is one extracted question. It is produced by the extractor
// and immutable afterwards; the exporter flattens it into a CSVRow.
type QuestionRecord struct {
	Question       string
	QuestionImages []string
	Options        []Option
	Answer         string
	AnswerImages   []string
	Note           string
}

// Empty reports whether no question content was found on the page. The
// extraction loop stops on the first empty record.
func (r QuestionRecord) Empty() bool {
	return r.Question == "" && len(r.QuestionImages) == 0
}

// CSVRow is the flattened, string-only form of a QuestionRecord used for the
// intermediate CSV file. Image URL lists are JSON-encoded arrays; option texts
// are joined with OptionSeparator. The Nth entry of OptionsImages corresponds
// position-wise to the Nth option text, empty arrays included.
type CSVRow struct {
	Question       string
	QuestionImages string
	Options        string
	OptionsImages  string
	Answer         string
	AnswerImages   string
	Note           string
}

// ToCSVRow flattens the record. Empty URL lists encode as "[]", never null,
// so the option/image alignment survives the round trip.
func (r QuestionRecord) ToCSVRow() (CSVRow, error) {
	questionImages, err := marshalURLList(r.QuestionImages)
	if err != nil {
		return CSVRow{}, err
	}
	answerImages, err := marshalURLList(r.AnswerImages)
	if err != nil {
		return CSVRow{}, err
	}

	texts := make([]string, 0, len(r.Options))
	imageLists := make([][]string, 0, len(r.Options))
	for _, opt := range r.Options {
		texts = append(texts, opt.Text)
		if opt.ImageURLs == nil {
			imageLists = append(imageLists, []string{})
		} else {
			imageLists = append(imageLists, opt.ImageURLs)
		}
	}
	optionsImages, err := json.Marshal(imageLists)
	if err != nil {
		return CSVRow{}, err
	}

	return CSVRow{
		Question:       r.Question,
		QuestionImages: questionImages,
		Options:        strings.Join(texts, OptionSeparator),
		OptionsImages:  string(optionsImages),
		Answer:         r.Answer,
		AnswerImages:   answerImages,
		Note:           r.Note,
	}, nil
}

// Fields returns the row in CSV column order, matching CSVHeader.
func (r CSVRow) Fields() []string {
	return []string{
		r.Question,
		r.QuestionImages,
		r.Options,
		r.OptionsImages,
		r.Answer,
		r.AnswerImages,
		r.Note,
	}
}

func marshalURLList(urls []string) (string, error) {
	if urls == nil {
		urls = []string{}
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Cookie is a browser cookie carried from the primary page into a spawned
// window so the secondary context stays authenticated.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
	Expires  float64
}
