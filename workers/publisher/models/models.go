package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// OptionEntry pairs one option's text with its rehosted image URLs. The
// options_images column stores the full ordered list as JSONB.
type OptionEntry struct {
	Text      string   `json:"text"`
	ImageURLs []string `json:"image_urls"`
}

type OptionEntryList []OptionEntry

func (l OptionEntryList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *OptionEntryList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for OptionEntryList", value)
	}
}

// Question is one published quiz question. Rows are only ever inserted by
// this pipeline, never updated or deleted.
type Question struct {
	ID             int             `gorm:"primaryKey;autoIncrement"`
	Question       string          `gorm:"type:text;not null"`
	QuestionImages pq.StringArray  `gorm:"column:question_images;type:text[]"`
	Options        pq.StringArray  `gorm:"type:text[]"`
	OptionsImages  OptionEntryList `gorm:"column:options_images;type:jsonb"`
	Answer         string          `gorm:"type:text"`
	AnswerImages   pq.StringArray  `gorm:"column:answer_images;type:text[]"`
	Note           string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP"`
}

// TableName overrides the table name
func (Question) TableName() string {
	return "questions"
}
