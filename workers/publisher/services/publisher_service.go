package services

import (
	"context"
	"log"

	"github.com/lib/pq"

	"github.com/carolinefzhang/selective-practice/workers/publisher/domain"
	"github.com/carolinefzhang/selective-practice/workers/publisher/models"
)

// Consumer-side interfaces

type Rehoster interface {
	Rehost(ctx context.Context, url string) (string, bool)
}

type QuestionStore interface {
	BulkInsert(questions []models.Question) error
}

// PublisherService turns parsed CSV rows into persisted questions: every
// referenced image is rehosted sequentially, options are re-paired with
// their image lists by position, and the batch is inserted in one call.
type PublisherService struct {
	rehoster Rehoster
	store    QuestionStore
}

// Functional Options Pattern
type PublisherOption func(*PublisherService)

func WithRehoster(r Rehoster) PublisherOption {
	return func(s *PublisherService) { s.rehoster = r }
}

func WithQuestionStore(store QuestionStore) PublisherOption {
	return func(s *PublisherService) { s.store = store }
}

func NewPublisherService(opts ...PublisherOption) *PublisherService {
	s := &PublisherService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish transforms and inserts all rows. Image failures degrade to "no
// image for this field"; only the bulk insert itself is fatal.
func (s *PublisherService) Publish(ctx context.Context, rows []domain.Row) (int, error) {
	questions := make([]models.Question, 0, len(rows))

	for i, row := range rows {
		log.Printf("Processing CSV row %d/%d: %s...", i+1, len(rows), truncate(row.Question, 30))

		question := models.Question{
			Question:       row.Question,
			QuestionImages: pq.StringArray(s.rehostAll(ctx, row.QuestionImages)),
			Options:        pq.StringArray(row.OptionTexts),
			Answer:         row.Answer,
			AnswerImages:   pq.StringArray(s.rehostAll(ctx, row.AnswerImages)),
			Note:           row.Note,
		}

		for oi, text := range row.OptionTexts {
			var sources []string
			if oi < len(row.OptionImages) {
				sources = row.OptionImages[oi]
			}
			question.OptionsImages = append(question.OptionsImages, models.OptionEntry{
				Text:      text,
				ImageURLs: s.rehostAll(ctx, sources),
			})
		}

		questions = append(questions, question)
	}

	if len(questions) == 0 {
		return 0, nil
	}

	log.Printf("Attempting to insert %d rows into the questions table...", len(questions))
	if err := s.store.BulkInsert(questions); err != nil {
		return 0, &domain.PersistenceError{Err: err}
	}
	return len(questions), nil
}

// rehostAll rehosts each URL in source order, omitting failures.
func (s *PublisherService) rehostAll(ctx context.Context, urls []string) []string {
	rehosted := []string{}
	for _, url := range urls {
		if publicURL, ok := s.rehoster.Rehost(ctx, url); ok {
			rehosted = append(rehosted, publicURL)
		}
	}
	return rehosted
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
