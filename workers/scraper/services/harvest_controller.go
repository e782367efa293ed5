package services

import (
	"context"
	"log"

	"github.com/carolinefzhang/selective-practice/workers/scraper/config"
	"github.com/carolinefzhang/selective-practice/workers/scraper/domain"
	"github.com/carolinefzhang/selective-practice/workers/scraper/repositories"
)

// Consumer-side interfaces

type QuestionNavigator interface {
	ExpandTruncatedContent(ctx context.Context, page repositories.Page, index int) domain.StepResult
	AdvanceToNext(ctx context.Context, page repositories.Page) (bool, error)
}

type RecordExtractor interface {
	Extract(ctx context.Context, page repositories.Page) (domain.QuestionRecord, error)
}

// HarvestController runs the extraction loop: expand, extract, advance, until
// the content runs out, the cap is hit, or navigation faults. A navigation
// fault aborts the loop but keeps everything gathered so far.
type HarvestController struct {
	cfg       *config.Config
	navigator QuestionNavigator
	extractor RecordExtractor
}

// Functional Options Pattern
type HarvestOption func(*HarvestController)

func WithNavigator(n QuestionNavigator) HarvestOption {
	return func(c *HarvestController) { c.navigator = n }
}

func WithExtractor(e RecordExtractor) HarvestOption {
	return func(c *HarvestController) { c.extractor = e }
}

func NewHarvestController(cfg *config.Config, opts ...HarvestOption) *HarvestController {
	c := &HarvestController{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run walks the question pagination forward-only and returns the extracted
// records together with the terminal loop state (DONE or ABORTED).
func (c *HarvestController) Run(ctx context.Context, page repositories.Page) ([]domain.QuestionRecord, domain.LoopState) {
	state := domain.LoopReady
	var records []domain.QuestionRecord

	state = domain.LoopActive
	log.Printf("Extraction loop %s (cap %d)", state, c.cfg.MaxQuestions)

	for {
		c.navigator.ExpandTruncatedContent(ctx, page, len(records))

		record, err := c.extractor.Extract(ctx, page)
		switch {
		case err != nil:
			// Per-question anomaly: skip this view, keep paginating.
			log.Printf("extraction fault at question %d: %v (skipping)", len(records), err)
		case record.Empty():
			log.Println("No further question content; stopping.")
			return records, domain.LoopDone
		default:
			c.warnOnAnswerMismatch(record, len(records))
			records = append(records, record)
			log.Printf("Scraped question %d: %s...", len(records), truncate(record.Question, 50))
			if len(records) >= c.cfg.MaxQuestions {
				log.Printf("Reached question cap (%d); stopping.", c.cfg.MaxQuestions)
				return records, domain.LoopDone
			}
		}

		advanced, err := c.navigator.AdvanceToNext(ctx, page)
		if err != nil {
			log.Printf("Navigation failed or reached end of questions: %v", err)
			return records, domain.LoopAborted
		}
		if !advanced {
			return records, domain.LoopDone
		}
	}
}

// warnOnAnswerMismatch flags records whose answer text equals none of the
// option texts. Such records are persisted as-is; the mismatch usually means
// truncation or markup drift worth investigating.
func (c *HarvestController) warnOnAnswerMismatch(record domain.QuestionRecord, index int) {
	if record.Answer == "" {
		return
	}
	for _, opt := range record.Options {
		if opt.Text == record.Answer {
			return
		}
	}
	log.Printf("warning: answer text of question %d matches no option text", index)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
