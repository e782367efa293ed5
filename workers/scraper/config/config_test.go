package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carolinefzhang/selective-practice/workers/scraper/domain"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("SCHOLARLY_SIGNIN_URL", "https://scholarly.example.com/signin")
	t.Setenv("SCHOLARLY_QUIZ_URL", "https://scholarly.example.com/quiz")
	t.Setenv("SCHOLARLY_USERNAME", "user@example.com")
	t.Setenv("SCHOLARLY_PASSWORD", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "https://scholarly.example.com/signin", cfg.SigninURL)
	assert.Equal(t, "input[name=email]", cfg.Selectors.UsernameField)
	assert.Equal(t, "section#question-stem-content", cfg.Selectors.QuestionContainer)
	assert.Equal(t, "button.naked-button.modal-nav-arrow--right", cfg.Selectors.NextButton)
	assert.Equal(t, "view more", cfg.ViewMoreText)
	assert.Equal(t, "Incorrect", cfg.IncorrectPrefix)
	assert.Equal(t, 100, cfg.MaxQuestions)
	assert.Equal(t, "term4", cfg.Note)
	assert.Equal(t, "scraped_data.csv", cfg.OutputCSV)
	assert.True(t, cfg.Headless)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SELECTOR_QUESTION", "div.question")
	t.Setenv("MAX_QUESTIONS", "25")
	t.Setenv("HEADLESS", "false")
	t.Setenv("QUESTION_NOTE", "term1")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "div.question", cfg.Selectors.QuestionContainer)
	assert.Equal(t, 25, cfg.MaxQuestions)
	assert.False(t, cfg.Headless)
	assert.Equal(t, "term1", cfg.Note)
}

func TestLoadInvalidNumericFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_QUESTIONS", "not-a-number")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 100, cfg.MaxQuestions)
}

func TestLoadMissingRequired(t *testing.T) {
	cases := []string{
		"SCHOLARLY_SIGNIN_URL",
		"SCHOLARLY_QUIZ_URL",
		"SCHOLARLY_USERNAME",
		"SCHOLARLY_PASSWORD",
	}
	for _, missing := range cases {
		t.Run(missing, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(missing, "")

			cfg, err := Load()
			assert.Nil(t, cfg)
			var cfgErr *domain.ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, missing, cfgErr.Name)
		})
	}
}
