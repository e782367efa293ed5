package config

import (
	"os"
	"strconv"

	"github.com/carolinefzhang/selective-practice/workers/scraper/domain"
)

// Selectors names every DOM capability the scraper touches. UI drift on the
// source site means changing these values, not the navigation logic.
type Selectors struct {
	UsernameField     string
	PasswordField     string
	SubmitButton      string
	PostLoginMarker   string
	ModalCheckbox     string
	ModalConfirm      string
	QuizzesButton     string
	DropdownTrigger   string
	DropdownOptions   string
	DropdownOption    string
	FirstFilteredItem string
	QuestionContainer string
	Option            string
	OptionText        string
	CorrectMarker     string
	NextButton        string
}

type Config struct {
	SigninURL string
	QuizURL   string
	Username  string
	Password  string

	Selectors Selectors

	// ViewMoreText is matched (case-insensitively) against buttons/links inside
	// the question container to expand truncated content.
	ViewMoreText string
	// IncorrectPrefix selects the result-filter dropdown option by label prefix.
	IncorrectPrefix string
	// MaxQuestions caps the extraction loop regardless of how many "next"
	// transitions the UI offers.
	MaxQuestions int
	Note         string

	OutputCSV     string
	ScreenshotDir string
	Headless      bool
}

func Load() (*Config, error) {
	cfg := &Config{
		SigninURL: os.Getenv("SCHOLARLY_SIGNIN_URL"),
		QuizURL:   os.Getenv("SCHOLARLY_QUIZ_URL"),
		Username:  os.Getenv("SCHOLARLY_USERNAME"),
		Password:  os.Getenv("SCHOLARLY_PASSWORD"),

		Selectors: Selectors{
			UsernameField:     getEnv("SELECTOR_USERNAME", "input[name=email]"),
			PasswordField:     getEnv("SELECTOR_PASSWORD", "input[name=password]"),
			SubmitButton:      getEnv("SELECTOR_SUBMIT", "button[type=submit]"),
			PostLoginMarker:   getEnv("SELECTOR_POST_LOGIN", "header"),
			ModalCheckbox:     getEnv("SELECTOR_MODAL_CHECKBOX", `input[type="checkbox"]`),
			ModalConfirm:      getEnv("SELECTOR_MODAL_CONFIRM", "button"),
			QuizzesButton:     getEnv("SELECTOR_QUIZZES_BUTTON", "div[data-testid=quizzes]"),
			DropdownTrigger:   getEnv("SELECTOR_DROPDOWN_TRIGGER", "div.ember-basic-dropdown-trigger"),
			DropdownOptions:   getEnv("SELECTOR_DROPDOWN_OPTIONS", "ul.ember-power-select-options"),
			DropdownOption:    getEnv("SELECTOR_DROPDOWN_OPTION", "li.ember-power-select-option"),
			FirstFilteredItem: getEnv("SELECTOR_FIRST_FILTERED_ITEM", "button.naked-button.small.full-width"),
			QuestionContainer: getEnv("SELECTOR_QUESTION", "section#question-stem-content"),
			Option:            getEnv("SELECTOR_OPTION", "div.option-component"),
			OptionText:        getEnv("SELECTOR_OPTION_TEXT", "span"),
			CorrectMarker:     getEnv("SELECTOR_CORRECT_MARKER", "i.check"),
			NextButton:        getEnv("SELECTOR_NEXT_BUTTON", "button.naked-button.modal-nav-arrow--right"),
		},

		ViewMoreText:    getEnv("VIEW_MORE_TEXT", "view more"),
		IncorrectPrefix: getEnv("INCORRECT_FILTER_PREFIX", "Incorrect"),
		MaxQuestions:    getEnvInt("MAX_QUESTIONS", 100),
		Note:            getEnv("QUESTION_NOTE", "term4"),

		OutputCSV:     getEnv("OUTPUT_CSV", "scraped_data.csv"),
		ScreenshotDir: getEnv("SCREENSHOT_DIR", "."),
		Headless:      getEnvBool("HEADLESS", true),
	}

	if cfg.SigninURL == "" {
		return nil, &domain.ConfigurationError{Name: "SCHOLARLY_SIGNIN_URL"}
	}
	if cfg.QuizURL == "" {
		return nil, &domain.ConfigurationError{Name: "SCHOLARLY_QUIZ_URL"}
	}
	if cfg.Username == "" {
		return nil, &domain.ConfigurationError{Name: "SCHOLARLY_USERNAME"}
	}
	if cfg.Password == "" {
		return nil, &domain.ConfigurationError{Name: "SCHOLARLY_PASSWORD"}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
