package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/carolinefzhang/selective-practice/workers/scraper/config"
	"github.com/carolinefzhang/selective-practice/workers/scraper/domain"
	"github.com/carolinefzhang/selective-practice/workers/scraper/repositories"
)

// Mocks

type MockPage struct {
	mock.Mock

	// Diagnostics are recorded, not asserted via expectations.
	Screenshots []string
	Dumps       []string
}

func (m *MockPage) Navigate(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockPage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	args := m.Called(ctx, selector, timeout)
	return args.Error(0)
}

func (m *MockPage) Exists(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	args := m.Called(ctx, selector, timeout)
	return args.Bool(0), args.Error(1)
}

func (m *MockPage) Click(ctx context.Context, selector string) error {
	args := m.Called(ctx, selector)
	return args.Error(0)
}

func (m *MockPage) ClickByScript(ctx context.Context, selector string) error {
	args := m.Called(ctx, selector)
	return args.Error(0)
}

func (m *MockPage) ClickNth(ctx context.Context, selector string, index int) error {
	args := m.Called(ctx, selector, index)
	return args.Error(0)
}

func (m *MockPage) ClickByText(ctx context.Context, containerSelector, text string) (bool, error) {
	args := m.Called(ctx, containerSelector, text)
	return args.Bool(0), args.Error(1)
}

func (m *MockPage) SendKeys(ctx context.Context, selector, value string) error {
	args := m.Called(ctx, selector, value)
	return args.Error(0)
}

func (m *MockPage) Text(ctx context.Context, selector string) (string, error) {
	args := m.Called(ctx, selector)
	return args.String(0), args.Error(1)
}

func (m *MockPage) Texts(ctx context.Context, selector string) ([]string, error) {
	args := m.Called(ctx, selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPage) OuterHTML(ctx context.Context, selector string) (string, error) {
	args := m.Called(ctx, selector)
	return args.String(0), args.Error(1)
}

func (m *MockPage) Screenshot(ctx context.Context, path string) error {
	m.Screenshots = append(m.Screenshots, path)
	return nil
}

func (m *MockPage) DumpHTML(ctx context.Context, path string) error {
	m.Dumps = append(m.Dumps, path)
	return nil
}

func (m *MockPage) Cookies(ctx context.Context) ([]domain.Cookie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cookie), args.Error(1)
}

func (m *MockPage) SetCookies(ctx context.Context, cookies []domain.Cookie) error {
	args := m.Called(ctx, cookies)
	return args.Error(0)
}

func (m *MockPage) Settle(ctx context.Context, d time.Duration) {}

type MockSession struct {
	mock.Mock
	primary repositories.Page
}

func (m *MockSession) Page() repositories.Page {
	return m.primary
}

func (m *MockSession) OpenWindow(ctx context.Context, trigger func(context.Context) error, timeout time.Duration) (repositories.Page, error) {
	if err := trigger(ctx); err != nil {
		return nil, err
	}
	args := m.Called(ctx, timeout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repositories.Page), args.Error(1)
}

func (m *MockSession) Close() {}

func testConfig() *config.Config {
	return &config.Config{
		SigninURL: "http://example.com/signin",
		QuizURL:   "http://example.com/quiz",
		Username:  "user@example.com",
		Password:  "secret",
		Selectors: config.Selectors{
			UsernameField:     "input[name=email]",
			PasswordField:     "input[name=password]",
			SubmitButton:      "button[type=submit]",
			PostLoginMarker:   "header",
			ModalCheckbox:     `input[type="checkbox"]`,
			ModalConfirm:      "button",
			QuizzesButton:     "div[data-testid=quizzes]",
			DropdownTrigger:   "div.ember-basic-dropdown-trigger",
			DropdownOptions:   "ul.ember-power-select-options",
			DropdownOption:    "li.ember-power-select-option",
			FirstFilteredItem: "button.naked-button.small.full-width",
			QuestionContainer: "section#question-stem-content",
			Option:            "div.option-component",
			OptionText:        "span",
			CorrectMarker:     "i.check",
			NextButton:        "button.naked-button.modal-nav-arrow--right",
		},
		ViewMoreText:    "view more",
		IncorrectPrefix: "Incorrect",
		MaxQuestions:    100,
		Note:            "term4",
		OutputCSV:       "scraped_data.csv",
		ScreenshotDir:   ".",
		Headless:        true,
	}
}
