package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/carolinefzhang/selective-practice/workers/scraper/config"
	"github.com/carolinefzhang/selective-practice/workers/scraper/domain"
	"github.com/carolinefzhang/selective-practice/workers/scraper/repositories"
)

const (
	modalTimeout      = 5 * time.Second
	controlTimeout    = 10 * time.Second
	windowTimeout     = 15 * time.Second
	dropdownTimeout   = 5 * time.Second
	nextButtonTimeout = 2 * time.Second
	settleDelay       = 2 * time.Second
	filterSettleDelay = 2500 * time.Millisecond
)

// Navigator advances the session from the authenticated landing page to each
// question's detail view. Structural steps return NavigationError; optional
// steps report a StepResult and never fail the pipeline.
type Navigator struct {
	cfg     *config.Config
	session repositories.Session
}

func NewNavigator(cfg *config.Config, session repositories.Session) *Navigator {
	return &Navigator{cfg: cfg, session: session}
}

// DismissOptionalModal clears the onboarding popup that sometimes appears
// after login. Absence is not an error.
func (n *Navigator) DismissOptionalModal(ctx context.Context) domain.StepResult {
	page := n.session.Page()
	sel := n.cfg.Selectors

	found, err := page.Exists(ctx, sel.ModalCheckbox, modalTimeout)
	if err != nil {
		log.Printf("error probing for onboarding modal: %v", err)
		return domain.StepFailed
	}
	if !found {
		log.Println("No modal found.")
		return domain.StepAbsent
	}
	if err := page.Click(ctx, sel.ModalCheckbox); err != nil {
		log.Printf("failed to tick modal checkbox: %v", err)
		return domain.StepFailed
	}
	if err := page.Click(ctx, sel.ModalConfirm); err != nil {
		log.Printf("failed to confirm modal: %v", err)
		return domain.StepFailed
	}
	log.Println("Modal dismissed successfully.")
	return domain.StepSucceeded
}

// OpenResultsWindow clicks the quizzes control, adopts the window it spawns,
// propagates the primary session's cookies into it, and navigates it to the
// quiz results URL. Required: failure is a NavigationError.
func (n *Navigator) OpenResultsWindow(ctx context.Context) (repositories.Page, error) {
	primary := n.session.Page()
	sel := n.cfg.Selectors

	log.Println("Clicking 'Quizzes' button...")
	if err := primary.WaitVisible(ctx, sel.QuizzesButton, controlTimeout); err != nil {
		return nil, &domain.NavigationError{Step: "quizzes button", Err: err}
	}
	primary.Settle(ctx, settleDelay)

	spawned, err := n.session.OpenWindow(ctx, func(ctx context.Context) error {
		if err := primary.Click(ctx, sel.QuizzesButton); err != nil {
			log.Printf("Normal click failed, trying force click: %v", err)
			return primary.ClickByScript(ctx, sel.QuizzesButton)
		}
		return nil
	}, windowTimeout)
	if err != nil {
		return nil, &domain.NavigationError{Step: "results window", Err: err}
	}
	log.Println("New window opened, switching to it...")
	n.screenshot(ctx, spawned, "debug_quizzes_page.png")

	cookies, err := primary.Cookies(ctx)
	if err != nil {
		return nil, &domain.NavigationError{Step: "read cookies", Err: err}
	}
	if err := spawned.SetCookies(ctx, cookies); err != nil {
		return nil, &domain.NavigationError{Step: "propagate cookies", Err: err}
	}

	log.Printf("Navigating to exams page: %s", n.cfg.QuizURL)
	if err := spawned.Navigate(ctx, n.cfg.QuizURL); err != nil {
		return nil, &domain.NavigationError{Step: "exams page", Err: err}
	}
	n.screenshot(ctx, spawned, "debug_exams_page.png")

	return spawned, nil
}

// ApplyIncorrectFilter opens the results dropdown and selects the option
// whose label starts with the configured prefix. An unfiltered result set is
// still usable, so every miss degrades instead of aborting.
func (n *Navigator) ApplyIncorrectFilter(ctx context.Context, page repositories.Page) domain.StepResult {
	sel := n.cfg.Selectors
	prefix := n.cfg.IncorrectPrefix

	log.Printf("Attempting to apply dropdown filter for %q questions...", prefix)
	if err := page.WaitVisible(ctx, sel.DropdownTrigger, controlTimeout); err != nil {
		log.Printf("Could not find dropdown trigger %s: %v", sel.DropdownTrigger, err)
		n.screenshot(ctx, page, "debug_dropdown_trigger_error.png")
		return domain.StepFailed
	}
	if err := page.Click(ctx, sel.DropdownTrigger); err != nil {
		log.Printf("Could not click dropdown trigger: %v", err)
		n.screenshot(ctx, page, "debug_dropdown_trigger_error.png")
		return domain.StepFailed
	}
	log.Println("Clicked dropdown trigger.")

	if err := page.WaitVisible(ctx, sel.DropdownOptions, dropdownTimeout); err != nil {
		log.Printf("Dropdown options container not visible: %v", err)
		n.screenshot(ctx, page, "debug_dropdown_options_container_error.png")
		return domain.StepFailed
	}

	labels, err := page.Texts(ctx, sel.DropdownOption)
	if err != nil {
		log.Printf("Error reading dropdown option labels: %v", err)
		n.screenshot(ctx, page, "debug_dropdown_interaction_error.png")
		return domain.StepFailed
	}

	for i, label := range labels {
		if strings.HasPrefix(strings.TrimSpace(label), prefix) {
			if err := page.ClickNth(ctx, sel.DropdownOption, i); err != nil {
				log.Printf("Error clicking dropdown option %d: %v", i, err)
				n.screenshot(ctx, page, "debug_dropdown_interaction_error.png")
				return domain.StepFailed
			}
			log.Printf("Clicked the dropdown option starting with %q.", prefix)
			page.Settle(ctx, filterSettleDelay)
			n.screenshot(ctx, page, "debug_after_dropdown_incorrect_filter.png")
			return domain.StepSucceeded
		}
	}

	log.Printf("Could not find a dropdown option starting with %q; proceeding unfiltered.", prefix)
	n.screenshot(ctx, page, "debug_dropdown_option_not_found.png")
	return domain.StepAbsent
}

// OpenFirstFilteredItem clicks the first entry of the (possibly filtered)
// results list and waits for its question view. Without this no question is
// reachable, so failure is fatal.
func (n *Navigator) OpenFirstFilteredItem(ctx context.Context, page repositories.Page) error {
	sel := n.cfg.Selectors

	if err := page.WaitVisible(ctx, sel.FirstFilteredItem, controlTimeout); err != nil {
		return &domain.NavigationError{Step: "first filtered item", Err: err}
	}
	if err := page.Click(ctx, sel.FirstFilteredItem); err != nil {
		return &domain.NavigationError{Step: "first filtered item", Err: err}
	}
	page.Settle(ctx, settleDelay)
	n.screenshot(ctx, page, "debug_after_first_filtered_item.png")
	log.Println("Clicked button to display first filtered question.")

	log.Println("Waiting for first question (after filtering) to load...")
	if err := page.WaitVisible(ctx, sel.QuestionContainer, controlTimeout); err != nil {
		n.screenshot(ctx, page, "debug_filtered_question_not_found.png")
		return &domain.NavigationError{Step: "first question", Err: err}
	}
	log.Println("First filtered question loaded.")
	return nil
}

// ExpandTruncatedContent clicks a "view more" style control inside the
// question container if one is visible. A miss only means the content may be
// scraped truncated.
func (n *Navigator) ExpandTruncatedContent(ctx context.Context, page repositories.Page, index int) domain.StepResult {
	clicked, err := page.ClickByText(ctx, n.cfg.Selectors.QuestionContainer, n.cfg.ViewMoreText)
	if err != nil {
		log.Printf("Error during 'view more' (Q_idx:%d) check/click: %v", index, err)
		return domain.StepFailed
	}
	if !clicked {
		return domain.StepAbsent
	}
	log.Printf("Clicked 'view more' control (Q_idx:%d). Waiting for content to expand...", index)
	page.Settle(ctx, settleDelay)
	n.screenshot(ctx, page, fmt.Sprintf("debug_after_view_more_q_idx%d.png", index))
	return domain.StepSucceeded
}

// AdvanceToNext clicks the next-question control. An absent control is the
// normal end of pagination and returns (false, nil); a failed click is a
// navigation fault for the loop controller to handle.
func (n *Navigator) AdvanceToNext(ctx context.Context, page repositories.Page) (bool, error) {
	sel := n.cfg.Selectors

	found, err := page.Exists(ctx, sel.NextButton, nextButtonTimeout)
	if err != nil {
		return false, &domain.NavigationError{Step: "next question", Err: err}
	}
	if !found {
		log.Println("No more questions available (next button not found).")
		return false, nil
	}
	if err := page.Click(ctx, sel.NextButton); err != nil {
		return false, &domain.NavigationError{Step: "next question", Err: err}
	}
	page.Settle(ctx, settleDelay)
	return true, nil
}

func (n *Navigator) screenshot(ctx context.Context, page repositories.Page, name string) {
	path := filepath.Join(n.cfg.ScreenshotDir, name)
	if err := page.Screenshot(ctx, path); err != nil {
		log.Printf("failed to capture screenshot %s: %v", name, err)
		return
	}
	log.Printf("Screenshot saved to %s", path)
}
