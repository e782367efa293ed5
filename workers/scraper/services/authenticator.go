package services

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/carolinefzhang/selective-practice/workers/scraper/config"
	"github.com/carolinefzhang/selective-practice/workers/scraper/domain"
	"github.com/carolinefzhang/selective-practice/workers/scraper/repositories"
)

const (
	loginSettleDelay = 5 * time.Second
	fieldTimeout     = 10 * time.Second
	postLoginTimeout = 10 * time.Second
	loginScreenshot  = "debug_screenshot_login.png"
)

// Authenticator establishes the authenticated session on the primary page.
type Authenticator struct {
	cfg *config.Config
}

func NewAuthenticator(cfg *config.Config) *Authenticator {
	return &Authenticator{cfg: cfg}
}

// Login navigates to the sign-in page, submits credentials, and waits for the
// post-login marker. On failure a diagnostic screenshot is captured before the
// AuthenticationError propagates.
func (a *Authenticator) Login(ctx context.Context, page repositories.Page) error {
	sel := a.cfg.Selectors

	log.Printf("Navigating to login page: %s", a.cfg.SigninURL)
	if err := page.Navigate(ctx, a.cfg.SigninURL); err != nil {
		return &domain.AuthenticationError{Stage: "navigate", Err: err}
	}
	page.Settle(ctx, loginSettleDelay)

	log.Println("Typing credentials...")
	if err := page.WaitVisible(ctx, sel.UsernameField, fieldTimeout); err != nil {
		a.captureFailure(ctx, page)
		return &domain.AuthenticationError{Stage: "username field", Err: err}
	}
	if err := page.SendKeys(ctx, sel.UsernameField, a.cfg.Username); err != nil {
		return &domain.AuthenticationError{Stage: "username field", Err: err}
	}
	if err := page.WaitVisible(ctx, sel.PasswordField, fieldTimeout); err != nil {
		a.captureFailure(ctx, page)
		return &domain.AuthenticationError{Stage: "password field", Err: err}
	}
	if err := page.SendKeys(ctx, sel.PasswordField, a.cfg.Password); err != nil {
		return &domain.AuthenticationError{Stage: "password field", Err: err}
	}

	log.Println("Clicking login button...")
	if err := page.Click(ctx, sel.SubmitButton); err != nil {
		return &domain.AuthenticationError{Stage: "submit", Err: err}
	}

	if err := page.WaitVisible(ctx, sel.PostLoginMarker, postLoginTimeout); err != nil {
		log.Println("Login failed or post-login element not found.")
		a.captureFailure(ctx, page)
		return &domain.AuthenticationError{Stage: "verify", Err: err}
	}
	log.Println("Login appears successful.")

	shot := filepath.Join(a.cfg.ScreenshotDir, loginScreenshot)
	if err := page.Screenshot(ctx, shot); err != nil {
		log.Printf("failed to capture login screenshot: %v", err)
	} else {
		log.Printf("Login step screenshot saved to %s", shot)
	}
	page.Settle(ctx, loginSettleDelay)
	return nil
}

func (a *Authenticator) captureFailure(ctx context.Context, page repositories.Page) {
	shot := filepath.Join(a.cfg.ScreenshotDir, loginScreenshot)
	if err := page.Screenshot(ctx, shot); err != nil {
		log.Printf("failed to capture login failure screenshot: %v", err)
		return
	}
	log.Printf("Screenshot saved to %s for debugging.", shot)
}
