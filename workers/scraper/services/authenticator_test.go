package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carolinefzhang/selective-practice/workers/scraper/domain"
)

func TestLoginSuccess(t *testing.T) {
	cfg := testConfig()
	page := new(MockPage)

	page.On("Navigate", mock.Anything, cfg.SigninURL).Return(nil)
	page.On("WaitVisible", mock.Anything, cfg.Selectors.UsernameField, mock.Anything).Return(nil)
	page.On("SendKeys", mock.Anything, cfg.Selectors.UsernameField, cfg.Username).Return(nil)
	page.On("WaitVisible", mock.Anything, cfg.Selectors.PasswordField, mock.Anything).Return(nil)
	page.On("SendKeys", mock.Anything, cfg.Selectors.PasswordField, cfg.Password).Return(nil)
	page.On("Click", mock.Anything, cfg.Selectors.SubmitButton).Return(nil)
	page.On("WaitVisible", mock.Anything, cfg.Selectors.PostLoginMarker, mock.Anything).Return(nil)

	auth := NewAuthenticator(cfg)
	err := auth.Login(context.Background(), page)

	assert.NoError(t, err)
	assert.Len(t, page.Screenshots, 1)
	page.AssertExpectations(t)
}

func TestLoginNavigateFailure(t *testing.T) {
	cfg := testConfig()
	page := new(MockPage)
	page.On("Navigate", mock.Anything, cfg.SigninURL).Return(errors.New("dns failure"))

	auth := NewAuthenticator(cfg)
	err := auth.Login(context.Background(), page)

	var authErr *domain.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "navigate", authErr.Stage)
	page.AssertExpectations(t)
}

func TestLoginMarkerTimeoutCapturesScreenshot(t *testing.T) {
	cfg := testConfig()
	page := new(MockPage)

	page.On("Navigate", mock.Anything, cfg.SigninURL).Return(nil)
	page.On("WaitVisible", mock.Anything, cfg.Selectors.UsernameField, mock.Anything).Return(nil)
	page.On("SendKeys", mock.Anything, cfg.Selectors.UsernameField, cfg.Username).Return(nil)
	page.On("WaitVisible", mock.Anything, cfg.Selectors.PasswordField, mock.Anything).Return(nil)
	page.On("SendKeys", mock.Anything, cfg.Selectors.PasswordField, cfg.Password).Return(nil)
	page.On("Click", mock.Anything, cfg.Selectors.SubmitButton).Return(nil)
	page.On("WaitVisible", mock.Anything, cfg.Selectors.PostLoginMarker, mock.Anything).
		Return(context.DeadlineExceeded)

	auth := NewAuthenticator(cfg)
	err := auth.Login(context.Background(), page)

	var authErr *domain.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "verify", authErr.Stage)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, page.Screenshots, 1)
	page.AssertExpectations(t)
}

func TestLoginWaitTimeoutsPassConfiguredDurations(t *testing.T) {
	cfg := testConfig()
	page := new(MockPage)

	page.On("Navigate", mock.Anything, cfg.SigninURL).Return(nil)
	page.On("WaitVisible", mock.Anything, cfg.Selectors.UsernameField, 10*time.Second).
		Return(errors.New("not visible"))

	auth := NewAuthenticator(cfg)
	err := auth.Login(context.Background(), page)

	assert.Error(t, err)
	page.AssertExpectations(t)
}
