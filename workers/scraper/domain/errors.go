package domain

import "fmt"

// ConfigurationError reports a missing or invalid environment setting.
// It is raised before any network activity.
type ConfigurationError struct {
	Name string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is required", e.Name)
}

// AuthenticationError reports that login verification failed. Fatal for the
// whole run.
type AuthenticationError struct {
	Stage string
	Err   error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed at %s: %v", e.Stage, e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// NavigationError reports that a required UI transition never completed.
// Best-effort steps never return it; structural steps do.
type NavigationError struct {
	Step string
	Err  error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation step %q failed: %v", e.Step, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }
