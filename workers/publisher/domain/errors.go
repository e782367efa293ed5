package domain

import "fmt"

// ConfigurationError reports a missing or invalid environment setting.
type ConfigurationError struct {
	Name string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is required", e.Name)
}

// PersistenceError reports a failed bulk insert. Nothing is partially
// committed; the whole batch aborts.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("bulk insert failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
