package service

import "errors"

var (
	// ErrSaveInFlight indicates another structure save is already running
	// for the same project.
	ErrSaveInFlight = errors.New("a save is already in flight for this project")

	// ErrNotPersisted indicates an operation that needs a store identity
	// was attempted on an unsaved project.
	ErrNotPersisted = errors.New("project has not been created in the store yet")
)
