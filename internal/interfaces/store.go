package interfaces

import "imagine-cli/pkg/models"

// StateStore persists the form state between runs
type StateStore interface {
	// Load returns the persisted state or the default state; it never fails
	Load() *models.FormState

	// Save writes the persisted fields, overwriting any previous file
	Save(state *models.FormState) error

	// SaveQuietly saves and only logs a failure
	SaveQuietly(state *models.FormState)

	// Path returns the location of the state file
	Path() string
}
