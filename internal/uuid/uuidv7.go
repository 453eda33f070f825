// Package uuid generates the identifiers used as primary keys.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a new UUIDv7 string. UUIDv7 is time-ordered, so rows sorted
// by identifier come out in creation order, which the allocation engine
// relies on for its deterministic county ordering.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source is unavailable; fall
		// back to a random UUIDv4 rather than aborting the write.
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates s as a UUID and returns its canonical form.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}
