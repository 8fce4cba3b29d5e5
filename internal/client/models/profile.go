// Package models defines the data records of the Portal client: the locally
// stored user profile and the remote character catalog records.
package models

import "time"

// Profile is the locally stored record standing in for a user account.
// Both Username and JobTitle must be non-blank for the record to be valid.
type Profile struct {
	Username  string    `json:"username" validate:"required"`
	JobTitle  string    `json:"jobTitle" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt"`
}
