// Package common contains constants and sentinel errors shared by the Portal
// client packages.
package common

const (
	// AppName is shown in the REPL banner and the login view.
	AppName = "The Portal"

	// ProfileStorageKey is the single metadata key holding the JSON-encoded
	// user profile.
	ProfileStorageKey = "web_project_user_data"

	// DefaultGraphQLEndpoint is the public character catalog API.
	DefaultGraphQLEndpoint = "https://rickandmortyapi.com/graphql"
)
