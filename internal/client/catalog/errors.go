package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable means the service could not be reached.
	ErrUnavailable = errors.New("catalog service unavailable")

	// ErrUpstream means the service answered with an error.
	ErrUpstream = errors.New("catalog service error")

	// ErrSkipped is returned when a query's preconditions are not met and
	// nothing was sent.
	ErrSkipped = errors.New("query skipped")

	ErrNotFound = errors.New("character not found")
)

// GraphQLError is a single entry of a response's "errors" array.
type GraphQLError struct {
	Message   string `json:"message"`
	Path      []any  `json:"path,omitempty"`
	Locations []struct {
		Line   int `json:"line"`
		Column int `json:"column"`
	} `json:"locations,omitempty"`
}

func (e GraphQLError) String() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Path) > 0 {
		parts := make([]string, len(e.Path))
		for i, p := range e.Path {
			parts[i] = fmt.Sprint(p)
		}
		fmt.Fprintf(&b, " (path: %s)", strings.Join(parts, "."))
	}
	return b.String()
}

// UpstreamError carries a non-2xx status or the GraphQL error payload.
type UpstreamError struct {
	Status int
	Errors []GraphQLError
}

func (e *UpstreamError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s: http status %d", ErrUpstream, e.Status)
	}
	msgs := make([]string, len(e.Errors))
	for i, ge := range e.Errors {
		msgs[i] = ge.String()
	}
	return fmt.Sprintf("%s: %s", ErrUpstream, strings.Join(msgs, "; "))
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }
