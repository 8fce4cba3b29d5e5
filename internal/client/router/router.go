// Package router keeps the current location and maps paths to views.
//
// The location string is the only place the current catalog page lives;
// views re-derive everything they show from it.
package router

import (
	"net/url"
	"path"
	"strings"
	"sync"
)

const (
	PathHome        = "/"
	PathAuth        = "/auth"
	PathInformation = "/information"
	PathProfile     = "/profile"
)

// View names a screen of the application.
type View int

const (
	ViewNotFound View = iota
	ViewHome
	ViewAuth
	ViewInformation
	ViewProfile
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewAuth:
		return "auth"
	case ViewInformation:
		return "information"
	case ViewProfile:
		return "profile"
	default:
		return "not found"
	}
}

// Route is a resolved location.
type Route struct {
	Path string
	View View
	// PageToken is the raw page segment of /information/{page}; empty when
	// the path has none.
	PageToken string
}

// Protected reports whether the route needs an authenticated session.
func (r Route) Protected() bool {
	return r.View == ViewInformation || r.View == ViewProfile
}

// Resolve maps a location to a Route. Query strings and trailing slashes
// are ignored.
func Resolve(loc string) Route {
	p := Clean(loc)
	r := Route{Path: p}

	switch {
	case p == PathHome:
		r.View = ViewHome
	case p == PathAuth:
		r.View = ViewAuth
	case p == PathProfile:
		r.View = ViewProfile
	case p == PathInformation:
		r.View = ViewInformation
	case strings.HasPrefix(p, PathInformation+"/"):
		token := strings.TrimPrefix(p, PathInformation+"/")
		if strings.Contains(token, "/") {
			r.View = ViewNotFound
			break
		}
		r.View = ViewInformation
		if t, err := url.PathUnescape(token); err == nil {
			token = t
		}
		r.PageToken = token
	default:
		r.View = ViewNotFound
	}
	return r
}

// Clean normalizes a user-supplied location to an absolute path without a
// query or fragment.
func Clean(loc string) string {
	if u, err := url.Parse(loc); err == nil {
		loc = u.EscapedPath()
	}
	if !strings.HasPrefix(loc, "/") {
		loc = "/" + loc
	}
	return path.Clean(loc)
}

// InformationPage returns the catalog location for a page token.
func InformationPage(token string) string {
	return PathInformation + "/" + url.PathEscape(token)
}

// Navigator holds the location history. It is safe for concurrent use.
type Navigator struct {
	mu      sync.Mutex
	history []string
}

func NewNavigator(start string) *Navigator {
	return &Navigator{history: []string{Clean(start)}}
}

// Push appends a location to the history.
func (n *Navigator) Push(loc string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = append(n.history, Clean(loc))
}

// Replace swaps the current location without growing the history.
func (n *Navigator) Replace(loc string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history[len(n.history)-1] = Clean(loc)
}

// Back drops the current location. It reports false when there is nowhere
// to go back to.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) < 2 {
		return false
	}
	n.history = n.history[:len(n.history)-1]
	return true
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.history[len(n.history)-1]
}

func (n *Navigator) Route() Route {
	return Resolve(n.Current())
}
