// Package guard decides whether a view may render for the current session.
package guard

import (
	"sync"

	"github.com/dmitrijs2005/portal/internal/client/session"
)

// Status is the outcome of a guard check.
type Status int

const (
	Checking Status = iota
	Denied
	Granted
)

func (s Status) String() string {
	switch s {
	case Checking:
		return "checking"
	case Denied:
		return "denied"
	case Granted:
		return "granted"
	default:
		return "unknown"
	}
}

// Redirector is the part of the navigator a guard needs.
type Redirector interface {
	Replace(path string)
}

// Guard is a three state machine fed by session snapshots. When a check
// ends in Denied the guard replaces the location with its redirect target,
// once per transition into Denied.
type Guard struct {
	nav    Redirector
	target string
	// allow reports whether an authenticated (loaded) session may see the view.
	allow func(s session.State) bool

	mu   sync.Mutex
	last Status
}

// Protected guards views that need a profile. Sessions without one are
// sent to entryPath.
func Protected(nav Redirector, entryPath string) *Guard {
	return &Guard{
		nav:    nav,
		target: entryPath,
		allow:  func(s session.State) bool { return s.Profile != nil },
	}
}

// Entry guards the login view. Sessions that already have a profile are sent
// to homePath before the form is ever shown.
func Entry(nav Redirector, homePath string) *Guard {
	return &Guard{
		nav:    nav,
		target: homePath,
		allow:  func(s session.State) bool { return s.Profile == nil },
	}
}

// Check evaluates s and returns the resulting status. The redirect is fire
// and forget: the guard neither waits for it nor retries it.
func (g *Guard) Check(s session.State) Status {
	st := Checking
	if !s.IsLoading {
		st = Denied
		if g.allow(s) {
			st = Granted
		}
	}

	g.mu.Lock()
	prev := g.last
	g.last = st
	g.mu.Unlock()

	if st == Denied && prev != Denied {
		g.nav.Replace(g.target)
	}
	return st
}

