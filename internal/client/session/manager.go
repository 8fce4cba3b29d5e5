// Package session owns the authentication state of the running process.
//
// A Manager is created once per process and passed explicitly to every
// component that needs to know who is logged in. It is fed exclusively by
// the profile store; observers registered with Subscribe are notified after
// every state change so views can redraw.
package session

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/dmitrijs2005/portal/internal/logging"
	"github.com/google/uuid"
)

// ProfileStore is the durable storage the session is derived from.
type ProfileStore interface {
	Read(ctx context.Context) *models.Profile
	Write(ctx context.Context, username, jobTitle string) bool
	Remove(ctx context.Context) bool
}

// State is a snapshot of the session.
type State struct {
	Profile   *models.Profile
	IsLoading bool
}

// Authenticated reports whether loading finished with a profile present.
func (s State) Authenticated() bool {
	return !s.IsLoading && s.Profile != nil
}

type Manager struct {
	id     string
	store  ProfileStore
	logger logging.Logger

	mu      sync.RWMutex
	profile *models.Profile
	loading bool

	loadOnce sync.Once

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// NewManager returns a Manager in the loading state. Call Load to read the
// stored profile.
func NewManager(store ProfileStore, logger logging.Logger) *Manager {
	id := uuid.NewString()
	return &Manager{
		id:      id,
		store:   store,
		logger:  logger.With("module", "session", "session_id", id),
		loading: true,
		subs:    make(map[int]func(State)),
	}
}

// ID identifies this process-wide session in logs.
func (m *Manager) ID() string { return m.id }

// Load reads the stored profile and leaves the loading state. Only the first
// call has any effect.
func (m *Manager) Load(ctx context.Context) {
	m.loadOnce.Do(func() {
		p := m.store.Read(ctx)

		m.mu.Lock()
		m.profile = p
		m.loading = false
		m.mu.Unlock()

		m.logger.Debug(ctx, "session loaded", "authenticated", p != nil)
		m.notify()
	})
}

// State returns a snapshot; the profile is a copy.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{Profile: copyProfile(m.profile), IsLoading: m.loading}
}

func (m *Manager) Profile() *models.Profile {
	return m.State().Profile
}

func (m *Manager) IsLoading() bool {
	return m.State().IsLoading
}

// Login persists a new profile and refreshes the in-memory state from
// storage. It returns the write's success flag.
func (m *Manager) Login(ctx context.Context, username, jobTitle string) bool {
	return m.save(ctx, "login", username, jobTitle)
}

// Update replaces the current profile. It behaves exactly like Login.
func (m *Manager) Update(ctx context.Context, username, jobTitle string) bool {
	return m.save(ctx, "update", username, jobTitle)
}

func (m *Manager) save(ctx context.Context, op, username, jobTitle string) bool {
	if !m.store.Write(ctx, username, jobTitle) {
		m.logger.Warn(ctx, op+" failed")
		return false
	}

	p := m.store.Read(ctx)

	m.mu.Lock()
	m.profile = p
	m.mu.Unlock()

	m.logger.Info(ctx, op+" succeeded", "username", username)
	m.notify()
	return true
}

// Logout clears storage and the in-memory profile. A storage failure is
// logged but never reported to the caller.
func (m *Manager) Logout(ctx context.Context) {
	if !m.store.Remove(ctx) {
		m.logger.Error(ctx, "profile could not be removed from storage")
	}

	m.mu.Lock()
	m.profile = nil
	m.mu.Unlock()

	m.logger.Info(ctx, "logged out")
	m.notify()
}

// Subscribe registers fn to be called with the new state after every
// change. The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

func (m *Manager) notify() {
	m.subMu.Lock()
	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(State), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, m.subs[id])
	}
	m.subMu.Unlock()

	s := m.State()
	for _, fn := range fns {
		fn(s)
	}
}

func copyProfile(p *models.Profile) *models.Profile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
