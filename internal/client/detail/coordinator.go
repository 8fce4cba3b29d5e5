// Package detail coordinates the character detail view: which record is
// selected, the lazily fetched detail for it, and what is shown meanwhile.
package detail

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/portal/internal/client/catalog"
	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/dmitrijs2005/portal/internal/logging"
)

// Fetcher loads a full record by id.
type Fetcher interface {
	GetDetail(ctx context.Context, id string) catalog.Result[models.CharacterDetail]
}

// View is what the detail view renders.
type View struct {
	Open bool
	// Record is the summary merged with the detail, if it arrived.
	Record models.CharacterDetail
	// Loading is true while the detail query for the selection is in flight.
	Loading bool
	// HasDetail reports whether Record includes detail-only fields.
	HasDetail bool
	// Err is the last detail failure. The summary stays visible regardless.
	Err error
}

type Coordinator struct {
	src    Fetcher
	logger logging.Logger

	mu       sync.Mutex
	gen      uint64
	selected *models.CharacterSummary
	detail   *models.CharacterDetail
	loading  bool
	err      error
	done     chan struct{}

	// refreshed is set once a revalidated record landed for the current
	// selection; the selection's own query result is older and is dropped.
	refreshed bool

	wg sync.WaitGroup
}

func NewCoordinator(src Fetcher, logger logging.Logger) *Coordinator {
	return &Coordinator{
		src:    src,
		logger: logger.With("module", "detail"),
	}
}

// Select opens the view for s and starts the detail query. The returned
// view holds the summary to show meanwhile. A result arriving after another
// Select or Close is dropped.
func (c *Coordinator) Select(ctx context.Context, s models.CharacterSummary) View {
	done := make(chan struct{})

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.selected = &s
	c.detail = nil
	c.err = nil
	c.loading = true
	c.refreshed = false
	c.done = done
	initial := c.viewLocked()
	c.mu.Unlock()

	c.logger.Debug(ctx, "character selected", "id", s.ID)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(done)

		res := c.src.GetDetail(ctx, s.ID)
		c.resolve(ctx, gen, s.ID, res)
	}()

	return initial
}

func (c *Coordinator) resolve(ctx context.Context, gen uint64, id string, res catalog.Result[models.CharacterDetail]) {
	c.mu.Lock()
	if gen != c.gen || c.selected == nil {
		c.mu.Unlock()
		c.logger.Debug(ctx, "discarding stale detail", "id", id)
		return
	}

	c.loading = false
	if c.refreshed {
		c.mu.Unlock()
		c.logger.Debug(ctx, "keeping revalidated detail", "id", id)
		return
	}
	if res.HasData {
		d := res.Data
		c.detail = &d
	}
	c.err = nil
	if res.Err != nil && !errors.Is(res.Err, catalog.ErrSkipped) {
		c.err = res.Err
	}
	failed := c.err != nil
	c.mu.Unlock()

	if failed {
		c.logger.Warn(ctx, "detail unavailable", "id", id, "error", res.Err)
	}
}

// Refreshed stores a newer detail record if it belongs to the selection.
// It is meant to be fed by the catalog's background revalidation.
func (c *Coordinator) Refreshed(id string, d models.CharacterDetail) {
	c.mu.Lock()
	if c.selected == nil || c.selected.ID != id {
		c.mu.Unlock()
		return
	}
	c.detail = &d
	c.err = nil
	c.refreshed = true
	c.mu.Unlock()
}

// Close hides the view. Any in-flight query result will be ignored.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.selected == nil {
		c.mu.Unlock()
		return
	}
	c.gen++
	c.selected = nil
	c.detail = nil
	c.err = nil
	c.loading = false
	c.refreshed = false
	c.done = nil
	c.mu.Unlock()
}

// Selected returns the id of the open record.
func (c *Coordinator) Selected() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return "", false
	}
	return c.selected.ID, true
}

func (c *Coordinator) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Coordinator) viewLocked() View {
	if c.selected == nil {
		return View{}
	}
	return View{
		Open:      true,
		Record:    Merge(*c.selected, c.detail),
		Loading:   c.loading,
		HasDetail: c.detail != nil,
		Err:       c.err,
	}
}

// Wait blocks until the current selection's query finished or ctx ends.
func (c *Coordinator) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Merge overlays d on s. Non-empty detail fields win; detail-only fields
// are added. A nil d yields the summary alone.
func Merge(s models.CharacterSummary, d *models.CharacterDetail) models.CharacterDetail {
	out := models.CharacterDetail{CharacterSummary: s}
	if d == nil {
		return out
	}

	out.Name = pick(d.Name, s.Name)
	out.Status = models.CharacterStatus(pick(string(d.Status), string(s.Status)))
	out.Species = pick(d.Species, s.Species)
	out.Type = pick(d.Type, s.Type)
	out.Gender = models.CharacterGender(pick(string(d.Gender), string(s.Gender)))
	out.Image = pick(d.Image, s.Image)
	out.Origin = mergeLocation(s.Origin, d.Origin)
	out.Location = mergeLocation(s.Location, d.Location)
	out.Episodes = d.Episodes
	out.Created = d.Created
	return out
}

func mergeLocation(s, d models.Location) models.Location {
	return models.Location{
		ID:        pick(d.ID, s.ID),
		Name:      pick(d.Name, s.Name),
		Type:      pick(d.Type, s.Type),
		Dimension: pick(d.Dimension, s.Dimension),
	}
}

func pick(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}
