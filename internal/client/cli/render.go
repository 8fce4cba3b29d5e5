package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/portal/internal/client/catalog"
	"github.com/dmitrijs2005/portal/internal/client/detail"
	"github.com/dmitrijs2005/portal/internal/client/guard"
	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/dmitrijs2005/portal/internal/client/pagination"
	"github.com/dmitrijs2005/portal/internal/client/router"
)

const (
	defaultWidth    = 80
	cellWidth       = 34
	maxRedirects    = 8
	episodesPreview = 10
)

// render draws the current location, following redirects issued by the
// guards and views until the location settles.
func (a *App) render(ctx context.Context) error {
	for range maxRedirects {
		before := a.nav.Current()
		if err := a.renderRoute(ctx, a.nav.Route()); err != nil {
			return err
		}
		if a.nav.Current() == before {
			return nil
		}
	}
	a.logger.Warn(ctx, "too many redirects", "location", a.nav.Current())
	return nil
}

func (a *App) renderRoute(ctx context.Context, r router.Route) error {
	if r.View != router.ViewInformation {
		a.details.Close()
	}

	var view func(context.Context) error
	switch r.View {
	case router.ViewHome:
		return a.renderHome()
	case router.ViewAuth:
		view = a.renderAuth
	case router.ViewInformation:
		view = a.renderInformation
	case router.ViewProfile:
		view = a.renderProfile
	default:
		fmt.Fprintf(a.out, "Page not found: %s\n", r.Path)
		return nil
	}

	group := guardEntry
	if r.Protected() {
		group = guardProtected
	}
	return a.renderGuarded(ctx, group, view)
}

func (a *App) renderHome() error {
	s := a.session.State()
	switch {
	case s.IsLoading:
		fmt.Fprintln(a.out, "Loading...")
	case s.Profile != nil:
		a.nav.Replace(router.PathInformation)
	default:
		a.nav.Replace(router.PathAuth)
	}
	return nil
}

// Guard groups: views of one group share a mounted guard.
const (
	guardEntry     = "entry"
	guardProtected = "protected"
)

// mountGuard returns the guard for a group of views, creating a fresh one
// whenever the group changes so that every visit starts in Checking.
func (a *App) mountGuard(key string) *guard.Guard {
	if a.guard == nil || a.guardKey != key {
		a.guardKey = key
		if key == guardEntry {
			a.guard = guard.Entry(a.nav, router.PathInformation)
		} else {
			a.guard = guard.Protected(a.nav, router.PathAuth)
		}
	}
	return a.guard
}

func (a *App) renderGuarded(ctx context.Context, key string, view func(context.Context) error) error {
	switch a.mountGuard(key).Check(a.session.State()) {
	case guard.Checking:
		fmt.Fprintln(a.out, "Loading...")
		return nil
	case guard.Denied:
		return nil
	default:
		return view(ctx)
	}
}

func (a *App) renderInformation(ctx context.Context) error {
	if a.pager.Normalize() {
		return nil
	}

	page := a.pager.Current()
	var res catalog.Result[models.CharacterPage]
	if r := a.takeRefreshed(); r != nil && r.page == page {
		res = r.res
	} else {
		res = a.source.ListPage(ctx, page)
	}
	a.listing = res

	if res.HasData && a.config.ClampPages {
		if _, changed := a.pager.Clamp(res.Data.Info.Pages); changed {
			a.logger.Info(ctx, "page out of range, showing last page", "requested", page, "pages", res.Data.Info.Pages)
			return nil
		}
	}

	printCatalog(a.out, res, pagination.Compute(page, res.Data.Info.Pages), a.width())

	if v := a.details.View(); v.Open {
		printDetail(a.out, v)
	}
	return nil
}

func (a *App) takeRefreshed() *pageResult {
	r := a.refreshed
	a.refreshed = nil
	return r
}

func (a *App) renderProfile(context.Context) error {
	p := a.session.Profile()
	if p == nil {
		return nil
	}
	printProfile(a.out, p)
	return nil
}

func printCatalog(w io.Writer, res catalog.Result[models.CharacterPage], pc pagination.Controls, width int) {
	fmt.Fprintln(w, "Rick and Morty Characters")

	if !res.HasData {
		if res.Err != nil {
			fmt.Fprintln(w, "Error loading characters")
			fmt.Fprintln(w, errorMessage(res.Err))
		}
		return
	}

	if res.Err != nil {
		fmt.Fprintf(w, "Warning: showing saved results, refresh failed: %s\n", errorMessage(res.Err))
	}

	fmt.Fprintf(w, "Showing %d of %d characters\n", len(res.Data.Results), res.Data.Info.Count)
	if len(res.Data.Results) == 0 {
		fmt.Fprintln(w, "No characters found")
	} else {
		fmt.Fprint(w, formatGrid(res.Data.Results, width))
	}

	if line := formatPager(pc); line != "" {
		fmt.Fprintln(w, line)
	}
}

// formatGrid lays summaries out in as many columns as fit in width.
func formatGrid(cs []models.CharacterSummary, width int) string {
	cols := width / cellWidth
	if cols < 1 {
		cols = 1
	}

	var b strings.Builder
	for i, c := range cs {
		cell := truncate(fmt.Sprintf("#%s %s [%s]", c.ID, c.Name, c.Status), cellWidth-2)
		last := (i+1)%cols == 0 || i == len(cs)-1
		if last {
			b.WriteString(cell)
			b.WriteByte('\n')
			continue
		}
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", cellWidth-utf8.RuneCountInString(cell)))
	}
	return b.String()
}

// formatPager renders the controls; disabled ones are shown in
// parentheses. It returns "" when the pager is hidden.
func formatPager(c pagination.Controls) string {
	if !c.Visible {
		return ""
	}
	button := func(label string, t pagination.Target) string {
		if t.Enabled {
			return "[" + label + "]"
		}
		return "(" + label + ")"
	}
	return fmt.Sprintf("%s %s  Page %d of %d  %s %s",
		button("first", c.First), button("prev", c.Prev),
		c.Current, c.Total,
		button("next", c.Next), button("last", c.Last))
}

func printDetail(w io.Writer, v detail.View) {
	r := v.Record

	fmt.Fprintf(w, "\n== %s ==\n", r.Name)
	fmt.Fprintf(w, "Status: %s\n", r.Status)
	if r.Image != "" {
		fmt.Fprintf(w, "Image: %s\n", r.Image)
	}

	fmt.Fprintln(w, "Basic Information")
	fmt.Fprintf(w, "  Species: %s\n", r.Species)
	if r.Type != "" {
		fmt.Fprintf(w, "  Type: %s\n", r.Type)
	}
	fmt.Fprintf(w, "  Gender: %s\n", r.Gender)

	fmt.Fprintln(w, "Location")
	fmt.Fprintf(w, "  Origin: %s\n", formatLocation(r.Origin))
	fmt.Fprintf(w, "  Last Seen: %s\n", formatLocation(r.Location))

	if len(r.Episodes) > 0 {
		fmt.Fprintf(w, "Episodes (%d)\n", len(r.Episodes))
		for i, ep := range r.Episodes {
			if i == episodesPreview {
				fmt.Fprintf(w, "  ...and %d more episodes\n", len(r.Episodes)-episodesPreview)
				break
			}
			fmt.Fprintf(w, "  %s - %s\n", ep.Code, ep.Name)
		}
	}
	if r.Created != "" {
		fmt.Fprintf(w, "Created: %s\n", formatCreated(r.Created))
	}

	switch {
	case v.Loading:
		fmt.Fprintln(w, "Loading additional details...")
	case v.Err != nil && !v.HasDetail:
		fmt.Fprintf(w, "Additional details unavailable: %s\n", errorMessage(v.Err))
	}
}

func printProfile(w io.Writer, p *models.Profile) {
	fmt.Fprintln(w, "My Profile")
	fmt.Fprintf(w, "  Username: %s\n", p.Username)
	fmt.Fprintf(w, "  Job Title: %s\n", p.JobTitle)
	if !p.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "  Last updated: %s\n", p.UpdatedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintln(w, "Type 'edit' to change your details or 'logout' to sign out.")
}

func formatLocation(l models.Location) string {
	if l.Dimension != "" && l.Dimension != "unknown" {
		return fmt.Sprintf("%s (%s)", l.Name, l.Dimension)
	}
	return l.Name
}

func formatCreated(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format(time.DateOnly)
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "Something went wrong. Please try again."
	}
	return err.Error()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
