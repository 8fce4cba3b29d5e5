package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/portal/internal/client/catalog"
	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/dmitrijs2005/portal/internal/client/router"
	"golang.org/x/sync/errgroup"
)

// Open navigates to path.
func (a *App) Open(ctx context.Context, path string) error {
	a.details.Close()
	a.nav.Push(path)
	return a.render(ctx)
}

// Back returns to the previous location, the way a browser's back button
// does. Guards still apply to the location it lands on.
func (a *App) Back(ctx context.Context) error {
	if !a.nav.Back() {
		fmt.Fprintln(a.out, "Nothing to go back to.")
		return nil
	}
	a.details.Close()
	return a.render(ctx)
}

// Page opens catalog page token. The token is used as typed; the catalog
// view reads it the same way it reads any location.
func (a *App) Page(ctx context.Context, token string) error {
	if token == "" {
		token = "1"
	}
	return a.Open(ctx, router.InformationPage(token))
}

func (a *App) First(ctx context.Context) error {
	return a.step(ctx, a.pager.First)
}

func (a *App) Prev(ctx context.Context) error {
	return a.step(ctx, a.pager.Prev)
}

func (a *App) Next(ctx context.Context) error {
	return a.step(ctx, a.pager.Next)
}

func (a *App) Last(ctx context.Context) error {
	return a.step(ctx, a.pager.Last)
}

// step runs a pager move against the page count of the rendered listing.
// Moves outside the catalog leave the location untouched.
func (a *App) step(ctx context.Context, move func(total int) bool) error {
	total, ok := a.totalPages()
	if !ok {
		fmt.Fprintln(a.out, "Open the catalog first: page 1")
		return nil
	}
	if !move(total) {
		fmt.Fprintln(a.out, "No such page.")
		return nil
	}
	a.details.Close()
	return a.render(ctx)
}

func (a *App) totalPages() (int, bool) {
	if a.nav.Route().View != router.ViewInformation || !a.isLoggedIn() || !a.listing.HasData {
		return 0, false
	}
	return a.listing.Data.Info.Pages, true
}

// Refresh reloads the current page and the open character, if any,
// bypassing the cache. The refreshed page is rendered as fetched, so a
// failed refresh is not followed by a second request.
func (a *App) Refresh(ctx context.Context) error {
	if a.nav.Route().View != router.ViewInformation || !a.isLoggedIn() {
		return a.render(ctx)
	}

	page := a.pager.Current()
	id, open := a.details.Selected()

	var listing catalog.Result[models.CharacterPage]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		listing = a.source.RefreshPage(gctx, page)
		if listing.Err != nil && !listing.HasData && catalog.IsRemote(listing.Err) {
			return listing.Err
		}
		return nil
	})
	if open {
		g.Go(func() error {
			res := a.source.RefreshDetail(gctx, id)
			if res.Err == nil && res.HasData {
				a.details.Refreshed(id, res.Data)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.logger.Warn(ctx, "refresh failed", "page", page, "error", err)
	}

	a.refreshed = &pageResult{page: page, res: listing}
	return a.render(ctx)
}
