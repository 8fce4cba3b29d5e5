package cli

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/portal/internal/client/router"
	"github.com/dmitrijs2005/portal/internal/common"
	"github.com/dmitrijs2005/portal/internal/filex"
	"github.com/dmitrijs2005/portal/internal/netx"
)

const downloadDir = "download"

// Show opens the character view for a record of the rendered page. The
// summary is printed at once, the merged record once the detail arrives.
func (a *App) Show(ctx context.Context, id string) error {
	if a.nav.Route().View != router.ViewInformation || !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Open the catalog first: page 1")
		return nil
	}

	summary, ok := a.listing.Data.Find(id)
	if !ok {
		fmt.Fprintf(a.out, "Character %s is not on this page.\n", id)
		return nil
	}

	printDetail(a.out, a.details.Select(ctx, summary))

	wctx, cancel := context.WithTimeout(ctx, a.waitTimeout())
	defer cancel()
	if err := a.details.Wait(wctx); err != nil {
		a.logger.Debug(ctx, "detail still loading", "id", id, "error", err)
		return nil
	}

	if v := a.details.View(); v.Open {
		printDetail(a.out, v)
	}
	return nil
}

// CloseDetail closes the character view.
func (a *App) CloseDetail(ctx context.Context) error {
	if _, open := a.details.Selected(); !open {
		return nil
	}
	a.details.Close()
	return a.render(ctx)
}

// Image saves a character image under ./download. Without an id the open
// character is used.
func (a *App) Image(ctx context.Context, id string) error {
	imageURL, id, err := a.imageURL(id)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}

	data, contentType, err := netx.Download(ctx, a.httpClient, imageURL)
	if err != nil {
		return err
	}

	dir, err := filex.EnsureSubdDir(downloadDir)
	if err != nil {
		return err
	}
	name := filepath.Join(dir, "character-"+id+imageExt(imageURL, contentType))
	if err := filex.WriteFileAtomic(name, data, 0o600); err != nil {
		return err
	}

	a.logger.Info(ctx, "image saved", "id", id, "path", name, "bytes", len(data))
	fmt.Fprintf(a.out, "Saved image to %s\n", name)
	return nil
}

func (a *App) imageURL(id string) (string, string, error) {
	v := a.details.View()
	if id == "" {
		if !v.Open {
			return "", "", fmt.Errorf("usage: image <id>")
		}
		id = v.Record.ID
	}
	if v.Open && v.Record.ID == id && v.Record.Image != "" {
		return v.Record.Image, id, nil
	}
	if s, ok := a.listing.Data.Find(id); ok && s.Image != "" {
		return s.Image, id, nil
	}
	return "", id, fmt.Errorf("character %s: %w on this page", id, common.ErrNotFound)
}

func (a *App) waitTimeout() time.Duration {
	if a.config != nil && a.config.RequestTimeout > 0 {
		return a.config.RequestTimeout
	}
	return 15 * time.Second
}

func imageExt(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" {
			return strings.ToLower(ext)
		}
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		if exts, _ := mime.ExtensionsByType(mt); len(exts) > 0 {
			return exts[0]
		}
	}
	return ".img"
}
