package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/portal/internal/client/catalog"
	"github.com/dmitrijs2005/portal/internal/client/config"
	"github.com/dmitrijs2005/portal/internal/client/detail"
	"github.com/dmitrijs2005/portal/internal/client/guard"
	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/dmitrijs2005/portal/internal/client/pagination"
	"github.com/dmitrijs2005/portal/internal/client/profile"
	"github.com/dmitrijs2005/portal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/portal/internal/client/router"
	"github.com/dmitrijs2005/portal/internal/client/session"
	"github.com/dmitrijs2005/portal/internal/client/storage"
	"github.com/dmitrijs2005/portal/internal/common"
	"github.com/dmitrijs2005/portal/internal/logging"
	"golang.org/x/term"
)

// Catalog is the part of the catalog source the views use.
type Catalog interface {
	ListPage(ctx context.Context, page int) catalog.Result[models.CharacterPage]
	RefreshPage(ctx context.Context, page int) catalog.Result[models.CharacterPage]
	GetDetail(ctx context.Context, id string) catalog.Result[models.CharacterDetail]
	RefreshDetail(ctx context.Context, id string) catalog.Result[models.CharacterDetail]
}

type App struct {
	config *config.Config
	logger logging.Logger

	db      *sql.DB
	session *session.Manager
	nav     *router.Navigator
	pager   *pagination.Controller
	source  Catalog
	details *detail.Coordinator

	// guard is mounted for the current group of views; see mountGuard.
	guard    *guard.Guard
	guardKey string

	// listing is the last catalog page rendered.
	listing catalog.Result[models.CharacterPage]
	// refreshed holds the result of a refresh command until the catalog
	// view renders it.
	refreshed *pageResult

	unsubscribe func()

	httpClient *http.Client
	reader     *bufio.Reader
	out        io.Writer
	width      func() int
}

// NewApp opens the profile database and builds every component. The
// session is not loaded until Run.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := profile.NewStore(metadata.NewSQLiteRepository(db), logger)

	gql := catalog.NewGraphQLClient(catalog.ClientOptions{
		Endpoint: c.GraphQLEndpoint,
		Timeout:  c.RequestTimeout,
	}, logger)
	source := catalog.NewSource(gql, c.CacheFreshness, logger)

	a := newApp(c, logger, session.NewManager(store, logger), source)
	a.db = db
	a.httpClient = gql.HTTPClient()

	source.OnDetailRefreshed(a.details.Refreshed)
	source.OnPageRefreshed(func(page int, _ models.CharacterPage) {
		logger.Debug(ctx, "catalog page revalidated", "page", page)
	})

	return a, nil
}

type pageResult struct {
	page int
	res  catalog.Result[models.CharacterPage]
}

func newApp(c *config.Config, logger logging.Logger, sm *session.Manager, source Catalog) *App {
	nav := router.NewNavigator(router.PathHome)
	a := &App{
		config:     c,
		logger:     logger.With("module", "cli", "session_id", sm.ID()),
		session:    sm,
		nav:        nav,
		pager:      pagination.NewController(nav),
		source:     source,
		details:    detail.NewCoordinator(source, logger),
		httpClient: http.DefaultClient,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		width:      terminalWidth,
	}
	a.unsubscribe = sm.Subscribe(a.sessionChanged)
	return a
}

// sessionChanged drops everything derived from the previous user when the
// profile goes away.
func (a *App) sessionChanged(s session.State) {
	ctx := context.Background()
	if s.IsLoading {
		return
	}
	if s.Profile == nil {
		a.logger.Info(ctx, "session ended")
		a.details.Close()
		a.listing = catalog.Result[models.CharacterPage]{}
		a.refreshed = nil
		return
	}
	a.logger.Info(ctx, "session active", "username", s.Profile.Username)
}

// Run loads the session, renders the start location and serves commands
// until the input ends or the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintf(a.out, "Welcome to %s (type 'help' for commands)\n", common.AppName)

	a.session.Load(ctx)
	if err := a.render(ctx); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	runREPL(ctx, a, a.prompt, a.reader)
	return nil
}

// Close releases the database. It is safe to call more than once.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.details.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing database", "error", err)
		}
		a.db = nil
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State().Authenticated()
}

func (a *App) prompt() string {
	s := a.nav.Current()
	if p := a.session.Profile(); p != nil {
		s = p.Username + " " + s
	}
	return fmt.Sprintf("portal (%s)> ", s)
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
