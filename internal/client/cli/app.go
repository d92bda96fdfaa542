package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/readtrack/internal/client/client"
	"github.com/dmitrijs2005/readtrack/internal/client/config"
	"github.com/dmitrijs2005/readtrack/internal/client/models"
	"github.com/dmitrijs2005/readtrack/internal/client/nav"
	"github.com/dmitrijs2005/readtrack/internal/client/scan"
	"github.com/dmitrijs2005/readtrack/internal/client/search"
	"github.com/dmitrijs2005/readtrack/internal/client/services"
	"github.com/dmitrijs2005/readtrack/internal/client/session"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

// sessionTimes reports when the current session was stored.
type sessionTimes interface {
	SavedAt(ctx context.Context) (time.Time, bool, error)
}

type App struct {
	holder   *session.Holder
	shell    *nav.Shell
	auth     services.AuthService
	books    services.BookService
	times    sessionTimes
	search   *search.Debouncer
	resolver *scan.Resolver
	logger   logging.Logger
	reader   *bufio.Reader
	now      func() time.Time

	outMu sync.Mutex
	out   io.Writer

	closeFn func() error
}

// deps is everything an App is built from. Tests fill it with fakes.
type deps struct {
	holder    *session.Holder
	auth      services.AuthService
	books     services.BookService
	times     sessionTimes
	logger    logging.Logger
	debounce  time.Duration
	afterFunc search.AfterFunc
	in        io.Reader
	out       io.Writer
}

// NewApp opens the local database, connects the API client and wires the
// session holder, navigation shell and services together.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	api, err := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewSQLiteStore(db)
	holder := session.NewHolder(store, logger)

	app := newApp(deps{
		holder:   holder,
		auth:     services.NewAuthService(api, holder, logger),
		books:    services.NewBookService(api, holder, logger),
		times:    store,
		logger:   logger,
		debounce: cfg.SearchDebounce,
		in:       os.Stdin,
		out:      os.Stdout,
	})
	app.closeFn = db.Close
	return app, nil
}

func newApp(d deps) *App {
	a := &App{
		holder: d.holder,
		shell:  nav.NewShell(d.holder, d.logger),
		auth:   d.auth,
		books:  d.books,
		times:  d.times,
		logger: d.logger,
		reader: bufio.NewReader(d.in),
		out:    d.out,
		now:    time.Now,
	}

	opts := []search.Option{search.WithLogger(d.logger)}
	if d.afterFunc != nil {
		opts = append(opts, search.WithAfterFunc(d.afterFunc))
	}
	a.search = search.New(d.books.Search, d.debounce, opts...)
	a.search.Hide()
	a.search.OnUpdate(a.showSearchUpdate)

	a.resolver = scan.NewResolver(d.books.LookupISBN, d.logger)
	a.shell.OnChange(a.onNavigate)
	return a
}

// Run restores the stored session and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println(heading("readtrack") + " (type 'help' for commands)")
	a.holder.Initialize(ctx)
	a.warnIfExpired(ctx)

	runREPL(ctx, a, a.prompt, a.reader)
}

// Close stops background work and releases the database.
func (a *App) Close() error {
	a.search.Hide()
	a.shell.Close()
	if a.closeFn != nil {
		return a.closeFn()
	}
	return nil
}

func (a *App) state() nav.State {
	return a.shell.State()
}

func (a *App) prompt() string {
	if cur, ok := a.auth.Current(); ok {
		return fmt.Sprintf("rt (%s)> ", cur.Email)
	}
	return "rt> "
}

// onNavigate reacts to shell transitions: greets on entry, drops cached
// user data on exit.
func (a *App) onNavigate(from, to nav.State) {
	switch to {
	case nav.Authenticated:
		cur, _ := a.auth.Current()
		if from == nav.Loading {
			a.println(success("Welcome back, " + cur.Email))
		} else {
			a.println(success("Signed in as " + cur.Email))
		}
	case nav.Unauthenticated:
		a.search.Hide()
		a.resolver.Reset()
		a.books.Forget()
		if from == nav.Authenticated {
			a.println("Signed out.")
		} else {
			a.println("Please log in or register.")
		}
	}
}

func (a *App) warnIfExpired(ctx context.Context) {
	token := a.holder.Token()
	if token == "" {
		return
	}
	info, err := session.InspectToken(token)
	if err != nil {
		a.logger.Debug(ctx, "token is not inspectable", "error", err)
		return
	}
	if info.Expired(a.now()) {
		a.logger.Warn(ctx, "stored token has expired", "expired_at", info.ExpiresAt)
		a.println(notice("Your session expired on " + info.ExpiresAt.Local().Format(time.RFC1123) + ". Log out and log in again if requests fail."))
	}
}

func (a *App) print(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprint(a.out, args...)
}

// println serializes writes; search results arrive from a timer goroutine.
func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) printBooks(books []models.BookSummary) {
	for i, b := range books {
		a.println(fmt.Sprintf("%2d. %s", i+1, summaryLine(b)))
	}
}
