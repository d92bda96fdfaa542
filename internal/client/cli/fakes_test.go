package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/readtrack/internal/client/client"
	"github.com/dmitrijs2005/readtrack/internal/client/models"
	"github.com/dmitrijs2005/readtrack/internal/client/search"
	"github.com/dmitrijs2005/readtrack/internal/client/services"
	"github.com/dmitrijs2005/readtrack/internal/client/session"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

// ------------ fake remote API ------------

type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	loginRet   client.LoginResult
	loginErr   error
	signUpErr  error
	searchRet  map[string][]models.BookSummary
	isbnRet    models.BookDetails
	isbnErr    error
	detailsRet models.BookDetails
	detailsErr error
	books      []models.LibraryEntry
	booksErr   error
	addErr     error
}

func (f *fakeAPI) record(c string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Login(_ context.Context, email string, _ []byte) (client.LoginResult, error) {
	f.record("login:" + email)
	return f.loginRet, f.loginErr
}

func (f *fakeAPI) SignUp(_ context.Context, email string, _ []byte) error {
	f.record("signup:" + email)
	return f.signUpErr
}

func (f *fakeAPI) SearchTitle(_ context.Context, q string) ([]models.BookSummary, error) {
	f.record("search:" + q)
	return f.searchRet[q], nil
}

func (f *fakeAPI) LookupISBN(_ context.Context, isbn string) (models.BookDetails, error) {
	f.record("isbn:" + isbn)
	return f.isbnRet, f.isbnErr
}

func (f *fakeAPI) BookDetails(_ context.Context, workID string) (models.BookDetails, error) {
	f.record("details:" + workID)
	return f.detailsRet, f.detailsErr
}

func (f *fakeAPI) MyBooks(_ context.Context, _ string) ([]models.LibraryEntry, error) {
	f.record("mybooks")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.booksErr != nil {
		return nil, f.booksErr
	}
	return append([]models.LibraryEntry(nil), f.books...), nil
}

func (f *fakeAPI) AddBook(_ context.Context, _ string, workID string, status models.Status) error {
	f.record("addbook:" + workID + ":" + status.String())
	if f.addErr != nil {
		return f.addErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.books {
		if f.books[i].WorkID == workID {
			f.books[i].Status = status
			return nil
		}
	}
	f.books = append(f.books, models.LibraryEntry{BookSummary: models.BookSummary{WorkID: workID, Title: workID}, Status: status})
	return nil
}

// ------------ in-memory session store ------------

type memStore struct {
	mu      sync.Mutex
	rec     *models.Session
	savedAt time.Time
	saveErr error
}

func (m *memStore) Load(context.Context) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return nil, nil
	}
	r := *m.rec
	return &r, nil
}

func (m *memStore) Save(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rec = &s
	m.savedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return nil
}

func (m *memStore) Remove(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = nil
	return nil
}

func (m *memStore) SavedAt(context.Context) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.savedAt, m.rec != nil, nil
}

// ------------ manual clock for the debouncer ------------

type manualTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualClock struct {
	mu        sync.Mutex
	now       time.Duration
	timers    []*manualTimer
	scheduled chan struct{}
}

func newManualClock() *manualClock {
	return &manualClock{scheduled: make(chan struct{}, 64)}
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) search.Timer {
	c.mu.Lock()
	t := &manualTimer{at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	c.mu.Unlock()
	c.scheduled <- struct{}{}
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && t.at <= c.now {
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		if !t.stopped {
			t.stopped = true
			t.fn()
		}
	}
}

// ------------ output ------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// ------------ helpers ------------

type testEnv struct {
	app   *App
	api   *fakeAPI
	store *memStore
	out   *syncBuffer
	clock *manualClock
}

func newTestEnv(t *testing.T, api *fakeAPI, in io.Reader) *testEnv {
	t.Helper()
	if in == nil {
		in = bytes.NewReader(nil)
	}
	store := &memStore{}
	holder := session.NewHolder(store, logging.Discard())
	out := &syncBuffer{}
	clock := newManualClock()

	app := newApp(deps{
		holder:    holder,
		auth:      services.NewAuthService(api, holder, logging.Discard()),
		books:     services.NewBookService(api, holder, logging.Discard()),
		times:     store,
		logger:    logging.Discard(),
		debounce:  300 * time.Millisecond,
		afterFunc: clock.AfterFunc,
		in:        in,
		out:       out,
	})
	t.Cleanup(func() { _ = app.Close() })
	return &testEnv{app: app, api: api, store: store, out: out, clock: clock}
}

func loginResult(token, id, email string) client.LoginResult {
	var r client.LoginResult
	r.Token = token
	r.User.ID = id
	r.User.Email = email
	return r
}

func stubInputs(t *testing.T, text string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	i := 0
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		pw := passwords[i%len(passwords)]
		i++
		return []byte(pw), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// signIn puts env into the authenticated state through the real login path.
func (e *testEnv) signIn(t *testing.T) {
	t.Helper()
	e.api.loginRet = loginResult("tok-1", "u-1", "alice@example.org")
	e.app.holder.Initialize(context.Background())
	stubInputs(t, "alice@example.org", "secret")
	require.NoError(t, e.app.Login(context.Background()))
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
