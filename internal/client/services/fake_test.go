package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/readtrack/internal/client/client"
	"github.com/dmitrijs2005/readtrack/internal/client/models"
	"github.com/dmitrijs2005/readtrack/internal/client/session"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

// fakeClient implements client.Client and records every call.
type fakeClient struct {
	mu sync.Mutex

	LoginRet client.LoginResult
	LoginErr error

	SignUpErr error

	SearchRet map[string][]models.BookSummary
	SearchErr error

	ISBNRet models.BookDetails
	ISBNErr error

	DetailsRet models.BookDetails
	DetailsErr error

	MyBooksRet []models.LibraryEntry
	MyBooksErr error

	AddErr error

	Calls      []string
	LastEmail  string
	LastToken  string
	LastWorkID string
	LastStatus models.Status
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

func (f *fakeClient) Login(_ context.Context, email string, _ []byte) (client.LoginResult, error) {
	f.record("login")
	f.LastEmail = email
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) SignUp(_ context.Context, email string, _ []byte) error {
	f.record("signup")
	f.LastEmail = email
	return f.SignUpErr
}

func (f *fakeClient) SearchTitle(_ context.Context, q string) ([]models.BookSummary, error) {
	f.record("search:" + q)
	return f.SearchRet[q], f.SearchErr
}

func (f *fakeClient) LookupISBN(_ context.Context, isbn string) (models.BookDetails, error) {
	f.record("isbn:" + isbn)
	return f.ISBNRet, f.ISBNErr
}

func (f *fakeClient) BookDetails(_ context.Context, workID string) (models.BookDetails, error) {
	f.record("details:" + workID)
	return f.DetailsRet, f.DetailsErr
}

func (f *fakeClient) MyBooks(_ context.Context, token string) ([]models.LibraryEntry, error) {
	f.record("mybooks")
	f.LastToken = token
	return f.MyBooksRet, f.MyBooksErr
}

func (f *fakeClient) AddBook(_ context.Context, token, workID string, status models.Status) error {
	f.record("addbook")
	f.LastToken = token
	f.LastWorkID = workID
	f.LastStatus = status
	return f.AddErr
}

func newHolder(t *testing.T) (*session.Holder, *sql.DB) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "readtrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	h := session.NewHolder(session.NewSQLiteStore(db), logging.Discard())
	h.Initialize(context.Background())
	return h, db
}

func loginResult(token, id, email string) client.LoginResult {
	var r client.LoginResult
	r.Token = token
	r.User.ID = id
	r.User.Email = email
	return r
}
