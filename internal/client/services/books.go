package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/readtrack/internal/client/client"
	"github.com/dmitrijs2005/readtrack/internal/client/library"
	"github.com/dmitrijs2005/readtrack/internal/client/models"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

var ErrNotSignedIn = library.ErrNotSignedIn

// BookService covers the catalog and the user's library.
type BookService interface {
	Search(ctx context.Context, query string) ([]models.BookSummary, error)
	LookupISBN(ctx context.Context, isbn string) (models.BookDetails, error)
	Details(ctx context.Context, workID string) (models.BookDetails, error)

	RefreshLibrary(ctx context.Context) error
	Library(status models.Status) []models.LibraryEntry
	Shelves() library.Shelves
	SetStatus(ctx context.Context, workID string, status models.Status) error
	StatusOf(workID string) (models.Status, bool)
	Forget()
}

type bookService struct {
	client  client.Client
	shelf   *library.Shelf
	mutator *library.StatusMutator
	logger  logging.Logger
}

func NewBookService(c client.Client, tokens library.TokenSource, logger logging.Logger) BookService {
	m := library.NewStatusMutator(c, tokens, logger)
	return &bookService{
		client:  c,
		shelf:   library.NewShelf(c, tokens, m, logger),
		mutator: m,
		logger:  logger,
	}
}

// Search returns an empty list for a blank query without calling the server.
func (s *bookService) Search(ctx context.Context, query string) ([]models.BookSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.BookSummary{}, nil
	}
	res, err := s.client.SearchTitle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return res, nil
}

func (s *bookService) LookupISBN(ctx context.Context, isbn string) (models.BookDetails, error) {
	b, err := s.client.LookupISBN(ctx, isbn)
	if err != nil {
		return models.BookDetails{}, fmt.Errorf("isbn %s: %w", isbn, err)
	}
	return b, nil
}

func (s *bookService) Details(ctx context.Context, workID string) (models.BookDetails, error) {
	workID = models.NormalizeWorkID(workID)
	if workID == "" {
		return models.BookDetails{}, fmt.Errorf("details: empty work id")
	}
	b, err := s.client.BookDetails(ctx, workID)
	if err != nil {
		return models.BookDetails{}, fmt.Errorf("details %s: %w", workID, err)
	}
	if b.WorkID == "" {
		b.WorkID = workID
	}
	return b, nil
}

func (s *bookService) RefreshLibrary(ctx context.Context) error {
	return s.shelf.Refresh(ctx)
}

func (s *bookService) Library(status models.Status) []models.LibraryEntry {
	return s.shelf.Filter(status)
}

func (s *bookService) Shelves() library.Shelves {
	return s.shelf.Shelves()
}

// SetStatus updates the status and reloads the library on success.
func (s *bookService) SetStatus(ctx context.Context, workID string, status models.Status) error {
	return s.mutator.SetStatus(ctx, workID, status, s.shelf.Refresh)
}

func (s *bookService) StatusOf(workID string) (models.Status, bool) {
	return s.mutator.Label(workID)
}

// Forget drops cached library data, e.g. after sign-out.
func (s *bookService) Forget() {
	s.shelf.Reset()
	s.mutator.Clear()
}
