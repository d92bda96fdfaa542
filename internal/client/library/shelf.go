package library

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/readtrack/internal/client/models"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

// Fetcher lists the signed-in user's books.
type Fetcher interface {
	MyBooks(ctx context.Context, token string) ([]models.LibraryEntry, error)
}

// DefaultFilter is the status the library screen opens with.
const DefaultFilter = models.StatusToRead

// Shelves groups entries for the home screen.
type Shelves struct {
	Reading []models.LibraryEntry
	ToRead  []models.LibraryEntry
}

// Shelf caches the last fetched library. It is reloaded on every visit.
type Shelf struct {
	api    Fetcher
	tokens TokenSource
	labels *StatusMutator
	logger logging.Logger

	mu      sync.RWMutex
	entries []models.LibraryEntry
}

// NewShelf returns a shelf. labels may be nil; when set it is synced with
// every successful fetch.
func NewShelf(api Fetcher, tokens TokenSource, labels *StatusMutator, logger logging.Logger) *Shelf {
	return &Shelf{api: api, tokens: tokens, labels: labels, logger: logger}
}

// Refresh fetches the library. It has the RefreshFunc signature so it can
// be handed to StatusMutator.SetStatus.
func (s *Shelf) Refresh(ctx context.Context) error {
	token := s.tokens.Token()
	if token == "" {
		return ErrNotSignedIn
	}
	entries, err := s.api.MyBooks(ctx, token)
	if err != nil {
		s.logger.Warn(ctx, "library fetch failed", "error", err)
		return fmt.Errorf("fetch library: %w", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	if s.labels != nil {
		s.labels.Sync(entries)
	}
	s.logger.Debug(ctx, "library fetched", "count", len(entries))
	return nil
}

// Entries returns a copy of the cached entries.
func (s *Shelf) Entries() []models.LibraryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.LibraryEntry(nil), s.entries...)
}

// Filter returns cached entries with the given status.
func (s *Shelf) Filter(status models.Status) []models.LibraryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.FilterByStatus(s.entries, status)
}

func (s *Shelf) Shelves() Shelves {
	return Shelves{
		Reading: s.Filter(models.StatusReading),
		ToRead:  s.Filter(models.StatusToRead),
	}
}

// Reset forgets cached entries.
func (s *Shelf) Reset() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}
