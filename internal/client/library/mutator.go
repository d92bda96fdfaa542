// Package library holds the signed-in user's shelf: the fetched entries
// and the optimistic status labels shown while an update is in flight.
package library

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/readtrack/internal/client/models"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

var ErrNotSignedIn = errors.New("not signed in")

// TokenSource yields the current bearer token, or "" when signed out.
type TokenSource interface {
	Token() string
}

// Adder sends a status update for one work.
type Adder interface {
	AddBook(ctx context.Context, token string, workID string, status models.Status) error
}

// RefreshFunc reloads whatever view shows the changed status.
type RefreshFunc func(ctx context.Context) error

// ErrRefresh marks a status update that was stored by the API but whose
// follow-up reload failed.
var ErrRefresh = errors.New("library could not be reloaded")

// StatusMutator changes reading statuses. The local label is updated
// before the request is sent and restored if the request fails.
type StatusMutator struct {
	api    Adder
	tokens TokenSource
	logger logging.Logger

	mu      sync.Mutex
	labels  map[string]models.Status
	pending map[string]pendingUpdate
	seq     uint64
}

// pendingUpdate tracks the newest unsettled update of one work. base is
// the label to fall back to if that update fails.
type pendingUpdate struct {
	gen     uint64
	status  models.Status
	base    models.Status
	hasBase bool
}

func NewStatusMutator(api Adder, tokens TokenSource, logger logging.Logger) *StatusMutator {
	return &StatusMutator{
		api:     api,
		tokens:  tokens,
		logger:  logger,
		labels:  make(map[string]models.Status),
		pending: make(map[string]pendingUpdate),
	}
}

// SetStatus records status for workID. On success refresh, when non-nil,
// is called exactly once. A refresh failure is returned wrapped in
// ErrRefresh; the update itself stands.
func (m *StatusMutator) SetStatus(ctx context.Context, workID string, status models.Status, refresh RefreshFunc) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownStatus, string(status))
	}
	workID = models.NormalizeWorkID(workID)
	if workID == "" {
		return errors.New("empty work id")
	}
	token := m.tokens.Token()
	if token == "" {
		return ErrNotSignedIn
	}

	gen := m.swap(workID, status)

	if err := m.api.AddBook(ctx, token, workID, status); err != nil {
		m.rollback(workID, gen)
		m.logger.Warn(ctx, "status update failed", "work_id", workID, "status", status.String(), "error", err)
		return fmt.Errorf("set status: %w", err)
	}
	m.confirm(workID, status, gen)
	m.logger.Info(ctx, "status updated", "work_id", workID, "status", status.String())

	if refresh == nil {
		return nil
	}
	if err := refresh(ctx); err != nil {
		m.logger.Warn(ctx, "reload after status update failed", "work_id", workID, "error", err)
		return fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	return nil
}

// swap shows status for workID and returns the generation of this update.
func (m *StatusMutator) swap(workID string, status models.Status) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p, ok := m.pending[workID]
	if !ok {
		p.base, p.hasBase = m.labels[workID]
	}
	p.gen = m.seq
	p.status = status
	m.pending[workID] = p
	m.labels[workID] = status
	return p.gen
}

// confirm settles a successful update. An older update finishing after a
// newer one was sent only moves the fallback label.
func (m *StatusMutator) confirm(workID string, status models.Status, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pending[workID]
	if !ok {
		return
	}
	if p.gen == gen {
		delete(m.pending, workID)
		return
	}
	p.base, p.hasBase = status, true
	m.pending[workID] = p
}

// rollback restores the fallback label, unless a newer update owns it.
func (m *StatusMutator) rollback(workID string, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pending[workID]
	if !ok || p.gen != gen {
		return
	}
	delete(m.pending, workID)
	if p.hasBase {
		m.labels[workID] = p.base
	} else {
		delete(m.labels, workID)
	}
}

// Label returns the status shown for workID.
func (m *StatusMutator) Label(workID string) (models.Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.labels[models.NormalizeWorkID(workID)]
	return s, ok
}

// Sync replaces all labels with the statuses of freshly fetched entries.
// Updates still in flight keep their label and fall back to the fetched one.
func (m *StatusMutator) Sync(entries []models.LibraryEntry) {
	labels := make(map[string]models.Status, len(entries))
	for _, e := range entries {
		labels[e.WorkID] = e.Status
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.pending {
		p.base, p.hasBase = labels[id]
		m.pending[id] = p
		labels[id] = p.status
	}
	m.labels = labels
}

// Clear drops every label, e.g. on sign-out.
func (m *StatusMutator) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.labels = make(map[string]models.Status)
	m.pending = make(map[string]pendingUpdate)
}
