// Package session owns "who is logged in": a Holder with a single writer
// and read-only observers, backed by a durable Store.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/readtrack/internal/client/models"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

var (
	// ErrPersistence wraps a store failure. The in-memory transition has
	// still happened when it is returned.
	ErrPersistence = errors.New("session not persisted")

	ErrIncompleteSession = models.ErrIncompleteSession
)

// Snapshot is an immutable view of the holder's state handed to observers.
type Snapshot struct {
	Session *models.Session
	Loading bool
}

// Holder is the process-wide source of truth for the current session.
// It starts in the loading state; Initialize leaves it exactly once.
type Holder struct {
	store  Store
	logger logging.Logger

	mu        sync.RWMutex
	record    *models.Session
	loading   bool
	observers map[int]func(Snapshot)
	nextID    int

	initOnce sync.Once
}

func NewHolder(store Store, logger logging.Logger) *Holder {
	return &Holder{
		store:     store,
		logger:    logger,
		loading:   true,
		observers: make(map[int]func(Snapshot)),
	}
}

// Initialize loads the persisted record. Read failures are logged and
// leave the holder logged out. Only the first call has any effect.
func (h *Holder) Initialize(ctx context.Context) {
	h.initOnce.Do(func() {
		rec, err := h.store.Load(ctx)
		if err != nil {
			h.logger.Error(ctx, "failed to load session", "error", err)
			rec = nil
		}
		if rec != nil && rec.Validate() != nil {
			h.logger.Warn(ctx, "ignoring incomplete stored session")
			rec = nil
		}

		h.mu.Lock()
		h.record = rec
		h.loading = false
		h.mu.Unlock()

		if rec != nil {
			h.logger.Info(ctx, "session restored", "user_id", rec.UserID)
		}
		h.notify()
	})
}

// SignIn persists rec and makes it current. A persistence failure is
// logged and returned wrapped in ErrPersistence; the record is current
// regardless.
func (h *Holder) SignIn(ctx context.Context, rec models.Session) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	var perr error
	if err := h.store.Save(ctx, rec); err != nil {
		h.logger.Error(ctx, "error saving session", "error", err)
		perr = fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	h.mu.Lock()
	r := rec
	h.record = &r
	h.mu.Unlock()

	h.logger.Info(ctx, "signed in", "user_id", rec.UserID)
	h.notify()
	return perr
}

// SignOut removes the persisted record and clears the current one, with
// the same best-effort durability as SignIn.
func (h *Holder) SignOut(ctx context.Context) error {
	var perr error
	if err := h.store.Remove(ctx); err != nil {
		h.logger.Error(ctx, "error removing session", "error", err)
		perr = fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	h.mu.Lock()
	h.record = nil
	h.mu.Unlock()

	h.logger.Info(ctx, "signed out")
	h.notify()
	return perr
}

// Current returns a copy of the current record.
func (h *Holder) Current() (models.Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.record == nil {
		return models.Session{}, false
	}
	return *h.record, true
}

// Token returns the current bearer token or "" when logged out.
func (h *Holder) Token() string {
	s, _ := h.Current()
	return s.Token
}

func (h *Holder) Loading() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loading
}

func (h *Holder) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshotLocked()
}

func (h *Holder) snapshotLocked() Snapshot {
	snap := Snapshot{Loading: h.loading}
	if h.record != nil {
		r := *h.record
		snap.Session = &r
	}
	return snap
}

// Subscribe registers fn to run after every state change. The returned
// function unregisters it.
func (h *Holder) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.observers[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.observers, id)
		h.mu.Unlock()
	}
}

func (h *Holder) notify() {
	h.mu.RLock()
	snap := h.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(h.observers))
	for i := 0; i < h.nextID; i++ {
		if fn, ok := h.observers[i]; ok {
			fns = append(fns, fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(snap)
	}
}
