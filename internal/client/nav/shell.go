// Package nav decides which flow the client shows: nothing while the
// session loads, the sign-in flow when logged out, the main flow when
// logged in.
package nav

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/readtrack/internal/client/session"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

type State int

const (
	Loading State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// allowed lists every legal edge. Loading is never re-entered.
var allowed = map[State]map[State]bool{
	Loading:         {Unauthenticated: true, Authenticated: true},
	Unauthenticated: {Authenticated: true},
	Authenticated:   {Unauthenticated: true},
}

// Transition is one recorded state change.
type Transition struct {
	From, To State
}

// StateSource is the part of the session holder the shell watches.
type StateSource interface {
	Snapshot() session.Snapshot
	Subscribe(fn func(session.Snapshot)) (unsubscribe func())
}

type Shell struct {
	logger logging.Logger

	mu          sync.Mutex
	state       State
	history     []Transition
	listeners   []func(from, to State)
	unsubscribe func()
}

// NewShell derives its initial state from src and follows it from then on.
func NewShell(src StateSource, logger logging.Logger) *Shell {
	s := &Shell{logger: logger, state: stateOf(src.Snapshot())}
	s.unsubscribe = src.Subscribe(s.observe)
	return s
}

func stateOf(snap session.Snapshot) State {
	switch {
	case snap.Loading:
		return Loading
	case snap.Session != nil:
		return Authenticated
	default:
		return Unauthenticated
	}
}

func (s *Shell) observe(snap session.Snapshot) {
	to := stateOf(snap)

	s.mu.Lock()
	from := s.state
	if from == to {
		s.mu.Unlock()
		return
	}
	if !allowed[from][to] {
		s.mu.Unlock()
		s.logger.Warn(context.Background(), "rejected navigation transition", "from", from, "to", to)
		return
	}
	s.state = to
	s.history = append(s.history, Transition{From: from, To: to})
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(from, to)
	}
}

func (s *Shell) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transitions returns the accepted transitions in order.
func (s *Shell) Transitions() []Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Transition(nil), s.history...)
}

// OnChange registers fn to run after each accepted transition.
func (s *Shell) OnChange(fn func(from, to State)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Close stops following the session holder.
func (s *Shell) Close() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}
