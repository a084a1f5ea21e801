package state

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var ErrStoreClosed = errors.New("store closed")

// Effect reacts to actions after they have been reduced. Handle runs on the
// store loop and must not block; I/O belongs in Scope.Go.
type Effect interface {
	Handle(a Action, s RootState, sc Scope)
}

type EffectFunc func(a Action, s RootState, sc Scope)

func (f EffectFunc) Handle(a Action, s RootState, sc Scope) { f(a, s, sc) }

// Listener is notified with the new state after every reduced action.
type Listener func(s RootState, a Action)

// Scope lets an effect run work whose outcome is dispatched back to the store.
type Scope struct {
	ctx   context.Context
	store *Store
}

// Context is cancelled when the store is closed.
func (sc Scope) Context() context.Context { return sc.ctx }

// Go runs fn on its own goroutine and dispatches the returned action, if any.
func (sc Scope) Go(fn func(ctx context.Context) Action) {
	sc.store.effectsWG.Add(1)
	go func() {
		defer sc.store.effectsWG.Done()
		if a := fn(sc.ctx); a != nil {
			if err := sc.store.Dispatch(a); err != nil {
				sc.store.logger.Debug("effect result dropped", "type", a.Type(), "err", err)
			}
		}
	}()
}

// Store serializes actions through a single reducer goroutine.
type Store struct {
	logger  *slog.Logger
	effects []Effect

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	wake      chan struct{}
	effectsWG sync.WaitGroup

	queueMu sync.Mutex
	queue   []Action
	closed  bool

	mu        sync.RWMutex
	state     RootState
	listeners map[int]Listener
	nextID    int
}

func NewStore(initial RootState, logger *slog.Logger, effects ...Effect) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		logger:    logger,
		effects:   effects,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		wake:      make(chan struct{}, 1),
		state:     initial,
		listeners: make(map[int]Listener),
	}
	go s.loop()
	return s
}

// Dispatch enqueues a. Actions are reduced one at a time in dispatch order.
func (s *Store) Dispatch(a Action) error {
	s.queueMu.Lock()
	if s.closed {
		s.queueMu.Unlock()
		return ErrStoreClosed
	}
	s.queue = append(s.queue, a)
	s.queueMu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// State returns the current snapshot. Snapshots share storage with the
// store and must be treated as read-only.
func (s *Store) State() RootState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn and returns a func that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Close reduces everything already dispatched, cancels in-flight effects
// and waits for them to return.
func (s *Store) Close() {
	s.queueMu.Lock()
	if s.closed {
		s.queueMu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	s.queueMu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	<-s.done
	s.cancel()
	s.effectsWG.Wait()
}

func (s *Store) loop() {
	defer close(s.done)
	for range s.wake {
		for {
			s.queueMu.Lock()
			if len(s.queue) == 0 {
				closed := s.closed
				s.queueMu.Unlock()
				if closed {
					return
				}
				break
			}
			a := s.queue[0]
			s.queue[0] = nil
			s.queue = s.queue[1:]
			s.queueMu.Unlock()

			s.process(a)
		}
	}
}

func (s *Store) process(a Action) {
	s.logger.Debug("dispatch", "type", a.Type())

	s.mu.Lock()
	next := Reduce(s.state, a)
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next, a)
	}

	sc := Scope{ctx: s.ctx, store: s}
	for _, e := range s.effects {
		e.Handle(a, next, sc)
	}
}
