// internal/store/store.go
//
// The store is the fold at the heart of pile. Every user interaction
// arrives here as a typed action; the store queues them in arrival order,
// applies each one to the previous snapshot on a single goroutine, and
// hands the resulting snapshot to every subscriber. Interleaved dispatches
// are never reordered or batched: one action in, one snapshot out.
//
// Subscribers receive snapshots on a capacity-one channel with latest-wins
// delivery. A renderer is a pure projection of the newest state, so a slow
// consumer skipping intermediate frames observes nothing wrong — it just
// paints less often.

package store

import (
	"sync"

	"github.com/mkrall/pile/internal/journal"
	"github.com/mkrall/pile/internal/todo"
)

const defaultQueueSize = 256

// Option customizes Store construction.
type Option func(*Store)

// WithJournal routes the store's action trail to j.
func WithJournal(j *journal.Journal) Option {
	return func(s *Store) {
		s.jour = j
	}
}

// WithQueueSize overrides the pending-action queue capacity.
func WithQueueSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// Store folds an ordered stream of actions into a live state snapshot.
type Store struct {
	mu    sync.Mutex
	state todo.State
	seq   int64
	subs  map[*subscriber]struct{}

	actions   chan todo.Action
	done      chan struct{}
	closeOnce sync.Once
	queueSize int
	jour      *journal.Journal
}

// Subscription is one live feed of state snapshots.
type Subscription struct {
	States <-chan todo.State
	cancel func()
}

// Close terminates the subscription.
func (s Subscription) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// New creates a store seeded with initial and starts its fold loop.
func New(initial todo.State, opts ...Option) *Store {
	s := &Store{
		state:     initial,
		subs:      map[*subscriber]struct{}{},
		done:      make(chan struct{}),
		queueSize: defaultQueueSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.actions = make(chan todo.Action, s.queueSize)
	go s.run()
	return s
}

// Dispatch queues an action for application. Actions are applied strictly
// in the order Dispatch accepts them. Dispatching to a closed store is a
// no-op.
func (s *Store) Dispatch(act todo.Action) {
	if act == nil {
		return
	}
	select {
	case <-s.done:
	case s.actions <- act:
	}
}

// State returns the latest snapshot.
func (s *Store) State() todo.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a snapshot feed. The current snapshot is delivered
// immediately, so every subscriber's sequence starts with the state as of
// subscription time. Delivery happens under the store lock so a fold
// racing with the subscription cannot have its newer snapshot overwritten
// by the older initial one.
func (s *Store) Subscribe() Subscription {
	sub := newSubscriber()
	s.mu.Lock()
	s.subs[sub] = struct{}{}
	sub.deliver(s.state)
	s.mu.Unlock()
	return Subscription{
		States: sub.ch,
		cancel: func() { s.removeSubscriber(sub) },
	}
}

// Close stops the fold loop and closes all subscriptions.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		subs := make([]*subscriber, 0, len(s.subs))
		for sub := range s.subs {
			subs = append(subs, sub)
		}
		s.subs = map[*subscriber]struct{}{}
		s.mu.Unlock()
		for _, sub := range subs {
			sub.close()
		}
	})
}

func (s *Store) run() {
	for {
		select {
		case <-s.done:
			return
		case act := <-s.actions:
			s.apply(act)
		}
	}
}

func (s *Store) apply(act todo.Action) {
	s.mu.Lock()
	s.journalAbsorbed(act)
	s.state = act.Apply(s.state)
	s.seq++
	seq := s.seq
	next := s.state
	subs := make([]*subscriber, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	s.jour.Infof("action #%d · %s", seq, act)
	for _, sub := range subs {
		sub.deliver(next)
	}
}

// journalAbsorbed leaves a trace when an index-carrying action is about to
// be swallowed as an out-of-bounds no-op. Caller holds s.mu.
func (s *Store) journalAbsorbed(act todo.Action) {
	var idx int
	switch a := act.(type) {
	case todo.RemoveTodo:
		idx = a.Index
	case todo.ToggleCompleted:
		idx = a.Index
	default:
		return
	}
	if !s.state.InBounds(idx) {
		s.jour.Warnf("absorbed %s · index out of bounds (len %d)", act, s.state.Len())
	}
}

func (s *Store) removeSubscriber(sub *subscriber) {
	s.mu.Lock()
	_, ok := s.subs[sub]
	delete(s.subs, sub)
	s.mu.Unlock()
	if ok {
		sub.close()
	}
}

// subscriber holds one capacity-one snapshot channel. deliver replaces a
// pending unread snapshot rather than blocking the fold loop.
type subscriber struct {
	ch      chan todo.State
	closeMu sync.Mutex
	closed  bool
}

func newSubscriber() *subscriber {
	return &subscriber{ch: make(chan todo.State, 1)}
}

func (sub *subscriber) deliver(s todo.State) {
	sub.closeMu.Lock()
	defer sub.closeMu.Unlock()
	if sub.closed {
		return
	}
	for {
		select {
		case sub.ch <- s:
			return
		default:
			select {
			case <-sub.ch:
			default:
			}
		}
	}
}

func (sub *subscriber) close() {
	sub.closeMu.Lock()
	defer sub.closeMu.Unlock()
	if sub.closed {
		return
	}
	sub.closed = true
	close(sub.ch)
}
