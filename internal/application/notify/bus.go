// Package notify fans recomputed collection lists out to subscribers,
// coalescing bursts of changes into one delivery.
package notify

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"collectio/internal/domain"
	"collectio/internal/ports"
)

// DefaultWindow is the debounce window for non-immediate notifications
const DefaultWindow = 300 * time.Millisecond

// State is the debounce state of a Bus
type State int

const (
	Idle State = iota
	Pending
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot is what a delivery is computed from
type Snapshot struct {
	Location string
	Notes    domain.NoteSet
}

// Loader returns the current collections for a location, normally the
// Store's cache-or-load read.
type Loader func(ctx context.Context, location string) ([]domain.Collection, error)

// SubscriberError reports a subscriber that returned an error or panicked
type SubscriberError struct {
	SubscriberID int
	Err          error
	Panic        any
}

func (e *SubscriberError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("subscriber %d panicked: %v", e.SubscriberID, e.Panic)
	}
	return fmt.Sprintf("subscriber %d failed: %v", e.SubscriberID, e.Err)
}

func (e *SubscriberError) Unwrap() error { return e.Err }

// Option configures a Bus
type Option func(*Bus)

// WithWindow sets the debounce window
func WithWindow(d time.Duration) Option {
	return func(b *Bus) {
		if d > 0 {
			b.window = d
		}
	}
}

// WithScheduler replaces the timer source
func WithScheduler(s Scheduler) Option {
	return func(b *Bus) { b.scheduler = s }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithErrorHandler receives subscriber failures and load errors that happen
// during a debounced delivery, where there is no caller to return them to.
func WithErrorHandler(fn func(error)) Option {
	return func(b *Bus) { b.onError = fn }
}

type subscription struct {
	id int
	fn ports.Subscriber
}

// Bus is an explicit Idle/Pending state machine around one single-shot timer.
// It is owned by one window: construct it with New, and call Cleanup or
// Close when the window goes away.
type Bus struct {
	load      Loader
	window    time.Duration
	scheduler Scheduler
	logger    *zap.Logger
	onError   func(error)

	mu          sync.Mutex
	state       State
	pending     Snapshot
	timer       Timer
	generation  uint64 // bumped whenever an armed timer is abandoned
	subscribers []subscription
	nextID      int

	// serializes deliveries so a timer delivery and an immediate one never interleave
	deliverMu sync.Mutex
}

// New creates an idle bus
func New(load Loader, opts ...Option) *Bus {
	b := &Bus{
		load:      load,
		window:    DefaultWindow,
		scheduler: RealScheduler,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.Named("notify")
	return b
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is harmless.
// Deliveries are serialized, so fn must not call Notify with immediate set
// (or any mutation that does) from inside the callback: that blocks
// forever. A debounced Notify only arms the timer and is safe.
func (b *Bus) Subscribe(fn ports.Subscriber) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subscribers = append(b.subscribers, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.subscribers = slices.DeleteFunc(b.subscribers, func(s subscription) bool { return s.id == id })
		})
	}
}

// Notify schedules or performs a delivery.
//
// Non-immediate calls arm the timer once and keep only the latest snapshot;
// further calls inside the window replace the snapshot without adding
// timers. An immediate call cancels any armed timer and delivers the given
// snapshot before returning.
func (b *Bus) Notify(ctx context.Context, snap Snapshot, immediate bool) error {
	b.mu.Lock()
	if b.state == Closed {
		b.mu.Unlock()
		return nil
	}

	if !immediate {
		b.pending = snap
		if b.state == Idle {
			b.generation++
			gen := b.generation
			b.timer = b.scheduler.AfterFunc(b.window, func() { b.fire(gen) })
			b.state = Pending
		}
		b.mu.Unlock()
		return nil
	}

	b.cancelLocked()
	b.mu.Unlock()

	return b.deliver(ctx, snap)
}

// fire runs on the timer goroutine. A stale generation means the timer was
// canceled after it had already started, so it must not deliver.
func (b *Bus) fire(gen uint64) {
	b.mu.Lock()
	if b.state != Pending || gen != b.generation {
		b.mu.Unlock()
		return
	}
	snap := b.pending
	b.pending = Snapshot{}
	b.timer = nil
	b.state = Idle
	b.mu.Unlock()

	if err := b.deliver(context.Background(), snap); err != nil {
		b.report(err)
	}
}

// cancelLocked stops any armed timer and returns to Idle. Callers hold mu.
func (b *Bus) cancelLocked() {
	if b.state != Pending {
		return
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.generation++
	b.timer = nil
	b.pending = Snapshot{}
	b.state = Idle
}

func (b *Bus) deliver(ctx context.Context, snap Snapshot) error {
	b.deliverMu.Lock()
	defer b.deliverMu.Unlock()

	collections, err := b.load(ctx, snap.Location)
	if err != nil {
		b.logger.Warn("skipping delivery, collections could not be loaded",
			zap.String("location", snap.Location), zap.Error(err))
		return err
	}
	counted := domain.WithCounts(collections, snap.Notes)

	b.mu.Lock()
	subs := slices.Clone(b.subscribers)
	b.mu.Unlock()

	for _, sub := range subs {
		b.invoke(sub, cloneCounts(counted))
	}
	return nil
}

func (b *Bus) invoke(sub subscription, update []domain.CollectionWithCount) {
	defer func() {
		if r := recover(); r != nil {
			b.report(&SubscriberError{SubscriberID: sub.id, Panic: r})
		}
	}()
	if err := sub.fn(update); err != nil {
		b.report(&SubscriberError{SubscriberID: sub.id, Err: err})
	}
}

func (b *Bus) report(err error) {
	b.logger.Warn("notification failed", zap.Error(err))
	if b.onError != nil {
		b.onError(err)
	}
}

// Cleanup removes every subscriber and cancels a pending delivery.
// The bus stays usable.
func (b *Bus) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelLocked()
	b.subscribers = nil
}

// Close cleans up and ignores every later Notify
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelLocked()
	b.subscribers = nil
	b.state = Closed
}

// State returns the current debounce state
func (b *Bus) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Subscribers returns the number of registered subscribers
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

func cloneCounts(in []domain.CollectionWithCount) []domain.CollectionWithCount {
	out := make([]domain.CollectionWithCount, len(in))
	for i, c := range in {
		out[i] = domain.CollectionWithCount{Collection: c.Collection.Clone(), NoteCount: c.NoteCount}
	}
	return out
}
