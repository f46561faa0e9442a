package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collectio/internal/domain"
)

type fakeTimer struct {
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
	delays []time.Duration
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{f: f}
	s.timers = append(s.timers, t)
	s.delays = append(s.delays, d)
	return t
}

// fireDue runs every timer that is neither stopped nor already fired
func (s *fakeScheduler) fireDue() {
	s.mu.Lock()
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

// forceFire runs timer i even if it was stopped, as if the runtime had
// already dispatched it when Stop was called.
func (s *fakeScheduler) forceFire(i int) {
	s.mu.Lock()
	t := s.timers[i]
	s.mu.Unlock()
	t.f()
}

func (s *fakeScheduler) armed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

type recorder struct {
	mu         sync.Mutex
	deliveries [][]domain.CollectionWithCount
}

func (r *recorder) subscriber(update []domain.CollectionWithCount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, update)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.deliveries)
}

func (r *recorder) last() []domain.CollectionWithCount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deliveries[len(r.deliveries)-1]
}

func staticLoader(collections ...domain.Collection) Loader {
	list := append([]domain.Collection{domain.NewDefaultCollection()}, collections...)
	return func(context.Context, string) ([]domain.Collection, error) {
		return domain.CloneAll(list), nil
	}
}

func snap(ids ...string) Snapshot {
	return Snapshot{Location: "/notes", Notes: domain.NewNoteSet(ids...)}
}

func newTestBus(opts ...Option) (*Bus, *fakeScheduler, *recorder) {
	sched := &fakeScheduler{}
	work := domain.Collection{ID: "work", SortOrder: 1, NoteIDs: []string{"n1", "n2", "n3"}}
	b := New(staticLoader(work), append([]Option{WithScheduler(sched)}, opts...)...)
	rec := &recorder{}
	b.Subscribe(rec.subscriber)
	return b, sched, rec
}

func TestNotify_DebounceCoalescesToLastSnapshot(t *testing.T) {
	b, sched, rec := newTestBus()
	ctx := context.Background()

	require.NoError(t, b.Notify(ctx, snap("n1"), false))
	require.NoError(t, b.Notify(ctx, snap("n1", "n2"), false))
	require.NoError(t, b.Notify(ctx, snap("n1", "n2", "n3"), false))

	assert.Equal(t, Pending, b.State())
	assert.Equal(t, 1, sched.armed(), "only one timer for the whole burst")
	assert.Equal(t, []time.Duration{DefaultWindow}, sched.delays)
	assert.Zero(t, rec.count())

	sched.fireDue()

	assert.Equal(t, Idle, b.State())
	require.Equal(t, 1, rec.count())
	got := rec.last()
	assert.Equal(t, 3, got[0].NoteCount, "default counts the last snapshot")
	assert.Equal(t, 3, got[1].NoteCount)
}

func TestNotify_ImmediateCancelsPendingTimer(t *testing.T) {
	b, sched, rec := newTestBus()
	ctx := context.Background()

	require.NoError(t, b.Notify(ctx, snap("n1"), false))
	require.NoError(t, b.Notify(ctx, snap("n1", "n2"), true))

	assert.Equal(t, 1, rec.count(), "immediate delivers before returning")
	assert.Equal(t, Idle, b.State())
	assert.Equal(t, 2, rec.last()[0].NoteCount)

	sched.fireDue()
	assert.Equal(t, 1, rec.count())

	// the runtime may have dispatched the timer just before Stop
	sched.forceFire(0)
	assert.Equal(t, 1, rec.count(), "stale timer must not deliver twice")
}

func TestNotify_ImmediateWhenIdle(t *testing.T) {
	b, sched, rec := newTestBus()

	require.NoError(t, b.Notify(context.Background(), snap("n1"), true))

	assert.Equal(t, 1, rec.count())
	assert.Zero(t, sched.armed())
	assert.Equal(t, Idle, b.State())
}

func TestNotify_NewBurstAfterDelivery(t *testing.T) {
	b, sched, rec := newTestBus()
	ctx := context.Background()

	require.NoError(t, b.Notify(ctx, snap("n1"), false))
	sched.fireDue()
	require.NoError(t, b.Notify(ctx, snap("n1", "n2"), false))
	sched.fireDue()

	assert.Equal(t, 2, sched.armed())
	assert.Equal(t, 2, rec.count())
}

func TestSubscriberFailuresAreIsolated(t *testing.T) {
	var reported []error
	b, _, rec := newTestBus(WithErrorHandler(func(err error) { reported = append(reported, err) }))

	b.Subscribe(func([]domain.CollectionWithCount) error { panic("boom") })
	b.Subscribe(func([]domain.CollectionWithCount) error { return errors.New("render failed") })
	after := &recorder{}
	b.Subscribe(after.subscriber)

	require.NoError(t, b.Notify(context.Background(), snap("n1"), true))

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, 1, after.count(), "subscribers after a failing one still receive the update")
	require.Len(t, reported, 2)

	var subErr *SubscriberError
	require.ErrorAs(t, reported[0], &subErr)
	assert.Equal(t, "boom", subErr.Panic)
	require.ErrorAs(t, reported[1], &subErr)
	assert.EqualError(t, subErr.Err, "render failed")
}

func TestSubscribersReceiveIndependentCopies(t *testing.T) {
	b, _, rec := newTestBus()
	b.Subscribe(func(update []domain.CollectionWithCount) error {
		update[1].NoteIDs[0] = "mutated"
		update[1].NoteCount = 99
		return nil
	})

	require.NoError(t, b.Notify(context.Background(), snap("n1"), true))

	got := rec.last()
	assert.Equal(t, "n1", got[1].NoteIDs[0])
	assert.Equal(t, 1, got[1].NoteCount)
}

func TestUnsubscribe(t *testing.T) {
	b, _, rec := newTestBus()
	other := &recorder{}
	unsubscribe := b.Subscribe(other.subscriber)
	assert.Equal(t, 2, b.Subscribers())

	unsubscribe()
	unsubscribe()

	require.NoError(t, b.Notify(context.Background(), snap(), true))
	assert.Equal(t, 1, b.Subscribers())
	assert.Equal(t, 1, rec.count())
	assert.Zero(t, other.count())
}

func TestCleanup_CancelsPendingAndDropsSubscribers(t *testing.T) {
	b, sched, rec := newTestBus()
	ctx := context.Background()

	require.NoError(t, b.Notify(ctx, snap("n1"), false))
	b.Cleanup()

	assert.Equal(t, Idle, b.State())
	assert.Zero(t, b.Subscribers())
	sched.forceFire(0)
	assert.Zero(t, rec.count())

	// still usable after cleanup
	again := &recorder{}
	b.Subscribe(again.subscriber)
	require.NoError(t, b.Notify(ctx, snap("n1"), true))
	assert.Equal(t, 1, again.count())
}

func TestClose_IgnoresLaterNotifications(t *testing.T) {
	b, sched, rec := newTestBus()

	b.Close()
	require.NoError(t, b.Notify(context.Background(), snap("n1"), false))
	require.NoError(t, b.Notify(context.Background(), snap("n1"), true))

	assert.Equal(t, Closed, b.State())
	assert.Zero(t, sched.armed())
	assert.Zero(t, rec.count())
}

func TestNotify_LoadErrorSkipsDelivery(t *testing.T) {
	loadErr := errors.New("disk gone")
	var reported []error
	sched := &fakeScheduler{}
	b := New(
		func(context.Context, string) ([]domain.Collection, error) { return nil, loadErr },
		WithScheduler(sched),
		WithErrorHandler(func(err error) { reported = append(reported, err) }),
	)
	rec := &recorder{}
	b.Subscribe(rec.subscriber)

	err := b.Notify(context.Background(), snap(), true)
	assert.ErrorIs(t, err, loadErr)

	require.NoError(t, b.Notify(context.Background(), snap(), false))
	sched.fireDue()

	assert.Zero(t, rec.count())
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], loadErr)
}

func TestNotify_RealTimerDeliversOnce(t *testing.T) {
	b := New(staticLoader(), WithWindow(20*time.Millisecond))
	delivered := make(chan int, 10)
	b.Subscribe(func(update []domain.CollectionWithCount) error {
		delivered <- update[0].NoteCount
		return nil
	})
	t.Cleanup(b.Close)

	for i := 1; i <= 5; i++ {
		ids := make([]string, i)
		for j := range ids {
			ids[j] = string(rune('a' + j))
		}
		require.NoError(t, b.Notify(context.Background(), snap(ids...), false))
	}

	select {
	case n := <-delivered:
		assert.Equal(t, 5, n)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced delivery never arrived")
	}

	select {
	case n := <-delivered:
		t.Fatalf("unexpected second delivery with count %d", n)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscriber_DebouncedNotifyFromCallbackDoesNotBlock(t *testing.T) {
	b, sched, _ := newTestBus()
	ctx := context.Background()

	var once sync.Once
	b.Subscribe(func([]domain.CollectionWithCount) error {
		once.Do(func() {
			assert.NoError(t, b.Notify(ctx, snap("n1"), false))
		})
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- b.Notify(ctx, snap("n1", "n2"), true) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("immediate delivery blocked on a re-entrant debounced notify")
	}
	assert.Equal(t, Pending, b.State())
	assert.Equal(t, 1, sched.armed())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "closed", Closed.String())
}
