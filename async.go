package bem

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrLoopRunning = errors.New("event loop already running")
)

// Timer is a handle on a callback scheduled with Loop.After.
// The zero Timer refers to nothing.
type Timer uint64

// Loop is the single goroutine in charge of the UI tree. Callbacks posted
// from any goroutine run one at a time on the goroutine calling Run, which
// serializes every class attribute access done through them.
//
// Callbacks run in due time order. Callbacks due at the same instant run in
// the order they were scheduled.
type Loop struct {
	mu      sync.Mutex
	pending timerQueue
	byID    map[Timer]*timerEntry
	seq     uint64
	running bool

	wake chan struct{}
	stop chan struct{} // open while Run executes
}

func NewLoop() *Loop {
	return &Loop{
		byID: make(map[Timer]*timerEntry),
		wake: make(chan struct{}, 1),
	}
}

// Do sends a function to the loop goroutine to be run as soon as possible.
func (l *Loop) Do(fn func()) {
	l.After(0, fn)
}

// After schedules fn to run once on the loop after d has elapsed.
// A negative d is treated as zero.
func (l *Loop) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	l.mu.Lock()
	l.seq++
	e := &timerEntry{id: Timer(l.seq), due: time.Now().Add(d), fn: fn}
	heap.Push(&l.pending, e)
	l.byID[e.id] = e
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return e.id
}

// Cancel prevents a pending callback from running. It reports whether the
// callback was still pending.
func (l *Loop) Cancel(t Timer) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.byID[t]
	if !ok {
		return false
	}
	heap.Remove(&l.pending, e.index)
	delete(l.byID, t)
	return true
}

// Pending returns the number of callbacks waiting to run.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Stop ends the current Run. It is a no-op when the loop is not running.
// Pending callbacks are kept and run on the next Run.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		close(l.stop)
		l.stop = nil
	}
}

// Run executes scheduled callbacks until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrLoopRunning
	}
	l.running = true
	stop := make(chan struct{})
	l.stop = stop
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.running = false
		l.stop = nil
		l.mu.Unlock()
	}()

	for {
		batch, wait := l.due(time.Now())
		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-stop:
				return nil
			default:
			}
			continue
		}

		var tick <-chan time.Time
		var t *time.Timer
		if wait >= 0 {
			t = time.NewTimer(wait)
			tick = t.C
		}
		select {
		case <-ctx.Done():
			stopTimer(t)
			return ctx.Err()
		case <-stop:
			stopTimer(t)
			return nil
		case <-l.wake:
		case <-tick:
		}
		stopTimer(t)
	}
}

// due pops the callbacks that are due at now. wait is the delay until the
// next pending callback, or -1 if there is none.
func (l *Loop) due(now time.Time) (batch []func(), wait time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for len(l.pending) > 0 && !l.pending[0].due.After(now) {
		e := heap.Pop(&l.pending).(*timerEntry)
		delete(l.byID, e.id)
		batch = append(batch, e.fn)
	}
	if len(l.pending) == 0 {
		return batch, -1
	}
	return batch, l.pending[0].due.Sub(now)
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}

type timerEntry struct {
	id    Timer
	due   time.Time
	fn    func()
	index int
}

// timerQueue orders entries by due time, then by scheduling order.
type timerQueue []*timerEntry

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].id < q[j].id
	}
	return q[i].due.Before(q[j].due)
}
func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *timerQueue) Push(x any) {
	e := x.(*timerEntry)
	e.index = len(*q)
	*q = append(*q, e)
}
func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}
