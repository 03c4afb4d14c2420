// Package scheduler fires due-date events at their trigger time from a
// single background timer loop.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

// DueEvent fires once a card's due date has passed.
type DueEvent struct {
	CardID    string
	Due       string
	TriggerAt time.Time
}

// entry orders events by trigger time, then by the order they were queued.
type entry struct {
	DueEvent
	seq uint64
}

type dueHeap []entry

func (h dueHeap) Len() int { return len(h) }

func (h dueHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if !a.TriggerAt.Equal(b.TriggerAt) {
		return a.TriggerAt.Before(b.TriggerAt)
	}
	return a.seq < b.seq
}

func (h dueHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *dueHeap) Push(x any) { *h = append(*h, x.(entry)) }

func (h *dueHeap) Pop() any {
	old := *h
	last := old[len(old)-1]
	*h = old[:len(old)-1]
	return last
}

// Engine holds queued due events and emits each on C once its trigger
// time passes. Sends never block; events are dropped and counted when
// the consumer lags.
type Engine struct {
	mu      sync.Mutex
	pending dueHeap
	seq     uint64
	running bool
	closed  bool

	out     chan DueEvent
	wake    chan struct{}
	quit    chan struct{}
	done    chan struct{}
	now     func() time.Time
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		out:  make(chan DueEvent, bufferSize),
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
		now:  time.Now,
	}
}

// C delivers fired events. It is closed when the engine stops.
func (e *Engine) C() <-chan DueEvent { return e.out }

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running || e.closed {
		return
	}
	e.running = true
	go e.run()
}

// Stop ends the loop and closes C. Schedule fails afterwards.
func (e *Engine) Stop() {
	e.mu.Lock()
	wasRunning := e.running && !e.closed
	e.closed = true
	e.mu.Unlock()
	if !wasRunning {
		return
	}
	close(e.quit)
	<-e.done
}

func (e *Engine) Schedule(ev DueEvent) error {
	if ev.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrStopped
	}
	e.push(ev)
	e.poke()
	return nil
}

// Clear discards every queued event that has not fired yet.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = e.pending[:0]
	e.poke()
}

// replace swaps the whole queue in one step.
func (e *Engine) replace(events []DueEvent) error {
	for _, ev := range events {
		if ev.TriggerAt.IsZero() {
			return ErrInvalidTriggerTime
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrStopped
	}
	e.pending = e.pending[:0]
	for _, ev := range events {
		e.push(ev)
	}
	e.poke()
	return nil
}

// Pending reports how many events are waiting to fire.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Dropped counts events discarded because C was full.
func (e *Engine) Dropped() uint64 { return e.dropped.Load() }

func (e *Engine) push(ev DueEvent) {
	e.seq++
	heap.Push(&e.pending, entry{DueEvent: ev, seq: e.seq})
}

func (e *Engine) poke() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) run() {
	defer close(e.done)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	stopTimer(timer)
	defer timer.Stop()

	for {
		fired, wait, idle := e.collect(e.now())
		for _, ev := range fired {
			select {
			case e.out <- ev:
			default:
				e.dropped.Add(1)
			}
		}
		if len(fired) > 0 {
			continue
		}

		var tick <-chan time.Time
		if !idle {
			timer.Reset(wait)
			tick = timer.C
		}
		select {
		case <-tick:
		case <-e.wake:
			stopTimer(timer)
		case <-e.quit:
			return
		}
	}
}

// collect pops every event due at now. When nothing is due it reports how
// long until the next event, or idle when the queue is empty.
func (e *Engine) collect(now time.Time) (fired []DueEvent, wait time.Duration, idle bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for len(e.pending) > 0 && !e.pending[0].TriggerAt.After(now) {
		fired = append(fired, heap.Pop(&e.pending).(entry).DueEvent)
	}
	if len(fired) > 0 {
		return fired, 0, false
	}
	if len(e.pending) == 0 {
		return nil, 0, true
	}
	return nil, e.pending[0].TriggerAt.Sub(now), false
}

func stopTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
