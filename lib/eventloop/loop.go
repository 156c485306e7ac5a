// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventloop

import (
	"sync"
	"time"

	"github.com/bureau-foundation/selectkit/lib/clock"
)

// Task is a unit of deferred work.
type Task func()

// Loop is a FIFO task queue plus a frame queue. Posting is safe from
// any goroutine; Drain and Frame must be called from the owning (UI)
// goroutine.
type Loop struct {
	clock clock.Clock

	mu      sync.Mutex
	tasks   []Task
	frames  []Task
	timers  map[*Timer]struct{}
	notify  func()
	closed  bool
	running bool
}

// New creates a loop whose timers use the given clock. notify, if
// non-nil, is called (without the loop lock held) whenever a task or
// frame request is queued, so a host event loop can schedule a drain.
func New(source clock.Clock, notify func()) *Loop {
	return &Loop{
		clock:  source,
		timers: make(map[*Timer]struct{}),
		notify: notify,
	}
}

// Clock returns the clock the loop schedules timers on.
func (loop *Loop) Clock() clock.Clock {
	return loop.clock
}

// SetNotify replaces the wake-up hook. Hosts that create the loop
// before their event program exists install the hook afterwards.
func (loop *Loop) SetNotify(notify func()) {
	loop.mu.Lock()
	loop.notify = notify
	loop.mu.Unlock()
}

// Post appends task to the end of the queue. Tasks posted after Close
// are dropped.
func (loop *Loop) Post(task Task) {
	loop.mu.Lock()
	if loop.closed {
		loop.mu.Unlock()
		return
	}
	loop.tasks = append(loop.tasks, task)
	notify := loop.notify
	loop.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// RequestFrame queues task for the next call to Frame.
func (loop *Loop) RequestFrame(task Task) {
	loop.mu.Lock()
	if loop.closed {
		loop.mu.Unlock()
		return
	}
	loop.frames = append(loop.frames, task)
	notify := loop.notify
	loop.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Drain runs queued tasks in order until the queue is empty, including
// tasks posted by the tasks themselves. A nested Drain (a task calling
// Drain) returns immediately; the outer call picks up the work.
// Returns the number of tasks run.
func (loop *Loop) Drain() int {
	loop.mu.Lock()
	if loop.running {
		loop.mu.Unlock()
		return 0
	}
	loop.running = true
	loop.mu.Unlock()

	ran := 0
	for {
		loop.mu.Lock()
		if len(loop.tasks) == 0 {
			loop.running = false
			loop.mu.Unlock()
			return ran
		}
		task := loop.tasks[0]
		loop.tasks[0] = nil
		loop.tasks = loop.tasks[1:]
		loop.mu.Unlock()

		task()
		ran++
	}
}

// Frame runs the frame requests that were queued before the call, then
// drains any tasks they posted. Frame requests made during the frame
// wait for the next one.
func (loop *Loop) Frame() {
	loop.mu.Lock()
	frames := loop.frames
	loop.frames = nil
	loop.mu.Unlock()

	for _, task := range frames {
		task()
	}
	loop.Drain()
}

// Pending reports whether tasks are queued.
func (loop *Loop) Pending() bool {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	return len(loop.tasks) > 0
}

// FramePending reports whether a frame has been requested.
func (loop *Loop) FramePending() bool {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	return len(loop.frames) > 0
}

// Close stops every live timer and drops queued work. Safe to call
// more than once.
func (loop *Loop) Close() {
	loop.mu.Lock()
	if loop.closed {
		loop.mu.Unlock()
		return
	}
	loop.closed = true
	timers := make([]*Timer, 0, len(loop.timers))
	for timer := range loop.timers {
		timers = append(timers, timer)
	}
	loop.timers = nil
	loop.tasks = nil
	loop.frames = nil
	loop.mu.Unlock()

	for _, timer := range timers {
		timer.stopUnderlying()
	}
}

// Timer is a one-shot or repeating schedule whose callback runs on the
// loop. Obtain one from AfterFunc or Every.
type Timer struct {
	loop     *Loop
	interval time.Duration // Zero for one-shot timers.
	task     Task

	mu        sync.Mutex
	pending   *clock.Timer
	cancelled bool // Stop or Close was called.
	done      bool // A one-shot timer has fired.
}

// AfterFunc posts task to the loop once d has elapsed on the loop's
// clock.
func (loop *Loop) AfterFunc(d time.Duration, task Task) *Timer {
	timer := &Timer{loop: loop, task: task}
	if !loop.track(timer) {
		timer.cancelled = true
		return timer
	}
	timer.arm(d)
	return timer
}

// Every posts task to the loop every interval until Stop is called.
// The first run happens one interval after the call.
func (loop *Loop) Every(interval time.Duration, task Task) *Timer {
	if interval <= 0 {
		panic("eventloop: non-positive interval for Every")
	}
	timer := &Timer{loop: loop, interval: interval, task: task}
	if !loop.track(timer) {
		timer.cancelled = true
		return timer
	}
	timer.arm(interval)
	return timer
}

// Stop cancels the timer. A callback already posted to the loop but
// not yet run is suppressed. Returns true if the timer had not yet
// fired (one-shot) or was still repeating.
func (timer *Timer) Stop() bool {
	timer.mu.Lock()
	wasActive := !timer.cancelled && !timer.done
	timer.cancelled = true
	timer.mu.Unlock()

	timer.stopUnderlying()
	timer.loop.untrack(timer)
	return wasActive
}

// Active reports whether the timer will still fire.
func (timer *Timer) Active() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return !timer.cancelled && !timer.done
}

func (timer *Timer) arm(d time.Duration) {
	timer.mu.Lock()
	if timer.cancelled {
		timer.mu.Unlock()
		return
	}
	timer.mu.Unlock()

	underlying := timer.loop.clock.AfterFunc(d, timer.fire)

	timer.mu.Lock()
	timer.pending = underlying
	timer.mu.Unlock()
}

// fire runs on the clock's goroutine (or inside FakeClock.Advance).
// It only posts; the task itself runs when the loop drains.
func (timer *Timer) fire() {
	timer.mu.Lock()
	if timer.cancelled {
		timer.mu.Unlock()
		return
	}
	if timer.interval == 0 {
		timer.done = true
	}
	timer.mu.Unlock()

	if timer.interval > 0 {
		timer.arm(timer.interval)
	} else {
		timer.loop.untrack(timer)
	}

	timer.loop.Post(func() {
		if timer.isCancelled() {
			return
		}
		timer.task()
	})
}

func (timer *Timer) isCancelled() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.cancelled
}

func (timer *Timer) stopUnderlying() {
	timer.mu.Lock()
	timer.cancelled = true
	pending := timer.pending
	timer.mu.Unlock()
	if pending != nil {
		pending.Stop()
	}
}

func (loop *Loop) track(timer *Timer) bool {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	if loop.closed {
		return false
	}
	loop.timers[timer] = struct{}{}
	return true
}

func (loop *Loop) untrack(timer *Timer) {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	if loop.timers != nil {
		delete(loop.timers, timer)
	}
}
