// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventloop

import (
	"reflect"
	"testing"
	"time"

	"github.com/bureau-foundation/selectkit/lib/clock"
	"github.com/bureau-foundation/selectkit/lib/testutil"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPostRunsInOrderOnDrain(t *testing.T) {
	loop := New(clock.Fake(epoch), nil)
	var order []int
	loop.Post(func() { order = append(order, 1) })
	loop.Post(func() { order = append(order, 2) })

	if len(order) != 0 {
		t.Fatal("Post ran a task before Drain")
	}
	if ran := loop.Drain(); ran != 2 {
		t.Fatalf("Drain ran %d tasks, want 2", ran)
	}
	if !reflect.DeepEqual(order, []int{1, 2}) {
		t.Fatalf("order = %v, want [1 2]", order)
	}
}

func TestTasksPostedDuringDrainRunAfterQueuedWork(t *testing.T) {
	loop := New(clock.Fake(epoch), nil)
	var order []string
	loop.Post(func() {
		order = append(order, "first")
		loop.Post(func() { order = append(order, "deferred") })
	})
	loop.Post(func() { order = append(order, "second") })

	loop.Drain()

	want := []string{"first", "second", "deferred"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestNestedDrainIsNoop(t *testing.T) {
	loop := New(clock.Fake(epoch), nil)
	nested := -1
	loop.Post(func() {
		loop.Post(func() {})
		nested = loop.Drain()
	})
	loop.Drain()
	if nested != 0 {
		t.Fatalf("nested Drain ran %d tasks, want 0", nested)
	}
	if loop.Pending() {
		t.Fatal("outer Drain left tasks queued")
	}
}

func TestFrameRequestsWaitForFrame(t *testing.T) {
	loop := New(clock.Fake(epoch), nil)
	var order []string
	loop.RequestFrame(func() {
		order = append(order, "frame")
		loop.Post(func() { order = append(order, "posted-by-frame") })
		loop.RequestFrame(func() { order = append(order, "next-frame") })
	})
	loop.Post(func() { order = append(order, "task") })

	loop.Drain()
	if !reflect.DeepEqual(order, []string{"task"}) {
		t.Fatalf("after Drain order = %v, want [task]", order)
	}

	loop.Frame()
	want := []string{"task", "frame", "posted-by-frame"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("after first Frame order = %v, want %v", order, want)
	}
	if !loop.FramePending() {
		t.Fatal("frame requested during a frame should wait for the next one")
	}

	loop.Frame()
	if order[len(order)-1] != "next-frame" {
		t.Fatalf("second Frame did not run the nested request: %v", order)
	}
}

func TestAfterFuncPostsOnDeadline(t *testing.T) {
	fake := clock.Fake(epoch)
	loop := New(fake, nil)
	fired := false
	loop.AfterFunc(time.Second, func() { fired = true })

	fake.Advance(time.Second)
	if fired {
		t.Fatal("timer task ran on the clock instead of the loop")
	}
	if !loop.Pending() {
		t.Fatal("timer did not post its task")
	}
	loop.Drain()
	if !fired {
		t.Fatal("timer task did not run on Drain")
	}
}

func TestStopSuppressesAlreadyPostedTask(t *testing.T) {
	fake := clock.Fake(epoch)
	loop := New(fake, nil)
	fired := false
	timer := loop.AfterFunc(time.Second, func() { fired = true })

	fake.Advance(time.Second)
	timer.Stop()
	loop.Drain()
	if fired {
		t.Fatal("stopped timer task ran")
	}
}

func TestEveryRepeatsUntilStopped(t *testing.T) {
	fake := clock.Fake(epoch)
	loop := New(fake, nil)
	ticks := 0
	timer := loop.Every(50*time.Millisecond, func() { ticks++ })

	fake.Advance(150 * time.Millisecond)
	loop.Drain()
	if ticks != 3 {
		t.Fatalf("ticks = %d after 150ms, want 3", ticks)
	}

	if !timer.Stop() {
		t.Fatal("Stop on a repeating timer should return true")
	}
	fake.Advance(time.Second)
	loop.Drain()
	if ticks != 3 {
		t.Fatalf("ticks = %d after Stop, want 3", ticks)
	}
	if fake.PendingTimers() != 0 {
		t.Fatalf("PendingTimers() = %d after Stop, want 0", fake.PendingTimers())
	}
}

func TestCloseCancelsTimersAndDropsWork(t *testing.T) {
	fake := clock.Fake(epoch)
	loop := New(fake, nil)
	ran := false
	repeat := loop.Every(50*time.Millisecond, func() { ran = true })
	loop.AfterFunc(time.Second, func() { ran = true })
	loop.Post(func() { ran = true })

	loop.Close()
	fake.Advance(2 * time.Second)
	loop.Drain()
	loop.Frame()

	if ran {
		t.Fatal("work ran after Close")
	}
	if repeat.Active() {
		t.Fatal("repeating timer still active after Close")
	}
	if fake.PendingTimers() != 0 {
		t.Fatalf("PendingTimers() = %d after Close, want 0", fake.PendingTimers())
	}

	late := loop.AfterFunc(time.Millisecond, func() { ran = true })
	if late.Active() {
		t.Fatal("timer created after Close should be inert")
	}
}

func TestNotifyWakesHostFromTimerGoroutine(t *testing.T) {
	wake := make(chan struct{}, 8)
	loop := New(clock.Real(), func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	defer loop.Close()

	done := false
	loop.AfterFunc(time.Millisecond, func() { done = true })

	testutil.RequireReceive(t, wake, 5*time.Second, "waiting for timer wake-up")
	loop.Drain()
	if !done {
		t.Fatal("timer task did not run after wake-up drain")
	}
}
