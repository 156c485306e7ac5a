// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package eventloop is the single-owner task queue that serializes all
// select engine work onto the host's UI loop.
//
// The engine never blocks and never mutates state from a timer
// goroutine. Instead it posts closures:
//
//   - [Loop.Post] runs a task after the current update settles (the
//     end of the current task queue). Focus moves requested from inside
//     a key handler go through Post so they observe the state change
//     the handler just made.
//   - [Loop.RequestFrame] defers a task to the next animation frame.
//     The expand-on-scroll arming uses this so the initial programmatic
//     scroll alignment is never mistaken for a user scroll.
//   - [Loop.AfterFunc] and [Loop.Every] schedule timers on an injected
//     clock; their callbacks are posted to the queue rather than run on
//     the timer goroutine.
//
// The host drives the loop: it calls [Loop.Drain] after delivering an
// input event and [Loop.Frame] on each animation frame. When work is
// posted from another goroutine (a real timer firing), the optional
// notify hook tells the host to wake up and drain.
package eventloop
