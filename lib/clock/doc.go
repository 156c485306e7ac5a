// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the injectable time source used by the select
// engine's timers: the typeahead reset timer and the auto-scroll
// repeat timer.
//
// Production code holds a Clock instead of calling time.Now or
// time.AfterFunc directly. Real() wraps the standard library. Fake()
// returns a clock that stands still until Advance is called, which
// makes buffer decay and repeat intervals deterministic in tests:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	matcher := typeahead.NewMatcher(loop, fake)
//	matcher.Feed('a', items, current)
//	fake.Advance(1001 * time.Millisecond) // reset timer fires
//
// Callbacks registered with a FakeClock run synchronously inside
// Advance, in deadline order. Callbacks registered with the real clock
// run on a timer goroutine; callers that need single-threaded delivery
// route them through an event loop (see lib/eventloop).
package clock
