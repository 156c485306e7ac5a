// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for selectkit
// packages.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with a time.After fallback) so individual tests do not need
// direct time.After calls. It is the only place in the test suite
// where a real wall-clock timeout is used; everything else runs on
// lib/clock's fake clock.
//
// [WriteFile] creates a fixture file inside t.TempDir().
//
// Helpers call t.Fatalf on failure rather than returning errors, since
// test setup failures are not recoverable.
package testutil
