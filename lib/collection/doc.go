// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package collection is the ordered registry of selectable items that
// keyboard navigation and typeahead search read from.
//
// The host registers an item when it mounts and unregisters it when it
// unmounts. The registry holds only metadata plus an opaque, non-owning
// reference to the host's node; it never controls item lifetime. Order
// is registration order unless the host inserts relative to a mounted
// sibling with [Registry.RegisterBefore], so the registry always
// mirrors the document order of the currently mounted items.
//
// Reads return snapshots. A multi-threaded host may mount items from
// one goroutine while another navigates; every read reflects a
// consistent order at call time.
package collection
