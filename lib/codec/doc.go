// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides selectkit's standard CBOR encoding
// configuration.
//
// JSON and YAML are for files people write (option files, config).
// CBOR is for files the tools write for themselves, such as the state
// file that remembers the last chosen value.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2):
// sorted map keys, smallest integer encoding, no indefinite-length
// items. Same logical data always produces identical bytes, so a
// state file is rewritten only when its content changes. Times encode
// as RFC 3339 text with nanoseconds.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// # Struct Tag Rules
//
// Types written only as CBOR carry `cbor` tags. fxamacker/cbor v2
// reads `json` tags as fallback when `cbor` tags are absent, so a type
// shared with JSON output carries `json` tags only. Never use both on
// the same field.
package codec
