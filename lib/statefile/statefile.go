// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package statefile remembers the last value chosen in a select so the
// next run can start on it.
//
// The file is CBOR (see lib/codec) and is written atomically (write to
// temporary file, fsync, rename) so readers never see a partial state.
// A missing file is not an error: [Load] returns the zero State.
package statefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bureau-foundation/selectkit/lib/codec"
)

// State is the persisted selection.
type State struct {
	// Value is the last committed value.
	Value string `cbor:"value"`

	// Source identifies the option list Value was chosen from, such
	// as a fingerprint of its values. A value is only restored into
	// the list it came from.
	Source string `cbor:"source,omitempty"`

	// SavedAt is when the value was chosen.
	SavedAt time.Time `cbor:"saved_at"`
}

// Matches reports whether the state holds a value chosen from source.
func (state State) Matches(source string) bool {
	return state.Value != "" && state.Source == source
}

// Save atomically writes state to path. The file is written to a
// temporary location in the same directory, fsynced, and renamed into
// place. Missing parent directories are created with mode 0700; the
// file itself is 0600.
func Save(path string, state State) error {
	data, err := codec.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	temporaryPath := path + ".tmp"

	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating temporary state file: %w", err)
	}

	// Write, sync, close, in that order. On failure the temporary file
	// is removed and the first error reported.
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary state file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary state file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary state file: %w", err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming state file into place: %w", err)
	}

	// Sync the parent directory so the rename survives power loss.
	parentDirectory, err := os.Open(directory)
	if err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}

	return nil
}

// Load reads the state at path. A file that does not exist yields the
// zero State and no error. Any other failure (permission denied,
// corrupt CBOR) is returned so callers can tell "nothing saved" from
// "saved but unreadable".
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, nil
		}
		return State{}, err
	}

	var state State
	if err := codec.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("parsing state file %s: %w", path, err)
	}
	return state, nil
}

// Clear removes the state file. Idempotent: returns nil when the file
// does not exist.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing state file: %w", err)
	}
	return nil
}
