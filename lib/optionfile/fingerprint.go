// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package optionfile

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// listDomainKey keys the BLAKE3 hash so a list fingerprint never
// collides with a hash of the same bytes in another context. ASCII
// "selectkit.optionlist", zero-padded to 32 bytes.
var listDomainKey = [32]byte{
	's', 'e', 'l', 'e', 'c', 't', 'k', 'i', 't', '.', 'o', 'p', 't', 'i', 'o', 'n',
	'l', 'i', 's', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Fingerprint identifies an option list by its values in order, as a
// hex BLAKE3 keyed hash. Labels and disabled flags do not contribute,
// so relabeling a list keeps its fingerprint. Each value is length
// prefixed: ["ab"] and ["a", "b"] differ.
func Fingerprint(options []Option) string {
	hasher, err := blake3.NewKeyed(listDomainKey[:])
	if err != nil {
		// Only returned for a key that is not 32 bytes.
		panic("optionfile: " + err.Error())
	}
	var length [binary.MaxVarintLen64]byte
	for _, option := range options {
		size := binary.PutUvarint(length[:], uint64(len(option.Value)))
		hasher.Write(length[:size])
		hasher.Write([]byte(option.Value))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
