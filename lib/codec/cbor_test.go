// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// sampleRecord uses cbor struct tags, the convention for types only
// ever written as CBOR.
type sampleRecord struct {
	Value   string    `cbor:"value"`
	Label   string    `cbor:"label,omitempty"`
	Count   int       `cbor:"count"`
	SavedAt time.Time `cbor:"saved_at"`
}

// sampleDualRecord uses json struct tags, relying on fxamacker's
// fallback.
type sampleDualRecord struct {
	Version int    `json:"version"`
	Name    string `json:"name"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleRecord{
		Value:   "eu-west-1",
		Label:   "Ireland",
		Count:   42,
		SavedAt: time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC),
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Value != original.Value || decoded.Label != original.Label || decoded.Count != original.Count {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
	if !decoded.SavedAt.Equal(original.SavedAt) {
		t.Errorf("SavedAt = %v, want %v (nanoseconds preserved)", decoded.SavedAt, original.SavedAt)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	first, err := Marshal(map[string]int{"zeta": 1, "alpha": 2, "mid": 3})
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}

	second, err := Marshal(map[string]int{"mid": 3, "alpha": 2, "zeta": 1})
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestJSONTagFallback(t *testing.T) {
	original := sampleDualRecord{Version: 3, Name: "regions"}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"version"`) || !strings.Contains(notation, `"name"`) {
		t.Errorf("notation %q does not use the json tag names", notation)
	}

	var decoded sampleDualRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("json-tag roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestOmitemptyRespected(t *testing.T) {
	withLabel := sampleRecord{Value: "a", Label: "x", Count: 1}
	withoutLabel := sampleRecord{Value: "a", Count: 1}

	dataWith, err := Marshal(withLabel)
	if err != nil {
		t.Fatal(err)
	}
	dataWithout, err := Marshal(withoutLabel)
	if err != nil {
		t.Fatal(err)
	}

	if len(dataWithout) >= len(dataWith) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes",
			len(dataWithout), len(dataWith))
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var record sampleRecord
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &record); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestUnmarshalAnyUsesStringKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"value": "fig"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	fields, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded %T, want map[string]any", decoded)
	}
	if fields["value"] != "fig" {
		t.Errorf("value = %v, want fig", fields["value"])
	}
}

func BenchmarkMarshal(b *testing.B) {
	record := sampleRecord{Value: "eu-west-1", Label: "Ireland", Count: 42}

	b.ReportAllocs()
	for b.Loop() {
		Marshal(record)
	}
}
