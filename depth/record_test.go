// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package depth

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestRecordRoundTrip(t *testing.T) {
	ts := time.Date(2023, 6, 1, 12, 30, 15, 123456789, time.FixedZone("EEST", 3*3600))
	for _, raw := range []int32{MinCode, -7, 0, 913, MaxCode} {
		want := NewRecord(ts, raw)
		if want.Timestamp.Location() != time.UTC {
			t.Fatalf("timestamp not normalized: %s", want.Timestamp)
		}
		row, err := want.Row()
		if err != nil {
			t.Fatal(err)
		}
		if len(row) != len(Header) {
			t.Fatalf("row has %d columns", len(row))
		}
		got, err := ParseRow(row)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Timestamp.Equal(want.Timestamp) {
			t.Errorf("timestamp %s != %s", got.Timestamp, want.Timestamp)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRecordRowNonFinite(t *testing.T) {
	r := NewRecord(time.Now(), 0)
	r.Depth = math.NaN()
	_, err := r.Row()
	var serr *SerializationError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SerializationError, got %v", err)
	}
	if serr.Field != "depth_meters" {
		t.Errorf("field=%q", serr.Field)
	}

	r = NewRecord(time.Now(), 0)
	r.Voltage = math.Inf(1)
	if _, err := r.Row(); !errors.As(err, &serr) || serr.Field != "voltage" {
		t.Errorf("expected voltage SerializationError, got %v", err)
	}
}

func TestParseRowErrors(t *testing.T) {
	tests := [][]string{
		{"2023-06-01T12:30:15Z", "1"},
		{"yesterday", "1", "1", "1", "1"},
		{"2023-06-01T12:30:15Z", "x", "1", "1", "1"},
		{"2023-06-01T12:30:15Z", "1", "1", "psi", "1"},
	}
	for _, row := range tests {
		if _, err := ParseRow(row); err == nil {
			t.Errorf("ParseRow(%q) expected error", row)
		}
	}
	if _, err := ParseRow([]string{"a"}); !errors.Is(err, errColumns) {
		t.Errorf("expected errColumns, got %v", err)
	}
}

func TestErrors(t *testing.T) {
	base := errors.New("nack")
	hw := &HardwareError{Op: "read", Err: base}
	if !errors.Is(hw, base) {
		t.Error("HardwareError does not unwrap")
	}
	io := &IoError{Op: "open", Path: "/tmp/x.csv", Err: base}
	if !errors.Is(io, base) {
		t.Error("IoError does not unwrap")
	}
	for _, err := range []error{hw, io, &SerializationError{Field: "voltage"}, &ConfigError{Field: "interval", Value: "-1", Reason: "negative"}} {
		if len(err.Error()) == 0 {
			t.Errorf("%T has empty message", err)
		}
	}
}
