// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csvlog

import (
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/GermanBionicSystems/depthlog/depth"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var start = time.Date(2023, 6, 1, 9, 15, 42, 500_000_000, time.UTC)

// readRows returns every row of the file at p, header included.
func readRows(tb testing.TB, p string) [][]string {
	tb.Helper()
	f, err := os.Open(p)
	if err != nil {
		tb.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		tb.Fatal(err)
	}
	return rows
}

func openSink(tb testing.TB, dir string) *Sink {
	tb.Helper()
	s, err := Open(dir, start)
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestFileName(t *testing.T) {
	local := start.In(time.FixedZone("PDT", -7*3600))
	if got := FileName(local); got != "2023-06-01T09-15-42_depth_data.csv" {
		t.Errorf("FileName()=%q", got)
	}
}

func TestOpenWritesHeader(t *testing.T) {
	dir := t.TempDir()
	s := openSink(t, dir)
	if s.Path() != filepath.Join(dir, FileName(start)) {
		t.Errorf("Path()=%q", s.Path())
	}
	rows := readRows(t, s.Path())
	if diff := cmp.Diff([][]string{depth.Header}, rows); diff != "" {
		t.Errorf("unexpected content (-want +got):\n%s", diff)
	}
	if len(s.String()) == 0 {
		t.Error("invalid String() result")
	}
}

func TestAppendRoundTrip(t *testing.T) {
	s := openSink(t, t.TempDir())
	var want []depth.Record
	for i, raw := range []int32{-2048, -1, 0, 512, 2047} {
		r := depth.NewRecord(start.Add(time.Duration(i)*1234567*time.Microsecond), raw)
		if err := s.Append(r); err != nil {
			t.Fatal(err)
		}
		want = append(want, r)
	}

	rows := readRows(t, s.Path())
	if len(rows) != len(want)+1 {
		t.Fatalf("got %d rows, expected %d", len(rows), len(want)+1)
	}
	var got []depth.Record
	for _, row := range rows[1:] {
		r, err := depth.ParseRow(row)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, r)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReopenAppends(t *testing.T) {
	dir := t.TempDir()
	first, err := Open(dir, start)
	if err != nil {
		t.Fatal(err)
	}
	r1 := depth.NewRecord(start, 100)
	if err := first.Append(r1); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	// Same second, different sub-second part: same file.
	second, err := Open(dir, start.Add(300*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	if second.Path() != first.Path() {
		t.Fatalf("expected same file, got %q and %q", first.Path(), second.Path())
	}
	r2 := depth.NewRecord(start.Add(time.Second), 200)
	if err := second.Append(r2); err != nil {
		t.Fatal(err)
	}

	rows := readRows(t, second.Path())
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d rows: %q", len(rows), rows)
	}
	if diff := cmp.Diff(depth.Header, rows[0]); diff != "" {
		t.Errorf("header mismatch:\n%s", diff)
	}
	for i, want := range []depth.Record{r1, r2} {
		got, err := depth.ParseRow(rows[i+1])
		if err != nil {
			t.Fatal(err)
		}
		if got.Raw != want.Raw || !got.Timestamp.Equal(want.Timestamp) {
			t.Errorf("row %d = %s, expected %s", i+1, got, want)
		}
	}
}

func TestOpenErrors(t *testing.T) {
	var ioErr *depth.IoError
	if _, err := Open(filepath.Join(t.TempDir(), "missing"), start); !errors.As(err, &ioErr) {
		t.Errorf("missing dir: expected IoError, got %v", err)
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(file, start)
	if !errors.As(err, &ioErr) || !errors.Is(err, errNotDir) {
		t.Errorf("regular file: expected IoError, got %v", err)
	}

	if os.Geteuid() != 0 {
		ro := t.TempDir()
		if err := os.Chmod(ro, 0555); err != nil {
			t.Fatal(err)
		}
		defer os.Chmod(ro, 0755)
		if _, err := Open(ro, start); !errors.As(err, &ioErr) {
			t.Errorf("read-only dir: expected IoError, got %v", err)
		}
	}
}

func TestAppendSerializationError(t *testing.T) {
	s := openSink(t, t.TempDir())
	r := depth.NewRecord(start, 0)
	r.Pressure = math.NaN()
	var serr *depth.SerializationError
	if err := s.Append(r); !errors.As(err, &serr) {
		t.Fatalf("expected SerializationError, got %v", err)
	}
	if rows := readRows(t, s.Path()); len(rows) != 1 {
		t.Errorf("expected only the header, got %q", rows)
	}
}

func TestAppendAfterClose(t *testing.T) {
	s, err := Open(t.TempDir(), start)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	// Closing twice is fine.
	if err := s.Close(); err != nil {
		t.Error(err)
	}
	var ioErr *depth.IoError
	if err := s.Append(depth.NewRecord(start, 0)); !errors.As(err, &ioErr) || !errors.Is(err, errClosed) {
		t.Errorf("expected IoError wrapping errClosed, got %v", err)
	}
}

func BenchmarkAppend(b *testing.B) {
	s := openSink(b, b.TempDir())
	r := depth.NewRecord(start, 1234)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Append(r); err != nil {
			b.Fatal(err)
		}
	}
}
