// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package csvlog persists depth records to an append-only CSV file, one file
// per run.
//
// Every Append is flushed and synced to stable storage before it returns, so
// a record that was appended survives a crash of the process.
package csvlog

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/GermanBionicSystems/depthlog/depth"
)

const (
	// Suffix identifies the record schema of the file.
	Suffix = "_depth_data.csv"
	// nameFormat is RFC 3339 with the colons replaced, safe on every
	// filesystem and lexically sortable.
	nameFormat = "2006-01-02T15-04-05"
)

var (
	errClosed = errors.New("csvlog: sink is closed")
	errNotDir = errors.New("csvlog: not a directory")
)

// Sink is the write-only log of one run.
type Sink struct {
	mu   sync.Mutex
	path string
	f    *os.File
	w    *csv.Writer
}

// FileName returns the log file name for a run started at start.
func FileName(start time.Time) string {
	return start.UTC().Format(nameFormat) + Suffix
}

// Open creates or reopens the log file for the run started at start inside
// dir. An existing file with the same name is appended to, and its header is
// not repeated.
func Open(dir string, start time.Time) (*Sink, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, &depth.IoError{Op: "stat", Path: dir, Err: err}
	}
	if !fi.IsDir() {
		return nil, &depth.IoError{Op: "open", Path: dir, Err: errNotDir}
	}
	p := filepath.Join(dir, FileName(start))
	f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, &depth.IoError{Op: "open", Path: p, Err: err}
	}
	s := &Sink{path: p, f: f, w: csv.NewWriter(f)}
	if fi, err = f.Stat(); err != nil {
		return nil, errors.Join(&depth.IoError{Op: "stat", Path: p, Err: err}, f.Close())
	}
	if fi.Size() == 0 {
		if err := s.writeRow(depth.Header); err != nil {
			return nil, errors.Join(err, f.Close())
		}
	}
	return s, nil
}

// Path returns the full path of the log file.
func (s *Sink) Path() string {
	return s.path
}

// Append writes r as one row and syncs the file. Nothing is written when r
// cannot be encoded.
func (s *Sink) Append(r depth.Record) error {
	row, err := r.Row()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeRow(row)
}

// writeRow must be called with mu held, or before the sink is shared.
func (s *Sink) writeRow(row []string) error {
	if s.f == nil {
		return &depth.IoError{Op: "write", Path: s.path, Err: errClosed}
	}
	if err := s.w.Write(row); err != nil {
		return &depth.IoError{Op: "write", Path: s.path, Err: err}
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return &depth.IoError{Op: "flush", Path: s.path, Err: err}
	}
	if err := s.f.Sync(); err != nil {
		return &depth.IoError{Op: "sync", Path: s.path, Err: err}
	}
	return nil
}

// Close closes the file. Further appends fail.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	if err != nil {
		return &depth.IoError{Op: "close", Path: s.path, Err: err}
	}
	return nil
}

func (s *Sink) String() string {
	return "csvlog: " + s.path
}
