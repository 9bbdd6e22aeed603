// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sampler runs the acquisition loop: read one code from a Source,
// convert it, append the record to a Sink, wait, and start over.
//
// The loop is strictly sequential. A cycle either completes with the record
// persisted or fails without writing anything.
package sampler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/GermanBionicSystems/depthlog/depth"
)

// Sink receives every converted record. Append must make the record durable
// before returning.
type Sink interface {
	Append(r depth.Record) error
}

// Observer is notified after a record was appended. Observer errors are
// logged and otherwise ignored.
type Observer interface {
	Observe(r depth.Record) error
}

// State of the loop.
type State int

const (
	Running State = iota
	Failed
)

func (s State) String() string {
	if s == Failed {
		return "FAILED"
	}
	return "RUNNING"
}

// Opts holds the loop settings.
type Opts struct {
	// Interval is the pause between two cycles. 0 samples back to back.
	Interval time.Duration
	// Retries is the number of extra attempts for a failed read before it is
	// fatal. 0 makes the first failure fatal.
	Retries int
	// Backoff is the wait before the first retry. It doubles on every
	// further retry.
	Backoff time.Duration
	// Verbose logs every record.
	Verbose bool

	Clock    clockwork.Clock
	Logger   *log.Logger
	Observer Observer
}

// DefaultOpts samples every 10 seconds and retries a read 3 times.
var DefaultOpts = Opts{
	Interval: 10 * time.Second,
	Retries:  3,
	Backoff:  100 * time.Millisecond,
}

var errNegativeInterval = errors.New("sampler: negative interval")

// Loop owns the source for its whole lifetime.
type Loop struct {
	src   Source
	sink  Sink
	opts  Opts
	clock clockwork.Clock
	log   *log.Logger

	state  State
	cycles int
	last   time.Time
}

// New returns a loop reading from src and writing to sink. opts can be nil.
func New(src Source, sink Sink, opts *Opts) (*Loop, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Interval < 0 {
		return nil, errNegativeInterval
	}
	l := &Loop{src: src, sink: sink, opts: *opts, clock: opts.Clock, log: opts.Logger}
	if l.clock == nil {
		l.clock = clockwork.NewRealClock()
	}
	if l.log == nil {
		l.log = log.Default()
	}
	if l.opts.Retries < 0 {
		l.opts.Retries = 0
	}
	return l, nil
}

// Run cycles until ctx is cancelled or a cycle fails. It returns nil on
// cancellation and the fatal error otherwise, after which State reports
// Failed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := l.Step(ctx); err != nil {
			if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
				return nil
			}
			l.state = Failed
			return err
		}
		if l.opts.Interval > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-l.clock.After(l.opts.Interval):
			}
		}
	}
}

// Step runs a single read-convert-append cycle and returns the record that
// was persisted.
func (l *Loop) Step(ctx context.Context) (depth.Record, error) {
	raw, err := l.read(ctx)
	if err != nil {
		return depth.Record{}, err
	}
	now := l.clock.Now()
	if now.Before(l.last) {
		l.log.Printf("sampler: clock moved backwards by %s", l.last.Sub(now))
	}
	l.last = now
	r := depth.NewRecord(now, raw)
	if err := l.sink.Append(r); err != nil {
		return depth.Record{}, err
	}
	l.cycles++
	if l.opts.Verbose {
		l.log.Printf("sampler: %s", r)
	}
	if l.opts.Observer != nil {
		if err := l.opts.Observer.Observe(r); err != nil {
			l.log.Printf("sampler: observer: %v", err)
		}
	}
	return r, nil
}

// read returns one code, retrying with exponential backoff.
func (l *Loop) read(ctx context.Context) (int32, error) {
	backoff := l.opts.Backoff
	for attempt := 0; ; attempt++ {
		raw, err := l.src.ReadRaw()
		if err == nil {
			return raw, nil
		}
		var hwErr *depth.HardwareError
		if !errors.As(err, &hwErr) {
			err = &depth.HardwareError{Op: "read", Err: err}
		}
		if attempt >= l.opts.Retries {
			return 0, err
		}
		l.log.Printf("sampler: attempt %d/%d failed, retrying in %s: %v", attempt+1, l.opts.Retries+1, backoff, err)
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-l.clock.After(backoff):
		}
		backoff *= 2
	}
}

// State returns Running until Run returns a fatal error.
func (l *Loop) State() State {
	return l.state
}

// Cycles returns the number of records appended so far.
func (l *Loop) Cycles() int {
	return l.cycles
}
