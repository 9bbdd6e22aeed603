// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package depth

import "fmt"

// HardwareError is returned when a bus transaction with the ADC cannot
// complete.
type HardwareError struct {
	Op  string
	Err error
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("depth: hardware %s: %v", e.Op, e.Err)
}

func (e *HardwareError) Unwrap() error {
	return e.Err
}

// IoError is returned when the log file cannot be created, written or
// synced.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("depth: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// SerializationError is returned when a record field cannot be encoded. It
// only happens when a non-finite value reaches the encoder.
type SerializationError struct {
	Field string
	Value float64
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("depth: cannot encode %s=%v", e.Field, e.Value)
}

// ConfigError is returned when a startup setting fails validation.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("depth: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
