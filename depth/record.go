// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package depth

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Header lists the persisted columns, in order.
var Header = []string{"timestamp", "adc_value", "voltage", "pressure_psi", "depth_meters"}

// TimeFormat is the layout of the timestamp column.
const TimeFormat = time.RFC3339Nano

var errColumns = errors.New("depth: unexpected column count")

// Record is one persisted sample.
type Record struct {
	Timestamp time.Time
	Raw       int32
	Reading
}

// NewRecord converts raw and stamps the result with t in UTC.
func NewRecord(t time.Time, raw int32) Record {
	return Record{Timestamp: t.UTC(), Raw: raw, Reading: Convert(raw)}
}

// Row encodes the record in Header order. Non-finite values are refused
// with a *SerializationError.
func (r Record) Row() ([]string, error) {
	row := make([]string, 0, len(Header))
	row = append(row, r.Timestamp.UTC().Format(TimeFormat), strconv.FormatInt(int64(r.Raw), 10))
	for i, v := range []float64{r.Voltage, r.Pressure, r.Depth} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &SerializationError{Field: Header[i+2], Value: v}
		}
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return row, nil
}

// ParseRow decodes a row produced by Row.
func ParseRow(row []string) (Record, error) {
	var r Record
	if len(row) != len(Header) {
		return r, fmt.Errorf("%w: got %d, want %d", errColumns, len(row), len(Header))
	}
	t, err := time.Parse(TimeFormat, row[0])
	if err != nil {
		return r, fmt.Errorf("depth: %s: %w", Header[0], err)
	}
	raw, err := strconv.ParseInt(row[1], 10, 32)
	if err != nil {
		return r, fmt.Errorf("depth: %s: %w", Header[1], err)
	}
	r.Timestamp = t.UTC()
	r.Raw = int32(raw)
	for i, dst := range []*float64{&r.Voltage, &r.Pressure, &r.Depth} {
		if *dst, err = strconv.ParseFloat(row[i+2], 64); err != nil {
			return r, fmt.Errorf("depth: %s: %w", Header[i+2], err)
		}
	}
	return r, nil
}

func (r Record) String() string {
	return fmt.Sprintf("%s code=%d %s", r.Timestamp.Format(TimeFormat), r.Raw, r.Reading)
}
