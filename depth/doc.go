// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package depth converts raw codes from a 0-100 PSI ratiometric pressure
// transducer, sampled by a 12-bit ADC, into voltage, pressure and water
// depth, and defines the sample record persisted for each reading.
//
// The conversion is a chain of fixed affine remaps followed by the
// hydrostatic relation h = P / (ρg), using saltwater density. None of the
// constants are configurable.
//
// # Sensor
//
// The transducer outputs 0-3.3V for 0-100 PSI gauge pressure. It is read
// through channel A0 of an ADS1015, see package ads1x15.
package depth
