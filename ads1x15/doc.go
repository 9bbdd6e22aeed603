// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ads1x15 provides a driver for the Texas Instruments ADS1015
// (12-bit) and ADS1115 (16-bit) I²C analog to digital converters.
//
// The driver only uses single-shot conversions on the single-ended inputs.
// Each read programs the input multiplexer, starts a conversion, waits for
// the OS bit to report completion and then reads the conversion register.
// The comparator is always disabled.
//
// Each input can be exposed as an analog.PinADC with PinForChannel.
//
// # Datasheets
//
// https://www.ti.com/lit/ds/symlink/ads1015.pdf
//
// https://www.ti.com/lit/ds/symlink/ads1115.pdf
package ads1x15
