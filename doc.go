// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package depthlog records water depth from a pressure transducer read
// through an ADS1015 analog to digital converter.
//
// The command is in cmd/depthlog. The packages are:
//
//   - depth converts ADC codes to voltage, pressure and depth and defines the
//     record and error types.
//   - ads1x15 is the I²C driver for the converter.
//   - sampler runs the read, convert, append loop.
//   - csvlog is the durable CSV sink.
//   - gauge draws the current depth on the terminal.
//   - config loads the YAML configuration and validates arguments.
package depthlog
