// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gauge draws the latest depth as a horizontal bar on the terminal
// using ANSI color codes.
//
// The bar is redrawn in place on every record, shallow cells in blue and deep
// ones in red.
package gauge

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"

	"github.com/GermanBionicSystems/depthlog/depth"
)

// Opts represents the options available for the gauge.
type Opts struct {
	// Width is the number of cells of the bar. Default is 40.
	Width int
	// MaxDepth in metres fills the whole bar. Default is the depth at the
	// transducer full scale.
	MaxDepth float64
	Palette  *ansi256.Palette
	// W defaults to a color capable stdout.
	W io.Writer

	_ struct{}
}

// Dev is a terminal depth bar.
type Dev struct {
	w        io.Writer
	width    int
	maxDepth float64
	palette  ansi256.Palette

	buf bytes.Buffer
}

var empty = color.NRGBA{0x30, 0x30, 0x30, 0xff}

// New returns a gauge. opts can be nil.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	d := &Dev{
		w:        opts.W,
		width:    opts.Width,
		maxDepth: opts.MaxDepth,
		palette:  *ansi256.Default,
	}
	if opts.Palette != nil {
		d.palette = *opts.Palette
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	if d.width <= 0 {
		d.width = 40
	}
	if d.maxDepth <= 0 {
		d.maxDepth = depth.Convert(depth.MaxCode).Depth
	}
	return d
}

func (d *Dev) String() string {
	return "Gauge"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors and moves to a new line.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Observe draws r. It implements sampler.Observer.
func (d *Dev) Observe(r depth.Record) error {
	return d.Draw(r.Reading)
}

// Draw redraws the bar for r.
func (d *Dev) Draw(r depth.Reading) error {
	n := d.Filled(r.Depth)
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := 0; i < d.width; i++ {
		c := empty
		if i < n {
			c = d.cellColor(i)
		}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = fmt.Fprintf(&d.buf, "\033[0m %s ", r.Distance())
	_, err := d.buf.WriteTo(d.w)
	return err
}

// Filled returns the number of lit cells for depth m, clamped to the bar.
func (d *Dev) Filled(m float64) int {
	n := int(math.Round(m / d.maxDepth * float64(d.width)))
	if n < 0 {
		return 0
	}
	if n > d.width {
		return d.width
	}
	return n
}

// cellColor fades from blue at the surface to red at MaxDepth.
func (d *Dev) cellColor(i int) color.NRGBA {
	f := 1.0
	if d.width > 1 {
		f = float64(i) / float64(d.width-1)
	}
	return color.NRGBA{R: uint8(255 * f), G: 0x40, B: uint8(255 * (1 - f)), A: 0xff}
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
