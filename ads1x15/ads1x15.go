// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ads1x15

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Variant represents the model of the device.
type Variant string

// Channel is a single-ended input, A0 to A3.
type Channel int

const (
	ADS1015 Variant = "ADS1015"
	ADS1115 Variant = "ADS1115"

	ChannelA0 Channel = 0
	ChannelA1 Channel = 1
	ChannelA2 Channel = 2
	ChannelA3 Channel = 3

	// DefaultAddress is the address with the ADDR pin tied to ground.
	DefaultAddress uint16 = 0x48

	regConversion byte = 0x00
	regConfig     byte = 0x01

	cfgOSStart     uint16 = 1 << 15
	cfgMuxSingle   uint16 = 0x4 << 12
	cfgPGAShift           = 9
	cfgModeSingle  uint16 = 1 << 8
	cfgDRShift            = 5
	cfgCompDisable uint16 = 0x03
)

var (
	errInvalidChannel    = errors.New("ads1x15: invalid channel")
	errInvalidVariant    = errors.New("ads1x15: invalid variant")
	errInvalidFullScale  = errors.New("ads1x15: unsupported full scale range")
	errInvalidDataRate   = errors.New("ads1x15: unsupported data rate")
	errConversionTimeout = errors.New("ads1x15: conversion timed out")
)

// fullScales is indexed by the PGA field value.
var fullScales = []physic.ElectricPotential{
	6144 * physic.MilliVolt,
	4096 * physic.MilliVolt,
	2048 * physic.MilliVolt,
	1024 * physic.MilliVolt,
	512 * physic.MilliVolt,
	256 * physic.MilliVolt,
}

// dataRates is indexed by the DR field value.
var dataRates = map[Variant][]physic.Frequency{
	ADS1015: {128 * physic.Hertz, 250 * physic.Hertz, 490 * physic.Hertz, 920 * physic.Hertz, 1600 * physic.Hertz, 2400 * physic.Hertz, 3300 * physic.Hertz},
	ADS1115: {8 * physic.Hertz, 16 * physic.Hertz, 32 * physic.Hertz, 64 * physic.Hertz, 128 * physic.Hertz, 250 * physic.Hertz, 475 * physic.Hertz, 860 * physic.Hertz},
}

// Opts holds the configuration options for the device.
type Opts struct {
	Variant Variant
	// FullScale is the programmable gain amplifier range, ±FullScale. One of
	// 6.144V, 4.096V, 2.048V, 1.024V, 0.512V or 0.256V. Default is 2.048V.
	FullScale physic.ElectricPotential
	// DataRate must be one of the rates listed in the datasheet for the
	// variant. Leave 0 for the device default, 1600Hz on the ADS1015 and
	// 128Hz on the ADS1115.
	DataRate physic.Frequency
	// ConversionTimeout bounds the wait for a single conversion. Default is
	// 10ms.
	ConversionTimeout time.Duration
}

// DefaultOpts is the power-on configuration of an ADS1015.
var DefaultOpts = Opts{
	Variant:           ADS1015,
	FullScale:         2048 * physic.MilliVolt,
	DataRate:          1600 * physic.Hertz,
	ConversionTimeout: 10 * time.Millisecond,
}

// Dev represents an ADS1015 or ADS1115.
type Dev struct {
	d    *i2c.Dev
	mu   sync.Mutex
	opts Opts
	pga  uint16
	dr   uint16

	// period is the nominal duration of one conversion.
	period time.Duration
	// steps is the count for a positive full scale reading plus one.
	steps int64
}

// NewI2C returns a device on the bus at addr. The config register is read
// once to verify that the device acknowledges. opts can be nil.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{d: &i2c.Dev{Bus: b, Addr: addr}, opts: *opts}
	if err := d.configure(); err != nil {
		return nil, err
	}
	r := make([]byte, 2)
	if err := d.d.Tx([]byte{regConfig}, r); err != nil {
		return nil, fmt.Errorf("ads1x15: device not responding at %#x: %w", addr, err)
	}
	return d, nil
}

// configure validates the options and precomputes the register fields.
func (d *Dev) configure() error {
	rates, ok := dataRates[d.opts.Variant]
	if !ok {
		return errInvalidVariant
	}
	d.steps = 1 << 11
	if d.opts.Variant == ADS1115 {
		d.steps = 1 << 15
	}
	if d.opts.FullScale == 0 {
		d.opts.FullScale = DefaultOpts.FullScale
	}
	if d.opts.DataRate == 0 {
		d.opts.DataRate = rates[4]
	}
	if d.opts.ConversionTimeout <= 0 {
		d.opts.ConversionTimeout = DefaultOpts.ConversionTimeout
	}

	pga := -1
	for i, fs := range fullScales {
		if fs == d.opts.FullScale {
			pga = i
		}
	}
	if pga < 0 {
		return errInvalidFullScale
	}
	dr := -1
	for i, f := range rates {
		if f == d.opts.DataRate {
			dr = i
		}
	}
	if dr < 0 {
		return errInvalidDataRate
	}
	d.pga = uint16(pga) << cfgPGAShift
	d.dr = uint16(dr) << cfgDRShift
	d.period = d.opts.DataRate.Period()
	return nil
}

// ReadRaw performs a single-shot conversion on ch and returns the signed
// result code: [-2048, 2047] on the ADS1015, [-32768, 32767] on the
// ADS1115.
func (d *Dev) ReadRaw(ch Channel) (int32, error) {
	if ch < ChannelA0 || ch > ChannelA3 {
		return 0, errInvalidChannel
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	cfg := cfgOSStart | cfgMuxSingle | uint16(ch)<<12 | d.pga | cfgModeSingle | d.dr | cfgCompDisable
	if err := d.d.Tx([]byte{regConfig, byte(cfg >> 8), byte(cfg)}, nil); err != nil {
		return 0, err
	}
	time.Sleep(d.period)

	r := make([]byte, 2)
	end := time.Now().Add(d.opts.ConversionTimeout)
	for {
		if err := d.d.Tx([]byte{regConfig}, r); err != nil {
			return 0, err
		}
		// OS reads back as 1 once the device is idle again.
		if r[0]&byte(cfgOSStart>>8) != 0 {
			break
		}
		if time.Now().After(end) {
			return 0, errConversionTimeout
		}
		time.Sleep(d.period / 4)
	}

	if err := d.d.Tx([]byte{regConversion}, r); err != nil {
		return 0, err
	}
	code := int16(uint16(r[0])<<8 | uint16(r[1]))
	if d.opts.Variant == ADS1015 {
		// The 12-bit result is left justified.
		code >>= 4
	}
	return int32(code), nil
}

// Sense converts ch and returns both the code and the input voltage.
func (d *Dev) Sense(ch Channel) (analog.Sample, error) {
	raw, err := d.ReadRaw(ch)
	if err != nil {
		return analog.Sample{}, err
	}
	return analog.Sample{Raw: raw, V: d.CountToPotential(raw)}, nil
}

// CountToPotential converts a result code to the input voltage for the
// configured full scale range.
func (d *Dev) CountToPotential(raw int32) physic.ElectricPotential {
	return physic.ElectricPotential(int64(d.opts.FullScale) * int64(raw) / d.steps)
}

// Range returns the lowest and highest samples the device can report.
func (d *Dev) Range() (analog.Sample, analog.Sample) {
	lo := int32(-d.steps)
	hi := int32(d.steps - 1)
	return analog.Sample{Raw: lo, V: d.CountToPotential(lo)}, analog.Sample{Raw: hi, V: d.CountToPotential(hi)}
}

// PinForChannel returns an analog.PinADC reading from input ch.
func (d *Dev) PinForChannel(ch Channel) (analog.PinADC, error) {
	if ch < ChannelA0 || ch > ChannelA3 {
		return nil, errInvalidChannel
	}
	return &adcPin{d: d, ch: ch}, nil
}

// Halt implements conn.Resource. The device powers down on its own after
// every single-shot conversion so there is nothing to stop.
func (d *Dev) Halt() error {
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ads1x15: %s %s", d.opts.Variant, d.d.String())
}

type adcPin struct {
	d  *Dev
	ch Channel
}

func (p *adcPin) Name() string {
	return fmt.Sprintf("%s_A%d", p.d.opts.Variant, p.ch)
}

func (p *adcPin) Number() int {
	return int(p.ch)
}

// Function implements pin.Pin.
func (p *adcPin) Function() string {
	return "ADC"
}

func (p *adcPin) String() string {
	return p.Name()
}

func (p *adcPin) Halt() error {
	return nil
}

func (p *adcPin) Range() (analog.Sample, analog.Sample) {
	return p.d.Range()
}

func (p *adcPin) Read() (analog.Sample, error) {
	return p.d.Sense(p.ch)
}

var _ conn.Resource = &Dev{}
var _ analog.PinADC = &adcPin{}
