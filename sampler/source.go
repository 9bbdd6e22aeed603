// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sampler

import (
	"periph.io/x/conn/v3/analog"

	"github.com/GermanBionicSystems/depthlog/depth"
)

// Source produces one raw ADC code per call.
//
// ReadRaw blocks for one conversion. Every failure is a *depth.HardwareError.
type Source interface {
	ReadRaw() (int32, error)
}

// PinSource reads codes from an analog input pin, for example an ads1x15
// channel.
type PinSource struct {
	Pin analog.PinADC
}

// ReadRaw implements Source.
func (p *PinSource) ReadRaw() (int32, error) {
	s, err := p.Pin.Read()
	if err != nil {
		return 0, &depth.HardwareError{Op: "read " + p.Pin.Name(), Err: err}
	}
	return s.Raw, nil
}

func (p *PinSource) String() string {
	return p.Pin.String()
}

var _ Source = &PinSource{}
