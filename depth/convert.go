// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package depth

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
)

const (
	// MinCode and MaxCode bound the signed 12-bit ADC output.
	MinCode int32 = -2048
	MaxCode int32 = 2047

	// MinVoltage and MaxVoltage are the transducer output span in volts.
	MinVoltage = 0.0
	MaxVoltage = 3.3

	// MinPressure and MaxPressure are the transducer span in PSI.
	MinPressure = 0.0
	MaxPressure = 100.0

	// PascalPerPSI converts pounds per square inch to pascal.
	PascalPerPSI = 689.47573
	// SaltwaterDensity in kg/m³.
	SaltwaterDensity = 1023.6
	// Gravity is standard gravitational acceleration in m/s².
	Gravity = 9.80665
)

// Reading is the result of converting one ADC code.
type Reading struct {
	// Voltage at the ADC input, in volts.
	Voltage float64
	// Pressure in PSI.
	Pressure float64
	// Depth below the surface in metres.
	Depth float64
}

// Convert maps a raw ADC code to physical units.
//
// Codes outside [MinCode, MaxCode] are not rejected, they extrapolate along
// the same lines and may yield negative values.
func Convert(raw int32) Reading {
	v := remap(float64(raw), float64(MinCode), float64(MaxCode), MinVoltage, MaxVoltage)
	psi := remap(v, MinVoltage, MaxVoltage, MinPressure, MaxPressure)
	return Reading{Voltage: v, Pressure: psi, Depth: depthFromPascal(psi * PascalPerPSI)}
}

// remap scales in from [inMin, inMax] to [outMin, outMax].
func remap(in, inMin, inMax, outMin, outMax float64) float64 {
	return (in-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// depthFromPascal applies h = P / (ρg).
func depthFromPascal(pa float64) float64 {
	return pa / (SaltwaterDensity * Gravity)
}

// Potential returns the voltage as a physic value.
func (r Reading) Potential() physic.ElectricPotential {
	return physic.ElectricPotential(r.Voltage * float64(physic.Volt))
}

// Pascal returns the pressure as a physic value.
func (r Reading) Pascal() physic.Pressure {
	return physic.Pressure(r.Pressure * PascalPerPSI * float64(physic.Pascal))
}

// Distance returns the depth as a physic value.
func (r Reading) Distance() physic.Distance {
	return physic.Distance(r.Depth * float64(physic.Metre))
}

func (r Reading) String() string {
	return fmt.Sprintf("%s, %.3fpsi (%s), %s", r.Potential(), r.Pressure, r.Pascal(), r.Distance())
}
