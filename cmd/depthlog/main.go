// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// depthlog samples a pressure transducer through an ADS1015 and appends the
// derived depth to a CSV file, one row per sample.
//
// Usage:
//
//	depthlog [-config file.yaml] [-gauge] [-v] <output-dir> [interval-seconds]
//
// The interval defaults to 10 seconds; 0 samples back to back. The log file
// is named after the start time of the run. SIGINT or SIGTERM stop the loop
// at the next cycle boundary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/depthlog/ads1x15"
	"github.com/GermanBionicSystems/depthlog/config"
	"github.com/GermanBionicSystems/depthlog/csvlog"
	"github.com/GermanBionicSystems/depthlog/depth"
	"github.com/GermanBionicSystems/depthlog/gauge"
	"github.com/GermanBionicSystems/depthlog/sampler"
)

// settings is the validated command line.
type settings struct {
	cfg      *config.Config
	dir      string
	interval time.Duration
	verbose  bool
}

var errUsage = errors.New("usage: depthlog [-config file.yaml] [-gauge] [-v] <output-dir> [interval-seconds]")

// parseArgs validates the command line and the configuration file without
// touching the hardware.
func parseArgs(args []string, stderr io.Writer) (*settings, error) {
	fs := flag.NewFlagSet("depthlog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgFile := fs.String("config", "", "YAML configuration file")
	showGauge := fs.Bool("gauge", false, "draw the depth on the terminal")
	verbose := fs.Bool("v", false, "log every sample")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return nil, errUsage
	}

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		return nil, err
	}
	if *showGauge {
		cfg.Display.Enabled = true
	}
	s := &settings{cfg: cfg, dir: fs.Arg(0), verbose: *verbose}
	if err := config.CheckOutputDir(s.dir); err != nil {
		return nil, err
	}
	if s.interval, err = config.ParseInterval(fs.Arg(1)); err != nil {
		return nil, err
	}
	return s, nil
}

func run(ctx context.Context, s *settings) error {
	if _, err := host.Init(); err != nil {
		return &depth.HardwareError{Op: "host init", Err: err}
	}
	bus, err := i2creg.Open(s.cfg.ADC.Bus)
	if err != nil {
		return &depth.HardwareError{Op: "open bus", Err: err}
	}
	defer bus.Close()

	adc, err := ads1x15.NewI2C(bus, s.cfg.ADC.Address, &ads1x15.DefaultOpts)
	if err != nil {
		return &depth.HardwareError{Op: "init adc", Err: err}
	}
	defer adc.Halt()
	pin, err := adc.PinForChannel(ads1x15.Channel(s.cfg.ADC.Channel))
	if err != nil {
		return &depth.HardwareError{Op: "init adc", Err: err}
	}

	sink, err := csvlog.Open(s.dir, time.Now())
	if err != nil {
		return err
	}
	log.Printf("depthlog: %s on %s, writing %s every %s", adc, pin, sink.Path(), s.interval)

	opts := sampler.Opts{
		Interval: s.interval,
		Retries:  s.cfg.Retry.Attempts,
		Backoff:  s.cfg.Retry.Backoff,
		Verbose:  s.verbose,
	}
	if s.cfg.Display.Enabled {
		g := gauge.New(&gauge.Opts{Width: s.cfg.Display.Width, MaxDepth: s.cfg.Display.MaxDepth})
		defer g.Halt()
		opts.Observer = g
	}
	l, err := sampler.New(&sampler.PinSource{Pin: pin}, sink, &opts)
	if err != nil {
		return errors.Join(err, sink.Close())
	}
	err = l.Run(ctx)
	log.Printf("depthlog: %s after %d samples", l.State(), l.Cycles())
	return errors.Join(err, sink.Close())
}

func mainImpl() error {
	s, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, s)
}

func main() {
	if err := mainImpl(); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "depthlog: %s.\n", err)
		}
		os.Exit(1)
	}
}
