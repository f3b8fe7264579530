//////////////////////////////////////////////////////////////////////////////
//
// Config contains configuration data for a Pipeline run
//
// Copyright 2026 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package camsim

import (
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	// TargetFPS is the nominal capture rate the producer paces to.
	TargetFPS float64

	// RunDuration is the soft deadline for the whole run, checked
	// cooperatively by the producer loop.
	RunDuration time.Duration

	// Consumers is the number of worker goroutines draining the queue.
	Consumers int

	// QueueCapacity bounds in-flight frames; older frames are shed when
	// the producer outruns the consumers.
	QueueCapacity int

	// Width and Height of generated payloads, in pixels.
	Width  int
	Height int

	// OutputFormat is passed through to the sink untouched (e.g. "jpeg").
	OutputFormat string
}

// validate rejects configurations the pipeline must never start with.
func (c *Config) validate() error {
	if c.TargetFPS <= 0 {
		return errors.Errorf("target fps must be positive, got %v", c.TargetFPS)
	}
	if c.RunDuration <= 0 {
		return errors.Errorf("run duration must be positive, got %v", c.RunDuration)
	}
	if c.Consumers < 1 {
		return errors.Errorf("consumer count must be at least 1, got %d", c.Consumers)
	}
	if c.QueueCapacity < 1 {
		return errors.Errorf("queue capacity must be at least 1, got %d", c.QueueCapacity)
	}
	if c.Width < 1 || c.Height < 1 {
		return errors.Errorf("frame geometry must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}
