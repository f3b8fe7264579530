package camsim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		TargetFPS:     10,
		RunDuration:   time.Second,
		Consumers:     3,
		QueueCapacity: 15,
		Width:         8,
		Height:        8,
		OutputFormat:  "png",
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.TargetFPS = 0 }},
		{"negative fps", func(c *Config) { c.TargetFPS = -5 }},
		{"zero duration", func(c *Config) { c.RunDuration = 0 }},
		{"no consumers", func(c *Config) { c.Consumers = 0 }},
		{"zero capacity", func(c *Config) { c.QueueCapacity = 0 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
	}
	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(&cfg)
		_, err := New(cfg, nullFactory{}, &countingSink{})
		assert.Error(t, err, tc.name)
	}

	_, err := New(validConfig(), nil, &countingSink{})
	assert.Error(t, err, "nil factory")
	_, err = New(validConfig(), nullFactory{}, nil)
	assert.Error(t, err, "nil sink")
}

// 10 fps for one second through three consumers and a comfortable queue:
// about ten frames, none shed, all saved, every worker drained.
func TestEndToEnd(t *testing.T) {
	sink := &countingSink{}
	p, err := New(validConfig(), nullFactory{}, sink)
	assert.NoError(t, err)

	report, err := p.Run(context.Background())
	assert.NoError(t, err)

	assert.True(t, report.Generated >= 8 && report.Generated <= 12,
		"generated %d frames, want about 10", report.Generated)
	assert.Equal(t, uint64(0), report.Dropped)
	assert.Equal(t, uint64(0), report.Failed)
	assert.Equal(t, report.Generated, report.Saved)
	assert.EqualValues(t, report.Saved, sink.saved())
	assert.Equal(t, 3, len(report.Consumers))

	var popped uint64
	for _, c := range report.Consumers {
		popped += c.Popped
	}
	assert.Equal(t, report.Generated, popped, "no loss without a counted drop")
}

func TestExternalCancellation(t *testing.T) {
	cfg := validConfig()
	cfg.TargetFPS = 20
	cfg.RunDuration = time.Hour

	p, err := New(cfg, nullFactory{}, &countingSink{})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(150 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	report, err := p.Run(ctx)
	assert.NoError(t, err)

	// The join must not hang: cancellation reaches the producer loop and
	// broadcasts to every blocked consumer.
	assert.True(t, time.Since(start) < 5*time.Second, "run did not stop on cancellation")

	// Consumers drain whatever was queued before exiting, so every pushed
	// frame was either popped or shed.
	var popped uint64
	for _, c := range report.Consumers {
		popped += c.Popped
	}
	assert.Equal(t, report.Generated, popped+report.Dropped,
		"all generated frames accounted for")
}

func TestRunIsOneShot(t *testing.T) {
	p, err := New(validConfig(), nullFactory{}, &countingSink{})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Run(ctx)
	assert.NoError(t, err)

	_, err = p.Run(ctx)
	assert.Error(t, err)
}

func TestStatsSnapshotDuringRun(t *testing.T) {
	cfg := validConfig()
	cfg.TargetFPS = 100
	cfg.RunDuration = 300 * time.Millisecond

	p, err := New(cfg, nullFactory{}, &countingSink{})
	assert.NoError(t, err)

	done := make(chan *Report, 1)
	go func() {
		r, _ := p.Run(context.Background())
		done <- r
	}()

	// Snapshots must be safe while actors are live.
	for i := 0; i < 10; i++ {
		s := p.Stats()
		assert.Equal(t, cfg.Consumers, len(s.Consumers))
		time.Sleep(20 * time.Millisecond)
	}

	report := <-done
	final := p.Stats()
	assert.Equal(t, report.Generated, final.Producer.Generated)
}
