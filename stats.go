//////////////////////////////////////////////////////////////////////////////
//
// Per-actor run statistics and the aggregated end-of-run report
//
// Copyright 2026 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package camsim

import (
	"sync/atomic"
	"time"
)

// runStats collects counters and timing accumulators for a single actor
// (the producer or one consumer). Only the owning actor writes; reads use
// atomics so Stats() can take live snapshots mid-run without racing.
type runStats struct {
	generated uint64
	dropped   uint64
	popped    uint64
	saved     uint64
	failed    uint64

	genNanos     int64
	enqueueNanos int64
	saveNanos    int64
}

func (s *runStats) addGenerated()                  { atomic.AddUint64(&s.generated, 1) }
func (s *runStats) addDropped()                    { atomic.AddUint64(&s.dropped, 1) }
func (s *runStats) addPopped()                     { atomic.AddUint64(&s.popped, 1) }
func (s *runStats) addSaved()                      { atomic.AddUint64(&s.saved, 1) }
func (s *runStats) addFailed()                     { atomic.AddUint64(&s.failed, 1) }
func (s *runStats) addGenTime(d time.Duration)     { atomic.AddInt64(&s.genNanos, int64(d)) }
func (s *runStats) addEnqueueTime(d time.Duration) { atomic.AddInt64(&s.enqueueNanos, int64(d)) }
func (s *runStats) addSaveTime(d time.Duration)    { atomic.AddInt64(&s.saveNanos, int64(d)) }

func (s *runStats) snapshot() ActorStats {
	return ActorStats{
		Generated:   atomic.LoadUint64(&s.generated),
		Dropped:     atomic.LoadUint64(&s.dropped),
		Popped:      atomic.LoadUint64(&s.popped),
		Saved:       atomic.LoadUint64(&s.saved),
		Failed:      atomic.LoadUint64(&s.failed),
		GenTime:     time.Duration(atomic.LoadInt64(&s.genNanos)),
		EnqueueTime: time.Duration(atomic.LoadInt64(&s.enqueueNanos)),
		SaveTime:    time.Duration(atomic.LoadInt64(&s.saveNanos)),
	}
}

// ActorStats is a point-in-time snapshot of one actor's counters. Producer
// snapshots populate the generation side, consumer snapshots the save side.
type ActorStats struct {
	Generated uint64 `json:"generated"`
	Dropped   uint64 `json:"dropped"`
	Popped    uint64 `json:"popped"`
	Saved     uint64 `json:"saved"`
	Failed    uint64 `json:"failed"`

	GenTime     time.Duration `json:"gen_time_ns"`
	EnqueueTime time.Duration `json:"enqueue_time_ns"`
	SaveTime    time.Duration `json:"save_time_ns"`
}

// Report is the aggregated result of a pipeline run, assembled by the
// coordinator once every actor has been joined.
type Report struct {
	Generated uint64 // frames produced (== frames pushed)
	Dropped   uint64 // frames evicted by the overflow policy
	Saved     uint64 // frames persisted by the sink
	Failed    uint64 // sink failures (recoverable, counted)

	Elapsed time.Duration

	// Cumulative timing accumulators across all actors.
	GenTime     time.Duration
	EnqueueTime time.Duration
	SaveTime    time.Duration

	// Consumers holds the per-worker snapshots, indexed by worker id.
	Consumers []ActorStats
}

// EffectiveFPS is the achieved generation rate over the whole run.
func (r *Report) EffectiveFPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Generated) / r.Elapsed.Seconds()
}

// AvgGenTime is the mean payload generation latency per frame.
func (r *Report) AvgGenTime() time.Duration {
	return avg(r.GenTime, r.Generated)
}

// AvgEnqueueTime is the mean queue push latency per frame.
func (r *Report) AvgEnqueueTime() time.Duration {
	return avg(r.EnqueueTime, r.Generated)
}

// AvgSaveTime is the mean sink persistence latency per saved frame.
func (r *Report) AvgSaveTime() time.Duration {
	return avg(r.SaveTime, r.Saved)
}

func avg(total time.Duration, n uint64) time.Duration {
	if n == 0 {
		return 0
	}
	return total / time.Duration(n)
}
