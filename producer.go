//////////////////////////////////////////////////////////////////////////////
//
// Frame producer: paces payload generation to a target frame rate
//
// Copyright 2026 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package camsim

import (
	"context"
	"time"
)

// producer is the single generating actor. It runs in its own goroutine,
// owned by the Pipeline.
type producer struct {
	queue   *FrameQueue
	factory PayloadFactory

	fps      float64
	duration time.Duration
	width    int
	height   int

	stats runStats
}

// run generates frames until the run duration elapses or ctx is cancelled,
// then marks the queue finished exactly once. Frame k is scheduled at
// start + k/fps, measured against generation plus overhead: slow generation
// shrinks the sleep, and a late frame is pushed immediately rather than
// sleeping a negative interval.
func (p *producer) run(ctx context.Context) {
	defer p.queue.MarkProducerFinished()

	start := time.Now()
	deadline := start.Add(p.duration)
	period := time.Duration(float64(time.Second) / p.fps)

	log.Debug("producer: starting, period %v, deadline %v", period, p.duration)

	var seq uint64
	for {
		// Cancellation and deadline are cooperative, re-checked every
		// iteration so latency is bounded by one frame period.
		if ctx.Err() != nil {
			log.Info("producer: cancelled after %d frames", seq)
			return
		}
		if !time.Now().Before(deadline) {
			break
		}

		genStart := time.Now()
		data := p.factory.Generate(p.width, p.height)
		p.stats.addGenTime(time.Since(genStart))

		if wait := time.Until(start.Add(time.Duration(seq) * period)); wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				// Once cancellation is observed, nothing more is
				// pushed; the generated payload is abandoned.
				t.Stop()
				log.Info("producer: cancelled after %d frames", seq)
				return
			case <-t.C:
			}
		}

		f := Frame{Seq: seq, Data: data, CapturedAt: time.Now()}
		pushStart := time.Now()
		res := p.queue.Push(f)
		p.stats.addEnqueueTime(time.Since(pushStart))
		p.stats.addGenerated()
		if res.Evicted {
			p.stats.addDropped()
			log.Debug("producer: queue full, shed frame %d", res.EvictedSeq)
		}
		seq++
	}

	elapsed := time.Since(start)
	log.Info("producer: finished, %d frames in %v (%.2f fps effective)",
		seq, elapsed.Round(time.Millisecond), float64(seq)/elapsed.Seconds())
}
