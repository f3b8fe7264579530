//////////////////////////////////////////////////////////////////////////////
//
// Consumer pool: drains the queue and forwards frames to the sink
//
// Copyright 2026 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package camsim

import "time"

// consumer is one of N symmetric draining actors. Workers share nothing but
// the queue; each owns its stats and the Pipeline aggregates after join.
type consumer struct {
	id    int
	queue *FrameQueue
	sink  FrameSink

	stats runStats
}

// run drains frames until the queue reports Drained. Sink failures are
// counted and logged, never fatal: a worker only ever exits through the
// drained transition.
func (c *consumer) run() {
	for {
		switch c.queue.Wait() {
		case Drained:
			log.Debug("consumer %d: drained, exiting", c.id)
			return
		case HasFrame:
			f, ok := c.queue.Pop()
			if !ok {
				// A sibling popped it first; wait again.
				continue
			}
			c.stats.addPopped()

			saveStart := time.Now()
			err := c.sink.Save(f)
			c.stats.addSaveTime(time.Since(saveStart))
			if err != nil {
				c.stats.addFailed()
				log.Warn("consumer %d: failed to save frame %d: %v", c.id, f.Seq, err)
				continue
			}
			c.stats.addSaved()
		}
	}
}
