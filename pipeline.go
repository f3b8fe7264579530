//////////////////////////////////////////////////////////////////////////////
//
// Pipeline coordinator: lifecycle, cancellation, joining, aggregation
//
// Copyright 2026 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package camsim

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lanikai/camsim/internal/logging"
)

var log = logging.DefaultLogger.WithTag("camsim")

// Pipeline owns one simulated capture run: a producer pacing frames into a
// bounded queue and a pool of consumers forwarding them to a sink. All run
// state lives on the Pipeline instance, so independent runs can coexist in
// one process (tests construct many).
type Pipeline struct {
	cfg   Config
	queue *FrameQueue
	prod  *producer
	pool  []*consumer

	startedMu sync.Mutex
	started   bool
}

// New validates the configuration and assembles a pipeline. A configuration
// error is fatal here: the pipeline never starts.
func New(cfg Config, factory PayloadFactory, sink FrameSink) (*Pipeline, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "pipeline config")
	}
	if factory == nil {
		return nil, errors.New("pipeline: nil payload factory")
	}
	if sink == nil {
		return nil, errors.New("pipeline: nil frame sink")
	}

	p := &Pipeline{
		cfg:   cfg,
		queue: NewFrameQueue(cfg.QueueCapacity),
	}
	p.prod = &producer{
		queue:    p.queue,
		factory:  factory,
		fps:      cfg.TargetFPS,
		duration: cfg.RunDuration,
		width:    cfg.Width,
		height:   cfg.Height,
	}
	for i := 0; i < cfg.Consumers; i++ {
		p.pool = append(p.pool, &consumer{id: i, queue: p.queue, sink: sink})
	}
	return p, nil
}

// Run executes the pipeline to completion and returns the aggregated report.
// It blocks until the run duration elapses or ctx is cancelled, and then
// until every consumer has drained. The join has no timeout: the terminal
// broadcast guarantees every blocked consumer wakes.
//
// Cancellation reaches both sides independently: the producer observes ctx
// in its own loop (it must stop generating, not merely lose the ability to
// push) and the queue is marked cancelled so empty-queue waiters wake at
// once. Run may be called only once per Pipeline.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	p.startedMu.Lock()
	if p.started {
		p.startedMu.Unlock()
		return nil, errors.New("pipeline already ran")
	}
	p.started = true
	p.startedMu.Unlock()

	log.Info("pipeline: %d consumers, queue capacity %d, %.1f fps for %v",
		p.cfg.Consumers, p.cfg.QueueCapacity, p.cfg.TargetFPS, p.cfg.RunDuration)

	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(1 + len(p.pool))
	go func() {
		defer wg.Done()
		p.prod.run(ctx)
	}()
	for _, c := range p.pool {
		go func(c *consumer) {
			defer wg.Done()
			c.run()
		}(c)
	}

	// Relay external cancellation to the queue's wait predicate. The
	// relay exits once the run is over.
	runDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			log.Warn("pipeline: external cancellation: %v", ctx.Err())
			p.queue.MarkCancelled()
		case <-runDone:
		}
	}()

	wg.Wait()
	close(runDone)

	report := p.aggregate(time.Since(start))
	log.Info("pipeline: done, generated %d, dropped %d, saved %d, failed %d",
		report.Generated, report.Dropped, report.Saved, report.Failed)
	return report, nil
}

func (p *Pipeline) aggregate(elapsed time.Duration) *Report {
	ps := p.prod.stats.snapshot()
	r := &Report{
		Generated:   ps.Generated,
		Dropped:     ps.Dropped,
		Elapsed:     elapsed,
		GenTime:     ps.GenTime,
		EnqueueTime: ps.EnqueueTime,
	}
	for _, c := range p.pool {
		cs := c.stats.snapshot()
		r.Saved += cs.Saved
		r.Failed += cs.Failed
		r.SaveTime += cs.SaveTime
		r.Consumers = append(r.Consumers, cs)
	}
	return r
}

// PipelineStats is a live snapshot of a run in flight, for monitoring.
type PipelineStats struct {
	Producer  ActorStats   `json:"producer"`
	Consumers []ActorStats `json:"consumers"`
	QueueLen  int          `json:"queue_len"`
}

// Stats returns a point-in-time snapshot. Safe to call concurrently with a
// running pipeline; counters are read atomically.
func (p *Pipeline) Stats() PipelineStats {
	s := PipelineStats{
		Producer: p.prod.stats.snapshot(),
		QueueLen: p.queue.Len(),
	}
	for _, c := range p.pool {
		s.Consumers = append(s.Consumers, c.stats.snapshot())
	}
	return s
}
