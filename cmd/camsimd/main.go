package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	"github.com/lanikai/camsim"
	"github.com/lanikai/camsim/internal/payload"
	"github.com/lanikai/camsim/internal/sink"
)

// Populated via -ldflags="-X ...". See Makefile.
var GitRevisionId string
var GitTag string

var (
	flagFPS       float64
	flagDuration  time.Duration
	flagConsumers int
	flagQueueSize int
	flagWidth     int
	flagHeight    int
	flagFormat    string
	flagQuality   int
	flagOutput    string
	flagDiscard   bool
	flagMonitor   string
	flagHelp      bool
	flagVersion   bool
)

func init() {
	flag.Float64VarP(&flagFPS, "fps", "f", 50, "Target capture rate")
	flag.DurationVarP(&flagDuration, "duration", "m", 10*time.Second, "Run duration")
	flag.IntVarP(&flagConsumers, "consumers", "t", 8, "Number of saver threads")
	flag.IntVarP(&flagQueueSize, "queue-size", "q", 15, "Frame queue capacity")
	flag.IntVarP(&flagWidth, "width", "x", 1280, "Frame width")
	flag.IntVarP(&flagHeight, "height", "y", 720, "Frame height")
	flag.StringVarP(&flagFormat, "format", "", "jpeg", "Output image format")
	flag.IntVarP(&flagQuality, "quality", "", 90, "JPEG quality")
	flag.StringVarP(&flagOutput, "output", "o", "out", "Output directory")
	flag.BoolVarP(&flagDiscard, "discard", "", false, "Discard frames instead of saving")
	flag.StringVarP(&flagMonitor, "monitor", "", "", "Serve live stats over websocket")

	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
	flag.BoolVarP(&flagVersion, "version", "v", false, "Print version information and exit")
}

func version() {
	fmt.Println("camsimd", GitRevisionId)
	fmt.Println("Copyright 2026 Lanikai Labs LLC. All rights reserved.")
}

func main() {
	flag.Parse()

	if flagHelp {
		help()
		os.Exit(0)
	}
	if flagVersion {
		version()
		os.Exit(0)
	}

	cfg := camsim.Config{
		TargetFPS:     flagFPS,
		RunDuration:   flagDuration,
		Consumers:     flagConsumers,
		QueueCapacity: flagQueueSize,
		Width:         flagWidth,
		Height:        flagHeight,
		OutputFormat:  flagFormat,
	}

	var frameSink camsim.FrameSink
	if flagDiscard {
		frameSink = sink.Discard{}
	} else {
		s, err := sink.NewImageSink(flagOutput, cfg.OutputFormat, cfg.Width, cfg.Height, flagQuality)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		frameSink = s
	}

	pipeline, err := camsim.New(cfg, payload.NewRandomRGB(), frameSink)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Operator abort (Ctrl-C) cancels the run; the pipeline still drains
	// and reports.
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if flagMonitor != "" {
		go serveMonitor(flagMonitor, pipeline)
	}

	report, err := pipeline.Run(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	printReport(report)
}

func printReport(r *camsim.Report) {
	heading := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgYellow)

	heading.Println("Run summary")
	fmt.Printf("  Generated:      %d frames in %v (%.2f fps effective)\n",
		r.Generated, r.Elapsed.Round(time.Millisecond), r.EffectiveFPS())
	if r.Dropped > 0 {
		warn.Printf("  Dropped:        %d frames (queue overflow)\n", r.Dropped)
	} else {
		fmt.Println("  Dropped:        0 frames")
	}
	fmt.Printf("  Saved:          %d frames\n", r.Saved)
	if r.Failed > 0 {
		warn.Printf("  Failed:         %d frames\n", r.Failed)
	}
	fmt.Printf("  Avg generation: %v\n", r.AvgGenTime())
	fmt.Printf("  Avg enqueue:    %v\n", r.AvgEnqueueTime())
	fmt.Printf("  Avg save:       %v\n", r.AvgSaveTime())

	heading.Println("Consumers")
	for i, c := range r.Consumers {
		fmt.Printf("  worker %d: %d popped, %d saved, %d failed\n",
			i, c.Popped, c.Saved, c.Failed)
	}
}
