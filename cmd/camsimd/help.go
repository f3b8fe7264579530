package main

import (
	"fmt"

	"github.com/fatih/color"
)

const helpString = `Simulated camera capture pipeline

Usage: camsimd [OPTION]...

Capture:
  -f, --fps=NUM          Target capture rate (default: 50)
  -m, --duration=DUR     Run duration, e.g. 30s or 5m (default: 10s)
  -x, --width=NUM        Frame width (default: 1280)
  -y, --height=NUM       Frame height (default: 720)

Pipeline:
  -t, --consumers=NUM    Number of saver threads (default: 8)
  -q, --queue-size=NUM   Frame queue capacity (default: 15)

Output:
  -o, --output=DIR       Output directory (default: out)
      --format=FMT       Image format: png, jpeg or jpg (default: jpeg)
      --quality=NUM      JPEG quality, 1-100 (default: 90)
      --discard          Discard frames instead of saving

Monitoring:
      --monitor=ADDR     Serve live stats over websocket, e.g. :8000

Miscellaneous:
  -h, --help             Prints this help message and exits
  -v, --version          Prints version information and exits

Verbosity is controlled with the LOGLEVEL environment variable,
e.g. LOGLEVEL=debug or LOGLEVEL=camsim=debug,sink=warn.`

// Help information is printed and program exits
func help() {
	b := color.New(color.FgCyan, color.Bold)
	b.Println("camsimd - fixed-rate frame generator with a bounded save pipeline")
	fmt.Println("")
	fmt.Println(helpString)
}
