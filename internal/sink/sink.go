//////////////////////////////////////////////////////////////////////////////
//
// Frame sinks: image file persistence and a discard sink
//
// Copyright 2026 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

// Package sink persists captured frames. The pipeline hands each popped
// frame to exactly one sink call; sink errors are recoverable and the
// pipeline keeps draining.
package sink

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/lanikai/camsim"
	"github.com/lanikai/camsim/internal/logging"
)

var log = logging.DefaultLogger.WithTag("sink")

// ImageSink encodes packed RGB payloads as PNG or JPEG files named
// frame_NNNNNN.<ext> in the output directory. The sink is configured with
// the same frame geometry as the payload factory; a payload of any other
// size is rejected. Safe for concurrent Save calls from multiple
// consumers; each call touches a distinct file.
type ImageSink struct {
	dir         string
	format      string
	width       int
	height      int
	jpegQuality int
}

// NewImageSink validates the format token and creates the output directory.
func NewImageSink(dir, format string, width, height, jpegQuality int) (*ImageSink, error) {
	switch format {
	case "png", "jpeg", "jpg":
	default:
		return nil, errors.Errorf("unsupported image format %q (want png, jpeg or jpg)", format)
	}
	if jpegQuality < 1 || jpegQuality > 100 {
		return nil, errors.Errorf("jpeg quality out of range: %d", jpegQuality)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create output directory")
	}
	return &ImageSink{
		dir:         dir,
		format:      format,
		width:       width,
		height:      height,
		jpegQuality: jpegQuality,
	}, nil
}

// Save encodes and writes one frame.
func (s *ImageSink) Save(f camsim.Frame) error {
	img, err := s.rgbImage(f.Data)
	if err != nil {
		return errors.Wrapf(err, "frame %d", f.Seq)
	}

	name := filepath.Join(s.dir, fmt.Sprintf("frame_%06d.%s", f.Seq, s.format))
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "frame %d", f.Seq)
	}
	defer file.Close()

	switch s.format {
	case "png":
		err = png.Encode(file, img)
	case "jpeg", "jpg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: s.jpegQuality})
	}
	if err != nil {
		return errors.Wrapf(err, "encode frame %d", f.Seq)
	}
	log.Debug("saved %s", name)
	return nil
}

// rgbImage converts packed RGB bytes (3 per pixel, row-major) to an
// image.RGBA with an opaque alpha channel.
func (s *ImageSink) rgbImage(data []byte) (*image.RGBA, error) {
	if want := s.width * s.height * 3; len(data) != want {
		return nil, errors.Errorf("payload is %d bytes, want %d for %dx%d RGB",
			len(data), want, s.width, s.height)
	}
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for i := 0; i < s.width*s.height; i++ {
		img.Pix[i*4+0] = data[i*3+0]
		img.Pix[i*4+1] = data[i*3+1]
		img.Pix[i*4+2] = data[i*3+2]
		img.Pix[i*4+3] = 255
	}
	return img, nil
}

// Discard accepts every frame and persists nothing. Useful for dry runs
// and for exercising the pipeline without disk I/O.
type Discard struct{}

func (Discard) Save(camsim.Frame) error { return nil }
