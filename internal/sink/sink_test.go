package sink

import (
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lanikai/camsim"
	"github.com/lanikai/camsim/internal/payload"
)

func TestImageSinkWritesPNG(t *testing.T) {
	dir, err := ioutil.TempDir("", "camsim-sink")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	s, err := NewImageSink(dir, "png", 4, 3, 90)
	assert.NoError(t, err)

	factory := &payload.SolidRGB{R: 255}
	err = s.Save(camsim.Frame{Seq: 42, Data: factory.Generate(4, 3)})
	assert.NoError(t, err)

	file, err := os.Open(filepath.Join(dir, "frame_000042.png"))
	assert.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	assert.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.EqualValues(t, 0xffff, r)
	assert.EqualValues(t, 0, g)
	assert.EqualValues(t, 0, b)
}

func TestImageSinkWritesJPEG(t *testing.T) {
	dir, err := ioutil.TempDir("", "camsim-sink")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	s, err := NewImageSink(dir, "jpeg", 8, 8, 75)
	assert.NoError(t, err)

	factory := payload.NewRandomRGB()
	err = s.Save(camsim.Frame{Seq: 0, Data: factory.Generate(8, 8)})
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "frame_000000.jpeg"))
	assert.NoError(t, err)
}

func TestImageSinkRejectsWrongPayload(t *testing.T) {
	dir, err := ioutil.TempDir("", "camsim-sink")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	s, err := NewImageSink(dir, "png", 4, 4, 90)
	assert.NoError(t, err)

	err = s.Save(camsim.Frame{Seq: 1, Data: make([]byte, 7)})
	assert.Error(t, err)
}

func TestNewImageSinkValidation(t *testing.T) {
	dir, err := ioutil.TempDir("", "camsim-sink")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	_, err = NewImageSink(dir, "bmp", 4, 4, 90)
	assert.Error(t, err)

	_, err = NewImageSink(dir, "jpeg", 4, 4, 0)
	assert.Error(t, err)
	_, err = NewImageSink(dir, "jpeg", 4, 4, 101)
	assert.Error(t, err)
}
