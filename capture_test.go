package spotlight

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRecorder_WritesSequencedPNGs(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewFrameRecorder(CaptureConfig{
		Width:      20,
		Height:     5,
		Background: color.RGBA{0, 0, 0, 255},
		Foreground: color.RGBA{255, 255, 255, 255},
		OutputDir:  dir,
	})
	require.NoError(t, err)

	first, err := rec.Capture("hello\nworld", "entering")
	require.NoError(t, err)
	second, err := rec.Capture("hello\nworld", "settled")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "0000_entering.png"), first)
	assert.Equal(t, filepath.Join(dir, "0001_settled.png"), second)

	f, err := os.Open(first)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 20*8, img.Bounds().Dx())
	assert.Equal(t, 5*16, img.Bounds().Dy())
}

func TestFrameRecorder_StripsStylingFromFrames(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewFrameRecorder(CaptureConfig{
		Width:      10,
		Height:     2,
		Background: color.RGBA{A: 255},
		Foreground: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		OutputDir:  dir,
	})
	require.NoError(t, err)

	// A styled frame must not panic the rasterizer or leak escape bytes
	// into glyph drawing; the capture is layout-only.
	path, err := rec.Capture("\x1b[38;5;240mdim\x1b[0m text", "styled")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestFrameRecorder_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captures", "tour")
	_, err := NewFrameRecorder(CaptureConfig{Width: 4, Height: 2, OutputDir: dir})
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
