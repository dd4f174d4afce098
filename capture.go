package spotlight

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// CaptureConfig defines how composited overlay frames are rasterized.
type CaptureConfig struct {
	Width      int        // Terminal width in cells
	Height     int        // Terminal height in cells
	Background color.RGBA // Image background color
	Foreground color.RGBA // Text color
	OutputDir  string     // Directory frame files are written to
}

// FrameRecorder rasterizes composited overlay frames to PNG files, one per
// capture, numbered in sequence. Useful for documenting a tour or eyeballing
// the cutout and tip motion outside a terminal.
type FrameRecorder struct {
	config     CaptureConfig
	charWidth  int
	charHeight int
	font       font.Face
	frame      int
}

// NewFrameRecorder creates a recorder and ensures the output directory
// exists.
func NewFrameRecorder(config CaptureConfig) (*FrameRecorder, error) {
	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("spotlight: create capture dir: %w", err)
		}
	}
	return &FrameRecorder{
		config:     config,
		charWidth:  8,
		charHeight: 16,
		font:       basicfont.Face7x13,
	}, nil
}

// Capture rasterizes one composited frame (the string returned by
// Overlay.Compose) and writes it as <seq>_<name>.png, returning the path.
// Styling escapes are dropped; capture records layout, not colors.
func (r *FrameRecorder) Capture(frame, name string) (string, error) {
	width := r.config.Width * r.charWidth
	height := r.config.Height * r.charHeight

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, r.config.Background)
		}
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.config.Foreground),
		Face: r.font,
	}

	for lineIdx, line := range strings.Split(frame, "\n") {
		if lineIdx >= r.config.Height {
			break
		}
		for charIdx, char := range []rune(stripEscapes(line)) {
			if charIdx >= r.config.Width {
				break
			}
			if char == ' ' {
				continue
			}
			drawer.Dot = fixed.Point26_6{
				X: fixed.Int26_6(charIdx * r.charWidth << 6),
				Y: fixed.Int26_6((lineIdx + 1) * r.charHeight << 6),
			}
			drawer.DrawString(string(char))
		}
	}

	path := filepath.Join(r.config.OutputDir, fmt.Sprintf("%04d_%s.png", r.frame, name))
	r.frame++

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", err
	}
	return path, nil
}
