package spotlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// compositor paints the overlay: the host view dimmed everywhere outside
// the highlight circle, with the tip spliced in at its resolved position.
//
// Terminals have no alpha channel, so "dim color at opacity" is realized by
// blending each cell's colors toward the dim color, against the configured
// terminal palette. Host styling is consumed while filling the cell buffer;
// cells inside the cutout render with the terminal's default attributes.
type compositor struct {
	viewport Size
	aspect   float64

	fg, bg, dim colorful.Color
	dimOpacity  float64

	dimStyle lipgloss.Style

	// Character buffer, reused across frames.
	buffer [][]rune
}

// tipPaint is the compositor's view of the tip for one frame.
type tipPaint struct {
	lines   []string
	left    int
	top     int
	width   int
	opacity float64
	visible bool
}

func newCompositor(cfg Config) (*compositor, error) {
	fg, err := colorful.Hex(cfg.Foreground)
	if err != nil {
		return nil, err
	}
	bg, err := colorful.Hex(cfg.Background)
	if err != nil {
		return nil, err
	}
	dim, err := colorful.Hex(cfg.DimColor)
	if err != nil {
		return nil, err
	}

	c := &compositor{
		aspect:     cfg.CellAspect,
		fg:         fg,
		bg:         bg,
		dim:        dim,
		dimOpacity: cfg.DimOpacity,
	}
	c.dimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg.BlendRgb(dim, cfg.DimOpacity).Hex())).
		Background(lipgloss.Color(bg.BlendRgb(dim, cfg.DimOpacity).Hex()))
	return c, nil
}

// resize adjusts the cell buffer to the viewport, reusing rows when the
// width is unchanged.
func (c *compositor) resize(viewport Size) {
	if viewport == c.viewport {
		return
	}
	c.viewport = viewport
	c.buffer = make([][]rune, viewport.Height)
	for y := range c.buffer {
		c.buffer[y] = make([]rune, viewport.Width)
	}
}

// Compose renders one overlay frame over the host's view.
func (c *compositor) Compose(background string, hl Highlight, tip tipPaint) string {
	if c.viewport.Width <= 0 || c.viewport.Height <= 0 {
		return background
	}
	c.fill(background)

	var out strings.Builder
	for y := 0; y < c.viewport.Height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		if tip.visible && y >= tip.top && y < tip.top+len(tip.lines) {
			c.writeRowWithTip(&out, y, hl, tip)
		} else {
			c.writeRun(&out, y, 0, c.viewport.Width, hl)
		}
	}
	return out.String()
}

// fill loads the host view into the cell buffer, consuming ANSI escapes.
func (c *compositor) fill(view string) {
	for y := range c.buffer {
		row := c.buffer[y]
		for x := range row {
			row[x] = ' '
		}
	}
	lines := strings.Split(view, "\n")
	for y, line := range lines {
		if y >= c.viewport.Height {
			break
		}
		x := 0
		for _, r := range stripEscapes(line) {
			if x >= c.viewport.Width {
				break
			}
			if r == '\r' {
				continue
			}
			c.buffer[y][x] = r
			x++
		}
	}
}

// writeRowWithTip emits one row that the tip passes through: dimmed or
// bright cells up to the tip, the tip line itself, then the remainder.
func (c *compositor) writeRowWithTip(out *strings.Builder, y int, hl Highlight, tip tipPaint) {
	left := clamp(tip.left, 0, c.viewport.Width)
	right := clamp(tip.left+tip.width, left, c.viewport.Width)

	c.writeRun(out, y, 0, left, hl)
	line := tip.lines[y-tip.top]
	if tip.opacity >= 0.999 {
		// Fully visible: splice the caller's styled content verbatim.
		out.WriteString(padLine(line, right-left))
	} else {
		faded := lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.bg.BlendRgb(c.fg, tip.opacity).Hex()))
		out.WriteString(faded.Render(padLine(stripEscapes(line), right-left)))
	}
	c.writeRun(out, y, right, c.viewport.Width, hl)
}

// writeRun emits the cells in [from, to) of row y, batching consecutive
// cells of the same class so styles open once per run.
func (c *compositor) writeRun(out *strings.Builder, y, from, to int, hl Highlight) {
	x := from
	for x < to {
		inside := c.inCutout(x, y, hl)
		start := x
		for x < to && c.inCutout(x, y, hl) == inside {
			x++
		}
		segment := string(c.buffer[y][start:x])
		if inside {
			out.WriteString(segment)
		} else {
			out.WriteString(c.dimStyle.Render(segment))
		}
	}
}

// inCutout reports whether cell (x, y) lies inside the highlight circle.
// The vertical distance is scaled by the cell aspect so the cutout looks
// circular despite terminal cells being taller than wide.
func (c *compositor) inCutout(x, y int, hl Highlight) bool {
	if hl.Radius <= 0 {
		return false
	}
	dx := float64(x) + 0.5 - hl.CenterX
	dy := (float64(y) + 0.5 - hl.CenterY) / c.aspect
	return dx*dx+dy*dy <= hl.Radius*hl.Radius
}

// padLine pads or truncates a (possibly styled) line to exactly width cells.
func padLine(line string, width int) string {
	w := lipgloss.Width(line)
	switch {
	case w == width:
		return line
	case w < width:
		return line + strings.Repeat(" ", width-w)
	default:
		// Too wide: fall back to plain text truncation.
		plain := []rune(stripEscapes(line))
		if len(plain) > width {
			plain = plain[:width]
		}
		return string(plain)
	}
}

// stripEscapes removes ANSI escape sequences, leaving printable content.
func stripEscapes(s string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) {
				ch := s[i]
				i++
				if (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') {
					break
				}
			}
			continue
		}
		out.WriteByte(s[i])
		i++
	}
	return out.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
