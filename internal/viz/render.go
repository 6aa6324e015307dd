package viz

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physdeck/internal/stage"
)

// Drawables fainter than this are not drawn; below fadedOpacity they are
// drawn in the muted colour.
const (
	hiddenOpacity = 0.1
	fadedOpacity  = 0.5
	ringSegments  = 72
)

type cell struct {
	s   string
	ink lipgloss.Color
}

type frame struct {
	w, h   int
	canvas *Canvas
	text   [][]cell
}

// Render draws drawables onto a w×h character grid.
func Render(drawables []stage.Drawable, w, h int, theme Theme) string {
	f := newFrame(max(w, 8), max(h, 4))
	for _, d := range drawables {
		f.draw(d, theme)
	}
	return f.render(theme)
}

func newFrame(w, h int) *frame {
	f := &frame{w: w, h: h, canvas: NewCanvas(w, h), text: make([][]cell, h)}
	for i := range f.text {
		f.text[i] = make([]cell, w)
	}
	return f
}

// dot maps a scene point to braille dot coordinates.
func (f *frame) dot(v stage.Vec) dot {
	return dot{
		x: (v.X + stage.FrameWidth/2) / stage.FrameWidth * float64(2*f.w),
		y: (stage.FrameHeight/2 - v.Y) / stage.FrameHeight * float64(4*f.h),
	}
}

func (f *frame) path(vs ...stage.Vec) []dot {
	out := make([]dot, len(vs))
	for i, v := range vs {
		out[i] = f.dot(v)
	}
	return out
}

func ink(d stage.Drawable, theme Theme) lipgloss.Color {
	switch {
	case d.Opacity < fadedOpacity:
		return theme.Muted
	case d.Color != "":
		return lipgloss.Color(d.Color)
	case d.Kind == stage.KindText:
		return theme.Text
	case d.Kind == stage.KindTex || d.Kind == stage.KindBrace:
		return theme.Math
	}
	return theme.Shape
}

func (f *frame) draw(d stage.Drawable, theme Theme) {
	if d.Opacity < hiddenOpacity || d.Reveal <= 0 {
		return
	}
	c := ink(d, theme)
	s := string(c)

	switch d.Kind {
	case stage.KindText, stage.KindTex:
		f.write(d.Display(), d.Pos, d.Reveal, c)
	case stage.KindCircle:
		ring := make([]stage.Vec, ringSegments+1)
		for i := range ring {
			a := 2 * math.Pi * float64(i) / ringSegments
			ring[i] = d.Pos.Add(stage.Vec{X: math.Cos(a), Y: math.Sin(a)}.Scale(d.Radius))
		}
		f.canvas.Polyline(f.path(ring...), d.Reveal, s)
	case stage.KindDot:
		p := f.dot(d.Pos)
		f.canvas.Disc(p.x, p.y, d.Radius/stage.FrameWidth*float64(2*f.w), s)
	case stage.KindLine:
		f.canvas.Polyline(f.path(d.From, d.To), d.Reveal, s)
	case stage.KindRect:
		f.canvas.Polyline(f.box(d), d.Reveal, s)
	case stage.KindImage:
		f.canvas.Polyline(f.box(d), d.Reveal, s)
		f.write("["+filepath.Base(d.Content)+"]", d.Pos, d.Reveal, c)
	case stage.KindBrace:
		_, h := d.Size()
		top, bottom := d.Pos.Y+h/2, d.Pos.Y-h/2
		bar := top - 0.15
		x0, x1 := d.Pos.X-d.W/2, d.Pos.X+d.W/2
		f.canvas.Polyline(f.path(
			stage.Vec{X: x0, Y: top}, stage.Vec{X: x0, Y: bar},
			stage.Vec{X: d.Pos.X, Y: bar}, stage.Vec{X: d.Pos.X, Y: bar - 0.1},
			stage.Vec{X: d.Pos.X, Y: bar},
			stage.Vec{X: x1, Y: bar}, stage.Vec{X: x1, Y: top},
		), d.Reveal, s)
		label := stage.Vec{X: d.Pos.X, Y: bottom + (h-0.3)/2}
		f.write(d.Display(), label, d.Reveal, c)
	}
}

func (f *frame) box(d stage.Drawable) []dot {
	lo, hi := d.Bounds()
	return f.path(
		stage.Vec{X: lo.X, Y: hi.Y}, hi,
		stage.Vec{X: hi.X, Y: lo.Y}, lo,
		stage.Vec{X: lo.X, Y: hi.Y},
	)
}

// write centres text on pos and lays out the leading reveal fraction of it.
func (f *frame) write(text string, pos stage.Vec, reveal float64, c lipgloss.Color) {
	lines := strings.Split(text, "\n")
	rows := make([][]string, len(lines))
	total := 0
	for i, l := range lines {
		rows[i] = cells(l)
		total += len(rows[i])
	}
	budget := int(math.Ceil(float64(total) * math.Min(reveal, 1)))

	center := f.dot(pos)
	cx, cy := center.x/2, center.y/4
	top := int(math.Round(cy)) - len(rows)/2
	for i, row := range rows {
		y := top + i
		x := int(math.Round(cx)) - len(row)/2
		for _, s := range row {
			if budget == 0 {
				return
			}
			budget--
			if y >= 0 && y < f.h && x >= 0 && x < f.w {
				f.text[y][x] = cell{s: s, ink: c}
			}
			x++
		}
	}
}

// cells splits s into terminal cells, keeping combining marks with the
// rune they modify.
func cells(s string) []string {
	var out []string
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) && len(out) > 0 {
			out[len(out)-1] += string(r)
			continue
		}
		out = append(out, string(r))
	}
	return out
}

func (f *frame) render(theme Theme) string {
	base := lipgloss.NewStyle().Background(theme.Background)
	rows := make([]string, f.h)
	for y := 0; y < f.h; y++ {
		var b strings.Builder
		var run strings.Builder
		var runInk lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := base
			if runInk != "" {
				style = style.Foreground(runInk)
			}
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for x := 0; x < f.w; x++ {
			s, c := " ", lipgloss.Color("")
			switch {
			case f.text[y][x].s != "":
				s, c = f.text[y][x].s, f.text[y][x].ink
			case !f.canvas.Blank(x, y):
				s, c = string(f.canvas.Grid[y][x]), lipgloss.Color(f.canvas.Ink[y][x])
			}
			if c != runInk {
				flush()
				runInk = c
			}
			run.WriteString(s)
		}
		flush()
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}
