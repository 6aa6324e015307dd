// Package export writes stage frames as SVG files.
package export

import (
	"fmt"
	"html"
	"math"
	"path/filepath"
	"strings"

	"github.com/san-kum/physdeck/internal/stage"
	"github.com/san-kum/physdeck/internal/viz"
)

// DefaultScale is pixels per scene unit.
const DefaultScale = 100.0

type svgWriter struct {
	sb    strings.Builder
	scale float64
	theme viz.Theme
	font  string
}

func (w *svgWriter) x(v float64) float64 { return (v + stage.FrameWidth/2) * w.scale }
func (w *svgWriter) y(v float64) float64 { return (stage.FrameHeight/2 - v) * w.scale }

// FrameToSVG draws a frame as vector graphics.
func FrameToSVG(drawables []stage.Drawable, theme viz.Theme, font string, scale float64) string {
	if scale <= 0 {
		scale = DefaultScale
	}
	w := &svgWriter{scale: scale, theme: theme, font: font}
	width := stage.FrameWidth * scale
	height := stage.FrameHeight * scale

	fmt.Fprintf(&w.sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, theme.Background)

	for _, d := range drawables {
		if d.Opacity <= 0 || d.Reveal <= 0 {
			continue
		}
		w.drawable(d)
	}

	w.sb.WriteString("</svg>\n")
	return w.sb.String()
}

func (w *svgWriter) color(d stage.Drawable) string {
	switch {
	case d.Color != "":
		return d.Color
	case d.Kind == stage.KindText:
		return string(w.theme.Text)
	case d.Kind == stage.KindTex || d.Kind == stage.KindBrace:
		return string(w.theme.Math)
	}
	return string(w.theme.Shape)
}

func (w *svgWriter) drawable(d stage.Drawable) {
	c := w.color(d)
	op := fmt.Sprintf(`opacity="%.2f"`, d.Opacity)

	switch d.Kind {
	case stage.KindText, stage.KindTex:
		w.text(d.Display(), d.Pos, d.FontSize, c, op)
	case stage.KindCircle:
		fmt.Fprintf(&w.sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="4" %s/>
`, w.x(d.Pos.X), w.y(d.Pos.Y), d.Radius*w.scale, c, op)
	case stage.KindDot:
		fmt.Fprintf(&w.sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" %s/>
`, w.x(d.Pos.X), w.y(d.Pos.Y), d.Radius*w.scale, c, op)
	case stage.KindLine:
		fmt.Fprintf(&w.sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="4" %s/>
`, w.x(d.From.X), w.y(d.From.Y), w.x(d.To.X), w.y(d.To.Y), c, op)
	case stage.KindRect:
		lo, hi := d.Bounds()
		fmt.Fprintf(&w.sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="4" %s/>
`, w.x(lo.X), w.y(hi.Y), (hi.X-lo.X)*w.scale, (hi.Y-lo.Y)*w.scale, c, op)
	case stage.KindImage:
		lo, hi := d.Bounds()
		fmt.Fprintf(&w.sb, `<image x="%.1f" y="%.1f" width="%.1f" height="%.1f" xlink:href="%s" %s/>
`, w.x(lo.X), w.y(hi.Y), (hi.X-lo.X)*w.scale, (hi.Y-lo.Y)*w.scale, html.EscapeString(filepath.ToSlash(d.Content)), op)
	case stage.KindBrace:
		_, h := d.Size()
		top, bottom := d.Pos.Y+h/2, d.Pos.Y-h/2
		bar := top - 0.15
		x0, x1, mid := w.x(d.Pos.X-d.W/2), w.x(d.Pos.X+d.W/2), w.x(d.Pos.X)
		fmt.Fprintf(&w.sb, `<path d="M%.1f,%.1f Q%.1f,%.1f %.1f,%.1f L%.1f,%.1f Q%.1f,%.1f %.1f,%.1f Q%.1f,%.1f %.1f,%.1f L%.1f,%.1f Q%.1f,%.1f %.1f,%.1f" fill="none" stroke="%s" stroke-width="3" %s/>
`,
			x0, w.y(top), x0, w.y(bar), x0+10, w.y(bar),
			mid-10, w.y(bar),
			mid, w.y(bar), mid, w.y(bar-0.1),
			mid, w.y(bar), mid+10, w.y(bar),
			x1-10, w.y(bar),
			x1, w.y(bar), x1, w.y(top),
			c, op)
		w.text(d.Display(), stage.Vec{X: d.Pos.X, Y: bottom + (h-0.3)/2}, d.FontSize, c, op)
	}
}

func (w *svgWriter) text(s string, pos stage.Vec, size float64, c, op string) {
	lines := strings.Split(s, "\n")
	px := size / stage.DefaultFontSize * 40 * w.scale / DefaultScale
	lead := px * 1.25
	y0 := w.y(pos.Y) - lead*float64(len(lines)-1)/2

	fmt.Fprintf(&w.sb, `<text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle" %s>`,
		w.x(pos.X), y0, html.EscapeString(w.font), px, c, op)
	for i, l := range lines {
		if i == 0 {
			fmt.Fprintf(&w.sb, `<tspan x="%.1f">%s</tspan>`, w.x(pos.X), html.EscapeString(l))
			continue
		}
		fmt.Fprintf(&w.sb, `<tspan x="%.1f" dy="%.1f">%s</tspan>`, w.x(pos.X), lead, html.EscapeString(l))
	}
	w.sb.WriteString("</text>\n")
}

// TrajectoryToSVG draws a path scaled to fit a width×height picture.
func TrajectoryToSVG(points []stage.Vec, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
