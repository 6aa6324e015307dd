package stage

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/san-kum/physdeck/internal/texfmt"
)

// Frame dimensions in scene units. The origin is the frame centre, y up.
const (
	FrameWidth  = 14.22
	FrameHeight = 8.0

	DefaultFontSize = 48.0
)

type Kind int

const (
	KindText Kind = iota
	KindTex
	KindCircle
	KindDot
	KindLine
	KindRect
	KindBrace
	KindImage
)

var kindNames = [...]string{"text", "tex", "circle", "dot", "line", "rect", "brace", "image"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec) Lerp(o Vec, t float64) Vec { return v.Add(o.Sub(v).Scale(t)) }

// Drawable is anything that can be shown on stage. A zero ID means the
// drawable has never been shown.
type Drawable struct {
	ID       int
	Kind     Kind
	Content  string
	FontSize float64
	Pos      Vec
	Color    string
	Radius   float64
	From, To Vec
	W, H     float64

	// Render-time fractions set by Interpolate. Settled drawables have both at 1.
	Opacity float64
	Reveal  float64

	// TrackID is the drawable a line's To end follows, see Track.
	TrackID int
	track   *Drawable
}

func newDrawable(kind Kind, content string) *Drawable {
	return &Drawable{Kind: kind, Content: content, FontSize: DefaultFontSize, Opacity: 1, Reveal: 1}
}

// NewText creates a plain text drawable. Newlines split lines.
func NewText(s string, size float64) *Drawable {
	d := newDrawable(KindText, s)
	if size > 0 {
		d.FontSize = size
	}
	return d
}

// NewTex creates a math drawable from LaTeX source. The source is checked
// when the drawable is first played.
func NewTex(src string, size float64) *Drawable {
	d := newDrawable(KindTex, src)
	if size > 0 {
		d.FontSize = size
	}
	return d
}

func NewCircle(radius float64, color string) *Drawable {
	d := newDrawable(KindCircle, "")
	d.Radius = radius
	d.Color = color
	return d
}

func NewDot() *Drawable {
	d := newDrawable(KindDot, "")
	d.Radius = 0.08
	return d
}

func NewLine(from, to Vec) *Drawable {
	d := newDrawable(KindLine, "")
	d.From, d.To = from, to
	d.Pos = from.Lerp(to, 0.5)
	return d
}

// NewImage references an image file (SVG logo, sticker) drawn in a w×h box.
func NewImage(path string, w, h float64) *Drawable {
	d := newDrawable(KindImage, path)
	d.W, d.H = w, h
	return d
}

// SurroundingRect frames target with buff units of padding.
func SurroundingRect(target *Drawable, buff float64, color string) *Drawable {
	w, h := target.Size()
	d := newDrawable(KindRect, "")
	d.W, d.H = w+2*buff, h+2*buff
	d.Pos = target.Pos
	d.Color = color
	return d
}

// NewBrace places a horizontal brace under target carrying a TeX label.
func NewBrace(target *Drawable, label string) *Drawable {
	w, h := target.Size()
	d := newDrawable(KindBrace, label)
	d.W = w
	d.FontSize = 36
	_, bh := d.Size()
	d.Pos = Vec{target.Pos.X, target.Pos.Y - h/2 - 0.1 - bh/2}
	return d
}

// Display returns the text a renderer should draw for d.
func (d *Drawable) Display() string {
	switch d.Kind {
	case KindTex, KindBrace:
		return texfmt.ToUnicode(d.Content)
	case KindText:
		return d.Content
	}
	return ""
}

func charWidth(size float64) float64 { return size / DefaultFontSize * 0.22 }
func lineHeight(size float64) float64 { return size / DefaultFontSize * 0.5 }

// Size estimates the extent of d in scene units.
func (d *Drawable) Size() (w, h float64) {
	switch d.Kind {
	case KindText, KindTex:
		lines := strings.Split(d.Display(), "\n")
		widest := 0
		for _, l := range lines {
			if n := utf8.RuneCountInString(l); n > widest {
				widest = n
			}
		}
		return float64(widest) * charWidth(d.FontSize), float64(len(lines)) * lineHeight(d.FontSize)
	case KindCircle, KindDot:
		return 2 * d.Radius, 2 * d.Radius
	case KindLine:
		return math.Abs(d.To.X - d.From.X), math.Abs(d.To.Y - d.From.Y)
	case KindBrace:
		labelW := float64(utf8.RuneCountInString(d.Display())) * charWidth(d.FontSize)
		return math.Max(d.W, labelW), 0.3 + lineHeight(d.FontSize)
	}
	return d.W, d.H
}

// Bounds returns the bottom-left and top-right corners of d.
func (d *Drawable) Bounds() (min, max Vec) {
	w, h := d.Size()
	return Vec{d.Pos.X - w/2, d.Pos.Y - h/2}, Vec{d.Pos.X + w/2, d.Pos.Y + h/2}
}

// Point returns the point on d's bounding box in direction dir from its centre.
func (d *Drawable) Point(dir Vec) Vec {
	w, h := d.Size()
	return Vec{d.Pos.X + dir.X*w/2, d.Pos.Y + dir.Y*h/2}
}
