package stage

// Directions and corners, matching the usual unit vectors of slide tools.
var (
	Origin = Vec{0, 0}
	Up     = Vec{0, 1}
	Down   = Vec{0, -1}
	Left   = Vec{-1, 0}
	Right  = Vec{1, 0}

	UL = Up.Add(Left)
	UR = Up.Add(Right)
	DL = Down.Add(Left)
	DR = Down.Add(Right)
)

// DefaultBuff is the edge margin used by ToCorner and ToEdge.
const DefaultBuff = 0.5

// Shift moves d by v.
func Shift(d *Drawable, v Vec) *Drawable {
	d.Pos = d.Pos.Add(v)
	d.From = d.From.Add(v)
	d.To = d.To.Add(v)
	return d
}

// MoveTo centres d on p.
func MoveTo(d *Drawable, p Vec) *Drawable {
	return Shift(d, p.Sub(d.Pos))
}

// Scale grows d about its centre.
func Scale(d *Drawable, f float64) *Drawable {
	d.FontSize *= f
	d.Radius *= f
	d.W *= f
	d.H *= f
	d.From = d.Pos.Add(d.From.Sub(d.Pos).Scale(f))
	d.To = d.Pos.Add(d.To.Sub(d.Pos).Scale(f))
	return d
}

// NextTo places d beside ref in direction dir with buff units between
// their bounding boxes. The perpendicular coordinate is aligned to ref.
func NextTo(d, ref *Drawable, dir Vec, buff float64) *Drawable {
	rw, rh := ref.Size()
	w, h := d.Size()
	p := ref.Pos
	if dir.X != 0 {
		p.X += dir.X * (rw/2 + w/2 + buff)
	}
	if dir.Y != 0 {
		p.Y += dir.Y * (rh/2 + h/2 + buff)
	}
	return MoveTo(d, p)
}

// ToCorner pushes d into a corner of the frame, buff units from the edges.
func ToCorner(d *Drawable, corner Vec, buff float64) *Drawable {
	return ToEdge(d, corner, buff)
}

// ToEdge pushes d against the frame edge(s) named by the non-zero
// components of edge. The other coordinate is left alone.
func ToEdge(d *Drawable, edge Vec, buff float64) *Drawable {
	w, h := d.Size()
	p := d.Pos
	if edge.X != 0 {
		p.X = sign(edge.X) * (FrameWidth/2 - buff - w/2)
	}
	if edge.Y != 0 {
		p.Y = sign(edge.Y) * (FrameHeight/2 - buff - h/2)
	}
	return MoveTo(d, p)
}

// Arrange chains ds in direction dir with buff units between neighbours
// and centres the group on the origin.
func Arrange(dir Vec, buff float64, ds ...*Drawable) {
	if len(ds) == 0 {
		return
	}
	for i := 1; i < len(ds); i++ {
		NextTo(ds[i], ds[i-1], dir, buff)
	}
	c := Center(ds...)
	for _, d := range ds {
		Shift(d, c.Scale(-1))
	}
}

// Center returns the centre of the bounding box of ds.
func Center(ds ...*Drawable) Vec {
	if len(ds) == 0 {
		return Origin
	}
	lo, hi := bounds(ds)
	return lo.Lerp(hi, 0.5)
}

// Envelope returns an undrawn rectangle covering ds, used to lay things
// out against a whole group.
func Envelope(ds ...*Drawable) *Drawable {
	r := newDrawable(KindRect, "")
	if len(ds) == 0 {
		return r
	}
	lo, hi := bounds(ds)
	r.W, r.H = hi.X-lo.X, hi.Y-lo.Y
	r.Pos = lo.Lerp(hi, 0.5)
	return r
}

// AlignTo lines up the edge of d named by dir with the same edge of ref.
func AlignTo(d, ref *Drawable, dir Vec) *Drawable {
	w, h := d.Size()
	lo, hi := ref.Bounds()
	p := d.Pos
	switch {
	case dir.X < 0:
		p.X = lo.X + w/2
	case dir.X > 0:
		p.X = hi.X - w/2
	}
	switch {
	case dir.Y < 0:
		p.Y = lo.Y + h/2
	case dir.Y > 0:
		p.Y = hi.Y - h/2
	}
	return MoveTo(d, p)
}

// Track makes the far end of line follow target wherever it moves.
func Track(line, target *Drawable) *Drawable {
	line.track = target
	return line
}

func bounds(ds []*Drawable) (lo, hi Vec) {
	lo, hi = ds[0].Bounds()
	for _, d := range ds[1:] {
		a, b := d.Bounds()
		lo = Vec{min(lo.X, a.X), min(lo.Y, a.Y)}
		hi = Vec{max(hi.X, b.X), max(hi.Y, b.Y)}
	}
	return lo, hi
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
