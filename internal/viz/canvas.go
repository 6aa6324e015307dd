package viz

import (
	"math"
	"strings"
)

// Braille cells hold a 2x4 dot matrix:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// starting at U+2800.
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot canvas. Dot coordinates run from (0, 0) at the
// top left to (2*Width-1, 4*Height-1).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	// Ink records the colour of the last shape to touch each cell.
	Ink [][]string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]string, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]string, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// Set turns on the dot at (x, y) using colour ink.
func (c *Canvas) Set(x, y int, ink string) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
	c.Ink[row][col] = ink
}

// Blank reports whether no dot in the cell is set.
func (c *Canvas) Blank(col, row int) bool {
	return c.Grid[row][col] == brailleBlank
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink string) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// dot is a point in dot coordinates.
type dot struct{ x, y float64 }

// Polyline draws the leading fraction of the path through pts, measured
// by length. frac 1 draws it all.
func (c *Canvas) Polyline(pts []dot, frac float64, ink string) {
	if len(pts) < 2 || frac <= 0 {
		return
	}
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].x-pts[i-1].x, pts[i].y-pts[i-1].y)
	}
	budget := total * math.Min(frac, 1)
	for i := 1; i < len(pts) && budget > 0; i++ {
		a, b := pts[i-1], pts[i]
		seg := math.Hypot(b.x-a.x, b.y-a.y)
		if seg > budget {
			t := budget / seg
			b = dot{a.x + (b.x-a.x)*t, a.y + (b.y-a.y)*t}
		}
		budget -= seg
		c.DrawLine(round(a.x), round(a.y), round(b.x), round(b.y), ink)
	}
}

// Disc fills a circle of radius r (in dots) around (cx, cy).
func (c *Canvas) Disc(cx, cy, r float64, ink string) {
	r = math.Max(r, 1)
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r {
				c.Set(x, y, ink)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func round(f float64) int { return int(math.Round(f)) }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
