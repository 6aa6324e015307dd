package stage

// Interpolate returns what a transition looks like at linear progress p.
// Drawables leaving the stage are included until the end, drawables
// entering are included from the start; renderers skip anything with zero
// opacity or reveal.
func Interpolate(tr Transition, p float64) []Drawable {
	if tr.Kind != TransitionAnimate {
		return append([]Drawable(nil), tr.After...)
	}
	p = clamp01(p)

	effects := make(map[int]Effect, len(tr.Effects))
	for _, e := range tr.Effects {
		effects[e.ID] = e
	}

	before := make(map[int]Drawable, len(tr.Before))
	for _, d := range tr.Before {
		before[d.ID] = d
	}
	after := make(map[int]Drawable, len(tr.After))
	for _, d := range tr.After {
		after[d.ID] = d
	}

	out := make([]Drawable, 0, len(tr.Before)+len(tr.After))
	seen := make(map[int]bool)
	order := append(append([]Drawable(nil), tr.Before...), tr.After...)
	for _, d := range order {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true

		b, hadBefore := before[d.ID]
		a, hasAfter := after[d.ID]
		e, animated := effects[d.ID]
		if !animated {
			if hasAfter {
				out = append(out, a)
			}
			continue
		}

		ease := e.Easing
		if ease == nil {
			ease = Smooth
		}
		q := ease(p)

		switch e.Kind {
		case AnimWrite, AnimCreate:
			a.Reveal = q
			out = append(out, a)
		case AnimGrow:
			g := a
			g.Radius *= q
			g.W *= q
			g.H *= q
			g.FontSize *= q
			g.From = a.Pos.Lerp(a.From, q)
			g.To = a.Pos.Lerp(a.To, q)
			g.Opacity = q
			out = append(out, g)
		case AnimFadeIn:
			f := a
			Shift(&f, e.Shift.Scale(-(1 - q)))
			f.Opacity = q
			out = append(out, f)
		case AnimFadeOut:
			f := b
			Shift(&f, e.Shift.Scale(q))
			f.Opacity = 1 - q
			out = append(out, f)
		case AnimUncreate:
			b.Reveal = 1 - q
			out = append(out, b)
		case AnimTransform:
			if !hadBefore {
				out = append(out, a)
				continue
			}
			out = append(out, blend(b, a, q))
		case AnimMove:
			m := a
			start := a.Pos
			if hadBefore {
				start = b.Pos
			}
			MoveTo(&m, along(append([]Vec{start}, e.Path...), q))
			out = append(out, m)
		}
	}
	follow(out)
	return out
}

func follow(frame []Drawable) {
	pos := make(map[int]Vec, len(frame))
	for _, d := range frame {
		pos[d.ID] = d.Pos
	}
	for i := range frame {
		d := &frame[i]
		if d.TrackID == 0 {
			continue
		}
		if p, ok := pos[d.TrackID]; ok {
			d.To = p
			d.Pos = d.From.Lerp(d.To, 0.5)
		}
	}
}

// blend is the morph frame between b and a: geometry interpolates, content
// cross-fades at the midpoint.
func blend(b, a Drawable, q float64) Drawable {
	m := b
	if q >= 0.5 {
		m = a
	}
	m.ID = a.ID
	m.Pos = b.Pos.Lerp(a.Pos, q)
	m.From = b.From.Lerp(a.From, q)
	m.To = b.To.Lerp(a.To, q)
	m.FontSize = b.FontSize + (a.FontSize-b.FontSize)*q
	m.Radius = b.Radius + (a.Radius-b.Radius)*q
	m.W = b.W + (a.W-b.W)*q
	m.H = b.H + (a.H-b.H)*q
	m.Reveal = 1
	if q < 0.5 {
		m.Opacity = 1 - q
	} else {
		m.Opacity = q
	}
	return m
}

// along returns the point at fraction t of the polyline's arc length.
func along(path []Vec, t float64) Vec {
	if len(path) == 1 {
		return path[0]
	}
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i].Sub(path[i-1]).Len()
	}
	if total == 0 {
		return path[len(path)-1]
	}
	target := clamp01(t) * total
	for i := 1; i < len(path); i++ {
		seg := path[i].Sub(path[i-1]).Len()
		if target <= seg && seg > 0 {
			return path[i-1].Lerp(path[i], target/seg)
		}
		target -= seg
	}
	return path[len(path)-1]
}
