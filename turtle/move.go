package turtle

import "math"

// Move moves the active turtle d units along its heading. Negative d moves
// backward.
func (e *Engine) Move(d float64) {
	t := e.t()
	e.moveTo(t.X+d*math.Sin(t.Heading), t.Y+d*math.Cos(t.Heading), false)
}

// SetPos moves the active turtle to p, drawing if the pen is down.
func (e *Engine) SetPos(p Point) {
	e.moveTo(p.X, p.Y, true)
}

// SetX moves the active turtle horizontally to x.
func (e *Engine) SetX(x float64) {
	e.moveTo(x, e.t().Y, true)
}

// SetY moves the active turtle vertically to y.
func (e *Engine) SetY(y float64) {
	e.moveTo(e.t().X, y, true)
}

// Home moves the active turtle to the origin and faces it north.
func (e *Engine) Home() {
	e.moveTo(0, 0, false)
	e.t().Heading = 0
}

// segment draws from the active turtle's position to (x, y), either as a
// stroke or as part of the open fill path.
func (e *Engine) segment(x, y float64) {
	t := e.t()
	switch {
	case e.filling > 0:
		e.surface.PathLine(Point{x, y})
	case t.Pen.Down:
		e.surface.Line(Point{t.X, t.Y}, Point{x, y}, t.Pen)
	}
}

// maxWraps bounds the edge crossings drawn by one move. Past it, the turtle
// jumps to where the rest of the move would leave it.
const maxWraps = 1000

// moveTo moves the active turtle toward (x, y) under the boundary policy.
//
// In wrap mode, an absolute move first applies the displacement left by
// wrapping during the previous absolute move, so that a chain of absolute
// moves traces the same path it would on an unbounded plane. Each wrap
// during an absolute move adds to the displacement; relative moves clear it.
//
// The wrap viewport is half open: a turtle that ends a move on the right or
// top edge is placed on the opposite one. Fence mode lets the turtle stand
// on any edge.
func (e *Engine) moveTo(x, y float64, absolute bool) {
	t := e.t()
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	w, h := e.bounds()
	left, right := -w/2, w/2
	bottom, top := -h/2, h/2
	mode := e.mode
	if !(w > 0 && h > 0) {
		mode = Window
	}

	track := absolute && mode == Wrap
	if track {
		x += t.wrapX
		y += t.wrapY
	}
	t.wrapX, t.wrapY = 0, 0

	switch mode {
	case Window:
		e.segment(x, y)
		t.X, t.Y = x, y
		return
	case Fence:
		// A turtle left outside by window mode starts from the nearest edge.
		t.X = math.Min(math.Max(t.X, left), right)
		t.Y = math.Min(math.Max(t.Y, bottom), top)
	case Wrap:
		dx := wrapOffset(t.X, left, w)
		dy := wrapOffset(t.Y, bottom, h)
		t.X, t.Y = t.X+dx, t.Y+dy
		x, y = x+dx, y+dy
		t.shift(dx, dy, track)
	}

	for n := 0; ; n++ {
		if mode == Wrap && n >= maxWraps {
			dx := wrapOffset(x, left, w)
			dy := wrapOffset(y, bottom, h)
			t.X, t.Y = x+dx, y+dy
			t.shift(dx, dy, track)
			return
		}

		// Fraction of the way to the target at which each axis leaves the
		// viewport.
		fx, fy := 1.0, 1.0
		switch {
		case x < left:
			fx = (t.X - left) / (t.X - x)
		case x > right:
			fx = (t.X - right) / (t.X - x)
		}
		switch {
		case y < bottom:
			fy = (t.Y - bottom) / (t.Y - y)
		case y > top:
			fy = (t.Y - top) / (t.Y - y)
		}

		// (ix, iy) is where drawing stops; (wx, wy) is where the turtle
		// continues from.
		ix, iy := x, y
		wx, wy := x, y
		switch {
		case fx < 1 && fx <= fy:
			less := x < left
			iy = t.Y - fx*(t.Y-y)
			if less {
				ix, wx = left, right
				x += w
				t.shift(w, 0, track)
			} else {
				ix, wx = right, left
				x -= w
				t.shift(-w, 0, track)
			}
			wy = iy
		case fy < 1 && fy <= fx:
			less := y < bottom
			ix = t.X - fy*(t.X-x)
			if less {
				iy, wy = bottom, top
				y += h
				t.shift(0, h, track)
			} else {
				iy, wy = top, bottom
				y -= h
				t.shift(0, -h, track)
			}
			wx = ix
		}

		e.segment(ix, iy)
		if mode == Fence {
			t.X, t.Y = ix, iy
			return
		}
		t.X, t.Y = wx, wy
		if fx >= 1 && fy >= 1 {
			break
		}
	}
	if t.X >= right {
		t.X -= w
		t.shift(-w, 0, track)
	}
	if t.Y >= top {
		t.Y -= h
		t.shift(0, -h, track)
	}
}

// wrapOffset returns the multiple of size that brings v into
// [lo, lo+size).
func wrapOffset(v, lo, size float64) float64 {
	if v >= lo && v < lo+size {
		return 0
	}
	return -math.Floor((v-lo)/size) * size
}

// shift records a wrap displacement during an absolute move.
func (t *Turtle) shift(dx, dy float64, track bool) {
	if track {
		t.wrapX += dx
		t.wrapY += dy
	}
}

// Arc draws an arc of the given radius centered on the active turtle,
// starting at its heading and sweeping angle degrees clockwise. The turtle
// does not move. In wrap mode the arc is also drawn at each of the eight
// neighboring viewport offsets so that it shows across the edges.
func (e *Engine) Arc(angle, radius float64) {
	t := e.t()
	sweep := angle * math.Pi / 180
	if radius < 0 {
		radius = -radius
		sweep = -sweep
	}
	centers := []Point{{t.X, t.Y}}
	if e.mode == Wrap {
		w, h := e.bounds()
		centers = centers[:0]
		for _, dx := range []float64{0, w, -w} {
			for _, dy := range []float64{0, h, -h} {
				centers = append(centers, Point{t.X + dx, t.Y + dy})
			}
		}
	}
	for _, c := range centers {
		switch {
		case e.filling > 0:
			e.surface.PathArc(c, radius, t.Heading, sweep)
		case t.Pen.Down:
			e.surface.Arc(c, radius, t.Heading, sweep, t.Pen)
		}
	}
}

// BeginFill opens a fill path at the active turtle's position. Until the
// matching EndFill, the boundary policy is Window and motion extends the
// path instead of drawing. Fill paths nest; only the outermost one draws.
func (e *Engine) BeginFill() {
	e.filling++
	if e.filling > 1 {
		return
	}
	e.saved = e.mode
	e.mode = Window
	t := e.t()
	e.surface.BeginPath(Point{t.X, t.Y})
}

// EndFill closes the innermost fill path. Closing the outermost path fills
// it with c, strokes it if the pen is down, and restores the boundary
// policy in effect before BeginFill.
func (e *Engine) EndFill(c Color) {
	if e.filling == 0 {
		return
	}
	e.filling--
	if e.filling > 0 {
		return
	}
	e.surface.FillPath(c, e.t().Pen)
	e.mode = e.saved
}

// Filling reports whether a fill path is open.
func (e *Engine) Filling() bool {
	return e.filling > 0
}

// Filled runs fn inside a fill path filled with c. The path is closed and
// the boundary policy restored even if fn fails or panics.
func (e *Engine) Filled(c Color, fn func() error) error {
	e.BeginFill()
	defer e.EndFill(c)
	return fn()
}
