package turtle

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"math"
	"strings"
)

// WriteSVG renders recorded operations as an SVG document of the given
// viewport size. Only operations after the last Clear are drawn; the
// background is the color of that Clear, or bg if there was none.
// SetTransform scales apply wherever they appear.
//
// Flood fills have no vector equivalent and are skipped. Erasing pens draw
// in the background color, and reversing pens draw like painting ones.
func WriteSVG(w io.Writer, ops []Op, width, height float64, bg Color) error {
	start := 0
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Kind == ClearOp {
			bg = ops[i].Color
			start = i + 1
			break
		}
	}
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`+"\n",
		num(width), num(height), num(-width/2), num(-height/2), num(width), num(height))
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%v"/>`+"\n",
		num(-width/2), num(-height/2), num(width), num(height), bg)
	r := svgRenderer{w: b, bg: bg, sx: 1, sy: 1}
	for i, op := range ops {
		// Scale changes outlast clears.
		if i < start && op.Kind != TransformOp {
			continue
		}
		r.op(op)
	}
	b.WriteString("</svg>\n")
	return b.Flush()
}

type svgRenderer struct {
	w      *bufio.Writer
	bg     Color
	sx, sy float64
	// path is the fill path being accumulated.
	path strings.Builder
}

func (r *svgRenderer) op(op Op) {
	switch op.Kind {
	case LineOp:
		if !op.Pen.Down {
			return
		}
		a, b := r.pt(op.From), r.pt(op.To)
		fmt.Fprintf(r.w, `<line x1="%s" y1="%s" x2="%s" y2="%s" %s/>`+"\n",
			num(a.X), num(a.Y), num(b.X), num(b.Y), r.stroke(op.Pen))
	case ArcOp:
		if !op.Pen.Down {
			return
		}
		fmt.Fprintf(r.w, `<path d="%s" fill="none" %s/>`+"\n",
			r.arc(op.From, op.Radius, op.Start, op.Sweep, true), r.stroke(op.Pen))
	case BeginPathOp:
		r.path.Reset()
		p := r.pt(op.From)
		fmt.Fprintf(&r.path, "M%s %s", num(p.X), num(p.Y))
	case PathLineOp:
		p := r.pt(op.To)
		fmt.Fprintf(&r.path, " L%s %s", num(p.X), num(p.Y))
	case PathArcOp:
		r.path.WriteString(" ")
		r.path.WriteString(r.arc(op.From, op.Radius, op.Start, op.Sweep, false))
	case FillPathOp:
		stroke := `stroke="none"`
		if op.Pen.Down {
			stroke = r.stroke(op.Pen)
		}
		fmt.Fprintf(r.w, `<path d="%s Z" fill="%v" %s/>`+"\n", r.path.String(), op.Color, stroke)
		r.path.Reset()
	case TextOp:
		p := r.pt(op.From)
		deg := op.Start*180/math.Pi - 90
		fmt.Fprintf(r.w, `<text x="%s" y="%s" transform="rotate(%s %s %s)" font-family="%s" font-size="%s" fill="%v">%s</text>`+"\n",
			num(p.X), num(p.Y), num(deg), num(p.X), num(p.Y),
			html.EscapeString(op.Font.Name), num(op.Font.Size), op.Color, html.EscapeString(op.Text))
	case TransformOp:
		r.sx, r.sy = op.Start, op.Sweep
	}
}

// pt maps turtle coordinates to SVG user space, where y grows downward.
func (r *svgRenderer) pt(p Point) Point {
	return Point{p.X * r.sx, -p.Y * r.sy}
}

func (r *svgRenderer) stroke(pen Pen) string {
	c := pen.Color
	if pen.Mode == Erase {
		c = r.bg
	}
	return fmt.Sprintf(`stroke="%v" stroke-width="%s" stroke-linecap="round"`, c, num(pen.Width))
}

// arc returns path data for an arc. A full turn is drawn as two halves,
// since an SVG arc cannot end where it starts.
func (r *svgRenderer) arc(c Point, radius, start, sweep float64, move bool) string {
	on := func(a float64) Point {
		return r.pt(Point{c.X + radius*math.Sin(a), c.Y + radius*math.Cos(a)})
	}
	var b strings.Builder
	p := on(start)
	if move {
		fmt.Fprintf(&b, "M%s %s", num(p.X), num(p.Y))
	} else {
		fmt.Fprintf(&b, "L%s %s", num(p.X), num(p.Y))
	}
	// Clockwise in turtle space stays clockwise on screen once y flips.
	dir := 1
	if sweep < 0 {
		dir = 0
	}
	parts := 1
	if math.Abs(sweep) >= 2*math.Pi {
		parts = 2
		sweep = math.Copysign(2*math.Pi, sweep)
	}
	step := sweep / float64(parts)
	large := 0
	if parts == 1 && math.Abs(sweep) > math.Pi {
		large = 1
	}
	rx, ry := radius*math.Abs(r.sx), radius*math.Abs(r.sy)
	for i := 1; i <= parts; i++ {
		q := on(start + step*float64(i))
		fmt.Fprintf(&b, " A%s %s 0 %d %d %s %s", num(rx), num(ry), large, dir, num(q.X), num(q.Y))
	}
	return b.String()
}

// num formats a coordinate compactly.
func num(x float64) string {
	x = math.Round(x*1000) / 1000
	if x == 0 {
		// No negative zero.
		x = 0
	}
	return fmt.Sprintf("%g", x)
}
