package turtle

// A Point is a position in turtle coordinates: the origin at the center of
// the viewport, x increasing to the right and y increasing upward.
type Point struct {
	X, Y float64
}

// Surface receives the drawing operations of an Engine. All coordinates are
// logical turtle coordinates; the surface applies the transform given by
// SetTransform to map them to device space. Angles are radians measured
// clockwise from north, the way turtle headings are.
type Surface interface {
	// Line strokes a segment with the pen.
	Line(from, to Point, pen Pen)
	// Arc strokes an arc of the circle at center, starting at angle start
	// and sweeping clockwise through sweep (counterclockwise if negative).
	Arc(center Point, radius, start, sweep float64, pen Pen)
	// BeginPath starts accumulating a path at the given point.
	BeginPath(at Point)
	// PathLine extends the current path with a segment.
	PathLine(to Point)
	// PathArc extends the current path with an arc.
	PathArc(center Point, radius, start, sweep float64)
	// FillPath closes and fills the current path. The path is also stroked
	// if pen.Down is true.
	FillPath(fill Color, pen Pen)
	// FloodFill fills the region of like color containing at.
	FloodFill(at Point, color Color)
	// Text places text at a point, rotated to the given heading.
	Text(at Point, heading float64, text string, font Font, color Color)
	// Clear erases everything to the background color.
	Clear(background Color)
	// SetTransform sets the logical to device scale.
	SetTransform(sx, sy float64)
}

// OpKind identifies a recorded surface operation.
type OpKind int

// Recorded operation kinds, one per Surface method.
const (
	LineOp OpKind = iota
	ArcOp
	BeginPathOp
	PathLineOp
	PathArcOp
	FillPathOp
	FloodFillOp
	TextOp
	ClearOp
	TransformOp
)

var opNames = [...]string{"line", "arc", "beginpath", "pathline", "patharc", "fillpath", "floodfill", "text", "clear", "transform"}

func (k OpKind) String() string {
	if k < LineOp || k > TransformOp {
		return "invalid"
	}
	return opNames[k]
}

// An Op is one recorded surface operation. Only the fields relevant to its
// Kind are set.
type Op struct {
	Kind OpKind

	From, To Point
	// Radius, Start, and Sweep describe arcs. For TransformOp, Start and
	// Sweep hold the x and y scales.
	Radius, Start, Sweep float64

	Pen   Pen
	Color Color
	Text  string
	Font  Font
}

// Recorder is a Surface that records every operation it receives.
type Recorder struct {
	Ops []Op
}

var _ Surface = (*Recorder)(nil)

// Reset discards the recorded operations.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns the number of recorded operations of a kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) Line(from, to Point, pen Pen) {
	r.Ops = append(r.Ops, Op{Kind: LineOp, From: from, To: to, Pen: pen})
}

func (r *Recorder) Arc(center Point, radius, start, sweep float64, pen Pen) {
	r.Ops = append(r.Ops, Op{Kind: ArcOp, From: center, Radius: radius, Start: start, Sweep: sweep, Pen: pen})
}

func (r *Recorder) BeginPath(at Point) {
	r.Ops = append(r.Ops, Op{Kind: BeginPathOp, From: at})
}

func (r *Recorder) PathLine(to Point) {
	r.Ops = append(r.Ops, Op{Kind: PathLineOp, To: to})
}

func (r *Recorder) PathArc(center Point, radius, start, sweep float64) {
	r.Ops = append(r.Ops, Op{Kind: PathArcOp, From: center, Radius: radius, Start: start, Sweep: sweep})
}

func (r *Recorder) FillPath(fill Color, pen Pen) {
	r.Ops = append(r.Ops, Op{Kind: FillPathOp, Color: fill, Pen: pen})
}

func (r *Recorder) FloodFill(at Point, color Color) {
	r.Ops = append(r.Ops, Op{Kind: FloodFillOp, From: at, Color: color})
}

func (r *Recorder) Text(at Point, heading float64, text string, font Font, color Color) {
	r.Ops = append(r.Ops, Op{Kind: TextOp, From: at, Start: heading, Text: text, Font: font, Color: color})
}

func (r *Recorder) Clear(background Color) {
	r.Ops = append(r.Ops, Op{Kind: ClearOp, Color: background})
}

func (r *Recorder) SetTransform(sx, sy float64) {
	r.Ops = append(r.Ops, Op{Kind: TransformOp, Start: sx, Sweep: sy})
}

// Discard is a Surface that draws nothing.
type Discard struct{}

func (Discard) Line(Point, Point, Pen) {}
func (Discard) Arc(Point, float64, float64, float64, Pen) {}
func (Discard) BeginPath(Point) {}
func (Discard) PathLine(Point) {}
func (Discard) PathArc(Point, float64, float64, float64) {}
func (Discard) FillPath(Color, Pen) {}
func (Discard) FloodFill(Point, Color) {}
func (Discard) Text(Point, float64, string, Font, Color) {}
func (Discard) Clear(Color) {}
func (Discard) SetTransform(float64, float64) {}
