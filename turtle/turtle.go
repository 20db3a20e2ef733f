// Package turtle implements turtle geometry: turtles that move and turn on a
// bounded viewport, drawing through a Surface, under one of three policies
// for what happens at the viewport's edges.
package turtle

import (
	"fmt"
	"math"
	"strings"
)

// Mode is a boundary policy.
type Mode int

const (
	// Wrap continues motion from the opposite edge of the viewport.
	Wrap Mode = iota
	// Fence stops the turtle where it meets the edge.
	Fence
	// Window lets the turtle leave the viewport.
	Window
)

var modeNames = [...]string{"WRAP", "FENCE", "WINDOW"}

func (m Mode) String() string {
	if m < Wrap || m > Window {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses the name of a mode, ignoring case.
func ParseMode(s string) (Mode, bool) {
	for i, n := range modeNames {
		if strings.EqualFold(s, n) {
			return Mode(i), true
		}
	}
	return 0, false
}

// PenMode is the compositing mode of a pen.
type PenMode int

const (
	Paint PenMode = iota
	Erase
	Reverse
)

var penModeNames = [...]string{"PAINT", "ERASE", "REVERSE"}

func (m PenMode) String() string {
	if m < Paint || m > Reverse {
		return fmt.Sprintf("PenMode(%d)", int(m))
	}
	return penModeNames[m]
}

// Pen describes how a turtle draws.
type Pen struct {
	Down  bool
	Mode  PenMode
	Color Color
	Width float64
}

// Font is the font used for labels.
type Font struct {
	Name string
	Size float64
}

// DefaultFont is the label font of a new turtle.
var DefaultFont = Font{Name: "sans-serif", Size: 13}

// Turtle is the state of a single turtle.
type Turtle struct {
	X, Y float64
	// Heading is in radians clockwise from north.
	Heading float64
	Pen     Pen
	Visible bool
	Font    Font

	// wrapX and wrapY are the net displacement applied by wrapping during
	// the last absolute move.
	wrapX, wrapY float64
}

func newTurtle() Turtle {
	return Turtle{
		Pen:     Pen{Down: true, Color: Black, Width: 1},
		Visible: true,
		Font:    DefaultFont,
	}
}

// Engine is the turtle graphics state machine. It is not safe for
// concurrent use.
type Engine struct {
	surface       Surface
	width, height float64

	mode       Mode
	background Color
	sx, sy     float64

	// filling is the nesting depth of open fill paths.
	filling int
	// saved is the mode to restore when the outermost fill path closes.
	saved Mode

	turtles []Turtle
	current int
}

// New creates an engine drawing on s with a viewport of the given size in
// device units. A nil surface draws nothing.
func New(s Surface, width, height float64) *Engine {
	if s == nil {
		s = Discard{}
	}
	e := &Engine{
		surface:    s,
		width:      width,
		height:     height,
		background: White,
		sx:         1,
		sy:         1,
		turtles:    []Turtle{newTurtle()},
	}
	return e
}

// t returns the active turtle.
func (e *Engine) t() *Turtle {
	return &e.turtles[e.current]
}

// Size returns the viewport size in device units.
func (e *Engine) Size() (width, height float64) {
	return e.width, e.height
}

// bounds returns the viewport extent in logical units.
func (e *Engine) bounds() (w, h float64) {
	return math.Abs(e.width / e.sx), math.Abs(e.height / e.sy)
}

// Pos returns the position of the active turtle.
func (e *Engine) Pos() Point {
	t := e.t()
	return Point{t.X, t.Y}
}

// Heading returns the heading of the active turtle in degrees in [0, 360).
func (e *Engine) Heading() float64 {
	return normalize(e.t().Heading * 180 / math.Pi)
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SetHeading turns the active turtle to face deg degrees clockwise from
// north.
func (e *Engine) SetHeading(deg float64) {
	e.t().Heading = normalize(deg) * math.Pi / 180
}

// Turn turns the active turtle deg degrees clockwise.
func (e *Engine) Turn(deg float64) {
	e.SetHeading(e.Heading() + deg)
}

// Towards returns the heading in degrees from the active turtle to p.
func (e *Engine) Towards(p Point) float64 {
	t := e.t()
	return normalize(math.Atan2(p.X-t.X, p.Y-t.Y) * 180 / math.Pi)
}

// Mode returns the boundary policy.
func (e *Engine) Mode() Mode {
	if e.filling > 0 {
		return e.saved
	}
	return e.mode
}

// SetMode sets the boundary policy. While a fill path is open, the new mode
// takes effect when it closes.
func (e *Engine) SetMode(m Mode) {
	if e.filling > 0 {
		e.saved = m
		return
	}
	e.mode = m
}

// Pen returns the active turtle's pen.
func (e *Engine) Pen() Pen {
	return e.t().Pen
}

// SetPenDown raises or lowers the pen.
func (e *Engine) SetPenDown(down bool) {
	e.t().Pen.Down = down
}

// SetPenMode sets the pen's compositing mode and lowers it.
func (e *Engine) SetPenMode(m PenMode) {
	p := &e.t().Pen
	p.Mode = m
	p.Down = true
}

// SetPenColor sets the pen color.
func (e *Engine) SetPenColor(c Color) {
	e.t().Pen.Color = c
}

// SetPenWidth sets the pen width.
func (e *Engine) SetPenWidth(w float64) {
	e.t().Pen.Width = w
}

// Background returns the background color.
func (e *Engine) Background() Color {
	return e.background
}

// SetBackground sets the background color and clears the drawing.
func (e *Engine) SetBackground(c Color) {
	e.background = c
	e.surface.Clear(c)
}

// Scrunch returns the logical to device scale.
func (e *Engine) Scrunch() (sx, sy float64) {
	return e.sx, e.sy
}

// SetScrunch sets the logical to device scale.
func (e *Engine) SetScrunch(sx, sy float64) {
	e.sx, e.sy = sx, sy
	e.surface.SetTransform(sx, sy)
}

// Visible reports whether the active turtle is shown.
func (e *Engine) Visible() bool {
	return e.t().Visible
}

// SetVisible shows or hides the active turtle.
func (e *Engine) SetVisible(v bool) {
	e.t().Visible = v
}

// Font returns the active turtle's label font.
func (e *Engine) Font() Font {
	return e.t().Font
}

// SetFont sets the active turtle's label font.
func (e *Engine) SetFont(f Font) {
	e.t().Font = f
}

// Label draws text at the active turtle's position.
func (e *Engine) Label(text string) {
	t := e.t()
	e.surface.Text(Point{t.X, t.Y}, t.Heading, text, t.Font, t.Pen.Color)
}

// Fill flood-fills the region under the active turtle with the pen color.
func (e *Engine) Fill() {
	t := e.t()
	e.surface.FloodFill(Point{t.X, t.Y}, t.Pen.Color)
}

// Clean erases the drawing without moving any turtle.
func (e *Engine) Clean() {
	e.surface.Clear(e.background)
}

// ClearScreen erases the drawing and returns the active turtle home.
func (e *Engine) ClearScreen() {
	e.Clean()
	e.Home()
}

// Turtle returns the index of the active turtle.
func (e *Engine) Turtle() int {
	return e.current
}

// Turtles returns the number of turtles.
func (e *Engine) Turtles() int {
	return len(e.turtles)
}

// SetTurtle makes turtle i active, creating it and any turtles before it
// that do not yet exist.
func (e *Engine) SetTurtle(i int) {
	for len(e.turtles) <= i {
		e.turtles = append(e.turtles, newTurtle())
	}
	e.current = i
}

// Ask runs fn with turtle i active, restoring the active turtle afterward
// even if fn fails or panics.
func (e *Engine) Ask(i int, fn func() error) error {
	prev := e.current
	defer func() { e.current = prev }()
	e.SetTurtle(i)
	return fn()
}

// State is a snapshot of an engine, suitable for replaying a session.
type State struct {
	Mode       Mode
	Background Color
	ScrunchX   float64
	ScrunchY   float64
	Turtles    []Turtle
	Current    int
}

// Snapshot captures the engine's state. Any open fill path is not part of
// the snapshot; its saved mode is reported as the mode.
func (e *Engine) Snapshot() State {
	return State{
		Mode:       e.Mode(),
		Background: e.background,
		ScrunchX:   e.sx,
		ScrunchY:   e.sy,
		Turtles:    append([]Turtle(nil), e.turtles...),
		Current:    e.current,
	}
}

// Restore replaces the engine's state with a snapshot. The drawing itself is
// not replayed.
func (e *Engine) Restore(s State) {
	e.filling = 0
	e.mode = s.Mode
	e.background = s.Background
	e.SetScrunch(s.ScrunchX, s.ScrunchY)
	e.turtles = append([]Turtle(nil), s.Turtles...)
	if len(e.turtles) == 0 {
		e.turtles = []Turtle{newTurtle()}
	}
	e.current = min(max(s.Current, 0), len(e.turtles)-1)
}
