package logo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/logo"
	. "github.com/zephyrtronium/logo/testutils"
	"github.com/zephyrtronium/logo/turtle"
)

// TestMotion tests turtle motion and its queries.
func TestMotion(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Start":        {Source: `pos`, Pass: PassShow("[0 0]")},
		"Forward":      {Source: `fd 50 pos`, Pass: PassShow("[0 50]")},
		"Back":         {Source: `bk 20 ycor`, Pass: PassEqual(num(-20))},
		"Right":        {Source: `rt 90 fd 10 list round xcor round ycor`, Pass: PassShow("[10 0]")},
		"Left":         {Source: `lt 90 round heading`, Pass: PassEqual(num(270))},
		"HeadingWraps": {Source: `rt 450 round heading`, Pass: PassEqual(num(90))},
		"SetHeading":   {Source: `seth -90 round heading`, Pass: PassEqual(num(270))},
		"SetXY":        {Source: `setxy 10 -20 pos`, Pass: PassShow("[10 -20]")},
		"SetPos":       {Source: `setpos [30 40] pos`, Pass: PassShow("[30 40]")},
		"SetPosBad":    {Source: `setpos [30]`, Pass: PassError(logo.BadInput)},
		"SetX":         {Source: `setx 10 sety 20 pos`, Pass: PassShow("[10 20]")},
		"Home":         {Source: `fd 50 rt 90 home list heading pos`, Pass: PassShow("[0 [0 0]]")},
		"Towards":      {Source: `round towards [100 0]`, Pass: PassEqual(num(90))},
		"TowardsNorth": {Source: `setxy 0 -10 towards [0 10]`, Pass: PassEqual(num(0))},
		"Arc":          {Source: `arc 90 50 pos`, Pass: PassShow("[0 0]")},
		"ForwardWord":  {Source: `fd "far`, Pass: PassError(logo.BadInput)},
		"Scrunch":      {Source: `scrunch`, Pass: PassShow("[1 1]")},
		"SetScrunch":   {Source: `setscrunch 2 1 scrunch`, Pass: PassShow("[2 1]")},
		"ScrunchZero":  {Source: `setscrunch 0 1`, Pass: PassError(logo.BadInput)},
		"ScrunchWrap":  {Source: `setscrunch -1 1 wrap fd 10 pos`, Pass: PassShow("[0 10]")},
		"ScrunchFence": {Source: `setscrunch 1 -1 fence fd 1000 ycor`, Pass: PassEqual(num(150))},
		"ScrunchMoves": {Source: `setscrunch 1 2 fd 100 ycor`, Pass: PassEqual(num(-50))},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestMotion/"+name))
	}
}

// TestBoundaryPolicies tests motion past the edge of a 300 by 300 viewport
// under each policy.
func TestBoundaryPolicies(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Wrap":        {Source: `wrap setxy 0 0 setxy 160 160 pos`, Pass: PassShow("[-140 -140]")},
		"Window":      {Source: `window setxy 0 0 setxy 160 160 pos`, Pass: PassShow("[160 160]")},
		"Fence":       {Source: `fence setxy 0 0 setxy 160 160 pos`, Pass: PassShow("[150 150]")},
		"WrapForward": {Source: `fd 400 ycor`, Pass: PassEqual(num(100))},
		"FenceFd":     {Source: `fence fd 400 ycor`, Pass: PassEqual(num(150))},
		"Mode":        {Source: `turtlemode`, Pass: PassShow("WRAP")},
		"ModeFence":   {Source: `fence turtlemode`, Pass: PassShow("FENCE")},
		"ModeWindow":  {Source: `window fd 1000 list turtlemode ycor`, Pass: PassShow("[WINDOW 1000]")},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestBoundaryPolicies/"+name))
	}
}

// TestPen tests pen, color, and turtle visibility state.
func TestPen(t *testing.T) {
	yes, no := PassEqual(logo.Bool(true)), PassEqual(logo.Bool(false))
	cases := map[string]SourceTestCase{
		"Down":         {Source: `pendownp`, Pass: yes},
		"Up":           {Source: `pu pendownp`, Pass: no},
		"DownAgain":    {Source: `pu pd pendown?`, Pass: yes},
		"Mode":         {Source: `penmode`, Pass: PassShow("PAINT")},
		"Erase":        {Source: `pe penmode`, Pass: PassShow("ERASE")},
		"Reverse":      {Source: `pu px list penmode pendownp`, Pass: PassShow("[REVERSE true]")},
		"Paint":        {Source: `pe ppt penmode`, Pass: PassShow("PAINT")},
		"Color":        {Source: `pencolor`, Pass: PassEqual(num(0))},
		"SetColor":     {Source: `setpc 4 pc`, Pass: PassEqual(num(4))},
		"ColorName":    {Source: `setpencolor "Red pencolor`, Pass: PassEqual(num(4))},
		"ColorRGB":     {Source: `setpc [99 0 0] pc`, Pass: PassEqual(num(4))},
		"ColorHex":     {Source: `setpc "#123456 pc`, Pass: PassShow("#123456")},
		"ColorShort":   {Source: `setpc "#fff pc`, Pass: PassEqual(num(7))},
		"ColorNamed":   {Source: `setpc "navy pc`, Pass: PassShow("#000080")},
		"ColorIndex":   {Source: `setpc 16`, Pass: PassError(logo.BadInput)},
		"ColorUnknown": {Source: `setpc "nope`, Pass: PassMessage("SETPC: Expected color")},
		"ColorList":    {Source: `setpc [1 2]`, Pass: PassError(logo.BadInput)},
		"Size":         {Source: `pensize`, Pass: PassShow("[1 1]")},
		"SetSize":      {Source: `setpensize 3 pensize`, Pass: PassShow("[3 3]")},
		"SetSizeList":  {Source: `setpensize [2 2] penwidth`, Pass: PassShow("[2 2]")},
		"SizeNeg":      {Source: `setpensize -1`, Pass: PassError(logo.BadInput)},
		"Background":   {Source: `background`, Pass: PassEqual(num(7))},
		"SetBg":        {Source: `setbg 1 bg`, Pass: PassEqual(num(1))},
		"Shown":        {Source: `shownp`, Pass: yes},
		"Hidden":       {Source: `ht shown?`, Pass: no},
		"ShownAgain":   {Source: `ht st shownp`, Pass: yes},
		"LabelFont":    {Source: `labelfont`, Pass: PassShow("sans-serif")},
		"SetLabelFont": {Source: `setlabelfont [mono 20] list labelfont labelsize`, Pass: PassShow("[mono 20]")},
		"FontName":     {Source: `setlabelfont "serif list labelfont labelsize`, Pass: PassShow("[serif 13]")},
		"FontBad":      {Source: `setlabelfont []`, Pass: PassError(logo.BadInput)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestPen/"+name))
	}
}

// TestTurtles tests selecting and asking multiple turtles.
func TestTurtles(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Initial":     {Source: `list turtle turtles`, Pass: PassShow("[0 1]")},
		"SetTurtle":   {Source: `setturtle 3 list turtle turtles`, Pass: PassShow("[3 4]")},
		"Separate":    {Source: `setturtle 1 fd 10 setturtle 0 ycor`, Pass: PassEqual(num(0))},
		"Ask":         {Source: `ask 1 [fd 10] list turtle ycor`, Pass: PassShow("[0 0]")},
		"AskMoves":    {Source: `ask 1 [fd 10] setturtle 1 ycor`, Pass: PassEqual(num(10))},
		"AskMany":     {Source: `ask [1 2] [fd 5] setturtle 2 ycor`, Pass: PassEqual(num(5))},
		"AskRestores": {Source: `setturtle 2 catch "x [ask 5 [throw "x]] turtle`, Pass: PassEqual(num(2))},
		"AskNegative": {Source: `ask -1 [fd 1]`, Pass: PassError(logo.BadInput)},
		"SetNegative": {Source: `setturtle -1`, Pass: PassError(logo.BadInput)},
		"AskError":    {Source: `ask 1 [fd "x]`, Pass: PassError(logo.BadInput)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestTurtles/"+name))
	}
}

// TestDrawing tests the operations turtle primitives send to the surface.
func TestDrawing(t *testing.T) {
	ctx := context.Background()

	t.Run("Line", func(t *testing.T) {
		s := NewSession(t, "")
		require.NoError(t, s.Run(ctx, `setpc 4 setpensize 2 fd 10`))
		require.Equal(t, 1, s.Surface.Count(turtle.LineOp))
		op := s.Surface.Ops[len(s.Surface.Ops)-1]
		assert.Equal(t, turtle.Point{X: 0, Y: 0}, op.From)
		assert.Equal(t, turtle.Point{X: 0, Y: 10}, op.To)
		assert.Equal(t, turtle.Pen{Down: true, Mode: turtle.Paint, Color: turtle.Palette[4], Width: 2}, op.Pen)
	})

	t.Run("PenUp", func(t *testing.T) {
		s := NewSession(t, "")
		require.NoError(t, s.Run(ctx, `pu fd 10 setxy 20 20`))
		assert.Zero(t, s.Surface.Count(turtle.LineOp))
	})

	t.Run("WrapSegments", func(t *testing.T) {
		s := NewSession(t, "")
		require.NoError(t, s.Run(ctx, `fd 400`))
		assert.Equal(t, 2, s.Surface.Count(turtle.LineOp))
	})

	t.Run("Filled", func(t *testing.T) {
		s := NewSession(t, "")
		require.NoError(t, s.Run(ctx, `filled "red [fd 10 rt 90 fd 10]`))
		kinds := opKinds(s.Surface)
		assert.Equal(t, []turtle.OpKind{turtle.BeginPathOp, turtle.PathLineOp, turtle.PathLineOp, turtle.FillPathOp}, kinds)
		assert.Equal(t, turtle.Palette[4], s.Surface.Ops[3].Color)
	})

	t.Run("FilledWindow", func(t *testing.T) {
		s := NewSession(t, "")
		v, err := s.Eval(ctx, `filled 1 [fd 400] list turtlemode ycor`)
		require.NoError(t, err)
		assert.Equal(t, "[WRAP 400]", logo.Show(v))
	})

	t.Run("FilledFails", func(t *testing.T) {
		s := NewSession(t, "")
		err := s.Run(ctx, `filled 1 [fd 10 fd "x]`)
		require.Error(t, err)
		assert.Equal(t, 1, s.Surface.Count(turtle.FillPathOp))
		assert.False(t, s.Turtle().Filling())
	})

	t.Run("Fill", func(t *testing.T) {
		s := NewSession(t, "")
		require.NoError(t, s.Run(ctx, `setpc 2 fd 5 fill`))
		require.Equal(t, 1, s.Surface.Count(turtle.FloodFillOp))
		op := s.Surface.Ops[len(s.Surface.Ops)-1]
		assert.Equal(t, turtle.Point{X: 0, Y: 5}, op.From)
		assert.Equal(t, turtle.Palette[2], op.Color)
	})

	t.Run("Label", func(t *testing.T) {
		s := NewSession(t, "")
		require.NoError(t, s.Run(ctx, `label [hello world]`))
		require.Equal(t, 1, s.Surface.Count(turtle.TextOp))
		op := s.Surface.Ops[len(s.Surface.Ops)-1]
		assert.Equal(t, "hello world", op.Text)
		assert.Equal(t, turtle.DefaultFont, op.Font)
	})

	t.Run("ArcWraps", func(t *testing.T) {
		s := NewSession(t, "")
		require.NoError(t, s.Run(ctx, `arc 360 20`))
		assert.Equal(t, 9, s.Surface.Count(turtle.ArcOp))
		s.Surface.Reset()
		require.NoError(t, s.Run(ctx, `window arc 360 20`))
		assert.Equal(t, 1, s.Surface.Count(turtle.ArcOp))
	})

	t.Run("ClearScreen", func(t *testing.T) {
		s := NewSession(t, "")
		require.NoError(t, s.Run(ctx, `setbg 3 fd 10 cs`))
		assert.Equal(t, 2, s.Surface.Count(turtle.ClearOp))
		// HOME draws its way back with the pen down.
		kinds := opKinds(s.Surface)
		assert.Equal(t, []turtle.OpKind{turtle.ClearOp, turtle.LineOp, turtle.ClearOp, turtle.LineOp}, kinds)
		assert.Equal(t, turtle.Palette[3], s.Surface.Ops[2].Color)
		assert.Equal(t, turtle.Point{}, s.Turtle().Pos())
	})

	t.Run("Clean", func(t *testing.T) {
		s := NewSession(t, "")
		require.NoError(t, s.Run(ctx, `fd 10 clean`))
		assert.Equal(t, 1, s.Surface.Count(turtle.ClearOp))
		assert.Equal(t, turtle.Point{X: 0, Y: 10}, s.Turtle().Pos())
	})

	t.Run("Scrunch", func(t *testing.T) {
		s := NewSession(t, "")
		require.NoError(t, s.Run(ctx, `setscrunch 2 3`))
		op := s.Surface.Ops[len(s.Surface.Ops)-1]
		assert.Equal(t, turtle.TransformOp, op.Kind)
		assert.Equal(t, 2.0, op.Start)
		assert.Equal(t, 3.0, op.Sweep)
	})
}

func opKinds(r *turtle.Recorder) []turtle.OpKind {
	k := make([]turtle.OpKind, len(r.Ops))
	for i, op := range r.Ops {
		k[i] = op.Kind
	}
	return k
}
