package logo

import "github.com/zephyrtronium/logo/turtle"

func (in *Interp) initGraphics() {
	// Motion.
	in.define("forward fd", 1, 1, 1, turtleNum(func(t *turtle.Engine, n float64) { t.Move(n) }))
	in.define("back bk", 1, 1, 1, turtleNum(func(t *turtle.Engine, n float64) { t.Move(-n) }))
	in.define("left lt", 1, 1, 1, turtleNum(func(t *turtle.Engine, n float64) { t.Turn(-n) }))
	in.define("right rt", 1, 1, 1, turtleNum(func(t *turtle.Engine, n float64) { t.Turn(n) }))
	in.define("setpos", 1, 1, 1, primSetPos)
	in.define("setxy", 2, 2, 2, primSetXY)
	in.define("setx", 1, 1, 1, turtleNum((*turtle.Engine).SetX))
	in.define("sety", 1, 1, 1, turtleNum((*turtle.Engine).SetY))
	in.define("setheading seth", 1, 1, 1, turtleNum((*turtle.Engine).SetHeading))
	in.define("home", 0, 0, 0, turtleDo((*turtle.Engine).Home))
	in.define("arc", 2, 2, 2, primArc)

	// Motion queries.
	in.define("pos", 0, 0, 0, primPos)
	in.define("xcor", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return NewNumber(in.turtle.Pos().X), nil })
	in.define("ycor", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return NewNumber(in.turtle.Pos().Y), nil })
	in.define("heading", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return NewNumber(in.turtle.Heading()), nil })
	in.define("towards", 1, 1, 1, primTowards)
	in.define("scrunch", 0, 0, 0, primScrunch)
	in.define("setscrunch", 2, 2, 2, primSetScrunch)

	// Turtle and window control.
	in.define("showturtle st", 0, 0, 0, turtleDo(func(t *turtle.Engine) { t.SetVisible(true) }))
	in.define("hideturtle ht", 0, 0, 0, turtleDo(func(t *turtle.Engine) { t.SetVisible(false) }))
	in.define("shownp shown?", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return Bool(in.turtle.Visible()), nil })
	in.define("clean", 0, 0, 0, turtleDo((*turtle.Engine).Clean))
	in.define("clearscreen cs", 0, 0, 0, turtleDo((*turtle.Engine).ClearScreen))
	in.define("wrap", 0, 0, 0, turtleDo(func(t *turtle.Engine) { t.SetMode(turtle.Wrap) }))
	in.define("fence", 0, 0, 0, turtleDo(func(t *turtle.Engine) { t.SetMode(turtle.Fence) }))
	in.define("window", 0, 0, 0, turtleDo(func(t *turtle.Engine) { t.SetMode(turtle.Window) }))
	in.define("turtlemode", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return NewWord(in.turtle.Mode().String()), nil })
	in.define("label", 1, 1, 1, primLabel)
	in.define("setlabelfont", 1, 1, 1, primSetLabelFont)
	in.define("labelfont", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return NewWord(in.turtle.Font().Name), nil })
	in.define("labelsize", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return NewNumber(in.turtle.Font().Size), nil })

	// Pen and background control.
	in.define("pendown pd", 0, 0, 0, turtleDo(func(t *turtle.Engine) { t.SetPenDown(true) }))
	in.define("penup pu", 0, 0, 0, turtleDo(func(t *turtle.Engine) { t.SetPenDown(false) }))
	in.define("penpaint ppt", 0, 0, 0, turtleDo(func(t *turtle.Engine) { t.SetPenMode(turtle.Paint) }))
	in.define("penerase pe", 0, 0, 0, turtleDo(func(t *turtle.Engine) { t.SetPenMode(turtle.Erase) }))
	in.define("penreverse px", 0, 0, 0, turtleDo(func(t *turtle.Engine) { t.SetPenMode(turtle.Reverse) }))
	in.define("pendownp pendown?", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return Bool(in.turtle.Pen().Down), nil })
	in.define("penmode", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return NewWord(in.turtle.Pen().Mode.String()), nil })
	in.define("setpencolor setcolor setpc", 1, 1, 1, turtleColor((*turtle.Engine).SetPenColor))
	in.define("pencolor pc", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return colorValue(in.turtle.Pen().Color), nil })
	in.define("setpensize setwidth setpw", 1, 1, 1, primSetPenSize)
	in.define("pensize penwidth", 0, 0, 0, primPenSize)
	in.define("setbackground setscreencolor setbg", 1, 1, 1, turtleColor((*turtle.Engine).SetBackground))
	in.define("background bg", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return colorValue(in.turtle.Background()), nil })
	in.define("fill", 0, 0, 0, turtleDo((*turtle.Engine).Fill))
	in.define("filled", 2, 2, 2, primFilled)

	// Multiple turtles.
	in.define("setturtle", 1, 1, 1, primSetTurtle)
	in.define("turtle", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return NewNumber(float64(in.turtle.Turtle())), nil })
	in.define("turtles", 0, 0, 0, func(in *Interp, c *Call) (Value, error) { return NewNumber(float64(in.turtle.Turtles())), nil })
	in.define("ask", 2, 2, 2, primAsk)
}

func turtleDo(f func(*turtle.Engine)) func(*Interp, *Call) (Value, error) {
	return func(in *Interp, c *Call) (Value, error) {
		f(in.turtle)
		return nil, nil
	}
}

func turtleNum(f func(*turtle.Engine, float64)) func(*Interp, *Call) (Value, error) {
	return func(in *Interp, c *Call) (Value, error) {
		n, err := in.toNumber(c.Args[0])
		if err != nil {
			return nil, err
		}
		f(in.turtle, n)
		return nil, nil
	}
}

func turtleColor(f func(*turtle.Engine, turtle.Color)) func(*Interp, *Call) (Value, error) {
	return func(in *Interp, c *Call) (Value, error) {
		col, err := in.color(c.Args[0])
		if err != nil {
			return nil, err
		}
		f(in.turtle, col)
		return nil, nil
	}
}

// color interprets a palette index, an [r g b] list on a 0 to 99 scale, a
// #hex word, or a color name.
func (in *Interp) color(v Value) (turtle.Color, error) {
	switch v := v.(type) {
	case Word:
		if n, ok := v.Number(); ok {
			if c, ok := turtle.PaletteColor(int(n)); ok {
				return c, nil
			}
			return turtle.Color{}, in.fault(BadInput, "{_PROC_}: Expected color", map[string]any{"value": v})
		}
		s := v.String()
		if in.localizer != nil {
			if c, ok := in.localizer.Color(s); ok {
				return c, nil
			}
		}
		if c, ok := turtle.Parse(s); ok {
			return c, nil
		}
	case *List:
		if len(v.Items) == 3 {
			n, err := in.numbers(v.Items)
			if err != nil {
				return turtle.Color{}, err
			}
			return turtle.RGB99(n[0], n[1], n[2]), nil
		}
	}
	return turtle.Color{}, in.fault(BadInput, "{_PROC_}: Expected color", map[string]any{"value": v})
}

// colorValue outputs a palette index for palette colors and a #hex word
// otherwise.
func colorValue(c turtle.Color) Value {
	if i, ok := c.PaletteIndex(); ok {
		return NewNumber(float64(i))
	}
	return NewWord(c.String())
}

// point reads an [x y] list.
func (in *Interp) point(v Value) (turtle.Point, error) {
	l, ok := v.(*List)
	if !ok || len(l.Items) != 2 {
		return turtle.Point{}, in.expected("list", v)
	}
	n, err := in.numbers(l.Items)
	if err != nil {
		return turtle.Point{}, err
	}
	return turtle.Point{X: n[0], Y: n[1]}, nil
}

func primSetPos(in *Interp, c *Call) (Value, error) {
	p, err := in.point(c.Args[0])
	if err != nil {
		return nil, err
	}
	in.turtle.SetPos(p)
	return nil, nil
}

func primSetXY(in *Interp, c *Call) (Value, error) {
	n, err := in.numbers(c.Args)
	if err != nil {
		return nil, err
	}
	in.turtle.SetPos(turtle.Point{X: n[0], Y: n[1]})
	return nil, nil
}

func primArc(in *Interp, c *Call) (Value, error) {
	n, err := in.numbers(c.Args)
	if err != nil {
		return nil, err
	}
	in.turtle.Arc(n[0], n[1])
	return nil, nil
}

func primPos(in *Interp, c *Call) (Value, error) {
	p := in.turtle.Pos()
	return NewList(NewNumber(p.X), NewNumber(p.Y)), nil
}

func primTowards(in *Interp, c *Call) (Value, error) {
	p, err := in.point(c.Args[0])
	if err != nil {
		return nil, err
	}
	return NewNumber(in.turtle.Towards(p)), nil
}

func primScrunch(in *Interp, c *Call) (Value, error) {
	sx, sy := in.turtle.Scrunch()
	return NewList(NewNumber(sx), NewNumber(sy)), nil
}

func primSetScrunch(in *Interp, c *Call) (Value, error) {
	n, err := in.numbers(c.Args)
	if err != nil {
		return nil, err
	}
	if n[0] == 0 || n[1] == 0 {
		return nil, in.expected("number", c.Args[0])
	}
	in.turtle.SetScrunch(n[0], n[1])
	return nil, nil
}

func primLabel(in *Interp, c *Call) (Value, error) {
	in.turtle.Label(Text(c.Args[0]))
	return nil, nil
}

// primSetLabelFont takes a font name, or a list of a name and a size.
func primSetLabelFont(in *Interp, c *Call) (Value, error) {
	f := in.turtle.Font()
	switch v := c.Args[0].(type) {
	case Word:
		f.Name = v.String()
	case *List:
		if len(v.Items) == 0 || len(v.Items) > 2 {
			return nil, in.expected("list", v)
		}
		f.Name = Text(v.Items[0])
		if len(v.Items) == 2 {
			n, err := in.toNumber(v.Items[1])
			if err != nil {
				return nil, err
			}
			f.Size = n
		}
	default:
		return nil, in.expected("list", v)
	}
	in.turtle.SetFont(f)
	return nil, nil
}

// primSetPenSize takes a width, or a [width height] list of which only the
// width is used.
func primSetPenSize(in *Interp, c *Call) (Value, error) {
	v := c.Args[0]
	if l, ok := v.(*List); ok && len(l.Items) == 2 {
		v = l.Items[0]
	}
	n, err := in.toNumber(v)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, in.expected("number", c.Args[0])
	}
	in.turtle.SetPenWidth(n)
	return nil, nil
}

func primPenSize(in *Interp, c *Call) (Value, error) {
	w := in.turtle.Pen().Width
	return NewList(NewNumber(w), NewNumber(w)), nil
}

// primFilled runs a list inside a fill path. The path is filled even when
// the list fails.
func primFilled(in *Interp, c *Call) (Value, error) {
	col, err := in.color(c.Args[0])
	if err != nil {
		return nil, err
	}
	l, err := in.toList(c.Args[1])
	if err != nil {
		return nil, err
	}
	return nil, in.turtle.Filled(col, func() error {
		_, err := in.runList(l, false)
		return err
	})
}

func primSetTurtle(in *Interp, c *Call) (Value, error) {
	i, err := in.toInt(c.Args[0])
	if err != nil {
		return nil, err
	}
	if i < 0 {
		return nil, in.expected("number", c.Args[0])
	}
	in.turtle.SetTurtle(i)
	return nil, nil
}

// primAsk runs a list with another turtle, or each of a list of turtles, made
// active. The active turtle is restored afterward.
func primAsk(in *Interp, c *Call) (Value, error) {
	var idx []int
	if l, ok := c.Args[0].(*List); ok {
		for _, v := range l.Items {
			i, err := in.toInt(v)
			if err != nil {
				return nil, err
			}
			idx = append(idx, i)
		}
	} else {
		i, err := in.toInt(c.Args[0])
		if err != nil {
			return nil, err
		}
		idx = append(idx, i)
	}
	body, err := in.toList(c.Args[1])
	if err != nil {
		return nil, err
	}
	for _, i := range idx {
		if i < 0 {
			return nil, in.expected("number", c.Args[0])
		}
		err := in.turtle.Ask(i, func() error {
			_, err := in.runList(body, false)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return nil, nil
}
