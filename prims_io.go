package logo

import (
	"errors"
	"io"
	"strings"
)

func (in *Interp) initCommunication() {
	in.define("print pr", 0, 1, -1, primPrint)
	in.define("type", 0, 1, -1, primType)
	in.define("show", 0, 1, -1, primShow)
	in.define("readlist rl", 0, 0, 1, primReadList)
	in.define("readword rw", 0, 0, 1, primReadWord)
	in.define("cleartext ct", 0, 0, 0, primClearText)

	in.define("settextcolor", 1, 1, 1, primSetTextColor)
	in.define("textcolor", 0, 0, 0, primTextColor)
	in.define("settextsize", 1, 1, 1, primSetTextSize)
	in.define("textsize", 0, 0, 0, primTextSize)
	in.define("setfont", 1, 1, 1, primSetFont)
	in.define("font", 0, 0, 0, primFont)
}

func primPrint(in *Interp, c *Call) (Value, error) {
	s := make([]string, len(c.Args))
	for i, v := range c.Args {
		s[i] = Text(v)
	}
	in.stream.Write(strings.Join(s, " "), "\n")
	return nil, nil
}

func primType(in *Interp, c *Call) (Value, error) {
	s := make([]string, len(c.Args))
	for i, v := range c.Args {
		s[i] = Text(v)
	}
	in.stream.Write(s...)
	return nil, nil
}

func primShow(in *Interp, c *Call) (Value, error) {
	s := make([]string, len(c.Args))
	for i, v := range c.Args {
		s[i] = Show(v)
	}
	in.stream.Write(strings.Join(s, " "), "\n")
	return nil, nil
}

// readLine reads a line from the stream with an optional prompt input. The
// second result is false at end of input.
func (in *Interp) readLine(c *Call) (string, bool, error) {
	prompt := ""
	if v := c.Arg(0); v != nil {
		prompt = Text(v)
	}
	s, err := in.stream.Read(prompt)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		return "", false, err
	}
	return s, true, nil
}

// primReadList outputs the empty word at end of input.
func primReadList(in *Interp, c *Call) (Value, error) {
	s, ok, err := in.readLine(c)
	if err != nil || !ok {
		return NewWord(""), err
	}
	return in.parseList(s)
}

// primReadWord outputs the empty list at end of input.
func primReadWord(in *Interp, c *Call) (Value, error) {
	s, ok, err := in.readLine(c)
	if err != nil || !ok {
		return NewList(), err
	}
	return NewWord(s), nil
}

func primClearText(in *Interp, c *Call) (Value, error) {
	in.stream.Clear()
	return nil, nil
}

func primSetTextColor(in *Interp, c *Call) (Value, error) {
	col, err := in.color(c.Args[0])
	if err != nil {
		return nil, err
	}
	in.style.Color = col
	in.stream.SetTextStyle(in.style)
	return nil, nil
}

func primTextColor(in *Interp, c *Call) (Value, error) {
	return colorValue(in.style.Color), nil
}

func primSetTextSize(in *Interp, c *Call) (Value, error) {
	n, err := in.toNumber(c.Args[0])
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, in.expected("number", c.Args[0])
	}
	in.style.Size = n
	in.stream.SetTextStyle(in.style)
	return nil, nil
}

func primTextSize(in *Interp, c *Call) (Value, error) {
	return NewNumber(in.style.Size), nil
}

func primSetFont(in *Interp, c *Call) (Value, error) {
	s, err := in.toText(c.Args[0])
	if err != nil {
		return nil, err
	}
	in.style.Font = s
	in.stream.SetTextStyle(in.style)
	return nil, nil
}

func primFont(in *Interp, c *Call) (Value, error) {
	return NewWord(in.style.Font), nil
}
