package main

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"github.com/zephyrtronium/logo"
	"github.com/zephyrtronium/logo/turtle"
)

// lineReader reads one line of input after showing a prompt.
type lineReader interface {
	ReadLine(prompt string) (string, error)
}

// console is the terminal as a Logo stream. Text is colored with the text
// style's color, except black, which is left to the terminal's own
// foreground.
type console struct {
	in  lineReader
	out io.Writer
	// tty enables screen clearing.
	tty bool

	mu       sync.Mutex
	renderer *lipgloss.Renderer
	style    lipgloss.Style
	plain    bool
	errStyle lipgloss.Style
	text     strings.Builder
}

var _ logo.Stream = (*console)(nil)

func newConsole(in lineReader, out io.Writer, tty bool) *console {
	r := lipgloss.NewRenderer(out)
	return &console{
		in:       in,
		out:      out,
		tty:      tty,
		renderer: r,
		style:    r.NewStyle(),
		plain:    true,
		errStyle: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

func (c *console) Read(prompt string) (string, error) {
	line, err := c.in.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.text.WriteString(prompt + line + "\n")
	c.mu.Unlock()
	return line, nil
}

func (c *console) Write(parts ...string) {
	s := strings.Join(parts, "")
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text.WriteString(s)
	if !c.plain {
		s = renderLines(c.style, s)
	}
	_, _ = io.WriteString(c.out, s)
}

// renderLines styles each line separately so that lipgloss does not pad
// them into a block.
func renderLines(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func (c *console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text.Reset()
	if c.tty {
		_, _ = io.WriteString(c.out, "\033[H\033[2J")
	}
}

func (c *console) Readback() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text.String()
}

// SetTextStyle applies the style's color. Terminals have one size and font.
func (c *console) SetTextStyle(style logo.TextStyle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plain = style.Color == turtle.Black
	c.style = c.renderer.NewStyle().Foreground(lipgloss.Color(style.Color.String()))
}

// Error shows an error from a program.
func (c *console) Error(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, renderLines(c.errStyle, err.Error())+"\n")
}

// lineEditor reads lines with editing and history.
type lineEditor struct {
	rl *readline.Instance
}

func (e lineEditor) ReadLine(prompt string) (string, error) {
	e.rl.SetPrompt(prompt)
	line, err := e.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

// lineScanner reads lines from a plain reader, writing prompts to out.
type lineScanner struct {
	in  *bufio.Reader
	out io.Writer
}

func (s lineScanner) ReadLine(prompt string) (string, error) {
	if prompt != "" && s.out != nil {
		_, _ = io.WriteString(s.out, prompt)
	}
	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
