package logo

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// BufferStream is a Stream that reads lines from an io.Reader and collects
// output in memory. It is safe for concurrent use, so a host may read its
// output while a program runs.
type BufferStream struct {
	mu    sync.Mutex
	in    *bufio.Reader
	out   strings.Builder
	style TextStyle
	// Prompts records each prompt passed to Read.
	Prompts []string
}

// NewBufferStream creates a stream reading from r. If r is nil, every read
// returns io.EOF.
func NewBufferStream(r io.Reader) *BufferStream {
	s := &BufferStream{}
	if r != nil {
		s.in = bufio.NewReader(r)
	}
	return s
}

// Read returns the next line of input without its line ending.
func (s *BufferStream) Read(prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	if s.in == nil {
		return "", io.EOF
	}
	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Write appends text to the output.
func (s *BufferStream) Write(parts ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range parts {
		s.out.WriteString(p)
	}
}

// Clear discards the output.
func (s *BufferStream) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out.Reset()
}

// Readback returns the output written since the last Clear.
func (s *BufferStream) Readback() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

// SetTextStyle records the style.
func (s *BufferStream) SetTextStyle(style TextStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = style
}

// TextStyle returns the most recently set style.
func (s *BufferStream) TextStyle() TextStyle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}
