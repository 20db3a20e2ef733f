package logo

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/logo/turtle"
)

func TestBufferStreamRead(t *testing.T) {
	s := NewBufferStream(strings.NewReader("one\r\ntwo\nthree"))
	for _, want := range []string{"one", "two", "three"} {
		got, err := s.Read("? ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := s.Read("")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []string{"? ", "? ", "? ", ""}, s.Prompts)
}

func TestBufferStreamNoInput(t *testing.T) {
	s := NewBufferStream(nil)
	_, err := s.Read("")
	assert.ErrorIs(t, err, io.EOF)
}

func TestBufferStreamOutput(t *testing.T) {
	s := NewBufferStream(nil)
	s.Write("a", "b")
	s.Write("c\n")
	assert.Equal(t, "abc\n", s.Readback())
	s.Clear()
	assert.Empty(t, s.Readback())
	s.Write("d")
	assert.Equal(t, "d", s.Readback())

	style := TextStyle{Color: turtle.Palette[4], Size: 20, Font: "serif"}
	s.SetTextStyle(style)
	assert.Equal(t, style, s.TextStyle())
}
