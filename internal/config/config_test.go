package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/logo/turtle"
)

// isolate runs the test in an empty directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Float64("width", 0, "")
	fs.String("turtle-mode", "", "")
	fs.String("library", "", "")
	fs.Bool("redefine-primitives", false, "")
	return fs
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 640.0, cfg.Width)
	assert.Equal(t, 480.0, cfg.Height)
	assert.Equal(t, DefaultYieldInterval, cfg.YieldInterval)
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	assert.Empty(t, cfg.Library)
	assert.Empty(t, cfg.File)
	m, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, turtle.Wrap, m)
}

func TestPrecedence(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "logo.yaml"), `
width: 300
height: 200
turtle_mode: fence
yield_interval: 5ms
library: file.db
`)

	t.Run("file", func(t *testing.T) {
		cfg, err := Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(".", "logo.yaml"), cfg.File)
		assert.Equal(t, 300.0, cfg.Width)
		assert.Equal(t, 200.0, cfg.Height)
		assert.Equal(t, "fence", cfg.TurtleMode)
		assert.Equal(t, 5*time.Millisecond, cfg.YieldInterval)
		assert.Equal(t, "file.db", cfg.Library)
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("LOGO_TURTLE_MODE", "window")
		t.Setenv("LOGO_WIDTH", "100")
		cfg, err := Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, "window", cfg.TurtleMode)
		assert.Equal(t, 100.0, cfg.Width)
		assert.Equal(t, 200.0, cfg.Height)
	})

	t.Run("flags", func(t *testing.T) {
		t.Setenv("LOGO_TURTLE_MODE", "window")
		fs := testFlags()
		require.NoError(t, fs.Parse([]string{"--turtle-mode=wrap", "--redefine-primitives"}))
		cfg, err := Load("", fs)
		require.NoError(t, err)
		assert.Equal(t, "wrap", cfg.TurtleMode)
		assert.True(t, cfg.RedefinePrimitives)
		// Unset flags do not clobber the file.
		assert.Equal(t, 300.0, cfg.Width)
		assert.Equal(t, "file.db", cfg.Library)
	})
}

func TestExplicitFile(t *testing.T) {
	dir := isolate(t)
	p := filepath.Join(dir, "other", "settings.yaml")
	writeFile(t, p, "max_depth: 50\nlocale: fr\n")
	cfg, err := Load(p, nil)
	require.NoError(t, err)
	assert.Equal(t, p, cfg.File)
	assert.Equal(t, 50, cfg.MaxDepth)
	assert.Equal(t, "fr", cfg.Locale)

	_, err = Load(filepath.Join(dir, "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestUserConfigDir(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "logo", "logo.yml"), "height: 99\n")
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 99.0, cfg.Height)
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"mode":  "turtle_mode: sideways\n",
		"size":  "width: 0\n",
		"depth": "max_depth: -1\n",
		"level": "log_level: loud\n",
		"yield": "yield_interval: -1s\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			p := filepath.Join(dir, "logo.yaml")
			writeFile(t, p, content)
			_, err := Load(p, nil)
			assert.Error(t, err)
		})
	}
}

func TestLevel(t *testing.T) {
	c := Config{LogLevel: "debug"}
	l, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", l.String())
}
