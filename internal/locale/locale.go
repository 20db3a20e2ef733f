// Package locale provides translation tables for the interpreter's messages,
// keywords, color names, and procedure names.
package locale

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/logo"
	"github.com/zephyrtronium/logo/turtle"
)

//go:embed tables/*.yaml
var tables embed.FS

// Table is a translation table. It implements logo.Localizer.
type Table struct {
	Name string `yaml:"name"`
	// Messages maps English message formats to translated ones. Both use
	// the same {placeholders}.
	Messages map[string]string `yaml:"messages"`
	// Keywords maps translated words to ELSE or END.
	Keywords map[string]string `yaml:"keywords"`
	// Colors maps translated color names to anything SETPENCOLOR accepts
	// as a word: English names, #hex, or palette indices.
	Colors map[string]string `yaml:"colors"`
	// Procedures maps translated procedure names to primitives.
	Procedures map[string]string `yaml:"procedures"`

	keywords map[string]string
	colors   map[string]turtle.Color
}

var _ logo.Localizer = (*Table)(nil)

var upper = cases.Upper(language.Und)
var lower = cases.Lower(language.Und)

var placeholder = regexp.MustCompile(`\{\w+(?::[UL])?\}`)

// Parse reads a table from YAML and checks it.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.UnmarshalStrict(data, &t); err != nil {
		return nil, fmt.Errorf("bad locale table: %w", err)
	}
	var errs []error
	for from, to := range t.Messages {
		if !samePlaceholders(from, to) {
			errs = append(errs, fmt.Errorf("message %q: translation %q has different placeholders", from, to))
		}
	}
	t.keywords = make(map[string]string, len(t.Keywords))
	for w, kw := range t.Keywords {
		kw = upper.String(kw)
		if kw != "ELSE" && kw != "END" {
			errs = append(errs, fmt.Errorf("keyword %q: %q is not ELSE or END", w, kw))
			continue
		}
		t.keywords[upper.String(w)] = kw
	}
	t.colors = make(map[string]turtle.Color, len(t.Colors))
	for name, value := range t.Colors {
		c, ok := turtle.Parse(value)
		if !ok {
			errs = append(errs, fmt.Errorf("color %q: can't use %q", name, value))
			continue
		}
		t.colors[lower.String(name)] = c
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("bad locale table %s: %w", t.Name, err)
	}
	return &t, nil
}

func samePlaceholders(a, b string) bool {
	x := placeholder.FindAllString(a, -1)
	y := placeholder.FindAllString(b, -1)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(slices.Compact(x), slices.Compact(y))
}

// Names lists the built-in tables.
func Names() []string {
	ents, err := tables.ReadDir("tables")
	if err != nil {
		panic(err)
	}
	var r []string
	for _, e := range ents {
		r = append(r, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return r
}

// Builtin returns a built-in table.
func Builtin(name string) (*Table, error) {
	data, err := tables.ReadFile("tables/" + lower.String(name) + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no built-in locale %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return Parse(data)
}

// Load returns the built-in table with the given name, or else reads a
// table from the file at that path.
func Load(nameOrPath string) (*Table, error) {
	if slices.Contains(Names(), lower.String(nameOrPath)) {
		return Builtin(nameOrPath)
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't load locale: %w", err)
	}
	return Parse(data)
}

// Message translates a message format.
func (t *Table) Message(text string) (string, bool) {
	s, ok := t.Messages[text]
	return s, ok
}

// Keyword resolves an upper-cased word to the keyword it translates.
func (t *Table) Keyword(word string) (string, bool) {
	kw, ok := t.keywords[word]
	return kw, ok
}

// Color resolves a translated color name.
func (t *Table) Color(name string) (turtle.Color, bool) {
	c, ok := t.colors[lower.String(name)]
	return c, ok
}

// Install defines the table's procedure names in an interpreter as buried
// copies of the primitives they translate, so that they stay out of
// workspace listings. Every name is attempted; the error reports each one
// that could not be defined.
func (t *Table) Install(ctx context.Context, in *logo.Interp) error {
	names := make([]string, 0, len(t.Procedures))
	for name := range t.Procedures {
		names = append(names, name)
	}
	slices.Sort(names)
	var errs []error
	for _, name := range names {
		prim := t.Procedures[name]
		if p, ok := in.Procedure(prim); !ok || !p.Primitive() {
			errs = append(errs, fmt.Errorf("%s: %s is not a primitive", name, prim))
			continue
		}
		src := fmt.Sprintf(`copydef "%s "%s bury "%s`, name, prim, name)
		if err := in.Run(ctx, src); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
