package logo_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/logo"
	. "github.com/zephyrtronium/logo/testutils"
)

// TestWorkspace tests variables, property lists, and workspace queries.
func TestWorkspace(t *testing.T) {
	yes, no := PassEqual(logo.Bool(true)), PassEqual(logo.Bool(false))
	cases := map[string]SourceTestCase{
		"Make":             {Source: `make "x 3 :x`, Pass: PassEqual(num(3))},
		"MakeCase":         {Source: `make "Abc 3 :aBC`, Pass: PassEqual(num(3))},
		"Name":             {Source: `name 3 "x :x`, Pass: PassEqual(num(3))},
		"Thing":            {Source: `make "x 3 thing "x`, Pass: PassEqual(num(3))},
		"ThingComputed":    {Source: `make "x2 4 thing word "x 2`, Pass: PassEqual(num(4))},
		"MakeCopies":       {Source: `make "a [1 2] make "b :a .setfirst :a 9 :b`, Pass: PassShow("[1 2]")},
		"LocalTop":         {Source: `local "x :x`, Pass: PassError(logo.UnboundVariable)},
		"LocalList":        {Source: "to f\nlocal [a b]\nmake \"a 1\nmake \"b 2\noutput :a + :b\nend\nf", Pass: PassEqual(num(3))},
		"LocalMany":        {Source: "to f\n(local \"a \"b)\nmake \"b 2\nend\nf namep \"b", Pass: no},
		"Global":           {Source: "to f\nlocal \"g\nglobal \"g\nend\nf namep \"g", Pass: no},
		"NameP":            {Source: `make "x 1 namep "x`, Pass: yes},
		"NamePMissing":     {Source: `namep "x`, Pass: no},
		"Pprop":            {Source: `pprop "p "color "red gprop "p "color`, Pass: PassShow("red")},
		"PpropCase":        {Source: `pprop "p "Color "red gprop "P "COLOR`, Pass: PassShow("red")},
		"GpropMissing":     {Source: `gprop "p "color`, Pass: PassShow("[]")},
		"Plist":            {Source: `pprop "p "a 1 pprop "p "b 2 plist "p`, Pass: PassShow("[a 1 b 2]")},
		"PlistReplace":     {Source: `pprop "p "a 1 pprop "p "b 2 pprop "p "a 3 plist "p`, Pass: PassShow("[a 3 b 2]")},
		"Remprop":          {Source: `pprop "p "a 1 pprop "p "b 2 remprop "p "a plist "p`, Pass: PassShow("[b 2]")},
		"PlistP":           {Source: `pprop "p "a 1 plistp "p`, Pass: yes},
		"PlistPEmptied":    {Source: `pprop "p "a 1 remprop "p "a plistp "p`, Pass: no},
		"ProcedureP":       {Source: `procedurep "print`, Pass: yes},
		"ProcedurePAlias":  {Source: `procedurep "PR`, Pass: yes},
		"PrimitiveP":       {Source: `primitivep "fd`, Pass: yes},
		"DefinedP":         {Source: `definedp "print`, Pass: no},
		"DefinedPUser":     {Source: "to f\nend\ndefinedp \"f", Pass: yes},
		"Contents":         {Source: "to f\nend\nmake \"x 1 pprop \"p \"a 1 contents", Pass: PassShow("[[f] [x] [p]]")},
		"Procedures":       {Source: "to b\nend\nto a\nend\nprocedures", Pass: PassShow("[a b]")},
		"Globals":          {Source: `make "y 1 make "x 2 globals`, Pass: PassShow("[x y]")},
		"Names":            {Source: `make "x 2 names`, Pass: PassShow("[[] [x]]")},
		"Plists":           {Source: `pprop "q "a 1 pprop "p "a 1 plists`, Pass: PassShow("[[] [] [q p]]")},
		"PrimitivesSorted": {Source: `first primitives`, Pass: PassShow(".eq")},
		"Erase":            {Source: "to f\nend\nerase \"f procedurep \"f", Pass: no},
		"EraseLists":       {Source: `make "x 1 pprop "p "a 1 erase [[] [x] [p]] list namep "x plistp "p`, Pass: PassShow("[false false]")},
		"ErasePrimitive":   {Source: `erase "print`, Pass: PassError(logo.Redefinition)},
		"Erall":            {Source: "to f\nend\nmake \"x 1 pprop \"p \"a 1 erall contents", Pass: PassShow("[[] [] []]")},
		"Erps":             {Source: "to f\nend\nmake \"x 1 erps contents", Pass: PassShow("[[] [x] []]")},
		"Erns":             {Source: "to f\nend\nmake \"x 1 erns contents", Pass: PassShow("[[f] [] []]")},
		"Erpls":            {Source: "pprop \"p \"a 1 make \"x 1 erpls contents", Pass: PassShow("[[] [x] []]")},
		"Bury":             {Source: "to f\nend\nbury \"f procedures", Pass: PassShow("[]")},
		"Buried":           {Source: "to f\nend\nmake \"x 1 bury [[f] [x]] buried", Pass: PassShow("[[f] [x] []]")},
		"BuriedP":          {Source: "to f\nend\nbury \"f buriedp \"f", Pass: yes},
		"Unbury":           {Source: "to f\nend\nbury \"f unbury \"f procedures", Pass: PassShow("[f]")},
		"ErallSkipsBuried": {Source: "to f\nend\nbury \"f erall procedurep \"f", Pass: yes},
		"StillCallable":    {Source: "to f\noutput 1\nend\nbury \"f f", Pass: PassEqual(num(1))},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestWorkspace/"+name))
	}
}

// TestDefinitions tests DEFINE, TEXT, and COPYDEF.
func TestDefinitions(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Text":            {Source: "to f :a\noutput :a\nend\ntext \"f", Pass: PassShow("[[a] [output :a]]")},
		"TextOptional":    {Source: "to f :a [:b 1] [:c] 2\nend\ntext \"f", Pass: PassShow("[[a [b 1] [c] 2]]")},
		"TextNegative":    {Source: "to f\noutput -5\nend\ntext \"f", Pass: PassShow("[[] [output -5]]")},
		"TextPrimitive":   {Source: `text "print`, Pass: PassError(logo.UnknownProcedure)},
		"Define":          {Source: `define "f [[a] [output :a * 2]] f 3`, Pass: PassEqual(num(6))},
		"DefineLines":     {Source: `define "f [[] [make "x 1] [output :x + 1]] f`, Pass: PassEqual(num(2))},
		"DefineOptional":  {Source: `define "f [[a [b 5]] [output :a + :b]] f 1`, Pass: PassEqual(num(6))},
		"DefineText":      {Source: "to f :a\noutput :a + 1\nend\ndefine \"g text \"f g 1", Pass: PassEqual(num(2))},
		"DefinePrimitive": {Source: `define "print [[] []]`, Pass: PassError(logo.Redefinition)},
		"BadArity":        {Source: "to f :a 0\nend", Pass: PassError(logo.BadInput)},
		"CopyDef":         {Source: "to f\noutput 7\nend\ncopydef \"g \"f g", Pass: PassEqual(num(7))},
		"CopyDefPrim":     {Source: `copydef "say "print say "hi`, Pass: PassOutput("hi\n")},
		"CopyDefUnknown":  {Source: `copydef "g "nope`, Pass: PassError(logo.UnknownProcedure)},
		"RedefP":          {Source: "make \"redefp \"true\nto print :x\noutput 1\nend\nprint 5", Pass: PassEqual(num(1))},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestDefinitions/"+name))
	}
}

// TestDefinitionText tests that a procedure's TO form reads back to an
// equivalent procedure.
func TestDefinitionText(t *testing.T) {
	s := NewSession(t, "")
	ctx := context.Background()
	src := "to f :a [:b 1] [:c] 2\n  output (sum :a :b -3 [x y])\nend"
	require.NoError(t, s.Run(ctx, src))
	text, ok := s.Definition("f")
	require.True(t, ok)
	assert.Equal(t, "to f :a [:b 1] [:c] 2\n  output ( sum :a :b -3 [x y] )\nend", text)

	_, ok = s.Definition("print")
	assert.False(t, ok)

	require.NoError(t, s.Run(ctx, `erase "f`))
	require.NoError(t, s.Run(ctx, text))
	again, ok := s.Definition("f")
	require.True(t, ok)
	assert.Equal(t, text, again)
}

// TestProceduresAsText tests that every user procedure is listed, buried or
// not, in name order.
func TestProceduresAsText(t *testing.T) {
	s := NewSession(t, "")
	ctx := context.Background()
	require.NoError(t, s.Run(ctx, "to b\nprint 2\nend\nto a\nprint 1\nend\nbury \"b"))
	want := "to a\n  print 1\nend\n\nto b\n  print 2\nend"
	assert.Equal(t, want, s.ProceduresAsText())
}

// memorySaver records the definitions it is given.
type memorySaver struct {
	mu    sync.Mutex
	defs  map[string]string
	fail  bool
	calls int
}

func (m *memorySaver) Save(ctx context.Context, name, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail {
		return errors.New("disk full")
	}
	m.defs[strings.ToLower(name)] = text
	return nil
}

func (m *memorySaver) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail {
		return errors.New("disk full")
	}
	delete(m.defs, strings.ToLower(name))
	return nil
}

// TestSaver tests that definitions and erasures reach the saver.
func TestSaver(t *testing.T) {
	m := &memorySaver{defs: map[string]string{}}
	s := NewSession(t, "", logo.WithSaver(m))
	ctx := context.Background()
	require.NoError(t, s.Run(ctx, "to sq :x\noutput :x * :x\nend"))
	assert.Equal(t, map[string]string{"sq": "to sq :x\n  output :x * :x\nend"}, m.defs)
	require.NoError(t, s.Run(ctx, `define "cube [[x] [output :x * sq :x]]`))
	assert.Len(t, m.defs, 2)
	require.NoError(t, s.Run(ctx, `erase "sq`))
	assert.Equal(t, []string{"cube"}, keys(m.defs))
}

// TestSaverFailure tests that a failing saver does not fail the program.
func TestSaverFailure(t *testing.T) {
	m := &memorySaver{defs: map[string]string{}, fail: true}
	s := NewSession(t, "", logo.WithSaver(m))
	v, err := s.Eval(context.Background(), "to f\noutput 1\nend\nf")
	require.NoError(t, err)
	assert.True(t, logo.Equal(num(1), v))
	assert.Equal(t, 1, m.calls)
}

// TestRedefineOption tests that primitives can be replaced when the session
// allows it.
func TestRedefineOption(t *testing.T) {
	s := NewSession(t, "", logo.WithRedefinePrimitives(true))
	v, err := s.Eval(context.Background(), "to sum :a :b\noutput :a * :b\nend\nsum 3 4")
	require.NoError(t, err)
	assert.True(t, logo.Equal(num(12), v))
}

func keys(m map[string]string) []string {
	var r []string
	for k := range m {
		r = append(r, k)
	}
	return r
}
