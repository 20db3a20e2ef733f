package logo

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrorCode classifies interpreter faults.
type ErrorCode int

// Error codes. The comment on each gives its kind in the error taxonomy.
const (
	_ ErrorCode = iota

	// Parse errors.
	ParseFailure
	MissingBracket
	MissingBrace
	MissingParen
	UnexpectedParen
	UnexpectedOperator
	UnexpectedEnd

	// Binding errors.
	UnboundVariable
	UnknownProcedure
	MissingSpace

	// Arity errors.
	TooFewInputs
	TooManyInputs

	// Type errors.
	BadInput
	IndexOutOfBounds
	BadArraySize
	CircularStructure
	DivideByZero

	// Redefinition errors.
	Redefinition

	// Output-contract errors.
	NoOutput
	UnexpectedResult
	BadContext

	// User-raised errors.
	NoCatch
	UserError

	// Resource errors.
	StackOverflow
)

var codeNames = map[ErrorCode]string{
	ParseFailure:       "PARSE_FAILURE",
	MissingBracket:     "MISSING_BRACKET",
	MissingBrace:       "MISSING_BRACE",
	MissingParen:       "MISSING_PAREN",
	UnexpectedParen:    "UNEXPECTED_PAREN",
	UnexpectedOperator: "UNEXPECTED_OPERATOR",
	UnexpectedEnd:      "UNEXPECTED_END",
	UnboundVariable:    "UNBOUND_VARIABLE",
	UnknownProcedure:   "UNKNOWN_PROCEDURE",
	MissingSpace:       "MISSING_SPACE",
	TooFewInputs:       "TOO_FEW_INPUTS",
	TooManyInputs:      "TOO_MANY_INPUTS",
	BadInput:           "BAD_INPUT",
	IndexOutOfBounds:   "INDEX_OUT_OF_BOUNDS",
	BadArraySize:       "BAD_ARRAY_SIZE",
	CircularStructure:  "CIRCULAR_STRUCTURE",
	DivideByZero:       "DIVIDE_BY_ZERO",
	Redefinition:       "REDEFINITION",
	NoOutput:           "NO_OUTPUT",
	UnexpectedResult:   "UNEXPECTED_RESULT",
	BadContext:         "BAD_CONTEXT",
	NoCatch:            "NO_CATCH",
	UserError:          "USER_ERROR",
	StackOverflow:      "STACK_OVERFLOW",
}

// String returns the conventional upper-case name of the code.
func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is an interpreter fault. Faults always propagate to the top of the
// current run; only THROW signals can be caught.
type Error struct {
	Code ErrorCode
	// Format is the untranslated message with {name} placeholders.
	Format string
	// Args holds the values substituted into Format.
	Args map[string]any
	// Proc is the innermost active procedure when the error was raised.
	Proc string
	// Within is the innermost user-defined procedure, if any.
	Within string

	text string
}

// Error returns the rendered message, naming the user procedure that was
// running when the error was raised.
func (e *Error) Error() string {
	if e.Within != "" {
		return e.text + " (in " + e.Within + ")"
	}
	return e.text
}

// Message returns the rendered message without procedure attribution.
func (e *Error) Message() string {
	return e.text
}

// newError creates an error rendered without localization.
func newError(code ErrorCode, format string, args map[string]any) *Error {
	e := &Error{Code: code, Format: format, Args: args}
	e.text = interpolate(format, args, "")
	return e
}

var placeholder = regexp.MustCompile(`\{(\w+)(?::([UL]))?\}`)

// interpolate substitutes {name}, {name:U}, and {name:L} placeholders.
// {_PROC_} is the given procedure name; a message beginning with
// "{_PROC_}: " loses that prefix when there is no procedure.
func interpolate(format string, args map[string]any, proc string) string {
	if proc == "" {
		format = strings.TrimPrefix(format, "{_PROC_}: ")
	}
	return placeholder.ReplaceAllStringFunc(format, func(m string) string {
		sub := placeholder.FindStringSubmatch(m)
		var s string
		if sub[1] == "_PROC_" {
			s = upper(proc)
		} else {
			v, ok := args[sub[1]]
			if !ok {
				return m
			}
			s = argText(v)
		}
		switch sub[2] {
		case "U":
			s = cases.Upper(language.Und).String(s)
		case "L":
			s = cases.Lower(language.Und).String(s)
		}
		return s
	})
}

func argText(v any) string {
	switch v := v.(type) {
	case Value:
		return Show(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// fault creates an error attributed to the innermost procedure, with its
// message passed through the localizer.
func (in *Interp) fault(code ErrorCode, format string, args map[string]any) *Error {
	e := &Error{Code: code, Format: format, Args: args, Proc: in.currentProc(), Within: in.currentUserProc()}
	e.text = interpolate(in.localize(format), args, e.Proc)
	return e
}

// relocalize renders an error produced outside the interpreter, such as by
// Parse, through the interpreter's localizer.
func (in *Interp) relocalize(err error) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	e.Proc = in.currentProc()
	e.Within = in.currentUserProc()
	e.text = interpolate(in.localize(e.Format), e.Args, e.Proc)
	return e
}

// localize looks up the translation of a message.
func (in *Interp) localize(text string) string {
	if in.localizer == nil {
		return text
	}
	if s, ok := in.localizer.Message(text); ok {
		return s
	}
	return text
}

// expected creates the standard bad-input error.
func (in *Interp) expected(what string, v Value) *Error {
	return in.fault(BadInput, "{_PROC_}: Expected "+what, map[string]any{"value": v})
}
