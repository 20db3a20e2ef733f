package logo

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts numeric literal text to a number. Accepted forms are an
// optional minus sign, digits with an optional fractional part (or a leading
// decimal point), and an optional exponent.
func ParseNumber(s string) (float64, bool) {
	if !isNumeric(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			// f is ±Inf or 0 already.
			return f, true
		}
		return 0, false
	}
	return f, true
}

// isNumeric checks s against -?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)? without a
// regular expression.
func isNumeric(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && '0' <= s[i] && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '-' || s[i] == '+') {
			i++
		}
		exp := 0
		for i < len(s) && '0' <= s[i] && s[i] <= '9' {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

// FormatNumber renders a number as the shortest text that parses back to the
// same value. Integers have no fractional part; magnitudes of at least 1e21
// or below 1e-6 use exponent form.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	a := math.Abs(f)
	if a >= 1e21 || a < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go writes e+07 where we want e+7.
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		if exp == "" {
			exp = "0"
		}
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Form renders num with at least width characters and exactly precision
// digits after the decimal point, padding on the left with spaces.
func Form(num float64, width, precision int) string {
	s := strconv.FormatFloat(num, 'f', precision, 64)
	if len(s) < width {
		s = strings.Repeat(" ", width-len(s)) + s
	}
	return s
}
