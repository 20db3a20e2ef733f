package logo_test

import (
	"testing"

	"github.com/zephyrtronium/logo"
	. "github.com/zephyrtronium/logo/testutils"
)

// TestArithmetic tests the prefix arithmetic primitives.
func TestArithmetic(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Sum":            {Source: `sum 1 2`, Pass: PassEqual(num(3))},
		"SumMany":        {Source: `(sum 1 2 3)`, Pass: PassEqual(num(6))},
		"SumWord":        {Source: `sum "a 1`, Pass: PassError(logo.BadInput)},
		"SumMessage":     {Source: `sum "a 1`, Pass: PassMessage("SUM: Expected number")},
		"Difference":     {Source: `difference 5 7`, Pass: PassEqual(num(-2))},
		"Minus":          {Source: `minus 3`, Pass: PassEqual(num(-3))},
		"Product":        {Source: `(product 2 3 4)`, Pass: PassEqual(num(24))},
		"Quotient":       {Source: `quotient 7 2`, Pass: PassEqual(num(3.5))},
		"Reciprocal":     {Source: `(quotient 4)`, Pass: PassEqual(num(0.25))},
		"QuotientZero":   {Source: `quotient 1 0`, Pass: PassError(logo.DivideByZero)},
		"Remainder":      {Source: `remainder -7 3`, Pass: PassEqual(num(-1))},
		"RemainderZero":  {Source: `remainder 7 0`, Pass: PassError(logo.DivideByZero)},
		"Modulo":         {Source: `modulo -7 3`, Pass: PassEqual(num(2))},
		"ModuloNegDiv":   {Source: `modulo 7 -3`, Pass: PassEqual(num(-2))},
		"ModuloZero":     {Source: `modulo 7 0`, Pass: PassError(logo.DivideByZero)},
		"Int":            {Source: `int -3.7`, Pass: PassEqual(num(-3))},
		"Round":          {Source: `round 2.5`, Pass: PassEqual(num(3))},
		"RoundNeg":       {Source: `round -2.5`, Pass: PassEqual(num(-2))},
		"Abs":            {Source: `abs -4`, Pass: PassEqual(num(4))},
		"Sqrt":           {Source: `sqrt 16`, Pass: PassEqual(num(4))},
		"SqrtNeg":        {Source: `sqrt -1`, Pass: PassError(logo.BadInput)},
		"Power":          {Source: `power 2 10`, Pass: PassEqual(num(1024))},
		"Exp":            {Source: `exp 0`, Pass: PassEqual(num(1))},
		"Log10":          {Source: `round log10 1000`, Pass: PassEqual(num(3))},
		"Ln":             {Source: `ln 1`, Pass: PassEqual(num(0))},
		"LnZero":         {Source: `ln 0`, Pass: PassError(logo.BadInput)},
		"Sin":            {Source: `round 1000 * sin 30`, Pass: PassEqual(num(500))},
		"Cos":            {Source: `cos 0`, Pass: PassEqual(num(1))},
		"Arctan":         {Source: `round arctan 1`, Pass: PassEqual(num(45))},
		"Arctan2":        {Source: `round (arctan 0 1)`, Pass: PassEqual(num(90))},
		"RadSin":         {Source: `radsin 0`, Pass: PassEqual(num(0))},
		"RadArctan":      {Source: `round 1000 * radarctan 1`, Pass: PassEqual(num(785))},
		"Iseq":           {Source: `iseq 3 6`, Pass: PassShow("[3 4 5 6]")},
		"IseqDown":       {Source: `iseq 3 1`, Pass: PassShow("[3 2 1]")},
		"Rseq":           {Source: `rseq 0 1 5`, Pass: PassShow("[0 0.25 0.5 0.75 1]")},
		"RseqOne":        {Source: `rseq 3 9 1`, Pass: PassShow("[3]")},
		"Form":           {Source: `form 123.456 10 2`, Pass: PassShow("    123.46")},
		"FormBadPrec":    {Source: `form 1 1 21`, Pass: PassError(logo.BadInput)},
		"NumberFormat":   {Source: `1 / 3`, Pass: PassShow("0.3333333333333333")},
		"NumberIntegral": {Source: `2.0 * 3`, Pass: PassShow("6")},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestArithmetic/"+name))
	}
}

// TestComparisons tests the numeric predicates and logical primitives.
func TestComparisons(t *testing.T) {
	yes, no := PassEqual(logo.Bool(true)), PassEqual(logo.Bool(false))
	cases := map[string]SourceTestCase{
		"LessP":          {Source: `lessp 1 2`, Pass: yes},
		"LessPWord":      {Source: `lessp "a 2`, Pass: PassError(logo.BadInput)},
		"GreaterP":       {Source: `greaterp 1 2`, Pass: no},
		"LessEqualP":     {Source: `lessequalp 2 2`, Pass: yes},
		"GreaterEqualP":  {Source: `greaterequalp 1 2`, Pass: no},
		"And":            {Source: `and "true "true`, Pass: yes},
		"AndFalse":       {Source: `(and "true "false "true)`, Pass: no},
		"AndShort":       {Source: `and "false :undefined`, Pass: no},
		"AndBad":         {Source: `and 1 "true`, Pass: PassError(logo.BadInput)},
		"Or":             {Source: `or "false "true`, Pass: yes},
		"OrShort":        {Source: `or "true :undefined`, Pass: yes},
		"OrNone":         {Source: `(or)`, Pass: no},
		"Xor":            {Source: `xor "true "false`, Pass: yes},
		"XorBoth":        {Source: `xor "true "true`, Pass: no},
		"Not":            {Source: `not "false`, Pass: yes},
		"NotCase":        {Source: `not "TRUE`, Pass: no},
		"NotBad":         {Source: `not "maybe`, Pass: PassMessage("NOT: Expected true or false")},
		"AndOfInfix":     {Source: `and 1 < 2 2 < 3`, Pass: yes},
		"OrOfPredicates": {Source: `or emptyp [] emptyp [1]`, Pass: yes},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestComparisons/"+name))
	}
}

// TestBits tests the 32-bit integer primitives.
func TestBits(t *testing.T) {
	cases := map[string]SourceTestCase{
		"And":        {Source: `bitand 12 10`, Pass: PassEqual(num(8))},
		"AndMany":    {Source: `(bitand 15 7 3)`, Pass: PassEqual(num(3))},
		"Or":         {Source: `bitor 12 10`, Pass: PassEqual(num(14))},
		"Xor":        {Source: `bitxor 12 10`, Pass: PassEqual(num(6))},
		"Not":        {Source: `bitnot 0`, Pass: PassEqual(num(-1))},
		"AshiftLeft": {Source: `ashift 1 4`, Pass: PassEqual(num(16))},
		"AshiftNeg":  {Source: `ashift -16 -2`, Pass: PassEqual(num(-4))},
		"LshiftNeg":  {Source: `lshift -1 -28`, Pass: PassEqual(num(15))},
		"LshiftLeft": {Source: `lshift 3 1`, Pass: PassEqual(num(6))},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestBits/"+name))
	}
}

// TestRandom tests that random numbers stay in range and that RERANDOM
// repeats a sequence.
func TestRandom(t *testing.T) {
	yes := PassEqual(logo.Bool(true))
	cases := map[string]SourceTestCase{
		"One":      {Source: `random 1`, Pass: PassEqual(num(0))},
		"Range":    {Source: `(random 3 3)`, Pass: PassEqual(num(3))},
		"InRange":  {Source: `make "r random 10 and :r >= 0 :r < 10`, Pass: yes},
		"Between":  {Source: `make "r (random -2 2) and :r >= -2 :r <= 2`, Pass: yes},
		"Empty":    {Source: `random 0`, Pass: PassError(logo.BadInput)},
		"Repeat":   {Source: `rerandom make "a random 1000000 rerandom equalp :a random 1000000`, Pass: yes},
		"Seeded":   {Source: `(rerandom 7) make "a random 1000000 (rerandom 7) equalp :a random 1000000`, Pass: yes},
		"Backward": {Source: `(random 5 1)`, Pass: PassError(logo.BadInput)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestRandom/"+name))
	}
}
