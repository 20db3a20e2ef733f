package logo

import (
	"math"
	"math/rand/v2"
)

func (in *Interp) initMath() {
	in.define("sum", 0, 2, -1, primSum)
	in.define("difference", 2, 2, 2, mathFn2(func(a, b float64) float64 { return a - b }))
	in.define("minus", 1, 1, 1, mathFn(func(a float64) float64 { return -a }))
	in.define("product", 0, 2, -1, primProduct)
	in.define("quotient", 1, 2, 2, primQuotient)
	in.define("remainder", 2, 2, 2, primRemainder)
	in.define("modulo", 2, 2, 2, primModulo)
	in.define("int", 1, 1, 1, mathFn(math.Trunc))
	in.define("round", 1, 1, 1, mathFn(func(a float64) float64 { return math.Floor(a + 0.5) }))
	in.define("abs", 1, 1, 1, mathFn(math.Abs))
	in.define("sqrt", 1, 1, 1, primSqrt)
	in.define("power", 2, 2, 2, mathFn2(math.Pow))
	in.define("exp", 1, 1, 1, mathFn(math.Exp))
	in.define("log10", 1, 1, 1, primLog(math.Log10))
	in.define("ln", 1, 1, 1, primLog(math.Log))
	in.define("sin", 1, 1, 1, mathFn(func(a float64) float64 { return math.Sin(a * math.Pi / 180) }))
	in.define("cos", 1, 1, 1, mathFn(func(a float64) float64 { return math.Cos(a * math.Pi / 180) }))
	in.define("arctan", 1, 1, 2, primArctan(180/math.Pi))
	in.define("radsin", 1, 1, 1, mathFn(math.Sin))
	in.define("radcos", 1, 1, 1, mathFn(math.Cos))
	in.define("radarctan", 1, 1, 2, primArctan(1))
	in.define("iseq", 2, 2, 2, primIseq)
	in.define("rseq", 3, 3, 3, primRseq)

	in.define("lessp less?", 2, 2, 2, compareFn(func(a, b float64) bool { return a < b }))
	in.define("greaterp greater?", 2, 2, 2, compareFn(func(a, b float64) bool { return a > b }))
	in.define("lessequalp lessequal?", 2, 2, 2, compareFn(func(a, b float64) bool { return a <= b }))
	in.define("greaterequalp greaterequal?", 2, 2, 2, compareFn(func(a, b float64) bool { return a >= b }))

	in.define("random", 1, 1, 2, primRandom)
	in.define("rerandom", 0, 0, 1, primRerandom)
	in.define("form", 3, 3, 3, primForm)

	in.define("bitand", 0, 2, -1, bitFn(func(a, b int32) int32 { return a & b }, -1))
	in.define("bitor", 0, 2, -1, bitFn(func(a, b int32) int32 { return a | b }, 0))
	in.define("bitxor", 0, 2, -1, bitFn(func(a, b int32) int32 { return a ^ b }, 0))
	in.define("bitnot", 1, 1, 1, primBitNot)
	in.define("ashift", 2, 2, 2, primAshift)
	in.define("lshift", 2, 2, 2, primLshift)

	in.defineNoEval("and", 0, 2, -1, primAnd)
	in.defineNoEval("or", 0, 2, -1, primOr)
	in.define("xor", 0, 2, -1, primXor)
	in.define("not", 1, 1, 1, primNot)
}

// numbers converts every input to a number.
func (in *Interp) numbers(args []Value) ([]float64, error) {
	r := make([]float64, len(args))
	for i, v := range args {
		n, err := in.toNumber(v)
		if err != nil {
			return nil, err
		}
		r[i] = n
	}
	return r, nil
}

func mathFn(f func(float64) float64) func(*Interp, *Call) (Value, error) {
	return func(in *Interp, c *Call) (Value, error) {
		a, err := in.toNumber(c.Args[0])
		if err != nil {
			return nil, err
		}
		return NewNumber(f(a)), nil
	}
}

func mathFn2(f func(a, b float64) float64) func(*Interp, *Call) (Value, error) {
	return func(in *Interp, c *Call) (Value, error) {
		n, err := in.numbers(c.Args)
		if err != nil {
			return nil, err
		}
		return NewNumber(f(n[0], n[1])), nil
	}
}

func compareFn(f func(a, b float64) bool) func(*Interp, *Call) (Value, error) {
	return func(in *Interp, c *Call) (Value, error) {
		n, err := in.numbers(c.Args)
		if err != nil {
			return nil, err
		}
		return Bool(f(n[0], n[1])), nil
	}
}

func primSum(in *Interp, c *Call) (Value, error) {
	n, err := in.numbers(c.Args)
	if err != nil {
		return nil, err
	}
	var r float64
	for _, x := range n {
		r += x
	}
	return NewNumber(r), nil
}

func primProduct(in *Interp, c *Call) (Value, error) {
	n, err := in.numbers(c.Args)
	if err != nil {
		return nil, err
	}
	r := 1.0
	for _, x := range n {
		r *= x
	}
	return NewNumber(r), nil
}

// primQuotient with one input outputs its reciprocal.
func primQuotient(in *Interp, c *Call) (Value, error) {
	n, err := in.numbers(c.Args)
	if err != nil {
		return nil, err
	}
	if len(n) == 1 {
		n = []float64{1, n[0]}
	}
	return in.arith("/", n[0], n[1])
}

// primRemainder takes the sign of the dividend.
func primRemainder(in *Interp, c *Call) (Value, error) {
	n, err := in.numbers(c.Args)
	if err != nil {
		return nil, err
	}
	return in.arith("%", n[0], n[1])
}

// primModulo takes the sign of the divisor.
func primModulo(in *Interp, c *Call) (Value, error) {
	n, err := in.numbers(c.Args)
	if err != nil {
		return nil, err
	}
	if n[1] == 0 {
		return nil, in.fault(DivideByZero, "Division by zero", nil)
	}
	r := math.Mod(n[0], n[1])
	if r != 0 && (r < 0) != (n[1] < 0) {
		r += n[1]
	}
	return NewNumber(r), nil
}

func primSqrt(in *Interp, c *Call) (Value, error) {
	a, err := in.toNumber(c.Args[0])
	if err != nil {
		return nil, err
	}
	if a < 0 {
		return nil, in.fault(BadInput, "{_PROC_}: Expected non-negative number", map[string]any{"value": c.Args[0]})
	}
	return NewNumber(math.Sqrt(a)), nil
}

func primLog(f func(float64) float64) func(*Interp, *Call) (Value, error) {
	return func(in *Interp, c *Call) (Value, error) {
		a, err := in.toNumber(c.Args[0])
		if err != nil {
			return nil, err
		}
		if a <= 0 {
			return nil, in.fault(BadInput, "{_PROC_}: Expected positive number", map[string]any{"value": c.Args[0]})
		}
		return NewNumber(f(a)), nil
	}
}

// primArctan outputs the angle of x, or with two inputs the angle of the
// point (x, y), scaled from radians.
func primArctan(scale float64) func(*Interp, *Call) (Value, error) {
	return func(in *Interp, c *Call) (Value, error) {
		n, err := in.numbers(c.Args)
		if err != nil {
			return nil, err
		}
		if len(n) == 2 {
			return NewNumber(math.Atan2(n[1], n[0]) * scale), nil
		}
		return NewNumber(math.Atan(n[0]) * scale), nil
	}
}

func primIseq(in *Interp, c *Call) (Value, error) {
	n, err := in.numbers(c.Args)
	if err != nil {
		return nil, err
	}
	from, to := math.Trunc(n[0]), math.Trunc(n[1])
	step := 1.0
	if from > to {
		step = -1
	}
	r := []Value{}
	for x := from; (step > 0 && x <= to) || (step < 0 && x >= to); x += step {
		r = append(r, NewNumber(x))
	}
	return NewList(r...), nil
}

func primRseq(in *Interp, c *Call) (Value, error) {
	n, err := in.numbers(c.Args)
	if err != nil {
		return nil, err
	}
	from, to, count := n[0], n[1], int(n[2])
	if count < 1 {
		return nil, in.expected("number", c.Args[2])
	}
	if count == 1 {
		return NewList(NewNumber(from)), nil
	}
	r := make([]Value, count)
	for i := range count {
		r[i] = NewNumber(from + (to-from)*float64(i)/float64(count-1))
	}
	return NewList(r...), nil
}

// primRandom outputs an integer in [0, n), or with two inputs in [a, b].
func primRandom(in *Interp, c *Call) (Value, error) {
	n, err := in.numbers(c.Args)
	if err != nil {
		return nil, err
	}
	lo, hi := 0.0, math.Trunc(n[0])-1
	if len(n) == 2 {
		lo, hi = math.Trunc(n[0]), math.Trunc(n[1])
	}
	if hi < lo {
		return nil, in.expected("number", c.Args[len(c.Args)-1])
	}
	return NewNumber(lo + float64(in.rng.Int64N(int64(hi-lo)+1))), nil
}

// primRerandom restarts the random sequence, from the seed given or the
// session's original seed.
func primRerandom(in *Interp, c *Call) (Value, error) {
	seed := in.seed
	if v := c.Arg(0); v != nil {
		n, err := in.toInt(v)
		if err != nil {
			return nil, err
		}
		seed = uint64(n)
	}
	in.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	return nil, nil
}

func primForm(in *Interp, c *Call) (Value, error) {
	num, err := in.toNumber(c.Args[0])
	if err != nil {
		return nil, err
	}
	width, err := in.toInt(c.Args[1])
	if err != nil {
		return nil, err
	}
	prec, err := in.toInt(c.Args[2])
	if err != nil {
		return nil, err
	}
	if prec < 0 || prec > 20 {
		return nil, in.expected("number", c.Args[2])
	}
	return NewWord(Form(num, width, prec)), nil
}

// bits converts every input to a 32-bit integer.
func (in *Interp) bits(args []Value) ([]int32, error) {
	r := make([]int32, len(args))
	for i, v := range args {
		n, err := in.toInt(v)
		if err != nil {
			return nil, err
		}
		r[i] = int32(n)
	}
	return r, nil
}

func bitFn(f func(a, b int32) int32, zero int32) func(*Interp, *Call) (Value, error) {
	return func(in *Interp, c *Call) (Value, error) {
		n, err := in.bits(c.Args)
		if err != nil {
			return nil, err
		}
		r := zero
		for _, x := range n {
			r = f(r, x)
		}
		return NewNumber(float64(r)), nil
	}
}

func primBitNot(in *Interp, c *Call) (Value, error) {
	n, err := in.bits(c.Args)
	if err != nil {
		return nil, err
	}
	return NewNumber(float64(^n[0])), nil
}

func primAshift(in *Interp, c *Call) (Value, error) {
	n, err := in.bits(c.Args)
	if err != nil {
		return nil, err
	}
	if n[1] >= 0 {
		return NewNumber(float64(n[0] << (n[1] & 31))), nil
	}
	return NewNumber(float64(n[0] >> (-n[1] & 31))), nil
}

func primLshift(in *Interp, c *Call) (Value, error) {
	n, err := in.bits(c.Args)
	if err != nil {
		return nil, err
	}
	u := uint32(n[0])
	if n[1] >= 0 {
		return NewNumber(float64(int32(u << (n[1] & 31)))), nil
	}
	return NewNumber(float64(u >> (-n[1] & 31))), nil
}

// primAnd evaluates its inputs left to right until one is false.
func primAnd(in *Interp, c *Call) (Value, error) {
	for _, t := range c.Thunks {
		b, err := in.thunkBool(t)
		if err != nil {
			return nil, err
		}
		if !b {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

// primOr evaluates its inputs left to right until one is true.
func primOr(in *Interp, c *Call) (Value, error) {
	for _, t := range c.Thunks {
		b, err := in.thunkBool(t)
		if err != nil {
			return nil, err
		}
		if b {
			return Bool(true), nil
		}
	}
	return Bool(false), nil
}

func primXor(in *Interp, c *Call) (Value, error) {
	r := false
	for _, v := range c.Args {
		b, err := in.toBool(v)
		if err != nil {
			return nil, err
		}
		r = r != b
	}
	return Bool(r), nil
}

func primNot(in *Interp, c *Call) (Value, error) {
	b, err := in.toBool(c.Args[0])
	if err != nil {
		return nil, err
	}
	return Bool(!b), nil
}
