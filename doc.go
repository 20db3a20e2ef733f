/*
Package logo implements an interpreter for the Logo programming language,
together with the turtle graphics it is best known for.

The interpreter can easily be embedded in another program. Use New to create
one, passing options to connect its console (WithStream) and its drawing
surface (WithSurface), to persist definitions (WithSaver), or to translate its
messages and keywords (WithLocalizer). Then pass program text to Run or Eval.
An interpreter is not safe for concurrent use; a Scheduler owns one and runs
programs submitted from any goroutine one at a time, and lets the host look at
the interpreter while a long program runs.

Logo Primer

Hello World in Logo:

	print [Hello, world!]

A Logo program is a sequence of instructions. Each instruction names a
procedure followed by its inputs. PRINT takes one input, here the list
[Hello, world!], and writes it to the console without its outer brackets.

There are only two kinds of data in Logo, words and lists, plus arrays for
when mutation is needed. A word is a sequence of characters; a quoted word
such as "hello stands for itself instead of naming a procedure. Numbers are
words too, so "12 and 12 are the same thing. A list is written in square
brackets and may contain words and other lists:

	show [a [b c] 3]

Lists are data until something runs them. REPEAT, IF, and the other control
procedures take lists of instructions as inputs:

	repeat 4 [forward 100 right 90]

draws a square. The turtle starts at the center of the screen facing up, with
its pen down, so every FORWARD leaves a line behind.

Variables are created with MAKE and read with a colon:

	make "side 50
	repeat 3 [fd :side rt 120]

Procedures that take inputs or output values are defined with TO:

	to square :size
	  repeat 4 [fd :size rt 90]
	end

	to double :n
	  output :n * 2
	end

	square double 25

A procedure that outputs a value is an operation, and its value becomes the
input of whatever came before it. A value that nothing uses is an error: the
instruction

	sum 1 2

fails with "Don't know what to do with 3". Arithmetic can be written in
prefix form, as SUM is above, or with the usual infix operators, which bind
more tightly than procedure inputs: "print 2 + 3 * 4" prints 14.

Names are case-insensitive, and variables are dynamically scoped: a procedure
sees the variables of the procedures that called it, unless a closer one
declares a LOCAL of the same name.

Higher-order procedures take templates, lists that are run with their slots
filled in:

	show map [? * ?] [1 2 3]

shows [1 4 9]. A template may also name its inputs, as in
map [[x] :x * :x] [1 2 3], or be the name of a procedure, as in
map "first [[a b] [c d]].

Errors stop the program with a message naming the procedure that failed. The
words CATCH and THROW provide nonlocal exits, and BYE stops the program
outright.

For a full reference to the primitives, see the Berkeley Logo manual at
https://people.eecs.berkeley.edu/~bh/usermanual, which this dialect follows
closely.
*/
package logo

// Version is the interpreter version.
const Version = "1.0.0"
