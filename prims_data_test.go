package logo_test

import (
	"testing"

	"github.com/zephyrtronium/logo"
	. "github.com/zephyrtronium/logo/testutils"
)

// TestConstructors tests primitives that build words, lists, and arrays.
func TestConstructors(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Word":          {Source: `word "a "b`, Pass: PassShow("ab")},
		"WordMany":      {Source: `(word "a "b 1)`, Pass: PassShow("ab1")},
		"WordList":      {Source: `word "a [b]`, Pass: PassError(logo.BadInput)},
		"List":          {Source: `list 1 [2]`, Pass: PassShow("[1 [2]]")},
		"ListNone":      {Source: `(list)`, Pass: PassShow("[]")},
		"Sentence":      {Source: `se 1 [2 3]`, Pass: PassShow("[1 2 3]")},
		"SentenceDeep":  {Source: `(se [a [b]] "c [])`, Pass: PassShow("[a [b] c]")},
		"Fput":          {Source: `fput "a [b c]`, Pass: PassShow("[a b c]")},
		"FputWord":      {Source: `fput "a "bc`, Pass: PassShow("abc")},
		"FputLongWord":  {Source: `fput "ab "cd`, Pass: PassError(logo.BadInput)},
		"Lput":          {Source: `lput "d [a b c]`, Pass: PassShow("[a b c d]")},
		"LputWord":      {Source: `lput "d "abc`, Pass: PassShow("abcd")},
		"Array":         {Source: `array 3`, Pass: PassShow("{[] [] []}")},
		"ArrayOrigin":   {Source: `(array 2 0)`, Pass: PassShow("{[] []}@0")},
		"ArrayZero":     {Source: `array 0`, Pass: PassError(logo.BadArraySize)},
		"ArrayMessage":  {Source: `array -1`, Pass: PassMessage("ARRAY: Array size must be positive integer")},
		"MDArray":       {Source: `mdarray [2 2]`, Pass: PassShow("{{[] []} {[] []}}")},
		"MDArrayBad":    {Source: `mdarray [2 0]`, Pass: PassError(logo.BadArraySize)},
		"ListToArray":   {Source: `listtoarray [a b]`, Pass: PassShow("{a b}")},
		"ListToArray0":  {Source: `(listtoarray [a b] 0)`, Pass: PassShow("{a b}@0")},
		"ArrayToList":   {Source: `arraytolist {a b}`, Pass: PassShow("[a b]")},
		"CombineList":   {Source: `combine "a [b]`, Pass: PassShow("[a b]")},
		"CombineWord":   {Source: `combine "a "b`, Pass: PassShow("ab")},
		"ReverseList":   {Source: `reverse [1 2 3]`, Pass: PassShow("[3 2 1]")},
		"ReverseWord":   {Source: `reverse "abc`, Pass: PassShow("cba")},
		"Gensym":        {Source: `gensym`, Pass: PassShow("G1")},
		"GensymCounts":  {Source: `ignore gensym gensym`, Pass: PassShow("G2")},
		"ArrayLiteral":  {Source: `{1 [2] {3}}`, Pass: PassShow("{1 [2] {3}}")},
		"ArrayLiteral0": {Source: `{a b}@0`, Pass: PassShow("{a b}@0")},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestConstructors/"+name))
	}
}

// TestSelectors tests primitives that take apart words, lists, and arrays.
func TestSelectors(t *testing.T) {
	cases := map[string]SourceTestCase{
		"First":          {Source: `first [a b]`, Pass: PassShow("a")},
		"FirstWord":      {Source: `first "abc`, Pass: PassShow("a")},
		"FirstArray":     {Source: `first {a b}@0`, Pass: PassEqual(num(0))},
		"FirstEmpty":     {Source: `first []`, Pass: PassError(logo.BadInput)},
		"FirstEmptyWord": {Source: `first "`, Pass: PassError(logo.BadInput)},
		"Firsts":         {Source: `firsts [[a b] [c d]]`, Pass: PassShow("[a c]")},
		"Last":           {Source: `last [a b c]`, Pass: PassShow("c")},
		"LastWord":       {Source: `last "abc`, Pass: PassShow("c")},
		"ButFirst":       {Source: `bf [a b c]`, Pass: PassShow("[b c]")},
		"ButFirstWord":   {Source: `bf "abc`, Pass: PassShow("bc")},
		"ButFirsts":      {Source: `bfs [[a b] [c d]]`, Pass: PassShow("[[b] [d]]")},
		"ButLast":        {Source: `bl [a b c]`, Pass: PassShow("[a b]")},
		"ButLastWord":    {Source: `bl "abc`, Pass: PassShow("ab")},
		"Item":           {Source: `item 2 [a b c]`, Pass: PassShow("b")},
		"ItemWord":       {Source: `item 3 "abc`, Pass: PassShow("c")},
		"ItemArray":      {Source: `item 0 {a b}@0`, Pass: PassShow("a")},
		"ItemOut":        {Source: `item 4 [a b c]`, Pass: PassError(logo.IndexOutOfBounds)},
		"ItemOutMessage": {Source: `item 0 [a]`, Pass: PassMessage("ITEM: Index out of bounds")},
		"MDItem":         {Source: `mditem [2 1] {{a b} {c d}}`, Pass: PassShow("c")},
		"Pick":           {Source: `memberp pick [a b c] [a b c]`, Pass: PassEqual(logo.Bool(true))},
		"Remove":         {Source: `remove "a [a b a c]`, Pass: PassShow("[b c]")},
		"RemoveWord":     {Source: `remove "a "banana`, Pass: PassShow("bnn")},
		"Remdup":         {Source: `remdup [a b a c]`, Pass: PassShow("[b a c]")},
		"Quoted":         {Source: `quoted "abc`, Pass: PassShow(`"abc`)},
		"QuotedList":     {Source: `quoted [a]`, Pass: PassShow("[a]")},
		"FputBf":         {Source: `make "x [a [b] c] equalp :x fput first :x bf :x`, Pass: PassEqual(logo.Bool(true))},
		"LputBl":         {Source: `make "x [a [b] c] equalp :x lput last :x bl :x`, Pass: PassEqual(logo.Bool(true))},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestSelectors/"+name))
	}
}

// TestMutators tests arrays, destructive list operations, and stacks.
func TestMutators(t *testing.T) {
	cases := map[string]SourceTestCase{
		"SetItem":        {Source: `make "a {1 2 3} setitem 2 :a "x :a`, Pass: PassShow("{1 x 3}")},
		"SetItemShared":  {Source: `make "a {1 2 3} make "b :a setitem 1 :b 9 item 1 :a`, Pass: PassEqual(num(9))},
		"SetItemOut":     {Source: `setitem 4 {1 2 3} 0`, Pass: PassError(logo.IndexOutOfBounds)},
		"SetItemCycle":   {Source: `make "a array 2 setitem 1 :a :a`, Pass: PassError(logo.CircularStructure)},
		"SetItemNested":  {Source: `make "a array 1 setitem 1 :a (list 1 :a)`, Pass: PassError(logo.CircularStructure)},
		"SetItemCycleOK": {Source: `make "a array 1 .setitem 1 :a :a arrayp item 1 :a`, Pass: PassEqual(logo.Bool(true))},
		"SetItemCopies":  {Source: `make "l [1] make "a array 1 setitem 1 :a :l .setfirst :l 2 :a`, Pass: PassShow("{[1]}")},
		"MDSetItem":      {Source: `make "a mdarray [2 2] mdsetitem [2 1] :a "x :a`, Pass: PassShow("{{[] []} {x []}}")},
		"MDSetItemCycle": {Source: `make "a mdarray [2 2] mdsetitem [1 1] :a :a`, Pass: PassError(logo.CircularStructure)},
		"SetFirst":       {Source: `make "l [1 2 3] .setfirst :l 9 :l`, Pass: PassShow("[9 2 3]")},
		"SetBF":          {Source: `make "l [1 2 3] .setbf :l [9] :l`, Pass: PassShow("[1 9]")},
		"RunSetFirst":    {Source: `make "l [repeat 1 [type "a]] run :l .setfirst last :l "print run :l`, Pass: PassOutput("aa\n")},
		"RunSetItem":     {Source: `make "a {1} make "l (list "print :a) run :l setitem 1 :a 2 run :l`, Pass: PassOutput("{1}\n{2}\n")},
		"DeepCopy":       {Source: `make "a [1 [2 3]] make "b :a .setfirst :b 9 :a`, Pass: PassShow("[1 [2 3]]")},
		"Push":           {Source: `make "s [] push "s 1 push "s 2 :s`, Pass: PassShow("[2 1]")},
		"Pop":            {Source: `make "s [] push "s 1 push "s 2 pop "s`, Pass: PassEqual(num(2))},
		"PopEmpty":       {Source: `make "s [] pop "s`, Pass: PassError(logo.BadInput)},
		"PopLeaves":      {Source: `make "s [a b] ignore pop "s :s`, Pass: PassShow("[b]")},
		"Queue":          {Source: `make "q [] queue "q 1 queue "q 2 :q`, Pass: PassShow("[1 2]")},
		"Dequeue":        {Source: `make "q [] queue "q 1 queue "q 2 dequeue "q`, Pass: PassEqual(num(1))},
		"Repcount":       {Source: `make "s [] repeat 5 [push "s repcount] :s`, Pass: PassShow("[5 4 3 2 1]")},
		"PushUnbound":    {Source: `push "nope 1`, Pass: PassError(logo.UnboundVariable)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestMutators/"+name))
	}
}

// TestDataPredicates tests type, equality, and membership predicates.
func TestDataPredicates(t *testing.T) {
	yes, no := PassEqual(logo.Bool(true)), PassEqual(logo.Bool(false))
	cases := map[string]SourceTestCase{
		"WordP":          {Source: `wordp "a`, Pass: yes},
		"WordPList":      {Source: `word? []`, Pass: no},
		"ListP":          {Source: `listp []`, Pass: yes},
		"ArrayP":         {Source: `arrayp {}`, Pass: yes},
		"NumberP":        {Source: `numberp "12.5`, Pass: yes},
		"NumberPWord":    {Source: `numberp "a`, Pass: no},
		"NumberPList":    {Source: `numberp [1]`, Pass: no},
		"EmptyP":         {Source: `emptyp []`, Pass: yes},
		"EmptyPWord":     {Source: `emptyp "`, Pass: yes},
		"EmptyPFull":     {Source: `emptyp [a]`, Pass: no},
		"EqualP":         {Source: `equalp [a [b]] [a [B]]`, Pass: yes},
		"EqualPNumbers":  {Source: `equalp 1 1.0`, Pass: yes},
		"EqualPArrays":   {Source: `equalp {1} {1}`, Pass: no},
		"EqualPSameArr":  {Source: `make "a {1} equalp :a :a`, Pass: yes},
		"NotEqualP":      {Source: `notequalp 1 2`, Pass: yes},
		"BeforeP":        {Source: `beforep "apple "banana`, Pass: yes},
		"DotEqSame":      {Source: `make "l [1] .eq :l :l`, Pass: yes},
		"DotEqDifferent": {Source: `.eq [1] [1]`, Pass: no},
		"DotEqWords":     {Source: `.eq "a "a`, Pass: yes},
		"MemberP":        {Source: `memberp 2 [1 2 3]`, Pass: yes},
		"MemberPWord":    {Source: `memberp "b "abc`, Pass: yes},
		"MemberPArray":   {Source: `memberp "x {a b}`, Pass: no},
		"SubstringP":     {Source: `substringp "BC "abcd`, Pass: yes},
		"SubstringPList": {Source: `substringp "a [a]`, Pass: no},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestDataPredicates/"+name))
	}
}

// TestDataQueries tests counting, characters, case, and parsing.
func TestDataQueries(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Count":       {Source: `count [a b c]`, Pass: PassEqual(num(3))},
		"CountWord":   {Source: `count "hello`, Pass: PassEqual(num(5))},
		"CountArray":  {Source: `count {a b}`, Pass: PassEqual(num(2))},
		"ASCII":       {Source: `ascii "A`, Pass: PassEqual(num(65))},
		"Char":        {Source: `char 97`, Pass: PassShow("a")},
		"Member":      {Source: `member "b [a b c]`, Pass: PassShow("[b c]")},
		"MemberNone":  {Source: `member "z [a b c]`, Pass: PassShow("[]")},
		"MemberWord":  {Source: `member "c "abcd`, Pass: PassShow("cd")},
		"Lowercase":   {Source: `lowercase "ABC`, Pass: PassShow("abc")},
		"Uppercase":   {Source: `uppercase "abc`, Pass: PassShow("ABC")},
		"Parse":       {Source: `parse "a\ b\ \[c\]`, Pass: PassShow("[a b [c]]")},
		"RunParse":    {Source: `runparse "1+2`, Pass: PassShow("[1 + 2]")},
		"RunParseLst": {Source: `runparse [print 3*4]`, Pass: PassShow("[print 3 * 4]")},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestDataQueries/"+name))
	}
}
