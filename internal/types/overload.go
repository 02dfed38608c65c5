package types

// Overloaded types. An overload constrains a type variable to a set of
// basic types; composites name the sets the primitive operators use.

// Basic is one basic overload class.
type Basic int

const (
	BasicInt Basic = iota
	BasicReal
	BasicWord
	BasicString
	BasicChar
)

func (b Basic) String() string {
	switch b {
	case BasicInt:
		return "int"
	case BasicReal:
		return "real"
	case BasicWord:
		return "word"
	case BasicString:
		return "string"
	case BasicChar:
		return "char"
	default:
		return "unknown"
	}
}

// Composite is a named union of basics.
type Composite int

const (
	WordInt Composite = iota
	RealInt
	Num
	NumTxt
	// NumTxtEq is the equality-only subset of NumTxt. Used only for
	// unification.
	NumTxtEq
)

func (c Composite) String() string {
	switch c {
	case WordInt:
		return "<wordint>"
	case RealInt:
		return "<realint>"
	case Num:
		return "<num>"
	case NumTxt:
		return "<numtxt>"
	case NumTxtEq:
		return "<numtxteq>"
	default:
		return "unknown"
	}
}

// AsBasics returns the basics a composite admits.
func (c Composite) AsBasics() []Basic {
	switch c {
	case WordInt:
		return []Basic{BasicWord, BasicInt}
	case RealInt:
		return []Basic{BasicReal, BasicInt}
	case Num:
		return []Basic{BasicWord, BasicReal, BasicInt}
	case NumTxt:
		return []Basic{BasicWord, BasicReal, BasicInt, BasicString, BasicChar}
	case NumTxtEq:
		return []Basic{BasicWord, BasicInt, BasicString, BasicChar}
	default:
		return nil
	}
}

// unify intersects two composites. The table is exhaustive; every pair of
// composites has a non-empty intersection.
func (c Composite) unify(other Composite) Overload {
	switch {
	case (c == WordInt && (other == WordInt || other == Num || other == NumTxt)) ||
		((c == Num || c == NumTxt) && other == WordInt):
		return WordInt
	case ((c == WordInt || c == NumTxtEq) && other == RealInt) ||
		(c == RealInt && (other == WordInt || other == NumTxtEq)):
		return BasicInt
	case (c == RealInt && (other == RealInt || other == Num || other == NumTxt)) ||
		((c == Num || c == NumTxt) && other == RealInt):
		return RealInt
	case (c == Num && (other == Num || other == NumTxt)) || (c == NumTxt && other == Num):
		return Num
	case c == NumTxt && other == NumTxt:
		return NumTxt
	case (c == NumTxtEq && (other == NumTxtEq || other == NumTxt)) ||
		(c == NumTxt && other == NumTxtEq):
		return NumTxtEq
	case (c == NumTxtEq && (other == WordInt || other == Num)) ||
		((c == WordInt || c == Num) && other == NumTxtEq):
		return WordInt
	default:
		panic("unreachable composite pair")
	}
}

// Overload is either a Basic or a Composite.
type Overload interface {
	AsBasics() []Basic
	String() string
	isOverload()
}

func (Basic) isOverload()     {}
func (Composite) isOverload() {}

// AsBasics lets a lone Basic act as an Overload of itself.
func (b Basic) AsBasics() []Basic { return []Basic{b} }

// UnifyOverloads intersects two overloads. ok is false iff the
// intersection is empty.
func UnifyOverloads(a, b Overload) (Overload, bool) {
	switch a := a.(type) {
	case Basic:
		switch b := b.(type) {
		case Basic:
			if a == b {
				return a, true
			}
			return nil, false
		case Composite:
			return basicInComposite(a, b)
		}
	case Composite:
		switch b := b.(type) {
		case Basic:
			return basicInComposite(b, a)
		case Composite:
			return a.unify(b), true
		}
	}
	return nil, false
}

func basicInComposite(b Basic, c Composite) (Overload, bool) {
	for _, x := range c.AsBasics() {
		if x == b {
			return b, true
		}
	}
	return nil, false
}

// EqualityBasics removes real (the only non-equality basic) from the
// overload; ok is false when nothing remains.
func EqualityBasics(ov Overload) (Overload, bool) {
	switch ov := ov.(type) {
	case Basic:
		if ov == BasicReal {
			return nil, false
		}
		return ov, true
	case Composite:
		switch ov {
		case RealInt:
			return BasicInt, true
		case Num:
			return WordInt, true
		case NumTxt:
			return NumTxtEq, true
		default:
			return ov, true
		}
	}
	return nil, false
}

// DefaultBasic is the basic an unresolved overloaded variable defaults to
// at the end of a top-level declaration: int when the overload admits it,
// otherwise the overload's first basic.
func DefaultBasic(ov Overload) Basic {
	basics := ov.AsBasics()
	for _, b := range basics {
		if b == BasicInt {
			return b
		}
	}
	return basics[0]
}
