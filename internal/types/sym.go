package types

import (
	"fmt"

	"github.com/sunholo/smlcheck/internal/hir"
)

// Sym is a generative type constructor identity: a dense index into a
// Syms store. Equality is by index. The primitive syms occupy a reserved
// prefix in a documented order.
type Sym int

// Reserved primitive syms. Keep this order in sync with basis
// construction: EXN is "weird" (slot 0, no TyInfo of its own), the rest
// are installed by the minimal basis.
const (
	SymExn Sym = iota
	SymInt
	SymWord
	SymReal
	SymChar
	SymString
	SymBool
	SymList
	SymRef
)

// numWeird is the count of syms with no TyInfo entry; there is only one,
// and it is EXN.
const numWeird = 1

func (s Sym) idx() int { return int(s) - numWeird }

// GeneratedAfter reports whether this sym was generated by a Syms after
// that Syms generated the marker. EXN never counts.
func (s Sym) GeneratedAfter(m SymsMarker) bool {
	return s != SymExn && s.idx() >= int(m)
}

// Primitive names, for display of the reserved prefix before the basis
// installs real TyInfo.
var primitiveNames = map[Sym]string{
	SymExn:    "exn",
	SymInt:    "int",
	SymWord:   "word",
	SymReal:   "real",
	SymChar:   "char",
	SymString: "string",
	SymBool:   "bool",
	SymList:   "list",
	SymRef:    "ref",
}

// Equality is a sym's equality admissibility verdict.
type Equality int

const (
	// EqualityAlways admits equality regardless of arguments (e.g. ref).
	EqualityAlways Equality = iota
	// EqualitySometimes admits equality when all arguments do.
	EqualitySometimes
	// EqualityNever never admits equality (e.g. real, functions).
	EqualityNever
)

// SymInfo is everything recorded about a generated type constructor.
type SymInfo struct {
	Path     hir.Path
	TyInfo   TyInfo
	Equality Equality
}

// ExnInfo is everything recorded about a generated exception.
type ExnInfo struct {
	Path  hir.Path
	Param Ty
}

// Exn is a generative exception identity, in a separate namespace from
// Sym.
type Exn int

// Overloads records, per basic overload class, the syms admissible for
// that class.
type Overloads struct {
	Int    []Sym
	Real   []Sym
	Word   []Sym
	String []Sym
	Char   []Sym
}

// ForBasic returns the registry for one basic class.
func (o *Overloads) ForBasic(b Basic) []Sym {
	switch b {
	case BasicInt:
		return o.Int
	case BasicReal:
		return o.Real
	case BasicWord:
		return o.Word
	case BasicString:
		return o.String
	case BasicChar:
		return o.Char
	default:
		return nil
	}
}

// Add registers a sym for a basic class.
func (o *Overloads) Add(b Basic, s Sym) {
	switch b {
	case BasicInt:
		o.Int = append(o.Int, s)
	case BasicReal:
		o.Real = append(o.Real, s)
	case BasicWord:
		o.Word = append(o.Word, s)
	case BasicString:
		o.String = append(o.String, s)
	case BasicChar:
		o.Char = append(o.Char, s)
	}
}

// Syms hands out fresh Sym and Exn identities and records their metadata.
// The zero value is empty; it lacks even the built-in types, which the
// minimal basis installs.
type Syms struct {
	syms      []SymInfo
	exns      []ExnInfo
	overloads Overloads
	pending   int
}

// NewSyms returns an empty store.
func NewSyms() *Syms { return &Syms{} }

// StartedSym is the linear handle returned by Start. It must be consumed
// by exactly one Finish; Syms.PendingStarts exposes the outstanding count
// so tests can assert every Start was finished.
type StartedSym struct {
	sym  Sym
	done bool
}

// Sym returns the reserved identity.
func (s *StartedSym) Sym() Sym { return s.sym }

// Start reserves a fresh sym with a placeholder TyInfo and sometimes
// equality. Datatype construction assumes sometimes equality; Finish may
// downgrade it once the constructors are known.
func (s *Syms) Start(path hir.Path) *StartedSym {
	s.syms = append(s.syms, SymInfo{
		Path:     path,
		TyInfo:   TyInfo{TyScheme: Mono(None)},
		Equality: EqualitySometimes,
	})
	s.pending++
	// sym index is len after push because of the EXN slot.
	return &StartedSym{sym: Sym(len(s.syms))}
}

// Finish installs the real TyInfo and equality verdict at the reserved
// slot. Calling Finish twice on the same handle is a programmer error and
// panics.
func (s *Syms) Finish(started *StartedSym, tyInfo TyInfo, equality Equality) {
	if started.done {
		panic(fmt.Sprintf("types: Finish called twice for %v", started.sym))
	}
	started.done = true
	s.pending--
	info := &s.syms[started.sym.idx()]
	info.TyInfo = tyInfo
	info.Equality = equality
}

// PendingStarts is the number of Start calls not yet matched by Finish.
func (s *Syms) PendingStarts() int { return s.pending }

// Get returns the info for a sym. ok is false iff sym is EXN, which has
// no TyInfo.
func (s *Syms) Get(sym Sym) (*SymInfo, bool) {
	if sym == SymExn {
		return nil, false
	}
	return &s.syms[sym.idx()], true
}

// Name returns the printable long name of a sym.
func (s *Syms) Name(sym Sym) string {
	if info, ok := s.Get(sym); ok {
		return info.Path.String()
	}
	return primitiveNames[sym]
}

// Equality returns a sym's equality verdict; EXN never admits equality.
func (s *Syms) Equality(sym Sym) Equality {
	if info, ok := s.Get(sym); ok {
		return info.Equality
	}
	return EqualityNever
}

// InsertExn allocates a fresh exception identity.
func (s *Syms) InsertExn(path hir.Path, param Ty) Exn {
	ret := Exn(len(s.exns))
	s.exns = append(s.exns, ExnInfo{Path: path, Param: param})
	return ret
}

// GetExn returns the info for an exception.
func (s *Syms) GetExn(exn Exn) *ExnInfo { return &s.exns[int(exn)] }

// SymsMarker marks a point in sym generation; see Sym.GeneratedAfter.
type SymsMarker int

// Mark returns a marker for the current generation point.
func (s *Syms) Mark() SymsMarker { return SymsMarker(len(s.syms)) }

// Overloads returns the overload registries.
func (s *Syms) Overloads() *Overloads { return &s.overloads }

// IsOverloadSym reports whether sym is admissible for some basic of ov.
func (s *Syms) IsOverloadSym(ov Overload, sym Sym) bool {
	for _, b := range ov.AsBasics() {
		for _, x := range s.overloads.ForBasic(b) {
			if x == sym {
				return true
			}
		}
	}
	return false
}
