package types

import (
	"fmt"
	"sort"

	"github.com/sunholo/smlcheck/internal/hir"
)

// IdStatusKind distinguishes plain values, constructors, and exception
// constructors.
type IdStatusKind int

const (
	StatusVal IdStatusKind = iota
	StatusCon
	StatusExn
)

func (k IdStatusKind) String() string {
	switch k {
	case StatusVal:
		return "a value"
	case StatusCon:
		return "a constructor"
	case StatusExn:
		return "an exception"
	default:
		return "unknown"
	}
}

// IdStatus is a value's identity status; Exn is meaningful only when
// Kind is StatusExn.
type IdStatus struct {
	Kind IdStatusKind
	Exn  Exn
}

// SameKindAs ignores exception identity.
func (s IdStatus) SameKindAs(other IdStatus) bool { return s.Kind == other.Kind }

// ValStatus, ConStatus, ExnStatus are the constructors.
func ValStatus() IdStatus        { return IdStatus{Kind: StatusVal} }
func ConStatus() IdStatus        { return IdStatus{Kind: StatusCon} }
func ExnStatus(exn Exn) IdStatus { return IdStatus{Kind: StatusExn, Exn: exn} }

// ValInfo is everything an environment records about a value binding.
type ValInfo struct {
	TyScheme TyScheme
	IdStatus IdStatus
	// Defs is a set of definition sites; or-patterns give a binding more
	// than one.
	Defs       map[hir.Range]bool
	Disallowed bool
}

// DefSet builds a definition-site set.
func DefSet(ranges ...hir.Range) map[hir.Range]bool {
	set := make(map[hir.Range]bool, len(ranges))
	for _, r := range ranges {
		set[r] = true
	}
	return set
}

// TyInfo is everything an environment records about a type binding: its
// type function, its constructors (empty for aliases and abstract
// types), and where it was defined.
type TyInfo struct {
	TyScheme TyScheme
	ValEnv   ValEnv
	Def      hir.Range
}

// The environment maps. All iteration must go through the Ordered*
// helpers so that diagnostics are reproducible.
type (
	StrEnv map[hir.Name]*Env
	TyEnv  map[hir.Name]*TyInfo
	ValEnv map[hir.Name]*ValInfo
)

// Env is the nested record of structures, types, and values.
type Env struct {
	StrEnv StrEnv
	TyEnv  TyEnv
	ValEnv ValEnv
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{StrEnv: StrEnv{}, TyEnv: TyEnv{}, ValEnv: ValEnv{}}
}

// Clone returns a per-map copy; TyInfo and ValInfo values are shared
// with e, not copied.
func (e *Env) Clone() *Env {
	ret := NewEnv()
	for k, v := range e.StrEnv {
		ret.StrEnv[k] = v
	}
	for k, v := range e.TyEnv {
		ret.TyEnv[k] = v
	}
	for k, v := range e.ValEnv {
		ret.ValEnv[k] = v
	}
	return ret
}

// Append adds every binding of other to e, overwriting on conflict
// (right bias).
func (e *Env) Append(other *Env) {
	for k, v := range other.StrEnv {
		e.StrEnv[k] = v
	}
	for k, v := range other.TyEnv {
		e.TyEnv[k] = v
	}
	for k, v := range other.ValEnv {
		e.ValEnv[k] = v
	}
}

// Consolidate is a packing hint; semantically a no-op.
func (e *Env) Consolidate() {}

// GetEnv walks a dotted prefix through nested structure environments.
// On failure it returns the first missing name.
func (e *Env) GetEnv(prefix []hir.Name) (*Env, hir.Name, bool) {
	cur := e
	for _, name := range prefix {
		next, ok := cur.StrEnv[name]
		if !ok {
			return nil, name, false
		}
		cur = next
	}
	return cur, "", true
}

// Ordered iteration helpers.

func orderedNames(names []hir.Name) []hir.Name {
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// OrderedNames returns the keys in deterministic order.
func (m StrEnv) OrderedNames() []hir.Name {
	names := make([]hir.Name, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	return orderedNames(names)
}

func (m TyEnv) OrderedNames() []hir.Name {
	names := make([]hir.Name, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	return orderedNames(names)
}

func (m ValEnv) OrderedNames() []hir.Name {
	names := make([]hir.Name, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	return orderedNames(names)
}

// Sig is a signature: an environment together with the set of its
// flexible (abstract) type names, which signature matching realizes
// against a structure.
type Sig struct {
	TyNames map[Sym]bool
	Env     *Env
}

// OrderedTyNames returns the flexible names in generation order.
func (s *Sig) OrderedTyNames() []Sym {
	syms := make([]Sym, 0, len(s.TyNames))
	for sym := range s.TyNames {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// FunSig is a functor signature: the parameter signature plus the body
// environment and the body's generative type names.
type FunSig struct {
	Param       *Sig
	BodyTyNames map[Sym]bool
	Body        *Env
}

// OrderedBodyTyNames returns the body's generative names in generation
// order.
func (f *FunSig) OrderedBodyTyNames() []Sym {
	syms := make([]Sym, 0, len(f.BodyTyNames))
	for sym := range f.BodyTyNames {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

type (
	SigEnv map[hir.Name]*Sig
	FunEnv map[hir.Name]*FunSig
)

func (m SigEnv) OrderedNames() []hir.Name {
	names := make([]hir.Name, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	return orderedNames(names)
}

func (m FunEnv) OrderedNames() []hir.Name {
	names := make([]hir.Name, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	return orderedNames(names)
}

// Bs is a basis: the top-level context of a program.
type Bs struct {
	Env    *Env
	SigEnv SigEnv
	FunEnv FunEnv
}

// NewBs returns an empty basis.
func NewBs() *Bs {
	return &Bs{Env: NewEnv(), SigEnv: SigEnv{}, FunEnv: FunEnv{}}
}

// Append adds every binding of other onto bs, right biased.
func (bs *Bs) Append(other *Bs) {
	bs.Env.Append(other.Env)
	for k, v := range other.SigEnv {
		bs.SigEnv[k] = v
	}
	for k, v := range other.FunEnv {
		bs.FunEnv[k] = v
	}
}

// Consolidate is a packing hint; semantically a no-op.
func (bs *Bs) Consolidate() {
	bs.Env.Consolidate()
}

// Namespace selects which top-level map Bs.Add works on.
type Namespace int

const (
	NamespaceStructure Namespace = iota
	NamespaceSignature
	NamespaceFunctor
)

// Add copies the item named otherName from other into bs under name.
// It reports whether the item existed.
func (bs *Bs) Add(ns Namespace, name hir.Name, other *Bs, otherName hir.Name) bool {
	switch ns {
	case NamespaceStructure:
		env, ok := other.Env.StrEnv[otherName]
		if !ok {
			return false
		}
		bs.Env.StrEnv[name] = env
		return true
	case NamespaceSignature:
		sig, ok := other.SigEnv[otherName]
		if !ok {
			return false
		}
		bs.SigEnv[name] = sig
		return true
	case NamespaceFunctor:
		fn, ok := other.FunEnv[otherName]
		if !ok {
			return false
		}
		bs.FunEnv[name] = fn
		return true
	default:
		return false
	}
}

// DisallowVal marks the value at path as disallowed; later uses report a
// diagnostic. The error describes why the path could not be disallowed.
func (bs *Bs) DisallowVal(path hir.Path) error {
	env, missing, ok := bs.Env.GetEnv(path.Prefix)
	if !ok {
		return fmt.Errorf("undefined structure: %s", missing)
	}
	vi, ok := env.ValEnv[path.Last]
	if !ok {
		return fmt.Errorf("undefined value: %s", path.Last)
	}
	if vi.Disallowed {
		return fmt.Errorf("already disallowed: %s", path)
	}
	clone := *vi
	clone.Disallowed = true
	env.ValEnv[path.Last] = &clone
	return nil
}
