// Package types defines the type representation, substitution engine,
// unification, environments, and generalization used by the statics.
package types

import (
	"github.com/sunholo/smlcheck/internal/hir"
)

// Ty is a type. The variants are None (a placeholder for "unknown or
// already reported", which unifies with anything), BoundVar, MetaVar,
// FixedVar, Record, Con, and Fn.
type Ty interface {
	isTy()
	// Desc is a short phrase describing the head of the type, for
	// diagnostics.
	Desc() string
}

type noneTy struct{}

// None is the placeholder type. It is a singleton.
var None Ty = noneTy{}

func (noneTy) isTy()        {}
func (noneTy) Desc() string { return "an unknown type" }

// BoundVar is a de Bruijn index into the enclosing type scheme's binder.
// It may only appear inside a TyScheme body.
type BoundVar struct {
	Index int
}

func (*BoundVar) isTy()        {}
func (*BoundVar) Desc() string { return "a bound type variable" }

// MetaVar is a unification variable, generated by the inference algorithm
// and to be substituted for a real type. Identity is the globally fresh
// ID; kind constraints live in the Subst.
type MetaVar struct {
	ID int
}

func (*MetaVar) isTy()        {}
func (*MetaVar) Desc() string { return "an unsolved type variable" }

// FixedVar is a user-written type variable made rigid at its binding
// site. Two fixed vars unify only when they are the same allocation.
type FixedVar struct {
	ID       int
	Name     hir.Name
	Equality bool
}

func (*FixedVar) isTy()        {}
func (*FixedVar) Desc() string { return "a fixed type variable" }

// RecordRows maps labels to types. Iterate with OrderedLabs for
// deterministic order.
type RecordRows map[hir.Lab]Ty

// Record is a record (or tuple) type.
type Record struct {
	Rows RecordRows
}

func (*Record) isTy()        {}
func (*Record) Desc() string { return "a record or tuple type" }

// Con applies a type constructor to arguments; the zero-argument case is
// the common atom. Use Zero to construct it.
type Con struct {
	Args []Ty
	Sym  Sym
}

func (*Con) isTy()        {}
func (*Con) Desc() string { return "a constructor type" }

// Fn is a function type.
type Fn struct {
	Param Ty
	Res   Ty
}

func (*Fn) isTy()        {}
func (*Fn) Desc() string { return "a function type" }

// Zero returns a Con with zero arguments.
func Zero(sym Sym) Ty { return &Con{Sym: sym} }

// Fun returns the function type param -> res.
func Fun(param, res Ty) Ty { return &Fn{Param: param, Res: res} }

// Tuple returns the record type with numeric labels 1..n.
func Tuple(tys ...Ty) Ty {
	rows := make(RecordRows, len(tys))
	for i, t := range tys {
		rows[hir.TupleLab(i+1)] = t
	}
	return &Record{Rows: rows}
}

// Unit is the empty record type.
func Unit() Ty { return &Record{Rows: RecordRows{}} }

// Pair returns the 2-tuple type.
func Pair(a, b Ty) Ty { return Tuple(a, b) }

// OrderedLabs returns the labels of rows in deterministic order: numeric
// labels first in numeric order, then named labels lexicographically.
func OrderedLabs(rows RecordRows) []hir.Lab {
	labs := make([]hir.Lab, 0, len(rows))
	for lab := range rows {
		labs = append(labs, lab)
	}
	hir.SortLabs(labs)
	return labs
}

// TyVarKind constrains what may be substituted for a type variable slot:
// nil (in a BoundVars list) means a plain variable.
type TyVarKind interface{ isTyVarKind() }

// EqualityKind admits only equality types.
type EqualityKind struct{}

// OverloadKind admits only the overload's basic types.
type OverloadKind struct {
	Overload Overload
}

// RecordKind admits only records containing at least the given rows. The
// range is kept for error reporting on unresolved flex records.
type RecordKind struct {
	Rows  RecordRows
	Range hir.Range
}

func (EqualityKind) isTyVarKind() {}
func (OverloadKind) isTyVarKind() {}
func (RecordKind) isTyVarKind()   {}

// BoundVars records, per bound slot, the kind of variable it is; a nil
// entry is a plain variable. The length is the scheme's arity.
type BoundVars []TyVarKind

// TyScheme is a possibly-empty prefix of bound-variable kinds together
// with a body type.
type TyScheme struct {
	BoundVars BoundVars
	Ty        Ty
}

// Mono returns the scheme binding zero variables.
func Mono(ty Ty) TyScheme { return TyScheme{Ty: ty} }

// NAry returns the scheme for an n-ary type function whose body applies
// sym to the bound variables in order.
func NAry(kinds BoundVars, sym Sym) TyScheme {
	args := make([]Ty, len(kinds))
	for i := range kinds {
		args[i] = &BoundVar{Index: i}
	}
	return TyScheme{BoundVars: kinds, Ty: &Con{Args: args, Sym: sym}}
}

// One returns a scheme binding one variable of the given kind; f receives
// the bound variable and builds the body.
func One(kind TyVarKind, f func(Ty) Ty) TyScheme {
	return TyScheme{BoundVars: BoundVars{kind}, Ty: f(&BoundVar{Index: 0})}
}

// Arity is the number of bound variables.
func (s TyScheme) Arity() int { return len(s.BoundVars) }

// substBound replaces bound variables by args in ty. len(args) must be at
// least the largest index occurring.
func substBound(ty Ty, args []Ty) Ty {
	switch t := ty.(type) {
	case noneTy, *MetaVar, *FixedVar:
		return ty
	case *BoundVar:
		return args[t.Index]
	case *Record:
		rows := make(RecordRows, len(t.Rows))
		for lab, inner := range t.Rows {
			rows[lab] = substBound(inner, args)
		}
		return &Record{Rows: rows}
	case *Con:
		as := make([]Ty, len(t.Args))
		for i, a := range t.Args {
			as[i] = substBound(a, args)
		}
		return &Con{Args: as, Sym: t.Sym}
	case *Fn:
		return &Fn{Param: substBound(t.Param, args), Res: substBound(t.Res, args)}
	default:
		return ty
	}
}

// Apply instantiates the scheme body at the given arguments. The caller
// must pass exactly Arity arguments.
func (s TyScheme) Apply(args []Ty) Ty {
	if len(args) != s.Arity() {
		panic("types: scheme applied at the wrong arity")
	}
	return substBound(s.Ty, args)
}

