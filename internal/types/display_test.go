package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunholo/smlcheck/internal/hir"
)

func TestTyString(t *testing.T) {
	syms := testSyms(t)
	intTy := Zero(SymInt)
	boolTy := Zero(SymBool)

	tests := []struct {
		name string
		ty   Ty
		want string
	}{
		{"atom", intTy, "int"},
		{"unit", Unit(), "unit"},
		{"none", None, "_"},
		{"fn", Fun(intTy, boolTy), "int -> bool"},
		{"fn right assoc", Fun(intTy, Fun(intTy, boolTy)), "int -> int -> bool"},
		{"fn param parens", Fun(Fun(intTy, intTy), boolTy), "(int -> int) -> bool"},
		{"tuple", Tuple(intTy, boolTy), "int * bool"},
		{"tuple in fn", Fun(Tuple(intTy, intTy), intTy), "int * int -> int"},
		{"list", &Con{Args: []Ty{intTy}, Sym: SymList}, "int list"},
		{"nested list", &Con{Args: []Ty{&Con{Args: []Ty{intTy}, Sym: SymList}}, Sym: SymList}, "int list list"},
		{"tuple of lists", Tuple(&Con{Args: []Ty{intTy}, Sym: SymList}, boolTy), "int list * bool"},
		{"record", &Record{Rows: RecordRows{hir.NameLab("x"): intTy, hir.NameLab("y"): boolTy}}, "{ x : int, y : bool }"},
		{"single numeric label", &Record{Rows: RecordRows{hir.TupleLab(1): intTy}}, "{ 1 : int }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TyString(syms, nil, tt.ty))
		})
	}
}

func TestSchemeStringBoundVars(t *testing.T) {
	syms := testSyms(t)
	scheme := TyScheme{
		BoundVars: BoundVars{nil, EqualityKind{}},
		Ty:        Fun(&BoundVar{Index: 0}, &BoundVar{Index: 1}),
	}
	assert.Equal(t, "'a -> ''b", SchemeString(syms, scheme))
}

func TestTyStringMetaKinds(t *testing.T) {
	syms := testSyms(t)
	sub := NewSubst()
	var gen MetaGen

	plain := gen.Fresh()
	assert.Equal(t, "?", TyString(syms, sub, plain))

	eq := gen.FreshKinded(sub, EqualityKind{})
	assert.Equal(t, "''?", TyString(syms, sub, eq))

	num := gen.FreshKinded(sub, OverloadKind{Overload: Num})
	assert.Equal(t, "<num>", TyString(syms, sub, num))

	row := gen.FreshKinded(sub, RecordKind{Rows: RecordRows{hir.NameLab("x"): Zero(SymInt)}})
	assert.Equal(t, "{ x : int, ... }", TyString(syms, sub, row))
}
