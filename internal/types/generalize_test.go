package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/smlcheck/internal/hir"
)

func TestGeneralizePlain(t *testing.T) {
	sub := NewSubst()
	var gen MetaGen
	a := gen.Fresh()

	scheme := Generalize(sub, nil, nil, Fun(a, a), false)
	require.Equal(t, 1, scheme.Arity())
	assert.Equal(t, "'a -> 'a", SchemeString(nil, scheme))
}

func TestGeneralizeSkipsEnvFree(t *testing.T) {
	sub := NewSubst()
	var gen MetaGen
	a := gen.Fresh()
	b := gen.Fresh()

	envFree := map[int]bool{a.ID: true}
	scheme := Generalize(sub, envFree, nil, Fun(a, b), false)
	assert.Equal(t, 1, scheme.Arity(), "only the variable not free in the context generalizes")
}

func TestGeneralizeExpansive(t *testing.T) {
	sub := NewSubst()
	var gen MetaGen
	a := gen.Fresh()

	scheme := Generalize(sub, nil, nil, Fun(a, a), true)
	assert.Equal(t, 0, scheme.Arity(), "the value restriction forbids generalizing")
}

func TestGeneralizeSkipsOverloaded(t *testing.T) {
	sub := NewSubst()
	var gen MetaGen
	ov := gen.FreshKinded(sub, OverloadKind{Overload: Num})

	scheme := Generalize(sub, nil, nil, Fun(ov, ov), false)
	assert.Equal(t, 0, scheme.Arity(), "overloaded variables await defaulting")
}

func TestGeneralizeEqualityKind(t *testing.T) {
	sub := NewSubst()
	var gen MetaGen
	eq := gen.FreshKinded(sub, EqualityKind{})

	scheme := Generalize(sub, nil, nil, Fun(eq, Zero(SymBool)), false)
	require.Equal(t, 1, scheme.Arity())
	assert.IsType(t, EqualityKind{}, scheme.BoundVars[0])
	assert.Equal(t, "''a -> bool", SchemeString(testSyms(t), scheme))
}

func TestGeneralizeFixedVars(t *testing.T) {
	sub := NewSubst()
	var fgen FixedGen
	a := fgen.Fresh(hir.NewName("'a"))

	scheme := Generalize(sub, nil, []*FixedVar{a}, Fun(a, a), false)
	require.Equal(t, 1, scheme.Arity())
	assert.Equal(t, "'a -> 'a", SchemeString(nil, scheme))

	// a fixed var not listed stays rigid.
	other := fgen.Fresh(hir.NewName("'b"))
	scheme = Generalize(sub, nil, []*FixedVar{a}, Fun(a, other), false)
	assert.Equal(t, 1, scheme.Arity())
}

// TestInstantiateRoundTrip: instantiating a generalized non-expansive
// type gives back the type up to fresh meta vars.
func TestInstantiateRoundTrip(t *testing.T) {
	syms := testSyms(t)
	sub := NewSubst()
	var gen MetaGen
	a := gen.Fresh()
	ty := Fun(a, &Con{Args: []Ty{a}, Sym: SymList})

	scheme := Generalize(sub, nil, nil, ty, false)
	inst := Instantiate(&gen, sub, scheme)

	// the instance unifies with a fresh copy of the original shape.
	b := gen.Fresh()
	want := Fun(b, &Con{Args: []Ty{b}, Sym: SymList})
	u := NewUnifier(syms, sub)
	require.NoError(t, u.Unify(want, inst))
	assert.Equal(t,
		TyString(syms, sub, sub.Apply(want)),
		TyString(syms, sub, sub.Apply(inst)))
}

func TestInstantiateKeepsKinds(t *testing.T) {
	syms := testSyms(t)
	sub := NewSubst()
	var gen MetaGen

	scheme := One(OverloadKind{Overload: Num}, func(a Ty) Ty { return Fun(Pair(a, a), a) })
	inst := Instantiate(&gen, sub, scheme)

	fn, ok := inst.(*Fn)
	require.True(t, ok)
	mv, ok := fn.Res.(*MetaVar)
	require.True(t, ok)
	kind, ok := sub.Kind(mv).(OverloadKind)
	require.True(t, ok)
	assert.ElementsMatch(t, Num.AsBasics(), kind.Overload.AsBasics())

	u := NewUnifier(syms, sub)
	assert.Error(t, u.Unify(mv, Zero(SymString)))
}

func TestFreeMetaVars(t *testing.T) {
	sub := NewSubst()
	var gen MetaGen
	a := gen.Fresh()
	b := gen.Fresh()

	env := NewEnv()
	env.ValEnv[hir.NewName("x")] = &ValInfo{TyScheme: Mono(Fun(a, Zero(SymInt))), IdStatus: ValStatus(), Defs: DefSet()}
	inner := NewEnv()
	inner.ValEnv[hir.NewName("y")] = &ValInfo{TyScheme: Mono(b), IdStatus: ValStatus(), Defs: DefSet()}
	env.StrEnv[hir.NewName("S")] = inner

	free := FreeMetaVars(sub, env)
	assert.True(t, free[a.ID])
	assert.True(t, free[b.ID])
	assert.Len(t, free, 2)
}
