package statics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

func newEnrichSt(t *testing.T) *st {
	t.Helper()
	syms, _ := Minimal()
	return newSt(syms, hir.NewArenas())
}

func monoVal(ty types.Ty) *types.ValInfo {
	return &types.ValInfo{TyScheme: types.Mono(ty), IdStatus: types.ValStatus(), Defs: types.DefSet()}
}

func polyVal(scheme types.TyScheme) *types.ValInfo {
	return &types.ValInfo{TyScheme: scheme, IdStatus: types.ValStatus(), Defs: types.DefSet()}
}

func envWithVal(name string, vi *types.ValInfo) *types.Env {
	env := types.NewEnv()
	env.ValEnv[hir.NewName(name)] = vi
	return env
}

func TestEnrichEmptyWant(t *testing.T) {
	st := newEnrichSt(t)
	got := envWithVal("x", monoVal(types.Zero(types.SymInt)))
	assert.Nil(t, st.enrich(got, types.NewEnv()), "anything enriches the empty env")
}

func TestEnrichMissingValue(t *testing.T) {
	st := newEnrichSt(t)
	want := envWithVal("x", monoVal(types.Zero(types.SymInt)))
	err := st.enrich(types.NewEnv(), want)
	require.NotNil(t, err)
	assert.Contains(t, err.msg, "missing value: x")
}

func TestEnrichValueTypes(t *testing.T) {
	st := newEnrichSt(t)
	intTy := types.Zero(types.SymInt)

	// same monotype.
	assert.Nil(t, st.enrich(envWithVal("x", monoVal(intTy)), envWithVal("x", monoVal(intTy))))

	// mismatched monotype.
	err := st.enrich(envWithVal("x", monoVal(types.Zero(types.SymBool))), envWithVal("x", monoVal(intTy)))
	require.NotNil(t, err)
	assert.Contains(t, err.msg, "type functions disagree")
}

func TestEnrichPolymorphicSatisfiesMono(t *testing.T) {
	st := newEnrichSt(t)
	intTy := types.Zero(types.SymInt)
	idScheme := types.One(nil, func(a types.Ty) types.Ty { return types.Fun(a, a) })

	// 'a -> 'a enriches int -> int, not vice versa.
	assert.Nil(t, st.enrich(envWithVal("f", polyVal(idScheme)), envWithVal("f", monoVal(types.Fun(intTy, intTy)))))
	err := st.enrich(envWithVal("f", monoVal(types.Fun(intTy, intTy))), envWithVal("f", polyVal(idScheme)))
	assert.NotNil(t, err)
}

func TestEnrichIdStatus(t *testing.T) {
	st := newEnrichSt(t)
	intTy := types.Zero(types.SymInt)

	con := &types.ValInfo{TyScheme: types.Mono(intTy), IdStatus: types.ConStatus(), Defs: types.DefSet()}
	val := monoVal(intTy)

	// a want-side Val is satisfied by a constructor.
	assert.Nil(t, st.enrich(envWithVal("x", con), envWithVal("x", val)))
	// a want-side Con is not satisfied by a plain value.
	err := st.enrich(envWithVal("x", val), envWithVal("x", con))
	require.NotNil(t, err)
	assert.Contains(t, err.msg, "incompatible identifier status")
}

func TestEnrichStructures(t *testing.T) {
	st := newEnrichSt(t)
	intTy := types.Zero(types.SymInt)

	gotInner := envWithVal("x", monoVal(intTy))
	got := types.NewEnv()
	got.StrEnv[hir.NewName("S")] = gotInner

	wantInner := envWithVal("x", monoVal(intTy))
	want := types.NewEnv()
	want.StrEnv[hir.NewName("S")] = wantInner

	assert.Nil(t, st.enrich(got, want))

	want.StrEnv[hir.NewName("T")] = types.NewEnv()
	err := st.enrich(got, want)
	require.NotNil(t, err)
	assert.Contains(t, err.msg, "missing structure: T")
}

func TestEnrichDatatypeCtors(t *testing.T) {
	st := newEnrichSt(t)

	mkTy := func(ctorName string) *types.TyInfo {
		started := st.syms.Start(hir.PathOf("t"))
		sym := started.Sym()
		scheme := types.NAry(types.BoundVars{}, sym)
		ve := types.ValEnv{}
		ve[hir.NewName(ctorName)] = &types.ValInfo{
			TyScheme: scheme, IdStatus: types.ConStatus(), Defs: types.DefSet(),
		}
		ti := types.TyInfo{TyScheme: scheme, ValEnv: ve}
		st.syms.Finish(started, ti, types.EqualityAlways)
		return &types.TyInfo{TyScheme: scheme, ValEnv: ve}
	}

	gotTi := mkTy("A")
	got := types.NewEnv()
	got.TyEnv[hir.NewName("t")] = gotTi

	// want the same datatype: ok.
	want := types.NewEnv()
	want.TyEnv[hir.NewName("t")] = gotTi
	assert.Nil(t, st.enrich(got, want))

	// want a datatype with different constructors: the type functions
	// already disagree (distinct syms), which is the first failure.
	want = types.NewEnv()
	want.TyEnv[hir.NewName("t")] = mkTy("B")
	assert.NotNil(t, st.enrich(got, want))

	// same type function, differing constructor names.
	wantTi := &types.TyInfo{TyScheme: gotTi.TyScheme, ValEnv: types.ValEnv{}}
	wantTi.ValEnv[hir.NewName("B")] = &types.ValInfo{
		TyScheme: gotTi.TyScheme, IdStatus: types.ConStatus(), Defs: types.DefSet(),
	}
	want = types.NewEnv()
	want.TyEnv[hir.NewName("t")] = wantTi
	err := st.enrich(got, want)
	require.NotNil(t, err)
	assert.Contains(t, err.msg, "constructors disagree")
}

// Enrich transitivity on value environments: A ≻ B and B ≻ C imply
// A ≻ C.
func TestEnrichTransitivity(t *testing.T) {
	st := newEnrichSt(t)
	intTy := types.Zero(types.SymInt)
	idScheme := types.One(nil, func(a types.Ty) types.Ty { return types.Fun(a, a) })

	a := envWithVal("f", polyVal(idScheme))
	a.ValEnv[hir.NewName("x")] = monoVal(intTy)
	b := envWithVal("f", polyVal(idScheme))
	c := envWithVal("f", monoVal(types.Fun(intTy, intTy)))

	require.Nil(t, st.enrich(a, b))
	require.Nil(t, st.enrich(b, c))
	assert.Nil(t, st.enrich(a, c))
}

// Enrichment must not mutate the main substitution.
func TestEnrichDoesNotMutateSubst(t *testing.T) {
	st := newEnrichSt(t)
	mv := st.metaGen.Fresh()

	got := envWithVal("x", monoVal(mv))
	want := envWithVal("x", monoVal(types.Zero(types.SymInt)))
	st.enrich(got, want)

	_, solved := st.subst.Solution(mv)
	assert.False(t, solved, "enrichment unifies in a scratch substitution only")
}
