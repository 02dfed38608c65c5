package statics

import (
	"github.com/sunholo/smlcheck/internal/diag"
	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// st is the mutable elaboration state: the substitution, the sym store,
// the fresh-variable generators, and the diagnostics sink. One st lives
// for the duration of one Check call.
type st struct {
	syms     *types.Syms
	subst    *types.Subst
	metaGen  types.MetaGen
	fixedGen types.FixedGen
	ar       *hir.Arenas
	errors   []diag.Error
	// implicit collects type variables implicitly bound by the val
	// declaration currently being elaborated; nil outside one.
	implicit *[]*types.FixedVar
}

func newSt(syms *types.Syms, ar *hir.Arenas) *st {
	return &st{syms: syms, subst: types.NewSubst(), ar: ar}
}

func (st *st) unifier() *types.Unifier {
	return types.NewUnifier(st.syms, st.subst)
}

// unify records a diagnostic at r on failure; elaboration continues.
func (st *st) unify(r hir.Range, want, got types.Ty) {
	if err := st.unifier().Unify(want, got); err != nil {
		st.errUnify(r, err)
	}
}

func (st *st) fresh() types.Ty { return st.metaGen.Fresh() }

func (st *st) freshKinded(kind types.TyVarKind) types.Ty {
	return st.metaGen.FreshKinded(st.subst, kind)
}

func (st *st) instantiate(scheme types.TyScheme) types.Ty {
	return types.Instantiate(&st.metaGen, st.subst, scheme)
}

// cx is the elaboration context: the current environment and the fixed
// type variables in scope. Contexts are passed by value; scoping clones
// the parts it extends.
type cx struct {
	env   *types.Env
	fixed map[hir.Name]*types.FixedVar
}

func newCx(env *types.Env) cx {
	return cx{env: env, fixed: map[hir.Name]*types.FixedVar{}}
}

// withEnv returns a context whose env extends the current one; mutations
// of the result do not leak into the parent scope.
func (c cx) withEnv() cx {
	return cx{env: c.env.Clone(), fixed: c.fixed}
}

// withFixed returns a context with additional fixed variables in scope.
func (c cx) withFixed(vars map[hir.Name]*types.FixedVar) cx {
	fixed := make(map[hir.Name]*types.FixedVar, len(c.fixed)+len(vars))
	for k, v := range c.fixed {
		fixed[k] = v
	}
	for k, v := range vars {
		fixed[k] = v
	}
	return cx{env: c.env, fixed: fixed}
}

// lookupVal resolves a value path; reports Undefined (and Disallowed) as
// needed. ok is false when the path did not resolve.
func (st *st) lookupVal(r hir.Range, c cx, path hir.Path) (*types.ValInfo, bool) {
	env, missing, ok := c.env.GetEnv(path.Prefix)
	if !ok {
		st.errUndefined(r, ItemStruct, missing)
		return nil, false
	}
	vi, ok := env.ValEnv[path.Last]
	if !ok {
		st.errUndefined(r, ItemVal, path.Last)
		return nil, false
	}
	if vi.Disallowed {
		st.errDisallowed(r, path)
	}
	return vi, true
}

// lookupValQuiet resolves a value path without reporting.
func lookupValQuiet(c cx, path hir.Path) (*types.ValInfo, bool) {
	env, _, ok := c.env.GetEnv(path.Prefix)
	if !ok {
		return nil, false
	}
	vi, ok := env.ValEnv[path.Last]
	return vi, ok
}

func (st *st) lookupTy(r hir.Range, c cx, path hir.Path) (*types.TyInfo, bool) {
	env, missing, ok := c.env.GetEnv(path.Prefix)
	if !ok {
		st.errUndefined(r, ItemStruct, missing)
		return nil, false
	}
	ti, ok := env.TyEnv[path.Last]
	if !ok {
		st.errUndefined(r, ItemTy, path.Last)
		return nil, false
	}
	return ti, true
}

func (st *st) lookupStr(r hir.Range, c cx, path hir.Path) (*types.Env, bool) {
	env, missing, ok := c.env.GetEnv(path.Prefix)
	if !ok {
		st.errUndefined(r, ItemStruct, missing)
		return nil, false
	}
	inner, ok := env.StrEnv[path.Last]
	if !ok {
		st.errUndefined(r, ItemStruct, path.Last)
		return nil, false
	}
	return inner, true
}
