package statics

import (
	"fmt"

	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// The enrichment judgment: got enriches want when every name in want is
// present in got with a compatible meaning. Enrichment never mutates the
// main substitution; type-function comparisons run in scratch
// substitutions.

// enrichErr is the first failure of an enrichment walk. Kind is one of
// the sub-failure kinds; the message names the offending item.
type enrichErr struct {
	kind string
	msg  string
}

func (e *enrichErr) Error() string { return e.msg }

func enrichMissing(item Item, name hir.Name) *enrichErr {
	return &enrichErr{kind: "missing", msg: fmt.Sprintf("missing %s: %s", item, name)}
}

func enrichIdStatus(name hir.Name) *enrichErr {
	return &enrichErr{kind: "id-status", msg: fmt.Sprintf("incompatible identifier status: %s", name)}
}

func enrichTyFcn(name hir.Name) *enrichErr {
	return &enrichErr{kind: "ty-fcn", msg: fmt.Sprintf("type functions disagree: %s", name)}
}

func enrichCtors(name hir.Name) *enrichErr {
	return &enrichErr{kind: "ctors", msg: fmt.Sprintf("datatype constructors disagree: %s", name)}
}

// enrich walks want in deterministic order: structures, then types, then
// values. The first failure wins.
func (st *st) enrich(got, want *types.Env) *enrichErr {
	for _, name := range want.StrEnv.OrderedNames() {
		gotStr, ok := got.StrEnv[name]
		if !ok {
			return enrichMissing(ItemStruct, name)
		}
		if err := st.enrich(gotStr, want.StrEnv[name]); err != nil {
			return err
		}
	}
	for _, name := range want.TyEnv.OrderedNames() {
		gotTy, ok := got.TyEnv[name]
		if !ok {
			return enrichMissing(ItemTy, name)
		}
		if err := st.enrichTyInfo(name, gotTy, want.TyEnv[name]); err != nil {
			return err
		}
	}
	for _, name := range want.ValEnv.OrderedNames() {
		gotVal, ok := got.ValEnv[name]
		if !ok {
			return enrichMissing(ItemVal, name)
		}
		if err := st.enrichValInfo(name, gotVal, want.ValEnv[name]); err != nil {
			return err
		}
	}
	return nil
}

func (st *st) enrichValInfo(name hir.Name, got, want *types.ValInfo) *enrichErr {
	// a want-side plain value is satisfied by any status; otherwise the
	// kinds must agree.
	if want.IdStatus.Kind != types.StatusVal && !got.IdStatus.SameKindAs(want.IdStatus) {
		return enrichIdStatus(name)
	}
	if !st.generalizes(got.TyScheme, want.TyScheme) {
		return enrichTyFcn(name)
	}
	return nil
}

func (st *st) enrichTyInfo(name hir.Name, got, want *types.TyInfo) *enrichErr {
	if !st.tyFcnEq(got.TyScheme, want.TyScheme) {
		return enrichTyFcn(name)
	}
	if len(want.ValEnv) == 0 {
		return nil
	}
	// a generative want with constructors demands exactly the same
	// constructors.
	gotNames := got.ValEnv.OrderedNames()
	wantNames := want.ValEnv.OrderedNames()
	if len(gotNames) != len(wantNames) {
		return enrichCtors(name)
	}
	for i, ctor := range wantNames {
		if gotNames[i] != ctor {
			return enrichCtors(name)
		}
		gotVi := got.ValEnv[ctor]
		wantVi := want.ValEnv[ctor]
		if !gotVi.IdStatus.SameKindAs(wantVi.IdStatus) {
			return enrichCtors(name)
		}
		if !st.tyFcnEq(gotVi.TyScheme, wantVi.TyScheme) {
			return enrichCtors(name)
		}
	}
	return nil
}

// tyFcnEq decides equality of type functions: each generalizes the
// other.
func (st *st) tyFcnEq(got, want types.TyScheme) bool {
	if got.Arity() != want.Arity() {
		return false
	}
	return st.generalizes(got, want) && st.generalizes(want, got)
}

// generalizes reports whether a is at least as general as b: some
// instance of a equals b's body with b's bound variables held rigid. The
// unification runs in a scratch substitution.
func (st *st) generalizes(a, b types.TyScheme) bool {
	// schemes built before this call may still mention solved meta vars;
	// resolve them against the main substitution first.
	a = types.TyScheme{BoundVars: a.BoundVars, Ty: st.subst.Zonk(a.Ty)}
	b = types.TyScheme{BoundVars: b.BoundVars, Ty: st.subst.Zonk(b.Ty)}

	scratch := types.NewSubst()
	u := types.NewUnifier(st.syms, scratch)

	// skolemize b: bound vars become fresh fixed vars.
	skolems := make([]types.Ty, b.Arity())
	for i := range skolems {
		fv := st.fixedGen.Fresh(hir.NewName("'?"))
		if _, eq := b.BoundVars[i].(types.EqualityKind); eq {
			fv.Equality = true
		}
		skolems[i] = fv
	}
	rigid := b.Apply(skolems)

	inst := types.Instantiate(&st.metaGen, scratch, a)
	return u.Unify(inst, rigid) == nil
}
