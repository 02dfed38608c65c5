// Package statics elaborates HIR declarations against a basis, producing
// the exported basis and a list of diagnostics. It is a pure function of
// its inputs apart from the fresh names it mints in the Syms it is given.
package statics

import (
	"github.com/sunholo/smlcheck/internal/diag"
	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// Result of elaborating one unit: the exported basis (to be appended
// onto the incoming one by the caller) and the diagnostics, in emission
// order.
type Result struct {
	Bs     *types.Bs
	Errors []diag.Error
}

// Check elaborates the root declarations of one unit against bs,
// allocating generative names in syms. It never panics on user input and
// never stops at a type error; the faulty subtree's type becomes the
// unknown type, which unifies with anything.
func Check(syms *types.Syms, bs *types.Bs, ar *hir.Arenas, root []hir.StrDecIdx) Result {
	st := newSt(syms, ar)

	sigEnv := types.SigEnv{}
	for name, sig := range bs.SigEnv {
		sigEnv[name] = sig
	}
	funEnv := types.FunEnv{}
	for name, fn := range bs.FunEnv {
		funEnv[name] = fn
	}
	c := topCx{cx: newCx(bs.Env.Clone()), sigEnv: sigEnv, funEnv: funEnv}

	out := types.NewBs()
	for _, idx := range root {
		env := types.NewEnv()
		st.strDec(c, env, out, idx)
		st.finishTopDec(env, st.ar.StrDecRange(idx))
		c.env.Append(env)
		out.Env.Append(env)
	}

	return Result{Bs: out, Errors: st.errors}
}

// finishTopDec defaults the meta variables still reachable from a
// top-level declaration's exports so that none survive into the basis:
// overloaded variables default to their overload's default basic,
// row-constrained variables to the record they accumulated, and plain
// variables to unit with a value-restriction warning.
func (st *st) finishTopDec(env *types.Env, r hir.Range) {
	st.defaultEnv(env, r)
}

func (st *st) defaultEnv(env *types.Env, r hir.Range) {
	for _, name := range env.StrEnv.OrderedNames() {
		st.defaultEnv(env.StrEnv[name], r)
	}
	for _, name := range env.ValEnv.OrderedNames() {
		vi := env.ValEnv[name]
		zonked := st.subst.Zonk(vi.TyScheme.Ty)
		warned := false
		st.defaultMetaVars(zonked, r, name, &warned)
		vi.TyScheme = types.TyScheme{BoundVars: vi.TyScheme.BoundVars, Ty: st.subst.Zonk(zonked)}
	}
}

// defaultMetaVars walks a zonked type and solves every unsolved meta var
// it finds.
func (st *st) defaultMetaVars(ty types.Ty, r hir.Range, name hir.Name, warned *bool) {
	switch t := ty.(type) {
	case *types.MetaVar:
		if _, solved := st.subst.Solution(t); solved {
			return
		}
		switch kind := st.subst.Kind(t).(type) {
		case types.OverloadKind:
			basic := types.DefaultBasic(kind.Overload)
			syms := st.syms.Overloads().ForBasic(basic)
			if len(syms) == 0 {
				st.report(r, diag.OverloadResolution, diag.SeverityError,
					"no default type for overloaded "+kind.Overload.String())
				st.subst.Solve(t, types.None)
				return
			}
			st.subst.Solve(t, types.Zero(syms[0]))
		case types.RecordKind:
			rows := make(types.RecordRows, len(kind.Rows))
			for lab, inner := range kind.Rows {
				rows[lab] = st.subst.Zonk(inner)
			}
			st.subst.Solve(t, &types.Record{Rows: rows})
			for _, inner := range rows {
				st.defaultMetaVars(inner, r, name, warned)
			}
		default:
			if !*warned {
				st.warnDefaulted(r, name)
				*warned = true
			}
			st.subst.Solve(t, types.Unit())
		}
	case *types.Record:
		for _, lab := range types.OrderedLabs(t.Rows) {
			st.defaultMetaVars(t.Rows[lab], r, name, warned)
		}
	case *types.Con:
		for _, arg := range t.Args {
			st.defaultMetaVars(arg, r, name, warned)
		}
	case *types.Fn:
		st.defaultMetaVars(t.Param, r, name, warned)
		st.defaultMetaVars(t.Res, r, name, warned)
	}
}
