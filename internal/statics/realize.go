package statics

import (
	"fmt"

	"github.com/sunholo/smlcheck/internal/diag"
	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// A realization maps flexible signature type names to concrete type
// functions.
type realization map[types.Sym]types.TyScheme

// applyRealization rewrites every Con whose sym is realized, applying
// the realized type function at the Con's arguments.
func applyRealization(re realization, ty types.Ty) types.Ty {
	switch t := ty.(type) {
	case *types.Record:
		rows := make(types.RecordRows, len(t.Rows))
		for lab, inner := range t.Rows {
			rows[lab] = applyRealization(re, inner)
		}
		return &types.Record{Rows: rows}
	case *types.Con:
		args := make([]types.Ty, len(t.Args))
		for i, a := range t.Args {
			args[i] = applyRealization(re, a)
		}
		if scheme, ok := re[t.Sym]; ok && scheme.Arity() == len(args) {
			return scheme.Apply(args)
		}
		return &types.Con{Args: args, Sym: t.Sym}
	case *types.Fn:
		return &types.Fn{Param: applyRealization(re, t.Param), Res: applyRealization(re, t.Res)}
	default:
		return ty
	}
}

func realizeScheme(re realization, scheme types.TyScheme) types.TyScheme {
	return types.TyScheme{BoundVars: scheme.BoundVars, Ty: applyRealization(re, scheme.Ty)}
}

func realizeValEnv(re realization, ve types.ValEnv) types.ValEnv {
	out := make(types.ValEnv, len(ve))
	for name, vi := range ve {
		clone := *vi
		clone.TyScheme = realizeScheme(re, vi.TyScheme)
		out[name] = &clone
	}
	return out
}

// realizeEnv applies a realization across an environment.
func realizeEnv(re realization, env *types.Env) *types.Env {
	out := types.NewEnv()
	for name, inner := range env.StrEnv {
		out.StrEnv[name] = realizeEnv(re, inner)
	}
	for name, ti := range env.TyEnv {
		clone := *ti
		clone.TyScheme = realizeScheme(re, ti.TyScheme)
		clone.ValEnv = realizeValEnv(re, ti.ValEnv)
		out.TyEnv[name] = &clone
	}
	out.ValEnv = realizeValEnv(re, env.ValEnv)
	return out
}

// findSymPath locates the path at which a flexible sym is bound in a
// signature env, walking structures in deterministic order.
func findSymPath(env *types.Env, sym types.Sym) (hir.Path, bool) {
	for _, name := range env.TyEnv.OrderedNames() {
		ti := env.TyEnv[name]
		if con, ok := ti.TyScheme.Ty.(*types.Con); ok && con.Sym == sym {
			return hir.Path{Last: name}, true
		}
	}
	for _, name := range env.StrEnv.OrderedNames() {
		if path, ok := findSymPath(env.StrEnv[name], sym); ok {
			return hir.Path{Prefix: append([]hir.Name{name}, path.Prefix...), Last: path.Last}, true
		}
	}
	return hir.Path{}, false
}

// sigMatch realizes sig against env and checks enrichment, producing the
// ascribed environment. Transparent ascription keeps the realized
// signature; opaque ascription regenerates the flexible names as fresh
// abstract syms.
func (st *st) sigMatch(r hir.Range, env *types.Env, sig *types.Sig, kind hir.AscriptionKind) *types.Env {
	re := realization{}
	for _, sym := range sig.OrderedTyNames() {
		path, ok := findSymPath(sig.Env, sym)
		if !ok {
			continue
		}
		target, _, walked := env.GetEnv(path.Prefix)
		if !walked {
			st.report(r, diag.Realization, diag.SeverityError,
				fmt.Sprintf("no structure %s to realize %s against", path.Prefix[0], path.Last))
			continue
		}
		ti, ok := target.TyEnv[path.Last]
		if !ok {
			st.report(r, diag.Realization, diag.SeverityError,
				fmt.Sprintf("structure has no type named %s", path))
			continue
		}
		info, _ := st.syms.Get(sym)
		if info != nil && ti.TyScheme.Arity() != info.TyInfo.TyScheme.Arity() {
			st.report(r, diag.Realization, diag.SeverityError,
				fmt.Sprintf("type %s has arity %d, expected %d", path, ti.TyScheme.Arity(), info.TyInfo.TyScheme.Arity()))
			continue
		}
		re[sym] = ti.TyScheme
	}

	realized := realizeEnv(re, sig.Env)
	if err := st.enrich(env, realized); err != nil {
		st.report(r, diag.SignatureMatch, diag.SeverityError,
			fmt.Sprintf("signature mismatch: %s", err.msg))
	}

	if kind == hir.Transparent {
		return realized
	}

	// opaque: regenerate the flexible names so downstream code sees
	// abstract types.
	abstract := realization{}
	for _, sym := range sig.OrderedTyNames() {
		info, ok := st.syms.Get(sym)
		if !ok {
			continue
		}
		started := st.syms.Start(info.Path)
		fresh := started.Sym()
		arity := info.TyInfo.TyScheme.Arity()
		kinds := make(types.BoundVars, arity)
		copy(kinds, info.TyInfo.TyScheme.BoundVars)
		abstract[sym] = types.NAry(kinds, fresh)
		st.syms.Finish(started, types.TyInfo{
			TyScheme: types.NAry(kinds, fresh),
			ValEnv:   types.ValEnv{},
		}, info.Equality)
	}
	return realizeEnv(abstract, sig.Env)
}
