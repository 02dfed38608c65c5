package statics

import (
	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// scon gives a special constant its type. Numeric constants are
// overloaded over their class; char and string constants are their base
// types.
func (st *st) scon(sc hir.SCon) types.Ty {
	switch sc.Kind {
	case hir.SConInt:
		return st.freshKinded(types.OverloadKind{Overload: types.BasicInt})
	case hir.SConWord:
		return st.freshKinded(types.OverloadKind{Overload: types.BasicWord})
	case hir.SConReal:
		return st.freshKinded(types.OverloadKind{Overload: types.BasicReal})
	case hir.SConChar:
		return types.Zero(types.SymChar)
	case hir.SConString:
		return types.Zero(types.SymString)
	default:
		return types.None
	}
}

// exp elaborates an expression to its type.
func (st *st) exp(c cx, idx hir.ExpIdx) types.Ty {
	if idx == 0 {
		return types.None
	}
	r := st.ar.ExpRange(idx)
	switch e := st.ar.GetExp(idx).(type) {
	case hir.ExpSCon:
		return st.scon(e.SCon)
	case hir.ExpPath:
		vi, ok := st.lookupVal(r, c, e.Path)
		if !ok {
			return types.None
		}
		return st.instantiate(vi.TyScheme)
	case hir.ExpRecord:
		rows := types.RecordRows{}
		for _, row := range e.Rows {
			if _, ok := rows[row.Lab]; ok {
				st.errDuplicate(r, ItemVal, hir.NewName(row.Lab.String()))
				continue
			}
			rows[row.Lab] = st.exp(c, row.Exp)
		}
		return &types.Record{Rows: rows}
	case hir.ExpLet:
		inner := c.withEnv()
		for _, decIdx := range e.Decs {
			env := types.NewEnv()
			st.dec(inner, env, decIdx)
			inner.env.Append(env)
		}
		return st.exp(inner, e.Body)
	case hir.ExpFn:
		param := st.fresh()
		res := st.fresh()
		for _, arm := range e.Arms {
			st.arm(c, arm, param, res)
		}
		return types.Fun(param, res)
	case hir.ExpApp:
		fnTy := st.exp(c, e.Fn)
		argTy := st.exp(c, e.Arg)
		res := st.fresh()
		st.unify(st.ar.ExpRange(e.Arg), fnTy, types.Fun(argTy, res))
		return res
	case hir.ExpHandle:
		ty := st.exp(c, e.Exp)
		for _, arm := range e.Arms {
			st.arm(c, arm, types.Zero(types.SymExn), ty)
		}
		return ty
	case hir.ExpRaise:
		ty := st.exp(c, e.Exp)
		st.unify(st.ar.ExpRange(e.Exp), types.Zero(types.SymExn), ty)
		return st.fresh()
	case hir.ExpTyped:
		ty := st.exp(c, e.Exp)
		want := st.tyExp(c, e.Ty)
		st.unify(st.ar.ExpRange(e.Exp), want, ty)
		return want
	default:
		return types.None
	}
}

// arm elaborates one `pat => exp` arm against the given pattern and
// result types.
func (st *st) arm(c cx, arm hir.Arm, patTy, resTy types.Ty) {
	ve := types.ValEnv{}
	got := st.pat(c, ve, arm.Pat)
	st.unify(st.ar.PatRange(arm.Pat), patTy, got)
	inner := c.withEnv()
	for name, vi := range ve {
		inner.env.ValEnv[name] = vi
	}
	bodyTy := st.exp(inner, arm.Exp)
	st.unify(st.ar.ExpRange(arm.Exp), resTy, bodyTy)
}

// nonExpansive implements the value restriction's syntactic test: an
// expression is non-expansive iff it is a constant, a path, a fn, or a
// record/typed wrapping of non-expansive parts, with constructor
// applications (other than ref) also allowed.
func (st *st) nonExpansive(c cx, idx hir.ExpIdx) bool {
	if idx == 0 {
		return true
	}
	switch e := st.ar.GetExp(idx).(type) {
	case hir.ExpSCon, hir.ExpFn:
		return true
	case hir.ExpPath:
		return true
	case hir.ExpRecord:
		for _, row := range e.Rows {
			if !st.nonExpansive(c, row.Exp) {
				return false
			}
		}
		return true
	case hir.ExpTyped:
		return st.nonExpansive(c, e.Exp)
	case hir.ExpApp:
		fn, ok := st.ar.GetExp(e.Fn).(hir.ExpPath)
		if !ok {
			return false
		}
		vi, ok := lookupValQuiet(c, fn.Path)
		if !ok || vi.IdStatus.Kind == types.StatusVal {
			return false
		}
		if fn.Path.Last == hir.NewName("ref") && len(fn.Path.Prefix) == 0 {
			return false
		}
		return st.nonExpansive(c, e.Arg)
	default:
		return false
	}
}
