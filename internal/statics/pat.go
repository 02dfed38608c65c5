package statics

import (
	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// pat elaborates a pattern, accumulating the names it binds into ve.
// Bindings are monomorphic at this point; the enclosing val declaration
// generalizes them.
func (st *st) pat(c cx, ve types.ValEnv, idx hir.PatIdx) types.Ty {
	if idx == 0 {
		return types.None
	}
	r := st.ar.PatRange(idx)
	switch p := st.ar.GetPat(idx).(type) {
	case hir.PatWild:
		return st.fresh()
	case hir.PatSCon:
		return st.scon(p.SCon)
	case hir.PatCon:
		return st.conPat(c, ve, r, p)
	case hir.PatRecord:
		rows := types.RecordRows{}
		for _, row := range p.Rows {
			if _, ok := rows[row.Lab]; ok {
				st.errDuplicate(r, ItemVal, hir.NewName(row.Lab.String()))
				continue
			}
			rows[row.Lab] = st.pat(c, ve, row.Pat)
		}
		if p.AllowsOther {
			return st.freshKinded(types.RecordKind{Rows: rows, Range: r})
		}
		return &types.Record{Rows: rows}
	case hir.PatTyped:
		ty := st.pat(c, ve, p.Pat)
		want := st.tyExp(c, p.Ty)
		st.unify(st.ar.TyRange(p.Ty), want, ty)
		return want
	case hir.PatAs:
		ty := st.pat(c, ve, p.Pat)
		st.bindPatName(ve, r, p.Name, ty)
		return ty
	case hir.PatOr:
		return st.orPat(c, ve, r, p)
	default:
		return types.None
	}
}

// conPat handles both variable bindings and constructor patterns: a
// single unqualified name with no argument that is not a constructor in
// scope binds a variable.
func (st *st) conPat(c cx, ve types.ValEnv, r hir.Range, p hir.PatCon) types.Ty {
	if len(p.Path.Prefix) == 0 && p.Arg == 0 {
		if vi, ok := lookupValQuiet(c, p.Path); !ok || vi.IdStatus.Kind == types.StatusVal {
			ty := st.fresh()
			st.bindPatName(ve, r, p.Path.Last, ty)
			return ty
		}
	}
	vi, ok := st.lookupVal(r, c, p.Path)
	if !ok {
		if p.Arg != 0 {
			st.pat(c, ve, p.Arg)
		}
		return types.None
	}
	if vi.IdStatus.Kind == types.StatusVal {
		// a qualified path or an applied pattern must be a constructor.
		st.errUndefined(r, ItemVal, p.Path.Last)
		if p.Arg != 0 {
			st.pat(c, ve, p.Arg)
		}
		return types.None
	}
	conTy := st.instantiate(vi.TyScheme)
	if p.Arg == 0 {
		if _, ok := conTy.(*types.Fn); ok {
			st.errConArity(r, p.Path.Last, true)
			return types.None
		}
		return conTy
	}
	argTy := st.pat(c, ve, p.Arg)
	fn, ok := conTy.(*types.Fn)
	if !ok {
		st.errConArity(r, p.Path.Last, false)
		return types.None
	}
	st.unify(st.ar.PatRange(p.Arg), fn.Param, argTy)
	return fn.Res
}

// bindPatName adds one bound name, rejecting duplicates within the same
// pattern.
func (st *st) bindPatName(ve types.ValEnv, r hir.Range, name hir.Name, ty types.Ty) {
	if _, ok := ve[name]; ok {
		st.errDuplicate(r, ItemVal, name)
		return
	}
	ve[name] = &types.ValInfo{
		TyScheme: types.Mono(ty),
		IdStatus: types.ValStatus(),
		Defs:     types.DefSet(r),
	}
}

// orPat checks that every alternative binds the same names at the same
// types; the bindings' definition sites accumulate across alternatives.
func (st *st) orPat(c cx, ve types.ValEnv, r hir.Range, p hir.PatOr) types.Ty {
	firstVe := types.ValEnv{}
	ty := st.pat(c, firstVe, p.First)
	for _, alt := range p.Rest {
		altVe := types.ValEnv{}
		altTy := st.pat(c, altVe, alt)
		altR := st.ar.PatRange(alt)
		st.unify(altR, ty, altTy)
		for _, name := range firstVe.OrderedNames() {
			want := firstVe[name]
			got, ok := altVe[name]
			if !ok {
				st.errOrPatBindings(altR, name)
				continue
			}
			st.unify(altR, want.TyScheme.Ty, got.TyScheme.Ty)
			for def := range got.Defs {
				want.Defs[def] = true
			}
		}
		for _, name := range altVe.OrderedNames() {
			if _, ok := firstVe[name]; !ok {
				st.errOrPatBindings(altR, name)
			}
		}
	}
	for _, name := range firstVe.OrderedNames() {
		vi := firstVe[name]
		if _, ok := ve[name]; ok {
			st.errDuplicate(r, ItemVal, name)
			continue
		}
		ve[name] = vi
	}
	return ty
}
