package statics

import (
	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// tyExp elaborates a HIR type expression. A type variable not in scope is
// implicitly bound at the nearest enclosing val declaration when one is
// collecting (st.implicit non-nil); otherwise it is undefined.
func (st *st) tyExp(c cx, idx hir.TyIdx) types.Ty {
	if idx == 0 {
		return types.None
	}
	r := st.ar.TyRange(idx)
	switch t := st.ar.GetTy(idx).(type) {
	case hir.TyVar:
		if fv, ok := c.fixed[t.Name]; ok {
			return fv
		}
		if st.implicit != nil {
			fv := st.fixedGen.Fresh(t.Name)
			c.fixed[t.Name] = fv
			*st.implicit = append(*st.implicit, fv)
			return fv
		}
		st.errUndefined(r, ItemTy, t.Name)
		return types.None
	case hir.TyRecord:
		rows := types.RecordRows{}
		for _, row := range t.Rows {
			if _, ok := rows[row.Lab]; ok {
				st.errDuplicate(r, ItemTy, hir.NewName(row.Lab.String()))
				continue
			}
			rows[row.Lab] = st.tyExp(c, row.Ty)
		}
		return &types.Record{Rows: rows}
	case hir.TyCon:
		ti, ok := st.lookupTy(r, c, t.Path)
		if !ok {
			return types.None
		}
		if len(t.Args) != ti.TyScheme.Arity() {
			st.errTyArity(r, t.Path.Last, ti.TyScheme.Arity(), len(t.Args))
			return types.None
		}
		args := make([]types.Ty, len(t.Args))
		for i, argIdx := range t.Args {
			args[i] = st.tyExp(c, argIdx)
		}
		return ti.TyScheme.Apply(args)
	case hir.TyFn:
		return types.Fun(st.tyExp(c, t.Param), st.tyExp(c, t.Res))
	default:
		return types.None
	}
}

// fixedScope enters the named type variables as fixed vars and returns
// both the extended context and the new vars in declaration order.
func (st *st) fixedScope(c cx, names []hir.Name) (cx, []*types.FixedVar) {
	vars := make(map[hir.Name]*types.FixedVar, len(names))
	ordered := make([]*types.FixedVar, 0, len(names))
	for _, name := range names {
		fv := st.fixedGen.Fresh(name)
		vars[name] = fv
		ordered = append(ordered, fv)
	}
	return c.withFixed(vars), ordered
}
