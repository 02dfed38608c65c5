package statics

import (
	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// dec elaborates one core declaration. New bindings go into env; c is
// read-only for the caller (sequencing extends it between declarations).
func (st *st) dec(c cx, env *types.Env, idx hir.DecIdx) {
	if idx == 0 {
		return
	}
	r := st.ar.DecRange(idx)
	switch d := st.ar.GetDec(idx).(type) {
	case hir.DecVal:
		st.valDec(c, env, r, d)
	case hir.DecTy:
		st.tyDec(c, env, r, d)
	case hir.DecDatatype:
		st.datatypeDec(c, env, r, d)
	case hir.DecDatatypeCopy:
		ti, ok := st.lookupTy(r, c, d.Path)
		if !ok {
			return
		}
		env.TyEnv[d.Name] = ti
		for name, vi := range ti.ValEnv {
			env.ValEnv[name] = vi
		}
	case hir.DecException:
		st.exceptionDec(c, env, r, d)
	case hir.DecLocal:
		scratch := c.withEnv()
		for _, localIdx := range d.Local {
			localEnv := types.NewEnv()
			st.dec(scratch, localEnv, localIdx)
			scratch.env.Append(localEnv)
		}
		for _, inIdx := range d.In {
			inEnv := types.NewEnv()
			st.dec(scratch, inEnv, inIdx)
			scratch.env.Append(inEnv)
			env.Append(inEnv)
		}
	case hir.DecOpen:
		for _, path := range d.Paths {
			opened, ok := st.lookupStr(r, c, path)
			if !ok {
				continue
			}
			c.env.Append(opened)
			env.Append(opened)
		}
	case hir.DecSeq:
		inner := c.withEnv()
		for _, decIdx := range d.Decs {
			decEnv := types.NewEnv()
			st.dec(inner, decEnv, decIdx)
			inner.env.Append(decEnv)
			env.Append(decEnv)
		}
	}
}

// valDec elaborates `val [rec] pat = exp and ...`, generalizing each
// bound name per the value restriction.
func (st *st) valDec(c cx, env *types.Env, r hir.Range, d hir.DecVal) {
	inner, fixed := st.fixedScope(c, d.TyVars)
	var implicit []*types.FixedVar
	prevImplicit := st.implicit
	st.implicit = &implicit
	defer func() { st.implicit = prevImplicit }()

	ve := types.ValEnv{}

	if d.Rec {
		// bind pattern names monomorphically first so the right-hand
		// sides can refer to each other.
		patTys := make([]types.Ty, len(d.Binds))
		for i, bind := range d.Binds {
			patTys[i] = st.pat(inner, ve, bind.Pat)
		}
		recCx := inner.withEnv()
		for name, vi := range ve {
			recCx.env.ValEnv[name] = vi
		}
		for i, bind := range d.Binds {
			expTy := st.exp(recCx, bind.Exp)
			st.unify(st.ar.ExpRange(bind.Exp), patTys[i], expTy)
		}
	} else {
		for _, bind := range d.Binds {
			expTy := st.exp(inner, bind.Exp)
			patTy := st.pat(inner, ve, bind.Pat)
			st.unify(st.ar.ExpRange(bind.Exp), patTy, expTy)
		}
	}

	allFixed := append(append([]*types.FixedVar{}, fixed...), implicit...)
	envFree := types.FreeMetaVars(st.subst, c.env)

	// val rec right-hand sides are fn expressions, which are never
	// expansive.
	expansive := false
	if !d.Rec {
		for _, bind := range d.Binds {
			if !st.nonExpansive(inner, bind.Exp) {
				expansive = true
			}
		}
	}

	for _, name := range ve.OrderedNames() {
		vi := ve[name]
		scheme := types.Generalize(st.subst, envFree, allFixed, vi.TyScheme.Ty, expansive)
		generalized := &types.ValInfo{
			TyScheme: scheme,
			IdStatus: vi.IdStatus,
			Defs:     vi.Defs,
		}
		if _, ok := env.ValEnv[name]; ok {
			st.errDuplicate(r, ItemVal, name)
			continue
		}
		env.ValEnv[name] = generalized
	}
}

// tyDec elaborates type aliases.
func (st *st) tyDec(c cx, env *types.Env, r hir.Range, d hir.DecTy) {
	for _, bind := range d.Binds {
		inner, fixed := st.fixedScope(c, bind.TyVars)
		body := st.tyExp(inner, bind.Ty)
		scheme := types.GeneralizeFixed(fixed, body)
		if _, ok := env.TyEnv[bind.Name]; ok {
			st.errDuplicate(r, ItemTy, bind.Name)
			continue
		}
		env.TyEnv[bind.Name] = &types.TyInfo{TyScheme: scheme, ValEnv: types.ValEnv{}, Def: r}
	}
}

// datatypeDec elaborates possibly mutually recursive datatype bindings:
// start all syms, install placeholder type infos so constructor argument
// types may refer to any of them, then finish each with its constructors
// and equality verdict.
func (st *st) datatypeDec(c cx, env *types.Env, r hir.Range, d hir.DecDatatype) {
	type started struct {
		handle *types.StartedSym
		fixed  []*types.FixedVar
		inner  cx
		scheme types.TyScheme
	}
	inner := c.withEnv()
	starts := make([]started, len(d.Binds))
	for i, bind := range d.Binds {
		handle := st.syms.Start(hir.Path{Last: bind.Name})
		bindCx, fixed := st.fixedScope(inner, bind.TyVars)
		kinds := make(types.BoundVars, len(fixed))
		for j, fv := range fixed {
			if fv.Equality {
				kinds[j] = types.EqualityKind{}
			}
		}
		scheme := types.NAry(kinds, handle.Sym())
		starts[i] = started{handle: handle, fixed: fixed, inner: bindCx, scheme: scheme}
		placeholder := &types.TyInfo{TyScheme: scheme, ValEnv: types.ValEnv{}, Def: r}
		inner.env.TyEnv[bind.Name] = placeholder
	}

	for i, bind := range d.Binds {
		s := starts[i]
		conVe := types.ValEnv{}
		verdict := types.EqualityAlways
		headTy := instantiateAtFixed(s.scheme, s.fixed)
		for _, conBind := range bind.Cons {
			var conScheme types.TyScheme
			if conBind.Arg == 0 {
				conScheme = types.GeneralizeFixed(s.fixed, headTy)
			} else {
				argTy := st.tyExp(s.inner, conBind.Arg)
				conScheme = types.GeneralizeFixed(s.fixed, types.Fun(argTy, headTy))
				verdict = worseEquality(verdict, st.argEquality(argTy))
			}
			if _, ok := conVe[conBind.Name]; ok {
				st.errDuplicate(r, ItemVal, conBind.Name)
				continue
			}
			conVe[conBind.Name] = &types.ValInfo{
				TyScheme: conScheme,
				IdStatus: types.ConStatus(),
				Defs:     types.DefSet(r),
			}
		}
		tyInfo := types.TyInfo{TyScheme: s.scheme, ValEnv: conVe, Def: r}
		st.syms.Finish(s.handle, tyInfo, verdict)
		if _, ok := env.TyEnv[bind.Name]; ok {
			st.errDuplicate(r, ItemTy, bind.Name)
		} else {
			env.TyEnv[bind.Name] = &types.TyInfo{TyScheme: s.scheme, ValEnv: conVe, Def: r}
		}
		for _, name := range conVe.OrderedNames() {
			if _, ok := env.ValEnv[name]; ok {
				st.errDuplicate(r, ItemVal, name)
				continue
			}
			env.ValEnv[name] = conVe[name]
		}
	}
}

// instantiateAtFixed applies an n-ary scheme back at the fixed variables
// it was built from.
func instantiateAtFixed(scheme types.TyScheme, fixed []*types.FixedVar) types.Ty {
	args := make([]types.Ty, len(fixed))
	for i, fv := range fixed {
		args[i] = fv
	}
	return scheme.Apply(args)
}

// worseEquality keeps the worse of two verdicts: Never beats Sometimes
// beats Always.
func worseEquality(a, b types.Equality) types.Equality {
	if a == types.EqualityNever || b == types.EqualityNever {
		return types.EqualityNever
	}
	if a == types.EqualitySometimes || b == types.EqualitySometimes {
		return types.EqualitySometimes
	}
	return types.EqualityAlways
}

// argEquality is the equality contribution of one constructor argument
// type: Never when the argument mentions real, ref, a function type, or
// a type constructor whose verdict is Never; Sometimes otherwise (bound
// variables and equality-admitting types).
func (st *st) argEquality(ty types.Ty) types.Equality {
	switch t := ty.(type) {
	case *types.Fn:
		return types.EqualityNever
	case *types.Con:
		if t.Sym == types.SymReal || t.Sym == types.SymRef {
			return types.EqualityNever
		}
		if st.syms.Equality(t.Sym) == types.EqualityNever {
			return types.EqualityNever
		}
		verdict := types.EqualitySometimes
		for _, arg := range t.Args {
			verdict = worseEquality(verdict, st.argEquality(arg))
		}
		return verdict
	case *types.Record:
		verdict := types.EqualitySometimes
		for _, inner := range t.Rows {
			verdict = worseEquality(verdict, st.argEquality(inner))
		}
		return verdict
	default:
		return types.EqualitySometimes
	}
}

// exceptionDec elaborates exception declarations.
func (st *st) exceptionDec(c cx, env *types.Env, r hir.Range, d hir.DecException) {
	exnTy := types.Zero(types.SymExn)
	for _, bind := range d.Binds {
		var vi *types.ValInfo
		if bind.Alias != nil {
			aliased, ok := st.lookupVal(r, c, *bind.Alias)
			if !ok {
				continue
			}
			if aliased.IdStatus.Kind != types.StatusExn {
				st.errUndefined(r, ItemVal, bind.Alias.Last)
				continue
			}
			vi = &types.ValInfo{
				TyScheme: aliased.TyScheme,
				IdStatus: aliased.IdStatus,
				Defs:     types.DefSet(r),
			}
		} else {
			var paramTy types.Ty
			scheme := types.Mono(exnTy)
			if bind.Param != 0 {
				paramTy = st.tyExp(c, bind.Param)
				scheme = types.Mono(types.Fun(paramTy, exnTy))
			}
			exn := st.syms.InsertExn(hir.Path{Last: bind.Name}, paramTy)
			vi = &types.ValInfo{
				TyScheme: scheme,
				IdStatus: types.ExnStatus(exn),
				Defs:     types.DefSet(r),
			}
		}
		if _, ok := env.ValEnv[bind.Name]; ok {
			st.errDuplicate(r, ItemVal, bind.Name)
			continue
		}
		env.ValEnv[bind.Name] = vi
	}
}
