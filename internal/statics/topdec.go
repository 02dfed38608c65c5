package statics

import (
	"sort"

	"github.com/sunholo/smlcheck/internal/diag"
	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// topCx extends the core context with the signature and functor
// environments, which only exist at the top level.
type topCx struct {
	cx
	sigEnv types.SigEnv
	funEnv types.FunEnv
}

func (t topCx) withEnv() topCx {
	return topCx{cx: t.cx.withEnv(), sigEnv: t.sigEnv, funEnv: t.funEnv}
}

// strDec elaborates one structure-level declaration into env (and, for
// signatures and functors, into the out basis).
func (st *st) strDec(c topCx, env *types.Env, out *types.Bs, idx hir.StrDecIdx) {
	if idx == 0 {
		return
	}
	r := st.ar.StrDecRange(idx)
	switch d := st.ar.GetStrDec(idx).(type) {
	case hir.StrDecDec:
		st.dec(c.cx, env, d.Dec)
	case hir.StrDecStructure:
		strEnv := st.strExp(c, d.StrExp)
		if _, ok := env.StrEnv[d.Name]; ok {
			st.errDuplicate(r, ItemStruct, d.Name)
			return
		}
		env.StrEnv[d.Name] = strEnv
	case hir.StrDecLocal:
		scratch := c.withEnv()
		for _, localIdx := range d.Local {
			localEnv := types.NewEnv()
			st.strDec(scratch, localEnv, out, localIdx)
			scratch.env.Append(localEnv)
		}
		for _, inIdx := range d.In {
			inEnv := types.NewEnv()
			st.strDec(scratch, inEnv, out, inIdx)
			scratch.env.Append(inEnv)
			env.Append(inEnv)
		}
	case hir.StrDecSeq:
		inner := c.withEnv()
		for _, decIdx := range d.Decs {
			decEnv := types.NewEnv()
			st.strDec(inner, decEnv, out, decIdx)
			inner.env.Append(decEnv)
			env.Append(decEnv)
		}
	case hir.StrDecSignature:
		sig := st.sigExp(c, d.SigExp)
		// rebinding an inherited signature is allowed; only a duplicate
		// within this unit is an error.
		if _, ok := out.SigEnv[d.Name]; ok {
			st.errDuplicate(r, ItemSig, d.Name)
			return
		}
		c.sigEnv[d.Name] = sig
		out.SigEnv[d.Name] = sig
	case hir.StrDecFunctor:
		st.functorDec(c, out, r, d)
	}
}

// strExp elaborates a structure expression to its environment.
func (st *st) strExp(c topCx, idx hir.StrExpIdx) *types.Env {
	if idx == 0 {
		return types.NewEnv()
	}
	r := st.ar.StrExpRange(idx)
	switch e := st.ar.GetStrExp(idx).(type) {
	case hir.StrExpStruct:
		inner := c.withEnv()
		result := types.NewEnv()
		for _, decIdx := range e.Decs {
			decEnv := types.NewEnv()
			st.strDec(inner, decEnv, types.NewBs(), decIdx)
			inner.env.Append(decEnv)
			result.Append(decEnv)
		}
		return result
	case hir.StrExpPath:
		env, ok := st.lookupStr(r, c.cx, e.Path)
		if !ok {
			return types.NewEnv()
		}
		return env
	case hir.StrExpAscription:
		env := st.strExp(c, e.StrExp)
		sig := st.sigExp(c, e.SigExp)
		return st.sigMatch(r, env, sig, e.Kind)
	case hir.StrExpApp:
		return st.functorApp(c, r, e)
	case hir.StrExpLet:
		inner := c.withEnv()
		for _, decIdx := range e.Decs {
			decEnv := types.NewEnv()
			st.strDec(inner, decEnv, types.NewBs(), decIdx)
			inner.env.Append(decEnv)
		}
		return st.strExp(inner, e.StrExp)
	default:
		return types.NewEnv()
	}
}

// functorDec elaborates a functor binding. The parameter signature's
// flexible names stay flexible in the functor signature; the body's
// generative names are everything generated while elaborating the body.
func (st *st) functorDec(c topCx, out *types.Bs, r hir.Range, d hir.StrDecFunctor) {
	paramSig := st.sigExp(c, d.ParamSig)

	marker := st.syms.Mark()
	inner := c.withEnv()
	inner.env.StrEnv[d.ParamName] = paramSig.Env
	body := st.strExp(inner, d.Body)

	bodyTyNames := map[types.Sym]bool{}
	collectGeneratedSyms(body, marker, bodyTyNames)

	fn := &types.FunSig{Param: paramSig, BodyTyNames: bodyTyNames, Body: body}
	if _, ok := out.FunEnv[d.Name]; ok {
		st.errDuplicate(r, ItemFunctor, d.Name)
		return
	}
	c.funEnv[d.Name] = fn
	out.FunEnv[d.Name] = fn
}

// collectGeneratedSyms gathers the syms in env generated after the
// marker.
func collectGeneratedSyms(env *types.Env, marker types.SymsMarker, out map[types.Sym]bool) {
	for _, inner := range env.StrEnv {
		collectGeneratedSyms(inner, marker, out)
	}
	for _, ti := range env.TyEnv {
		if con, ok := ti.TyScheme.Ty.(*types.Con); ok && con.Sym.GeneratedAfter(marker) {
			out[con.Sym] = true
		}
	}
}

// functorApp applies a functor: match the argument against the parameter
// signature (transparently), realize the body with the parameter
// realization, then regenerate the body's generative names.
func (st *st) functorApp(c topCx, r hir.Range, e hir.StrExpApp) *types.Env {
	fn, ok := c.funEnv[e.Functor]
	if !ok {
		st.errUndefined(r, ItemFunctor, e.Functor)
		return types.NewEnv()
	}
	argEnv := st.strExp(c, e.Arg)

	// parameter realization: flexible names of the parameter signature
	// realize to the argument's type functions.
	re := realization{}
	for _, sym := range fn.Param.OrderedTyNames() {
		path, found := findSymPath(fn.Param.Env, sym)
		if !found {
			continue
		}
		target, _, walked := argEnv.GetEnv(path.Prefix)
		if !walked {
			continue
		}
		if ti, ok := target.TyEnv[path.Last]; ok {
			re[sym] = ti.TyScheme
		}
	}
	realizedParam := realizeEnv(re, fn.Param.Env)
	if err := st.enrich(argEnv, realizedParam); err != nil {
		st.report(r, diag.SignatureMatch, diag.SeverityError, "functor argument mismatch: "+err.msg)
	}

	// generative application: body names generated inside the functor
	// body become fresh names at every application.
	for _, sym := range orderedSymSet(fn.BodyTyNames) {
		info, ok := st.syms.Get(sym)
		if !ok {
			continue
		}
		started := st.syms.Start(info.Path)
		fresh := started.Sym()
		kinds := make(types.BoundVars, info.TyInfo.TyScheme.Arity())
		copy(kinds, info.TyInfo.TyScheme.BoundVars)
		re[sym] = types.NAry(kinds, fresh)
		st.syms.Finish(started, types.TyInfo{
			TyScheme: types.NAry(kinds, fresh),
			ValEnv:   realizeValEnv(re, info.TyInfo.ValEnv),
		}, info.Equality)
	}
	return realizeEnv(re, fn.Body)
}

func orderedSymSet(set map[types.Sym]bool) []types.Sym {
	syms := make([]types.Sym, 0, len(set))
	for sym := range set {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// sigExp elaborates a signature expression.
func (st *st) sigExp(c topCx, idx hir.SigExpIdx) *types.Sig {
	if idx == 0 {
		return &types.Sig{TyNames: map[types.Sym]bool{}, Env: types.NewEnv()}
	}
	r := st.ar.SigExpRange(idx)
	switch e := st.ar.GetSigExp(idx).(type) {
	case hir.SigExpSpec:
		sig := &types.Sig{TyNames: map[types.Sym]bool{}, Env: types.NewEnv()}
		inner := c.withEnv()
		for _, specIdx := range e.Specs {
			st.spec(inner, sig, specIdx)
		}
		return sig
	case hir.SigExpName:
		sig, ok := c.sigEnv[e.Name]
		if !ok {
			st.errUndefined(r, ItemSig, e.Name)
			return &types.Sig{TyNames: map[types.Sym]bool{}, Env: types.NewEnv()}
		}
		return sig
	case hir.SigExpWhereType:
		sig := st.sigExp(c, e.SigExp)
		return st.whereType(c, r, sig, e)
	default:
		return &types.Sig{TyNames: map[types.Sym]bool{}, Env: types.NewEnv()}
	}
}

// whereType realizes one flexible name of sig to a concrete type
// function.
func (st *st) whereType(c topCx, r hir.Range, sig *types.Sig, e hir.SigExpWhereType) *types.Sig {
	target, _, walked := sig.Env.GetEnv(e.Path.Prefix)
	if !walked {
		st.errUndefined(r, ItemStruct, e.Path.Prefix[0])
		return sig
	}
	ti, ok := target.TyEnv[e.Path.Last]
	if !ok {
		st.errUndefined(r, ItemTy, e.Path.Last)
		return sig
	}
	con, ok := ti.TyScheme.Ty.(*types.Con)
	if !ok || !sig.TyNames[con.Sym] {
		st.report(r, diag.Realization, diag.SeverityError, "where type target is not a flexible type")
		return sig
	}

	tyCx, fixed := st.fixedScope(c.cx, e.TyVars)
	body := st.tyExp(tyCx, e.Ty)
	scheme := types.GeneralizeFixed(fixed, body)
	if scheme.Arity() != ti.TyScheme.Arity() {
		st.errTyArity(r, e.Path.Last, ti.TyScheme.Arity(), scheme.Arity())
		return sig
	}

	re := realization{con.Sym: scheme}
	tyNames := make(map[types.Sym]bool, len(sig.TyNames))
	for sym := range sig.TyNames {
		if sym != con.Sym {
			tyNames[sym] = true
		}
	}
	return &types.Sig{TyNames: tyNames, Env: realizeEnv(re, sig.Env)}
}

// spec elaborates one signature specification into sig.
func (st *st) spec(c topCx, sig *types.Sig, idx hir.SpecIdx) {
	if idx == 0 {
		return
	}
	r := st.ar.SpecRange(idx)
	switch s := st.ar.GetSpec(idx).(type) {
	case hir.SpecVal:
		specCx, fixed := st.fixedScope(c.cx, nil)
		var implicit []*types.FixedVar
		prevImplicit := st.implicit
		st.implicit = &implicit
		ty := st.tyExp(specCx, s.Ty)
		st.implicit = prevImplicit
		scheme := types.GeneralizeFixed(append(fixed, implicit...), ty)
		if _, ok := sig.Env.ValEnv[s.Name]; ok {
			st.errDuplicate(r, ItemVal, s.Name)
			return
		}
		sig.Env.ValEnv[s.Name] = &types.ValInfo{
			TyScheme: scheme,
			IdStatus: types.ValStatus(),
			Defs:     types.DefSet(r),
		}
	case hir.SpecTy:
		st.abstractTySpec(c, sig, r, s)
	case hir.SpecTyEq:
		specCx, fixed := st.fixedScope(c.cx, s.TyVars)
		body := st.tyExp(specCx, s.Ty)
		scheme := types.GeneralizeFixed(fixed, body)
		if _, ok := sig.Env.TyEnv[s.Name]; ok {
			st.errDuplicate(r, ItemTy, s.Name)
			return
		}
		sig.Env.TyEnv[s.Name] = &types.TyInfo{TyScheme: scheme, ValEnv: types.ValEnv{}, Def: r}
		c.env.TyEnv[s.Name] = sig.Env.TyEnv[s.Name]
	case hir.SpecDatatype:
		env := types.NewEnv()
		st.datatypeDec(c.cx, env, r, hir.DecDatatype{Binds: s.Binds})
		for _, name := range env.TyEnv.OrderedNames() {
			ti := env.TyEnv[name]
			if con, ok := ti.TyScheme.Ty.(*types.Con); ok {
				sig.TyNames[con.Sym] = true
			}
			sig.Env.TyEnv[name] = ti
			c.env.TyEnv[name] = ti
		}
		for _, name := range env.ValEnv.OrderedNames() {
			sig.Env.ValEnv[name] = env.ValEnv[name]
			c.env.ValEnv[name] = env.ValEnv[name]
		}
	case hir.SpecException:
		exnTy := types.Zero(types.SymExn)
		scheme := types.Mono(exnTy)
		var paramTy types.Ty
		if s.Param != 0 {
			paramTy = st.tyExp(c.cx, s.Param)
			scheme = types.Mono(types.Fun(paramTy, exnTy))
		}
		exn := st.syms.InsertExn(hir.Path{Last: s.Name}, paramTy)
		if _, ok := sig.Env.ValEnv[s.Name]; ok {
			st.errDuplicate(r, ItemVal, s.Name)
			return
		}
		sig.Env.ValEnv[s.Name] = &types.ValInfo{
			TyScheme: scheme,
			IdStatus: types.ExnStatus(exn),
			Defs:     types.DefSet(r),
		}
	case hir.SpecStr:
		innerSig := st.sigExp(c, s.SigExp)
		if _, ok := sig.Env.StrEnv[s.Name]; ok {
			st.errDuplicate(r, ItemStruct, s.Name)
			return
		}
		sig.Env.StrEnv[s.Name] = innerSig.Env
		for sym := range innerSig.TyNames {
			sig.TyNames[sym] = true
		}
		c.env.StrEnv[s.Name] = innerSig.Env
	case hir.SpecInclude:
		included := st.sigExp(c, s.SigExp)
		sig.Env.Append(included.Env)
		for sym := range included.TyNames {
			sig.TyNames[sym] = true
		}
		c.env.Append(included.Env)
	}
}

// abstractTySpec introduces a flexible type name.
func (st *st) abstractTySpec(c topCx, sig *types.Sig, r hir.Range, s hir.SpecTy) {
	started := st.syms.Start(hir.Path{Last: s.Name})
	sym := started.Sym()
	kinds := make(types.BoundVars, len(s.TyVars))
	for i, name := range s.TyVars {
		fv := st.fixedGen.Fresh(name)
		if fv.Equality {
			kinds[i] = types.EqualityKind{}
		}
	}
	scheme := types.NAry(kinds, sym)
	verdict := types.EqualityNever
	if s.Equality {
		verdict = types.EqualityAlways
	}
	st.syms.Finish(started, types.TyInfo{TyScheme: scheme, ValEnv: types.ValEnv{}, Def: r}, verdict)
	if _, ok := sig.Env.TyEnv[s.Name]; ok {
		st.errDuplicate(r, ItemTy, s.Name)
		return
	}
	ti := &types.TyInfo{TyScheme: scheme, ValEnv: types.ValEnv{}, Def: r}
	sig.Env.TyEnv[s.Name] = ti
	c.env.TyEnv[s.Name] = ti
	sig.TyNames[sym] = true
}
