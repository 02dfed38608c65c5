package statics

import (
	"fmt"

	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// Minimal returns the minimal basis and symbols: the definitions that
// cannot be expressed as ordinary source, like int and real and string,
// plus bool and list because rebinding their constructor names is
// forbidden, and the overloaded and equality-polymorphic primitive
// operators.
func Minimal() (*types.Syms, *types.Bs) {
	syms := types.NewSyms()

	// basic types, in the reserved order.
	for _, prim := range []struct {
		sym   types.Sym
		name  string
		basic types.Basic
		eq    types.Equality
	}{
		{types.SymInt, "int", types.BasicInt, types.EqualitySometimes},
		{types.SymWord, "word", types.BasicWord, types.EqualitySometimes},
		{types.SymReal, "real", types.BasicReal, types.EqualityNever},
		{types.SymChar, "char", types.BasicChar, types.EqualitySometimes},
		{types.SymString, "string", types.BasicString, types.EqualitySometimes},
	} {
		started := syms.Start(hir.PathOf(prim.name))
		if started.Sym() != prim.sym {
			panic(fmt.Sprintf("statics: primitive %s out of order", prim.name))
		}
		syms.Finish(started, types.TyInfo{
			TyScheme: types.Mono(types.Zero(prim.sym)),
			ValEnv:   types.ValEnv{},
		}, prim.eq)
		syms.Overloads().Add(prim.basic, prim.sym)
	}

	// bool, with its constructors.
	boolScheme := types.Mono(types.Zero(types.SymBool))
	boolVe := datatypeVe(map[hir.Name]types.TyScheme{
		hir.NewName("true"):  boolScheme,
		hir.NewName("false"): boolScheme,
	})
	installPrimitive(syms, types.SymBool, "bool", types.TyInfo{TyScheme: boolScheme, ValEnv: boolVe}, types.EqualitySometimes)

	// 'a list, with nil and ::.
	listScheme := types.NAry(types.BoundVars{nil}, types.SymList)
	consScheme := types.One(nil, func(a types.Ty) types.Ty {
		aList := &types.Con{Args: []types.Ty{a}, Sym: types.SymList}
		return types.Fun(types.Pair(a, aList), aList)
	})
	listVe := datatypeVe(map[hir.Name]types.TyScheme{
		hir.NewName("nil"): listScheme,
		hir.NewName("::"):  consScheme,
	})
	installPrimitive(syms, types.SymList, "list", types.TyInfo{TyScheme: listScheme, ValEnv: listVe}, types.EqualitySometimes)

	// 'a ref, which always admits equality.
	refScheme := types.NAry(types.BoundVars{nil}, types.SymRef)
	refConScheme := types.One(nil, func(a types.Ty) types.Ty {
		return types.Fun(a, &types.Con{Args: []types.Ty{a}, Sym: types.SymRef})
	})
	refVe := datatypeVe(map[hir.Name]types.TyScheme{
		hir.NewName("ref"): refConScheme,
	})
	installPrimitive(syms, types.SymRef, "ref", types.TyInfo{TyScheme: refScheme, ValEnv: refVe}, types.EqualityAlways)

	bs := types.NewBs()
	for _, sym := range []types.Sym{
		types.SymInt, types.SymWord, types.SymReal, types.SymChar,
		types.SymString, types.SymBool, types.SymList, types.SymRef,
	} {
		info, _ := syms.Get(sym)
		ti := info.TyInfo
		bs.Env.TyEnv[info.Path.Last] = &ti
		for name, vi := range ti.ValEnv {
			bs.Env.ValEnv[name] = vi
		}
	}

	// unit and exn are aliases, not generative names of their own.
	bs.Env.TyEnv[hir.NewName("unit")] = &types.TyInfo{
		TyScheme: types.Mono(types.Unit()),
		ValEnv:   types.ValEnv{},
	}
	bs.Env.TyEnv[hir.NewName("exn")] = &types.TyInfo{
		TyScheme: types.Mono(types.Zero(types.SymExn)),
		ValEnv:   types.ValEnv{},
	}

	// primitive operators.
	numPairToNum := overloadedFn(types.Num, func(a types.Ty) (types.Ty, types.Ty) {
		return types.Pair(a, a), a
	})
	realPairToReal := overloadedFn(types.BasicReal, func(a types.Ty) (types.Ty, types.Ty) {
		return types.Pair(a, a), a
	})
	numTxtPairToBool := overloadedFn(types.NumTxt, func(a types.Ty) (types.Ty, types.Ty) {
		return types.Pair(a, a), types.Zero(types.SymBool)
	})
	realIntToRealInt := overloadedFn(types.RealInt, func(a types.Ty) (types.Ty, types.Ty) {
		return a, a
	})
	wordIntPairToWordInt := overloadedFn(types.WordInt, func(a types.Ty) (types.Ty, types.Ty) {
		return types.Pair(a, a), a
	})
	equalityPairToBool := types.One(types.EqualityKind{}, func(a types.Ty) types.Ty {
		return types.Fun(types.Pair(a, a), types.Zero(types.SymBool))
	})

	for name, scheme := range map[string]types.TyScheme{
		"+":   numPairToNum,
		"-":   numPairToNum,
		"*":   numPairToNum,
		"/":   realPairToReal,
		"div": wordIntPairToWordInt,
		"mod": wordIntPairToWordInt,
		"<":   numTxtPairToBool,
		"<=":  numTxtPairToBool,
		">":   numTxtPairToBool,
		">=":  numTxtPairToBool,
		"~":   realIntToRealInt,
		"abs": realIntToRealInt,
		"=":   equalityPairToBool,
		"<>":  equalityPairToBool,
	} {
		bs.Env.ValEnv[hir.NewName(name)] = &types.ValInfo{
			TyScheme: scheme,
			IdStatus: types.ValStatus(),
			Defs:     types.DefSet(),
		}
	}

	return syms, bs
}

func installPrimitive(syms *types.Syms, sym types.Sym, name string, tyInfo types.TyInfo, eq types.Equality) {
	started := syms.Start(hir.PathOf(name))
	if started.Sym() != sym {
		panic(fmt.Sprintf("statics: primitive %s out of order", name))
	}
	syms.Finish(started, tyInfo, eq)
}

func datatypeVe(ctors map[hir.Name]types.TyScheme) types.ValEnv {
	ve := types.ValEnv{}
	for name, scheme := range ctors {
		ve[name] = &types.ValInfo{
			TyScheme: scheme,
			IdStatus: types.ConStatus(),
			Defs:     types.DefSet(),
		}
	}
	return ve
}

// overloadedFn builds a scheme over one overloaded variable; f maps the
// variable to the function's parameter and result.
func overloadedFn(ov types.Overload, f func(types.Ty) (types.Ty, types.Ty)) types.TyScheme {
	return types.One(types.OverloadKind{Overload: ov}, func(a types.Ty) types.Ty {
		param, res := f(a)
		return types.Fun(param, res)
	})
}
