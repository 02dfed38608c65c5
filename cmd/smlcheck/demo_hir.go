package main

import (
	"github.com/sunholo/smlcheck/internal/hir"
)

// A demo is one self-contained unit built directly as HIR, the way the
// lowering pass would produce it.
type demo struct {
	title  string
	arenas *hir.Arenas
	root   []hir.StrDecIdx
}

var demos = []demo{
	demoArith(),
	demoIdentity(),
	demoDatatype(),
	demoMismatch(),
	demoOpaque(),
}

type builder struct {
	ar  *hir.Arenas
	pos uint32
}

func newBuilder() *builder { return &builder{ar: hir.NewArenas()} }

// span hands out distinct ranges so diagnostics are distinguishable.
func (b *builder) span() hir.Range {
	b.pos += 10
	return hir.Span(b.pos, b.pos+5)
}

func (b *builder) intLit(text string) hir.ExpIdx {
	return b.ar.Exp(hir.ExpSCon{SCon: hir.SCon{Kind: hir.SConInt, Text: text}}, b.span())
}

func (b *builder) strLit(text string) hir.ExpIdx {
	return b.ar.Exp(hir.ExpSCon{SCon: hir.SCon{Kind: hir.SConString, Text: text}}, b.span())
}

func (b *builder) path(names ...string) hir.ExpIdx {
	return b.ar.Exp(hir.ExpPath{Path: hir.PathOf(names...)}, b.span())
}

func (b *builder) tuple(exps ...hir.ExpIdx) hir.ExpIdx {
	rows := make([]hir.ExpRow, len(exps))
	for i, e := range exps {
		rows[i] = hir.ExpRow{Lab: hir.TupleLab(i + 1), Exp: e}
	}
	return b.ar.Exp(hir.ExpRecord{Rows: rows}, b.span())
}

func (b *builder) app(fn, arg hir.ExpIdx) hir.ExpIdx {
	return b.ar.Exp(hir.ExpApp{Fn: fn, Arg: arg}, b.span())
}

func (b *builder) varPat(name string) hir.PatIdx {
	return b.ar.Pat(hir.PatCon{Path: hir.PathOf(name)}, b.span())
}

func (b *builder) valDec(name string, exp hir.ExpIdx) hir.StrDecIdx {
	dec := b.ar.Dec(hir.DecVal{Binds: []hir.ValBind{{Pat: b.varPat(name), Exp: exp}}}, b.span())
	return b.ar.StrDec(hir.StrDecDec{Dec: dec}, b.span())
}

// val x = 1 + 2
func demoArith() demo {
	b := newBuilder()
	sum := b.app(b.path("+"), b.tuple(b.intLit("1"), b.intLit("2")))
	return demo{title: "val x = 1 + 2", arenas: b.ar, root: []hir.StrDecIdx{b.valDec("x", sum)}}
}

// val id = fn x => x
func demoIdentity() demo {
	b := newBuilder()
	fn := b.ar.Exp(hir.ExpFn{Arms: []hir.Arm{{Pat: b.varPat("x"), Exp: b.path("x")}}}, b.span())
	return demo{title: "val id = fn x => x", arenas: b.ar, root: []hir.StrDecIdx{b.valDec("id", fn)}}
}

// datatype 'a t = A | B of 'a  followed by  val b = B 3
func demoDatatype() demo {
	b := newBuilder()
	alpha := b.ar.Ty(hir.TyVar{Name: hir.NewName("'a")}, b.span())
	dt := b.ar.Dec(hir.DecDatatype{Binds: []hir.DatBind{{
		TyVars: []hir.Name{hir.NewName("'a")},
		Name:   hir.NewName("t"),
		Cons: []hir.ConBind{
			{Name: hir.NewName("A")},
			{Name: hir.NewName("B"), Arg: alpha},
		},
	}}}, b.span())
	dtDec := b.ar.StrDec(hir.StrDecDec{Dec: dt}, b.span())
	bind := b.valDec("b", b.app(b.path("B"), b.intLit("3")))
	return demo{title: "datatype 'a t = A | B of 'a; val b = B 3", arenas: b.ar, root: []hir.StrDecIdx{dtDec, bind}}
}

// val x : int = "hi"
func demoMismatch() demo {
	b := newBuilder()
	intTy := b.ar.Ty(hir.TyCon{Path: hir.PathOf("int")}, b.span())
	pat := b.ar.Pat(hir.PatTyped{Pat: b.varPat("x"), Ty: intTy}, b.span())
	dec := b.ar.Dec(hir.DecVal{Binds: []hir.ValBind{{Pat: pat, Exp: b.strLit("hi")}}}, b.span())
	return demo{
		title:  `val x : int = "hi"`,
		arenas: b.ar,
		root:   []hir.StrDecIdx{b.ar.StrDec(hir.StrDecDec{Dec: dec}, b.span())},
	}
}

// structure S :> sig type t val z : t end = struct type t = int val z = 0 end
// val bad = S.z + 1
func demoOpaque() demo {
	b := newBuilder()
	tSpec := b.ar.Spec(hir.SpecTy{Name: hir.NewName("t")}, b.span())
	tTy := b.ar.Ty(hir.TyCon{Path: hir.PathOf("t")}, b.span())
	zSpec := b.ar.Spec(hir.SpecVal{Name: hir.NewName("z"), Ty: tTy}, b.span())
	sigExp := b.ar.SigExp(hir.SigExpSpec{Specs: []hir.SpecIdx{tSpec, zSpec}}, b.span())

	intTy := b.ar.Ty(hir.TyCon{Path: hir.PathOf("int")}, b.span())
	tyDec := b.ar.Dec(hir.DecTy{Binds: []hir.TyBind{{Name: hir.NewName("t"), Ty: intTy}}}, b.span())
	zDec := b.ar.Dec(hir.DecVal{Binds: []hir.ValBind{{Pat: b.varPat("z"), Exp: b.intLit("0")}}}, b.span())
	body := b.ar.StrExp(hir.StrExpStruct{Decs: []hir.StrDecIdx{
		b.ar.StrDec(hir.StrDecDec{Dec: tyDec}, b.span()),
		b.ar.StrDec(hir.StrDecDec{Dec: zDec}, b.span()),
	}}, b.span())
	ascribed := b.ar.StrExp(hir.StrExpAscription{StrExp: body, SigExp: sigExp, Kind: hir.Opaque}, b.span())
	strDec := b.ar.StrDec(hir.StrDecStructure{Name: hir.NewName("S"), StrExp: ascribed}, b.span())

	bad := b.valDec("bad", b.app(b.path("+"), b.tuple(b.path("S", "z"), b.intLit("1"))))
	return demo{
		title:  "structure S :> sig type t val z : t end = struct ... end; val bad = S.z + 1",
		arenas: b.ar,
		root:   []hir.StrDecIdx{strDec, bad},
	}
}
