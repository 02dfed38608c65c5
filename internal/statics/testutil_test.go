package statics

import (
	"testing"

	"github.com/sunholo/smlcheck/internal/diag"
	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// progBuilder assembles HIR units for tests the way the lowering pass
// would.
type progBuilder struct {
	ar   *hir.Arenas
	root []hir.StrDecIdx
	pos  uint32
}

func newProg() *progBuilder { return &progBuilder{ar: hir.NewArenas()} }

func (b *progBuilder) span() hir.Range {
	b.pos += 10
	return hir.Span(b.pos, b.pos+5)
}

func (b *progBuilder) intLit(text string) hir.ExpIdx {
	return b.ar.Exp(hir.ExpSCon{SCon: hir.SCon{Kind: hir.SConInt, Text: text}}, b.span())
}

func (b *progBuilder) realLit(text string) hir.ExpIdx {
	return b.ar.Exp(hir.ExpSCon{SCon: hir.SCon{Kind: hir.SConReal, Text: text}}, b.span())
}

func (b *progBuilder) strLit(text string) hir.ExpIdx {
	return b.ar.Exp(hir.ExpSCon{SCon: hir.SCon{Kind: hir.SConString, Text: text}}, b.span())
}

func (b *progBuilder) path(names ...string) hir.ExpIdx {
	return b.ar.Exp(hir.ExpPath{Path: hir.PathOf(names...)}, b.span())
}

func (b *progBuilder) tuple(exps ...hir.ExpIdx) hir.ExpIdx {
	rows := make([]hir.ExpRow, len(exps))
	for i, e := range exps {
		rows[i] = hir.ExpRow{Lab: hir.TupleLab(i + 1), Exp: e}
	}
	return b.ar.Exp(hir.ExpRecord{Rows: rows}, b.span())
}

func (b *progBuilder) app(fn, arg hir.ExpIdx) hir.ExpIdx {
	return b.ar.Exp(hir.ExpApp{Fn: fn, Arg: arg}, b.span())
}

func (b *progBuilder) fn(arms ...hir.Arm) hir.ExpIdx {
	return b.ar.Exp(hir.ExpFn{Arms: arms}, b.span())
}

func (b *progBuilder) varPat(name string) hir.PatIdx {
	return b.ar.Pat(hir.PatCon{Path: hir.PathOf(name)}, b.span())
}

func (b *progBuilder) conPat(name string, arg hir.PatIdx) hir.PatIdx {
	return b.ar.Pat(hir.PatCon{Path: hir.PathOf(name), Arg: arg}, b.span())
}

func (b *progBuilder) tyCon(names ...string) hir.TyIdx {
	return b.ar.Ty(hir.TyCon{Path: hir.PathOf(names...)}, b.span())
}

func (b *progBuilder) tyVar(name string) hir.TyIdx {
	return b.ar.Ty(hir.TyVar{Name: hir.NewName(name)}, b.span())
}

// valDec appends `val name = exp` to the root.
func (b *progBuilder) valDec(name string, exp hir.ExpIdx) {
	dec := b.ar.Dec(hir.DecVal{Binds: []hir.ValBind{{Pat: b.varPat(name), Exp: exp}}}, b.span())
	b.root = append(b.root, b.ar.StrDec(hir.StrDecDec{Dec: dec}, b.span()))
}

// valRecDec appends `val rec name = exp`.
func (b *progBuilder) valRecDec(name string, exp hir.ExpIdx) {
	dec := b.ar.Dec(hir.DecVal{Rec: true, Binds: []hir.ValBind{{Pat: b.varPat(name), Exp: exp}}}, b.span())
	b.root = append(b.root, b.ar.StrDec(hir.StrDecDec{Dec: dec}, b.span()))
}

// datatypeDec appends a single datatype binding.
func (b *progBuilder) datatypeDec(tyVars []string, name string, cons ...hir.ConBind) {
	names := make([]hir.Name, len(tyVars))
	for i, v := range tyVars {
		names[i] = hir.NewName(v)
	}
	dec := b.ar.Dec(hir.DecDatatype{Binds: []hir.DatBind{{
		TyVars: names, Name: hir.NewName(name), Cons: cons,
	}}}, b.span())
	b.root = append(b.root, b.ar.StrDec(hir.StrDecDec{Dec: dec}, b.span()))
}

func (b *progBuilder) strDec(d hir.StrDec) {
	b.root = append(b.root, b.ar.StrDec(d, b.span()))
}

// check runs the program against a fresh minimal basis.
func (b *progBuilder) check(t *testing.T) (*types.Syms, Result) {
	t.Helper()
	syms, bs := Minimal()
	result := Check(syms, bs, b.ar, b.root)
	return syms, result
}

// valScheme looks up an exported value's rendered scheme.
func valScheme(t *testing.T, syms *types.Syms, result Result, name string) string {
	t.Helper()
	vi, ok := result.Bs.Env.ValEnv[hir.NewName(name)]
	if !ok {
		t.Fatalf("no exported value %s", name)
	}
	return types.SchemeString(syms, vi.TyScheme)
}

// codes extracts the diagnostic codes in emission order.
func codes(result Result) []diag.Code {
	out := make([]diag.Code, len(result.Errors))
	for i, e := range result.Errors {
		out[i] = e.Code
	}
	return out
}
