package types

import (
	"fmt"
	"strings"

	"github.com/sunholo/smlcheck/internal/hir"
)

// Precedence levels for type display; higher binds tighter.
type tyPrec int

const (
	precArrow tyPrec = iota
	precStar
	precApp
)

type tyDisplay struct {
	syms *Syms
	sub  *Subst
	// vars names the enclosing scheme's bound variables; nil outside a
	// scheme.
	vars BoundVars
}

// TyString renders ty after zonking. Unconstrained meta variables render
// as "?" and equality-constrained ones as "''?"; overloaded ones render
// as their overload's name and row-constrained ones as an open record.
func TyString(syms *Syms, sub *Subst, ty Ty) string {
	d := tyDisplay{syms: syms, sub: sub}
	var b strings.Builder
	d.ty(&b, ty, precArrow)
	return b.String()
}

// SchemeString renders a scheme's body with its bound variables named
// 'a, 'b, ... ('' for equality slots).
func SchemeString(syms *Syms, scheme TyScheme) string {
	d := tyDisplay{syms: syms, vars: scheme.BoundVars}
	var b strings.Builder
	d.ty(&b, scheme.Ty, precArrow)
	return b.String()
}

// boundVarName yields 'a..'z, then 'aa, 'bb, ... with '' for equality.
func boundVarName(kinds BoundVars, idx int) string {
	prefix := "'"
	if idx < len(kinds) {
		if _, eq := kinds[idx].(EqualityKind); eq {
			prefix = "''"
		}
	}
	const alpha = 'z' - 'a' + 1
	quot := idx / alpha
	rem := idx % alpha
	ch := string(rune('a' + rem))
	return prefix + strings.Repeat(ch, quot+1)
}

func (d tyDisplay) ty(b *strings.Builder, ty Ty, prec tyPrec) {
	if d.sub != nil {
		ty = d.sub.head(ty)
	}
	switch t := ty.(type) {
	case noneTy:
		b.WriteString("_")
	case *BoundVar:
		b.WriteString(boundVarName(d.vars, t.Index))
	case *MetaVar:
		d.metaVar(b, t)
	case *FixedVar:
		b.WriteString(string(t.Name))
	case *Record:
		d.record(b, t.Rows, prec, false)
	case *Con:
		d.con(b, t, prec)
	case *Fn:
		needsParens := prec > precArrow
		if needsParens {
			b.WriteString("(")
		}
		d.ty(b, t.Param, precStar)
		b.WriteString(" -> ")
		d.ty(b, t.Res, precArrow)
		if needsParens {
			b.WriteString(")")
		}
	}
}

func (d tyDisplay) metaVar(b *strings.Builder, mv *MetaVar) {
	var kind TyVarKind
	if d.sub != nil {
		kind = d.sub.Kind(mv)
	}
	switch k := kind.(type) {
	case EqualityKind:
		b.WriteString("''?")
	case OverloadKind:
		b.WriteString(k.Overload.String())
	case RecordKind:
		d.record(b, k.Rows, precArrow, true)
	default:
		b.WriteString("?")
	}
}

func (d tyDisplay) record(b *strings.Builder, rows RecordRows, prec tyPrec, open bool) {
	labs := OrderedLabs(rows)
	if len(labs) == 0 && !open {
		b.WriteString("unit")
		return
	}
	if !open && hir.IsTuple(labs) {
		needsParens := prec > precStar
		if needsParens {
			b.WriteString("(")
		}
		for i, lab := range labs {
			if i > 0 {
				b.WriteString(" * ")
			}
			d.ty(b, rows[lab], precApp)
		}
		if needsParens {
			b.WriteString(")")
		}
		return
	}
	b.WriteString("{ ")
	for i, lab := range labs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(lab.String())
		b.WriteString(" : ")
		d.ty(b, rows[lab], precArrow)
	}
	if open {
		if len(labs) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteString(" }")
}

func (d tyDisplay) con(b *strings.Builder, t *Con, prec tyPrec) {
	switch len(t.Args) {
	case 0:
	case 1:
		d.ty(b, t.Args[0], precApp)
		b.WriteString(" ")
	default:
		b.WriteString("(")
		for i, arg := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			d.ty(b, arg, precArrow)
		}
		b.WriteString(") ")
	}
	if d.syms != nil {
		b.WriteString(d.syms.Name(t.Sym))
	} else {
		fmt.Fprintf(b, "t%d", int(t.Sym))
	}
}
