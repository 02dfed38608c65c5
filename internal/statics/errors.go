package statics

import (
	"fmt"

	"github.com/sunholo/smlcheck/internal/diag"
	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// Item classifies what kind of thing a name refers to, for scope errors.
type Item int

const (
	ItemVal Item = iota
	ItemTy
	ItemStruct
	ItemSig
	ItemFunctor
)

func (i Item) String() string {
	switch i {
	case ItemVal:
		return "value"
	case ItemTy:
		return "type"
	case ItemStruct:
		return "structure"
	case ItemSig:
		return "signature"
	case ItemFunctor:
		return "functor"
	default:
		return "item"
	}
}

func (st *st) report(r hir.Range, code diag.Code, sev diag.Severity, msg string) {
	st.errors = append(st.errors, diag.Error{Range: r, Code: code, Severity: sev, Message: msg})
}

func (st *st) errUndefined(r hir.Range, item Item, name hir.Name) {
	st.report(r, diag.Undefined, diag.SeverityError, fmt.Sprintf("undefined %s: %s", item, name))
}

func (st *st) errDuplicate(r hir.Range, item Item, name hir.Name) {
	st.report(r, diag.Duplicate, diag.SeverityError, fmt.Sprintf("duplicate %s: %s", item, name))
}

func (st *st) errDisallowed(r hir.Range, path hir.Path) {
	st.report(r, diag.Disallowed, diag.SeverityError, fmt.Sprintf("disallowed path: %s", path))
}

func (st *st) errConArity(r hir.Range, name hir.Name, wantsArg bool) {
	if wantsArg {
		st.report(r, diag.ConArity, diag.SeverityError, fmt.Sprintf("constructor %s requires an argument", name))
	} else {
		st.report(r, diag.ConArity, diag.SeverityError, fmt.Sprintf("constructor %s takes no argument", name))
	}
}

func (st *st) errTyArity(r hir.Range, name hir.Name, want, got int) {
	st.report(r, diag.ConArity, diag.SeverityError, fmt.Sprintf("type %s expects %d argument(s), found %d", name, want, got))
}

func (st *st) errOrPatBindings(r hir.Range, name hir.Name) {
	st.report(r, diag.OrPatBindings, diag.SeverityError, fmt.Sprintf("name %s is not bound by every alternative", name))
}

func (st *st) warnDefaulted(r hir.Range, name hir.Name) {
	st.report(r, diag.ValueRestriction, diag.SeverityWarning, fmt.Sprintf("type of %s is not generalized; defaulting to unit", name))
}

// errUnify converts a unification error into a diagnostic at r. The
// orientation is want = expected, got = found.
func (st *st) errUnify(r hir.Range, err error) {
	switch e := err.(type) {
	case *types.CircularityError:
		st.report(r, diag.Circularity, diag.SeverityError,
			fmt.Sprintf("circular type: %s occurs in %s",
				types.TyString(st.syms, st.subst, e.Meta), types.TyString(st.syms, st.subst, e.Ty)))
	case *types.HeadMismatchError:
		st.report(r, diag.HeadMismatch, diag.SeverityError,
			fmt.Sprintf("expected %s, found %s",
				types.TyString(st.syms, st.subst, e.Want), types.TyString(st.syms, st.subst, e.Got)))
	case *types.RecordLabelMismatchError:
		st.report(r, diag.RecordLabelMismatch, diag.SeverityError, e.Error())
	case *types.MissingRowError:
		st.report(r, diag.RecordLabelMismatch, diag.SeverityError,
			fmt.Sprintf("missing record field: %s in %s", e.Lab, types.TyString(st.syms, st.subst, e.Got)))
	case *types.OverloadError:
		st.report(r, diag.OverloadResolution, diag.SeverityError,
			fmt.Sprintf("cannot resolve %s with %s", e.Overload, types.TyString(st.syms, st.subst, e.Ty)))
	case *types.EqualityError:
		st.report(r, diag.EqualityType, diag.SeverityError,
			fmt.Sprintf("not an equality type: %s", types.TyString(st.syms, st.subst, e.Ty)))
	case *types.IncompatibleKindsError:
		st.report(r, diag.OverloadResolution, diag.SeverityError, e.Error())
	default:
		st.report(r, diag.HeadMismatch, diag.SeverityError, err.Error())
	}
}
