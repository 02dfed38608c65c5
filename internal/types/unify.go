package types

import (
	"fmt"
	"strings"

	"github.com/sunholo/smlcheck/internal/hir"
)

// Unification errors. Each carries enough structure for the caller to
// build a diagnostic; Error() renders a plain message without sym names
// (use the display helpers with a Syms for user-facing text).

// CircularityError: the occurs check failed.
type CircularityError struct {
	Meta *MetaVar
	Ty   Ty
}

func (e *CircularityError) Error() string {
	return fmt.Sprintf("circular type: variable %d occurs in its own solution", e.Meta.ID)
}

// HeadMismatchError: the head constructors disagree.
type HeadMismatchError struct {
	Want Ty
	Got  Ty
}

func (e *HeadMismatchError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.Want.Desc(), e.Got.Desc())
}

// RecordLabelMismatchError: record types with unequal label sets.
type RecordLabelMismatchError struct {
	Want []hir.Lab
	Got  []hir.Lab
}

func (e *RecordLabelMismatchError) Error() string {
	return fmt.Sprintf("record label mismatch: expected {%s}, found {%s}", labsString(e.Want), labsString(e.Got))
}

func labsString(labs []hir.Lab) string {
	parts := make([]string, len(labs))
	for i, l := range labs {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}

// OverloadError: an overload constraint admits no basic for the type.
type OverloadError struct {
	Overload Overload
	Ty       Ty
}

func (e *OverloadError) Error() string {
	return fmt.Sprintf("cannot resolve overload %s with %s", e.Overload, e.Ty.Desc())
}

// EqualityError: a non-equality type where equality is required.
type EqualityError struct {
	Ty Ty
}

func (e *EqualityError) Error() string {
	return fmt.Sprintf("not an equality type: %s", e.Ty.Desc())
}

// IncompatibleKindsError: two kind constraints with empty intersection.
type IncompatibleKindsError struct {
	A TyVarKind
	B TyVarKind
}

func (e *IncompatibleKindsError) Error() string {
	return "incompatible type variable constraints"
}

// MissingRowError: a record lacks a row required by a row constraint.
type MissingRowError struct {
	Lab hir.Lab
	Got Ty
}

func (e *MissingRowError) Error() string {
	return fmt.Sprintf("missing record field: %s", e.Lab)
}

// Unifier unifies types, recording solutions and kind constraints in the
// Subst. It consults the Syms for equality verdicts and overload
// registries.
type Unifier struct {
	Syms  *Syms
	Subst *Subst
}

// NewUnifier returns a unifier over the given stores.
func NewUnifier(syms *Syms, subst *Subst) *Unifier {
	return &Unifier{Syms: syms, Subst: subst}
}

// Unify makes want and got equal under the substitution, or returns the
// first error. On success, Apply(want) and Apply(got) are structurally
// identical.
func (u *Unifier) Unify(want, got Ty) error {
	want = u.Subst.head(want)
	got = u.Subst.head(got)

	if _, ok := want.(noneTy); ok {
		return nil
	}
	if _, ok := got.(noneTy); ok {
		return nil
	}

	if mv, ok := want.(*MetaVar); ok {
		return u.unifyMetaVar(mv, got, false)
	}
	if mv, ok := got.(*MetaVar); ok {
		return u.unifyMetaVar(mv, want, true)
	}

	switch w := want.(type) {
	case *BoundVar:
		if g, ok := got.(*BoundVar); ok && w.Index == g.Index {
			return nil
		}
		return &HeadMismatchError{Want: want, Got: got}
	case *FixedVar:
		if g, ok := got.(*FixedVar); ok && w.ID == g.ID {
			return nil
		}
		return &HeadMismatchError{Want: want, Got: got}
	case *Record:
		g, ok := got.(*Record)
		if !ok {
			return &HeadMismatchError{Want: want, Got: got}
		}
		return u.unifyRows(w.Rows, g.Rows)
	case *Con:
		g, ok := got.(*Con)
		if !ok {
			return &HeadMismatchError{Want: want, Got: got}
		}
		if w.Sym != g.Sym || len(w.Args) != len(g.Args) {
			return &HeadMismatchError{Want: want, Got: got}
		}
		for i := range w.Args {
			if err := u.Unify(w.Args[i], g.Args[i]); err != nil {
				return err
			}
		}
		return nil
	case *Fn:
		g, ok := got.(*Fn)
		if !ok {
			return &HeadMismatchError{Want: want, Got: got}
		}
		if err := u.Unify(w.Param, g.Param); err != nil {
			return err
		}
		return u.Unify(w.Res, g.Res)
	default:
		return &HeadMismatchError{Want: want, Got: got}
	}
}

// unifyRows unifies two closed record rows: label sets must match
// exactly, then unify by label in deterministic order.
func (u *Unifier) unifyRows(want, got RecordRows) error {
	wantLabs := OrderedLabs(want)
	gotLabs := OrderedLabs(got)
	if len(wantLabs) != len(gotLabs) {
		return &RecordLabelMismatchError{Want: wantLabs, Got: gotLabs}
	}
	for i, lab := range wantLabs {
		if gotLabs[i] != lab {
			return &RecordLabelMismatchError{Want: wantLabs, Got: gotLabs}
		}
	}
	for _, lab := range wantLabs {
		if err := u.Unify(want[lab], got[lab]); err != nil {
			return err
		}
	}
	return nil
}

// unifyMetaVar points mv at ty (which is head-resolved and not None).
// flip records which side mv came from, for error orientation.
func (u *Unifier) unifyMetaVar(mv *MetaVar, ty Ty, flip bool) error {
	if other, ok := ty.(*MetaVar); ok {
		if other.ID == mv.ID {
			return nil
		}
		merged, err := u.intersectKinds(u.Subst.Kind(mv), u.Subst.Kind(other))
		if err != nil {
			return err
		}
		if merged != nil {
			u.Subst.SetKind(other, merged)
		} else {
			delete(u.Subst.kinds, other.ID)
		}
		u.Subst.Solve(mv, other)
		return nil
	}

	if u.occurs(mv, ty) {
		return &CircularityError{Meta: mv, Ty: ty}
	}
	if err := u.checkKind(u.Subst.Kind(mv), ty, flip); err != nil {
		return err
	}
	u.Subst.Solve(mv, ty)
	return nil
}

// checkKind checks that ty satisfies a kind constraint about to be
// discharged by solving.
func (u *Unifier) checkKind(kind TyVarKind, ty Ty, flip bool) error {
	switch k := kind.(type) {
	case nil:
		return nil
	case EqualityKind:
		return u.Equality(ty)
	case OverloadKind:
		con, ok := ty.(*Con)
		if ok && len(con.Args) == 0 && u.Syms.IsOverloadSym(k.Overload, con.Sym) {
			return nil
		}
		return &OverloadError{Overload: k.Overload, Ty: ty}
	case RecordKind:
		rec, ok := ty.(*Record)
		if !ok {
			if flip {
				return &HeadMismatchError{Want: ty, Got: &Record{Rows: k.Rows}}
			}
			return &HeadMismatchError{Want: &Record{Rows: k.Rows}, Got: ty}
		}
		for _, lab := range OrderedLabs(k.Rows) {
			inner, ok := rec.Rows[lab]
			if !ok {
				return &MissingRowError{Lab: lab, Got: ty}
			}
			if err := u.Unify(k.Rows[lab], inner); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

// intersectKinds tightens two kind constraints into one. A nil result
// with nil error means the merged variable is plain.
func (u *Unifier) intersectKinds(a, b TyVarKind) (TyVarKind, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	switch ak := a.(type) {
	case EqualityKind:
		switch bk := b.(type) {
		case EqualityKind:
			return EqualityKind{}, nil
		case OverloadKind:
			return u.equalityOverload(bk)
		case RecordKind:
			return u.equalityRecord(bk)
		}
	case OverloadKind:
		switch bk := b.(type) {
		case EqualityKind:
			return u.equalityOverload(ak)
		case OverloadKind:
			merged, ok := UnifyOverloads(ak.Overload, bk.Overload)
			if !ok {
				return nil, &OverloadError{Overload: ak.Overload, Ty: None}
			}
			return OverloadKind{Overload: merged}, nil
		case RecordKind:
			return nil, &IncompatibleKindsError{A: a, B: b}
		}
	case RecordKind:
		switch bk := b.(type) {
		case EqualityKind:
			return u.equalityRecord(ak)
		case OverloadKind:
			return nil, &IncompatibleKindsError{A: a, B: b}
		case RecordKind:
			rows := make(RecordRows, len(ak.Rows)+len(bk.Rows))
			for lab, ty := range ak.Rows {
				rows[lab] = ty
			}
			for _, lab := range OrderedLabs(bk.Rows) {
				if existing, ok := rows[lab]; ok {
					if err := u.Unify(existing, bk.Rows[lab]); err != nil {
						return nil, err
					}
				} else {
					rows[lab] = bk.Rows[lab]
				}
			}
			return RecordKind{Rows: rows, Range: ak.Range}, nil
		}
	}
	return nil, &IncompatibleKindsError{A: a, B: b}
}

// equalityOverload intersects an overload constraint with equality,
// keeping only equality-admitting basics.
func (u *Unifier) equalityOverload(k OverloadKind) (TyVarKind, error) {
	ov, ok := EqualityBasics(k.Overload)
	if !ok {
		return nil, &EqualityError{Ty: None}
	}
	return OverloadKind{Overload: ov}, nil
}

// equalityRecord demands equality of every row and keeps the row
// constraint.
func (u *Unifier) equalityRecord(k RecordKind) (TyVarKind, error) {
	for _, lab := range OrderedLabs(k.Rows) {
		if err := u.Equality(k.Rows[lab]); err != nil {
			return nil, err
		}
	}
	return k, nil
}

// Equality checks that ty admits equality, tightening the kinds of any
// meta variables it reaches.
func (u *Unifier) Equality(ty Ty) error {
	switch t := u.Subst.head(ty).(type) {
	case noneTy, *BoundVar:
		return nil
	case *MetaVar:
		merged, err := u.intersectKinds(u.Subst.Kind(t), EqualityKind{})
		if err != nil {
			return err
		}
		u.Subst.SetKind(t, merged)
		return nil
	case *FixedVar:
		if t.Equality {
			return nil
		}
		return &EqualityError{Ty: t}
	case *Record:
		for _, lab := range OrderedLabs(t.Rows) {
			if err := u.Equality(t.Rows[lab]); err != nil {
				return err
			}
		}
		return nil
	case *Con:
		switch u.Syms.Equality(t.Sym) {
		case EqualityAlways:
			return nil
		case EqualityNever:
			return &EqualityError{Ty: t}
		default:
			for _, arg := range t.Args {
				if err := u.Equality(arg); err != nil {
					return err
				}
			}
			return nil
		}
	case *Fn:
		return &EqualityError{Ty: t}
	default:
		return nil
	}
}

// occurs reports whether mv occurs in ty after substitution. Unsolved
// meta vars with row constraints are traversed through their rows.
func (u *Unifier) occurs(mv *MetaVar, ty Ty) bool {
	switch t := u.Subst.head(ty).(type) {
	case *MetaVar:
		if t.ID == mv.ID {
			return true
		}
		if k, ok := u.Subst.Kind(t).(RecordKind); ok {
			for _, inner := range k.Rows {
				if u.occurs(mv, inner) {
					return true
				}
			}
		}
		return false
	case *Record:
		for _, inner := range t.Rows {
			if u.occurs(mv, inner) {
				return true
			}
		}
		return false
	case *Con:
		for _, arg := range t.Args {
			if u.occurs(mv, arg) {
				return true
			}
		}
		return false
	case *Fn:
		return u.occurs(mv, t.Param) || u.occurs(mv, t.Res)
	default:
		return false
	}
}
