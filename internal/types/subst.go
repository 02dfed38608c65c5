package types

import (
	"fmt"

	"github.com/sunholo/smlcheck/internal/hir"
)

// Subst is the meta-variable substitution: a map from solved meta vars to
// types, plus a map from unsolved meta vars to their kind constraints.
// Solutions are never removed or overwritten.
type Subst struct {
	solved map[int]Ty
	kinds  map[int]TyVarKind
}

// NewSubst returns an empty substitution.
func NewSubst() *Subst {
	return &Subst{solved: map[int]Ty{}, kinds: map[int]TyVarKind{}}
}

// Solve records a solution for mv. It panics if mv is already solved;
// the unifier resolves meta vars before solving them.
func (s *Subst) Solve(mv *MetaVar, ty Ty) {
	if _, ok := s.solved[mv.ID]; ok {
		panic(fmt.Sprintf("types: meta var %d solved twice", mv.ID))
	}
	s.solved[mv.ID] = ty
	delete(s.kinds, mv.ID)
}

// Solution returns mv's solution, if any.
func (s *Subst) Solution(mv *MetaVar) (Ty, bool) {
	ty, ok := s.solved[mv.ID]
	return ty, ok
}

// SetKind records or replaces mv's kind constraint. Tightening (kind
// intersection) is the unifier's job; SetKind just stores the result.
func (s *Subst) SetKind(mv *MetaVar, kind TyVarKind) {
	if _, ok := s.solved[mv.ID]; ok {
		panic(fmt.Sprintf("types: setting a kind on solved meta var %d", mv.ID))
	}
	s.kinds[mv.ID] = kind
}

// Kind returns mv's kind constraint, or nil when it is a plain variable.
func (s *Subst) Kind(mv *MetaVar) TyVarKind { return s.kinds[mv.ID] }

// head resolves a chain of solved meta vars at the top level only.
func (s *Subst) head(ty Ty) Ty {
	for {
		mv, ok := ty.(*MetaVar)
		if !ok {
			return ty
		}
		solved, ok := s.solved[mv.ID]
		if !ok {
			return ty
		}
		ty = solved
	}
}

// Apply walks ty, replacing every solved meta var by its solution,
// recursively. The result contains no solved meta vars, which makes
// Apply idempotent: Apply(Apply(ty)) == Apply(ty).
func (s *Subst) Apply(ty Ty) Ty {
	switch t := s.head(ty).(type) {
	case noneTy, *BoundVar, *FixedVar, *MetaVar:
		return s.head(ty)
	case *Record:
		rows := make(RecordRows, len(t.Rows))
		for lab, inner := range t.Rows {
			rows[lab] = s.Apply(inner)
		}
		return &Record{Rows: rows}
	case *Con:
		args := make([]Ty, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.Apply(a)
		}
		return &Con{Args: args, Sym: t.Sym}
	case *Fn:
		return &Fn{Param: s.Apply(t.Param), Res: s.Apply(t.Res)}
	default:
		return ty
	}
}

// Zonk is full-depth Apply; used before generalization and printing.
func (s *Subst) Zonk(ty Ty) Ty { return s.Apply(ty) }

// MetaGen mints globally fresh meta variables.
type MetaGen struct {
	next int
}

// Fresh returns a fresh plain meta variable.
func (g *MetaGen) Fresh() *MetaVar {
	g.next++
	return &MetaVar{ID: g.next}
}

// FreshKinded returns a fresh meta variable carrying kind in sub; a nil
// kind yields a plain variable.
func (g *MetaGen) FreshKinded(sub *Subst, kind TyVarKind) *MetaVar {
	mv := g.Fresh()
	if kind != nil {
		sub.SetKind(mv, kind)
	}
	return mv
}

// FixedGen mints fixed type variables.
type FixedGen struct {
	next int
}

// Fresh returns a fresh fixed variable for the user-written name, which
// carries its own equality marker (a leading '' in the name).
func (g *FixedGen) Fresh(name hir.Name) *FixedVar {
	g.next++
	equality := len(name) >= 2 && name[0] == '\'' && name[1] == '\''
	return &FixedVar{ID: g.next, Name: name, Equality: equality}
}
