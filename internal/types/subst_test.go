package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/smlcheck/internal/hir"
)

// tyEqual compares types structurally after resolving nothing: use on
// fully applied types.
func tyEqual(a, b Ty) bool {
	return cmp.Equal(TyString(nil, nil, a), TyString(nil, nil, b))
}

func TestApplySolvedChain(t *testing.T) {
	sub := NewSubst()
	var gen MetaGen
	a := gen.Fresh()
	b := gen.Fresh()

	sub.Solve(a, b)
	sub.Solve(b, Zero(SymInt))

	got := sub.Apply(a)
	assert.True(t, tyEqual(Zero(SymInt), got))
}

// TestApplyIdempotent builds a set of types over a substitution with
// solved and unsolved variables and checks apply(apply(ty)) = apply(ty).
func TestApplyIdempotent(t *testing.T) {
	sub := NewSubst()
	var gen MetaGen
	solved := gen.Fresh()
	unsolved := gen.Fresh()
	chained := gen.Fresh()
	sub.Solve(solved, Zero(SymInt))
	sub.Solve(chained, solved)

	tys := []Ty{
		None,
		solved,
		unsolved,
		chained,
		Fun(solved, unsolved),
		Tuple(solved, chained, Zero(SymBool)),
		&Con{Args: []Ty{Fun(chained, solved)}, Sym: SymList},
		&Record{Rows: RecordRows{hir.NameLab("x"): solved, hir.NameLab("y"): unsolved}},
	}
	for _, ty := range tys {
		once := sub.Apply(ty)
		twice := sub.Apply(once)
		assert.True(t, tyEqual(once, twice), "apply not idempotent on %s", TyString(nil, sub, ty))
	}
}

func TestSolveTwicePanics(t *testing.T) {
	sub := NewSubst()
	var gen MetaGen
	mv := gen.Fresh()
	sub.Solve(mv, Zero(SymInt))
	assert.Panics(t, func() { sub.Solve(mv, Zero(SymBool)) })
}

func TestKinds(t *testing.T) {
	sub := NewSubst()
	var gen MetaGen
	mv := gen.FreshKinded(sub, EqualityKind{})
	require.IsType(t, EqualityKind{}, sub.Kind(mv))

	// solving discharges the kind.
	sub.Solve(mv, Zero(SymInt))
	assert.Nil(t, sub.Kind(mv))
}

func TestFixedGen(t *testing.T) {
	var gen FixedGen
	plain := gen.Fresh(hir.NewName("'a"))
	eq := gen.Fresh(hir.NewName("''a"))
	assert.False(t, plain.Equality)
	assert.True(t, eq.Equality)
	assert.NotEqual(t, plain.ID, eq.ID)
}
