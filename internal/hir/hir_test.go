package hir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNameNormalizes(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"
	assert.Equal(t, NewName(composed), NewName(decomposed))
}

func TestPath(t *testing.T) {
	p := PathOf("A", "B", "x")
	assert.Equal(t, "A.B.x", p.String())
	assert.Equal(t, Name("x"), p.Last)
	assert.Equal(t, []Name{"A", "B"}, p.Prefix)

	assert.Equal(t, "x", PathOf("x").String())
	assert.Panics(t, func() { PathOf() })
}

func TestLabOrder(t *testing.T) {
	labs := []Lab{NameLab("b"), TupleLab(2), NameLab("a"), TupleLab(1)}
	SortLabs(labs)
	assert.Equal(t, []Lab{TupleLab(1), TupleLab(2), NameLab("a"), NameLab("b")}, labs)
}

func TestIsTuple(t *testing.T) {
	assert.True(t, IsTuple([]Lab{TupleLab(1), TupleLab(2)}))
	assert.True(t, IsTuple([]Lab{TupleLab(1), TupleLab(2), TupleLab(3)}))
	assert.False(t, IsTuple([]Lab{TupleLab(1)}), "a single field is not a tuple")
	assert.False(t, IsTuple([]Lab{TupleLab(1), TupleLab(3)}))
	assert.False(t, IsTuple([]Lab{TupleLab(1), NameLab("x")}))
	assert.False(t, IsTuple(nil))
}

func TestTyVarEquality(t *testing.T) {
	assert.False(t, TyVar{Name: NewName("'a")}.IsEquality())
	assert.True(t, TyVar{Name: NewName("''a")}.IsEquality())
}

func TestArenas(t *testing.T) {
	ar := NewArenas()
	r := Span(3, 7)
	idx := ar.Exp(ExpSCon{SCon: SCon{Kind: SConInt, Text: "1"}}, r)
	require.NotZero(t, idx)
	assert.Equal(t, r, ar.ExpRange(idx))

	scon, ok := ar.GetExp(idx).(ExpSCon)
	require.True(t, ok)
	assert.Equal(t, SConInt, scon.SCon.Kind)

	assert.Nil(t, ar.GetExp(0), "index zero is reserved for absence")
}
