package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/smlcheck/internal/hir"
)

func valInfo(ty Ty) *ValInfo {
	return &ValInfo{TyScheme: Mono(ty), IdStatus: ValStatus(), Defs: DefSet()}
}

func TestOrderedNamesDeterministic(t *testing.T) {
	env := NewEnv()
	for _, name := range []string{"zebra", "apple", "mango", "Banana"} {
		env.ValEnv[hir.NewName(name)] = valInfo(Zero(SymInt))
	}
	first := env.ValEnv.OrderedNames()
	for i := 0; i < 10; i++ {
		assert.True(t, cmp.Equal(first, env.ValEnv.OrderedNames()))
	}
	assert.Equal(t, []hir.Name{"Banana", "apple", "mango", "zebra"}, first)
}

func TestAppendRightBias(t *testing.T) {
	left := NewEnv()
	right := NewEnv()
	name := hir.NewName("x")
	left.ValEnv[name] = valInfo(Zero(SymInt))
	right.ValEnv[name] = valInfo(Zero(SymBool))

	left.Append(right)
	assert.Same(t, right.ValEnv[name], left.ValEnv[name])
}

func TestGetEnv(t *testing.T) {
	inner := NewEnv()
	inner.ValEnv[hir.NewName("x")] = valInfo(Zero(SymInt))
	mid := NewEnv()
	mid.StrEnv[hir.NewName("B")] = inner
	outer := NewEnv()
	outer.StrEnv[hir.NewName("A")] = mid

	got, _, ok := outer.GetEnv([]hir.Name{"A", "B"})
	require.True(t, ok)
	assert.Same(t, inner, got)

	_, missing, ok := outer.GetEnv([]hir.Name{"A", "C"})
	assert.False(t, ok)
	assert.Equal(t, hir.Name("C"), missing)
}

func TestBsAdd(t *testing.T) {
	src := NewBs()
	src.Env.StrEnv[hir.NewName("S")] = NewEnv()
	src.SigEnv[hir.NewName("SIG")] = &Sig{TyNames: map[Sym]bool{}, Env: NewEnv()}
	src.FunEnv[hir.NewName("F")] = &FunSig{Param: &Sig{TyNames: map[Sym]bool{}, Env: NewEnv()}, Body: NewEnv()}

	dst := NewBs()
	assert.True(t, dst.Add(NamespaceStructure, hir.NewName("T"), src, hir.NewName("S")))
	assert.True(t, dst.Add(NamespaceSignature, hir.NewName("SIG2"), src, hir.NewName("SIG")))
	assert.True(t, dst.Add(NamespaceFunctor, hir.NewName("G"), src, hir.NewName("F")))
	assert.False(t, dst.Add(NamespaceStructure, hir.NewName("T"), src, hir.NewName("missing")))

	_, ok := dst.Env.StrEnv[hir.NewName("T")]
	assert.True(t, ok)
}

func TestDisallowVal(t *testing.T) {
	bs := NewBs()
	inner := NewEnv()
	inner.ValEnv[hir.NewName("f")] = valInfo(Zero(SymInt))
	bs.Env.StrEnv[hir.NewName("S")] = inner

	require.NoError(t, bs.DisallowVal(hir.PathOf("S", "f")))
	assert.True(t, inner.ValEnv[hir.NewName("f")].Disallowed)

	assert.Error(t, bs.DisallowVal(hir.PathOf("S", "f")), "already disallowed")
	assert.Error(t, bs.DisallowVal(hir.PathOf("S", "missing")))
	assert.Error(t, bs.DisallowVal(hir.PathOf("T", "f")))
}

func TestIdStatus(t *testing.T) {
	assert.True(t, ValStatus().SameKindAs(ValStatus()))
	assert.True(t, ExnStatus(0).SameKindAs(ExnStatus(3)), "exception identity does not matter for kind")
	assert.False(t, ConStatus().SameKindAs(ValStatus()))
}
