package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

func TestLoad(t *testing.T) {
	cfg, err := Load([]byte("disallow:\n  - S.f\n  - g\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"S.f", "g"}, cfg.Disallow)
}

func TestLoadEmpty(t *testing.T) {
	cfg, err := Load([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, cfg.Disallow)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load([]byte("disallow: {a: [}"))
	assert.Error(t, err)
}

func TestParsePath(t *testing.T) {
	p, err := ParsePath("A.B.x")
	require.NoError(t, err)
	assert.Equal(t, "A.B.x", p.String())

	_, err = ParsePath("A..x")
	assert.Error(t, err)
	_, err = ParsePath("")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	bs := types.NewBs()
	inner := types.NewEnv()
	inner.ValEnv[hir.NewName("f")] = &types.ValInfo{
		TyScheme: types.Mono(types.Zero(types.SymInt)),
		IdStatus: types.ValStatus(),
		Defs:     types.DefSet(),
	}
	bs.Env.StrEnv[hir.NewName("S")] = inner

	cfg := &Config{Disallow: []string{"S.f"}}
	require.NoError(t, cfg.Apply(bs))
	assert.True(t, inner.ValEnv[hir.NewName("f")].Disallowed)

	cfg = &Config{Disallow: []string{"S.missing"}}
	assert.Error(t, cfg.Apply(bs))
}
