package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeAsBasics(t *testing.T) {
	tests := []struct {
		composite Composite
		want      []Basic
	}{
		{WordInt, []Basic{BasicWord, BasicInt}},
		{RealInt, []Basic{BasicReal, BasicInt}},
		{Num, []Basic{BasicWord, BasicReal, BasicInt}},
		{NumTxt, []Basic{BasicWord, BasicReal, BasicInt, BasicString, BasicChar}},
		{NumTxtEq, []Basic{BasicWord, BasicInt, BasicString, BasicChar}},
	}
	for _, tt := range tests {
		t.Run(tt.composite.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.composite.AsBasics())
		})
	}
}

// TestCompositeUnifyTotal checks the intersection table is defined on
// every pair and is symmetric as a set of basics.
func TestCompositeUnifyTotal(t *testing.T) {
	all := []Composite{WordInt, RealInt, Num, NumTxt, NumTxtEq}
	for _, a := range all {
		for _, b := range all {
			got, ok := UnifyOverloads(a, b)
			require.True(t, ok, "%s ∩ %s", a, b)
			flip, ok := UnifyOverloads(b, a)
			require.True(t, ok)
			assert.ElementsMatch(t, got.AsBasics(), flip.AsBasics(), "%s ∩ %s", a, b)
			// the intersection never admits a basic outside either side.
			for _, basic := range got.AsBasics() {
				assert.Contains(t, a.AsBasics(), basic)
				assert.Contains(t, b.AsBasics(), basic)
			}
		}
	}
}

func TestUnifyOverloads(t *testing.T) {
	tests := []struct {
		name string
		a, b Overload
		want []Basic
		ok   bool
	}{
		{"same basic", BasicInt, BasicInt, []Basic{BasicInt}, true},
		{"different basics", BasicInt, BasicReal, nil, false},
		{"basic in composite", BasicInt, Num, []Basic{BasicInt}, true},
		{"basic not in composite", BasicString, Num, nil, false},
		{"wordint and realint", WordInt, RealInt, []Basic{BasicInt}, true},
		{"num and numtxt", Num, NumTxt, []Basic{BasicWord, BasicReal, BasicInt}, true},
		{"numtxteq and realint", NumTxtEq, RealInt, []Basic{BasicInt}, true},
		{"numtxteq and num", NumTxtEq, Num, []Basic{BasicWord, BasicInt}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := UnifyOverloads(tt.a, tt.b)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.ElementsMatch(t, tt.want, got.AsBasics())
			}
		})
	}
}

func TestEqualityBasics(t *testing.T) {
	tests := []struct {
		name string
		ov   Overload
		want []Basic
		ok   bool
	}{
		{"real alone", BasicReal, nil, false},
		{"int alone", BasicInt, []Basic{BasicInt}, true},
		{"realint", RealInt, []Basic{BasicInt}, true},
		{"num", Num, []Basic{BasicWord, BasicInt}, true},
		{"numtxt", NumTxt, []Basic{BasicWord, BasicInt, BasicString, BasicChar}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EqualityBasics(tt.ov)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.ElementsMatch(t, tt.want, got.AsBasics())
			}
		})
	}
}

func TestDefaultBasic(t *testing.T) {
	for _, ov := range []Overload{WordInt, RealInt, Num, NumTxt, NumTxtEq, BasicInt} {
		assert.Equal(t, BasicInt, DefaultBasic(ov), "%s", ov)
	}
	assert.Equal(t, BasicReal, DefaultBasic(BasicReal))
}
