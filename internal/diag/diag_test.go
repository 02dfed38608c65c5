package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/smlcheck/internal/hir"
)

func TestRegistryCoversAllCodes(t *testing.T) {
	codes := []Code{
		Undefined, Duplicate, HeadMismatch, Circularity, RecordLabelMismatch,
		OverloadResolution, EqualityType, ValueRestriction, SignatureMatch,
		Realization, Disallowed, ConArity, OrPatBindings,
	}
	for _, code := range codes {
		info, ok := GetInfo(code)
		require.True(t, ok, "code %d", code)
		assert.Equal(t, code, info.Code)
		assert.Equal(t, "statics", info.Phase)
		assert.NotEmpty(t, info.Description)
		assert.True(t, IsStaticsCode(code))
	}
	assert.Len(t, Registry, len(codes), "every registry entry is a known code")
}

func TestErrorString(t *testing.T) {
	e := Error{Range: hir.Span(3, 9), Code: HeadMismatch, Severity: SeverityError, Message: "expected int, found string"}
	s := e.Error()
	assert.Contains(t, s, "3..9")
	assert.Contains(t, s, "5003")
	assert.Contains(t, s, "expected int, found string")
}

func TestSortErrors(t *testing.T) {
	errs := []Error{
		{Range: hir.Span(20, 25), Code: Undefined, Severity: SeverityError, Message: "b"},
		{Range: hir.Span(5, 9), Code: Duplicate, Severity: SeverityError, Message: "c"},
		{Range: hir.Span(5, 9), Code: Undefined, Severity: SeverityError, Message: "a"},
	}
	SortErrors(errs)
	assert.Equal(t, uint32(5), errs[0].Range.Start)
	assert.Equal(t, Undefined, errs[0].Code)
	assert.Equal(t, uint32(20), errs[2].Range.Start)
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, []Error{
		{Range: hir.Span(1, 4), Code: Undefined, Severity: SeverityError, Message: "undefined value: x"},
		{Range: hir.Span(8, 9), Code: ValueRestriction, Severity: SeverityWarning, Message: "not generalized"},
	}, false)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1..4 error [5001] undefined value: x", lines[0])
	assert.Equal(t, "8..9 warning [5008] not generalized", lines[1])
}
