package stepparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgs_BasicShapes(t *testing.T) {
	args := parseArgs(`'2O2Fr$t7X7Zf8NOew3FNr2',#12,$,*,.T.,3.5,7,(#1,#2,#3)`)
	assert.Len(t, args, 8)

	s, ok := args[0].AsString()
	assert.True(t, ok)
	assert.Equal(t, "2O2Fr$t7X7Zf8NOew3FNr2", s)

	ref, ok := args[1].AsRef()
	assert.True(t, ok)
	assert.Equal(t, uint32(12), ref)

	assert.Equal(t, ArgUnset, args[2].Kind)
	assert.Equal(t, ArgDerived, args[3].Kind)

	b, ok := args[4].AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	r, ok := args[5].AsReal()
	assert.True(t, ok)
	assert.Equal(t, 3.5, r)

	n, ok := args[6].AsReal()
	assert.True(t, ok)
	assert.Equal(t, 7.0, n)

	list, ok := args[7].AsList()
	assert.True(t, ok)
	assert.Len(t, list, 3)
}

func TestParseArgs_TrailingDotReal(t *testing.T) {
	args := parseArgs(`5.,-2.5E3`)
	v, ok := args[0].AsReal()
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)

	v2, ok := args[1].AsReal()
	assert.True(t, ok)
	assert.Equal(t, -2500.0, v2)
}

func TestParseArgs_TypedWrapper(t *testing.T) {
	args := parseArgs(`IFCLABEL('FireRating'),IFCREAL(0.25)`)
	s, ok := args[0].AsString()
	assert.True(t, ok)
	assert.Equal(t, "FireRating", s)

	r, ok := args[1].AsReal()
	assert.True(t, ok)
	assert.Equal(t, 0.25, r)
}

func TestParseArgs_NestedCommasInsideLists(t *testing.T) {
	args := parseArgs(`(#1,#2),(#3,(#4,#5))`)
	assert.Len(t, args, 2)
	l0, _ := args[0].AsList()
	assert.Len(t, l0, 2)
	l1, _ := args[1].AsList()
	assert.Len(t, l1, 2)
	nested, ok := l1[1].AsList()
	assert.True(t, ok)
	assert.Len(t, nested, 2)
}

func TestDecodeStepString_DoubledQuote(t *testing.T) {
	assert.Equal(t, "Bob's wall", decodeStepString(`'Bob''s wall'`))
}

func TestDecodeStepString_X2Escape(t *testing.T) {
	// \X2\00E9\X0\ is U+00E9 (é)
	got := decodeStepString(`'Caf\X2\00E9\X0\'`)
	assert.Equal(t, "Café", got)
}

func TestDecodeStepString_XEscape(t *testing.T) {
	got := decodeStepString(`'100\X\B5m'`)
	assert.Equal(t, "100µm", got)
}

func TestSplitTopLevel_IgnoresCommasInStringsAndParens(t *testing.T) {
	parts := splitTopLevel(`'a,b',(1,2),3`, ',')
	assert.Equal(t, []string{`'a,b'`, `(1,2)`, `3`}, parts)
}
