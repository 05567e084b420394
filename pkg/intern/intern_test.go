package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_EmptyStringIsZero(t *testing.T) {
	tab := New()
	assert.Equal(t, uint32(0), tab.Intern(""))
	assert.Equal(t, "", tab.Get(0))
}

func TestIntern_Deduplicates(t *testing.T) {
	tab := New()
	a := tab.Intern("2O2Fr$t7X7Zf8NOew3FNr2")
	b := tab.Intern("2O2Fr$t7X7Zf8NOew3FNr2")
	assert.Equal(t, a, b)
	assert.Equal(t, "2O2Fr$t7X7Zf8NOew3FNr2", tab.Get(a))
}

func TestIntern_DenseMonotonicIDs(t *testing.T) {
	tab := New()
	ids := make([]uint32, 0, 5)
	for _, s := range []string{"IfcWall", "IfcSlab", "IfcColumn", "IfcBeam"} {
		ids = append(ids, tab.Intern(s))
	}
	for i, id := range ids {
		assert.Equal(t, uint32(i+1), id, "ids should be dense and insertion-ordered after the reserved empty slot")
	}
}

func TestGet_UnknownIDReturnsEmpty(t *testing.T) {
	tab := New()
	assert.Equal(t, "", tab.Get(9999))
}

func TestLen_CountsReservedEmptyEntry(t *testing.T) {
	tab := New()
	assert.Equal(t, 1, tab.Len())
	tab.Intern("IfcWall")
	assert.Equal(t, 2, tab.Len())
}
