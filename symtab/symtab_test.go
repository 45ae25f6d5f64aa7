package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddAndLookup(t *testing.T) {
	table := New()

	assert.True(t, table.Add("main", KindLabel, 0x1000))
	assert.True(t, table.Add("MAX", KindEquate, 255))
	assert.Equal(t, 2, table.Len())

	entry, ok := table.Lookup("main")
	assert.True(t, ok)
	assert.Equal(t, Entry{Name: "main", Kind: KindLabel, Value: 0x1000}, entry)

	_, ok = table.Lookup("missing")
	assert.False(t, ok)
}

func TestDuplicateIsRejected(t *testing.T) {
	table := New()

	assert.True(t, table.Add("loop", KindLabel, 0x1004))
	assert.False(t, table.Add("loop", KindLabel, 0x2000))
	assert.False(t, table.Add("loop", KindEquate, 7))

	// The original entry survives.
	value, ok := table.Resolve("loop")
	assert.True(t, ok)
	assert.Equal(t, uint32(0x1004), value)
}

func TestResolve(t *testing.T) {
	table := New()
	table.Add("target", KindLabel, 0x1010)

	value, ok := table.Resolve("target")
	assert.True(t, ok)
	assert.Equal(t, uint32(0x1010), value)

	value, ok = table.Resolve("undefined")
	assert.False(t, ok)
	assert.Equal(t, uint32(0), value)
}

func TestEntryOrdering(t *testing.T) {
	table := New()
	table.Add("zeta", KindLabel, 1)
	table.Add("alpha", KindGlobal, 2)
	table.Add("mid", KindExternal, 3)

	names := func(entries []Entry) []string {
		out := make([]string, len(entries))
		for i, e := range entries {
			out[i] = e.Name
		}
		return out
	}

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names(table.Entries()))
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names(table.SortedEntries()))
}

func TestKindBytes(t *testing.T) {
	// Kind byte values are part of the external symbol entry format.
	assert.Equal(t, uint8(1), uint8(KindLabel))
	assert.Equal(t, uint8(2), uint8(KindEquate))
	assert.Equal(t, uint8(3), uint8(KindExternal))
	assert.Equal(t, uint8(4), uint8(KindGlobal))
	assert.Equal(t, "label", KindLabel.String())
}
