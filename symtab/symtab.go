// Package symtab implements the assembler's two-pass symbol table. Pass 1
// inserts label and equate definitions; pass 2 treats the table as
// read-only and resolves references out of it.
package symtab

import "sort"

// SymbolKind classifies a symbol table entry.
type SymbolKind uint8

// Kind byte values are part of the external symbol entry format.
const (
	KindLabel    SymbolKind = 1
	KindEquate   SymbolKind = 2
	KindExternal SymbolKind = 3
	KindGlobal   SymbolKind = 4
)

var kindNames = map[SymbolKind]string{
	KindLabel:    "label",
	KindEquate:   "equate",
	KindExternal: "external",
	KindGlobal:   "global",
}

func (k SymbolKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Entry is one symbol definition.
type Entry struct {
	Name  string
	Kind  SymbolKind
	Value uint32
}

// Table maps symbol names to entries. Names are unique: a second
// definition of the same name is rejected and must be treated as a
// semantic error by the caller.
type Table struct {
	entries map[string]Entry
	order   []string
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// Add inserts a new symbol. It returns false if the name is already
// defined; the existing entry is never overwritten.
func (t *Table) Add(name string, kind SymbolKind, value uint32) bool {
	if _, exists := t.entries[name]; exists {
		return false
	}
	t.entries[name] = Entry{Name: name, Kind: kind, Value: value}
	t.order = append(t.order, name)
	return true
}

// Lookup returns the full entry for a name.
func (t *Table) Lookup(name string) (Entry, bool) {
	entry, ok := t.entries[name]
	return entry, ok
}

// Resolve returns only the value for a name. It is the read used by the
// resolver and the code generator.
func (t *Table) Resolve(name string) (uint32, bool) {
	entry, ok := t.entries[name]
	if !ok {
		return 0, false
	}
	return entry.Value, true
}

// Len returns the number of defined symbols.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns all symbols in definition order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.entries[name])
	}
	return out
}

// SortedEntries returns all symbols ordered by name, for stable listings.
func (t *Table) SortedEntries() []Entry {
	out := t.Entries()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
