package restable

import (
	"sort"

	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/diag"
)

// Table is the root resource model: packages, each holding typed entries
// with configuration-qualified values, plus the shared and styled string
// pools every FileReference/StringValue in the table draws from
// (spec.md §3 ResourceTable).
type Table struct {
	Packages         []*Package
	StringPool       *StringPool
	StyledStringPool *StringPool
}

// NewTable returns an empty table with fresh string pools.
func NewTable() *Table {
	return &Table{
		StringPool:       NewStringPool(),
		StyledStringPool: NewStringPool(),
	}
}

// CreatePackage returns the package with the given name, creating it if
// absent (idempotent, spec.md §4.2).
func (t *Table) CreatePackage(name string, id *uint8) *Package {
	for _, p := range t.Packages {
		if p.Name == name {
			if p.ID == nil && id != nil {
				p.ID = id
			}
			return p
		}
	}
	p := NewPackage(name)
	p.ID = id
	t.Packages = append(t.Packages, p)
	return p
}

// FindPackage returns the package with the given name, or nil.
func (t *Table) FindPackage(name string) *Package {
	for _, p := range t.Packages {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// AddResource inserts or conflicts on (name, config, product), per
// spec.md §4.2: a conflicting add is either an allowed overlay (when
// overlay is true and the existing entry's OverlayPolicy permits it) or
// an error ("duplicate definition").
func (t *Table) AddResource(name Name, cv ConfigValue, overlay bool) error {
	pkg := t.CreatePackage(name.Package, nil)
	typ := pkg.FindOrCreateType(name.Type)
	entry := typ.FindOrCreateEntry(name.Entry)

	existing := entry.FindValue(cv.Config, cv.Product)
	if existing == nil {
		entry.Values = append(entry.Values, cv)
		return nil
	}

	if overlay && entry.OverlayPolicy == OverlayAllowed {
		*existing = cv
		return nil
	}

	if existing.Value.Equal(cv.Value) {
		// Structurally identical redefinitions are not conflicts
		// (spec.md §4.5: append-only inputs must be associative).
		return nil
	}

	return diag.NewFatal(cv.Source, "duplicate definition of %s with config %q (previously defined at %s)",
		name, cv.Config.String(), existing.Source)
}

// Find returns the best-match value for name at the given target
// configuration, or nil if the resource does not exist or nothing
// matches (spec.md §4.2).
func (t *Table) Find(name Name, target androidfw.Configuration) *ConfigValue {
	return t.FindProduct(name, target, "")
}

// FindProduct is Find restricted to a specific product variant.
func (t *Table) FindProduct(name Name, target androidfw.Configuration, product string) *ConfigValue {
	pkg := t.FindPackage(name.Package)
	if pkg == nil {
		return nil
	}
	typ := pkg.FindType(name.Type)
	if typ == nil {
		return nil
	}
	entry := typ.FindEntry(name.Entry)
	if entry == nil {
		return nil
	}
	return entry.BestValue(target, product)
}

// EnumeratedEntry is one (package, type, entry) triplet produced by
// Enumerate, in the table's deterministic iteration order.
type EnumeratedEntry struct {
	Package *Package
	Type    *TableType
	Entry   *Entry
}

// Enumerate walks every entry in the table in the canonical deterministic
// order required by spec.md §5: packages by (package-id, then name),
// types by type-ordinal, entries by name. Values within an entry are not
// reordered; SortedValues gives their canonical order.
func (t *Table) Enumerate() []EnumeratedEntry {
	pkgs := append([]*Package(nil), t.Packages...)
	sort.SliceStable(pkgs, func(i, j int) bool {
		idI, idJ := pkgID(pkgs[i]), pkgID(pkgs[j])
		if idI != idJ {
			return idI < idJ
		}
		return pkgs[i].Name < pkgs[j].Name
	})

	var out []EnumeratedEntry
	for _, p := range pkgs {
		for _, typ := range p.Types {
			entries := append([]*Entry(nil), typ.Entries...)
			sort.SliceStable(entries, func(i, j int) bool {
				return entries[i].Name < entries[j].Name
			})
			for _, e := range entries {
				out = append(out, EnumeratedEntry{Package: p, Type: typ, Entry: e})
			}
		}
	}
	return out
}

func pkgID(p *Package) int {
	if p.ID == nil {
		return 1 << 16
	}
	return int(*p.ID)
}

// SortedValues returns e's values ordered by canonical configuration
// string, the order canonical serialization relies on (spec.md §4.2:
// "callers must not depend on value iteration order for correctness,
// only canonical serialization does").
func SortedValues(e *Entry) []ConfigValue {
	out := append([]ConfigValue(nil), e.Values...)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Config.String(), out[j].Config.String()
		if si != sj {
			return si < sj
		}
		return out[i].Product < out[j].Product
	})
	return out
}
