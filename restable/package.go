package restable

// Package is one top-level resource package: a name, an optional assigned
// package id, and the resource types it declares.
type Package struct {
	Name  string
	ID    *uint8
	Types []*TableType
}

// NewPackage returns an empty package with the given name.
func NewPackage(name string) *Package {
	return &Package{Name: name}
}

// FindType returns the TableType for t, or nil if the package does not
// declare that type.
func (p *Package) FindType(t Type) *TableType {
	for _, tt := range p.Types {
		if tt.Type == t {
			return tt
		}
	}
	return nil
}

// FindOrCreateType returns the TableType for t, creating and appending it
// (preserving type-ordinal insertion order) if absent.
func (p *Package) FindOrCreateType(t Type) *TableType {
	if tt := p.FindType(t); tt != nil {
		return tt
	}
	tt := NewTableType(t)
	p.Types = append(p.Types, tt)
	return tt
}

// TypeOrdinal returns the position of t within p.Types, which is the
// order Table.Enumerate visits types in (spec.md §5).
func (p *Package) TypeOrdinal(t Type) int {
	for i, tt := range p.Types {
		if tt.Type == t {
			return i
		}
	}
	return -1
}
