package restable

// TableType holds every entry of one resource Type within a package
// (spec.md §3 ResourceTableType).
type TableType struct {
	Type       Type
	TypeID     *uint8
	Visibility VisibilityLevel
	Entries    []*Entry
}

// NewTableType returns an empty TableType for the given resource type.
func NewTableType(t Type) *TableType {
	return &TableType{Type: t}
}

// FindEntry returns the entry with the given name, or nil.
func (t *TableType) FindEntry(name string) *Entry {
	for _, e := range t.Entries {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// FindOrCreateEntry returns the entry with the given name, creating and
// appending it (preserving insertion order) if absent.
func (t *TableType) FindOrCreateEntry(name string) *Entry {
	if e := t.FindEntry(name); e != nil {
		return e
	}
	e := NewEntry(name)
	t.Entries = append(t.Entries, e)
	return e
}
