// Package link implements the linker stages that run after merging: symbolic
// reference resolution, type/entry ID assignment, auto-versioning and
// deduplication, and table splitting/filtering (spec.md §4.6-§4.8).
package link

import (
	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/diag"
	"github.com/resourcepack/aapt2go/restable"
)

// maxAliasDepth caps chained alias resolution (spec.md §9 design note).
const maxAliasDepth = 40

// SymbolInfo is what a SymbolSource reports about a resolved name.
type SymbolInfo struct {
	ID      restable.ID
	Private bool
}

// SymbolSource looks resources up by name or ID, used to resolve symbolic
// references during linking (spec.md §4.6).
type SymbolSource interface {
	FindByName(name restable.Name) (SymbolInfo, bool)
	FindById(id restable.ID) (restable.Name, bool)
}

// SymbolSourceChain tries each source in order, first hit wins: the table
// being linked, then included libraries, then the framework.
type SymbolSourceChain struct {
	Sources []SymbolSource
}

func (c *SymbolSourceChain) FindByName(name restable.Name) (SymbolInfo, bool) {
	for _, s := range c.Sources {
		if info, ok := s.FindByName(name); ok {
			return info, true
		}
	}
	return SymbolInfo{}, false
}

func (c *SymbolSourceChain) FindById(id restable.ID) (restable.Name, bool) {
	for _, s := range c.Sources {
		if name, ok := s.FindById(id); ok {
			return name, true
		}
	}
	return restable.Name{}, false
}

// TableSymbolSource adapts a restable.Table to SymbolSource, resolving a
// name to its entry's assigned ID; entries without an ID are not found.
type TableSymbolSource struct {
	Table *restable.Table
}

func (s *TableSymbolSource) FindByName(name restable.Name) (SymbolInfo, bool) {
	pkg := s.Table.FindPackage(name.Package)
	if pkg == nil {
		return SymbolInfo{}, false
	}
	typ := pkg.FindType(name.Type)
	if typ == nil {
		return SymbolInfo{}, false
	}
	entry := typ.FindEntry(name.Entry)
	if entry == nil || entry.ID == nil {
		return SymbolInfo{}, false
	}
	return SymbolInfo{ID: *entry.ID, Private: entry.Visibility.Level != restable.VisibilityPublic}, true
}

func (s *TableSymbolSource) FindById(id restable.ID) (restable.Name, bool) {
	for _, pkg := range s.Table.Packages {
		for _, typ := range pkg.Types {
			for _, e := range typ.Entries {
				if e.ID != nil && *e.ID == id {
					return restable.Name{Package: pkg.Name, Type: typ.Type, Entry: e.Name}, true
				}
			}
		}
	}
	return restable.Name{}, false
}

// Options configures reference resolution.
type Options struct {
	// SharedLibraryMode permits private cross-package references, used
	// when linking a shared library against its own dependents.
	SharedLibraryMode bool
}

// Resolver assigns IDs to symbolic references by walking a
// SymbolSourceChain, enforcing private-reference access control
// (spec.md §4.6).
type Resolver struct {
	Chain           *SymbolSourceChain
	Options         Options
	DefiningPackage string
}

// ResolveTable resolves every reference reachable from every value in t,
// returning at most one diagnostic per value: resolution of a value stops
// at its first unresolved or disallowed reference, so further failing
// references inside the same style, array, plural or styleable are not
// reported.
func (r *Resolver) ResolveTable(t *restable.Table) []*diag.Fatal {
	var errs []*diag.Fatal
	for _, ee := range t.Enumerate() {
		for i := range ee.Entry.Values {
			if err := r.resolveValue(ee.Entry.Values[i].Value, ee.Entry.Values[i].Source); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

func (r *Resolver) resolveValue(v restable.Value, src diag.Source) *diag.Fatal {
	switch val := v.(type) {
	case *restable.Reference:
		return r.resolveReference(val, src)
	case *restable.Style:
		if val.Parent != nil {
			if err := r.resolveReference(val.Parent, src); err != nil {
				return err
			}
		}
		for i := range val.Entries {
			if err := r.resolveReference(&val.Entries[i].Attr, src); err != nil {
				return err
			}
			if err := r.resolveValue(val.Entries[i].Value, src); err != nil {
				return err
			}
		}
	case *restable.Array:
		for _, e := range val.Elements {
			if err := r.resolveValue(e, src); err != nil {
				return err
			}
		}
	case *restable.Plural:
		for _, e := range val.Values {
			if err := r.resolveValue(e, src); err != nil {
				return err
			}
		}
	case *restable.Styleable:
		for i := range val.Entries {
			if err := r.resolveReference(&val.Entries[i].Attr, src); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Resolver) resolveReference(ref *restable.Reference, src diag.Source) *diag.Fatal {
	if ref.ID != nil {
		return nil
	}
	if ref.Name.Entry == "" {
		// A null/empty reference (e.g. "@null") resolves to nothing.
		return nil
	}
	info, ok := r.Chain.FindByName(ref.Name)
	if !ok {
		return diag.NewFatal(src, "unresolved reference to %s", ref.Name)
	}
	if info.Private && ref.Name.Package != r.DefiningPackage && !r.Options.SharedLibraryMode {
		return diag.NewFatal(src, "reference to private resource %s not permitted outside its defining package", ref.Name)
	}
	id := info.ID
	ref.ID = &id
	return nil
}

// ChaseAlias follows a chain of resource-to-resource references (e.g. a
// <string> entry whose value is itself @string/other) down to the first
// non-reference value, guarding against cycles with both a visited set
// and a depth cap.
func ChaseAlias(t *restable.Table, ref restable.Reference, target androidfw.Configuration) (*restable.ConfigValue, *diag.Fatal) {
	return chaseAlias(t, ref, target, map[restable.Name]bool{}, 0)
}

func chaseAlias(t *restable.Table, ref restable.Reference, target androidfw.Configuration, visited map[restable.Name]bool, depth int) (*restable.ConfigValue, *diag.Fatal) {
	if depth > maxAliasDepth || visited[ref.Name] {
		return nil, diag.NewFatal(diag.Source{}, "reference cycle resolving %s", ref.Name)
	}
	visited[ref.Name] = true

	cv := t.Find(ref.Name, target)
	if cv == nil {
		return nil, diag.NewFatal(diag.Source{}, "unresolved alias %s", ref.Name)
	}
	if next, ok := cv.Value.(*restable.Reference); ok {
		return chaseAlias(t, *next, target, visited, depth+1)
	}
	return cv, nil
}
