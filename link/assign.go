package link

import (
	"github.com/resourcepack/aapt2go/diag"
	"github.com/resourcepack/aapt2go/restable"
)

// PackageIDSharedLibraryBuildTime is the placeholder package id a shared
// library is linked under; it is rewritten to a real id at install time.
const PackageIDSharedLibraryBuildTime uint8 = 0x00

// Assigner performs type-id and entry-id allocation after resolution,
// enforcing pins and package-id ranges (spec.md §4.6 steps 1-3).
type Assigner struct {
	SharedLibraryMode       bool
	AllowReservedPackageIDs bool
}

// AssignTable assigns a package id (if unset), type ids, and entry ids to
// every package in t, in that order, returning every pin conflict found.
func (a *Assigner) AssignTable(t *restable.Table) []*diag.Fatal {
	var errs []*diag.Fatal
	for _, pkg := range t.Packages {
		if err := a.assignPackageID(pkg); err != nil {
			errs = append(errs, err)
		}
		errs = append(errs, a.assignTypeIDs(pkg)...)
		for _, typ := range pkg.Types {
			if pkg.ID == nil || typ.TypeID == nil {
				continue
			}
			errs = append(errs, a.assignEntryIDs(*pkg.ID, typ)...)
		}
	}
	return errs
}

func (a *Assigner) assignPackageID(pkg *restable.Package) *diag.Fatal {
	if pkg.ID != nil {
		if restable.IsSharedLibraryPackageID(*pkg.ID) && !a.AllowReservedPackageIDs && !a.SharedLibraryMode {
			return diag.NewFatal(diag.Source{}, "package %q pinned to reserved package id %#x requires explicit opt-in", pkg.Name, *pkg.ID)
		}
		return nil
	}
	var id uint8
	if a.SharedLibraryMode {
		id = PackageIDSharedLibraryBuildTime
	} else {
		id = restable.PackageIDApp
	}
	pkg.ID = &id
	return nil
}

// assignTypeIDs implements step 1: pinned type ids (implied by any
// public entry's pinned resource id) are enforced first, then remaining
// types receive the smallest unused id, in declaration order.
func (a *Assigner) assignTypeIDs(pkg *restable.Package) []*diag.Fatal {
	var errs []*diag.Fatal
	claimed := map[uint8]restable.Type{}

	for _, typ := range pkg.Types {
		var pinned *uint8
		for _, e := range typ.Entries {
			if e.Visibility.PinnedID == nil {
				continue
			}
			tid := e.Visibility.PinnedID.TypeID()
			if pinned == nil {
				pinned = &tid
			} else if *pinned != tid {
				errs = append(errs, diag.NewFatal(diag.Source{},
					"conflicting pinned type id within %s:%s: %#x vs %#x", pkg.Name, typ.Type, *pinned, tid))
			}
		}
		if pinned == nil {
			continue
		}
		if owner, ok := claimed[*pinned]; ok && owner != typ.Type {
			errs = append(errs, diag.NewFatal(diag.Source{},
				"type id %#x already claimed by %s:%s, cannot also pin to %s:%s", *pinned, pkg.Name, owner, pkg.Name, typ.Type))
			continue
		}
		typ.TypeID = pinned
		claimed[*pinned] = typ.Type
	}

	next := uint8(1)
	for _, typ := range pkg.Types {
		if typ.TypeID != nil {
			continue
		}
		for {
			if _, taken := claimed[next]; !taken {
				break
			}
			next++
		}
		id := next
		typ.TypeID = &id
		claimed[id] = typ.Type
		next++
	}
	return errs
}

// assignEntryIDs implements steps 2-3: pinned entry ids (including
// staged entries in the reserved 0x01fe.. range, which simply occupy
// whatever index they are pinned to) are honored first; remaining
// entries receive the next free index in declaration order.
func (a *Assigner) assignEntryIDs(pkgID uint8, typ *restable.TableType) []*diag.Fatal {
	var errs []*diag.Fatal
	claimed := map[uint16]string{}

	for _, e := range typ.Entries {
		if e.Visibility.PinnedID == nil {
			continue
		}
		eid := e.Visibility.PinnedID.EntryID()
		if owner, ok := claimed[eid]; ok && owner != e.Name {
			errs = append(errs, diag.NewFatal(diag.Source{},
				"entry id %#x within %s already claimed by %q, cannot also pin to %q", eid, typ.Type, owner, e.Name))
			continue
		}
		claimed[eid] = e.Name
		id := *e.Visibility.PinnedID
		e.ID = &id
	}

	next := uint16(0)
	for _, e := range typ.Entries {
		if e.ID != nil {
			continue
		}
		for {
			if _, taken := claimed[next]; !taken {
				break
			}
			next++
		}
		claimed[next] = e.Name
		id := restable.MakeID(pkgID, *typ.TypeID, next)
		e.ID = &id
		next++
	}
	return errs
}
