// Package restable implements the in-memory resource model: packages,
// types, and entries keyed by configuration, with value variants,
// visibility levels, symbol IDs, and the merge/find/enumerate operations
// that the linker and serializer build on.
package restable

import "fmt"

// ID is a 32-bit resource identifier, packed 0xPPTTEEEE (package/type/entry).
type ID uint32

// Reserved package-id ranges (spec.md §3).
const (
	PackageIDFramework = 0x01
	PackageIDApp       = 0x7f
)

// MakeID packs a package/type/entry triplet into a resource ID.
func MakeID(pkg, typ uint8, entry uint16) ID {
	return ID(uint32(pkg)<<24 | uint32(typ)<<16 | uint32(entry))
}

// PackageID returns the high byte of the resource ID.
func (id ID) PackageID() uint8 { return uint8(id >> 24) }

// TypeID returns the type byte of the resource ID.
func (id ID) TypeID() uint8 { return uint8(id >> 16) }

// EntryID returns the low 16 bits of the resource ID.
func (id ID) EntryID() uint16 { return uint16(id) }

// IsStaged reports whether the entry id falls in the reserved staging
// range (0x01fe..0x01ff), used for API-staged resources (spec.md §4.6).
func (id ID) IsStaged() bool {
	e := id.EntryID()
	return e >= 0x01fe && e <= 0x01ff
}

func (id ID) String() string {
	return fmt.Sprintf("0x%08x", uint32(id))
}

// IsSharedLibraryPackageID reports whether the package id is in 0x02..0x7e,
// the range permitted for shared/static library packages.
func IsSharedLibraryPackageID(pkgID uint8) bool {
	return pkgID >= 0x02 && pkgID <= 0x7e
}
