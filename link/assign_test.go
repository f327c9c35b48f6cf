package link

import (
	"testing"

	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/restable"
)

func buildUnassignedTable(t *testing.T) *restable.Table {
	t.Helper()
	tbl := restable.NewTable()
	tbl.CreatePackage("com.example.app", nil)

	for _, name := range []string{"a", "b", "c"} {
		ref := tbl.StringPool.Intern(name)
		if err := tbl.AddResource(
			restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: name},
			restable.ConfigValue{Config: androidfw.DefaultConfiguration(), Value: &restable.StringValue{Ref: ref}},
			false,
		); err != nil {
			t.Fatalf("AddResource: %v", err)
		}
	}
	return tbl
}

func TestAssignTableAssignsPackageTypeAndEntryIDs(t *testing.T) {
	tbl := buildUnassignedTable(t)
	a := &Assigner{}
	if errs := a.AssignTable(tbl); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	pkg := tbl.FindPackage("com.example.app")
	if pkg.ID == nil || *pkg.ID != restable.PackageIDApp {
		t.Fatalf("expected package id 0x7f, got %v", pkg.ID)
	}

	typ := pkg.FindType(restable.TypeString)
	if typ.TypeID == nil || *typ.TypeID != 1 {
		t.Fatalf("expected type id 1, got %v", typ.TypeID)
	}

	seen := map[uint16]bool{}
	for _, e := range typ.Entries {
		if e.ID == nil {
			t.Fatalf("entry %q not assigned an id", e.Name)
		}
		if e.ID.PackageID() != restable.PackageIDApp || e.ID.TypeID() != 1 {
			t.Fatalf("entry %q has wrong id triplet: %s", e.Name, e.ID)
		}
		if seen[e.ID.EntryID()] {
			t.Fatalf("duplicate entry id %#x", e.ID.EntryID())
		}
		seen[e.ID.EntryID()] = true
	}
}

func TestAssignTableHonorsPinnedEntryID(t *testing.T) {
	tbl := buildUnassignedTable(t)
	pkg := tbl.FindPackage("com.example.app")
	typ := pkg.FindType(restable.TypeString)
	pinned := restable.MakeID(restable.PackageIDApp, 1, 0x0005)
	typ.FindEntry("b").Visibility.PinnedID = &pinned

	a := &Assigner{}
	if errs := a.AssignTable(tbl); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	b := typ.FindEntry("b")
	if *b.ID != pinned {
		t.Fatalf("expected pinned id honored, got %s", b.ID)
	}
	for _, name := range []string{"a", "c"} {
		e := typ.FindEntry(name)
		if e.ID.EntryID() == 0x0005 {
			t.Fatalf("entry %q collided with pinned slot", name)
		}
	}
}

func TestAssignTableConflictingPinIsError(t *testing.T) {
	tbl := buildUnassignedTable(t)
	pkg := tbl.FindPackage("com.example.app")
	typ := pkg.FindType(restable.TypeString)
	pinA := restable.MakeID(restable.PackageIDApp, 1, 0x0003)
	pinB := restable.MakeID(restable.PackageIDApp, 1, 0x0003)
	typ.FindEntry("a").Visibility.PinnedID = &pinA
	typ.FindEntry("b").Visibility.PinnedID = &pinB
	typ.FindEntry("a").Name = "a" // keep distinct names; collision is on id, not name

	a := &Assigner{}
	errs := a.AssignTable(tbl)
	if len(errs) != 1 {
		t.Fatalf("expected 1 conflict error, got %d: %v", len(errs), errs)
	}
}
