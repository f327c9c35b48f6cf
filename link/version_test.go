package link

import (
	"testing"

	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/restable"
)

func TestAutoVersionerClonesStyleRequiringHigherSdk(t *testing.T) {
	tbl := restable.NewTable()
	tbl.CreatePackage("com.example.app", nil)

	style := &restable.Style{Entries: []restable.StyleEntry{{
		Attr:  restable.Reference{Name: restable.Name{Package: "android", Type: restable.TypeAttr, Entry: "textAppearance"}},
		Value: &restable.Primitive{PType: restable.PrimitiveInt, Data: 1},
	}}}
	if err := tbl.AddResource(
		restable.Name{Package: "com.example.app", Type: restable.TypeStyle, Entry: "Card"},
		restable.ConfigValue{Config: androidfw.DefaultConfiguration(), Value: style},
		false,
	); err != nil {
		t.Fatalf("AddResource: %v", err)
	}

	v := &AutoVersioner{}
	v.VersionTable(tbl)

	entry := tbl.FindPackage("com.example.app").FindType(restable.TypeStyle).FindEntry("Card")
	if len(entry.Values) != 2 {
		t.Fatalf("expected base + v21 clone, got %d values", len(entry.Values))
	}
	raised := entry.FindValue(androidfw.Configuration{MinSdkVersion: 21}, "")
	if raised == nil {
		t.Fatal("expected a -v21 config clone")
	}
}

func TestAutoVersionerLeavesLowSdkStyleAlone(t *testing.T) {
	tbl := restable.NewTable()
	tbl.CreatePackage("com.example.app", nil)

	style := &restable.Style{Entries: []restable.StyleEntry{{
		Attr:  restable.Reference{Name: restable.Name{Package: "android", Type: restable.TypeAttr, Entry: "unknownAttr"}},
		Value: &restable.Primitive{PType: restable.PrimitiveInt, Data: 1},
	}}}
	if err := tbl.AddResource(
		restable.Name{Package: "com.example.app", Type: restable.TypeStyle, Entry: "Card"},
		restable.ConfigValue{Config: androidfw.DefaultConfiguration(), Value: style},
		false,
	); err != nil {
		t.Fatalf("AddResource: %v", err)
	}

	v := &AutoVersioner{}
	v.VersionTable(tbl)

	entry := tbl.FindPackage("com.example.app").FindType(restable.TypeStyle).FindEntry("Card")
	if len(entry.Values) != 1 {
		t.Fatalf("expected no clone for an attribute with no SDK gate, got %d values", len(entry.Values))
	}
}

func TestAutoVersionerDoesNotDowngradeAnExistingHigherVersion(t *testing.T) {
	tbl := restable.NewTable()
	tbl.CreatePackage("com.example.app", nil)

	style := &restable.Style{Entries: []restable.StyleEntry{{
		Attr:  restable.Reference{Name: restable.Name{Package: "android", Type: restable.TypeAttr, Entry: "textAppearance"}},
		Value: &restable.Primitive{PType: restable.PrimitiveInt, Data: 1},
	}}}
	if err := tbl.AddResource(
		restable.Name{Package: "com.example.app", Type: restable.TypeStyle, Entry: "Card"},
		restable.ConfigValue{Config: androidfw.Configuration{MinSdkVersion: 24}, Value: style},
		false,
	); err != nil {
		t.Fatalf("AddResource: %v", err)
	}

	v := &AutoVersioner{}
	v.VersionTable(tbl)

	entry := tbl.FindPackage("com.example.app").FindType(restable.TypeStyle).FindEntry("Card")
	if len(entry.Values) != 1 {
		t.Fatalf("expected no new clone since v24 already exceeds the v21 requirement, got %d", len(entry.Values))
	}
}
