package link

import (
	"testing"

	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/restable"
)

func TestDeduperRemovesVersionOnlyDuplicate(t *testing.T) {
	tbl := restable.NewTable()
	tbl.CreatePackage("com.example.app", nil)

	name := restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "greeting"}
	en := tbl.StringPool.Intern("hello")
	if err := tbl.AddResource(name, restable.ConfigValue{
		Config: androidfw.Configuration{Locale: androidfw.Locale{Language: "en"}},
		Value:  &restable.StringValue{Ref: en},
	}, false); err != nil {
		t.Fatalf("AddResource en: %v", err)
	}
	if err := tbl.AddResource(name, restable.ConfigValue{
		Config: androidfw.Configuration{Locale: androidfw.Locale{Language: "en"}, MinSdkVersion: 19},
		Value:  &restable.StringValue{Ref: en},
	}, false); err != nil {
		t.Fatalf("AddResource en-v19: %v", err)
	}

	d := &Deduper{}
	d.DedupeTable(tbl)

	entry := tbl.FindPackage("com.example.app").FindType(restable.TypeString).FindEntry("greeting")
	if len(entry.Values) != 1 {
		t.Fatalf("expected the en-v19 duplicate removed, got %d values", len(entry.Values))
	}
	if entry.Values[0].Config.MinSdkVersion != 0 {
		t.Fatalf("expected the surviving value to be the unversioned en config, got %+v", entry.Values[0].Config)
	}
}

func TestDeduperKeepsDistinctValues(t *testing.T) {
	tbl := restable.NewTable()
	tbl.CreatePackage("com.example.app", nil)

	name := restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "greeting"}
	hello := tbl.StringPool.Intern("hello")
	bonjour := tbl.StringPool.Intern("bonjour")
	if err := tbl.AddResource(name, restable.ConfigValue{
		Config: androidfw.DefaultConfiguration(),
		Value:  &restable.StringValue{Ref: hello},
	}, false); err != nil {
		t.Fatalf("AddResource default: %v", err)
	}
	if err := tbl.AddResource(name, restable.ConfigValue{
		Config: androidfw.Configuration{MinSdkVersion: 19},
		Value:  &restable.StringValue{Ref: bonjour},
	}, false); err != nil {
		t.Fatalf("AddResource v19: %v", err)
	}

	d := &Deduper{}
	d.DedupeTable(tbl)

	entry := tbl.FindPackage("com.example.app").FindType(restable.TypeString).FindEntry("greeting")
	if len(entry.Values) != 2 {
		t.Fatalf("expected distinct values to survive, got %d", len(entry.Values))
	}
}

func TestDeduperNeverCrossesProductBoundary(t *testing.T) {
	tbl := restable.NewTable()
	tbl.CreatePackage("com.example.app", nil)

	name := restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "greeting"}
	ref := tbl.StringPool.Intern("hello")
	if err := tbl.AddResource(name, restable.ConfigValue{
		Config: androidfw.DefaultConfiguration(),
		Value:  &restable.StringValue{Ref: ref},
	}, false); err != nil {
		t.Fatalf("AddResource default: %v", err)
	}
	if err := tbl.AddResource(name, restable.ConfigValue{
		Config:  androidfw.Configuration{MinSdkVersion: 19},
		Product: "tablet",
		Value:   &restable.StringValue{Ref: ref},
	}, false); err != nil {
		t.Fatalf("AddResource v19/tablet: %v", err)
	}

	d := &Deduper{}
	d.DedupeTable(tbl)

	entry := tbl.FindPackage("com.example.app").FindType(restable.TypeString).FindEntry("greeting")
	if len(entry.Values) != 2 {
		t.Fatalf("expected the product-qualified value to survive untouched, got %d", len(entry.Values))
	}
}
