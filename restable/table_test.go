package restable

import (
	"testing"

	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/diag"
)

func addString(t *testing.T, table *Table, name Name, config androidfw.Configuration, s string) {
	t.Helper()
	ref := table.StringPool.Intern(s)
	err := table.AddResource(name, ConfigValue{
		Config: config,
		Value:  &StringValue{Ref: ref},
		Source: diag.Source{Path: "test.xml"},
	}, false)
	if err != nil {
		t.Fatalf("AddResource: %v", err)
	}
}

func TestAddResourceAndFind(t *testing.T) {
	table := NewTable()
	name := Name{Package: "com.x", Type: TypeString, Entry: "hello"}

	addString(t, table, name, androidfw.DefaultConfiguration(), "Hi")
	fr, _ := androidfw.ParseConfiguration("fr")
	addString(t, table, name, fr, "Bonjour")

	de, _ := androidfw.ParseConfiguration("de")
	got := table.Find(name, de)
	if got == nil || got.Value.(*StringValue).Ref.String() != "Hi" {
		t.Fatalf("expected default fallback 'Hi' for de, got %+v", got)
	}

	got = table.Find(name, fr)
	if got == nil || got.Value.(*StringValue).Ref.String() != "Bonjour" {
		t.Fatalf("expected 'Bonjour' for fr, got %+v", got)
	}
}

func TestAddResourceDuplicateIsError(t *testing.T) {
	table := NewTable()
	name := Name{Package: "com.x", Type: TypeString, Entry: "x"}
	addString(t, table, name, androidfw.DefaultConfiguration(), "one")

	ref := table.StringPool.Intern("two")
	err := table.AddResource(name, ConfigValue{
		Config: androidfw.DefaultConfiguration(),
		Value:  &StringValue{Ref: ref},
		Source: diag.Source{Path: "other.xml"},
	}, false)
	if err == nil {
		t.Fatal("expected a duplicate-definition error in append mode")
	}
}

func TestEnumerateDeterministic(t *testing.T) {
	table := NewTable()
	addString(t, table, Name{Package: "com.x", Type: TypeString, Entry: "b"}, androidfw.DefaultConfiguration(), "B")
	addString(t, table, Name{Package: "com.x", Type: TypeString, Entry: "a"}, androidfw.DefaultConfiguration(), "A")

	entries := table.Enumerate()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Entry.Name != "a" || entries[1].Entry.Name != "b" {
		t.Fatalf("expected entries sorted by name, got %q then %q", entries[0].Entry.Name, entries[1].Entry.Name)
	}
}
