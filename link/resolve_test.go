package link

import (
	"testing"

	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/restable"
)

func TestResolveTableAssignsReferenceIDs(t *testing.T) {
	tbl := restable.NewTable()
	tbl.CreatePackage("com.example.app", nil)

	colorID := restable.MakeID(restable.PackageIDApp, 3, 0)
	colorEntry := restable.NewEntry("accent")
	colorEntry.ID = &colorID
	colorType := &restable.TableType{Type: restable.TypeColor, Entries: []*restable.Entry{colorEntry}}
	tbl.FindPackage("com.example.app").Types = append(tbl.FindPackage("com.example.app").Types, colorType)

	accentAttrID := restable.MakeID(restable.PackageIDFramework, 1, 0x0435)
	if err := tbl.AddResource(
		restable.Name{Package: "com.example.app", Type: restable.TypeStyle, Entry: "AppTheme"},
		restable.ConfigValue{
			Config: androidfw.DefaultConfiguration(),
			Value: &restable.Style{
				Entries: []restable.StyleEntry{{
					Attr:  restable.Reference{Name: restable.Name{Package: "android", Type: restable.TypeAttr, Entry: "colorAccent"}, ID: &accentAttrID},
					Value: &restable.Reference{Name: restable.Name{Package: "com.example.app", Type: restable.TypeColor, Entry: "accent"}},
				}},
			},
		},
		false,
	); err != nil {
		t.Fatalf("AddResource: %v", err)
	}

	r := &Resolver{Chain: &SymbolSourceChain{Sources: []SymbolSource{&TableSymbolSource{Table: tbl}}}, DefiningPackage: "com.example.app"}
	if errs := r.ResolveTable(tbl); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	style := tbl.FindPackage("com.example.app").FindType(restable.TypeStyle).FindEntry("AppTheme")
	val := style.Values[0].Value.(*restable.Style)
	ref := val.Entries[0].Value.(*restable.Reference)
	if ref.ID == nil || *ref.ID != colorID {
		t.Fatalf("expected accent reference resolved to %s, got %v", colorID, ref.ID)
	}
}

func TestResolveTableUnresolvedReferenceIsError(t *testing.T) {
	tbl := restable.NewTable()
	tbl.CreatePackage("com.example.app", nil)
	if err := tbl.AddResource(
		restable.Name{Package: "com.example.app", Type: restable.TypeColor, Entry: "missing_ref"},
		restable.ConfigValue{
			Config: androidfw.DefaultConfiguration(),
			Value:  &restable.Reference{Name: restable.Name{Package: "com.example.app", Type: restable.TypeColor, Entry: "nope"}},
		},
		false,
	); err != nil {
		t.Fatalf("AddResource: %v", err)
	}

	r := &Resolver{Chain: &SymbolSourceChain{Sources: []SymbolSource{&TableSymbolSource{Table: tbl}}}}
	errs := r.ResolveTable(tbl)
	if len(errs) != 1 {
		t.Fatalf("expected 1 unresolved error, got %d", len(errs))
	}
}

func TestChaseAliasFollowsChain(t *testing.T) {
	tbl := restable.NewTable()
	tbl.CreatePackage("com.example.app", nil)

	ref := tbl.StringPool.Intern("hello")
	if err := tbl.AddResource(
		restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "base"},
		restable.ConfigValue{Config: androidfw.DefaultConfiguration(), Value: &restable.StringValue{Ref: ref}},
		false,
	); err != nil {
		t.Fatalf("AddResource: %v", err)
	}
	if err := tbl.AddResource(
		restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "alias"},
		restable.ConfigValue{
			Config: androidfw.DefaultConfiguration(),
			Value:  &restable.Reference{Name: restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "base"}},
		},
		false,
	); err != nil {
		t.Fatalf("AddResource: %v", err)
	}

	cv, err := ChaseAlias(tbl, restable.Reference{Name: restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "alias"}}, androidfw.DefaultConfiguration())
	if err != nil {
		t.Fatalf("ChaseAlias: %v", err)
	}
	sv, ok := cv.Value.(*restable.StringValue)
	if !ok || sv.Ref.String() != "hello" {
		t.Fatalf("unexpected chased value: %+v", cv.Value)
	}
}

func TestChaseAliasDetectsCycle(t *testing.T) {
	tbl := restable.NewTable()
	tbl.CreatePackage("com.example.app", nil)
	if err := tbl.AddResource(
		restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "a"},
		restable.ConfigValue{
			Config: androidfw.DefaultConfiguration(),
			Value:  &restable.Reference{Name: restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "b"}},
		},
		false,
	); err != nil {
		t.Fatalf("AddResource: %v", err)
	}
	if err := tbl.AddResource(
		restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "b"},
		restable.ConfigValue{
			Config: androidfw.DefaultConfiguration(),
			Value:  &restable.Reference{Name: restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "a"}},
		},
		false,
	); err != nil {
		t.Fatalf("AddResource: %v", err)
	}

	_, err := ChaseAlias(tbl, restable.Reference{Name: restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "a"}}, androidfw.DefaultConfiguration())
	if err == nil {
		t.Fatal("expected a reference cycle error")
	}
}
