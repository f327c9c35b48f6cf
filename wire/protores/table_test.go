package protores

import (
	"testing"

	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/diag"
	"github.com/resourcepack/aapt2go/restable"
)

func buildSampleTable(t *testing.T) *restable.Table {
	t.Helper()
	tbl := restable.NewTable()
	pkgID := uint8(0x7f)
	tbl.CreatePackage("com.example.app", &pkgID)

	nameRef := tbl.StringPool.Intern("Example App")
	if err := tbl.AddResource(
		restable.Name{Package: "com.example.app", Type: restable.TypeString, Entry: "app_name"},
		restable.ConfigValue{
			Config: androidfw.DefaultConfiguration(),
			Value:  &restable.StringValue{Ref: nameRef},
			Source: diag.Source{Path: "res/values/strings.xml", Line: 3},
		},
		false,
	); err != nil {
		t.Fatalf("AddResource: %v", err)
	}

	if err := tbl.AddResource(
		restable.Name{Package: "com.example.app", Type: restable.TypeBool, Entry: "is_pro"},
		restable.ConfigValue{
			Config: androidfw.DefaultConfiguration(),
			Value:  &restable.Primitive{PType: restable.PrimitiveBool, Data: 1},
			Source: diag.Source{Path: "res/values/bools.xml", Line: 1},
		},
		false,
	); err != nil {
		t.Fatalf("AddResource: %v", err)
	}

	return tbl
}

func TestEncodeDecodeTableRoundTrip(t *testing.T) {
	tbl := buildSampleTable(t)
	encoded, err := EncodeTable(tbl)
	if err != nil {
		t.Fatalf("EncodeTable: %v", err)
	}
	decoded, err := DecodeTable(encoded)
	if err != nil {
		t.Fatalf("DecodeTable: %v", err)
	}
	if len(decoded.Packages) != 1 {
		t.Fatalf("expected 1 package, got %d", len(decoded.Packages))
	}
	pkg := decoded.Packages[0]
	if pkg.Name != "com.example.app" || pkg.ID == nil || *pkg.ID != 0x7f {
		t.Fatalf("unexpected package: %+v", pkg)
	}
	stringType := pkg.FindType(restable.TypeString)
	if stringType == nil {
		t.Fatal("missing string type")
	}
	entry := stringType.FindEntry("app_name")
	if entry == nil || len(entry.Values) != 1 {
		t.Fatal("missing app_name entry")
	}
	sv, ok := entry.Values[0].Value.(*restable.StringValue)
	if !ok || sv.Ref.String() != "Example App" {
		t.Fatalf("unexpected value: %+v", entry.Values[0].Value)
	}
	if entry.Values[0].Source.Path != "res/values/strings.xml" || entry.Values[0].Source.Line != 3 {
		t.Fatalf("unexpected source: %+v", entry.Values[0].Source)
	}
}

func TestEncodeDecodeValueVariants(t *testing.T) {
	pool := restable.NewStringPool()
	ref := pool.Intern("hello")
	attrID := restable.ID(0x7f020001)

	cases := []restable.Value{
		&restable.Primitive{PType: restable.PrimitiveColor, Data: 0xFF112233},
		&restable.StringValue{Ref: ref},
		&restable.FileReference{Path: restable.PathRef{Ref: pool.Intern("res/drawable/x.png")}, FileKind: restable.FileKindPNG},
		&restable.Reference{Name: restable.Name{Package: "com.example.app", Type: restable.TypeColor, Entry: "accent"}, ID: &attrID},
		&restable.Array{Elements: []restable.Value{
			&restable.Primitive{PType: restable.PrimitiveInt, Data: 1},
			&restable.Primitive{PType: restable.PrimitiveInt, Data: 2},
		}},
		&restable.Plural{Values: map[restable.Quantity]restable.Value{
			restable.QuantityOne:   &restable.StringValue{Ref: pool.Intern("one item")},
			restable.QuantityOther: &restable.StringValue{Ref: pool.Intern("%d items")},
		}},
	}

	for _, v := range cases {
		encoded := EncodeValue(v)
		decoded, err := DecodeValue(encoded)
		if err != nil {
			t.Fatalf("DecodeValue(%T): %v", v, err)
		}
		if !v.Equal(decoded) {
			t.Fatalf("round trip mismatch for %T: got %+v, want %+v", v, decoded, v)
		}
	}
}
