package binary

import (
	"testing"

	"github.com/resourcepack/aapt2go/restable"
)

func TestEncodeDecodeValueVariants(t *testing.T) {
	pool := restable.NewStringPool()
	ref := pool.Intern("hello")

	attrID := restable.ID(0x7f020001)
	styleableAttr := restable.Reference{Name: restable.Name{Package: "com.example.app", Type: restable.TypeAttr, Entry: "borderColor"}, ID: &attrID}

	cases := []restable.Value{
		&restable.Primitive{PType: restable.PrimitiveColor, Data: 0xFF112233},
		&restable.StringValue{Ref: ref},
		&restable.FileReference{Path: restable.PathRef{Ref: pool.Intern("res/drawable/x.png")}, FileKind: restable.FileKindPNG},
		&restable.Reference{Name: restable.Name{Package: "com.example.app", Type: restable.TypeColor, Entry: "accent"}, ID: &attrID},
		&restable.Attribute{
			Format: restable.FormatEnum,
			Symbols: []restable.AttributeSymbol{
				{Name: restable.Name{Package: "com.example.app", Type: restable.TypeAttr, Entry: "start"}, Value: 0},
				{Name: restable.Name{Package: "com.example.app", Type: restable.TypeAttr, Entry: "end"}, Value: 1},
			},
		},
		&restable.Style{
			Parent: &restable.Reference{Name: restable.Name{Package: "android", Type: restable.TypeStyle, Entry: "Widget"}},
			Entries: []restable.StyleEntry{
				{Attr: styleableAttr, Value: &restable.Primitive{PType: restable.PrimitiveInt, Data: 4}},
			},
		},
		&restable.Array{Elements: []restable.Value{
			&restable.Primitive{PType: restable.PrimitiveInt, Data: 1},
			&restable.Primitive{PType: restable.PrimitiveInt, Data: 2},
		}},
		&restable.Plural{Values: map[restable.Quantity]restable.Value{
			restable.QuantityOne:   &restable.StringValue{Ref: pool.Intern("one item")},
			restable.QuantityOther: &restable.StringValue{Ref: pool.Intern("%d items")},
		}},
		&restable.Styleable{Entries: []restable.StyleableEntry{{Attr: styleableAttr}}},
	}

	for _, v := range cases {
		encoded := encodeValue(v, pool)
		decoded, err := decodeValue(encoded, pool)
		if err != nil {
			t.Fatalf("decodeValue(%T): %v", v, err)
		}
		if !v.Equal(decoded) {
			t.Fatalf("round trip mismatch for %T: got %+v, want %+v", v, decoded, v)
		}
	}
}
