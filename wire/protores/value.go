// Package protores implements the proto-equivalent resource table codec
// described in spec.md §4.3 as a "documented proto equivalent" of the
// chunked binary format: the same ResourceTable model, framed as
// length-delimited protobuf-wire messages instead of fixed-size chunks.
// Unlike the binary codec it carries strings literally rather than
// through a shared string pool -- protobuf's own varint/string framing
// already compresses well, so a side pool buys nothing here.
package protores

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/resourcepack/aapt2go/restable"
)

const (
	valPrimitive = iota
	valString
	valFileReference
	valReference
	valAttribute
	valStyle
	valArray
	valPlural
	valStyleable
)

func appendName(b []byte, n restable.Name) []byte {
	b = protowire.AppendString(b, n.Package)
	b = protowire.AppendString(b, string(n.Type))
	b = protowire.AppendString(b, n.Entry)
	return b
}

func consumeName(b []byte) (restable.Name, []byte, error) {
	pkg, b, err := consumeString(b)
	if err != nil {
		return restable.Name{}, nil, err
	}
	typ, b, err := consumeString(b)
	if err != nil {
		return restable.Name{}, nil, err
	}
	ent, b, err := consumeString(b)
	if err != nil {
		return restable.Name{}, nil, err
	}
	return restable.Name{Package: pkg, Type: restable.Type(typ), Entry: ent}, b, nil
}

func consumeString(b []byte) (string, []byte, error) {
	s, n := protowire.ConsumeString(b)
	if n < 0 {
		return "", nil, fmt.Errorf("malformed string field")
	}
	return s, b[n:], nil
}

func consumeVarint(b []byte) (uint64, []byte, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, nil, fmt.Errorf("malformed varint field")
	}
	return v, b[n:], nil
}

func consumeBytes(b []byte) ([]byte, []byte, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, nil, fmt.Errorf("malformed bytes field")
	}
	return v, b[n:], nil
}

func appendReference(b []byte, r restable.Reference) []byte {
	var flags uint64
	if r.ID != nil {
		flags |= 1
	}
	if r.Private {
		flags |= 2
	}
	if r.IsAttributeRef {
		flags |= 4
	}
	b = protowire.AppendVarint(b, flags)
	if r.ID != nil {
		b = protowire.AppendVarint(b, uint64(*r.ID))
	}
	b = appendName(b, r.Name)
	return b
}

func consumeReference(b []byte) (restable.Reference, []byte, error) {
	flags, b, err := consumeVarint(b)
	if err != nil {
		return restable.Reference{}, nil, err
	}
	r := restable.Reference{Private: flags&2 != 0, IsAttributeRef: flags&4 != 0}
	if flags&1 != 0 {
		var raw uint64
		raw, b, err = consumeVarint(b)
		if err != nil {
			return restable.Reference{}, nil, err
		}
		id := restable.ID(raw)
		r.ID = &id
	}
	name, b, err := consumeName(b)
	if err != nil {
		return restable.Reference{}, nil, err
	}
	r.Name = name
	return r, b, nil
}

// EncodeValue renders v as a self-describing, length-framed proto-style
// value blob.
func EncodeValue(v restable.Value) []byte {
	var b []byte
	switch val := v.(type) {
	case *restable.Primitive:
		b = protowire.AppendVarint(b, valPrimitive)
		b = protowire.AppendVarint(b, uint64(val.PType))
		b = protowire.AppendVarint(b, uint64(val.Data))

	case *restable.StringValue:
		b = protowire.AppendVarint(b, valString)
		b = protowire.AppendString(b, val.Ref.String())

	case *restable.FileReference:
		b = protowire.AppendVarint(b, valFileReference)
		b = protowire.AppendVarint(b, uint64(val.FileKind))
		b = protowire.AppendString(b, val.Path.Ref.String())

	case *restable.Reference:
		b = protowire.AppendVarint(b, valReference)
		b = appendReference(b, *val)

	case *restable.Attribute:
		b = protowire.AppendVarint(b, valAttribute)
		b = protowire.AppendVarint(b, uint64(val.Format))
		if val.Weak {
			b = protowire.AppendVarint(b, 1)
		} else {
			b = protowire.AppendVarint(b, 0)
		}
		b = protowire.AppendVarint(b, uint64(len(val.Symbols)))
		for _, sym := range val.Symbols {
			b = appendName(b, sym.Name)
			b = protowire.AppendVarint(b, uint64(sym.Value))
		}

	case *restable.Style:
		b = protowire.AppendVarint(b, valStyle)
		if val.Parent != nil {
			b = protowire.AppendVarint(b, 1)
		} else {
			b = protowire.AppendVarint(b, 0)
		}
		if val.ParentInferred {
			b = protowire.AppendVarint(b, 1)
		} else {
			b = protowire.AppendVarint(b, 0)
		}
		if val.Parent != nil {
			b = appendReference(b, *val.Parent)
		}
		b = protowire.AppendVarint(b, uint64(len(val.Entries)))
		for _, e := range val.Entries {
			b = appendReference(b, e.Attr)
			b = protowire.AppendBytes(b, EncodeValue(e.Value))
		}

	case *restable.Array:
		b = protowire.AppendVarint(b, valArray)
		b = protowire.AppendVarint(b, uint64(len(val.Elements)))
		for _, e := range val.Elements {
			b = protowire.AppendBytes(b, EncodeValue(e))
		}

	case *restable.Plural:
		b = protowire.AppendVarint(b, valPlural)
		quantities := []restable.Quantity{
			restable.QuantityZero, restable.QuantityOne, restable.QuantityTwo,
			restable.QuantityFew, restable.QuantityMany, restable.QuantityOther,
		}
		present := make([]restable.Quantity, 0, len(quantities))
		for _, q := range quantities {
			if _, ok := val.Values[q]; ok {
				present = append(present, q)
			}
		}
		b = protowire.AppendVarint(b, uint64(len(present)))
		for _, q := range present {
			b = protowire.AppendString(b, string(q))
			b = protowire.AppendBytes(b, EncodeValue(val.Values[q]))
		}

	case *restable.Styleable:
		b = protowire.AppendVarint(b, valStyleable)
		b = protowire.AppendVarint(b, uint64(len(val.Entries)))
		for _, e := range val.Entries {
			b = appendReference(b, e.Attr)
		}

	default:
		b = protowire.AppendVarint(b, valPrimitive)
		b = protowire.AppendVarint(b, uint64(restable.PrimitiveNull))
		b = protowire.AppendVarint(b, 0)
	}
	return b
}

// DecodeValue parses a blob written by EncodeValue.
func DecodeValue(b []byte) (restable.Value, error) {
	tag, b, err := consumeVarint(b)
	if err != nil {
		return nil, err
	}

	switch tag {
	case valPrimitive:
		ptype, b, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}
		data, _, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}
		return &restable.Primitive{PType: restable.PrimitiveType(ptype), Data: uint32(data)}, nil

	case valString:
		s, _, err := consumeString(b)
		if err != nil {
			return nil, err
		}
		pool := restable.NewStringPool()
		return &restable.StringValue{Ref: pool.Intern(s)}, nil

	case valFileReference:
		fk, b, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}
		path, _, err := consumeString(b)
		if err != nil {
			return nil, err
		}
		pool := restable.NewStringPool()
		return &restable.FileReference{Path: restable.PathRef{Ref: pool.Intern(path)}, FileKind: restable.FileKind(fk)}, nil

	case valReference:
		ref, _, err := consumeReference(b)
		if err != nil {
			return nil, err
		}
		return &ref, nil

	case valAttribute:
		format, b, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}
		weak, b, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}
		count, b, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}
		symbols := make([]restable.AttributeSymbol, count)
		for i := range symbols {
			var name restable.Name
			name, b, err = consumeName(b)
			if err != nil {
				return nil, err
			}
			var value uint64
			value, b, err = consumeVarint(b)
			if err != nil {
				return nil, err
			}
			symbols[i] = restable.AttributeSymbol{Name: name, Value: uint32(value)}
		}
		return &restable.Attribute{Format: restable.AttributeFormat(format), Symbols: symbols, Weak: weak != 0}, nil

	case valStyle:
		hasParent, b, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}
		parentInferred, b, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}
		var parent *restable.Reference
		if hasParent != 0 {
			var p restable.Reference
			p, b, err = consumeReference(b)
			if err != nil {
				return nil, err
			}
			parent = &p
		}
		count, b, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}
		entries := make([]restable.StyleEntry, count)
		for i := range entries {
			var attr restable.Reference
			attr, b, err = consumeReference(b)
			if err != nil {
				return nil, err
			}
			var inner []byte
			inner, b, err = consumeBytes(b)
			if err != nil {
				return nil, err
			}
			v, err := DecodeValue(inner)
			if err != nil {
				return nil, err
			}
			entries[i] = restable.StyleEntry{Attr: attr, Value: v}
		}
		return &restable.Style{Parent: parent, ParentInferred: parentInferred != 0, Entries: entries}, nil

	case valArray:
		count, b, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}
		elems := make([]restable.Value, count)
		for i := range elems {
			var inner []byte
			inner, b, err = consumeBytes(b)
			if err != nil {
				return nil, err
			}
			v, err := DecodeValue(inner)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &restable.Array{Elements: elems}, nil

	case valPlural:
		count, b, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}
		values := make(map[restable.Quantity]restable.Value, count)
		for i := uint64(0); i < count; i++ {
			var q string
			q, b, err = consumeString(b)
			if err != nil {
				return nil, err
			}
			var inner []byte
			inner, b, err = consumeBytes(b)
			if err != nil {
				return nil, err
			}
			v, err := DecodeValue(inner)
			if err != nil {
				return nil, err
			}
			values[restable.Quantity(q)] = v
		}
		return &restable.Plural{Values: values}, nil

	case valStyleable:
		count, b, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}
		entries := make([]restable.StyleableEntry, count)
		for i := range entries {
			var attr restable.Reference
			attr, b, err = consumeReference(b)
			if err != nil {
				return nil, err
			}
			entries[i] = restable.StyleableEntry{Attr: attr}
		}
		return &restable.Styleable{Entries: entries}, nil

	default:
		return nil, fmt.Errorf("unknown value tag %d", tag)
	}
}
