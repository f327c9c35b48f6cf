package binary

import (
	"bytes"
	"fmt"

	"github.com/resourcepack/aapt2go/restable"
)

// Value type tags, prefixing every encoded value blob.
const (
	valPrimitive byte = iota
	valString
	valFileReference
	valReference
	valAttribute
	valStyle
	valArray
	valPlural
	valStyleable
)

// codecContext threads the shared string pool through value encode/decode
// so references can be resolved to stable positional indices.
type codecContext struct {
	pool *restable.StringPool
}

func (c *codecContext) internIdx(s string) uint32 {
	ref := c.pool.Intern(s)
	return uint32(tagIndex(c.pool, ref))
}

func (c *codecContext) stringAt(idx uint32) string {
	return c.pool.RefAt(int(idx)).String()
}

func putU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	le.PutUint32(b[:], v)
	buf.Write(b[:])
}

func readU32(b []byte, off int) (uint32, int) {
	return le.Uint32(b[off : off+4]), off + 4
}

func (c *codecContext) encodeName(buf *bytes.Buffer, n restable.Name) {
	putU32(buf, c.internIdx(n.Package))
	putU32(buf, c.internIdx(string(n.Type)))
	putU32(buf, c.internIdx(n.Entry))
}

func (c *codecContext) decodeName(b []byte, off int) (restable.Name, int) {
	var pkgIdx, typIdx, entIdx uint32
	pkgIdx, off = readU32(b, off)
	typIdx, off = readU32(b, off)
	entIdx, off = readU32(b, off)
	return restable.Name{
		Package: c.stringAt(pkgIdx),
		Type:    restable.Type(c.stringAt(typIdx)),
		Entry:   c.stringAt(entIdx),
	}, off
}

func (c *codecContext) encodeReference(buf *bytes.Buffer, r restable.Reference) {
	var flags uint32
	if r.ID != nil {
		flags |= 1
	}
	if r.Private {
		flags |= 2
	}
	if r.IsAttributeRef {
		flags |= 4
	}
	putU32(buf, flags)
	if r.ID != nil {
		putU32(buf, uint32(*r.ID))
	} else {
		putU32(buf, 0xFFFFFFFF)
	}
	c.encodeName(buf, r.Name)
}

func (c *codecContext) decodeReference(b []byte, off int) (restable.Reference, int) {
	var flags, rawID uint32
	flags, off = readU32(b, off)
	rawID, off = readU32(b, off)
	var name restable.Name
	name, off = c.decodeName(b, off)
	r := restable.Reference{
		Name:           name,
		Private:        flags&2 != 0,
		IsAttributeRef: flags&4 != 0,
	}
	if flags&1 != 0 {
		id := restable.ID(rawID)
		r.ID = &id
	}
	return r, off
}

// encodeValue renders v as a self-describing tagged blob. All multi-byte
// fields are little-endian; the blob is not independently chunk-aligned,
// since it is always embedded within an already-aligned type chunk.
func encodeValue(v restable.Value, pool *restable.StringPool) []byte {
	c := &codecContext{pool: pool}
	var buf bytes.Buffer

	switch val := v.(type) {
	case *restable.Primitive:
		buf.WriteByte(valPrimitive)
		buf.WriteByte(byte(val.PType))
		buf.Write([]byte{0, 0, 0})
		putU32(&buf, val.Data)

	case *restable.StringValue:
		buf.WriteByte(valString)
		putU32(&buf, c.internIdx(val.Ref.String()))

	case *restable.FileReference:
		buf.WriteByte(valFileReference)
		buf.WriteByte(byte(val.FileKind))
		buf.Write([]byte{0, 0, 0})
		putU32(&buf, c.internIdx(val.Path.Ref.String()))

	case *restable.Reference:
		buf.WriteByte(valReference)
		c.encodeReference(&buf, *val)

	case *restable.Attribute:
		buf.WriteByte(valAttribute)
		putU32(&buf, uint32(val.Format))
		if val.Weak {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		buf.Write([]byte{0, 0, 0})
		putU32(&buf, uint32(len(val.Symbols)))
		for _, sym := range val.Symbols {
			c.encodeName(&buf, sym.Name)
			putU32(&buf, sym.Value)
		}

	case *restable.Style:
		buf.WriteByte(valStyle)
		if val.Parent != nil {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		if val.ParentInferred {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		buf.Write([]byte{0, 0})
		if val.Parent != nil {
			c.encodeReference(&buf, *val.Parent)
		}
		putU32(&buf, uint32(len(val.Entries)))
		for _, e := range val.Entries {
			c.encodeReference(&buf, e.Attr)
			inner := encodeValue(e.Value, pool)
			putU32(&buf, uint32(len(inner)))
			buf.Write(inner)
		}

	case *restable.Array:
		buf.WriteByte(valArray)
		putU32(&buf, uint32(len(val.Elements)))
		for _, e := range val.Elements {
			inner := encodeValue(e, pool)
			putU32(&buf, uint32(len(inner)))
			buf.Write(inner)
		}

	case *restable.Plural:
		buf.WriteByte(valPlural)
		quantities := []restable.Quantity{"zero", "one", "two", "few", "many", "other"}
		present := make([]restable.Quantity, 0, len(quantities))
		for _, q := range quantities {
			if _, ok := val.Values[q]; ok {
				present = append(present, q)
			}
		}
		buf.WriteByte(byte(len(present)))
		buf.Write([]byte{0, 0, 0})
		for _, q := range present {
			tagIdx := c.internIdx(string(q))
			putU32(&buf, tagIdx)
			inner := encodeValue(val.Values[q], pool)
			putU32(&buf, uint32(len(inner)))
			buf.Write(inner)
		}

	case *restable.Styleable:
		buf.WriteByte(valStyleable)
		putU32(&buf, uint32(len(val.Entries)))
		for _, e := range val.Entries {
			c.encodeReference(&buf, e.Attr)
		}

	default:
		buf.WriteByte(valPrimitive)
		buf.WriteByte(byte(restable.PrimitiveNull))
		buf.Write([]byte{0, 0, 0, 0, 0, 0, 0})
	}

	return buf.Bytes()
}

// decodeValue parses a blob written by encodeValue.
func decodeValue(b []byte, pool *restable.StringPool) (restable.Value, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("empty value blob")
	}
	c := &codecContext{pool: pool}
	tag := b[0]
	off := 1

	switch tag {
	case valPrimitive:
		ptype := restable.PrimitiveType(b[off])
		off += 4
		data, _ := readU32(b, off)
		return &restable.Primitive{PType: ptype, Data: data}, nil

	case valString:
		idx, _ := readU32(b, off)
		return &restable.StringValue{Ref: pool.RefAt(int(idx))}, nil

	case valFileReference:
		fk := restable.FileKind(b[off])
		off += 4
		idx, _ := readU32(b, off)
		return &restable.FileReference{Path: restable.PathRef{Ref: pool.RefAt(int(idx))}, FileKind: fk}, nil

	case valReference:
		ref, _ := c.decodeReference(b, off)
		return &ref, nil

	case valAttribute:
		format, next := readU32(b, off)
		weak := b[next] != 0
		next += 4
		count, next := readU32(b, next)
		symbols := make([]restable.AttributeSymbol, count)
		for i := range symbols {
			var name restable.Name
			name, next = c.decodeName(b, next)
			var value uint32
			value, next = readU32(b, next)
			symbols[i] = restable.AttributeSymbol{Name: name, Value: value}
		}
		return &restable.Attribute{Format: restable.AttributeFormat(format), Symbols: symbols, Weak: weak}, nil

	case valStyle:
		hasParent := b[off] != 0
		off++
		parentInferred := b[off] != 0
		off++
		off += 2
		var parent *restable.Reference
		if hasParent {
			var p restable.Reference
			p, off = c.decodeReference(b, off)
			parent = &p
		}
		count, next := readU32(b, off)
		entries := make([]restable.StyleEntry, count)
		for i := range entries {
			var attr restable.Reference
			attr, next = c.decodeReference(b, next)
			var innerLen uint32
			innerLen, next = readU32(b, next)
			innerVal, err := decodeValue(b[next:next+int(innerLen)], pool)
			if err != nil {
				return nil, err
			}
			next += int(innerLen)
			entries[i] = restable.StyleEntry{Attr: attr, Value: innerVal}
		}
		return &restable.Style{Parent: parent, ParentInferred: parentInferred, Entries: entries}, nil

	case valArray:
		count, next := readU32(b, off)
		elems := make([]restable.Value, count)
		for i := range elems {
			var innerLen uint32
			innerLen, next = readU32(b, next)
			v, err := decodeValue(b[next:next+int(innerLen)], pool)
			if err != nil {
				return nil, err
			}
			next += int(innerLen)
			elems[i] = v
		}
		return &restable.Array{Elements: elems}, nil

	case valPlural:
		n := int(b[off])
		next := off + 4
		values := make(map[restable.Quantity]restable.Value, n)
		for i := 0; i < n; i++ {
			var tagIdx, innerLen uint32
			tagIdx, next = readU32(b, next)
			q := restable.Quantity(c.stringAt(tagIdx))
			innerLen, next = readU32(b, next)
			v, err := decodeValue(b[next:next+int(innerLen)], pool)
			if err != nil {
				return nil, err
			}
			next += int(innerLen)
			values[q] = v
		}
		return &restable.Plural{Values: values}, nil

	case valStyleable:
		count, next := readU32(b, off)
		entries := make([]restable.StyleableEntry, count)
		for i := range entries {
			var attr restable.Reference
			attr, next = c.decodeReference(b, next)
			entries[i] = restable.StyleableEntry{Attr: attr}
		}
		return &restable.Styleable{Entries: entries}, nil

	default:
		return nil, fmt.Errorf("unknown value tag %d", tag)
	}
}
