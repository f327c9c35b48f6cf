package restable

// ValueKind tags the variant of a Value sum type.
type ValueKind int

const (
	KindPrimitive ValueKind = iota
	KindString
	KindFileReference
	KindReference
	KindAttribute
	KindStyle
	KindArray
	KindPlural
	KindStyleable
)

// Value is the tagged-union interface implemented by every resource value
// variant (spec.md §3, §9 design note: "tagged union with a visitor
// interface"). Clone deep-copies the value, re-interning any string-pool
// references into dst; Equal performs structural equality.
type Value interface {
	Kind() ValueKind
	Clone(dst *StringPool) Value
	Equal(other Value) bool
}

// PrimitiveType distinguishes the typed bit pattern carried by a Primitive.
type PrimitiveType uint8

const (
	PrimitiveBool PrimitiveType = iota
	PrimitiveInt
	PrimitiveColor
	PrimitiveFloat
	PrimitiveFraction
	PrimitiveDimension
	PrimitiveNull
)

// Primitive is a bool/int/color/float/fraction/dimension value with a
// typed 32-bit bit pattern, mirroring Res_value's data encoding.
type Primitive struct {
	PType PrimitiveType
	Data  uint32
}

func (p *Primitive) Kind() ValueKind { return KindPrimitive }
func (p *Primitive) Clone(*StringPool) Value {
	cp := *p
	return &cp
}
func (p *Primitive) Equal(other Value) bool {
	o, ok := other.(*Primitive)
	return ok && *p == *o
}

// StringValue is a reference into a pooled string table, with optional
// styled spans carried by the pool entry itself.
type StringValue struct {
	Ref StringRef
}

func (s *StringValue) Kind() ValueKind { return KindString }
func (s *StringValue) Clone(dst *StringPool) Value {
	return &StringValue{Ref: dst.CloneRef(s.Ref)}
}
func (s *StringValue) Equal(other Value) bool {
	o, ok := other.(*StringValue)
	return ok && s.Ref.String() == o.Ref.String()
}

// FileKind identifies the detected content kind of a file-referenced
// resource payload.
type FileKind int

const (
	FileKindPNG FileKind = iota
	FileKindBinaryXML
	FileKindProtoXML
	FileKindRaw
)

// FileReference is a value whose payload lives at a path inside the
// archive, with a detected file kind.
type FileReference struct {
	Path     PathRef
	FileKind FileKind
}

// PathRef is a string-pool reference to a file path; a distinct type from
// StringRef to keep the two namespaces from being confused when cloning.
type PathRef struct{ Ref StringRef }

func (f *FileReference) Kind() ValueKind { return KindFileReference }

func (f *FileReference) Clone(dst *StringPool) Value {
	return &FileReference{Path: PathRef{Ref: dst.CloneRef(f.Path.Ref)}, FileKind: f.FileKind}
}
func (f *FileReference) Equal(other Value) bool {
	o, ok := other.(*FileReference)
	return ok && f.Path.Ref.String() == o.Path.Ref.String() && f.FileKind == o.FileKind
}

// Reference is a symbolic reference to another resource, optionally
// already resolved to a concrete ID.
type Reference struct {
	Name    Name
	ID      *ID
	Private bool
	// IsAttributeRef distinguishes "?attr/foo" style attribute lookups
	// from "@type/foo" resource references.
	IsAttributeRef bool
}

func (r *Reference) Kind() ValueKind { return KindReference }
func (r *Reference) Clone(*StringPool) Value {
	cp := *r
	if r.ID != nil {
		id := *r.ID
		cp.ID = &id
	}
	return &cp
}
func (r *Reference) Equal(other Value) bool {
	o, ok := other.(*Reference)
	if !ok {
		return false
	}
	if r.Name != o.Name || r.Private != o.Private || r.IsAttributeRef != o.IsAttributeRef {
		return false
	}
	if (r.ID == nil) != (o.ID == nil) {
		return false
	}
	return r.ID == nil || *r.ID == *o.ID
}

// AttributeFormat is a bitmask of the value kinds an attribute accepts.
type AttributeFormat uint32

const (
	FormatReference AttributeFormat = 1 << iota
	FormatString
	FormatInteger
	FormatBoolean
	FormatColor
	FormatFloat
	FormatDimension
	FormatFraction
	FormatEnum
	FormatFlags
)

// AttributeSymbol is one named enum/flag constant of an Attribute.
type AttributeSymbol struct {
	Name  Name
	Value uint32
}

// Attribute is an attribute definition: a format mask plus an optional
// enum/flag symbol table.
type Attribute struct {
	Format  AttributeFormat
	Symbols []AttributeSymbol
	// Weak marks an attribute auto-created by an unresolved "?attr/foo"
	// style reference rather than an explicit <attr> declaration.
	Weak bool
}

func (a *Attribute) Kind() ValueKind { return KindAttribute }
func (a *Attribute) Clone(*StringPool) Value {
	cp := &Attribute{Format: a.Format, Weak: a.Weak}
	cp.Symbols = append([]AttributeSymbol(nil), a.Symbols...)
	return cp
}
func (a *Attribute) Equal(other Value) bool {
	o, ok := other.(*Attribute)
	if !ok || a.Format != o.Format || len(a.Symbols) != len(o.Symbols) {
		return false
	}
	for i := range a.Symbols {
		if a.Symbols[i] != o.Symbols[i] {
			return false
		}
	}
	return true
}

// StyleEntry is one (attr-ref, Value) pair within a Style.
type StyleEntry struct {
	Attr  Reference
	Value Value
}

// Style has an optional parent reference and an ordered list of attribute
// value entries.
type Style struct {
	Parent     *Reference
	ParentInferred bool
	Entries    []StyleEntry
}

func (s *Style) Kind() ValueKind { return KindStyle }
func (s *Style) Clone(dst *StringPool) Value {
	cp := &Style{ParentInferred: s.ParentInferred}
	if s.Parent != nil {
		p := s.Parent.Clone(dst).(*Reference)
		cp.Parent = p
	}
	for _, e := range s.Entries {
		cp.Entries = append(cp.Entries, StyleEntry{
			Attr:  *e.Attr.Clone(dst).(*Reference),
			Value: e.Value.Clone(dst),
		})
	}
	return cp
}
func (s *Style) Equal(other Value) bool {
	o, ok := other.(*Style)
	if !ok || len(s.Entries) != len(o.Entries) {
		return false
	}
	if (s.Parent == nil) != (o.Parent == nil) {
		return false
	}
	if s.Parent != nil && !s.Parent.Equal(o.Parent) {
		return false
	}
	for i := range s.Entries {
		if !s.Entries[i].Attr.Equal(&o.Entries[i].Attr) || !s.Entries[i].Value.Equal(o.Entries[i].Value) {
			return false
		}
	}
	return true
}

// Array is an ordered list of heterogeneous values.
type Array struct {
	Elements []Value
}

func (a *Array) Kind() ValueKind { return KindArray }
func (a *Array) Clone(dst *StringPool) Value {
	cp := &Array{}
	for _, e := range a.Elements {
		cp.Elements = append(cp.Elements, e.Clone(dst))
	}
	return cp
}
func (a *Array) Equal(other Value) bool {
	o, ok := other.(*Array)
	if !ok || len(a.Elements) != len(o.Elements) {
		return false
	}
	for i := range a.Elements {
		if !a.Elements[i].Equal(o.Elements[i]) {
			return false
		}
	}
	return true
}

// Quantity identifies a plurals bucket.
type Quantity string

const (
	QuantityZero  Quantity = "zero"
	QuantityOne   Quantity = "one"
	QuantityTwo   Quantity = "two"
	QuantityFew   Quantity = "few"
	QuantityMany  Quantity = "many"
	QuantityOther Quantity = "other"
)

// Plural maps quantity buckets to values.
type Plural struct {
	Values map[Quantity]Value
}

func (p *Plural) Kind() ValueKind { return KindPlural }
func (p *Plural) Clone(dst *StringPool) Value {
	cp := &Plural{Values: make(map[Quantity]Value, len(p.Values))}
	for q, v := range p.Values {
		cp.Values[q] = v.Clone(dst)
	}
	return cp
}
func (p *Plural) Equal(other Value) bool {
	o, ok := other.(*Plural)
	if !ok || len(p.Values) != len(o.Values) {
		return false
	}
	for q, v := range p.Values {
		ov, ok := o.Values[q]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// StyleableEntry is one named attr-ref within a Styleable.
type StyleableEntry struct {
	Attr Reference
}

// Styleable is an ordered list of attribute references declaring the set
// of styleable attributes for a view class. The order is significant and
// is unioned (not replaced) across overlays (spec.md §4.5 step 5).
type Styleable struct {
	Entries []StyleableEntry
}

func (s *Styleable) Kind() ValueKind { return KindStyleable }
func (s *Styleable) Clone(dst *StringPool) Value {
	cp := &Styleable{}
	for _, e := range s.Entries {
		cp.Entries = append(cp.Entries, StyleableEntry{Attr: *e.Attr.Clone(dst).(*Reference)})
	}
	return cp
}
func (s *Styleable) Equal(other Value) bool {
	o, ok := other.(*Styleable)
	if !ok || len(s.Entries) != len(o.Entries) {
		return false
	}
	for i := range s.Entries {
		if !s.Entries[i].Attr.Equal(&o.Entries[i].Attr) {
			return false
		}
	}
	return true
}

// Union appends every entry of other not already present (by Name),
// preserving first-seen order, per spec.md §4.5 step 5.
func (s *Styleable) Union(other *Styleable) {
	seen := make(map[Name]bool, len(s.Entries))
	for _, e := range s.Entries {
		seen[e.Attr.Name] = true
	}
	for _, e := range other.Entries {
		if !seen[e.Attr.Name] {
			s.Entries = append(s.Entries, e)
			seen[e.Attr.Name] = true
		}
	}
}
