package restable

import (
	"golang.org/x/text/encoding/unicode"
)

// Span is a styled-string span: a tag applied to the inclusive character
// range [FirstChar, LastChar] of a pooled string.
type Span struct {
	Tag       string
	FirstChar uint32
	LastChar  uint32
}

// StringRef is a stable reference into a StringPool.
type StringRef struct {
	pool *StringPool
	idx  int
}

// String returns the referenced string's value.
func (r StringRef) String() string {
	if r.pool == nil || r.idx < 0 || r.idx >= len(r.pool.entries) {
		return ""
	}
	return r.pool.entries[r.idx].value
}

type poolEntry struct {
	value string
	spans []Span
}

// StringPool is a deduplicated pool of UTF-8/UTF-16 strings with optional
// styled spans. Ordering is first-use (insertion order), preserved across
// clones, per spec.md §4.3.
type StringPool struct {
	entries []poolEntry
	index   map[string]int
}

// NewStringPool returns an empty pool.
func NewStringPool() *StringPool {
	return &StringPool{index: make(map[string]int)}
}

// Intern adds s to the pool if not already present and returns a stable
// reference to it, deduplicating on (value) alone; use InternStyled to
// additionally carry spans.
func (p *StringPool) Intern(s string) StringRef {
	return p.InternStyled(s, nil)
}

// InternStyled interns a string with an associated span list. Styled
// entries with distinct spans are never merged with an unstyled entry of
// the same text, since the spans change meaning.
func (p *StringPool) InternStyled(s string, spans []Span) StringRef {
	if len(spans) == 0 {
		if idx, ok := p.index[s]; ok {
			return StringRef{pool: p, idx: idx}
		}
	}
	idx := len(p.entries)
	p.entries = append(p.entries, poolEntry{value: s, spans: append([]Span(nil), spans...)})
	if len(spans) == 0 {
		p.index[s] = idx
	}
	return StringRef{pool: p, idx: idx}
}

// Spans returns the span list attached to ref, if any.
func (p *StringPool) Spans(ref StringRef) []Span {
	if ref.pool != p || ref.idx < 0 || ref.idx >= len(p.entries) {
		return nil
	}
	return p.entries[ref.idx].spans
}

// Len returns the number of entries in the pool.
func (p *StringPool) Len() int { return len(p.entries) }

// RefAt returns a stable reference to the i'th entry in insertion order,
// used by the serializer to walk the pool positionally.
func (p *StringPool) RefAt(i int) StringRef {
	return StringRef{pool: p, idx: i}
}

// CloneRef re-interns ref (taken against some other pool) into p, deep
// copying the string value and any spans, per spec.md invariant 5: string
// pool references must remain valid across clones.
func (p *StringPool) CloneRef(ref StringRef) StringRef {
	if ref.pool == nil {
		return StringRef{}
	}
	e := ref.pool.entries[ref.idx]
	return p.InternStyled(e.value, e.spans)
}

// EncodeUTF16 encodes s as UTF-16LE, matching the wire format's UTF-16
// string table entries.
func EncodeUTF16(s string) ([]byte, error) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	return encoder.Bytes([]byte(s))
}

// DecodeUTF16 decodes a whole UTF-16 byte slice (little-endian unless a
// leading byte-order mark says otherwise); a trailing zero terminator, if
// present, is decoded as a NUL character rather than stripped. Mirrors the teacher's DecodeUTF16String helper.
func DecodeUTF16(b []byte) (string, error) {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	s, err := decoder.Bytes(b)
	if err != nil {
		return "", err
	}
	return string(s), nil
}
