package binary

import (
	"bytes"
	"fmt"

	"github.com/resourcepack/aapt2go/restable"
)

// poolFlags bits.
const (
	poolFlagUTF8 uint32 = 1 << 0
)

// encodeStringPool renders a restable.StringPool as a ChunkStringPool
// chunk, including any styled spans attached to its entries. utf8 selects
// the on-wire string encoding; false means UTF-16LE (exercising
// restable.EncodeUTF16/DecodeUTF16).
func encodeStringPool(pool *restable.StringPool, utf8 bool) []byte {
	n := pool.Len()
	strBytes := make([][]byte, n)
	spanSets := make([][]restable.Span, n)
	for i := 0; i < n; i++ {
		ref := pool.RefAt(i)
		s := ref.String()
		spanSets[i] = pool.Spans(ref)
		if utf8 {
			strBytes[i] = []byte(s)
		} else if b, err := restable.EncodeUTF16(s); err == nil {
			strBytes[i] = b
		} else {
			strBytes[i] = []byte(s)
		}
	}

	headerLen := chunkHeaderSize + 4*4 + 4*n /* offsets */ + 4*n /* style counts */
	offsets := make([]uint32, n)
	var strData bytes.Buffer
	for i, sb := range strBytes {
		offsets[i] = uint32(strData.Len())
		var lenPrefix [4]byte
		le.PutUint32(lenPrefix[:], uint32(len(sb)))
		strData.Write(lenPrefix[:])
		strData.Write(sb)
	}
	strDataLen := align4(strData.Len())

	var styleData bytes.Buffer
	for _, spans := range spanSets {
		for _, sp := range spans {
			tagRef := pool.Intern(sp.Tag)
			var rec [12]byte
			le.PutUint32(rec[0:4], uint32(tagIndex(pool, tagRef)))
			le.PutUint32(rec[4:8], sp.FirstChar)
			le.PutUint32(rec[8:12], sp.LastChar)
			styleData.Write(rec[:])
		}
	}

	stylesStart := headerLen + strDataLen
	total := align4(stylesStart + styleData.Len())

	buf := make([]byte, total)
	var flags uint32
	if utf8 {
		flags = poolFlagUTF8
	}
	putChunkHeader(buf, ChunkHeader{Type: ChunkStringPool, HeaderSize: uint16(headerLen), Size: uint32(total)})
	le.PutUint32(buf[8:12], uint32(n))
	le.PutUint32(buf[12:16], flags)
	le.PutUint32(buf[16:20], uint32(headerLen))
	if styleData.Len() > 0 {
		le.PutUint32(buf[20:24], uint32(stylesStart))
	} else {
		le.PutUint32(buf[20:24], 0)
	}
	off := 24
	for _, o := range offsets {
		le.PutUint32(buf[off:off+4], o)
		off += 4
	}
	for _, spans := range spanSets {
		le.PutUint32(buf[off:off+4], uint32(len(spans)))
		off += 4
	}
	copy(buf[headerLen:], strData.Bytes())
	copy(buf[stylesStart:], styleData.Bytes())
	return buf
}

// tagIndex returns the index of the first pool entry whose text equals
// ref's, or 0 if there is none; it does not intern. Callers intern the
// string first. Tags are pool entries like any other string.
func tagIndex(pool *restable.StringPool, ref restable.StringRef) int {
	for i := 0; i < pool.Len(); i++ {
		if pool.RefAt(i).String() == ref.String() {
			return i
		}
	}
	return 0
}

// decodeStringPool parses a ChunkStringPool chunk previously produced by
// encodeStringPool into a fresh restable.StringPool.
func decodeStringPool(buf []byte) (*restable.StringPool, error) {
	if len(buf) < 24 {
		return nil, fmt.Errorf("string pool chunk too short")
	}
	h := getChunkHeader(buf)
	if h.Type != ChunkStringPool {
		return nil, fmt.Errorf("expected string pool chunk, got type 0x%04x", h.Type)
	}
	count := le.Uint32(buf[8:12])
	flags := le.Uint32(buf[12:16])
	stringsStart := le.Uint32(buf[16:20])
	stylesStart := le.Uint32(buf[20:24])
	utf8 := flags&poolFlagUTF8 != 0

	off := 24
	offsets := make([]uint32, count)
	for i := range offsets {
		offsets[i] = le.Uint32(buf[off : off+4])
		off += 4
	}
	styleCounts := make([]uint32, count)
	for i := range styleCounts {
		styleCounts[i] = le.Uint32(buf[off : off+4])
		off += 4
	}

	values := make([]string, count)
	for i := uint32(0); i < count; i++ {
		p := int(stringsStart) + int(offsets[i])
		if p+4 > len(buf) {
			return nil, fmt.Errorf("string %d offset out of range", i)
		}
		slen := le.Uint32(buf[p : p+4])
		p += 4
		if p+int(slen) > len(buf) {
			return nil, fmt.Errorf("string %d data out of range", i)
		}
		raw := buf[p : p+int(slen)]
		if utf8 {
			values[i] = string(raw)
		} else {
			decoded, err := restable.DecodeUTF16(raw)
			if err != nil {
				return nil, fmt.Errorf("decoding UTF-16 string %d: %w", i, err)
			}
			values[i] = decoded
		}
	}

	pool := restable.NewStringPool()
	if stylesStart == 0 {
		for _, s := range values {
			pool.Intern(s)
		}
		return pool, nil
	}

	spanOff := int(stylesStart)
	for i := uint32(0); i < count; i++ {
		n := int(styleCounts[i])
		spans := make([]restable.Span, n)
		for j := 0; j < n; j++ {
			tagIdx := le.Uint32(buf[spanOff : spanOff+4])
			first := le.Uint32(buf[spanOff+4 : spanOff+8])
			last := le.Uint32(buf[spanOff+8 : spanOff+12])
			spanOff += 12
			if int(tagIdx) >= len(values) {
				return nil, fmt.Errorf("style tag index out of range")
			}
			spans[j] = restable.Span{Tag: values[tagIdx], FirstChar: first, LastChar: last}
		}
		if n > 0 {
			pool.InternStyled(values[i], spans)
		} else {
			pool.Intern(values[i])
		}
	}
	return pool, nil
}
