// Package binary implements the chunked binary resource-table wire format
// described in spec.md §4.3: a root chunk holding a shared string pool and
// one package chunk per package, each package chunk holding a type-spec
// chunk (per-entry name, id, visibility and pin metadata) and one type chunk per configuration with at
// least one value. All chunk boundaries are 4-byte aligned, little-endian
// throughout -- the same struct-overlay-over-encoding/binary idiom the
// teacher repo uses for ImageResourceDirectory-style headers.
package binary

import "encoding/binary"

// Chunk type tags.
const (
	ChunkStringPool    uint16 = 0x0001
	ChunkTable         uint16 = 0x0002
	ChunkTablePackage  uint16 = 0x0200
	ChunkTableTypeSpec uint16 = 0x0202
	ChunkTableType     uint16 = 0x0201
)

// ChunkHeader is the common 8-byte header prefixing every chunk: a type
// tag, the header's own size (for forward-compatible extension), and the
// chunk's total size including header and payload.
type ChunkHeader struct {
	Type       uint16
	HeaderSize uint16
	Size       uint32
}

const chunkHeaderSize = 8

var le = binary.LittleEndian

// align4 rounds n up to the next multiple of 4.
func align4(n int) int {
	return (n + 3) &^ 3
}

func putChunkHeader(buf []byte, h ChunkHeader) {
	le.PutUint16(buf[0:2], h.Type)
	le.PutUint16(buf[2:4], h.HeaderSize)
	le.PutUint32(buf[4:8], h.Size)
}

func getChunkHeader(buf []byte) ChunkHeader {
	return ChunkHeader{
		Type:       le.Uint16(buf[0:2]),
		HeaderSize: le.Uint16(buf[2:4]),
		Size:       le.Uint32(buf[4:8]),
	}
}
