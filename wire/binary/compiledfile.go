package binary

import (
	"bytes"
	"fmt"

	"github.com/resourcepack/aapt2go/restable"
)

// CompiledFileHeader describes a compiled non-value resource (a drawable,
// layout, or raw asset) carried as a KindResFile container payload
// (spec.md §4.3, §6).
type CompiledFileHeader struct {
	Name       restable.Name
	Config     string
	SourcePath string
	FileKind   restable.FileKind
}

// EncodeCompiledFile prepends a CompiledFileHeader to the file's raw
// payload bytes, 4-byte aligned, little-endian.
func EncodeCompiledFile(h CompiledFileHeader, payload []byte) []byte {
	pool := restable.NewStringPool()
	pkgIdx := pool.Intern(h.Name.Package)
	typIdx := pool.Intern(string(h.Name.Type))
	entIdx := pool.Intern(h.Name.Entry)
	cfgIdx := pool.Intern(h.Config)
	pathIdx := pool.Intern(h.SourcePath)

	poolChunk := encodeStringPool(pool, true)

	var body bytes.Buffer
	body.Write(poolChunk)
	putU32(&body, uint32(tagIndex(pool, pkgIdx)))
	putU32(&body, uint32(tagIndex(pool, typIdx)))
	putU32(&body, uint32(tagIndex(pool, entIdx)))
	putU32(&body, uint32(tagIndex(pool, cfgIdx)))
	putU32(&body, uint32(tagIndex(pool, pathIdx)))
	body.WriteByte(byte(h.FileKind))
	body.Write([]byte{0, 0, 0})
	putU32(&body, uint32(len(payload)))

	headerLen := chunkHeaderSize + align4(body.Len())
	total := headerLen + len(payload)
	buf := make([]byte, align4(total))
	putChunkHeader(buf, ChunkHeader{Type: ChunkTable, HeaderSize: uint16(headerLen), Size: uint32(len(buf))})
	copy(buf[chunkHeaderSize:], body.Bytes())
	copy(buf[headerLen:], payload)
	return buf
}

// DecodeCompiledFile splits a blob produced by EncodeCompiledFile back
// into its header and raw payload.
func DecodeCompiledFile(data []byte) (CompiledFileHeader, []byte, error) {
	var h CompiledFileHeader
	if len(data) < chunkHeaderSize {
		return h, nil, fmt.Errorf("compiled file blob too short")
	}
	ch := getChunkHeader(data)
	poolStart := chunkHeaderSize
	pool, err := decodeStringPool(data[poolStart:])
	if err != nil {
		return h, nil, fmt.Errorf("decoding compiled file string pool: %w", err)
	}
	poolHeader := getChunkHeader(data[poolStart:])
	off := poolStart + int(poolHeader.Size)

	var pkgIdx, typIdx, entIdx, cfgIdx, pathIdx, payloadLen uint32
	pkgIdx, off = readU32(data, off)
	typIdx, off = readU32(data, off)
	entIdx, off = readU32(data, off)
	cfgIdx, off = readU32(data, off)
	pathIdx, off = readU32(data, off)
	fileKind := data[off]
	off += 4
	payloadLen, off = readU32(data, off)

	h = CompiledFileHeader{
		Name: restable.Name{
			Package: pool.RefAt(int(pkgIdx)).String(),
			Type:    restable.Type(pool.RefAt(int(typIdx)).String()),
			Entry:   pool.RefAt(int(entIdx)).String(),
		},
		Config:     pool.RefAt(int(cfgIdx)).String(),
		SourcePath: pool.RefAt(int(pathIdx)).String(),
		FileKind:   restable.FileKind(fileKind),
	}

	payloadStart := int(ch.HeaderSize)
	if payloadStart+int(payloadLen) > len(data) {
		return h, nil, fmt.Errorf("compiled file payload out of range")
	}
	payload := data[payloadStart : payloadStart+int(payloadLen)]
	return h, payload, nil
}
