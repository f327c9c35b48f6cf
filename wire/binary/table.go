package binary

import (
	"bytes"
	"fmt"

	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/diag"
	"github.com/resourcepack/aapt2go/restable"
)

const noIndex uint32 = 0xFFFFFFFF

// EncodeTable renders a full restable.Table as a ChunkTable root chunk:
// the shared string pool, then one ChunkTablePackage per package, each
// holding a ChunkTableTypeSpec (per-entry metadata) followed by one
// ChunkTableType per distinct configuration actually used by that type
// (spec.md §4.3).
func EncodeTable(t *restable.Table) ([]byte, error) {
	pool := t.StringPool
	var body bytes.Buffer

	// Encoding a package interns its type, entry, config and source
	// strings, so packages are encoded before the pool is written.
	pkgChunks := make([][]byte, 0, len(t.Packages))
	for _, pkg := range t.Packages {
		pkgChunk, err := encodePackage(pkg, pool)
		if err != nil {
			return nil, err
		}
		pkgChunks = append(pkgChunks, pkgChunk)
	}

	poolChunk := encodeStringPool(pool, true)
	body.Write(poolChunk)

	putU32(&body, uint32(len(t.Packages)))
	for _, pkgChunk := range pkgChunks {
		body.Write(pkgChunk)
	}

	total := chunkHeaderSize + body.Len()
	buf := make([]byte, align4(total))
	putChunkHeader(buf, ChunkHeader{Type: ChunkTable, HeaderSize: chunkHeaderSize, Size: uint32(len(buf))})
	copy(buf[chunkHeaderSize:], body.Bytes())
	return buf, nil
}

func encodePackage(pkg *restable.Package, pool *restable.StringPool) ([]byte, error) {
	var body bytes.Buffer
	if pkg.ID != nil {
		putU32(&body, uint32(*pkg.ID))
	} else {
		putU32(&body, noIndex)
	}
	nameBytes := []byte(pkg.Name)
	putU32(&body, uint32(len(nameBytes)))
	body.Write(nameBytes)
	for len(nameBytes)%4 != 0 {
		body.WriteByte(0)
		nameBytes = append(nameBytes, 0)
	}

	putU32(&body, uint32(len(pkg.Types)))
	for _, typ := range pkg.Types {
		specChunk := encodeTypeSpec(typ, pool)
		body.Write(specChunk)

		configs := distinctConfigs(typ)
		putU32(&body, uint32(len(configs)))
		for _, cfg := range configs {
			typeChunk, err := encodeTypeChunk(typ, cfg, pool)
			if err != nil {
				return nil, err
			}
			body.Write(typeChunk)
		}
	}

	total := chunkHeaderSize + body.Len()
	buf := make([]byte, align4(total))
	putChunkHeader(buf, ChunkHeader{Type: ChunkTablePackage, HeaderSize: chunkHeaderSize, Size: uint32(len(buf))})
	copy(buf[chunkHeaderSize:], body.Bytes())
	return buf, nil
}

func encodeTypeSpec(typ *restable.TableType, pool *restable.StringPool) []byte {
	var body bytes.Buffer
	typeNameIdx := tagIndex(pool, pool.Intern(string(typ.Type)))
	putU32(&body, uint32(typeNameIdx))
	if typ.TypeID != nil {
		putU32(&body, uint32(*typ.TypeID))
	} else {
		putU32(&body, noIndex)
	}
	body.WriteByte(byte(typ.Visibility))
	body.Write([]byte{0, 0, 0})

	putU32(&body, uint32(len(typ.Entries)))
	for _, e := range typ.Entries {
		nameIdx := tagIndex(pool, pool.Intern(e.Name))
		putU32(&body, uint32(nameIdx))
		if e.ID != nil {
			putU32(&body, uint32(*e.ID))
		} else {
			putU32(&body, noIndex)
		}
		body.WriteByte(byte(e.Visibility.Level))
		body.WriteByte(byte(e.OverlayPolicy))
		if e.Visibility.StagedAPI {
			body.WriteByte(1)
		} else {
			body.WriteByte(0)
		}
		body.WriteByte(0)
		if e.Visibility.PinnedID != nil {
			putU32(&body, uint32(*e.Visibility.PinnedID))
		} else {
			putU32(&body, noIndex)
		}
		if e.Visibility.StagingGroup != "" {
			putU32(&body, uint32(tagIndex(pool, pool.Intern(e.Visibility.StagingGroup))))
		} else {
			putU32(&body, noIndex)
		}
		if e.Visibility.Comment != "" {
			putU32(&body, uint32(tagIndex(pool, pool.Intern(e.Visibility.Comment))))
		} else {
			putU32(&body, noIndex)
		}
	}

	total := chunkHeaderSize + body.Len()
	buf := make([]byte, align4(total))
	putChunkHeader(buf, ChunkHeader{Type: ChunkTableTypeSpec, HeaderSize: chunkHeaderSize, Size: uint32(len(buf))})
	copy(buf[chunkHeaderSize:], body.Bytes())
	return buf
}

// distinctConfigs returns the set of configurations used by any entry of
// typ, ordered by canonical configuration string for determinism.
func distinctConfigs(typ *restable.TableType) []androidfw.Configuration {
	seen := map[string]androidfw.Configuration{}
	for _, e := range typ.Entries {
		for _, cv := range e.Values {
			seen[cv.Config.String()] = cv.Config
		}
	}
	out := make([]androidfw.Configuration, 0, len(seen))
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sortStrings(keys)
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}

func encodeTypeChunk(typ *restable.TableType, cfg androidfw.Configuration, pool *restable.StringPool) ([]byte, error) {
	var body bytes.Buffer
	cfgIdx := tagIndex(pool, pool.Intern(cfg.String()))
	putU32(&body, uint32(cfgIdx))
	putU32(&body, uint32(len(typ.Entries)))

	var values bytes.Buffer
	offsets := make([]uint32, len(typ.Entries))
	for i, e := range typ.Entries {
		cv := e.FindValue(cfg, "")
		if cv == nil {
			// fall back to first value at this config regardless of product
			for j := range e.Values {
				if e.Values[j].Config == cfg {
					cv = &e.Values[j]
					break
				}
			}
		}
		if cv == nil {
			offsets[i] = noIndex
			continue
		}
		offsets[i] = uint32(values.Len())
		if cv.Product != "" {
			putU32(&values, uint32(tagIndex(pool, pool.Intern(cv.Product))))
		} else {
			putU32(&values, noIndex)
		}
		putU32(&values, uint32(tagIndex(pool, pool.Intern(cv.Source.Path))))
		putU32(&values, uint32(cv.Source.Line))
		encoded := encodeValue(cv.Value, pool)
		putU32(&values, uint32(len(encoded)))
		values.Write(encoded)
	}

	for _, off := range offsets {
		putU32(&body, off)
	}
	body.Write(values.Bytes())

	total := chunkHeaderSize + body.Len()
	buf := make([]byte, align4(total))
	putChunkHeader(buf, ChunkHeader{Type: ChunkTableType, HeaderSize: chunkHeaderSize, Size: uint32(len(buf))})
	copy(buf[chunkHeaderSize:], body.Bytes())
	return buf, nil
}

// DecodeTable parses a ChunkTable root chunk produced by EncodeTable.
func DecodeTable(data []byte) (*restable.Table, error) {
	if len(data) < chunkHeaderSize {
		return nil, fmt.Errorf("table chunk too short")
	}
	h := getChunkHeader(data)
	if h.Type != ChunkTable {
		return nil, fmt.Errorf("expected table chunk, got type 0x%04x", h.Type)
	}

	pool, err := decodeStringPool(data[chunkHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("decoding table string pool: %w", err)
	}
	poolHeader := getChunkHeader(data[chunkHeaderSize:])
	off := chunkHeaderSize + int(poolHeader.Size)

	pkgCount, off2 := readU32(data, off)
	off = off2

	t := restable.NewTable()
	t.StringPool = pool

	for i := uint32(0); i < pkgCount; i++ {
		pkgHeader := getChunkHeader(data[off:])
		pkg, err := decodePackage(data[off:off+int(pkgHeader.Size)], pool)
		if err != nil {
			return nil, err
		}
		t.Packages = append(t.Packages, pkg)
		off += int(pkgHeader.Size)
	}

	return t, nil
}

func decodePackage(buf []byte, pool *restable.StringPool) (*restable.Package, error) {
	h := getChunkHeader(buf)
	if h.Type != ChunkTablePackage {
		return nil, fmt.Errorf("expected package chunk, got 0x%04x", h.Type)
	}
	off := chunkHeaderSize
	rawID, next := readU32(buf, off)
	off = next

	nameLen, next := readU32(buf, off)
	off = next
	name := string(buf[off : off+int(nameLen)])
	off += int(nameLen)
	for off%4 != 0 {
		off++
	}

	pkg := restable.NewPackage(name)
	if rawID != noIndex {
		id := uint8(rawID)
		pkg.ID = &id
	}

	typeCount, next := readU32(buf, off)
	off = next
	for i := uint32(0); i < typeCount; i++ {
		specHeader := getChunkHeader(buf[off:])
		typ, err := decodeTypeSpec(buf[off:off+int(specHeader.Size)], pool)
		if err != nil {
			return nil, err
		}
		off += int(specHeader.Size)

		configCount, next2 := readU32(buf, off)
		off = next2
		for j := uint32(0); j < configCount; j++ {
			chunkHeader := getChunkHeader(buf[off:])
			if err := decodeTypeChunk(buf[off:off+int(chunkHeader.Size)], typ, pool); err != nil {
				return nil, err
			}
			off += int(chunkHeader.Size)
		}

		pkg.Types = append(pkg.Types, typ)
	}

	return pkg, nil
}

func decodeTypeSpec(buf []byte, pool *restable.StringPool) (*restable.TableType, error) {
	h := getChunkHeader(buf)
	if h.Type != ChunkTableTypeSpec {
		return nil, fmt.Errorf("expected typespec chunk, got 0x%04x", h.Type)
	}
	off := chunkHeaderSize
	typeNameIdx, next := readU32(buf, off)
	off = next
	typeID, next := readU32(buf, off)
	off = next
	visibility := buf[off]
	off += 4

	typ := restable.NewTableType(restable.Type(pool.RefAt(int(typeNameIdx)).String()))
	typ.Visibility = restable.VisibilityLevel(visibility)
	if typeID != noIndex {
		id := uint8(typeID)
		typ.TypeID = &id
	}

	entryCount, next2 := readU32(buf, off)
	off = next2
	for i := uint32(0); i < entryCount; i++ {
		var nameIdx, rawID, pinnedID, groupIdx, commentIdx uint32
		nameIdx, off = readU32(buf, off)
		rawID, off = readU32(buf, off)
		visLevel := buf[off]
		overlayPolicy := buf[off+1]
		staged := buf[off+2] != 0
		off += 4
		pinnedID, off = readU32(buf, off)
		groupIdx, off = readU32(buf, off)
		commentIdx, off = readU32(buf, off)

		e := restable.NewEntry(pool.RefAt(int(nameIdx)).String())
		if rawID != noIndex {
			id := restable.ID(rawID)
			e.ID = &id
		}
		e.Visibility.Level = restable.VisibilityLevel(visLevel)
		e.OverlayPolicy = restable.OverlayPolicy(overlayPolicy)
		e.Visibility.StagedAPI = staged
		if pinnedID != noIndex {
			id := restable.ID(pinnedID)
			e.Visibility.PinnedID = &id
		}
		if groupIdx != noIndex {
			e.Visibility.StagingGroup = pool.RefAt(int(groupIdx)).String()
		}
		if commentIdx != noIndex {
			e.Visibility.Comment = pool.RefAt(int(commentIdx)).String()
		}
		typ.Entries = append(typ.Entries, e)
	}

	return typ, nil
}

func decodeTypeChunk(buf []byte, typ *restable.TableType, pool *restable.StringPool) error {
	h := getChunkHeader(buf)
	if h.Type != ChunkTableType {
		return fmt.Errorf("expected type chunk, got 0x%04x", h.Type)
	}
	off := chunkHeaderSize
	cfgIdx, next := readU32(buf, off)
	off = next
	entryCount, next2 := readU32(buf, off)
	off = next2

	cfg, err := androidfw.ParseConfiguration(pool.RefAt(int(cfgIdx)).String())
	if err != nil {
		return fmt.Errorf("decoding type chunk configuration: %w", err)
	}

	offsets := make([]uint32, entryCount)
	for i := range offsets {
		offsets[i], off = readU32(buf, off)
	}
	valuesStart := off

	for i := uint32(0); i < entryCount && int(i) < len(typ.Entries); i++ {
		if offsets[i] == noIndex {
			continue
		}
		p := valuesStart + int(offsets[i])
		var productIdx, pathIdx, line, vlen uint32
		productIdx, p = readU32(buf, p)
		pathIdx, p = readU32(buf, p)
		line, p = readU32(buf, p)
		vlen, p = readU32(buf, p)
		value, err := decodeValue(buf[p:p+int(vlen)], pool)
		if err != nil {
			return fmt.Errorf("decoding value: %w", err)
		}

		cv := restable.ConfigValue{
			Config: cfg,
			Value:  value,
			Source: diag.Source{Path: pool.RefAt(int(pathIdx)).String(), Line: int(line)},
		}
		if productIdx != noIndex {
			cv.Product = pool.RefAt(int(productIdx)).String()
		}
		typ.Entries[i].Values = append(typ.Entries[i].Values, cv)
	}

	return nil
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
