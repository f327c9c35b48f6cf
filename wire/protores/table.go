package protores

import (
	"fmt"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/restable"
)

// Field numbers for the Table/Package/Type/Entry/ConfigValue messages.
const (
	fieldTablePackages = 1

	fieldPkgID    = 1
	fieldPkgName  = 2
	fieldPkgTypes = 3

	fieldTypeName       = 1
	fieldTypeID         = 2
	fieldTypeVisibility = 3
	fieldTypeEntries    = 4

	fieldEntryName          = 1
	fieldEntryID            = 2
	fieldEntryVisLevel      = 3
	fieldEntryOverlayPolicy = 4
	fieldEntryStagedAPI     = 5
	fieldEntryPinnedID      = 6
	fieldEntryStagingGroup  = 7
	fieldEntryComment       = 8
	fieldEntryValues        = 9

	fieldCVConfig     = 1
	fieldCVProduct    = 2
	fieldCVSourcePath = 3
	fieldCVSourceLine = 4
	fieldCVValue      = 5
)

func appendSubmessage(b []byte, field int, content []byte) []byte {
	b = protowire.AppendTag(b, protowire.Number(field), protowire.BytesType)
	b = protowire.AppendBytes(b, content)
	return b
}

func appendStringField(b []byte, field int, s string) []byte {
	b = protowire.AppendTag(b, protowire.Number(field), protowire.BytesType)
	b = protowire.AppendString(b, s)
	return b
}

func appendVarintField(b []byte, field int, v uint64) []byte {
	b = protowire.AppendTag(b, protowire.Number(field), protowire.VarintType)
	b = protowire.AppendVarint(b, v)
	return b
}

// EncodeTable renders a full restable.Table as a length-delimited
// protobuf-wire message: a repeated field of Package submessages (spec.md
// §4.3's documented proto equivalent).
func EncodeTable(t *restable.Table) ([]byte, error) {
	var b []byte
	for _, pkg := range t.Packages {
		encoded, err := encodePackage(pkg)
		if err != nil {
			return nil, err
		}
		b = appendSubmessage(b, fieldTablePackages, encoded)
	}
	return b, nil
}

func encodePackage(pkg *restable.Package) ([]byte, error) {
	var b []byte
	if pkg.ID != nil {
		b = appendVarintField(b, fieldPkgID, uint64(*pkg.ID)+1)
	}
	b = appendStringField(b, fieldPkgName, pkg.Name)
	for _, typ := range pkg.Types {
		encoded, err := encodeType(typ)
		if err != nil {
			return nil, err
		}
		b = appendSubmessage(b, fieldPkgTypes, encoded)
	}
	return b, nil
}

func encodeType(typ *restable.TableType) ([]byte, error) {
	var b []byte
	b = appendStringField(b, fieldTypeName, string(typ.Type))
	if typ.TypeID != nil {
		b = appendVarintField(b, fieldTypeID, uint64(*typ.TypeID)+1)
	}
	b = appendVarintField(b, fieldTypeVisibility, uint64(typ.Visibility))
	for _, e := range typ.Entries {
		encoded, err := encodeEntry(e)
		if err != nil {
			return nil, err
		}
		b = appendSubmessage(b, fieldTypeEntries, encoded)
	}
	return b, nil
}

func encodeEntry(e *restable.Entry) ([]byte, error) {
	var b []byte
	b = appendStringField(b, fieldEntryName, e.Name)
	if e.ID != nil {
		b = appendVarintField(b, fieldEntryID, uint64(*e.ID)+1)
	}
	b = appendVarintField(b, fieldEntryVisLevel, uint64(e.Visibility.Level))
	b = appendVarintField(b, fieldEntryOverlayPolicy, uint64(e.OverlayPolicy))
	if e.Visibility.StagedAPI {
		b = appendVarintField(b, fieldEntryStagedAPI, 1)
	}
	if e.Visibility.PinnedID != nil {
		b = appendVarintField(b, fieldEntryPinnedID, uint64(*e.Visibility.PinnedID)+1)
	}
	if e.Visibility.StagingGroup != "" {
		b = appendStringField(b, fieldEntryStagingGroup, e.Visibility.StagingGroup)
	}
	if e.Visibility.Comment != "" {
		b = appendStringField(b, fieldEntryComment, e.Visibility.Comment)
	}
	for _, cv := range restable.SortedValues(e) {
		encoded := encodeConfigValue(cv)
		b = appendSubmessage(b, fieldEntryValues, encoded)
	}
	return b, nil
}

func encodeConfigValue(cv restable.ConfigValue) []byte {
	var b []byte
	b = appendStringField(b, fieldCVConfig, cv.Config.String())
	if cv.Product != "" {
		b = appendStringField(b, fieldCVProduct, cv.Product)
	}
	if cv.Source.Path != "" {
		b = appendStringField(b, fieldCVSourcePath, cv.Source.Path)
	}
	if cv.Source.Line != 0 {
		b = appendVarintField(b, fieldCVSourceLine, uint64(cv.Source.Line))
	}
	b = appendSubmessage(b, fieldCVValue, EncodeValue(cv.Value))
	return b
}

// DecodeTable parses a message produced by EncodeTable.
func DecodeTable(data []byte) (*restable.Table, error) {
	t := restable.NewTable()
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("malformed table tag")
		}
		b = b[n:]
		if int(num) != fieldTablePackages || typ != protowire.BytesType {
			return nil, fmt.Errorf("unexpected table field %d", num)
		}
		content, rest, err := consumeBytes(b)
		if err != nil {
			return nil, err
		}
		b = rest
		pkg, err := decodePackage(content)
		if err != nil {
			return nil, err
		}
		t.Packages = append(t.Packages, pkg)
	}
	sort.SliceStable(t.Packages, func(i, j int) bool { return t.Packages[i].Name < t.Packages[j].Name })
	return t, nil
}

func decodePackage(data []byte) (*restable.Package, error) {
	var pkg restable.Package
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("malformed package tag")
		}
		b = b[n:]
		switch {
		case int(num) == fieldPkgID && typ == protowire.VarintType:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}
			b = rest
			id := uint8(v - 1)
			pkg.ID = &id
		case int(num) == fieldPkgName && typ == protowire.BytesType:
			s, rest, err := consumeString(b)
			if err != nil {
				return nil, err
			}
			b = rest
			pkg.Name = s
		case int(num) == fieldPkgTypes && typ == protowire.BytesType:
			content, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}
			b = rest
			typv, err := decodeType(content)
			if err != nil {
				return nil, err
			}
			pkg.Types = append(pkg.Types, typv)
		default:
			return nil, fmt.Errorf("unexpected package field %d", num)
		}
	}
	return &pkg, nil
}

func decodeType(data []byte) (*restable.TableType, error) {
	typ := &restable.TableType{}
	b := data
	for len(b) > 0 {
		num, wt, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("malformed type tag")
		}
		b = b[n:]
		switch {
		case int(num) == fieldTypeName && wt == protowire.BytesType:
			s, rest, err := consumeString(b)
			if err != nil {
				return nil, err
			}
			b = rest
			typ.Type = restable.Type(s)
		case int(num) == fieldTypeID && wt == protowire.VarintType:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}
			b = rest
			id := uint8(v - 1)
			typ.TypeID = &id
		case int(num) == fieldTypeVisibility && wt == protowire.VarintType:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}
			b = rest
			typ.Visibility = restable.VisibilityLevel(v)
		case int(num) == fieldTypeEntries && wt == protowire.BytesType:
			content, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}
			b = rest
			e, err := decodeEntry(content)
			if err != nil {
				return nil, err
			}
			typ.Entries = append(typ.Entries, e)
		default:
			return nil, fmt.Errorf("unexpected type field %d", num)
		}
	}
	return typ, nil
}

func decodeEntry(data []byte) (*restable.Entry, error) {
	e := &restable.Entry{}
	b := data
	for len(b) > 0 {
		num, wt, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("malformed entry tag")
		}
		b = b[n:]
		switch {
		case int(num) == fieldEntryName && wt == protowire.BytesType:
			s, rest, err := consumeString(b)
			if err != nil {
				return nil, err
			}
			b = rest
			e.Name = s
		case int(num) == fieldEntryID && wt == protowire.VarintType:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}
			b = rest
			id := restable.ID(v - 1)
			e.ID = &id
		case int(num) == fieldEntryVisLevel && wt == protowire.VarintType:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}
			b = rest
			e.Visibility.Level = restable.VisibilityLevel(v)
		case int(num) == fieldEntryOverlayPolicy && wt == protowire.VarintType:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}
			b = rest
			e.OverlayPolicy = restable.OverlayPolicy(v)
		case int(num) == fieldEntryStagedAPI && wt == protowire.VarintType:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}
			b = rest
			e.Visibility.StagedAPI = v != 0
		case int(num) == fieldEntryPinnedID && wt == protowire.VarintType:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}
			b = rest
			id := restable.ID(v - 1)
			e.Visibility.PinnedID = &id
		case int(num) == fieldEntryStagingGroup && wt == protowire.BytesType:
			s, rest, err := consumeString(b)
			if err != nil {
				return nil, err
			}
			b = rest
			e.Visibility.StagingGroup = s
		case int(num) == fieldEntryComment && wt == protowire.BytesType:
			s, rest, err := consumeString(b)
			if err != nil {
				return nil, err
			}
			b = rest
			e.Visibility.Comment = s
		case int(num) == fieldEntryValues && wt == protowire.BytesType:
			content, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}
			b = rest
			cv, err := decodeConfigValue(content)
			if err != nil {
				return nil, err
			}
			e.Values = append(e.Values, cv)
		default:
			return nil, fmt.Errorf("unexpected entry field %d", num)
		}
	}
	return e, nil
}

func decodeConfigValue(data []byte) (restable.ConfigValue, error) {
	var cv restable.ConfigValue
	var cfgStr string
	b := data
	for len(b) > 0 {
		num, wt, n := protowire.ConsumeTag(b)
		if n < 0 {
			return cv, fmt.Errorf("malformed config value tag")
		}
		b = b[n:]
		switch {
		case int(num) == fieldCVConfig && wt == protowire.BytesType:
			s, rest, err := consumeString(b)
			if err != nil {
				return cv, err
			}
			b = rest
			cfgStr = s
		case int(num) == fieldCVProduct && wt == protowire.BytesType:
			s, rest, err := consumeString(b)
			if err != nil {
				return cv, err
			}
			b = rest
			cv.Product = s
		case int(num) == fieldCVSourcePath && wt == protowire.BytesType:
			s, rest, err := consumeString(b)
			if err != nil {
				return cv, err
			}
			b = rest
			cv.Source.Path = s
		case int(num) == fieldCVSourceLine && wt == protowire.VarintType:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return cv, err
			}
			b = rest
			cv.Source.Line = int(v)
		case int(num) == fieldCVValue && wt == protowire.BytesType:
			content, rest, err := consumeBytes(b)
			if err != nil {
				return cv, err
			}
			b = rest
			v, err := DecodeValue(content)
			if err != nil {
				return cv, err
			}
			cv.Value = v
		default:
			return cv, fmt.Errorf("unexpected config value field %d", num)
		}
	}
	cfg, err := androidfw.ParseConfiguration(cfgStr)
	if err != nil {
		return cv, fmt.Errorf("decoding config value configuration: %w", err)
	}
	cv.Config = cfg
	return cv, nil
}
