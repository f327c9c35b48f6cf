package compile

import (
	"strings"

	"github.com/resourcepack/aapt2go/restable"
)

// parsedReference is the result of parsing an inline "@[+]type/name" or
// "?[package:]attr/name" reference string.
type parsedReference struct {
	Name      restable.Name
	IsNew     bool // "@+id/..." declares a new id rather than referencing one
	IsAttrRef bool // "?attr/..." form
}

// parseInlineReference parses s as an inline resource reference, the
// shape aapt2's ResourceUtils::ParseReference accepts. defaultPackage is
// used when s carries no explicit "pkg:" prefix.
func parseInlineReference(s, defaultPackage string) (parsedReference, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return parsedReference{}, false
	}

	var isAttrRef bool
	switch s[0] {
	case '@':
		s = s[1:]
	case '?':
		s = s[1:]
		isAttrRef = true
	default:
		return parsedReference{}, false
	}

	isNew := strings.HasPrefix(s, "+")
	if isNew {
		s = s[1:]
	}
	if s == "null" || s == "empty" {
		return parsedReference{}, false
	}

	pkg := defaultPackage
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		pkg = s[:idx]
		s = s[idx+1:]
	}
	if pkg == "android" && isAttrRef {
		// "?android:attr/x" and "?android:x" are both conventional; fall
		// through to the generic type/entry split below either way.
	}

	typ, entry, ok := strings.Cut(s, "/")
	if !ok {
		// "?attr_name" shorthand: implicitly type "attr".
		typ, entry = "attr", s
		isAttrRef = true
	}
	if entry == "" {
		return parsedReference{}, false
	}

	return parsedReference{
		Name:      restable.Name{Package: pkg, Type: restable.Type(typ), Entry: entry},
		IsNew:     isNew,
		IsAttrRef: isAttrRef,
	}, true
}
