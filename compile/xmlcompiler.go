package compile

import (
	"github.com/resourcepack/aapt2go/diag"
	"github.com/resourcepack/aapt2go/link"
	"github.com/resourcepack/aapt2go/restable"
)

// XMLCompiler resolves a DOM in place: every attribute name to the
// attribute resource id it names, every inline "@.../..." value to a
// Reference, collects `@+id/name` declarations, and extracts `aapt:attr`
// blocks into sibling sub-documents (spec.md §4.10).
type XMLCompiler struct {
	Symbols         link.SymbolSource
	DefiningPackage string
}

// Compile walks input starting at its root, mutating attributes in
// place via XMLInput's setters, and returns the newly declared ids plus
// any aapt:attr blocks found, along with one diagnostic per attribute
// naming an attribute resource that could not be resolved.
func (c *XMLCompiler) Compile(input XMLInput, source diag.Source) (*ExportedSymbols, []InlineAttrBlock, []*diag.Fatal) {
	exported := &ExportedSymbols{}
	var blocks []InlineAttrBlock
	var errs []*diag.Fatal

	c.walk(input, input.Root(), source, exported, &blocks, &errs)
	return exported, blocks, errs
}

func (c *XMLCompiler) walk(input XMLInput, n Node, source diag.Source, exported *ExportedSymbols, blocks *[]InlineAttrBlock, errs *[]*diag.Fatal) {
	if isAaptAttrBlock(input.TagName(n)) {
		*blocks = append(*blocks, InlineAttrBlock{Name: input.TagName(n), Root: n})
		return
	}

	attrs := input.Attrs(n)
	for i, a := range attrs {
		resolved := a
		attrName := restable.Name{Package: namespacePackage(a.Namespace, c.DefiningPackage), Type: restable.TypeAttr, Entry: a.Name}
		if id, ferr := c.resolveAttrName(attrName, source); ferr != nil {
			*errs = append(*errs, ferr)
		} else {
			resolved.Resolved = &id
		}

		if ref, ok := parseInlineReference(a.Value, c.DefiningPackage); ok {
			if ref.IsNew {
				exported.Add(ref.Name)
			}
			resolved.ValueRef = &restable.Reference{Name: ref.Name, IsAttributeRef: ref.IsAttrRef}
		}

		input.SetAttr(n, i, resolved)
	}

	if ref, ok := parseInlineReference(input.Text(n), c.DefiningPackage); ok && ref.IsNew {
		exported.Add(ref.Name)
	}

	for _, child := range input.Children(n) {
		c.walk(input, child, source, exported, blocks, errs)
	}
}

func (c *XMLCompiler) resolveAttrName(name restable.Name, source diag.Source) (restable.ID, *diag.Fatal) {
	if c.Symbols == nil {
		return restable.ID(0), diag.NewFatal(source, "no symbol source configured to resolve attribute %s", name)
	}
	info, ok := c.Symbols.FindByName(name)
	if !ok {
		return restable.ID(0), diag.NewFatal(source, "unresolved attribute %s", name)
	}
	return info.ID, nil
}

func isAaptAttrBlock(tag string) bool {
	return tag == "aapt:attr"
}

// namespacePackage maps an XML namespace URI to the package that defines
// its attributes: the well-known "android" res namespace maps to the
// "android" framework package; an empty namespace (unprefixed attribute)
// belongs to whatever package is being compiled.
func namespacePackage(namespace, definingPackage string) string {
	switch namespace {
	case "":
		return definingPackage
	case "http://schemas.android.com/apk/res/android":
		return "android"
	case "http://schemas.android.com/apk/res-auto":
		return definingPackage
	default:
		const prefix = "http://schemas.android.com/apk/res/"
		if len(namespace) > len(prefix) && namespace[:len(prefix)] == prefix {
			return namespace[len(prefix):]
		}
		return namespace
	}
}
