// Package compile implements the compile-phase front ends: the values
// table parser (elsewhere), an XML compiler that only consumes an
// injected DOM (actual parsing is external per spec.md §4.10), and the
// image/raw-asset front ends behind the same kind of seam. Pipeline ties
// every front end to a bounded worker pool feeding one archive sink
// (spec.md §5).
package compile

import "github.com/resourcepack/aapt2go/restable"

// Node is an opaque DOM node handle; the real type is supplied by
// whatever XML parser a caller wires in. This package never inspects it
// directly, only through XMLInput.
type Node any

// Attr is one XML attribute, with the fields the compiler fills in once
// resolution has run.
type Attr struct {
	Namespace string
	Name      string
	Value     string

	// Resolved is set once Name has been matched to an attribute
	// resource's ID (e.g. "android:textColor" -> attr/textColor's id).
	Resolved *restable.ID

	// ValueRef is set when Value was an inline reference ("@string/x",
	// "?attr/y") rather than a literal.
	ValueRef *restable.Reference
}

// XMLInput is the DOM accessor interface a real XML parser must
// implement; this package's compiler only ever calls through it.
type XMLInput interface {
	Root() Node
	TagName(n Node) string
	Attrs(n Node) []Attr
	// SetAttr writes back attrs[idx] after the compiler has resolved it.
	SetAttr(n Node, idx int, a Attr)
	Children(n Node) []Node
	Text(n Node) string
	SetText(n Node, text string)
}

// ExportedSymbols collects the `@+id/name` resource IDs newly declared
// while compiling one XML file, reported back to the containing
// ResourceFile per spec.md §4.10.
type ExportedSymbols struct {
	Ids []restable.Name
}

// Add records a newly declared id, skipping an id already recorded.
func (e *ExportedSymbols) Add(name restable.Name) {
	for _, n := range e.Ids {
		if n == name {
			return
		}
	}
	e.Ids = append(e.Ids, name)
}

// InlineAttrBlock is one `aapt:attr` block extracted from its host
// element: a named sub-document that gets compiled as its own artifact
// and appended to the same container envelope as the host file.
type InlineAttrBlock struct {
	Name string
	Root Node
}
