package compile

import (
	"testing"

	"github.com/resourcepack/aapt2go/diag"
	"github.com/resourcepack/aapt2go/link"
	"github.com/resourcepack/aapt2go/restable"
)

// fakeNode is an in-memory DOM node used to drive XMLCompiler without a
// real XML parser, per the injection seam XMLInput documents.
type fakeNode struct {
	tag      string
	attrs    []Attr
	children []*fakeNode
	text     string
}

// fakeInput is the smallest XMLInput that can hold a fakeNode tree.
type fakeInput struct {
	root *fakeNode
}

func (f *fakeInput) Root() Node           { return f.root }
func (f *fakeInput) TagName(n Node) string { return n.(*fakeNode).tag }
func (f *fakeInput) Attrs(n Node) []Attr   { return n.(*fakeNode).attrs }
func (f *fakeInput) SetAttr(n Node, idx int, a Attr) {
	n.(*fakeNode).attrs[idx] = a
}
func (f *fakeInput) Children(n Node) []Node {
	fn := n.(*fakeNode)
	out := make([]Node, len(fn.children))
	for i, c := range fn.children {
		out[i] = c
	}
	return out
}
func (f *fakeInput) Text(n Node) string { return n.(*fakeNode).text }
func (f *fakeInput) SetText(n Node, text string) {
	n.(*fakeNode).text = text
}

// fakeSymbols resolves exactly the attribute names it's seeded with.
type fakeSymbols struct {
	ids map[restable.Name]restable.ID
}

func (s *fakeSymbols) FindByName(name restable.Name) (link.SymbolInfo, bool) {
	id, ok := s.ids[name]
	if !ok {
		return link.SymbolInfo{}, false
	}
	return link.SymbolInfo{ID: id}, true
}
func (s *fakeSymbols) FindById(id restable.ID) (restable.Name, bool) { return restable.Name{}, false }

func textColorAttr() restable.Name {
	return restable.Name{Package: "android", Type: restable.TypeAttr, Entry: "textColor"}
}

func TestXMLCompilerResolvesNamespacedAttributeName(t *testing.T) {
	symbols := &fakeSymbols{ids: map[restable.Name]restable.ID{textColorAttr(): 0x01010098}}
	root := &fakeNode{
		tag: "TextView",
		attrs: []Attr{
			{Namespace: "http://schemas.android.com/apk/res/android", Name: "textColor", Value: "#ff0000"},
		},
	}
	c := &XMLCompiler{Symbols: symbols, DefiningPackage: "com.example.app"}

	_, _, errs := c.Compile(&fakeInput{root: root}, diag.Source{Path: "res/layout/main.xml"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if root.attrs[0].Resolved == nil || *root.attrs[0].Resolved != 0x01010098 {
		t.Fatalf("attribute name not resolved: %+v", root.attrs[0])
	}
}

func TestXMLCompilerReportsUnresolvedAttributeName(t *testing.T) {
	symbols := &fakeSymbols{ids: map[restable.Name]restable.ID{}}
	root := &fakeNode{
		tag: "TextView",
		attrs: []Attr{
			{Namespace: "http://schemas.android.com/apk/res/android", Name: "bogusAttr", Value: "x"},
		},
	}
	c := &XMLCompiler{Symbols: symbols, DefiningPackage: "com.example.app"}

	_, _, errs := c.Compile(&fakeInput{root: root}, diag.Source{Path: "res/layout/main.xml"})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(errs))
	}
}

func TestXMLCompilerCollectsNewIdFromAttributeValue(t *testing.T) {
	root := &fakeNode{
		tag: "TextView",
		attrs: []Attr{
			{Namespace: "http://schemas.android.com/apk/res/android", Name: "id", Value: "@+id/title"},
		},
	}
	c := &XMLCompiler{Symbols: &fakeSymbols{ids: map[restable.Name]restable.ID{
		{Package: "android", Type: restable.TypeAttr, Entry: "id"}: 0x010100d0,
	}}, DefiningPackage: "com.example.app"}

	exported, _, errs := c.Compile(&fakeInput{root: root}, diag.Source{Path: "res/layout/main.xml"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := restable.Name{Package: "com.example.app", Type: restable.Type("id"), Entry: "title"}
	if len(exported.Ids) != 1 || exported.Ids[0] != want {
		t.Fatalf("expected exported id %+v, got %+v", want, exported.Ids)
	}
	if root.attrs[0].ValueRef == nil || root.attrs[0].ValueRef.Name != want {
		t.Fatalf("attribute value not resolved to a reference: %+v", root.attrs[0])
	}
}

func TestXMLCompilerExtractsAaptAttrBlockWithoutDescendingFurther(t *testing.T) {
	inner := &fakeNode{tag: "vector", attrs: []Attr{
		{Namespace: "http://schemas.android.com/apk/res/android", Name: "bogusAttr", Value: "x"},
	}}
	block := &fakeNode{tag: "aapt:attr", children: []*fakeNode{inner}}
	root := &fakeNode{tag: "layer-list", children: []*fakeNode{block}}

	c := &XMLCompiler{Symbols: &fakeSymbols{ids: map[restable.Name]restable.ID{}}, DefiningPackage: "com.example.app"}
	_, blocks, errs := c.Compile(&fakeInput{root: root}, diag.Source{Path: "res/drawable/d.xml"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors from skipped subtree: %v", errs)
	}
	if len(blocks) != 1 || blocks[0].Root != Node(block) {
		t.Fatalf("expected one aapt:attr block, got %+v", blocks)
	}
}
