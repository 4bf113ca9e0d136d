package jsonforms

import (
	"regexp"
	"strconv"

	"github.com/zhibinjin/jsonforms/schema"
)

// Node is the runtime field tree compiled from a schema. Exactly four
// variants exist: LeafField, ObjectGroup, ArrayList and ArrayItem. The tree's
// forward edges are the sole ownership path; Parent is a non-owning
// back-reference used for ancestry walks and change bubbling only.
type Node interface {
	Name() string
	// PathPrefix is the concatenation of ancestor names; Path joins it with
	// the node's own name. Paths feed pointer resolution and widget ids.
	PathPrefix() string
	Path() string
	Schema() *schema.Schema
	Parent() Node

	// Subscribe registers a change listener. Listeners run synchronously and
	// receive the node whose value originally changed.
	Subscribe(fn func(origin Node))

	// ErrorMessage is the validation message currently routed to this node.
	ErrorMessage() string
	SetError(msg string)
	ClearError()

	base() *baseNode
}

// ActivationFunc receives availability diffs for a group so a presentation
// layer can mount and unmount children minimally. added and removed are in
// declaration order.
type ActivationFunc func(group *ObjectGroup, added, removed []Node)

// treeState is shared by every node of one compiled tree.
type treeState struct {
	id         string
	registry   *Registry
	attached   bool
	activation ActivationFunc
}

type baseNode struct {
	name       string
	pathPrefix string
	schema     *schema.Schema
	parent     Node
	tree       *treeState
	listeners  []func(Node)
	errText    string
	gone       bool
}

func (b *baseNode) Name() string             { return b.name }
func (b *baseNode) PathPrefix() string       { return b.pathPrefix }
func (b *baseNode) Path() string             { return joinPath(b.pathPrefix, b.name) }
func (b *baseNode) Schema() *schema.Schema   { return b.schema }
func (b *baseNode) Parent() Node             { return b.parent }
func (b *baseNode) Subscribe(fn func(Node))  { b.listeners = append(b.listeners, fn) }
func (b *baseNode) ErrorMessage() string     { return b.errText }
func (b *baseNode) SetError(msg string)      { b.errText = msg }
func (b *baseNode) ClearError()              { b.errText = "" }
func (b *baseNode) base() *baseNode          { return b }

func (b *baseNode) fire(origin Node) {
	for _, fn := range b.listeners {
		fn(origin)
	}
}

func joinPath(prefix, name string) string {
	switch {
	case name == "":
		return prefix
	case prefix == "":
		return name
	default:
		return prefix + "/" + name
	}
}

// LeafField is a single value-bearing field bound to one editor. The field
// exclusively owns its editor; editor lifetime equals field lifetime.
type LeafField struct {
	baseNode
	editorKind string
	editor     Editor
}

// Editor returns the attached editor, or nil before Attach.
func (f *LeafField) Editor() Editor { return f.editor }

// EditorKind is the resolved editor kind name. Empty before Attach unless the
// schema carries an explicit hint.
func (f *LeafField) EditorKind() string {
	if f.editorKind != "" {
		return f.editorKind
	}
	return f.schema.Editor
}

// condition is the compiled form of one availableIf entry.
type condition struct {
	key  string
	test any
	re   *regexp.Regexp // set for pattern conditions
}

// ObjectGroup is the object variant: a fixed set of named children built once
// from the schema, of which a subset is currently available.
type ObjectGroup struct {
	baseNode
	order      []string
	children   map[string]Node
	conditions map[string]*condition
	active     map[string]bool
	evaluating bool
}

// Children returns every schema-declared child in declaration order,
// regardless of availability.
func (g *ObjectGroup) Children() []Node {
	out := make([]Node, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.children[name])
	}
	return out
}

// Child looks up a schema-declared child by name, available or not.
func (g *ObjectGroup) Child(name string) Node { return g.children[name] }

// ActiveChildren returns the currently available children in declaration
// order: the desired active set a presentation layer should display.
func (g *ObjectGroup) ActiveChildren() []Node {
	out := make([]Node, 0, len(g.order))
	for _, name := range g.order {
		if g.active[name] {
			out = append(out, g.children[name])
		}
	}
	return out
}

// IsActive reports whether the named child is currently available.
func (g *ObjectGroup) IsActive(name string) bool { return g.active[name] }

// ArrayList is the array variant: an ordered, mutable sequence of items all
// governed by one item schema.
type ArrayList struct {
	baseNode
	itemSchema *schema.Schema
	items      []*ArrayItem
}

// Items returns the current items in order. The returned slice is a copy;
// mutate the list through Insert/Remove/MoveUp/MoveDown only.
func (l *ArrayList) Items() []*ArrayItem {
	return append([]*ArrayItem(nil), l.items...)
}

func (l *ArrayList) Len() int { return len(l.items) }

// ItemSchema is the schema fragment applied to every item.
func (l *ArrayList) ItemSchema() *schema.Schema { return l.itemSchema }

// ArrayItem wraps one array element's value-bearing subtree. Pointer
// resolution skips the wrapper and addresses the inner field directly.
type ArrayItem struct {
	baseNode
	inner Node
	index int
}

// Inner returns the item's single child node.
func (it *ArrayItem) Inner() Node { return it.inner }

// Index is the item's current position, re-derived on every structural
// mutation of the owning list.
func (it *ArrayItem) Index() int { return it.index }

// Walk visits the tree under n in pre-order. fn returning false prunes the
// subtree below the visited node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch v := n.(type) {
	case *ObjectGroup:
		for _, name := range v.order {
			Walk(v.children[name], fn)
		}
	case *ArrayList:
		for _, it := range v.items {
			Walk(it, fn)
		}
	case *ArrayItem:
		Walk(v.inner, fn)
	}
}

// bubble dispatches a change that originated at origin: listeners fire on
// every node from origin up to the root, and each ObjectGroup along the way
// re-evaluates availability keyed by the direct child the change came
// through.
func bubble(origin Node) {
	var prev Node
	for cur := origin; cur != nil; cur = cur.Parent() {
		cur.base().fire(origin)
		if g, ok := cur.(*ObjectGroup); ok && prev != nil {
			g.Reevaluate(prev.Name())
		}
		prev = cur
	}
}

// detachTree marks n and its whole subtree detached and clears the non-owning
// back-references. Subsequent value access fails with NotRenderedError.
func detachTree(n Node) {
	Walk(n, func(m Node) bool {
		m.base().gone = true
		return true
	})
	n.base().parent = nil
}

// setPrefix rewrites the path prefixes of n's subtree after a structural
// mutation changed its position.
func setPrefix(n Node, prefix string) {
	n.base().pathPrefix = prefix
	own := n.Path()
	switch v := n.(type) {
	case *ObjectGroup:
		for _, name := range v.order {
			setPrefix(v.children[name], own)
		}
	case *ArrayList:
		for i, it := range v.items {
			it.name = strconv.Itoa(i)
			setPrefix(it, own)
		}
	case *ArrayItem:
		setPrefix(v.inner, own)
	}
}
