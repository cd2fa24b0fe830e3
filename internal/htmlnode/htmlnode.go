// Package htmlnode implements the HTML node tree produced by the Markdown
// assembler. A tree is built bottom-up, never mutated afterwards, and turned
// into text with Render.
//
// Two node variants exist:
//
//	Leaf    tag (optional) + value + attributes
//	Parent  tag + ordered children + attributes
//
// A Leaf without a tag renders its value as raw text. Values and attribute
// values are written verbatim: the dialect has no escaping rules.
package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedNode indicates a node is missing a field required to render it.
var ErrMalformedNode = errors.New("malformed HTML node")

// Node is a renderable element of the tree. The set of implementations is
// closed: only *Leaf and *Parent satisfy it.
type Node interface {
	// Render returns the HTML text for the node and its descendants.
	Render() (string, error)

	writeTo(sb *strings.Builder) error
}

// Compile-time interface implementation checks.
var (
	_ Node = (*Leaf)(nil)
	_ Node = (*Parent)(nil)
)

// Attr is a single HTML attribute. Attributes render in slice order.
type Attr struct {
	Key string
	Val string
}

// Leaf is a node with no children.
// The zero value has no value and fails to render.
type Leaf struct {
	tag      string
	value    string
	hasValue bool
	attrs    []Attr
}

// NewLeaf creates a leaf. An empty tag renders value as raw text.
func NewLeaf(tag, value string, attrs ...Attr) *Leaf {
	return &Leaf{
		tag:      tag,
		value:    value,
		hasValue: true,
		attrs:    cloneAttrs(attrs),
	}
}

// Tag returns the leaf tag, empty for raw text.
func (l *Leaf) Tag() string { return l.tag }

// Value returns the leaf text value.
func (l *Leaf) Value() string { return l.value }

// Attrs returns a copy of the leaf attributes.
func (l *Leaf) Attrs() []Attr { return cloneAttrs(l.attrs) }

// Render returns the HTML text for the leaf.
func (l *Leaf) Render() (string, error) {
	var sb strings.Builder
	if err := l.writeTo(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (l *Leaf) writeTo(sb *strings.Builder) error {
	if !l.hasValue {
		return fmt.Errorf("%w: leaf <%s> has no value", ErrMalformedNode, l.tag)
	}
	if l.tag == "" {
		sb.WriteString(l.value)
		return nil
	}
	writeOpenTag(sb, l.tag, l.attrs)
	sb.WriteString(l.value)
	writeCloseTag(sb, l.tag)
	return nil
}

// Parent is a node that owns an ordered list of children.
type Parent struct {
	tag      string
	children []Node
	attrs    []Attr
}

// NewParent creates a parent node. A nil children slice is treated as absent
// and fails at render time; an empty non-nil slice renders an empty tag pair.
func NewParent(tag string, children []Node, attrs ...Attr) *Parent {
	var owned []Node
	if children != nil {
		owned = make([]Node, len(children))
		copy(owned, children)
	}
	return &Parent{
		tag:      tag,
		children: owned,
		attrs:    cloneAttrs(attrs),
	}
}

// Tag returns the parent tag.
func (p *Parent) Tag() string { return p.tag }

// Children returns a copy of the child list. The result is nil when the
// parent was built without children.
func (p *Parent) Children() []Node {
	if p.children == nil {
		return nil
	}
	out := make([]Node, len(p.children))
	copy(out, p.children)
	return out
}

// Attrs returns a copy of the parent attributes.
func (p *Parent) Attrs() []Attr { return cloneAttrs(p.attrs) }

// Render returns the HTML text for the parent and all descendants.
func (p *Parent) Render() (string, error) {
	var sb strings.Builder
	if err := p.writeTo(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (p *Parent) writeTo(sb *strings.Builder) error {
	if p.tag == "" {
		return fmt.Errorf("%w: parent has no tag", ErrMalformedNode)
	}
	if p.children == nil {
		return fmt.Errorf("%w: parent <%s> has no children", ErrMalformedNode, p.tag)
	}
	writeOpenTag(sb, p.tag, p.attrs)
	for i, child := range p.children {
		if child == nil {
			return fmt.Errorf("%w: parent <%s> child %d is nil", ErrMalformedNode, p.tag, i)
		}
		if err := child.writeTo(sb); err != nil {
			return err
		}
	}
	writeCloseTag(sb, p.tag)
	return nil
}

// AttrsToHTML formats attributes as they appear inside an opening tag,
// each prefixed by a single space: ` href="x" target="_blank"`.
func AttrsToHTML(attrs []Attr) string {
	var sb strings.Builder
	writeAttrs(&sb, attrs)
	return sb.String()
}

func writeOpenTag(sb *strings.Builder, tag string, attrs []Attr) {
	sb.WriteByte('<')
	sb.WriteString(tag)
	writeAttrs(sb, attrs)
	sb.WriteByte('>')
}

func writeCloseTag(sb *strings.Builder, tag string) {
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
}

func writeAttrs(sb *strings.Builder, attrs []Attr) {
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(a.Val)
		sb.WriteByte('"')
	}
}

func cloneAttrs(attrs []Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(attrs))
	copy(out, attrs)
	return out
}
