// Package mlt reads and writes Shotcut project files (MLT XML).
//
// MLT documents interleave producer, chain, playlist and tractor elements at
// the top level, and the renderer is sensitive to sibling order and to
// cross-references by id. The package therefore models the document as a
// generic ordered tree rather than a fixed struct schema: unknown nodes pass
// through untouched, and insertions are explicit index operations.
package mlt

import (
	"regexp"
	"strconv"
)

// Attr is a single XML attribute. Attribute order is preserved on round-trip.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the project tree. Leaf nodes (MLT property elements)
// carry Text; container nodes carry Children. MLT never mixes the two.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// NewNode returns a childless node with attributes given as name/value pairs.
func NewNode(tag string, attrs ...string) *Node {
	n := &Node{Tag: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attrs = append(n.Attrs, Attr{Name: attrs[i], Value: attrs[i+1]})
	}
	return n
}

// Attr returns the value of the named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	for _, a := range n.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// SetAttr sets the named attribute, replacing in place or appending.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Find returns the first direct child with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns all direct children with the given tag.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Descendants returns every node in the subtree with the given tag, in
// document order. The receiver itself is not considered.
func (n *Node) Descendants(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
		out = append(out, c.Descendants(tag)...)
	}
	return out
}

// Append adds children at the end of the child list.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Index returns the position of a direct child, or -1.
func (n *Node) Index(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// InsertAt inserts a child at the given position.
func (n *Node) InsertAt(i int, child *Node) {
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
}

// InsertBefore inserts a child immediately before ref. If ref is not a direct
// child the new node is appended.
func (n *Node) InsertBefore(child, ref *Node) {
	if i := n.Index(ref); i >= 0 {
		n.InsertAt(i, child)
		return
	}
	n.Append(child)
}

// Remove deletes a direct child, reporting whether it was present.
func (n *Node) Remove(child *Node) bool {
	if i := n.Index(child); i >= 0 {
		n.Children = append(n.Children[:i], n.Children[i+1:]...)
		return true
	}
	return false
}

// RemoveAll deletes every direct child with the given tag.
func (n *Node) RemoveAll(tag string) {
	kept := n.Children[:0]
	for _, c := range n.Children {
		if c.Tag != tag {
			kept = append(kept, c)
		}
	}
	n.Children = kept
}

// Property returns the text of the <property name="..."> child, and whether
// the property exists.
func (n *Node) Property(name string) (string, bool) {
	for _, c := range n.Children {
		if c.Tag == "property" && c.Attr("name") == name {
			return c.Text, true
		}
	}
	return "", false
}

// Properties returns all <property> children as a name-to-value map.
func (n *Node) Properties() map[string]string {
	props := make(map[string]string)
	for _, c := range n.Children {
		if c.Tag == "property" {
			if name := c.Attr("name"); name != "" {
				props[name] = c.Text
			}
		}
	}
	return props
}

// SetProperty sets a <property name="..."> child, replacing an existing one
// in place or appending a new one.
func (n *Node) SetProperty(name, value string) {
	for _, c := range n.Children {
		if c.Tag == "property" && c.Attr("name") == name {
			c.Text = value
			return
		}
	}
	prop := NewNode("property", "name", name)
	prop.Text = value
	n.Append(prop)
}

// FindByAttr returns the first direct child with the given tag whose named
// attribute has the given value, or nil.
func (n *Node) FindByAttr(tag, attr, value string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag && c.Attr(attr) == value {
			return c
		}
	}
	return nil
}

var idDigits = regexp.MustCompile(`\d+`)

// NumericID extracts the numeric part of a node's id attribute: "playlist3"
// yields 3. Nodes without digits in their id yield 0, matching how Shotcut
// numbers the first unnamed element.
func NumericID(n *Node) int {
	m := idDigits.FindString(n.Attr("id"))
	if m == "" {
		return 0
	}
	id, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return id
}
