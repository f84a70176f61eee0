package mlt

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse decodes an MLT document into a Node tree, preserving the document
// order of heterogeneous siblings and the order of attributes.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var root *Node
	var stack []*Node
	var text []*strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mlt: parse: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: t.Name.Local}
			for _, a := range t.Attr {
				// Namespace declarations come back with Space set;
				// MLT files do not use namespaces beyond the default.
				name := a.Name.Local
				if a.Name.Space == "xmlns" {
					name = "xmlns:" + a.Name.Local
				}
				n.Attrs = append(n.Attrs, Attr{Name: name, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("mlt: parse: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Append(n)
			}
			stack = append(stack, n)
			text = append(text, &strings.Builder{})

		case xml.EndElement:
			n := stack[len(stack)-1]
			// Indentation whitespace is not content.
			if s := text[len(text)-1].String(); len(n.Children) == 0 && strings.TrimSpace(s) != "" {
				n.Text = s
			}
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]

		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("mlt: parse: empty document")
	}
	return root, nil
}

// ParseFile reads and parses a project file.
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mlt: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Write encodes a Node tree as indented XML with a declaration, the way
// Shotcut itself saves projects.
func Write(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("<?xml version=\"1.0\" standalone=\"no\"?>\n"); err != nil {
		return err
	}
	writeNode(bw, root, 0)
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile writes a project file in place.
func WriteFile(path string, root *Node) error {
	var buf bytes.Buffer
	if err := Write(&buf, root); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func writeNode(w *bufio.Writer, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	w.WriteString(indent)
	w.WriteByte('<')
	w.WriteString(n.Tag)
	for _, a := range n.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		w.WriteString(escape(a.Value))
		w.WriteByte('"')
	}

	switch {
	case len(n.Children) > 0:
		w.WriteString(">\n")
		for _, c := range n.Children {
			writeNode(w, c, depth+1)
			w.WriteByte('\n')
		}
		w.WriteString(indent)
		w.WriteString("</")
		w.WriteString(n.Tag)
		w.WriteByte('>')
	case n.Text != "":
		w.WriteByte('>')
		w.WriteString(escape(n.Text))
		w.WriteString("</")
		w.WriteString(n.Tag)
		w.WriteByte('>')
	default:
		w.WriteString("/>")
	}
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
