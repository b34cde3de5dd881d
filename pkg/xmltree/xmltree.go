// Package xmltree converts XML documents into a tree of tagged values.
//
// An element without children and with non-empty text becomes a Leaf.
// Any other element becomes a Node: children are keyed by their local
// name (namespaces are dropped), repeated tags keep all their values in
// document order, and text mixed with children is stored under the
// "value" key.
package xmltree

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrAbsent means that a requested key does not exist.
	ErrAbsent = errors.New("element is absent")
	// ErrMalformed means that a value exists but has unexpected shape,
	// for example a node where a leaf was expected.
	ErrMalformed = errors.New("element is malformed")
)

// Value is either a Leaf or a *Node.
type Value interface {
	isValue()
}

// Leaf is the trimmed text of an element without children.
type Leaf string

func (Leaf) isValue() {}

// Node is an element with children or without text.
type Node struct {
	keys   []string
	fields map[string][]Value
}

func (*Node) isValue() {}

// NewNode returns an empty node.
func NewNode() *Node {
	return &Node{fields: make(map[string][]Value)}
}

// Add appends a value to the key, keeping the order of first appearance.
func (n *Node) Add(key string, v Value) {
	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = append(n.fields[key], v)
}

// Keys returns keys in order of their first appearance.
func (n *Node) Keys() []string {
	return n.keys
}

// Len returns the number of distinct keys.
func (n *Node) Len() int {
	return len(n.keys)
}

// All returns every value of the key.
func (n *Node) All(key string) []Value {
	return n.fields[key]
}

// Get returns the first value of the key.
func (n *Node) Get(key string) (Value, error) {
	vs := n.fields[key]
	if len(vs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrAbsent, key)
	}
	return vs[0], nil
}

// Path walks the keys, taking the first value of repeated tags.
func (n *Node) Path(keys ...string) (Value, error) {
	var cur Value = n
	for i, k := range keys {
		node, ok := cur.(*Node)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a node",
				ErrMalformed, strings.Join(keys[:i], "/"))
		}
		v, err := node.Get(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %s",
				ErrAbsent, strings.Join(keys[:i+1], "/"))
		}
		cur = v
	}
	return cur, nil
}

// PathNode is like Path but requires the result to be a node.
func (n *Node) PathNode(keys ...string) (*Node, error) {
	v, err := n.Path(keys...)
	if err != nil {
		return nil, err
	}
	res, ok := v.(*Node)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a leaf",
			ErrMalformed, strings.Join(keys, "/"))
	}
	return res, nil
}

// Text is like Path but requires the result to be a leaf.
// An empty element yields an empty string.
func (n *Node) Text(keys ...string) (string, error) {
	v, err := n.Path(keys...)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case Leaf:
		return string(t), nil
	case *Node:
		if t.Len() == 0 {
			return "", nil
		}
	}
	return "", fmt.Errorf("%w: %s is a node",
		ErrMalformed, strings.Join(keys, "/"))
}

// MarshalJSON renders the node as an object with keys in document order.
// Repeated tags become arrays.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		vs := n.fields[k]
		var vb []byte
		if len(vs) == 1 {
			vb, err = json.Marshal(vs[0])
		} else {
			vb, err = json.Marshal(vs)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// JSON returns the JSON text of a value.
func JSON(v Value) (string, error) {
	bs, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

type frame struct {
	node     *Node
	text     strings.Builder
	children bool
}

// Parse reads an XML document and returns its root element as a Value.
func Parse(r io.Reader) (Value, error) {
	dec := xml.NewDecoder(r)
	var stack []*frame
	var names []string

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) > 0 {
				stack[len(stack)-1].children = true
			}
			stack = append(stack, &frame{node: NewNode()})
			names = append(names, t.Name.Local)
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			f := stack[len(stack)-1]
			if !f.children {
				f.text.Write(t)
			}
		case xml.EndElement:
			f := stack[len(stack)-1]
			name := names[len(names)-1]
			stack = stack[:len(stack)-1]
			names = names[:len(names)-1]

			v := f.value()
			if len(stack) == 0 {
				return v, nil
			}
			stack[len(stack)-1].node.Add(name, v)
		}
	}
	return nil, fmt.Errorf("%w: no root element", ErrMalformed)
}

func (f *frame) value() Value {
	text := strings.TrimSpace(f.text.String())
	if f.node.Len() == 0 {
		if text != "" {
			return Leaf(text)
		}
		return f.node
	}
	if text != "" {
		f.node.Add("value", Leaf(text))
	}
	return f.node
}

// ParseNode is like Parse but requires the root to be a node.
func ParseNode(r io.Reader) (*Node, error) {
	v, err := Parse(r)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*Node)
	if !ok {
		return nil, fmt.Errorf("%w: root element is a leaf", ErrMalformed)
	}
	return n, nil
}

// FindText returns non-empty texts of all elements with the given local
// name, in document order.
func FindText(r io.Reader, local string) ([]string, error) {
	dec := xml.NewDecoder(r)
	var res []string
	var depth int
	var buf strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth > 0 {
				depth++
				continue
			}
			if t.Name.Local == local {
				depth = 1
				buf.Reset()
			}
		case xml.CharData:
			if depth == 1 {
				buf.Write(t)
			}
		case xml.EndElement:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				if s := strings.TrimSpace(buf.String()); s != "" {
					res = append(res, s)
				}
			}
		}
	}
}
