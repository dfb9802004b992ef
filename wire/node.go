/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package wire holds the generic intermediate values exchanged between the
// codec and the transport, and the adapters that turn them into bytes.
//
// An XML element is a Node: a Clark-notation name ("{ns}Local" or "Local")
// and a value that is either a string leaf or an ordered list of child
// nodes. JSON values are the usual decoded shapes: map[string]any, []any,
// string, float64, bool and nil.
package wire

import (
	"regexp"
	"strings"
)

// ArraysNamespace is the namespace of serialized string lists.
const ArraysNamespace = "http://schemas.microsoft.com/2003/10/Serialization/Arrays"

// Node is one XML element.
type Node struct {
	// Name is the Clark-notation element name.
	Name string
	// Value is a string leaf or a []Node.
	Value any
}

// Children returns the child nodes of n, or nil when n is a leaf.
func (n Node) Children() []Node {
	c, _ := n.Value.([]Node)
	return c
}

// IsLeaf reports whether n has no child elements.
func (n Node) IsLeaf() bool {
	_, ok := n.Value.([]Node)
	return !ok
}

// Text returns the leaf value of n, or "" when n has children.
func (n Node) Text() string {
	s, _ := n.Value.(string)
	return s
}

// Leaf is a name/value pair kept as is inside a mixed collection.
type Leaf struct {
	Name  string
	Value any
}

// Clark returns "{ns}local", or local when ns is empty.
func Clark(ns, local string) string {
	if ns == "" {
		return local
	}
	return "{" + ns + "}" + local
}

var clarkPrefix = regexp.MustCompile(`^\{[^}]*\}`)

// LocalName strips a leading "{ns}" from name.
func LocalName(name string) string {
	return clarkPrefix.ReplaceAllString(name, "")
}

// SplitClark returns the namespace and local part of name.
func SplitClark(name string) (ns, local string) {
	if loc := clarkPrefix.FindStringIndex(name); loc != nil {
		return name[1 : loc[1]-1], name[loc[1]:]
	}
	return "", name
}

// Find returns the first child of n whose local name is local.
func (n Node) Find(local string) (Node, bool) {
	for _, c := range n.Children() {
		if LocalName(c.Name) == local {
			return c, true
		}
	}
	return Node{}, false
}

// Path descends through children by local name.
func (n Node) Path(locals ...string) (Node, bool) {
	cur := n
	for _, l := range locals {
		next, ok := cur.Find(l)
		if !ok {
			return Node{}, false
		}
		cur = next
	}
	return cur, true
}

// String renders n compactly for logs and test failures.
func (n Node) String() string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

func (n Node) format(b *strings.Builder) {
	b.WriteString(n.Name)
	b.WriteByte('=')
	children, ok := n.Value.([]Node)
	if !ok {
		b.WriteString(strings.TrimSpace(n.Text()))
		return
	}
	b.WriteByte('[')
	for i, c := range children {
		if i > 0 {
			b.WriteByte(' ')
		}
		c.format(b)
	}
	b.WriteByte(']')
}
