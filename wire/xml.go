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

package wire

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoElement is returned by ParseXML when the input holds no element.
var ErrNoElement = errors.New("wire: no XML element")

type frame struct {
	name     string
	children []Node
	text     strings.Builder
}

// ParseXML reads one XML document and returns its root element.
//
// Element names are in Clark notation with the namespace URI resolved.
// Elements without child elements become string leaves ("" when empty);
// character data between child elements is dropped. Attributes are ignored.
func ParseXML(r io.Reader) (Node, error) {
	dec := xml.NewDecoder(r)
	var stack []*frame
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return Node{}, ErrNoElement
		}
		if err != nil {
			return Node{}, fmt.Errorf("wire: parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, &frame{name: Clark(t.Name.Space, t.Name.Local)})
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := Node{Name: top.name}
			if len(top.children) > 0 {
				n.Value = top.children
			} else {
				n.Value = top.text.String()
			}
			if len(stack) == 0 {
				return n, nil
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
		}
	}
}
