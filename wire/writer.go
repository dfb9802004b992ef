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
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Writer streams namespaced XML.
//
// Names passed to the Writer are in Clark notation. Namespaces listed in
// the prefix table are declared on the root element; any other namespace
// gets a generated "nsN" prefix declared on the element that first uses it.
// The first error sticks: later calls are no-ops and Err returns it.
type Writer struct {
	enc      *xml.Encoder
	prefixes map[string]string
	// scopes holds the generated prefixes declared per open element.
	scopes []map[string]string
	open   []xml.Name
	auto   int
	err    error
}

// NewWriter returns a Writer writing to w with the given namespace ->
// prefix table.
func NewWriter(w io.Writer, prefixes map[string]string) *Writer {
	table := make(map[string]string, len(prefixes))
	for ns, p := range prefixes {
		table[ns] = p
	}
	return &Writer{enc: xml.NewEncoder(w), prefixes: table}
}

// StartElement opens the element name.
func (w *Writer) StartElement(name string) {
	if w.err != nil {
		return
	}
	ns, local := SplitClark(name)
	var attrs []xml.Attr
	if len(w.open) == 0 {
		attrs = w.rootDeclarations()
	}
	scope := map[string]string{}
	prefix := ""
	if ns != "" {
		var ok bool
		if prefix, ok = w.prefixes[ns]; !ok {
			if prefix, ok = w.generated(ns); !ok {
				w.auto++
				prefix = "ns" + strconv.Itoa(w.auto)
				scope[ns] = prefix
				attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "xmlns:" + prefix}, Value: ns})
			}
		}
	}
	qname := xml.Name{Local: local}
	if prefix != "" {
		qname.Local = prefix + ":" + local
	}
	if err := w.enc.EncodeToken(xml.StartElement{Name: qname, Attr: attrs}); err != nil {
		w.err = fmt.Errorf("wire: start %s: %w", name, err)
		return
	}
	w.open = append(w.open, qname)
	w.scopes = append(w.scopes, scope)
}

// EndElement closes the innermost open element.
func (w *Writer) EndElement() {
	if w.err != nil {
		return
	}
	if len(w.open) == 0 {
		w.err = fmt.Errorf("wire: end element without open element")
		return
	}
	name := w.open[len(w.open)-1]
	w.open = w.open[:len(w.open)-1]
	w.scopes = w.scopes[:len(w.scopes)-1]
	if err := w.enc.EncodeToken(xml.EndElement{Name: name}); err != nil {
		w.err = fmt.Errorf("wire: end %s: %w", name.Local, err)
	}
}

// Text writes escaped character data.
func (w *Writer) Text(s string) {
	if w.err != nil {
		return
	}
	if err := w.enc.EncodeToken(xml.CharData(s)); err != nil {
		w.err = fmt.Errorf("wire: text: %w", err)
	}
}

// WriteElement writes <name>value</name>.
func (w *Writer) WriteElement(name, value string) {
	w.StartElement(name)
	w.Text(value)
	w.EndElement()
}

// WriteNodes writes nodes in order. Leaf values other than strings are
// formatted with fmt.Sprint.
func (w *Writer) WriteNodes(nodes ...Node) {
	for _, n := range nodes {
		if w.err != nil {
			return
		}
		w.StartElement(n.Name)
		switch v := n.Value.(type) {
		case []Node:
			w.WriteNodes(v...)
		case string:
			w.Text(v)
		case nil:
		default:
			w.Text(fmt.Sprint(v))
		}
		w.EndElement()
	}
}

// Flush flushes buffered output and returns the sticky error.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if len(w.open) > 0 {
		w.err = fmt.Errorf("wire: %d element(s) left open", len(w.open))
		return w.err
	}
	if err := w.enc.Flush(); err != nil {
		w.err = fmt.Errorf("wire: flush: %w", err)
	}
	return w.err
}

// Err returns the first error encountered.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) generated(ns string) (string, bool) {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if p, ok := w.scopes[i][ns]; ok {
			return p, true
		}
	}
	return "", false
}

func (w *Writer) rootDeclarations() []xml.Attr {
	nss := make([]string, 0, len(w.prefixes))
	for ns := range w.prefixes {
		nss = append(nss, ns)
	}
	sort.Strings(nss)
	attrs := make([]xml.Attr, 0, len(nss))
	for _, ns := range nss {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "xmlns:" + w.prefixes[ns]}, Value: ns})
	}
	return attrs
}
