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

package codec

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/containerd/errdefs"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/entity"
	uref "dirpx.dev/postnl/utils/reflect"
	"dirpx.dev/postnl/wire"
)

// FromJSONValue turns {"<Kind>": {field: value, ...}} into a populated
// entity. Values of any other shape, and values whose key does not resolve
// to a kind, are returned as is: for {"<Name>": inner} that is inner.
func (c *Codec) FromJSONValue(v any) (any, error) {
	return c.fromJSON(v, 0)
}

func (c *Codec) fromJSON(v any, depth int) (any, error) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return v, nil
	}
	var (
		name  string
		inner any
	)
	for key, val := range m {
		name, inner = key, val
	}
	k, ok := c.res.Resolve(name)
	fields, isMap := inner.(map[string]any)
	if !ok || !isMap {
		return inner, nil
	}
	return c.buildJSON(k, fields, depth)
}

func (c *Codec) buildJSON(k apis.Kind, fields map[string]any, depth int) (apis.Entity, error) {
	if depth > c.cfg.MaxDepth {
		return nil, fmt.Errorf("%w: %d: %w", ErrTooDeep, c.cfg.MaxDepth, errdefs.ErrInvalidArgument)
	}
	e := k.New()
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := c.setJSONField(k, e, key, fields[key], depth+1); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (c *Codec) setJSONField(k apis.Kind, e apis.Entity, key string, sub any, depth int) error {
	if key == entity.IDName {
		return c.setIdentity(k, e, sub)
	}
	ft, known := entity.FieldType(e, key)
	if !known {
		c.log.V(1).Info("ignoring unknown field", "kind", k.Name, "field", key)
		return nil
	}

	_, wrap, resolved := c.resolveTag(key, false)
	var (
		decoded any
		err     error
	)
	if list, ok := sub.([]any); ok && resolved {
		items := make([]any, 0, len(list))
		for _, el := range list {
			d, err := c.fromJSON(map[string]any{wrap: el}, depth)
			if err != nil {
				return err
			}
			items = append(items, d)
		}
		decoded = items
	} else if decoded, err = c.fromJSON(map[string]any{wrap: sub}, depth); err != nil {
		return err
	}

	return c.store(k, e, key, ft, decoded, func() (any, bool, error) {
		return c.jsonAs(sub, ft, depth)
	})
}

// jsonAs decodes raw as a value of type t, using t's registered kind rather
// than the names found on the wire.
func (c *Codec) jsonAs(raw any, t reflect.Type, depth int) (any, bool, error) {
	if raw == nil {
		return nil, true, nil
	}
	switch t.Kind() {
	case reflect.Slice:
		elem := t.Elem()
		raw = c.unwrapItems(raw, elem)
		list, ok := raw.([]any)
		if !ok {
			list = []any{raw}
		}
		out := make([]any, 0, len(list))
		for _, el := range list {
			d, ok, err := c.jsonAs(el, elem, depth)
			if err != nil || !ok {
				return nil, false, err
			}
			out = append(out, d)
		}
		return out, true, nil
	case reflect.Pointer:
		k, ok := c.itemKind(t)
		if !ok {
			return raw, true, nil
		}
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, false, nil
		}
		if inner, ok := m[k.Name].(map[string]any); ok && len(m) == 1 {
			m = inner
		}
		e, err := c.buildJSON(k, m, depth)
		if err != nil {
			return nil, false, err
		}
		return e, true, nil
	default:
		return raw, true, nil
	}
}

// unwrapItems strips a {"<Item>": list} wrapper whose key names the item
// type elem ("string" for string lists).
func (c *Codec) unwrapItems(raw any, elem reflect.Type) any {
	m, ok := raw.(map[string]any)
	if !ok || len(m) != 1 {
		return raw
	}
	name := "string"
	if k, ok := c.itemKind(elem); ok {
		name = k.Name
	} else if elem.Kind() != reflect.String {
		return raw
	}
	if inner, ok := m[name]; ok {
		return inner
	}
	return raw
}

// FromXMLValue turns an element whose local name resolves to a kind into a
// populated entity. v may be a wire.Node, a *wire.Node or a []wire.Node of
// length one. Leaves and unresolved elements yield their value as is.
func (c *Codec) FromXMLValue(v any) (any, error) {
	return c.fromXML(v, 0)
}

func asNode(v any) (wire.Node, bool) {
	switch n := v.(type) {
	case wire.Node:
		return n, true
	case *wire.Node:
		if n == nil {
			return wire.Node{}, false
		}
		return *n, true
	case []wire.Node:
		if len(n) == 1 {
			return n[0], true
		}
	}
	return wire.Node{}, false
}

func (c *Codec) fromXML(v any, depth int) (any, error) {
	n, ok := asNode(v)
	if !ok {
		return v, nil
	}
	k, ok := c.res.Resolve(wire.LocalName(n.Name))
	children, isList := n.Value.([]wire.Node)
	if !ok || !isList {
		return n.Value, nil
	}
	return c.buildXML(k, children, depth)
}

func (c *Codec) buildXML(k apis.Kind, children []wire.Node, depth int) (apis.Entity, error) {
	if depth > c.cfg.MaxDepth {
		return nil, fmt.Errorf("%w: %d: %w", ErrTooDeep, c.cfg.MaxDepth, errdefs.ErrInvalidArgument)
	}
	e := k.New()
	for _, child := range children {
		if err := c.setXMLField(k, e, child, depth+1); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []wire.Node:
		return len(x) == 0
	}
	return false
}

func (c *Codec) setXMLField(k apis.Kind, e apis.Entity, child wire.Node, depth int) error {
	key := wire.LocalName(child.Name)
	if key == entity.IDName {
		return c.setIdentity(k, e, child.Value)
	}
	ft, known := entity.FieldType(e, key)
	if !known {
		c.log.V(1).Info("ignoring unknown field", "kind", k.Name, "field", key)
		return nil
	}

	if isEmpty(child.Value) {
		if deref(ft).Kind() == reflect.String {
			return entity.Set(e, key, "")
		}
		return nil
	}

	ek, _, resolved := c.resolveTag(key, true)
	grand, _ := child.Value.([]wire.Node)
	var (
		decoded any
		err     error
	)
	switch {
	case len(grand) > 0 && resolved && !c.flat[key]:
		if grand[0].IsLeaf() {
			decoded, err = c.buildXML(ek, grand, depth)
			break
		}
		items := make([]any, 0, len(grand))
		for _, g := range grand {
			if g.IsLeaf() {
				items = append(items, wire.Leaf{Name: wire.LocalName(g.Name), Value: g.Value})
				continue
			}
			d, err := c.fromXML(g, depth)
			if err != nil {
				return err
			}
			items = append(items, d)
		}
		decoded = items
	default:
		decoded, err = c.fromXML(child, depth)
	}
	if err != nil {
		return err
	}

	return c.store(k, e, key, ft, decoded, func() (any, bool, error) {
		return c.xmlAs(child.Value, ft, depth)
	})
}

// xmlAs decodes the raw element value as a value of type t.
func (c *Codec) xmlAs(raw any, t reflect.Type, depth int) (any, bool, error) {
	nodes, isList := raw.([]wire.Node)
	switch t.Kind() {
	case reflect.Slice:
		elem := t.Elem()
		if !isList {
			d, ok, err := c.xmlAs(raw, elem, depth)
			if err != nil || !ok {
				return nil, false, err
			}
			return []any{d}, true, nil
		}
		// A single item whose fields were inlined.
		if _, ok := c.itemKind(elem); ok && len(nodes) > 0 && nodes[0].IsLeaf() {
			d, ok, err := c.xmlAs(nodes, elem, depth)
			if err != nil || !ok {
				return nil, false, err
			}
			return []any{d}, true, nil
		}
		out := make([]any, 0, len(nodes))
		for _, n := range nodes {
			d, ok, err := c.xmlAs(n.Value, elem, depth)
			if err != nil || !ok {
				return nil, false, err
			}
			out = append(out, d)
		}
		return out, true, nil
	case reflect.Pointer:
		k, ok := c.itemKind(t)
		if !ok {
			if isList {
				return nil, false, nil
			}
			return raw, true, nil
		}
		if !isList {
			return nil, false, nil
		}
		e, err := c.buildXML(k, nodes, depth)
		if err != nil {
			return nil, false, err
		}
		return e, true, nil
	default:
		if isList {
			return nil, false, nil
		}
		return raw, true, nil
	}
}

// store assigns decoded to the field key of e. When decoded does not fit
// the field type, typed decodes the raw wire value by the field's type
// instead. Collections keep the items that fit. Anything else is dropped.
func (c *Codec) store(k apis.Kind, e apis.Entity, key string, ft reflect.Type, decoded any, typed func() (any, bool, error)) error {
	if err := entity.Set(e, key, decoded); err == nil {
		return nil
	}

	v, ok, err := typed()
	if err != nil {
		return err
	}
	if ok {
		if err := entity.Set(e, key, v); err == nil {
			return nil
		}
	}

	if items, isList := decoded.([]any); isList && ft.Kind() == reflect.Slice {
		if kept := fitting(items, ft.Elem()); len(kept) > 0 {
			c.log.V(1).Info("dropping collection items of another type",
				"kind", k.Name, "field", key, "kept", len(kept), "dropped", len(items)-len(kept))
			return entity.Set(e, key, kept)
		}
	}

	c.log.V(1).Info("skipping incompatible value", "kind", k.Name, "field", key, "type", ft.String(),
		"value", fmt.Sprintf("%T", decoded))
	return nil
}

// setIdentity assigns a wire "Id" value as the identity of e.
func (c *Codec) setIdentity(k apis.Kind, e apis.Entity, v any) error {
	id, ok := v.(string)
	if !ok || id == "" {
		c.log.V(1).Info("skipping incompatible value", "kind", k.Name, "field", entity.IDName, "type", "string",
			"value", fmt.Sprintf("%T", v))
		return nil
	}
	return entity.Set(e, entity.IDName, id)
}

// fitting returns the items that can be assigned to elem.
func fitting(items []any, elem reflect.Type) []any {
	kept := make([]any, 0, len(items))
	slot := reflect.New(elem).Elem()
	for _, it := range items {
		if uref.Assign(slot, it) == nil {
			kept = append(kept, it)
		}
	}
	return kept
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
