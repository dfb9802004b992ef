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

	"github.com/containerd/errdefs"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/service"
	uref "dirpx.dev/postnl/utils/reflect"
	"dirpx.dev/postnl/wire"
)

// selection returns the kind of e and the properties of its current
// service.
func (c *Codec) selection(e apis.Entity) (apis.Kind, []apis.Property, reflect.Value, error) {
	v := reflect.ValueOf(e)
	if e == nil || v.Kind() != reflect.Pointer || v.IsNil() {
		return apis.Kind{}, nil, reflect.Value{}, fmt.Errorf("codec: nil entity: %w", errdefs.ErrInvalidArgument)
	}
	k, ok := c.reg.LookupType(v.Type())
	if !ok {
		return apis.Kind{}, nil, reflect.Value{}, fmt.Errorf("%w: %T: %w", ErrUnregisteredKind, e, errdefs.ErrNotFound)
	}
	svc := e.CurrentService()
	props, ok := k.Fields(svc)
	if svc == service.None || !ok {
		return apis.Kind{}, nil, reflect.Value{}, fmt.Errorf("%w: %s (service %s): %w",
			ErrMissingServiceContext, k.Name, svc, errdefs.ErrFailedPrecondition)
	}
	return k, props, v.Elem(), nil
}

// present calls fn for every selected, non-absent field of e in order.
func (c *Codec) present(e apis.Entity, depth int, fn func(p apis.Property, fv reflect.Value) error) (apis.Kind, error) {
	if depth > c.cfg.MaxDepth {
		return apis.Kind{}, fmt.Errorf("%w: %d: %w", ErrTooDeep, c.cfg.MaxDepth, errdefs.ErrInvalidArgument)
	}
	k, props, v, err := c.selection(e)
	if err != nil {
		return apis.Kind{}, err
	}
	for _, p := range props {
		f, ok := uref.FieldByWireName(k.Type, p.Field)
		if !ok {
			continue
		}
		fv := v.FieldByIndex(f.Index)
		if uref.IsAbsent(fv) {
			continue
		}
		if err := fn(p, fv); err != nil {
			return apis.Kind{}, fmt.Errorf("%s.%s: %w", k.Name, p.Field, err)
		}
	}
	return k, nil
}

// ToJSONValue returns {"<Kind>": {field: value, ...}} for e.
func (c *Codec) ToJSONValue(e apis.Entity) (any, error) {
	fields, k, err := c.jsonFields(e, 0)
	if err != nil {
		return nil, err
	}
	return map[string]any{k.Name: fields}, nil
}

func (c *Codec) jsonFields(e apis.Entity, depth int) (map[string]any, apis.Kind, error) {
	out := map[string]any{}
	k, err := c.present(e, depth, func(p apis.Property, fv reflect.Value) error {
		jv, err := c.jsonValue(fv, depth+1)
		if err != nil {
			return err
		}
		out[p.Field] = jv
		return nil
	})
	if err != nil {
		return nil, apis.Kind{}, err
	}
	if s, ok := e.(apis.JSONShaper); ok {
		out = s.ShapeJSON(out)
	}
	return out, k, nil
}

func (c *Codec) jsonValue(v reflect.Value, depth int) (any, error) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		if e, ok := asEntity(v); ok {
			fields, _, err := c.jsonFields(e, depth)
			return fields, err
		}
		return c.jsonValue(v.Elem(), depth)
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			jv, err := c.jsonValue(v.Index(i), depth)
			if err != nil {
				return nil, err
			}
			out = append(out, jv)
		}
		return out, nil
	default:
		return v.Interface(), nil
	}
}

// ToXMLValue returns the field elements of e, in registry order, with
// Clark-notation names.
func (c *Codec) ToXMLValue(e apis.Entity) ([]wire.Node, error) {
	nodes, _, err := c.xmlFields(e, 0)
	return nodes, err
}

// XMLElement returns e as a single element named {ns}<Kind>.
func (c *Codec) XMLElement(e apis.Entity, ns string) (wire.Node, error) {
	nodes, k, err := c.xmlFields(e, 0)
	if err != nil {
		return wire.Node{}, err
	}
	return wire.Node{Name: wire.Clark(ns, k.Name), Value: nodes}, nil
}

// WriteXML writes the field elements of e to w.
func (c *Codec) WriteXML(w *wire.Writer, e apis.Entity) error {
	nodes, err := c.ToXMLValue(e)
	if err != nil {
		return err
	}
	w.WriteNodes(nodes...)
	return w.Err()
}

func (c *Codec) xmlFields(e apis.Entity, depth int) ([]wire.Node, apis.Kind, error) {
	var out []wire.Node
	k, err := c.present(e, depth, func(p apis.Property, fv reflect.Value) error {
		xv, err := c.xmlValue(fv, p.Namespace, depth+1)
		if err != nil {
			return err
		}
		out = append(out, wire.Node{Name: wire.Clark(p.Namespace, p.Field), Value: xv})
		return nil
	})
	if err != nil {
		return nil, apis.Kind{}, err
	}
	return out, k, nil
}

// xmlValue renders one field value. Entities become their field list;
// list items are wrapped in an element named after the item kind, in the
// field's namespace, or in <string> of ArraysNamespace for scalars.
func (c *Codec) xmlValue(v reflect.Value, ns string, depth int) (any, error) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return "", nil
		}
		if e, ok := asEntity(v); ok {
			nodes, _, err := c.xmlFields(e, depth)
			return nodes, err
		}
		return c.xmlValue(v.Elem(), ns, depth)
	case reflect.Slice, reflect.Array:
		out := make([]wire.Node, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			item := v.Index(i)
			if item.Kind() == reflect.Pointer && item.IsNil() {
				continue
			}
			if e, ok := asEntity(item); ok {
				nodes, k, err := c.xmlFields(e, depth)
				if err != nil {
					return nil, err
				}
				out = append(out, wire.Node{Name: wire.Clark(ns, k.Name), Value: nodes})
				continue
			}
			xv, err := c.xmlValue(item, ns, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, wire.Node{Name: wire.Clark(wire.ArraysNamespace, "string"), Value: xv})
		}
		return out, nil
	default:
		return fmt.Sprint(v.Interface()), nil
	}
}

func asEntity(v reflect.Value) (apis.Entity, bool) {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, false
	}
	e, ok := v.Interface().(apis.Entity)
	return e, ok
}
