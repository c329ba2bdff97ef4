// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package printer

import (
	"fmt"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/bsharp/ast"
)

// YAMLOptions configures [YAML].
type YAMLOptions struct {
	// If set, each node records its byte range as span: [start, end].
	Spans bool
}

// YAML renders n as a YAML document. Each node becomes a mapping whose
// first key, node, names the node type; empty fields are left out. Types and
// identifiers are rendered as strings in source syntax.
func YAML(n ast.Node, opts YAMLOptions) ([]byte, error) {
	y := toYAML{YAMLOptions: opts}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{y.node(n)}}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("printer: encoding tree: %w", err)
	}
	return out, nil
}

type toYAML struct {
	YAMLOptions
}

func (y toYAML) node(n ast.Node) *yaml.Node {
	if isNil(n) {
		return scalar("!!null", "null")
	}
	switch n := n.(type) {
	case ast.Type:
		return y.withSpan(n, scalar("!!str", Type(n)))
	case *ast.Ident:
		return scalar("!!str", n.String())
	}

	v := reflect.ValueOf(n).Elem()
	t := v.Type()
	m := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, scalar("!!str", "node"), scalar("!!str", t.Name()))
	if y.Spans {
		span := n.Span()
		m.Content = append(m.Content, scalar("!!str", "span"), &yaml.Node{
			Kind:  yaml.SequenceNode,
			Style: yaml.FlowStyle,
			Content: []*yaml.Node{
				scalar("!!int", strconv.Itoa(span.Start)),
				scalar("!!int", strconv.Itoa(span.End)),
			},
		})
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if fv.IsZero() || (fv.Kind() == reflect.Slice && fv.Len() == 0) {
			continue
		}
		m.Content = append(m.Content, scalar("!!str", fieldName(f.Name)), y.value(fv))
	}
	return m
}

// withSpan wraps a scalar rendering of a node in a mapping if spans are
// requested.
func (y toYAML) withSpan(n ast.Node, v *yaml.Node) *yaml.Node {
	if !y.Spans {
		return v
	}
	span := n.Span()
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalar("!!str", "type"), v,
			scalar("!!str", "span"), &yaml.Node{
				Kind:  yaml.SequenceNode,
				Style: yaml.FlowStyle,
				Content: []*yaml.Node{
					scalar("!!int", strconv.Itoa(span.Start)),
					scalar("!!int", strconv.Itoa(span.End)),
				},
			},
		},
	}
}

func (y toYAML) value(v reflect.Value) *yaml.Node {
	switch {
	case v.Type().Implements(nodeType):
		n, _ := v.Interface().(ast.Node)
		return y.node(n)
	case v.Type().Implements(stringerType):
		s, _ := v.Interface().(fmt.Stringer)
		return scalar("!!str", s.String())
	}

	switch v.Kind() {
	case reflect.Slice:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i := range v.Len() {
			seq.Content = append(seq.Content, y.value(v.Index(i)))
		}
		return seq
	case reflect.String:
		return scalar("!!str", v.String())
	case reflect.Bool:
		return scalar("!!bool", strconv.FormatBool(v.Bool()))
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return scalar("!!null", "null")
		}
		return y.value(v.Elem())
	default:
		return scalar("!!str", fmt.Sprint(v.Interface()))
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
