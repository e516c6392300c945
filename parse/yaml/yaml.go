// Package yaml reads and writes YAML mappings as ordered value maps using
// gopkg.in/yaml.v3 node trees, so key order survives both directions.
package yaml

import (
	"bytes"

	"github.com/dzjyyds666/serde/value"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Encode renders m as a YAML mapping indented by two spaces.
func Encode(m *value.Map) ([]byte, error) {
	node, err := toNode(m)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, errors.Wrap(err, "yaml: encode")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "yaml: encode")
	}
	return buf.Bytes(), nil
}

// Decode parses a YAML document whose root is a mapping. An empty document
// yields an empty map.
func Decode(data []byte) (*value.Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "yaml: decode")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return value.NewMap(), nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return value.NewMap(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.Errorf("yaml: document root is not a mapping (line %d)", root.Line)
	}
	n, err := fromNode(root)
	if err != nil {
		return nil, err
	}
	return n.(*value.Map), nil
}

func fromNode(node *yaml.Node) (value.Node, error) {
	switch node.Kind {
	case yaml.MappingNode:
		m := value.NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			child, err := fromNode(node.Content[i+1])
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", key)
			}
			m.Set(key, child)
		}
		return m, nil
	case yaml.SequenceNode:
		s := value.NewSeq()
		for _, c := range node.Content {
			child, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			s.Append(child)
		}
		return s, nil
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.ScalarNode:
		return fromScalar(node)
	default:
		return nil, errors.Wrapf(value.ErrUnsupportedValueKind, "yaml: node kind %d at line %d", node.Kind, node.Line)
	}
}

func fromScalar(node *yaml.Node) (value.Node, error) {
	switch node.ShortTag() {
	case "!!null":
		return value.Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, errors.Wrapf(err, "yaml: line %d", node.Line)
		}
		return value.Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return nil, errors.Wrapf(err, "yaml: line %d", node.Line)
		}
		return value.Int(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, errors.Wrapf(err, "yaml: line %d", node.Line)
		}
		return value.Float(f), nil
	default:
		return value.String(node.Value), nil
	}
}

func toNode(n value.Node) (*yaml.Node, error) {
	switch v := n.(type) {
	case *value.Map:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for key, child := range v.All() {
			c, err := toNode(child)
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", key)
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, c)
		}
		return node, nil
	case *value.Seq:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, child := range v.Elems {
			c, err := toNode(child)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, c)
		}
		return node, nil
	case *value.Value:
		return scalarNode(v), nil
	default:
		return nil, errors.Wrapf(value.ErrUnsupportedValueKind, "yaml: %T", n)
	}
}

func scalarNode(v *value.Value) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode}
	switch v.Type {
	case value.Kinds.Null:
		node.Tag, node.Value = "!!null", "null"
	case value.Kinds.String:
		node.Tag, node.Value = "!!str", v.V.(string)
	case value.Kinds.Int:
		node.Tag, node.Value = "!!int", value.Text(v)
	case value.Kinds.Float:
		node.Tag, node.Value = "!!float", yamlFloat(v.V.(float64))
	case value.Kinds.Bool:
		node.Tag, node.Value = "!!bool", value.Text(v)
	default:
		node.Tag, node.Value = "!!str", value.Text(v)
	}
	return node
}

func yamlFloat(f float64) string {
	switch s := value.FormatFloat(f); s {
	case "inf":
		return ".inf"
	case "-inf":
		return "-.inf"
	case "nan":
		return ".nan"
	default:
		return s
	}
}
