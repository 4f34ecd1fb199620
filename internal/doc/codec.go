package doc

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FromNode converts a parsed YAML node into a document.
func FromNode(node *yaml.Node) (Value, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return FromNode(node.Content[0])
	case yaml.AliasNode:
		return FromNode(node.Alias)
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return Scalar(node.Value), nil
	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := FromNode(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
			}
			v, err := FromNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, v)
		}
		return m, nil
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
}

// ToNode converts a document into a YAML node. Scalars are always tagged as
// strings so hex keys survive a round trip unchanged. Sequences use flow
// style.
func ToNode(v Value) *yaml.Node {
	switch tv := v.(type) {
	case Scalar:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(tv)}
	case Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, item := range tv {
			n.Content = append(n.Content, ToNode(item))
		}
		return n
	case *Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range tv.Keys() {
			item, _ := tv.Get(k)
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				ToNode(item),
			)
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// Marshal renders a document as YAML with two-space indentation.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToNode(v)); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses YAML (and therefore JSON) into a document.
// Empty input yields a nil document.
func Unmarshal(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return FromNode(&node)
}

// Interface converts a document into plain Go values: string, []any and
// map[string]any. It is the form accepted by JSON encoders and schema
// validators.
func Interface(v Value) any {
	switch tv := v.(type) {
	case Scalar:
		return string(tv)
	case Sequence:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = Interface(item)
		}
		return out
	case *Mapping:
		out := make(map[string]any, tv.Len())
		for _, k := range tv.Keys() {
			item, _ := tv.Get(k)
			out[k] = Interface(item)
		}
		return out
	}
	return nil
}

// FromInterface converts decoded generic data (as produced by TOML, YAML or
// JSON decoders) into a document. Map keys are sorted because generic maps
// carry no order.
func FromInterface(x any) (Value, error) {
	switch tv := x.(type) {
	case nil:
		return nil, nil
	case string:
		return Scalar(tv), nil
	case bool:
		return Scalar(strconv.FormatBool(tv)), nil
	case int:
		return Scalar(strconv.Itoa(tv)), nil
	case int64:
		return Scalar(strconv.FormatInt(tv, 10)), nil
	case uint64:
		return Scalar(strconv.FormatUint(tv, 10)), nil
	case float64:
		return Scalar(strconv.FormatFloat(tv, 'f', -1, 64)), nil
	case []any:
		seq := make(Sequence, 0, len(tv))
		for _, item := range tv {
			v, err := FromInterface(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case []map[string]any:
		seq := make(Sequence, 0, len(tv))
		for _, item := range tv {
			v, err := FromInterface(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case map[string]any:
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			v, err := FromInterface(tv[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			m.Set(k, v)
		}
		return m, nil
	case map[any]any:
		normalized := make(map[string]any, len(tv))
		for k, item := range tv {
			normalized[fmt.Sprint(k)] = item
		}
		return FromInterface(normalized)
	}
	return nil, fmt.Errorf("unsupported document value of type %T", x)
}

// Document wraps a Value so it can be embedded in configuration structs
// decoded by yaml.v3 or BurntSushi/toml.
type Document struct {
	Root Value
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	v, err := FromNode(node)
	if err != nil {
		return err
	}
	d.Root = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Document) MarshalYAML() (any, error) {
	return ToNode(d.Root), nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Document) UnmarshalTOML(data any) error {
	v, err := FromInterface(data)
	if err != nil {
		return err
	}
	d.Root = v
	return nil
}

// IsZero reports whether the document is empty.
func (d Document) IsZero() bool {
	return d.Root == nil
}
