package schemafile

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	morph "github.com/gomorph/morph"
)

type valueKind int

const (
	kindScalar valueKind = iota
	kindSeq
	kindMap
)

// docValue is the order-preserving generic form both decoders produce.
// Standard map decoding would lose document key order, which a schema must
// keep, so objects decode into docMap with parallel key/value slices.
type docValue struct {
	kind   valueKind
	scalar any // string, bool, number, nil
	seq    []docValue
	m      *docMap
}

type docMap struct {
	keys []string
	vals []docValue
}

func (m *docMap) index(key string) int {
	for i, k := range m.keys {
		if k == key {
			return i
		}
	}
	return -1
}

// ---- JSON (goccy/go-json token decoder) ----

func decodeJSONDocument(data []byte) (docValue, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return docValue{}, err
	}
	v, err := decodeJSONValue(dec, tok, "")
	if err != nil {
		return docValue{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return docValue{}, fmt.Errorf("trailing data after document")
		}
		return docValue{}, err
	}
	return v, nil
}

func decodeJSONValue(dec *j.Decoder, tok any, path string) (docValue, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return decodeJSONObject(dec, path)
		case '[':
			return decodeJSONArray(dec, path)
		}
		return docValue{}, fmt.Errorf("unexpected delimiter %q", v.String())
	case string:
		return docValue{kind: kindScalar, scalar: v}, nil
	case bool:
		return docValue{kind: kindScalar, scalar: v}, nil
	case j.Number:
		return docValue{kind: kindScalar, scalar: v}, nil
	case float64:
		return docValue{kind: kindScalar, scalar: v}, nil
	case nil:
		return docValue{kind: kindScalar, scalar: nil}, nil
	default:
		return docValue{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONObject(dec *j.Decoder, path string) (docValue, error) {
	m := &docMap{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return docValue{}, err
		}
		if d, ok := tok.(j.Delim); ok && d == '}' {
			return docValue{kind: kindMap, m: m}, nil
		}
		key, ok := tok.(string)
		if !ok {
			return docValue{}, fmt.Errorf("unexpected token %v in object", tok)
		}
		if m.index(key) >= 0 {
			return docValue{}, morph.Issues{morph.Issue{
				Path:    joinKey(path, key),
				Code:    morph.CodeDuplicateKey,
				Message: "duplicate mapping key",
			}}
		}
		vt, err := dec.Token()
		if err != nil {
			return docValue{}, err
		}
		val, err := decodeJSONValue(dec, vt, joinKey(path, key))
		if err != nil {
			return docValue{}, err
		}
		m.keys = append(m.keys, key)
		m.vals = append(m.vals, val)
	}
}

func decodeJSONArray(dec *j.Decoder, path string) (docValue, error) {
	seq := []docValue{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return docValue{}, err
		}
		if d, ok := tok.(j.Delim); ok && d == ']' {
			return docValue{kind: kindSeq, seq: seq}, nil
		}
		val, err := decodeJSONValue(dec, tok, joinKey(path, strconv.Itoa(len(seq))))
		if err != nil {
			return docValue{}, err
		}
		seq = append(seq, val)
	}
}

// ---- YAML (yaml.v3 node decoder) ----

func decodeYAMLDocument(data []byte) (docValue, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return docValue{}, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		// Empty document: an empty mapping.
		return docValue{kind: kindMap, m: &docMap{}}, nil
	}
	return decodeYAMLNode(&root, "")
}

func decodeYAMLNode(n *yaml.Node, path string) (docValue, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		return decodeYAMLNode(n.Content[0], path)
	case yaml.AliasNode:
		return decodeYAMLNode(n.Alias, path)
	case yaml.MappingNode:
		m := &docMap{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if m.index(key) >= 0 {
				return docValue{}, morph.Issues{morph.Issue{
					Path:    joinKey(path, key),
					Code:    morph.CodeDuplicateKey,
					Message: "duplicate mapping key",
				}}
			}
			val, err := decodeYAMLNode(n.Content[i+1], joinKey(path, key))
			if err != nil {
				return docValue{}, err
			}
			m.keys = append(m.keys, key)
			m.vals = append(m.vals, val)
		}
		return docValue{kind: kindMap, m: m}, nil
	case yaml.SequenceNode:
		seq := make([]docValue, 0, len(n.Content))
		for i, c := range n.Content {
			val, err := decodeYAMLNode(c, joinKey(path, strconv.Itoa(i)))
			if err != nil {
				return docValue{}, err
			}
			seq = append(seq, val)
		}
		return docValue{kind: kindSeq, seq: seq}, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return docValue{}, err
		}
		return docValue{kind: kindScalar, scalar: v}, nil
	default:
		return docValue{}, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
