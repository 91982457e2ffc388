package rules

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tastemaker/taste/internal/domain"
)

// Encode renders a rule as its on-disk YAML artifact. The serializer has two
// behaviors downstream tooling depends on:
//
//   - key order is emitted exactly as given (title, id, description,
//     problems, solutions, examples), never alphabetized;
//   - every string containing at least one line break is rendered in literal
//     block style, evaluated independently for each string in the structure.
//
// Unicode passes through unescaped.
func Encode(rule domain.Rule) ([]byte, error) {
	doc := newMapping()
	doc.put("title", scalarNode(rule.Title))
	doc.put("id", scalarNode(rule.ID))
	doc.put("description", scalarNode(rule.Description))
	doc.put("problems", stringSequence(rule.Problems))
	doc.put("solutions", stringSequence(rule.Solutions))
	doc.put("examples", exampleSequence(rule.Examples))

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc.Node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses an artifact back into a rule. The category is not part of
// the artifact body; callers fill it from the directory name.
func Decode(data []byte) (domain.Rule, error) {
	var rule domain.Rule
	if err := yaml.Unmarshal(data, &rule); err != nil {
		return domain.Rule{}, err
	}
	return rule, nil
}

// scalarNode renders multi-line strings in literal block style and leaves
// single-line strings in the default inline style.
func scalarNode(value string) *yaml.Node {
	node := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: value,
	}
	if strings.Contains(value, "\n") {
		node.Style = yaml.LiteralStyle
	}
	return node
}

func stringSequence(values []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, scalarNode(v))
	}
	return seq
}

func exampleSequence(examples []domain.RuleExample) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, ex := range examples {
		entry := newMapping()
		entry.put("scenario", scalarNode(ex.Scenario))
		entry.put("before", scalarNode(ex.Before))
		entry.put("after", scalarNode(ex.After))
		seq.Content = append(seq.Content, entry.Node)
	}
	return seq
}

// mapping appends key/value pairs in insertion order, which is exactly the
// order the emitter writes them.
type mapping struct {
	*yaml.Node
}

func newMapping() mapping {
	return mapping{&yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

func (m mapping) put(key string, value *yaml.Node) {
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}
