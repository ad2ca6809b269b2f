package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes a single YAML document into the same value tree Decode
// produces for JSON: string-keyed objects, []any, json.Number for ints and
// floats (literal preserved), string, bool and nil.
func DecodeYAML(data []byte, opt DecodeOptions) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, IssueError{SimpleIssue{Code: CodeParseError, Path: "/", Message: "empty YAML document"}}
		}
		return nil, parseIssue("", err)
	}
	return newYAMLConverter(&doc, opt).node(&doc, "", 0)
}

// ConvertYAMLNode converts an already decoded yaml.Node using the same rules as DecodeYAML.
func ConvertYAMLNode(n *yaml.Node, opt DecodeOptions) (any, error) {
	return newYAMLConverter(n, opt).node(n, "", 0)
}

// Alias dereferences may expand to aliasRatio nodes per node of the
// document, never less than minAliasBudget and never more than maxAliasBudget.
const (
	aliasRatio     = 10
	minAliasBudget = 10000
	maxAliasBudget = 1000000
)

type yamlConverter struct {
	opt   DecodeOptions
	limit int

	budget   int
	expanded int
	inAlias  int
}

func newYAMLConverter(root *yaml.Node, opt DecodeOptions) *yamlConverter {
	budget := countYAMLNodes(root, maxAliasBudget/aliasRatio) * aliasRatio
	budget = max(minAliasBudget, min(budget, maxAliasBudget))
	return &yamlConverter{opt: opt, limit: opt.maxDepth(), budget: budget}
}

// countYAMLNodes counts the nodes of the tree without following aliases,
// stopping once stop is reached.
func countYAMLNodes(root *yaml.Node, stop int) int {
	count := 0
	stack := []*yaml.Node{root}
	for len(stack) > 0 && count < stop {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, n.Content...)
	}
	return count
}

func (c *yamlConverter) node(n *yaml.Node, path string, depth int) (any, error) {
	if c.inAlias > 0 {
		c.expanded++
		if c.expanded > c.budget {
			return nil, IssueError{SimpleIssue{
				Code:    CodeAliasExpansion,
				Path:    normalizeIssuePath(path),
				Message: fmt.Sprintf("aliases expand to more than %d nodes", c.budget),
			}}
		}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.node(n.Content[0], path, depth)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, nil
		}
		c.inAlias++
		v, err := c.node(n.Alias, path, depth)
		c.inAlias--
		return v, err
	case yaml.MappingNode:
		if err := c.enter(path, depth); err != nil {
			return nil, err
		}
		return c.mapping(n, path, depth+1)
	case yaml.SequenceNode:
		if err := c.enter(path, depth); err != nil {
			return nil, err
		}
		arr := make([]any, 0, len(n.Content))
		for i, item := range n.Content {
			v, err := c.node(item, joinJSONPointer(path, strconv.Itoa(i)), depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalarValue(n, path)
	default:
		return nil, nil
	}
}

func (c *yamlConverter) enter(path string, depth int) error {
	if c.limit > 0 && depth >= c.limit {
		return IssueError{SimpleIssue{
			Code:    CodeDepthExceeded,
			Path:    normalizeIssuePath(path),
			Message: fmt.Sprintf("nesting exceeds the maximum depth of %d", c.limit),
		}}
	}
	return nil
}

func (c *yamlConverter) mapping(n *yaml.Node, path string, depth int) (any, error) {
	m := make(map[string]any, len(n.Content)/2)
	var keys []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		if kn.Kind != yaml.ScalarNode {
			// non-scalar keys have no JSON equivalent
			continue
		}
		key := kn.Value
		child := joinJSONPointer(path, key)
		_, dup := m[key]
		if dup && !c.opt.AllowDuplicateKeys {
			return nil, IssueError{SimpleIssue{Code: CodeDuplicateKey, Path: child, Message: "key '" + key + "' duplicated"}}
		}
		v, err := c.node(vn, child, depth)
		if err != nil {
			return nil, err
		}
		if !dup {
			keys = append(keys, key)
		}
		m[key] = v
	}
	if c.opt.Ordered {
		return &Object{Keys: keys, Values: m}, nil
	}
	return m, nil
}

func scalarValue(n *yaml.Node, path string) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, parseIssue(path, err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, parseIssue(path, err)
		}
		return json.Number(strconv.FormatInt(i, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, parseIssue(path, err)
		}
		if _, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return json.Number(n.Value), nil
		}
		// .inf / .nan have no JSON literal
		return f, nil
	default:
		return n.Value, nil
	}
}
