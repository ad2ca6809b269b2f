package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDecodeJSON_Values(t *testing.T) {
	v, err := Decode(NewJSONBytes([]byte(`{"a":[1,2.50,"x"],"b":{"c":true,"d":null}}`)), DecodeOptions{})
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok, "root should be a map, got %T", v)
	assert.Equal(t, []any{json.Number("1"), json.Number("2.50"), "x"}, m["a"])
	assert.Equal(t, map[string]any{"c": true, "d": nil}, m["b"])
}

func TestDecodeJSON_EmptyContainers(t *testing.T) {
	v, err := Decode(NewJSONBytes([]byte(`{"a":[],"b":{}}`)), DecodeOptions{})
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, []any{}, m["a"])
	assert.Equal(t, map[string]any{}, m["b"])
}

func TestDecodeJSON_Ordered(t *testing.T) {
	v, err := Decode(NewJSONBytes([]byte(`{"z":1,"a":{"y":1,"b":2},"m":3}`)), DecodeOptions{Ordered: true})
	require.NoError(t, err)

	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys)
	inner, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"y", "b"}, inner.(*Object).Keys)
}

func TestDecodeJSON_DuplicateKey(t *testing.T) {
	_, err := Decode(NewJSONBytes([]byte(`{"a":{"k":1,"k":2}}`)), DecodeOptions{})
	var ie IssueError
	require.True(t, errors.As(err, &ie), "expected IssueError, got %v", err)
	assert.Equal(t, CodeDuplicateKey, ie.Code)
	assert.Equal(t, "/a/k", ie.Path)

	v, err := Decode(NewJSONBytes([]byte(`{"k":1,"k":2}`)), DecodeOptions{AllowDuplicateKeys: true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k": json.Number("2")}, v)
}

func TestDecodeJSON_MaxDepth(t *testing.T) {
	doc := strings.Repeat("[", 5) + strings.Repeat("]", 5)

	_, err := Decode(NewJSONBytes([]byte(doc)), DecodeOptions{MaxDepth: 5})
	require.NoError(t, err)

	_, err = Decode(NewJSONBytes([]byte(doc)), DecodeOptions{MaxDepth: 4})
	var ie IssueError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, CodeDepthExceeded, ie.Code)
	assert.Equal(t, "/0/0/0/0", ie.Path)
}

func TestDecodeJSON_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "truncated", in: `{"a":`},
		{name: "trailing value", in: `{"a":1} {"b":2}`},
		{name: "empty", in: ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(NewJSONBytes([]byte(tt.in)), DecodeOptions{})
			var ie IssueError
			require.True(t, errors.As(err, &ie), "expected IssueError, got %v", err)
			assert.Equal(t, CodeParseError, ie.Code)
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
name: workshop
count: 3
ratio: 1.50
tags: [a, b]
nested:
  on: true
  none: ~
`
	v, err := DecodeYAML([]byte(doc), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":  "workshop",
		"count": json.Number("3"),
		"ratio": json.Number("1.50"),
		"tags":  []any{"a", "b"},
		"nested": map[string]any{
			"on":   true,
			"none": nil,
		},
	}, v)
}

func TestDecodeYAML_OrderedAndDuplicates(t *testing.T) {
	v, err := DecodeYAML([]byte("b: 1\na: 2\n"), DecodeOptions{Ordered: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, v.(*Object).Keys)

	_, err = DecodeYAML([]byte("{a: 1, a: 2}"), DecodeOptions{})
	require.Error(t, err)
}

func TestDecodeYAML_Empty(t *testing.T) {
	_, err := DecodeYAML(nil, DecodeOptions{})
	var ie IssueError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, CodeParseError, ie.Code)
}

func TestDecodeYAML_Aliases(t *testing.T) {
	v, err := DecodeYAML([]byte("base: &b {k: 1}\nuse: *b\n"), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"base": map[string]any{"k": json.Number("1")},
		"use":  map[string]any{"k": json.Number("1")},
	}, v)
}

func TestDecodeYAML_AliasExpansionIsBounded(t *testing.T) {
	var doc strings.Builder
	doc.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i < 9; i++ {
		prev := "*l" + strconv.Itoa(i-1)
		fmt.Fprintf(&doc, "l%d: &l%d [%s]\n", i, i, strings.TrimSuffix(strings.Repeat(prev+", ", 10), ", "))
	}

	start := time.Now()
	_, err := DecodeYAML([]byte(doc.String()), DecodeOptions{})
	assert.Less(t, time.Since(start), time.Second)

	var ie IssueError
	require.True(t, errors.As(err, &ie), "got %v", err)
	assert.Equal(t, CodeAliasExpansion, ie.Code)
	assert.True(t, strings.HasPrefix(ie.Path, "/l"), "path %q", ie.Path)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(doc.String()), &node))
	_, err = ConvertYAMLNode(&node, DecodeOptions{})
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, CodeAliasExpansion, ie.Code)
}
