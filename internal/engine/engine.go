package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// Issue codes produced while decoding.
const (
	CodeParseError    = "parse_error"
	CodeDuplicateKey  = "duplicate_key"
	CodeDepthExceeded = "depth_exceeded"
	// YAML aliases expanded past the document's budget
	CodeAliasExpansion = "alias_expansion"
)

// DefaultMaxDepth bounds nesting when DecodeOptions.MaxDepth is zero.
const DefaultMaxDepth = 256

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// Object is a JSON object that remembers the order in which keys appeared.
// It is produced only when DecodeOptions.Ordered is set.
type Object struct {
	Keys   []string
	Values map[string]any
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.Values[key]
	return v, ok
}

// DecodeOptions controls how a token stream is turned into a value tree.
type DecodeOptions struct {
	// MaxDepth limits container nesting. Zero means DefaultMaxDepth, negative disables the limit.
	MaxDepth int
	// AllowDuplicateKeys keeps the last value of a repeated key instead of failing.
	AllowDuplicateKeys bool
	// Ordered decodes objects as *Object instead of map[string]any.
	Ordered bool
}

func (o DecodeOptions) maxDepth() int {
	if o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Decode builds a value tree from src. Objects become map[string]any (or *Object
// when Ordered), arrays []any, numbers json.Number with the literal preserved.
// Exactly one root value is accepted; trailing tokens are a parse error.
func Decode(src TokenSource, opt DecodeOptions) (any, error) {
	d := &decoder{src: src, opt: opt, limit: opt.maxDepth()}
	tok, err := d.next("")
	if err != nil {
		return nil, err
	}
	v, err := d.value(tok, "", 0)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, parseIssue("", err)
		}
		return nil, IssueError{SimpleIssue{Code: CodeParseError, Path: "/", Message: "unexpected data after the root value"}}
	}
	return v, nil
}

type decoder struct {
	src   TokenSource
	opt   DecodeOptions
	limit int
}

func (d *decoder) next(path string) (Token, error) {
	tok, err := d.src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Token{}, parseIssue(path, err)
	}
	return tok, nil
}

func (d *decoder) value(tok Token, path string, depth int) (any, error) {
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		if d.limit > 0 && depth >= d.limit {
			return nil, IssueError{SimpleIssue{
				Code:    CodeDepthExceeded,
				Path:    normalizeIssuePath(path),
				Message: fmt.Sprintf("nesting exceeds the maximum depth of %d", d.limit),
			}}
		}
		if tok.Kind == KindBeginObject {
			return d.object(path, depth+1)
		}
		return d.array(path, depth+1)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, parseIssue(path, fmt.Errorf("unexpected token kind %d", tok.Kind))
	}
}

func (d *decoder) object(path string, depth int) (any, error) {
	m := make(map[string]any)
	var keys []string
	for {
		tok, err := d.next(path)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			break
		}
		if tok.Kind != KindKey {
			return nil, parseIssue(path, errors.New("expected an object key"))
		}
		key := tok.String
		child := joinJSONPointer(path, key)
		_, dup := m[key]
		if dup && !d.opt.AllowDuplicateKeys {
			return nil, IssueError{SimpleIssue{
				Code:    CodeDuplicateKey,
				Path:    child,
				Message: "key '" + key + "' duplicated",
			}}
		}
		vt, err := d.next(child)
		if err != nil {
			return nil, err
		}
		v, err := d.value(vt, child, depth)
		if err != nil {
			return nil, err
		}
		if !dup {
			keys = append(keys, key)
		}
		m[key] = v
	}
	if d.opt.Ordered {
		return &Object{Keys: keys, Values: m}, nil
	}
	return m, nil
}

func (d *decoder) array(path string, depth int) (any, error) {
	arr := []any{}
	for {
		tok, err := d.next(path)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := d.value(tok, joinJSONPointer(path, strconv.Itoa(len(arr))), depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func parseIssue(path string, err error) error {
	var ie IssueError
	if errors.As(err, &ie) {
		return ie
	}
	return IssueError{SimpleIssue{Code: CodeParseError, Path: normalizeIssuePath(path), Message: err.Error()}}
}

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapeJSONPointerToken(s string) string {
	return jsonPointerEscaper.Replace(s)
}

func joinJSONPointer(base, token string) string {
	return base + "/" + escapeJSONPointerToken(token)
}
