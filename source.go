package formschema

import (
	"errors"
	"io"

	eng "github.com/reoring/formschema/internal/engine"
)

// Source produces a data value to validate.
type Source interface {
	Decode() (any, error)
}

// SourceOpt controls decoding of JSON and YAML sources.
type SourceOpt struct {
	// MaxDepth limits nesting of objects and arrays. Zero means 256, a
	// negative value disables the limit.
	MaxDepth int
	// AllowDuplicateKeys keeps the last of repeated object keys instead of
	// failing with a duplicate_key issue.
	AllowDuplicateKeys bool
}

func (o SourceOpt) engine() eng.DecodeOptions {
	return eng.DecodeOptions{MaxDepth: o.MaxDepth, AllowDuplicateKeys: o.AllowDuplicateKeys}
}

func firstOpt(opts []SourceOpt) SourceOpt {
	if len(opts) > 0 {
		return opts[0]
	}
	return SourceOpt{}
}

// JSONBytes wraps a byte slice as a JSON Source. Numbers decode to
// json.Number so their literal is preserved.
func JSONBytes(b []byte, opts ...SourceOpt) Source {
	return jsonSource{open: func() eng.TokenSource { return eng.NewJSONBytes(b) }, opt: firstOpt(opts)}
}

// JSONReader wraps an io.Reader as a JSON Source. The reader is consumed by
// the first Decode.
func JSONReader(r io.Reader, opts ...SourceOpt) Source {
	return jsonSource{open: func() eng.TokenSource { return eng.NewJSONReader(r) }, opt: firstOpt(opts)}
}

// YAMLBytes wraps a byte slice holding one YAML document as a Source.
func YAMLBytes(b []byte, opts ...SourceOpt) Source {
	return yamlSource{data: b, opt: firstOpt(opts)}
}

// ValueSource wraps an already decoded value.
func ValueSource(v any) Source { return valueSource{v: v} }

type jsonSource struct {
	open func() eng.TokenSource
	opt  SourceOpt
}

func (s jsonSource) Decode() (any, error) {
	v, err := eng.Decode(s.open(), s.opt.engine())
	if err != nil {
		return nil, fromEngineError(err)
	}
	return v, nil
}

type yamlSource struct {
	data []byte
	opt  SourceOpt
}

func (s yamlSource) Decode() (any, error) {
	v, err := eng.DecodeYAML(s.data, s.opt.engine())
	if err != nil {
		return nil, fromEngineError(err)
	}
	return v, nil
}

type valueSource struct{ v any }

func (s valueSource) Decode() (any, error) { return s.v, nil }

func fromEngineError(err error) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{{Code: ie.Code, Path: ie.Path, Message: ie.Message}}
	}
	return Issues{{Code: CodeParseError, Path: "/", Message: err.Error()}}
}
