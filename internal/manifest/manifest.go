// Copyright 2025 Marc-Antoine Ruel and Félix Lachapelle. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package manifest loads JSON package descriptors and prints them back with
// their original key order.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a JSON object that remembers the order of its keys.
type Object = orderedmap.OrderedMap[string, any]

// Indent is the indentation used by Format.
const Indent = "  "

// Document is a parsed JSON document.
//
// Objects are *Object, arrays []any, strings string, numbers json.Number,
// booleans bool and null nil.
type Document struct {
	root any
}

// Load reads and parses the JSON document at path.
func Load(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return d, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Parse parses a JSON document.
//
// It is strict: anything encoding/json rejects is an error.
func Parse(data []byte) (*Document, error) {
	// jsonparser is lenient, let encoding/json reject malformed input with a
	// precise offset first.
	var check any
	if err := json.Unmarshal(data, &check); err != nil {
		return nil, err
	}
	v, t, _, err := jsonparser.Get(replaceLoneSurrogates(data))
	if err != nil {
		return nil, err
	}
	root, err := decode(v, t)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// replaceLoneSurrogates rewrites the \u escapes of unpaired UTF-16 surrogates
// as \ufffd, the value encoding/json decodes them to. jsonparser refuses them.
//
// data must be valid JSON, so every backslash starts an escape sequence.
func replaceLoneSurrogates(data []byte) []byte {
	var out []byte
	last := 0
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			continue
		}
		if data[i+1] != 'u' {
			i++
			continue
		}
		r := hexRune(data[i+2 : i+6])
		if !utf16.IsSurrogate(r) {
			i += 5
			continue
		}
		if r < 0xdc00 && i+12 <= len(data) && data[i+6] == '\\' && data[i+7] == 'u' {
			if r2 := hexRune(data[i+8 : i+12]); r2 >= 0xdc00 && r2 < 0xe000 {
				i += 11
				continue
			}
		}
		out = append(out, data[last:i]...)
		out = append(out, `\ufffd`...)
		last = i + 6
		i += 5
	}
	if out == nil {
		return data
	}
	return append(out, data[last:]...)
}

func hexRune(b []byte) rune {
	v, err := strconv.ParseUint(string(b), 16, 32)
	if err != nil {
		return utf8.RuneError
	}
	return rune(v)
}

// Value returns the root value.
func (d *Document) Value() any {
	return d.root
}

func decode(v []byte, t jsonparser.ValueType) (any, error) {
	switch t {
	case jsonparser.Object:
		o := orderedmap.New[string, any]()
		err := jsonparser.ObjectEach(v, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
			child, err := decode(value, dataType)
			if err != nil {
				return err
			}
			// Keys are already unescaped by ObjectEach.
			o.Set(string(key), child)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return o, nil
	case jsonparser.Array:
		a := []any{}
		var errElem error
		_, err := jsonparser.ArrayEach(v, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
			if errElem != nil {
				return
			}
			if err != nil {
				errElem = err
				return
			}
			child, err := decode(value, dataType)
			if err != nil {
				errElem = err
				return
			}
			a = append(a, child)
		})
		if err == nil {
			err = errElem
		}
		if err != nil {
			return nil, err
		}
		return a, nil
	case jsonparser.String:
		return jsonparser.ParseString(v)
	case jsonparser.Number:
		return json.Number(v), nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(v)
	case jsonparser.Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected JSON value %q", v)
	}
}

// Format returns the document indented with two spaces, without a trailing
// newline.
func (d *Document) Format() []byte {
	var buf bytes.Buffer
	writeValue(&buf, d.root, "")
	return buf.Bytes()
}

// WriteTo writes Format's output followed by a newline.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	b := append(d.Format(), '\n')
	n, err := w.Write(b)
	return int64(n), err
}

func writeValue(buf *bytes.Buffer, v any, prefix string) {
	switch t := v.(type) {
	case *Object:
		if t.Len() == 0 {
			buf.WriteString("{}")
			return
		}
		inner := prefix + Indent
		buf.WriteString("{\n")
		for p := t.Oldest(); p != nil; p = p.Next() {
			buf.WriteString(inner)
			writeString(buf, p.Key)
			buf.WriteString(": ")
			writeValue(buf, p.Value, inner)
			if p.Next() != nil {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(prefix)
		buf.WriteByte('}')
	case []any:
		if len(t) == 0 {
			buf.WriteString("[]")
			return
		}
		inner := prefix + Indent
		buf.WriteString("[\n")
		for i, e := range t {
			buf.WriteString(inner)
			writeValue(buf, e, inner)
			if i != len(t)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(prefix)
		buf.WriteByte(']')
	case string:
		writeString(buf, t)
	case json.Number:
		buf.WriteString(t.String())
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case nil:
		buf.WriteString("null")
	default:
		// Not produced by Parse.
		panic(fmt.Sprintf("unexpected type %T", v))
	}
}

// writeString writes s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) {
	e := json.NewEncoder(buf)
	e.SetEscapeHTML(false)
	_ = e.Encode(s)
	// Encode always terminates with a newline.
	buf.Truncate(buf.Len() - 1)
}
