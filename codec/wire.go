// SPDX-License-Identifier: MIT

// Package codec - binary (protowire) and YAML encodings of Record.
//
// The YAML form spells payloads as lowercase hex strings.
//
// Binary layout: the 4-byte magic "LVN\x01" followed by protobuf wire-format
// fields. Record: 1 tag (bytes), 2 context (message), 3 ints (repeated
// bytes), 4 floats (repeated bytes). ContextRecord: 1 kind, 2 base, 3 var,
// 4 rows, 5 cols, 6 degree, 7 precision (varints except var), 8 modulus,
// 9 defining (repeated bytes). Unknown fields are skipped.
package codec

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
	"gopkg.in/yaml.v3"
)

var magic = []byte("LVN\x01")

const (
	fTag     protowire.Number = 1
	fContext protowire.Number = 2
	fInts    protowire.Number = 3
	fFloats  protowire.Number = 4

	fKind      protowire.Number = 1
	fBase      protowire.Number = 2
	fVar       protowire.Number = 3
	fRows      protowire.Number = 4
	fCols      protowire.Number = 5
	fDegree    protowire.Number = 6
	fPrecision protowire.Number = 7
	fModulus   protowire.Number = 8
	fDefining  protowire.Number = 9
)

// MarshalBinary encodes r in the binary form.
func MarshalBinary(r *Record) ([]byte, error) {
	if r == nil || r.Tag == "" {
		return nil, fmt.Errorf("%w: record without tag", ErrDecode)
	}
	b := append([]byte(nil), magic...)
	b = protowire.AppendTag(b, fTag, protowire.BytesType)
	b = protowire.AppendString(b, r.Tag)
	if r.Context != nil {
		b = protowire.AppendTag(b, fContext, protowire.BytesType)
		b = protowire.AppendBytes(b, appendContext(nil, r.Context))
	}
	for _, p := range r.Ints {
		b = protowire.AppendTag(b, fInts, protowire.BytesType)
		b = protowire.AppendBytes(b, p)
	}
	for _, p := range r.Floats {
		b = protowire.AppendTag(b, fFloats, protowire.BytesType)
		b = protowire.AppendBytes(b, p)
	}

	return b, nil
}

func appendContext(b []byte, c *ContextRecord) []byte {
	for _, f := range []struct {
		n protowire.Number
		v uint64
	}{{fKind, c.Kind}, {fBase, c.Base}, {fRows, c.Rows}, {fCols, c.Cols}, {fDegree, c.Degree}, {fPrecision, c.Precision}} {
		if f.v == 0 {
			continue
		}
		b = protowire.AppendTag(b, f.n, protowire.VarintType)
		b = protowire.AppendVarint(b, f.v)
	}
	if c.Var != "" {
		b = protowire.AppendTag(b, fVar, protowire.BytesType)
		b = protowire.AppendString(b, c.Var)
	}
	if c.Modulus != nil {
		b = protowire.AppendTag(b, fModulus, protowire.BytesType)
		b = protowire.AppendBytes(b, c.Modulus)
	}
	for _, p := range c.Defining {
		b = protowire.AppendTag(b, fDefining, protowire.BytesType)
		b = protowire.AppendBytes(b, p)
	}

	return b
}

// UnmarshalBinary decodes the binary form.
func UnmarshalBinary(data []byte) (*Record, error) {
	if !bytes.HasPrefix(data, magic) {
		return nil, fmt.Errorf("%w: missing magic", ErrDecode)
	}
	data = data[len(magic):]
	r := &Record{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, wireErr(n)
		}
		data = data[n:]
		if typ != protowire.BytesType || num < fTag || num > fFloats {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, wireErr(n)
			}
			data = data[n:]
			continue
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, wireErr(n)
		}
		data = data[n:]
		switch num {
		case fTag:
			r.Tag = string(v)
		case fContext:
			c, err := consumeContext(v)
			if err != nil {
				return nil, err
			}
			r.Context = c
		case fInts:
			r.Ints = append(r.Ints, append([]byte{}, v...))
		case fFloats:
			r.Floats = append(r.Floats, append([]byte{}, v...))
		}
	}
	if r.Tag == "" {
		return nil, fmt.Errorf("%w: record without tag", ErrDecode)
	}

	return r, nil
}

func consumeContext(data []byte) (*ContextRecord, error) {
	c := &ContextRecord{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, wireErr(n)
		}
		data = data[n:]
		switch {
		case typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return nil, wireErr(m)
			}
			data = data[m:]
			switch num {
			case fKind:
				c.Kind = v
			case fBase:
				c.Base = v
			case fRows:
				c.Rows = v
			case fCols:
				c.Cols = v
			case fDegree:
				c.Degree = v
			case fPrecision:
				c.Precision = v
			}
		case typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return nil, wireErr(m)
			}
			data = data[m:]
			switch num {
			case fVar:
				c.Var = string(v)
			case fModulus:
				c.Modulus = append([]byte{}, v...)
			case fDefining:
				c.Defining = append(c.Defining, append([]byte{}, v...))
			}
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return nil, wireErr(m)
			}
			data = data[m:]
		}
	}

	return c, nil
}

func wireErr(n int) error {
	return fmt.Errorf("%w: %v", ErrDecode, protowire.ParseError(n))
}

// textRecord is the YAML shape of Record; payloads are hex strings.
type textRecord struct {
	Tag     string       `yaml:"tag"`
	Context *textContext `yaml:"context,omitempty"`
	Ints    []string     `yaml:"ints,omitempty"`
	Floats  []string     `yaml:"floats,omitempty"`
}

type textContext struct {
	Kind      uint64   `yaml:"kind"`
	Base      uint64   `yaml:"base,omitempty"`
	Var       string   `yaml:"var,omitempty"`
	Rows      uint64   `yaml:"rows,omitempty"`
	Cols      uint64   `yaml:"cols,omitempty"`
	Degree    uint64   `yaml:"degree,omitempty"`
	Precision uint64   `yaml:"precision,omitempty"`
	Modulus   string   `yaml:"modulus,omitempty"`
	Defining  []string `yaml:"defining,omitempty"`
}

func hexAll(ps [][]byte) []string {
	if len(ps) == 0 {
		return nil
	}
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = hex.EncodeToString(p)
	}

	return out
}

func unhexAll(ss []string) ([][]byte, error) {
	if len(ss) == 0 {
		return nil, nil
	}
	out := make([][]byte, len(ss))
	for i, s := range ss {
		p, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		out[i] = p
	}

	return out, nil
}

// MarshalYAML encodes r in the YAML text form.
func MarshalYAML(r *Record) ([]byte, error) {
	if r == nil || r.Tag == "" {
		return nil, fmt.Errorf("%w: record without tag", ErrDecode)
	}
	t := textRecord{Tag: r.Tag, Ints: hexAll(r.Ints), Floats: hexAll(r.Floats)}
	if c := r.Context; c != nil {
		t.Context = &textContext{
			Kind: c.Kind, Base: c.Base, Var: c.Var, Rows: c.Rows, Cols: c.Cols,
			Degree: c.Degree, Precision: c.Precision, Defining: hexAll(c.Defining),
		}
		if c.Modulus != nil {
			t.Context.Modulus = hex.EncodeToString(c.Modulus)
		}
	}

	return yaml.Marshal(&t)
}

// UnmarshalYAML decodes the YAML text form.
func UnmarshalYAML(data []byte) (*Record, error) {
	var t textRecord
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if t.Tag == "" {
		return nil, fmt.Errorf("%w: record without tag", ErrDecode)
	}
	r := &Record{Tag: t.Tag}
	var err error
	if r.Ints, err = unhexAll(t.Ints); err != nil {
		return nil, err
	}
	if r.Floats, err = unhexAll(t.Floats); err != nil {
		return nil, err
	}
	if tc := t.Context; tc != nil {
		c := &ContextRecord{
			Kind: tc.Kind, Base: tc.Base, Var: tc.Var, Rows: tc.Rows, Cols: tc.Cols,
			Degree: tc.Degree, Precision: tc.Precision,
		}
		if c.Defining, err = unhexAll(tc.Defining); err != nil {
			return nil, err
		}
		if tc.Modulus != "" {
			if c.Modulus, err = hex.DecodeString(tc.Modulus); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrDecode, err)
			}
		}
		r.Context = c
	}

	return r, nil
}

// Parse decodes either encoding, telling them apart by the binary magic.
func Parse(data []byte) (*Record, error) {
	if bytes.HasPrefix(data, magic) {
		return UnmarshalBinary(data)
	}

	return UnmarshalYAML(data)
}
