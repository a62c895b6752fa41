// SPDX-License-Identifier: MIT

package integer

import (
	"fmt"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
)

// Record returns the self-describing record of z.
func (z *Integer) Record() (*codec.Record, error) {
	p, err := use(z, backend.FmpzBytes)
	if err != nil {
		return nil, algebra.Errorf("Integer.Record", err)
	}

	return &codec.Record{Tag: codec.TagInteger, Ints: [][]byte{p}}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (z *Integer) MarshalBinary() ([]byte, error) {
	rec, err := z.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of z.
func (z *Integer) EncodeYAML() ([]byte, error) {
	rec, err := z.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeRecord rebuilds an Integer from rec.
func DecodeRecord(rec *codec.Record) (*Integer, error) {
	if err := rec.Expect(codec.TagInteger, false); err != nil {
		return nil, err
	}
	if len(rec.Ints) != 1 {
		return nil, fmt.Errorf("%w: integer record needs one payload", algebra.ErrDecode)
	}

	return build("integer.DecodeRecord", func(dst *backend.Fmpz) error {
		if !backend.FmpzSetBytes(dst, rec.Ints[0]) {
			return fmt.Errorf("%w: non-canonical integer payload", algebra.ErrDecode)
		}
		return nil
	})
}

// Decode rebuilds an Integer from either encoding.
func Decode(data []byte) (*Integer, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeRecord(rec)
}
