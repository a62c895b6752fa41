// SPDX-License-Identifier: MIT

// Package algebra - Context: reference-counted, immutable descriptor of a
// ring, field, matrix space or working precision.
//
// Ownership model:
//   - A *Context is one handle on a shared descriptor. Clone hands out a new
//     handle and bumps the atomic reference count; Release drops this handle
//     and is idempotent per handle.
//   - The foreign descriptors (modulus, finite field, number field) are
//     cleared when the last handle goes, never earlier.
//   - Handles that were never released are dropped by a runtime.AddCleanup
//     safety net; explicit Release cancels it.
//
// Compatibility compares the identity-defining parameters (everything in
// Params except Var). It is structural: independently created Contexts with
// equal parameters interoperate.
package algebra

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math/big"
	"runtime"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/internal/terms"
)

// Context is one handle on a shared algebraic-structure descriptor.
// Handles may be used from several goroutines; the descriptor is immutable.
type Context struct {
	s        *shared
	released atomic.Bool
	cleanup  runtime.Cleanup
}

type shared struct {
	refs     atomic.Int64
	params   Params
	id       uuid.UUID
	log      *slog.Logger
	identity []byte

	mod *backend.ModCtx
	fq  *backend.FqCtx
	nf  *backend.NfCtx
}

// New validates p and builds a Context with one live handle.
func New(p Params, opts ...Option) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p = p.clone().withDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &shared{params: p, id: uuid.New(), log: o.log}
	s.identity = identityBytes(p)
	s.attachForeign()
	s.refs.Store(1)
	s.log.Debug("algebra: context created",
		slog.String("id", s.id.String()),
		slog.String("kind", p.Kind.String()),
		slog.String("structure", describe(p)))

	return s.handle(), nil
}

func (s *shared) handle() *Context {
	c := &Context{s: s}
	c.cleanup = runtime.AddCleanup(c, (*shared).drop, s)

	return c
}

// attachForeign creates the backend descriptors the kind needs.
func (s *shared) attachForeign() {
	p := s.params
	switch {
	case p.Kind == KindIntMod, p.Base == BaseIntMod:
		n := backend.FmpzInit()
		backend.FmpzSetBig(n, p.Modulus)
		s.mod = backend.ModCtxInit(n)
		backend.FmpzClear(n)
	case p.Kind == KindFiniteField, p.Base == BaseFiniteField:
		prime := backend.FmpzInit()
		backend.FmpzSetBig(prime, p.Modulus)
		s.fq = backend.FqCtxInit(prime, p.Degree)
		backend.FmpzClear(prime)
	case p.Kind == KindNumberField:
		f := backend.FmpqPolyInit()
		backend.FmpqPolySetCoeffs(f, p.Defining)
		s.nf = backend.NfCtxInit(f)
		backend.FmpqPolyClear(f)
	}
}

// drop releases one reference and clears the descriptor on the last one.
func (s *shared) drop() {
	if s.refs.Add(-1) != 0 {
		return
	}
	if s.mod != nil {
		backend.ModCtxClear(s.mod)
	}
	if s.fq != nil {
		backend.FqCtxClear(s.fq)
	}
	if s.nf != nil {
		backend.NfCtxClear(s.nf)
	}
	s.log.Debug("algebra: context released", slog.String("id", s.id.String()))
}

// Clone returns a new handle on the same descriptor.
func (c *Context) Clone() (*Context, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	c.s.refs.Add(1)
	out := c.s.handle()
	runtime.KeepAlive(c)

	return out, nil
}

// Release drops this handle. Only the first call has an effect.
func (c *Context) Release() {
	if c == nil || !c.released.CompareAndSwap(false, true) {
		return
	}
	c.cleanup.Stop()
	c.s.drop()
}

// Released reports whether this handle has been released.
func (c *Context) Released() bool { return c == nil || c.released.Load() }

// Check returns ErrNilValue or ErrReleased for unusable handles.
func (c *Context) Check() error {
	if c == nil {
		return ErrNilValue
	}
	if c.released.Load() {
		return ErrReleased
	}

	return nil
}

// Refs returns the number of live handles on the descriptor.
func (c *Context) Refs() int64 {
	if c == nil {
		return 0
	}

	return c.s.refs.Load()
}

// Compatible reports structural equality of identity-defining parameters.
// Released handles are compatible with nothing.
func (c *Context) Compatible(other *Context) bool {
	if c.Check() != nil || other.Check() != nil {
		return false
	}
	if c.s == other.s {
		return true
	}

	return bytes.Equal(c.s.identity, other.s.identity)
}

// CheckCompatible is Compatible with an error: ErrReleased, ErrNilValue or
// ErrContextMismatch.
func (c *Context) CheckCompatible(other *Context) error {
	if err := c.Check(); err != nil {
		return err
	}
	if err := other.Check(); err != nil {
		return err
	}
	if !c.Compatible(other) {
		return fmt.Errorf("%w: %s vs %s", ErrContextMismatch, c, other)
	}

	return nil
}

// Expect checks that c is live and of the given kind and base.
func (c *Context) Expect(kind Kind, base Base) error {
	if err := c.Check(); err != nil {
		return err
	}
	if c.s.params.Kind != kind || c.s.params.Base != base {
		return fmt.Errorf("%w: want %s over %s, have %s", ErrContextMismatch, kind, base, c)
	}

	return nil
}

// ---------- accessors (copies; never expose the descriptor) ----------

// ID identifies the descriptor in logs; clones share it.
func (c *Context) ID() uuid.UUID { return c.s.id }

// Params returns a deep copy of the parameters.
func (c *Context) Params() Params { return c.s.params.clone() }

// Kind returns the structure kind.
func (c *Context) Kind() Kind { return c.s.params.Kind }

// Base returns the coefficient base.
func (c *Context) Base() Base { return c.s.params.Base }

// Var returns the display variable.
func (c *Context) Var() string { return c.s.params.Var }

// Rows returns the matrix row count.
func (c *Context) Rows() int { return c.s.params.Rows }

// Cols returns the matrix column count.
func (c *Context) Cols() int { return c.s.params.Cols }

// Degree returns the finite field extension degree.
func (c *Context) Degree() int { return c.s.params.Degree }

// Precision returns the working precision in bits.
func (c *Context) Precision() uint { return c.s.params.Precision }

// Modulus returns a copy of the modulus or characteristic, nil when absent.
func (c *Context) Modulus() *big.Int {
	if c.s.params.Modulus == nil {
		return nil
	}

	return new(big.Int).Set(c.s.params.Modulus)
}

// Defining returns a copy of the number field defining polynomial.
func (c *Context) Defining() []*big.Rat { return c.s.params.clone().Defining }

// Digest returns an xxhash digest seeded with the identity parameters.
func (c *Context) Digest() *xxhash.Digest {
	d := xxhash.New()
	_, _ = d.Write(c.s.identity)

	return d
}

// Hash hashes parts, each length-prefixed, on top of the identity
// parameters. Bound values hash their canonical payloads through it.
func (c *Context) Hash(parts ...[]byte) uint64 {
	d := c.Digest()
	for _, p := range parts {
		_, _ = d.Write(binary.AppendUvarint(nil, uint64(len(p))))
		_, _ = d.Write(p)
	}

	return d.Sum64()
}

// ---------- foreign descriptors ----------

// ModCtx returns the modulus descriptor. The caller keeps c alive while
// using it.
func (c *Context) ModCtx() (*backend.ModCtx, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	if c.s.mod == nil {
		return nil, fmt.Errorf("%w: %s has no modulus", ErrContextMismatch, c)
	}

	return c.s.mod, nil
}

// FqCtx returns the finite field descriptor of a field or of a ring over one.
func (c *Context) FqCtx() (*backend.FqCtx, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	if c.s.fq == nil {
		return nil, fmt.Errorf("%w: %s has no finite field", ErrContextMismatch, c)
	}

	return c.s.fq, nil
}

// NfCtx returns the number field descriptor.
func (c *Context) NfCtx() (*backend.NfCtx, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	if c.s.nf == nil {
		return nil, fmt.Errorf("%w: %s is not a number field", ErrContextMismatch, c)
	}

	return c.s.nf, nil
}

// FieldModulus returns the defining polynomial of a finite field.
func (c *Context) FieldModulus() ([]*big.Int, error) {
	fq, err := c.FqCtx()
	if err != nil {
		return nil, err
	}
	out := backend.FqCtxModulus(fq)
	runtime.KeepAlive(c)

	return out, nil
}

// ---------- derived contexts ----------

// Reshape returns a matrix space Context with the same base and modulus and
// the given dimensions. Equal dimensions yield a clone.
func (c *Context) Reshape(rows, cols int) (*Context, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	if c.Kind() != KindMatrixSpace {
		return nil, fmt.Errorf("%w: cannot reshape %s", ErrContextMismatch, c)
	}
	if rows == c.Rows() && cols == c.Cols() {
		return c.Clone()
	}
	p := c.Params()
	p.Rows, p.Cols = rows, cols

	return New(p, WithLogger(c.s.log))
}

// BaseField returns a new GF(p^k) Context for the coefficients of a ring or
// matrix space over a finite field.
func (c *Context) BaseField() (*Context, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	if c.Base() != BaseFiniteField {
		return nil, fmt.Errorf("%w: %s is not over a finite field", ErrContextMismatch, c)
	}

	return NewFiniteField(c.s.params.Modulus, c.Degree(), "", WithLogger(c.s.log))
}

// ---------- identity and display ----------

// identityBytes serializes every identity-defining parameter. Var is left out.
func identityBytes(p Params) []byte {
	b := []byte{byte(p.Kind), byte(p.Base)}
	b = binary.AppendUvarint(b, uint64(p.Rows))
	b = binary.AppendUvarint(b, uint64(p.Cols))
	b = binary.AppendUvarint(b, uint64(p.Degree))
	b = binary.AppendUvarint(b, uint64(p.Precision))
	appendBytes := func(x []byte) {
		b = binary.AppendUvarint(b, uint64(len(x)))
		b = append(b, x...)
	}
	if p.Modulus != nil {
		appendBytes(backend.BigBytes(p.Modulus))
	} else {
		appendBytes(nil)
	}
	b = binary.AppendUvarint(b, uint64(len(p.Defining)))
	for _, q := range p.Defining {
		appendBytes(backend.BigBytes(q.Num()))
		appendBytes(backend.BigBytes(q.Denom()))
	}

	return b
}

// String returns the human form of the structure.
func (c *Context) String() string {
	if c == nil {
		return "<nil context>"
	}

	return describe(c.s.params)
}

func describe(p Params) string {
	over := func() string {
		switch p.Base {
		case BaseIntMod:
			return "Ring of integers mod " + p.Modulus.String()
		case BaseFiniteField:
			return fmt.Sprintf("Finite field of order %s^%d", p.Modulus, p.Degree)
		}

		return p.Base.String()
	}
	switch p.Kind {
	case KindIntMod:
		return "Ring of integers mod " + p.Modulus.String()
	case KindPolyRing:
		return fmt.Sprintf("Univariate polynomial ring in %s over %s", p.Var, over())
	case KindMatrixSpace:
		return fmt.Sprintf("Space of %d by %d matrices over %s", p.Rows, p.Cols, over())
	case KindFiniteField:
		return fmt.Sprintf("Finite field of order %s^%d", p.Modulus, p.Degree)
	case KindNumberField:
		return "Number field with defining polynomial " + terms.Format(terms.Rats(p.Defining), p.Var)
	case KindPrecision:
		return fmt.Sprintf("Ball context with %d bits of precision", p.Precision)
	default:
		return "unknown structure"
	}
}
