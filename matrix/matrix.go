// SPDX-License-Identifier: MIT

// Package matrix - shared plumbing of the matrix types.
//
// Shape rules:
//   - A matrix owns one foreign dense matrix whose shape is fixed by its
//     matrix space Context (rows, cols, entry base, modulus, field degree).
//   - Construction from a flat row-major slice requires exactly rows*cols
//     entries (ErrDimensionMismatch).
//   - Add and Sub need equal spaces; Mul needs a.Cols == b.Rows over the
//     same entries and derives an a.Rows x b.Cols space; Transpose derives
//     the cols x rows space. Derived spaces are fresh Contexts.
//
// Text form: one bracketed row per line, "[1, 2]\n[3, 4]".
package matrix

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
)

func expectSpace(c *algebra.Context, base algebra.Base) error {
	return c.Expect(algebra.KindMatrixSpace, base)
}

// checkCount validates a flat row-major entry count against the space.
func checkCount(c *algebra.Context, n int) error {
	if want := c.Rows() * c.Cols(); n != want {
		return fmt.Errorf("%w: %d entries for a %d by %d matrix", algebra.ErrDimensionMismatch, n, c.Rows(), c.Cols())
	}

	return nil
}

// sameEntries reports whether two spaces hold entries of the same ring.
func sameEntries(a, b *algebra.Context) bool {
	if a.Base() != b.Base() || a.Degree() != b.Degree() {
		return false
	}
	ma, mb := a.Modulus(), b.Modulus()
	if ma == nil || mb == nil {
		return ma == nil && mb == nil
	}

	return ma.Cmp(mb) == 0
}

// productSpace is the Result hook of every matrix kernel: Mul derives the
// a.Rows x b.Cols space, the other operations need equal spaces.
func productSpace(op arith.Op, a, b *algebra.Context) (*algebra.Context, error) {
	if op != arith.Mul {
		if err := a.CheckCompatible(b); err != nil {
			return nil, err
		}
		return a.Clone()
	}
	if err := a.Check(); err != nil {
		return nil, err
	}
	if err := b.Check(); err != nil {
		return nil, err
	}
	if !sameEntries(a, b) || a.Cols() != b.Rows() {
		return nil, fmt.Errorf("%w: cannot multiply %s by %s", algebra.ErrContextMismatch, a, b)
	}

	return a.Reshape(a.Rows(), b.Cols())
}

// transposeWith builds the cols x rows transpose of m through k.
func transposeWith[V any, R any](k *arith.Kernel[V, R], m V, f func(dst, src *R)) (V, error) {
	var zero V
	src, ctx, err := k.Unwrap(m)
	if err != nil {
		return zero, err
	}
	tctx, err := ctx.Reshape(ctx.Cols(), ctx.Rows())
	if err != nil {
		return zero, err
	}
	defer tctx.Release()
	out, err := k.New(tctx, func(_ *algebra.Context, dst *R) error {
		f(dst, src)
		return nil
	})
	runtime.KeepAlive(m)

	return out, err
}

// squareUse runs f on m's raw matrix when m is square.
func squareUse[V any, R any](k *arith.Kernel[V, R], m V, f func(c *algebra.Context, raw *R) error) error {
	raw, ctx, err := k.Unwrap(m)
	if err != nil {
		return err
	}
	if ctx.Rows() != ctx.Cols() {
		return fmt.Errorf("%w: %s is not square", algebra.ErrDimensionMismatch, ctx)
	}
	err = f(ctx, raw)
	runtime.KeepAlive(m)

	return err
}

// format renders row-major cells one bracketed row per line.
func format(rows, cols int, cells []string) string {
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('[')
		sb.WriteString(strings.Join(cells[i*cols:(i+1)*cols], ", "))
		sb.WriteByte(']')
	}

	return sb.String()
}

// parseCells splits the text form into row-major cells and checks the
// shape against the space.
func parseCells(c *algebra.Context, s string) ([]string, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) != c.Rows() {
		return nil, fmt.Errorf("%w: %d rows, want %d", algebra.ErrDimensionMismatch, len(lines), c.Rows())
	}
	cells := make([]string, 0, c.Rows()*c.Cols())
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		body, ok := strings.CutPrefix(ln, "[")
		if ok {
			body, ok = strings.CutSuffix(body, "]")
		}
		if !ok {
			return nil, fmt.Errorf("%w: row %q", algebra.ErrParse, ln)
		}
		row := strings.Split(body, ",")
		if len(row) != c.Cols() {
			return nil, fmt.Errorf("%w: %d columns, want %d", algebra.ErrDimensionMismatch, len(row), c.Cols())
		}
		for _, cell := range row {
			cells = append(cells, strings.TrimSpace(cell))
		}
	}

	return cells, nil
}

func decodeErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{algebra.ErrDecode}, args...)...)
}

func sameBytes(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if string(a[i]) != string(b[i]) {
			return false
		}
	}

	return true
}
