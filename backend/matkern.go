// SPDX-License-Identifier: MIT

// Package backend - dense row-major matrix kernels over a ring[E].
//
// Layout: entry (i, j) lives at e[i*cols + j]. Loops run in fixed i→j→k
// order so results are deterministic.
package backend

import "math/big"

type dense[E any] struct {
	r, c int
	e    []E
}

func newDense[E any](r ring[E], rows, cols int) dense[E] {
	e := make([]E, rows*cols)
	for i := range e {
		e[i] = r.zero()
	}

	return dense[E]{r: rows, c: cols, e: e}
}

func (m dense[E]) at(i, j int) E { return m.e[i*m.c+j] }

func (m dense[E]) sameShape(o dense[E]) bool { return m.r == o.r && m.c == o.c }

func matClone[E any](r ring[E], m dense[E]) dense[E] {
	return dense[E]{r: m.r, c: m.c, e: cloneAll(r, m.e)}
}

func matAdd[E any](r ring[E], a, b dense[E]) dense[E] {
	out := dense[E]{r: a.r, c: a.c, e: make([]E, len(a.e))}
	for i := range a.e {
		out.e[i] = r.add(a.e[i], b.e[i])
	}

	return out
}

func matSub[E any](r ring[E], a, b dense[E]) dense[E] {
	out := dense[E]{r: a.r, c: a.c, e: make([]E, len(a.e))}
	for i := range a.e {
		out.e[i] = r.sub(a.e[i], b.e[i])
	}

	return out
}

func matNeg[E any](r ring[E], a dense[E]) dense[E] {
	out := dense[E]{r: a.r, c: a.c, e: make([]E, len(a.e))}
	for i := range a.e {
		out.e[i] = r.neg(a.e[i])
	}

	return out
}

func matScale[E any](r ring[E], a dense[E], s E) dense[E] {
	out := dense[E]{r: a.r, c: a.c, e: make([]E, len(a.e))}
	for i := range a.e {
		out.e[i] = r.mul(a.e[i], s)
	}

	return out
}

func matMul[E any](r ring[E], a, b dense[E]) dense[E] {
	out := newDense(r, a.r, b.c)
	for i := 0; i < a.r; i++ {
		for k := 0; k < a.c; k++ {
			aik := a.at(i, k)
			if r.isZero(aik) {
				continue
			}
			for j := 0; j < b.c; j++ {
				idx := i*out.c + j
				out.e[idx] = r.add(out.e[idx], r.mul(aik, b.at(k, j)))
			}
		}
	}

	return out
}

func matTranspose[E any](r ring[E], a dense[E]) dense[E] {
	out := dense[E]{r: a.c, c: a.r, e: make([]E, len(a.e))}
	for i := 0; i < a.r; i++ {
		for j := 0; j < a.c; j++ {
			out.e[j*out.c+i] = r.clone(a.at(i, j))
		}
	}

	return out
}

func matEqual[E any](r ring[E], a, b dense[E]) bool {
	if !a.sameShape(b) {
		return false
	}
	for i := range a.e {
		if !r.equal(a.e[i], b.e[i]) {
			return false
		}
	}

	return true
}

func matIdentity[E any](r ring[E], n int) dense[E] {
	out := newDense(r, n, n)
	for i := 0; i < n; i++ {
		out.e[i*n+i] = r.one()
	}

	return out
}

// matGaussJordan runs Gauss-Jordan elimination on a copy of a augmented with aug
// (may have zero columns). It returns the determinant factor of a, the
// reduced augmented block and whether a is invertible. Pivots must be units
// of r; a non-unit non-zero pivot column reports ok=false.
func matGaussJordan[E any](r ring[E], a, aug dense[E]) (det E, out dense[E], invertible, ok bool) {
	n := a.r
	w := a.c + aug.c
	work := make([]E, n*w)
	for i := 0; i < n; i++ {
		for j := 0; j < a.c; j++ {
			work[i*w+j] = r.clone(a.at(i, j))
		}
		for j := 0; j < aug.c; j++ {
			work[i*w+a.c+j] = r.clone(aug.at(i, j))
		}
	}
	det = r.one()
	for col := 0; col < n; col++ {
		pivot := -1
		var pinv E
		sawNonZero := false
		for row := col; row < n; row++ {
			v := work[row*w+col]
			if r.isZero(v) {
				continue
			}
			sawNonZero = true
			if x, good := r.inv(v); good {
				pivot, pinv = row, x
				break
			}
		}
		if pivot < 0 {
			if sawNonZero {
				return det, out, false, false
			}
			return r.zero(), out, false, true
		}
		if pivot != col {
			for j := 0; j < w; j++ {
				work[col*w+j], work[pivot*w+j] = work[pivot*w+j], work[col*w+j]
			}
			det = r.neg(det)
		}
		det = r.mul(det, work[col*w+col])
		for j := 0; j < w; j++ {
			work[col*w+j] = r.mul(work[col*w+j], pinv)
		}
		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			f := work[row*w+col]
			if r.isZero(f) {
				continue
			}
			for j := 0; j < w; j++ {
				work[row*w+j] = r.sub(work[row*w+j], r.mul(f, work[col*w+j]))
			}
		}
	}
	out = dense[E]{r: n, c: aug.c, e: make([]E, n*aug.c)}
	for i := 0; i < n; i++ {
		for j := 0; j < aug.c; j++ {
			out.e[i*aug.c+j] = work[i*w+a.c+j]
		}
	}

	return det, out, true, true
}

// detBareiss computes an integer determinant with fraction-free elimination.
func detBareiss(m dense[*big.Int]) *big.Int {
	n := m.r
	if n == 0 {
		return big.NewInt(1)
	}
	a := matClone(zring, m)
	sign := 1
	prev := big.NewInt(1)
	for k := 0; k < n-1; k++ {
		if a.e[k*n+k].Sign() == 0 {
			swap := -1
			for i := k + 1; i < n; i++ {
				if a.e[i*n+k].Sign() != 0 {
					swap = i
					break
				}
			}
			if swap < 0 {
				return new(big.Int)
			}
			for j := 0; j < n; j++ {
				a.e[k*n+j], a.e[swap*n+j] = a.e[swap*n+j], a.e[k*n+j]
			}
			sign = -sign
		}
		pivot := a.e[k*n+k]
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				t := new(big.Int).Mul(a.e[i*n+j], pivot)
				t.Sub(t, new(big.Int).Mul(a.e[i*n+k], a.e[k*n+j]))
				a.e[i*n+j] = t.Quo(t, prev)
			}
		}
		prev = pivot
	}
	det := new(big.Int).Set(a.e[n*n-1])
	if sign < 0 {
		det.Neg(det)
	}

	return det
}
