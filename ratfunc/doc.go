// Package ratfunc provides rational functions num/den with integer
// polynomial parts.
//
// A RatFunc is bound to a Z[x] Context from
// algebra.NewPolyRing(algebra.BaseInteger, v) and is always kept in
// canonical form: num and den coprime over Z, den with a positive leading
// coefficient, zero stored as 0/1. Display drops a unit denominator and
// parenthesizes non-constant parts:
//
//	zx, _ := algebra.NewPolyRing(algebra.BaseInteger, "x")
//	defer zx.Release()
//	num, _ := poly.NewInt(zx, -1, 0, 1) // x^2 - 1
//	den, _ := poly.NewInt(zx, 2, 2)     // 2*x + 2
//	f, _ := ratfunc.New(zx, num, den)
//	fmt.Println(f)                      // (x - 1)/2
//
// Division by the zero function and evaluation at a pole report
// algebra.ErrDivisionByZero.
package ratfunc
