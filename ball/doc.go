// Package ball provides Real and Complex balls: midpoint-radius enclosures
// evaluated at the working precision of an algebra.KindPrecision Context.
//
// NewContext returns such a Context, DefaultPrecision bits unless told
// otherwise:
//
//	ctx, _ := ball.NewContext(ball.WithPrecision(64))
//	defer ctx.Release()
//	one, _ := ball.FromInt64(ctx, 1)
//	third, _ := one.DivInt64(3)
//	fmt.Println(third.IsExact()) // false
//
// Comparison is three-way:
//
//   - Equal holds only for the same exact point;
//   - Overlaps reports a common value;
//   - Contains reports enclosure.
//
// Division never reports ErrDivisionByZero. A divisor containing zero
// gives the non-finite ball, printed "[+/- inf]".
package ball
