// Package integer provides Integer, an arbitrary-precision integer.
//
// An Integer owns exactly one foreign fmpz structure and no Context.
// Arithmetic routes through the arith dispatch layer:
//
//   - Add/Sub/Mul/Div return new values (Div is floor division);
//   - AddAssign and friends mutate the receiver;
//   - AddInt64 and friends take a native right operand, Int64Sub and
//     Int64Div a native left operand.
//
// Conversions back to native types fail with ErrOverflow out of range and,
// in algebra.Exact mode, with ErrInexact when rounding would be needed.
//
//	a := integer.FromInt64(40)
//	defer a.Close()
//	b, _ := a.AddInt64(2)
//	defer b.Close()
//	fmt.Println(b) // 42
package integer
