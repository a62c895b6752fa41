// Package lvnum is a safe arbitrary-precision numeric runtime: exact
// integers and rationals, plus values bound to shared algebraic
// structures (residue rings, polynomial rings, matrix spaces, finite and
// number fields, rational functions, ball arithmetic at a working
// precision).
//
// 🚀 What is in the box?
//
//	• Primitives: integer.Integer, rational.Rational
//	• Contexts: algebra.Context, a reference-counted structure descriptor
//	• Bound values: intmod, poly, matrix, finfld, numfld, ratfunc, ball
//	• One dispatch layer (arith) behind every Add/Sub/Mul/Div call shape
//	• A self-describing codec, binary (protowire) or YAML
//
// ✨ Guarantees
//
//   - Every binary operation checks Context compatibility first and reports
//     algebra.ErrContextMismatch instead of mixing structures.
//   - Contexts are compared structurally: two independently built Z/7Z
//     rings interoperate.
//   - A closed value reports algebra.ErrReleased; nothing is freed twice.
//   - Equal values hash equally, whatever representation built them.
//
// Layout:
//
//	backend/    the foreign numeric structures and their entry points
//	lifecycle/  single-owner handles with idempotent release
//	algebra/    Context, Params, error taxonomy, conversion modes
//	arith/      the generic Kernel that dispatches arithmetic
//	codec/      Record and its two encodings
//	integer/ rational/ intmod/ poly/ matrix/ finfld/ numfld/ ratfunc/ ball/
//
// This package itself only ties the codec together: Decode reads any
// encoded value and returns it behind the Value interface.
//
//	v, err := lvnum.Decode(data)
//	if err != nil {
//		return err
//	}
//	defer v.Close()
//	fmt.Println(v)
package lvnum
