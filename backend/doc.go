// SPDX-License-Identifier: MIT

// Package backend is the low-level primitive-operations layer of lvnum.
//
// Every numeric structure (integer, rational, ball, polynomial, matrix,
// field element) and every context descriptor (modulus, finite field,
// number field) is allocated here and must be initialized with its *Init
// function and released with its *Clear function exactly once.
//
// The functions in this package deliberately behave like a foreign C
// library:
//
//   - calls on a cleared structure panic ("used after clear");
//   - clearing twice panics ("double clear");
//   - operands with mismatched shapes or contexts panic.
//
// Callers are expected to check every precondition they can before calling
// in. The wrapper packages (integer, rational, poly, matrix, ...) do exactly
// that and never let user input reach one of these panics.
//
// Process-wide state (logger, metrics) is configured once through Setup.
// The first allocation performs a default Setup when none happened yet.
//
// Arithmetic is implemented on math/big. Output operands may alias inputs.
package backend
