// SPDX-License-Identifier: MIT

package backend

import "errors"

// ErrAlreadyInitialized is returned by Setup once the runtime has been set up,
// either by an earlier Setup call or implicitly by the first allocation.
var ErrAlreadyInitialized = errors.New("backend: runtime already initialized")

// Panic messages for precondition violations (no magic strings at call sites).
const (
	panicUseAfterClear = "backend: structure used after clear"
	panicDoubleClear   = "backend: double clear"
	panicDivByZero     = "backend: division by zero"
	panicShape         = "backend: operand shape mismatch"
	panicContext       = "backend: operand context mismatch"
	panicBadModulus    = "backend: modulus must be >= 2"
	panicNotPrime      = "backend: characteristic must be prime"
	panicBadDegree     = "backend: degree must be >= 1"
	panicNotInvertible = "backend: element not invertible"
	panicNotSquarefree = "backend: defining polynomial not squarefree"
	panicBadRadius     = "backend: radius must be finite and non-negative"
	panicBadBase       = "backend: base must be in 2..62"
)
