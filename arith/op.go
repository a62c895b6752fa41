// SPDX-License-Identifier: MIT

package arith

// Op is an arithmetic operation.
type Op uint8

// Operations.
const (
	Add Op = iota
	Sub
	Mul
	Div
	opCount
)

var opNames = [opCount]string{Add: "add", Sub: "sub", Mul: "mul", Div: "div"}

// String returns the metric label of op.
func (op Op) String() string {
	if op >= opCount {
		return "unknown"
	}

	return opNames[op]
}

// Shape is the call shape of a dispatched operation.
type Shape uint8

// Call shapes.
const (
	// Alloc: value ⊕ value into a new value.
	Alloc Shape = iota
	// InPlace: value ⊕= value, mutating the left operand.
	InPlace
	// Native: value ⊕ int64 (allocating or in place).
	Native
	// NativeLeft: int64 ⊕ value into a new value.
	NativeLeft
)

func (s Shape) String() string {
	switch s {
	case Alloc:
		return "alloc"
	case InPlace:
		return "inplace"
	case Native:
		return "native"
	case NativeLeft:
		return "native_left"
	default:
		return "unknown"
	}
}

// Caps is the capability set of a kernel.
type Caps uint8

// Capabilities.
const (
	CapInPlace Caps = 1 << iota
	CapNative
	CapNativeLeft
	CapDiv
)

// Has reports whether every capability in want is present.
func (c Caps) Has(want Caps) bool { return c&want == want }
