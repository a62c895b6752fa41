// Package intmod provides IntMod, an element of the ring Z/nZ.
//
// Every IntMod is bound to a Context built by algebra.NewIntModRing and
// stores its canonical residue. Arithmetic between elements of different
// rings fails with algebra.ErrContextMismatch before reaching the backend.
//
//	ring, _ := algebra.NewIntModRing(big.NewInt(7))
//	defer ring.Release()
//	a, _ := intmod.FromInt64(ring, 10) // 3
//	inv, _ := a.Inv()                 // 5
package intmod
