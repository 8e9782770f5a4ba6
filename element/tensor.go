package element

// Component indices for a symmetric second-order tensor stored in six
// slots. Transpose pairs alias the same slot, so code may address stress
// by either member of a pair and read the same value.
const (
	SymXX = 0
	SymYY = 1
	SymZZ = 2
	SymXY = 3
	SymYZ = 4
	SymZX = 5
	SymYX = SymXY
	SymZY = SymYZ
	SymXZ = SymZX

	// SymComponents is the storage size of a symmetric tensor.
	SymComponents = 6
)

// Component indices for a full (non-symmetric) second-order tensor stored
// in nine slots. The first six match the symmetric layout so symmetric
// quantities can be widened in place.
const (
	FullXX = 0
	FullYY = 1
	FullZZ = 2
	FullXY = 3
	FullYZ = 4
	FullZX = 5
	FullYX = 6
	FullZY = 7
	FullXZ = 8

	// FullComponents is the storage size of a full tensor.
	FullComponents = 9
)

// SymToFull widens a symmetric six-slot tensor into the nine-slot full
// layout, duplicating each off-diagonal value into its transpose slot.
func SymToFull(sym, full []float64) {
	full[FullXX] = sym[SymXX]
	full[FullYY] = sym[SymYY]
	full[FullZZ] = sym[SymZZ]
	full[FullXY] = sym[SymXY]
	full[FullYZ] = sym[SymYZ]
	full[FullZX] = sym[SymZX]
	full[FullYX] = sym[SymXY]
	full[FullZY] = sym[SymYZ]
	full[FullXZ] = sym[SymZX]
}
