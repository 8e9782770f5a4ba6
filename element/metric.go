package element

// Invert3x3 computes the determinant of m by cofactor expansion and, when
// it is nonzero, fills inv with the inverse. Callers decide how to treat a
// non-positive determinant; every quadrature kernel in this package maps
// one to ErrNonPositiveJacobian.
func Invert3x3(m, inv *[3][3]float64) float64 {
	minor0 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	minor1 := m[1][0]*m[2][2] - m[1][2]*m[2][0]
	minor2 := m[1][0]*m[2][1] - m[1][1]*m[2][0]
	det := m[0][0]*minor0 - m[0][1]*minor1 + m[0][2]*minor2
	if det == 0 {
		return 0
	}
	invDet := 1.0 / det
	inv[0][0] = invDet * minor0
	inv[0][1] = invDet * (m[0][2]*m[2][1] - m[0][1]*m[2][2])
	inv[0][2] = invDet * (m[0][1]*m[1][2] - m[0][2]*m[1][1])
	inv[1][0] = -invDet * minor1
	inv[1][1] = invDet * (m[0][0]*m[2][2] - m[0][2]*m[2][0])
	inv[1][2] = invDet * (m[0][2]*m[1][0] - m[0][0]*m[1][2])
	inv[2][0] = invDet * minor2
	inv[2][1] = invDet * (m[0][1]*m[2][0] - m[0][0]*m[2][1])
	inv[2][2] = invDet * (m[0][0]*m[1][1] - m[0][1]*m[1][0])
	return det
}
