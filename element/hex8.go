package element

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	hex8Dim    = 3
	hex8Nodes  = 8
	hex8IntPts = 8
	hex8DOF    = hex8Nodes * hex8Dim
)

// hex8Corners holds the natural coordinates of the corner nodes. The
// 2x2x2 integration points reuse the same ordering scaled by 1/sqrt(3).
var hex8Corners = [hex8Nodes][hex8Dim]float64{
	{-1, -1, -1},
	{1, -1, -1},
	{1, 1, -1},
	{-1, 1, -1},
	{-1, -1, 1},
	{1, -1, 1},
	{1, 1, 1},
	{-1, 1, 1},
}

// Hex8 is the 8-node trilinear hexahedron with full 2x2x2 Gauss
// integration. Construct with NewHex8; the integration tables of the zero
// value are empty.
type Hex8 struct {
	intPts    [hex8IntPts * hex8Dim]float64
	intWts    [hex8IntPts]float64
	shpVals   [hex8IntPts * hex8Nodes]float64
	shpDerivs [hex8IntPts * hex8Nodes * hex8Dim]float64
}

var _ Element = (*Hex8)(nil)

// NewHex8 precomputes the shape-function and derivative tables at the
// integration points.
func NewHex8() *Hex8 {
	e := &Hex8{}
	c := 1.0 / math.Sqrt(3.0)
	for ip := 0; ip < hex8IntPts; ip++ {
		for d := 0; d < hex8Dim; d++ {
			e.intPts[ip*hex8Dim+d] = c * hex8Corners[ip][d]
		}
		e.intWts[ip] = 1.0
	}
	for ip := 0; ip < hex8IntPts; ip++ {
		pt := e.intPts[ip*hex8Dim : (ip+1)*hex8Dim]
		hex8ShapeValues(pt, e.shpVals[ip*hex8Nodes:(ip+1)*hex8Nodes])
		hex8ShapeDerivatives(pt, e.shpDerivs[ip*hex8Nodes*hex8Dim:(ip+1)*hex8Nodes*hex8Dim])
	}
	return e
}

// hex8ShapeValues evaluates the trilinear shape functions at natural
// coordinate r.
func hex8ShapeValues(r, vals []float64) {
	for n := 0; n < hex8Nodes; n++ {
		s := &hex8Corners[n]
		vals[n] = 0.125 * (1 + s[0]*r[0]) * (1 + s[1]*r[1]) * (1 + s[2]*r[2])
	}
}

// hex8ShapeDerivatives evaluates dN/dxi at natural coordinate r,
// node-major.
func hex8ShapeDerivatives(r, derivs []float64) {
	for n := 0; n < hex8Nodes; n++ {
		s := &hex8Corners[n]
		derivs[n*hex8Dim+0] = 0.125 * s[0] * (1 + s[1]*r[1]) * (1 + s[2]*r[2])
		derivs[n*hex8Dim+1] = 0.125 * s[1] * (1 + s[0]*r[0]) * (1 + s[2]*r[2])
		derivs[n*hex8Dim+2] = 0.125 * s[2] * (1 + s[0]*r[0]) * (1 + s[1]*r[1])
	}
}

func (e *Hex8) Dim() int                            { return hex8Dim }
func (e *Hex8) NumNodesPerElement() int             { return hex8Nodes }
func (e *Hex8) NumIntegrationPointsPerElement() int { return hex8IntPts }

func (e *Hex8) IntegrationPoints() []float64 {
	out := make([]float64, len(e.intPts))
	copy(out, e.intPts[:])
	return out
}

func (e *Hex8) IntegrationWeights() []float64 {
	out := make([]float64, len(e.intWts))
	copy(out, e.intWts[:])
	return out
}

func (e *Hex8) ShapeValues() []float64 {
	out := make([]float64, len(e.shpVals))
	copy(out, e.shpVals[:])
	return out
}

func (e *Hex8) ShapeDerivatives() []float64 {
	out := make([]float64, len(e.shpDerivs))
	copy(out, e.shpDerivs[:])
	return out
}

func (e *Hex8) ComputeLumpedMass(density float64, referenceCoords NodeView, lumpedMass []float64) error {
	return hex8LumpedMass(e, density, referenceCoords, lumpedMass)
}

func (e *Hex8) ComputeConsistentMass(density float64, referenceCoords NodeView) (*mat.SymDense, error) {
	var m [hex8Nodes][hex8Nodes]float64
	if err := hex8ConsistentMass(e, density, referenceCoords, &m); err != nil {
		return nil, err
	}
	out := mat.NewSymDense(hex8Nodes, nil)
	for i := 0; i < hex8Nodes; i++ {
		for j := i; j < hex8Nodes; j++ {
			out.SetSym(i, j, m[i][j])
		}
	}
	return out, nil
}

func (e *Hex8) ComputeCharacteristicLength(coords NodeView) float64 {
	return hex8CharacteristicLength(coords)
}

func (e *Hex8) ComputeVolume(coords NodeView) (float64, error) {
	return hex8VolumeAverage(e, coords, 0, nil, nil)
}

func (e *Hex8) ComputeVolumeAverage(currentCoords NodeView, numQuantities int, intPtQuantities, volumeAveraged []float64) (float64, error) {
	return hex8VolumeAverage(e, currentCoords, numQuantities, intPtQuantities, volumeAveraged)
}

func (e *Hex8) ComputeDeformationGradients(referenceCoords, currentCoords NodeView, defGrads []float64) error {
	return hex8DeformationGradients(e, referenceCoords, currentCoords, defGrads)
}

func (e *Hex8) ComputeTangent(referenceCoords NodeView, materialTangent []float64) (*mat.Dense, error) {
	k := mat.NewDense(hex8DOF, hex8DOF, nil)
	if err := hex8Tangent(e, referenceCoords, materialTangent, k); err != nil {
		return nil, err
	}
	return k, nil
}

func (e *Hex8) ComputeNodalForces(currentCoords NodeView, intPtStresses, nodeForces []float64) error {
	return hex8NodalForces(e, currentCoords, intPtStresses, nodeForces)
}

// hex8Jacobian accumulates, at integration point ip, the matrix
// a[i][j] = sum_n coords(n,i)*dN_n/dxi_j mapping natural to physical
// coordinates.
func hex8Jacobian[V NodeView](e *Hex8, ip int, coords V, a *[3][3]float64) {
	base := ip * hex8Nodes * hex8Dim
	for n := 0; n < hex8Nodes; n++ {
		c1 := coords.At(n, 0)
		c2 := coords.At(n, 1)
		c3 := coords.At(n, 2)
		sfd1 := e.shpDerivs[base+hex8Dim*n]
		sfd2 := e.shpDerivs[base+hex8Dim*n+1]
		sfd3 := e.shpDerivs[base+hex8Dim*n+2]
		a[0][0] += c1 * sfd1
		a[0][1] += c1 * sfd2
		a[0][2] += c1 * sfd3
		a[1][0] += c2 * sfd1
		a[1][1] += c2 * sfd2
		a[1][2] += c2 * sfd3
		a[2][0] += c3 * sfd1
		a[2][1] += c3 * sfd2
		a[2][2] += c3 * sfd3
	}
}

// spatialGradients forms dN/dx at integration point ip from the inverse
// Jacobian: dN/dx_i = sum_j dN/dxi_j * aInv[j][i].
func (e *Hex8) spatialGradients(ip int, aInv *[3][3]float64, dNdx *[hex8Nodes][hex8Dim]float64) {
	base := ip * hex8Nodes * hex8Dim
	for n := 0; n < hex8Nodes; n++ {
		sfd1 := e.shpDerivs[base+hex8Dim*n]
		sfd2 := e.shpDerivs[base+hex8Dim*n+1]
		sfd3 := e.shpDerivs[base+hex8Dim*n+2]
		for i := 0; i < hex8Dim; i++ {
			dNdx[n][i] = sfd1*aInv[0][i] + sfd2*aInv[1][i] + sfd3*aInv[2][i]
		}
	}
}

func hex8ConsistentMass[V NodeView](e *Hex8, density float64, refCoords V, m *[hex8Nodes][hex8Nodes]float64) error {
	var jacDet [hex8IntPts]float64
	for ip := 0; ip < hex8IntPts; ip++ {
		var a, aInv [3][3]float64
		hex8Jacobian(e, ip, refCoords, &a)
		det := Invert3x3(&a, &aInv)
		if det <= 0 {
			return fmt.Errorf("hex8: integration point %d: %w", ip, ErrNonPositiveJacobian)
		}
		jacDet[ip] = det
	}
	// Grouping the node-independent factor keeps m exactly symmetric.
	for i := 0; i < hex8Nodes; i++ {
		for j := 0; j < hex8Nodes; j++ {
			m[i][j] = 0
			for ip := 0; ip < hex8IntPts; ip++ {
				coef := e.intWts[ip] * density * jacDet[ip]
				m[i][j] += coef * (e.shpVals[ip*hex8Nodes+i] * e.shpVals[ip*hex8Nodes+j])
			}
		}
	}
	return nil
}

func hex8LumpedMass[V NodeView](e *Hex8, density float64, refCoords V, lumped []float64) error {
	var m [hex8Nodes][hex8Nodes]float64
	if err := hex8ConsistentMass(e, density, refCoords, &m); err != nil {
		return err
	}
	for i := 0; i < hex8Nodes; i++ {
		sum := 0.0
		for j := 0; j < hex8Nodes; j++ {
			sum += m[i][j]
		}
		lumped[i] = sum
	}
	return nil
}

// TODO: replace the all-pairs minimum node spacing with a volume over max
// face area bound; the spacing estimate is conservative for distorted
// bricks.
func hex8CharacteristicLength[V NodeView](coords V) float64 {
	minDistSq := math.MaxFloat64
	for n := 0; n < hex8Nodes; n++ {
		x := coords.At(n, 0)
		y := coords.At(n, 1)
		z := coords.At(n, 2)
		for m := n + 1; m < hex8Nodes; m++ {
			dx := x - coords.At(m, 0)
			dy := y - coords.At(m, 1)
			dz := z - coords.At(m, 2)
			distSq := dx*dx + dy*dy + dz*dz
			if distSq < minDistSq {
				minDistSq = distSq
			}
		}
	}
	return math.Sqrt(minDistSq)
}

func hex8VolumeAverage[V NodeView](e *Hex8, coords V, numQuantities int, intPtQuantities, volAve []float64) (float64, error) {
	for q := 0; q < numQuantities; q++ {
		volAve[q] = 0
	}
	volume := 0.0
	for ip := 0; ip < hex8IntPts; ip++ {
		var a, aInv [3][3]float64
		hex8Jacobian(e, ip, coords, &a)
		jacDet := Invert3x3(&a, &aInv)
		if jacDet <= 0 {
			return 0, fmt.Errorf("hex8: integration point %d: %w", ip, ErrNonPositiveJacobian)
		}
		volume += e.intWts[ip] * jacDet
		for q := 0; q < numQuantities; q++ {
			volAve[q] += intPtQuantities[ip*numQuantities+q] * e.intWts[ip] * jacDet
		}
	}
	for q := 0; q < numQuantities; q++ {
		volAve[q] /= volume
	}
	return volume, nil
}

func hex8DeformationGradients[R, C NodeView](e *Hex8, refCoords R, curCoords C, defGrads []float64) error {
	for ip := 0; ip < hex8IntPts; ip++ {
		var a, b, bInv [3][3]float64
		hex8Jacobian(e, ip, curCoords, &a)
		hex8Jacobian(e, ip, refCoords, &b)
		if det := Invert3x3(&b, &bInv); det <= 0 {
			return fmt.Errorf("hex8: integration point %d: %w", ip, ErrNonPositiveJacobian)
		}
		var f [3][3]float64
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				f[i][j] = a[i][0]*bInv[0][j] + a[i][1]*bInv[1][j] + a[i][2]*bInv[2][j]
			}
		}
		out := defGrads[ip*FullComponents : (ip+1)*FullComponents]
		out[FullXX] = f[0][0]
		out[FullXY] = f[0][1]
		out[FullXZ] = f[0][2]
		out[FullYX] = f[1][0]
		out[FullYY] = f[1][1]
		out[FullYZ] = f[1][2]
		out[FullZX] = f[2][0]
		out[FullZY] = f[2][1]
		out[FullZZ] = f[2][2]
	}
	return nil
}

func hex8NodalForces[V NodeView](e *Hex8, curCoords V, intPtStresses, nodeForces []float64) error {
	var force [hex8Nodes][hex8Dim]float64
	var dNdx [hex8Nodes][hex8Dim]float64
	for ip := 0; ip < hex8IntPts; ip++ {
		var a, aInv [3][3]float64
		hex8Jacobian(e, ip, curCoords, &a)
		jacDet := Invert3x3(&a, &aInv)
		if jacDet <= 0 {
			return fmt.Errorf("hex8: integration point %d: %w", ip, ErrNonPositiveJacobian)
		}
		e.spatialGradients(ip, &aInv, &dNdx)
		sig := intPtStresses[ip*SymComponents : (ip+1)*SymComponents]
		wDet := jacDet * e.intWts[ip]
		for n := 0; n < hex8Nodes; n++ {
			f1 := dNdx[n][0]*sig[SymXX] + dNdx[n][1]*sig[SymYX] + dNdx[n][2]*sig[SymZX]
			f2 := dNdx[n][0]*sig[SymXY] + dNdx[n][1]*sig[SymYY] + dNdx[n][2]*sig[SymZY]
			f3 := dNdx[n][0]*sig[SymXZ] + dNdx[n][1]*sig[SymYZ] + dNdx[n][2]*sig[SymZZ]
			force[n][0] -= f1 * wDet
			force[n][1] -= f2 * wDet
			force[n][2] -= f3 * wDet
		}
	}
	for n := 0; n < hex8Nodes; n++ {
		nodeForces[n*hex8Dim+0] = force[n][0]
		nodeForces[n*hex8Dim+1] = force[n][1]
		nodeForces[n*hex8Dim+2] = force[n][2]
	}
	return nil
}

// hex8Tangent assembles B^T*C*B over the quadrature rule. Voigt rows are
// ordered XX, YY, ZZ, XY, YZ, ZX with engineering shear strain.
func hex8Tangent[V NodeView](e *Hex8, refCoords V, materialTangent []float64, k *mat.Dense) error {
	var dNdx [hex8Nodes][hex8Dim]float64
	var bm [SymComponents][hex8DOF]float64
	var cb [SymComponents][hex8DOF]float64
	for ip := 0; ip < hex8IntPts; ip++ {
		var a, aInv [3][3]float64
		hex8Jacobian(e, ip, refCoords, &a)
		jacDet := Invert3x3(&a, &aInv)
		if jacDet <= 0 {
			return fmt.Errorf("hex8: integration point %d: %w", ip, ErrNonPositiveJacobian)
		}
		e.spatialGradients(ip, &aInv, &dNdx)
		for n := 0; n < hex8Nodes; n++ {
			cx, cy, cz := hex8Dim*n, hex8Dim*n+1, hex8Dim*n+2
			bm[SymXX][cx] = dNdx[n][0]
			bm[SymYY][cy] = dNdx[n][1]
			bm[SymZZ][cz] = dNdx[n][2]
			bm[SymXY][cx] = dNdx[n][1]
			bm[SymXY][cy] = dNdx[n][0]
			bm[SymYZ][cy] = dNdx[n][2]
			bm[SymYZ][cz] = dNdx[n][1]
			bm[SymZX][cx] = dNdx[n][2]
			bm[SymZX][cz] = dNdx[n][0]
		}
		cm := materialTangent[ip*SymComponents*SymComponents : (ip+1)*SymComponents*SymComponents]
		for r := 0; r < SymComponents; r++ {
			for c := 0; c < hex8DOF; c++ {
				s := 0.0
				for q := 0; q < SymComponents; q++ {
					s += cm[r*SymComponents+q] * bm[q][c]
				}
				cb[r][c] = s
			}
		}
		w := e.intWts[ip] * jacDet
		for i := 0; i < hex8DOF; i++ {
			for j := 0; j < hex8DOF; j++ {
				s := 0.0
				for q := 0; q < SymComponents; q++ {
					s += bm[q][i] * cb[q][j]
				}
				k.Set(i, j, k.At(i, j)+w*s)
			}
		}
	}
	return nil
}
