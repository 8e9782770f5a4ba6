// Package element implements per-element kinematics and internal-force
// kernels for explicit Lagrangian solid dynamics: deformation gradients,
// lumped and consistent mass, internal nodal forces, material tangents,
// and the element-level geometric queries a time integrator needs.
//
// All kernels read nodal data through the NodeView capability, so the same
// code paths serve flat per-element arrays and gathered views into a shared
// mesh-wide array. Outputs are written into caller-supplied buffers; the
// kernels themselves never allocate.
package element

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrNonPositiveJacobian reports an inverted or degenerate element: the
// map from natural to physical coordinates lost orientation at an
// integration point.
var ErrNonPositiveJacobian = errors.New("non-positive jacobian determinant")

// Topology identifies an element geometry with a fixed node count,
// integration rule, and shape-function basis.
type Topology uint8

const (
	Hex Topology = iota // 8-node trilinear hexahedron, 2x2x2 Gauss rule
)

func (t Topology) String() string {
	switch t {
	case Hex:
		return "hex8"
	}
	return fmt.Sprintf("topology(%d)", uint8(t))
}

// Element is the per-topology kernel set. Implementations are stateless
// apart from precomputed integration tables, so a single instance may be
// shared across goroutines working on different elements.
type Element interface {
	Dim() int
	NumNodesPerElement() int
	NumIntegrationPointsPerElement() int

	// Integration tables in natural coordinates. All return copies.
	IntegrationPoints() []float64   // [nint*dim], point-major
	IntegrationWeights() []float64  // [nint]
	ShapeValues() []float64         // [nint*nnode], point-major
	ShapeDerivatives() []float64    // [nint*nnode*dim], point then node major

	// ComputeLumpedMass fills lumpedMass (length nnode) with the row sums
	// of the consistent mass matrix for the given density.
	ComputeLumpedMass(density float64, referenceCoords NodeView, lumpedMass []float64) error

	// ComputeConsistentMass integrates density*N_i*N_j over the element in
	// the reference configuration.
	ComputeConsistentMass(density float64, referenceCoords NodeView) (*mat.SymDense, error)

	// ComputeCharacteristicLength estimates the length controlling the
	// stable explicit time step for the given nodal coordinates.
	ComputeCharacteristicLength(coords NodeView) float64

	// ComputeVolume integrates the element volume in the given
	// configuration.
	ComputeVolume(coords NodeView) (float64, error)

	// ComputeVolumeAverage volume-averages numQuantities values per
	// integration point (intPtQuantities, point-major) into volumeAveraged
	// and returns the element volume.
	ComputeVolumeAverage(currentCoords NodeView, numQuantities int, intPtQuantities, volumeAveraged []float64) (float64, error)

	// ComputeDeformationGradients fills defGrads with one full-layout
	// tensor per integration point (nint*FullComponents values) relating
	// the reference and current configurations.
	ComputeDeformationGradients(referenceCoords, currentCoords NodeView, defGrads []float64) error

	// ComputeTangent assembles the element stiffness B^T*C*B from one 6x6
	// row-major Voigt material tangent per integration point
	// (nint*SymComponents*SymComponents values). Degrees of freedom are
	// node-major: node*dim+component.
	ComputeTangent(referenceCoords NodeView, materialTangent []float64) (*mat.Dense, error)

	// ComputeNodalForces integrates -B^T*sigma over the element in the
	// current configuration. intPtStresses carries one symmetric-layout
	// Cauchy stress per integration point (nint*SymComponents values);
	// nodeForces (length nnode*dim, node-major) is overwritten.
	ComputeNodalForces(currentCoords NodeView, intPtStresses, nodeForces []float64) error
}

// New returns the kernel set for a topology.
func New(t Topology) (Element, error) {
	switch t {
	case Hex:
		return NewHex8(), nil
	}
	return nil, fmt.Errorf("unsupported element topology %v", t)
}
