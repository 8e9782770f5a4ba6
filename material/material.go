// Package material defines the constitutive-model contract consumed by
// callers of the element kernels. The element package itself never
// evaluates a material; drivers pair the two per integration point.
package material

// Model maps a deformation state to Cauchy stress at one integration
// point. defGrad holds nine values in the element package's full-tensor
// component order; stress receives six values in the symmetric order.
type Model interface {
	// Density returns the reference mass density.
	Density() float64

	// Stress evaluates the Cauchy stress for the given deformation
	// gradient, writing into the caller-supplied slice.
	Stress(defGrad, stress []float64)
}

// TangentModulus is implemented by models that can linearize. Tangent
// writes a 6x6 row-major Voigt operator with engineering shear, rows and
// columns ordered XX, YY, ZZ, XY, YZ, ZX, matching what the element
// tangent kernel contracts against.
type TangentModulus interface {
	Tangent(defGrad, tangent []float64)
}
