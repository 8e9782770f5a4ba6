package device

import (
	"fmt"
	"strings"

	"github.com/codeinred/NimbleSM/element"
)

const (
	forceKernelName = "elementInternalForce"
	massKernelName  = "elementLumpedMass"
)

// kernelSource generates OKL for one topology and batch size. Integration
// tables are embedded as const arrays and sizes as compile-time defines,
// so the kernels take only buffer arguments.
func kernelSource(elem element.Element, numElements int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("#define NUM_ELEMENTS %d\n", numElements))
	sb.WriteString(fmt.Sprintf("#define N_NODES %d\n", elem.NumNodesPerElement()))
	sb.WriteString(fmt.Sprintf("#define N_INT_PTS %d\n", elem.NumIntegrationPointsPerElement()))
	sb.WriteString(fmt.Sprintf("#define DIM %d\n", elem.Dim()))
	sb.WriteString(fmt.Sprintf("#define SYM_COMPONENTS %d\n\n", element.SymComponents))

	writeConstArray(&sb, "wts", elem.IntegrationWeights())
	writeConstArray(&sb, "shpVals", elem.ShapeValues())
	writeConstArray(&sb, "shpDerivs", elem.ShapeDerivatives())

	sb.WriteString(kernelBodies)
	return sb.String()
}

// writeConstArray formats a table as a flat const C array.
func writeConstArray(sb *strings.Builder, name string, vals []float64) {
	sb.WriteString(fmt.Sprintf("const double %s[%d] = {\n    ", name, len(vals)))
	for i, v := range vals {
		if i > 0 {
			if i%6 == 0 {
				sb.WriteString(",\n    ")
			} else {
				sb.WriteString(", ")
			}
		}
		sb.WriteString(fmt.Sprintf("%.17e", v))
	}
	sb.WriteString("};\n\n")
}

const kernelBodies = `
// Internal force: f_n -= w * detJ * (dN/dx . sigma), one thread per node.
@kernel void elementInternalForce(@restrict const double *coords,
                                  @restrict const double *stresses,
                                  @restrict double *forces) {
    for (int e = 0; e < NUM_ELEMENTS; ++e; @outer) {
        for (int n = 0; n < N_NODES; ++n; @inner) {
            double fx = 0.0;
            double fy = 0.0;
            double fz = 0.0;
            for (int ip = 0; ip < N_INT_PTS; ++ip) {
                double a00 = 0.0, a01 = 0.0, a02 = 0.0;
                double a10 = 0.0, a11 = 0.0, a12 = 0.0;
                double a20 = 0.0, a21 = 0.0, a22 = 0.0;
                for (int m = 0; m < N_NODES; ++m) {
                    const double c0 = coords[(e * N_NODES + m) * DIM + 0];
                    const double c1 = coords[(e * N_NODES + m) * DIM + 1];
                    const double c2 = coords[(e * N_NODES + m) * DIM + 2];
                    const double d0 = shpDerivs[(ip * N_NODES + m) * DIM + 0];
                    const double d1 = shpDerivs[(ip * N_NODES + m) * DIM + 1];
                    const double d2 = shpDerivs[(ip * N_NODES + m) * DIM + 2];
                    a00 += c0 * d0; a01 += c0 * d1; a02 += c0 * d2;
                    a10 += c1 * d0; a11 += c1 * d1; a12 += c1 * d2;
                    a20 += c2 * d0; a21 += c2 * d1; a22 += c2 * d2;
                }
                const double det = a00 * (a11 * a22 - a12 * a21)
                                 - a01 * (a10 * a22 - a12 * a20)
                                 + a02 * (a10 * a21 - a11 * a20);
                const double inv = 1.0 / det;
                const double i00 = inv * (a11 * a22 - a12 * a21);
                const double i01 = inv * (a02 * a21 - a01 * a22);
                const double i02 = inv * (a01 * a12 - a02 * a11);
                const double i10 = inv * (a12 * a20 - a10 * a22);
                const double i11 = inv * (a00 * a22 - a02 * a20);
                const double i12 = inv * (a02 * a10 - a00 * a12);
                const double i20 = inv * (a10 * a21 - a11 * a20);
                const double i21 = inv * (a01 * a20 - a00 * a21);
                const double i22 = inv * (a00 * a11 - a01 * a10);
                const double d0 = shpDerivs[(ip * N_NODES + n) * DIM + 0];
                const double d1 = shpDerivs[(ip * N_NODES + n) * DIM + 1];
                const double d2 = shpDerivs[(ip * N_NODES + n) * DIM + 2];
                const double dndx = d0 * i00 + d1 * i10 + d2 * i20;
                const double dndy = d0 * i01 + d1 * i11 + d2 * i21;
                const double dndz = d0 * i02 + d1 * i12 + d2 * i22;
                const double sxx = stresses[(e * N_INT_PTS + ip) * SYM_COMPONENTS + 0];
                const double syy = stresses[(e * N_INT_PTS + ip) * SYM_COMPONENTS + 1];
                const double szz = stresses[(e * N_INT_PTS + ip) * SYM_COMPONENTS + 2];
                const double sxy = stresses[(e * N_INT_PTS + ip) * SYM_COMPONENTS + 3];
                const double syz = stresses[(e * N_INT_PTS + ip) * SYM_COMPONENTS + 4];
                const double szx = stresses[(e * N_INT_PTS + ip) * SYM_COMPONENTS + 5];
                const double w = det * wts[ip];
                fx -= w * (dndx * sxx + dndy * sxy + dndz * szx);
                fy -= w * (dndx * sxy + dndy * syy + dndz * syz);
                fz -= w * (dndx * szx + dndy * syz + dndz * szz);
            }
            forces[(e * N_NODES + n) * DIM + 0] = fx;
            forces[(e * N_NODES + n) * DIM + 1] = fy;
            forces[(e * N_NODES + n) * DIM + 2] = fz;
        }
    }
}

// Lumped mass via partition of unity: row-summing N_i * N_j over j leaves
// w * density * N_n * detJ.
@kernel void elementLumpedMass(const double density,
                               @restrict const double *coords,
                               @restrict double *masses) {
    for (int e = 0; e < NUM_ELEMENTS; ++e; @outer) {
        for (int n = 0; n < N_NODES; ++n; @inner) {
            double m = 0.0;
            for (int ip = 0; ip < N_INT_PTS; ++ip) {
                double a00 = 0.0, a01 = 0.0, a02 = 0.0;
                double a10 = 0.0, a11 = 0.0, a12 = 0.0;
                double a20 = 0.0, a21 = 0.0, a22 = 0.0;
                for (int j = 0; j < N_NODES; ++j) {
                    const double c0 = coords[(e * N_NODES + j) * DIM + 0];
                    const double c1 = coords[(e * N_NODES + j) * DIM + 1];
                    const double c2 = coords[(e * N_NODES + j) * DIM + 2];
                    const double d0 = shpDerivs[(ip * N_NODES + j) * DIM + 0];
                    const double d1 = shpDerivs[(ip * N_NODES + j) * DIM + 1];
                    const double d2 = shpDerivs[(ip * N_NODES + j) * DIM + 2];
                    a00 += c0 * d0; a01 += c0 * d1; a02 += c0 * d2;
                    a10 += c1 * d0; a11 += c1 * d1; a12 += c1 * d2;
                    a20 += c2 * d0; a21 += c2 * d1; a22 += c2 * d2;
                }
                const double det = a00 * (a11 * a22 - a12 * a21)
                                 - a01 * (a10 * a22 - a12 * a20)
                                 + a02 * (a10 * a21 - a11 * a20);
                m += wts[ip] * density * shpVals[ip * N_NODES + n] * det;
            }
            masses[e * N_NODES + n] = m;
        }
    }
}
`
