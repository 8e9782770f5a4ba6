package device

import (
	"strings"
	"testing"

	"github.com/codeinred/NimbleSM/element"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// batchCoords builds numElems distorted unit cubes, element-major.
func batchCoords(numElems int) []float64 {
	base := []float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
		0, 0, 1,
		1, 0, 1,
		1, 1, 1,
		0, 1, 1,
	}
	coords := make([]float64, numElems*len(base))
	for el := 0; el < numElems; el++ {
		for i, v := range base {
			// Deterministic sub-cell jitter keeps every jacobian positive.
			coords[el*len(base)+i] = v + 0.04*float64((el*31+i*7)%11)/11.0
		}
	}
	return coords
}

func TestKernelSourceEmbedsTables(t *testing.T) {
	elem := element.NewHex8()
	src := kernelSource(elem, 12)

	assert.Contains(t, src, "#define NUM_ELEMENTS 12")
	assert.Contains(t, src, "#define N_NODES 8")
	assert.Contains(t, src, "#define N_INT_PTS 8")
	assert.Contains(t, src, "const double wts[8]")
	assert.Contains(t, src, "const double shpVals[64]")
	assert.Contains(t, src, "const double shpDerivs[192]")
	assert.Contains(t, src, "@kernel void "+forceKernelName)
	assert.Contains(t, src, "@kernel void "+massKernelName)

	// One @outer/@inner pair per kernel.
	assert.Equal(t, 2, strings.Count(src, "@outer"))
	assert.Equal(t, 2, strings.Count(src, "@inner"))
}

func TestForceRunnerMatchesHost(t *testing.T) {
	dev := NewTestDevice()
	defer dev.Free()

	elem := element.NewHex8()
	const numElems = 16

	runner, err := NewForceRunner(dev, elem, numElems)
	require.NoError(t, err)
	defer runner.Free()

	coords := batchCoords(numElems)
	stresses := make([]float64, numElems*8*element.SymComponents)
	for i := range stresses {
		stresses[i] = 2.0e6 * (float64(i%13)/13.0 - 0.5)
	}

	got := make([]float64, numElems*24)
	require.NoError(t, runner.ComputeNodalForces(coords, stresses, got))

	want := make([]float64, 24)
	for el := 0; el < numElems; el++ {
		require.NoError(t, elem.ComputeNodalForces(
			element.NewNodeArray(coords[el*24:(el+1)*24], 3),
			stresses[el*48:(el+1)*48],
			want))
		for i := 0; i < 24; i++ {
			assert.InDelta(t, want[i], got[el*24+i], 1e-6, "element %d dof %d", el, i)
		}
	}
}

func TestLumpedMassRunnerMatchesHost(t *testing.T) {
	dev := NewTestDevice()
	defer dev.Free()

	elem := element.NewHex8()
	const numElems = 9
	const density = 7.8e3

	runner, err := NewForceRunner(dev, elem, numElems)
	require.NoError(t, err)
	defer runner.Free()

	coords := batchCoords(numElems)
	got := make([]float64, numElems*8)
	require.NoError(t, runner.ComputeLumpedMass(density, coords, got))

	want := make([]float64, 8)
	for el := 0; el < numElems; el++ {
		require.NoError(t, elem.ComputeLumpedMass(density,
			element.NewNodeArray(coords[el*24:(el+1)*24], 3), want))
		for n := 0; n < 8; n++ {
			assert.InDelta(t, want[n], got[el*8+n], want[n]*1e-9, "element %d node %d", el, n)
		}
	}
}

func TestForceRunnerRejectsShortBuffers(t *testing.T) {
	dev := NewTestDevice()
	defer dev.Free()

	runner, err := NewForceRunner(dev, element.NewHex8(), 4)
	require.NoError(t, err)
	defer runner.Free()

	coords := batchCoords(4)
	err = runner.ComputeNodalForces(coords, make([]float64, 7), make([]float64, len(coords)))
	require.Error(t, err)

	err = runner.ComputeLumpedMass(1.0, coords, make([]float64, 3))
	require.Error(t, err)

	_, err = NewForceRunner(dev, element.NewHex8(), 0)
	require.Error(t, err)
}
