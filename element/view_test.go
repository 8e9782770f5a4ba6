package element

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestViewAdaptersAgree(t *testing.T) {
	flat := skewedHex()

	// Scatter the element nodes into a larger mesh array in scrambled order.
	perm := []int{11, 3, 7, 0, 14, 9, 2, 5}
	mesh := make([]float64, 16*3)
	for n := 0; n < 8; n++ {
		copy(mesh[perm[n]*3:], flat.Data[n*3:(n+1)*3])
	}
	gathered := NewGathered(mesh, perm, 3)

	dense := mat.NewDense(8, 3, append([]float64(nil), flat.Data...))

	for n := 0; n < 8; n++ {
		for d := 0; d < 3; d++ {
			assert.Equal(t, flat.At(n, d), gathered.At(n, d), "node %d comp %d", n, d)
			assert.Equal(t, flat.At(n, d), dense.At(n, d), "node %d comp %d", n, d)
		}
	}
}

func TestDisplacedView(t *testing.T) {
	ref := unitCube()
	disp := NewNodeArray(make([]float64, 24), 3)
	for i := range disp.Data {
		disp.Data[i] = 0.25 * float64(i)
	}
	cur := Displace(ref, disp)
	for n := 0; n < 8; n++ {
		for d := 0; d < 3; d++ {
			assert.Equal(t, ref.At(n, d)+disp.At(n, d), cur.At(n, d))
		}
	}
}

func TestKernelsBitwiseEqualAcrossViews(t *testing.T) {
	// The same element addressed through a flat array, a gathered view,
	// and a gonum matrix must produce bitwise identical results.
	e := NewHex8()
	flat := skewedHex()

	perm := []int{5, 12, 1, 9, 0, 15, 7, 3}
	mesh := make([]float64, 16*3)
	for n := 0; n < 8; n++ {
		copy(mesh[perm[n]*3:], flat.Data[n*3:(n+1)*3])
	}
	gathered := NewGathered(mesh, perm, 3)
	dense := mat.NewDense(8, 3, append([]float64(nil), flat.Data...))

	stresses := make([]float64, 8*SymComponents)
	for i := range stresses {
		stresses[i] = float64(i%7) - 2.5
	}

	fFlat := make([]float64, 24)
	fGathered := make([]float64, 24)
	fDense := make([]float64, 24)
	require.NoError(t, e.ComputeNodalForces(flat, stresses, fFlat))
	require.NoError(t, e.ComputeNodalForces(gathered, stresses, fGathered))
	require.NoError(t, e.ComputeNodalForces(dense, stresses, fDense))
	assert.Equal(t, fFlat, fGathered)
	assert.Equal(t, fFlat, fDense)

	mFlat := make([]float64, 8)
	mGathered := make([]float64, 8)
	require.NoError(t, e.ComputeLumpedMass(3.0, flat, mFlat))
	require.NoError(t, e.ComputeLumpedMass(3.0, gathered, mGathered))
	assert.Equal(t, mFlat, mGathered)

	gFlat := make([]float64, 8*FullComponents)
	gGathered := make([]float64, 8*FullComponents)
	require.NoError(t, e.ComputeDeformationGradients(flat, flat, gFlat))
	require.NoError(t, e.ComputeDeformationGradients(gathered, gathered, gGathered))
	assert.Equal(t, gFlat, gGathered)

	assert.Equal(t,
		e.ComputeCharacteristicLength(flat),
		e.ComputeCharacteristicLength(gathered))
}

// TestConcurrentGatheredKernels runs force kernels over a shared
// coordinate array from many goroutines and checks the results against a
// sequential pass. Run with -race to exercise the read-sharing claim.
func TestConcurrentGatheredKernels(t *testing.T) {
	e := NewHex8()

	// A 1x1xN bar of unit cubes sharing nodes between layers.
	const numElems = 32
	coords := make([]float64, (numElems+1)*4*3)
	for layer := 0; layer <= numElems; layer++ {
		z := float64(layer)
		copy(coords[layer*12:], []float64{
			0, 0, z,
			1, 0, z,
			1, 1, z,
			0, 1, z,
		})
	}
	conn := make([][]int, numElems)
	for el := range conn {
		b := el * 4
		conn[el] = []int{b, b + 1, b + 2, b + 3, b + 4, b + 5, b + 6, b + 7}
	}

	stresses := make([]float64, 8*SymComponents)
	for i := range stresses {
		stresses[i] = 1.5 * float64(i%5)
	}

	sequential := make([][]float64, numElems)
	for el := range conn {
		sequential[el] = make([]float64, 24)
		require.NoError(t, e.ComputeNodalForces(NewGathered(coords, conn[el], 3), stresses, sequential[el]))
	}

	concurrent := make([][]float64, numElems)
	var wg sync.WaitGroup
	for el := range conn {
		wg.Add(1)
		go func(el int) {
			defer wg.Done()
			concurrent[el] = make([]float64, 24)
			if err := e.ComputeNodalForces(NewGathered(coords, conn[el], 3), stresses, concurrent[el]); err != nil {
				t.Error(err)
			}
		}(el)
	}
	wg.Wait()

	for el := range conn {
		assert.Equal(t, sequential[el], concurrent[el], "element %d", el)
	}
}
