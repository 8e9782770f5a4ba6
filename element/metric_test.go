package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestInvert3x3MatchesGonum(t *testing.T) {
	cases := [][3][3]float64{
		{{2, 0.3, -0.1}, {0.5, 1.8, 0.2}, {-0.3, 0.1, 2.2}},
		{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		{{0.5, 0, 0}, {0, 0.25, 0}, {0, 0, 4}},
		{{1.2, -2.0, 0.8}, {3.1, 0.4, -1.7}, {-0.6, 2.2, 0.9}},
	}
	for i, m := range cases {
		var inv [3][3]float64
		det := Invert3x3(&m, &inv)

		dense := mat.NewDense(3, 3, []float64{
			m[0][0], m[0][1], m[0][2],
			m[1][0], m[1][1], m[1][2],
			m[2][0], m[2][1], m[2][2],
		})
		assert.InDelta(t, mat.Det(dense), det, 1e-12, "case %d determinant", i)

		var want mat.Dense
		require.NoError(t, want.Inverse(dense))
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				assert.InDelta(t, want.At(r, c), inv[r][c], 1e-12, "case %d inv[%d][%d]", i, r, c)
			}
		}
	}
}

func TestInvert3x3Singular(t *testing.T) {
	// The second row is twice the first.
	m := [3][3]float64{{1, 2, 3}, {2, 4, 6}, {0, 1, 1}}
	var inv [3][3]float64
	assert.Zero(t, Invert3x3(&m, &inv))
}

func TestInvert3x3NegativeDeterminant(t *testing.T) {
	// A mirrored axis gives a negative determinant, which kernels use to
	// detect inverted elements.
	m := [3][3]float64{{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	var inv [3][3]float64
	assert.Equal(t, -1.0, Invert3x3(&m, &inv))
	assert.Equal(t, -1.0, inv[0][0])
	assert.Equal(t, 1.0, inv[1][1])
	assert.Equal(t, 1.0, inv[2][2])
}
