package decision

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// principalEigenvector returns the eigenvector for the eigenvalue of largest
// magnitude, normalized so its components sum to one. The solver may return
// eigenpairs in any order, so the dominant one is selected explicitly rather
// than taken from a fixed position. The matrices built by Evaluate are
// positive and reciprocal, so by Perron-Frobenius the dominant eigenvalue is
// real and its eigenvector components share a sign; dividing by the signed
// component sum yields the positive unit-sum priority vector either way.
func principalEigenvector(m *mat.Dense) ([]float64, error) {
	var eig mat.Eigen
	if ok := eig.Factorize(m, mat.EigenRight); !ok {
		return nil, errors.New("eigendecomposition did not converge")
	}

	values := eig.Values(nil)
	dominant := 0
	for i, v := range values {
		if cmplx.Abs(v) > cmplx.Abs(values[dominant]) {
			dominant = i
		}
	}

	var vectors mat.CDense
	eig.VectorsTo(&vectors)

	n, _ := m.Dims()
	out := make([]float64, n)
	sum := 0.0
	for i := 0; i < n; i++ {
		out[i] = real(vectors.At(i, dominant))
		sum += out[i]
	}
	if sum == 0 {
		return nil, errors.New("degenerate principal eigenvector")
	}
	for i := range out {
		out[i] /= sum
	}
	return out, nil
}
