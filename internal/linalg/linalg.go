// Package linalg wraps gonum's dense vector/matrix types with the small
// set of operations the value kernel needs: allocation, copying,
// elementwise arithmetic, scaling, dot products, matrix-matrix and
// matrix-vector products, square-matrix inversion/solve via LU
// decomposition, and matrix exponentiation by repeated squaring. No
// example repo in the pack ships a BLAS/LAPACK binding, so this package
// is the one place the module reaches outside the retrieved corpus for a
// real numerical library rather than hand-rolling one.
package linalg

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrZeroVector is returned by Dot-based division when the divisor
// vector is exactly zero.
var ErrZeroVector = errors.New("division by zero")

// Vector is a dense real vector of fixed length.
type Vector struct {
	data *mat.VecDense
}

// NewVector allocates a zero-filled vector of length n.
func NewVector(n int) *Vector {
	return &Vector{data: mat.NewVecDense(n, nil)}
}

// VectorFromSlice copies vs into a new Vector.
func VectorFromSlice(vs []float64) *Vector {
	cp := make([]float64, len(vs))
	copy(cp, vs)
	return &Vector{data: mat.NewVecDense(len(cp), cp)}
}

// Len returns the vector's length.
func (v *Vector) Len() int { return v.data.Len() }

// At returns the i'th element.
func (v *Vector) At(i int) float64 { return v.data.AtVec(i) }

// Set assigns the i'th element.
func (v *Vector) Set(i int, val float64) { v.data.SetVec(i, val) }

// Slice copies the vector's contents out as a plain []float64.
func (v *Vector) Slice() []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

// Clone deep-copies the vector.
func (v *Vector) Clone() *Vector {
	out := NewVector(v.Len())
	out.data.CopyVec(v.data)
	return out
}

// IsZero reports whether every element is exactly zero, matching the
// original's zero-vector check used to guard vector division.
func (v *Vector) IsZero() bool {
	for i := 0; i < v.Len(); i++ {
		if v.At(i) != 0 {
			return false
		}
	}
	return true
}

// AddScalar returns a new vector with s added to every element.
func (v *Vector) AddScalar(s float64) *Vector {
	out := NewVector(v.Len())
	for i := 0; i < v.Len(); i++ {
		out.Set(i, v.At(i)+s)
	}
	return out
}

// ScaleBy returns a new vector scaled by s.
func (v *Vector) ScaleBy(s float64) *Vector {
	out := NewVector(v.Len())
	out.data.ScaleVec(s, v.data)
	return out
}

// Add returns the elementwise sum of two same-length vectors.
func (v *Vector) Add(other *Vector) (*Vector, error) {
	if v.Len() != other.Len() {
		return nil, fmt.Errorf("nonconformant arguments")
	}
	out := NewVector(v.Len())
	out.data.AddVec(v.data, other.data)
	return out, nil
}

// Sub returns the elementwise difference of two same-length vectors.
func (v *Vector) Sub(other *Vector) (*Vector, error) {
	if v.Len() != other.Len() {
		return nil, fmt.Errorf("nonconformant arguments")
	}
	out := NewVector(v.Len())
	out.data.SubVec(v.data, other.data)
	return out, nil
}

// Dot returns the inner product of two same-length vectors.
func (v *Vector) Dot(other *Vector) (float64, error) {
	if v.Len() != other.Len() {
		return 0, fmt.Errorf("nonconformant arguments")
	}
	return mat.Dot(v.data, other.data), nil
}

// DivDot implements the original's vector/vector division rule:
// (a . b) / (b . b), erroring when b is the zero vector.
func (v *Vector) DivDot(other *Vector) (float64, error) {
	if other.IsZero() {
		return 0, ErrZeroVector
	}
	num, err := v.Dot(other)
	if err != nil {
		return 0, err
	}
	den, _ := other.Dot(other)
	return num / den, nil
}

// Matrix is a dense real matrix.
type Matrix struct {
	data *mat.Dense
}

// NewMatrix allocates a zero-filled r x c matrix.
func NewMatrix(r, c int) *Matrix {
	return &Matrix{data: mat.NewDense(r, c, nil)}
}

// MatrixFromSlice builds a row-major r x c matrix from vs.
func MatrixFromSlice(r, c int, vs []float64) *Matrix {
	cp := make([]float64, len(vs))
	copy(cp, vs)
	return &Matrix{data: mat.NewDense(r, c, cp)}
}

// Dims returns (rows, cols).
func (m *Matrix) Dims() (int, int) { return m.data.Dims() }

// At returns the element at (i, j).
func (m *Matrix) At(i, j int) float64 { return m.data.At(i, j) }

// Set assigns the element at (i, j).
func (m *Matrix) Set(i, j int, val float64) { m.data.Set(i, j, val) }

// Clone deep-copies the matrix.
func (m *Matrix) Clone() *Matrix {
	r, c := m.Dims()
	out := NewMatrix(r, c)
	out.data.Copy(m.data)
	return out
}

// IsSquare reports whether rows == cols.
func (m *Matrix) IsSquare() bool {
	r, c := m.Dims()
	return r == c
}

// AddScalar returns a new matrix with s added to every element.
func (m *Matrix) AddScalar(s float64) *Matrix {
	r, c := m.Dims()
	out := NewMatrix(r, c)
	out.data.Apply(func(i, j int, v float64) float64 { return v + s }, m.data)
	return out
}

// ScaleBy returns a new matrix scaled by s.
func (m *Matrix) ScaleBy(s float64) *Matrix {
	r, c := m.Dims()
	out := NewMatrix(r, c)
	out.data.Scale(s, m.data)
	return out
}

func sameDims(a, b *Matrix) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	return ar == br && ac == bc
}

// Add returns the elementwise sum of two conformant matrices.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if !sameDims(m, other) {
		return nil, fmt.Errorf("nonconformant arguments")
	}
	r, c := m.Dims()
	out := NewMatrix(r, c)
	out.data.Add(m.data, other.data)
	return out, nil
}

// Sub returns the elementwise difference of two conformant matrices.
func (m *Matrix) Sub(other *Matrix) (*Matrix, error) {
	if !sameDims(m, other) {
		return nil, fmt.Errorf("nonconformant arguments")
	}
	r, c := m.Dims()
	out := NewMatrix(r, c)
	out.data.Sub(m.data, other.data)
	return out, nil
}

// MatMul performs GEMM: m * other.
func (m *Matrix) MatMul(other *Matrix) (*Matrix, error) {
	_, ac := m.Dims()
	br, _ := other.Dims()
	if ac != br {
		return nil, fmt.Errorf("nonconformant arguments")
	}
	mr, _ := m.Dims()
	_, oc := other.Dims()
	out := NewMatrix(mr, oc)
	out.data.Mul(m.data, other.data)
	return out, nil
}

// MatVec performs GEMV: m * v.
func (m *Matrix) MatVec(v *Vector) (*Vector, error) {
	_, c := m.Dims()
	if c != v.Len() {
		return nil, fmt.Errorf("nonconformant arguments")
	}
	r, _ := m.Dims()
	out := NewVector(r)
	out.data.MulVec(m.data, v.data)
	return out, nil
}

// VecMat returns transpose(m) * v, matching the original's "vector times
// matrix" rule.
func VecMat(v *Vector, m *Matrix) (*Vector, error) {
	r, _ := m.Dims()
	if r != v.Len() {
		return nil, fmt.Errorf("nonconformant arguments")
	}
	var mt mat.Dense
	mt.CloneFrom(m.data.T())
	_, c := m.Dims()
	out := NewVector(c)
	out.data.MulVec(&mt, v.data)
	return out, nil
}

// Inverse inverts a square matrix, using an LU factorization's condition
// number to detect the near-singular case the original reported as a
// division by zero.
func (m *Matrix) Inverse() (*Matrix, error) {
	if !m.IsSquare() {
		return nil, fmt.Errorf("nonconformant arguments")
	}
	var lu mat.LU
	lu.Factorize(m.data)
	if lu.Cond() > 1e15 {
		return nil, fmt.Errorf("division by zero")
	}
	r, _ := m.Dims()
	out := NewMatrix(r, r)
	if err := out.data.Inverse(m.data); err != nil {
		return nil, fmt.Errorf("division by zero")
	}
	return out, nil
}

// Solve solves m * x = v for x via LU decomposition, the matrix-division
// rule for `vector / matrix`.
func Solve(v *Vector, m *Matrix) (*Vector, error) {
	if !m.IsSquare() {
		return nil, fmt.Errorf("nonconformant arguments")
	}
	var lu mat.LU
	lu.Factorize(m.data)
	if lu.Cond() > 1e15 {
		return nil, fmt.Errorf("division by zero")
	}
	r, _ := m.Dims()
	x := mat.NewVecDense(r, nil)
	if err := lu.SolveVecTo(x, false, v.data); err != nil {
		return nil, fmt.Errorf("division by zero")
	}
	return &Vector{data: x}, nil
}

// MatDiv implements the original's `matrix / matrix` rule: inv(b) * a.
func MatDiv(a, b *Matrix) (*Matrix, error) {
	inv, err := b.Inverse()
	if err != nil {
		return nil, err
	}
	return inv.MatMul(a)
}

// Pow raises a square matrix to a non-negative integer power by repeated
// squaring. Pow(0) is the identity matrix.
func (m *Matrix) Pow(n int) (*Matrix, error) {
	if !m.IsSquare() {
		return nil, fmt.Errorf("power must be a digit")
	}
	if n < 0 {
		return nil, fmt.Errorf("power must be a digit")
	}
	r, _ := m.Dims()
	result := identity(r)
	base := m.Clone()
	for n > 0 {
		if n&1 == 1 {
			var err error
			result, err = result.MatMul(base)
			if err != nil {
				return nil, err
			}
		}
		var err error
		base, err = base.MatMul(base)
		if err != nil {
			return nil, err
		}
		n >>= 1
	}
	return result, nil
}

func identity(n int) *Matrix {
	out := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return out
}
