package linalg

import (
	"math"
	"testing"
)

func closeEnough(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestVectorDot(t *testing.T) {
	a := VectorFromSlice([]float64{1, 2, 3})
	b := VectorFromSlice([]float64{4, 5, 6})
	got, err := a.Dot(b)
	if err != nil {
		t.Fatal(err)
	}
	if !closeEnough(got, 32) {
		t.Fatalf("got %v, want 32", got)
	}
}

func TestVectorDivDotZeroVectorIsError(t *testing.T) {
	a := VectorFromSlice([]float64{1, 2})
	zero := NewVector(2)
	if _, err := a.DivDot(zero); err != ErrZeroVector {
		t.Fatalf("got %v, want ErrZeroVector", err)
	}
}

func TestVectorAddNonconformant(t *testing.T) {
	a := VectorFromSlice([]float64{1, 2})
	b := VectorFromSlice([]float64{1, 2, 3})
	if _, err := a.Add(b); err == nil {
		t.Fatalf("expected nonconformant error")
	}
}

func TestMatrixMatMul(t *testing.T) {
	a := MatrixFromSlice(2, 2, []float64{1, 2, 3, 4})
	b := MatrixFromSlice(2, 2, []float64{5, 6, 7, 8})
	c, err := a.MatMul(b)
	if err != nil {
		t.Fatal(err)
	}
	if !closeEnough(c.At(0, 0), 19) || !closeEnough(c.At(1, 1), 50) {
		t.Fatalf("got %v", c)
	}
}

func TestMatrixVecRoundTrip(t *testing.T) {
	m := MatrixFromSlice(2, 2, []float64{2, 0, 0, 2})
	v := VectorFromSlice([]float64{3, 4})
	out, err := m.MatVec(v)
	if err != nil {
		t.Fatal(err)
	}
	if !closeEnough(out.At(0), 6) || !closeEnough(out.At(1), 8) {
		t.Fatalf("got %v", out.Slice())
	}
}

func TestMatrixPowIdentity(t *testing.T) {
	m := MatrixFromSlice(2, 2, []float64{1, 1, 0, 1})
	out, err := m.Pow(0)
	if err != nil {
		t.Fatal(err)
	}
	if out.At(0, 0) != 1 || out.At(0, 1) != 0 || out.At(1, 0) != 0 || out.At(1, 1) != 1 {
		t.Fatalf("Pow(0) should be identity, got %v", out)
	}
}

func TestMatrixPowSquares(t *testing.T) {
	m := MatrixFromSlice(2, 2, []float64{1, 1, 0, 1})
	out, err := m.Pow(3)
	if err != nil {
		t.Fatal(err)
	}
	// [[1,1],[0,1]]^3 == [[1,3],[0,1]]
	if !closeEnough(out.At(0, 1), 3) {
		t.Fatalf("got %v", out.At(0, 1))
	}
}

func TestMatrixInverseSolveRoundTrip(t *testing.T) {
	m := MatrixFromSlice(2, 2, []float64{2, 0, 0, 2})
	v := VectorFromSlice([]float64{4, 6})
	x, err := Solve(v, m)
	if err != nil {
		t.Fatal(err)
	}
	if !closeEnough(x.At(0), 2) || !closeEnough(x.At(1), 3) {
		t.Fatalf("got %v", x.Slice())
	}
}

func TestMatrixNonSquareInverseIsError(t *testing.T) {
	m := MatrixFromSlice(2, 3, []float64{1, 2, 3, 4, 5, 6})
	if _, err := m.Inverse(); err == nil {
		t.Fatalf("expected nonconformant error")
	}
}
