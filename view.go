package orrery

import "gonum.org/v1/gonum/mat"

// Homogeneous 2D transforms: points are [x y 1]ᵀ column vectors.

// Scale33 scales both axes by k.
func Scale33(k float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{k, 0, 0, 0, k, 0, 0, 0, 1})
}

// Translate33 translates by (tx, ty).
func Translate33(tx, ty float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, tx, 0, 1, ty, 0, 0, 1})
}

// MxP33 applies a homogeneous transform to a point. Note that there is no dimension check!
func MxP33(m mat.Matrix, p Point) Point {
	var r mat.VecDense
	r.MulVec(m, mat.NewVecDense(3, []float64{p.X, p.Y, 1}))
	return Point{r.AtVec(0) / r.AtVec(2), r.AtVec(1) / r.AtVec(2)}
}

// MxPath33 applies a homogeneous transform to every point of a path.
func MxPath33(m mat.Matrix, path []Point) []Point {
	out := make([]Point, len(path))
	for i, p := range path {
		out[i] = MxP33(m, p)
	}
	return out
}
