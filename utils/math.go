package utils

import (
	"math"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// POW is a fast integer power for small exponents, used in the T^4 terms.
func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(pp))
	return
}

// PolyEval evaluates sum_n c[n]*x^n.
func PolyEval(c []float64, x float64) (y float64) {
	for n := len(c) - 1; n >= 0; n-- {
		y = y*x + c[n]
	}
	return
}

// Blend returns v1 below zmid-dz, v2 above zmid+dz and a linear ramp in between.
func Blend(z, zmid, dz, v1, v2 float64) float64 {
	switch {
	case z < zmid-dz:
		return v1
	case z > zmid+dz:
		return v2
	case dz == 0:
		return v2
	}
	return v1 + (v2-v1)*(z-(zmid-dz))/(2*dz)
}

func Step(z, zmid, v1, v2 float64) float64 {
	if z < zmid {
		return v1
	}
	return v2
}
