package regression

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// InitialUncertainty scales the identity used as the starting P, a vague
// prior that lets the first observations dominate.
const InitialUncertainty = 1e6

// QuadraticFit fits y = a*x^2 + b*x + c by recursive least squares. beta
// holds [c, b, a]; p is the inverse information matrix.
type QuadraticFit struct {
	beta  *mat.VecDense
	p     *mat.SymDense
	count int64

	// scratch vectors, reused across updates
	v  *mat.VecDense
	pv *mat.VecDense
}

func NewQuadraticFit() *QuadraticFit {
	fit := &QuadraticFit{
		beta: mat.NewVecDense(3, nil),
		p:    mat.NewSymDense(3, nil),
		v:    mat.NewVecDense(3, nil),
		pv:   mat.NewVecDense(3, nil),
	}
	fit.resetPrior()
	return fit
}

func (fit *QuadraticFit) resetPrior() {
	for i := 0; i < 3; i++ {
		fit.beta.SetVec(i, 0)
		for j := i; j < 3; j++ {
			fit.p.SetSym(i, j, 0)
		}
		fit.p.SetSym(i, i, InitialUncertainty)
	}
}

func (fit *QuadraticFit) features(x float64) *mat.VecDense {
	fit.v.SetVec(0, 1)
	fit.v.SetVec(1, x)
	fit.v.SetVec(2, x*x)
	return fit.v
}

// Update folds in one observation.
func (fit *QuadraticFit) Update(x, y float64) {
	v := fit.features(x)
	fit.pv.MulVec(fit.p, v)

	s := 1 + mat.Dot(v, fit.pv)
	residual := y - mat.Dot(v, fit.beta)

	// beta += K*e with K = Pv/s
	fit.beta.AddScaledVec(fit.beta, residual/s, fit.pv)
	// P -= Pv*Pv^T/s
	fit.p.SymRankOne(fit.p, -1/s, fit.pv)

	fit.count++
}

// Coefficients returns c, b and a of y = a*x^2 + b*x + c.
func (fit *QuadraticFit) Coefficients() (c, b, a float64) {
	return fit.beta.AtVec(0), fit.beta.AtVec(1), fit.beta.AtVec(2)
}

func (fit *QuadraticFit) Predict(x float64) float64 {
	c, b, a := fit.Coefficients()
	return c + b*x + a*x*x
}

func (fit *QuadraticFit) Count() int64 {
	return fit.count
}

// Covariance returns a copy of P.
func (fit *QuadraticFit) Covariance() *mat.SymDense {
	p := mat.NewSymDense(3, nil)
	p.CopySym(fit.p)
	return p
}

func (fit *QuadraticFit) Clear() {
	fit.resetPrior()
	fit.count = 0
}

func (fit *QuadraticFit) Clone() *QuadraticFit {
	clone := NewQuadraticFit()
	clone.beta.CopyVec(fit.beta)
	clone.p.CopySym(fit.p)
	clone.count = fit.count
	return clone
}

// RSquared scores the current fit against caller-held observations. It is
// NaN for empty or mismatched input and when every y is equal.
func (fit *QuadraticFit) RSquared(xs, ys []float64) float64 {
	if len(xs) == 0 || len(xs) != len(ys) {
		return math.NaN()
	}

	var yMean float64
	for _, y := range ys {
		yMean += y
	}
	yMean /= float64(len(ys))

	var total, residual float64
	for i, x := range xs {
		predicted := fit.Predict(x)
		total += (ys[i] - yMean) * (ys[i] - yMean)
		residual += (ys[i] - predicted) * (ys[i] - predicted)
	}
	if total == 0 {
		return math.NaN()
	}
	return 1 - residual/total
}

const coefficientEpsilon = 1e-10

// Equation renders the fit, eliding zero terms and unit factors, e.g.
// "y = x² - 0.500000x + 3.000000".
func (fit *QuadraticFit) Equation() string {
	c, b, a := fit.Coefficients()

	var sb strings.Builder
	writeTerm := func(coef float64, unit string) {
		if math.Abs(coef) <= coefficientEpsilon {
			return
		}
		magnitude := coef
		if sb.Len() > 0 {
			if coef >= 0 {
				sb.WriteString(" + ")
			} else {
				sb.WriteString(" - ")
			}
			magnitude = math.Abs(coef)
		}
		switch {
		case unit != "" && math.Abs(magnitude-1) < coefficientEpsilon:
			sb.WriteString(unit)
		case unit != "" && math.Abs(magnitude+1) < coefficientEpsilon:
			sb.WriteString("-" + unit)
		default:
			sb.WriteString(fmt.Sprintf("%.6f%s", magnitude, unit))
		}
	}

	writeTerm(a, "x²")
	writeTerm(b, "x")
	writeTerm(c, "")

	if sb.Len() == 0 {
		return "y = 0"
	}
	return "y = " + sb.String()
}
