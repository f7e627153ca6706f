package jacobian

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/flame1d/utils"
)

// Domain is a one dimensional residual that can be evaluated in full or
// around a single global grid point.
type Domain interface {
	Size() int
	NComponents() int
	NPoints() int
	FirstPoint() int
	Loc() int
	EvalFull(x, rsd []float64, diag []int, rdt float64) error
	EvalWindow(jg int, x, rsd []float64, diag []int, rdt float64) error
}

type Config struct {
	RelPerturb float64
	AbsPerturb float64
}

func DefaultConfig() Config {
	return Config{
		RelPerturb: 1.e-5,
		AbsPerturb: 1.e-10,
	}
}

// Jacobian is a finite difference Jacobian of a Domain, stored sparse in the
// domain's local row and column numbering.
type Jacobian struct {
	Config
	dom    Domain
	J      utils.DOK
	Diag   []int
	NEvals int
}

func New(dom Domain, cfg Config) *Jacobian {
	return &Jacobian{
		Config: cfg,
		dom:    dom,
	}
}

// Eval differences the windowed residual column by column at x. The transient
// term rdt is added on the differential rows afterwards, since windowed
// evaluations return the steady residual.
func (jac *Jacobian) Eval(x []float64, rdt float64) (err error) {
	var (
		dom  = jac.dom
		n    = dom.Size()
		nv   = dom.NComponents()
		np   = dom.NPoints()
		loc  = dom.Loc()
		r0   = make([]float64, len(x))
		r1   = make([]float64, len(x))
		diag = make([]int, len(x))
	)
	if loc+n > len(x) {
		return fmt.Errorf("solution of length %d does not hold domain [%d,%d)", len(x), loc, loc+n)
	}
	jac.J = utils.NewDOK(n, n)
	jac.NEvals = 0
	// full evaluation first, to refresh the cached transport properties
	if err = dom.EvalFull(x, r0, diag, rdt); err != nil {
		return
	}
	jac.Diag = append(jac.Diag[:0], diag[loc:loc+n]...)
	for j := 0; j < np; j++ {
		var (
			jg         = dom.FirstPoint() + j
			rowB, rowE = nv * max(j-1, 0), nv * (min(j+1, np-1) + 1)
		)
		if err = dom.EvalWindow(jg, x, r0, diag, 0); err != nil {
			return
		}
		for c := 0; c < nv; c++ {
			var (
				col = nv*j + c
				xs  = x[loc+col]
				dx  = jac.RelPerturb*math.Abs(xs) + jac.AbsPerturb
			)
			x[loc+col] = xs + dx
			err = dom.EvalWindow(jg, x, r1, diag, 0)
			x[loc+col] = xs
			if err != nil {
				return
			}
			jac.NEvals++
			for row := rowB; row < rowE; row++ {
				if d := (r1[loc+row] - r0[loc+row]) / dx; d != 0 {
					jac.J.Set(row, col, d)
				}
			}
		}
	}
	for i, d := range jac.Diag {
		if d != 0 && rdt != 0 {
			jac.J.Set(i, i, jac.J.At(i, i)-rdt)
		}
	}
	log.WithFields(log.Fields{
		"size":  n,
		"nnz":   jac.J.NNZ(),
		"evals": jac.NEvals,
	}).Debug("jacobian evaluated")
	return
}

// CSR freezes the Jacobian into compressed rows.
func (jac *Jacobian) CSR() utils.CSR {
	jac.J.SetReadOnly("jacobian")
	return jac.J.ToCSR()
}

// Check applies the column perturbations all at once and compares J*dx with
// the change of the full residual. It returns the relative 2-norm error, or
// the absolute one when the residual does not move.
func (jac *Jacobian) Check(x []float64, rdt float64) (relErr float64, err error) {
	var (
		dom  = jac.dom
		n    = dom.Size()
		loc  = dom.Loc()
		r0   = make([]float64, len(x))
		r1   = make([]float64, len(x))
		diag = make([]int, len(x))
		xp   = append([]float64{}, x...)
		dx   = make([]float64, n)
		dr   = make([]float64, n)
	)
	if jac.J.M == nil {
		return 0, fmt.Errorf("jacobian has not been evaluated")
	}
	for i := range dx {
		dx[i] = jac.RelPerturb*math.Abs(x[loc+i]) + jac.AbsPerturb
		xp[loc+i] += dx[i]
	}
	if err = dom.EvalFull(x, r0, diag, rdt); err != nil {
		return
	}
	if err = dom.EvalFull(xp, r1, diag, rdt); err != nil {
		return
	}
	floats.SubTo(dr, r1[loc:loc+n], r0[loc:loc+n])
	jdx := jac.J.ToCSR().MulVec(dx)
	floats.Sub(jdx, dr)
	relErr = floats.Norm(jdx, 2)
	if scale := floats.Norm(dr, 2); scale > 0 {
		relErr /= scale
	}
	return
}
