package porous

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/flame1d/utils"
)

// Config holds the iteration controls of the solid sub-solve.
type Config struct {
	Relaxation      float64 // weight of the new radiative source
	OuterTol        float64 // on the L2 change of the radiative source
	InnerTol        float64 // on the L2 change of the S2 fluxes
	MaxOuter        int
	MaxInner        int
	StefanBoltzmann float64
}

func DefaultConfig() Config {
	return Config{
		Relaxation:      0.1,
		OuterTol:        1.e-6,
		InnerTol:        1.e-6,
		MaxOuter:        400,
		MaxInner:        100,
		StefanBoltzmann: 5.67e-8,
	}
}

// Problem is the gas-side input to one solid solve.
type Problem struct {
	Z     []float64
	TGas  []float64
	Hconv []float64
	Props *Properties
	RhoCp float64 // solid density times heat capacity
	Rdt   float64
}

type Result struct {
	Converged       bool
	OuterIterations int
	InnerStalls     int
	Change          float64
}

type Solver struct {
	Config
}

func NewSolver(cfg Config) *Solver {
	return &Solver{Config: cfg}
}

// Solve updates the solid temperature Tw and radiative source dq in place.
// The source is reset to zero at the start. If the outer iteration does not
// converge Tw is restored to its value on entry; neither failure is returned
// as an error.
func (s *Solver) Solve(p Problem, Tw, dq []float64) (res Result, err error) {
	n := len(p.Z)
	if n < 3 || len(Tw) != n || len(dq) != n || len(p.TGas) != n || len(p.Hconv) != n {
		err = fmt.Errorf("solid solve needs matching fields of at least 3 points, have %d", n)
		return
	}
	var (
		Twprev = make([]float64, n)
		dl     = make([]float64, n-1)
		d      = make([]float64, n)
		du     = make([]float64, n-1)
		rhs    = make([]float64, n)
		dqnew  = make([]float64, n)
		diff   = make([]float64, n)
		tw     = mat.NewVecDense(n, Tw)
		b      = mat.NewVecDense(n, rhs)
	)
	copy(Twprev, Tw)
	for i := range dq {
		dq[i] = 0
	}
	res.Change = 1
	for res.Change > s.OuterTol {
		res.OuterIterations++
		s.assemble(p, dq, Twprev, dl, d, du, rhs)
		A := mat.NewTridiag(n, dl, d, du)
		if err = A.SolveVecTo(tw, false, b); err != nil {
			copy(Tw, Twprev)
			err = fmt.Errorf("solid conduction system: %w", err)
			return
		}
		if !s.radiation(p, Tw, dq, dqnew) {
			res.InnerStalls++
			log.WithFields(log.Fields{
				"outer": res.OuterIterations,
				"cap":   s.MaxInner,
			}).Warn("porous radiation stall")
		}
		floats.SubTo(diff, dqnew, dq)
		res.Change = floats.Norm(diff, 2)
		for i := range dq {
			dq[i] = s.Relaxation*dqnew[i] + (1-s.Relaxation)*dq[i]
		}
		if res.OuterIterations > s.MaxOuter {
			copy(Tw, Twprev)
			log.WithFields(log.Fields{
				"iterations": res.OuterIterations,
				"change":     res.Change,
			}).Warn("porous solid temperature not converged, reverting")
			return
		}
	}
	res.Converged = true
	return
}

// assemble builds the conduction rows. The end rows hold a zero gradient.
func (s *Solver) assemble(p Problem, dq, Twprev, dl, d, du, rhs []float64) {
	var (
		n = len(p.Z)
		z = p.Z
	)
	d[0], du[0], rhs[0] = 1, -1, 0
	dl[n-2], d[n-1], rhs[n-1] = -1, 1, 0
	for i := 1; i < n-1; i++ {
		var (
			k  = p.Props.Conductivity[i]
			dc = z[i+1] - z[i-1]
			e  = 2 * k / ((z[i] - z[i-1]) * dc)
			g  = 2 * k / ((z[i+1] - z[i]) * dc)
		)
		dl[i-1] = e
		d[i] = -e - g - p.Hconv[i] - p.RhoCp*p.Rdt
		du[i] = g
		rhs[i] = -p.Hconv[i]*p.TGas[i] + dq[i] - p.RhoCp*p.Rdt*Twprev[i]
	}
}

// radiation runs the two-flux (S2) sweeps for the current solid temperature
// and fills dqnew with the radiative source. On a stall dqnew is a copy of dq
// and false is returned.
func (s *Solver) radiation(p Problem, Tw, dq, dqnew []float64) (ok bool) {
	var (
		n      = len(p.Z)
		z      = p.Z
		rk     = p.Props.Extinction
		om     = p.Props.Albedo
		sigma  = s.StefanBoltzmann
		qplus  = make([]float64, n)
		qminus = make([]float64, n)
		qpnew  = make([]float64, n)
		qmnew  = make([]float64, n)
		dp     = make([]float64, n)
		dm     = make([]float64, n)
		// both ends see black surroundings at the inlet gas temperature
		qin = sigma * utils.POW(p.TGas[0], 4)
	)
	qplus[0], qpnew[0] = qin, qin
	qminus[n-1], qmnew[n-1] = qin, qin
	change := 1.
	for count := 1; change > s.InnerTol; count++ {
		for i := 1; i < n; i++ {
			dz := z[i] - z[i-1]
			qpnew[i] = (qpnew[i-1] + rk[i]*dz*om[i]*qminus[i] +
				2*rk[i]*dz*(1-om[i])*sigma*utils.POW(Tw[i], 4)) /
				(1 + dz*rk[i]*(2-om[i]))
		}
		for i := n - 2; i >= 0; i-- {
			dz := z[i+1] - z[i]
			qmnew[i] = (qmnew[i+1] + rk[i]*dz*om[i]*qpnew[i] +
				2*rk[i]*dz*(1-om[i])*sigma*utils.POW(Tw[i], 4)) /
				(1 + dz*rk[i]*(2-om[i]))
		}
		floats.SubTo(dp, qpnew, qplus)
		floats.SubTo(dm, qmnew, qminus)
		copy(qplus, qpnew)
		copy(qminus, qmnew)
		if count > s.MaxInner {
			copy(dqnew, dq)
			return false
		}
		change = max(floats.Norm(dp, 2), floats.Norm(dm, 2))
	}
	for i := range dqnew {
		dqnew[i] = 4 * rk[i] * (1 - om[i]) *
			(sigma*utils.POW(Tw[i], 4) - 0.5*qplus[i] - 0.5*qminus[i])
	}
	return true
}
