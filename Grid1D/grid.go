package Grid1D

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/notargets/flame1d/types"
)

// Grid holds strictly increasing axial coordinates and the cell widths
// Dz[j] = Z[j+1]-Z[j].
type Grid struct {
	Z, Dz []float64
}

func NewGrid(z []float64) (g *Grid, err error) {
	if len(z) < 2 {
		err = fmt.Errorf("%d points: %w", len(z), types.ErrInvalidGrid)
		return
	}
	g = &Grid{
		Z:  make([]float64, len(z)),
		Dz: make([]float64, len(z)-1),
	}
	copy(g.Z, z)
	for j := 0; j < len(z)-1; j++ {
		if z[j+1] <= z[j] {
			err = fmt.Errorf("z[%d] = %g, z[%d] = %g: %w", j, z[j], j+1, z[j+1], types.ErrInvalidGrid)
			return nil, err
		}
		g.Dz[j] = z[j+1] - z[j]
	}
	return
}

func UniformGrid(N int, zmin, zmax float64) (g *Grid, err error) {
	if N < 2 {
		err = fmt.Errorf("%d points: %w", N, types.ErrInvalidGrid)
		return
	}
	return NewGrid(floats.Span(make([]float64, N), zmin, zmax))
}

func (g *Grid) N() int          { return len(g.Z) }
func (g *Grid) ZMin() float64   { return g.Z[0] }
func (g *Grid) ZMax() float64   { return g.Z[len(g.Z)-1] }
func (g *Grid) Length() float64 { return g.ZMax() - g.ZMin() }

// CenteredWidth is z[j+1]-z[j-1] for an interior point.
func (g *Grid) CenteredWidth(j int) float64 {
	return g.Z[j+1] - g.Z[j-1]
}

// NormalizedPosition maps z[j] onto [0,1].
func (g *Grid) NormalizedPosition(j int) float64 {
	return (g.Z[j] - g.Z[0]) / g.Length()
}

// IndexOf returns the index of a point with exactly coordinate z, or -1.
func (g *Grid) IndexOf(z float64) int {
	for j, zj := range g.Z {
		if zj == z {
			return j
		}
	}
	return -1
}

// Remap interpolates a per-point field from the old grid onto this one,
// linear in z and clamped to the end values outside the old range.
func (g *Grid) Remap(old *Grid, field []float64) (out []float64) {
	out = make([]float64, g.N())
	if old == nil || old.N() != len(field) {
		panic(fmt.Errorf("field length %d does not match source grid", len(field)))
	}
	var pl interp.PiecewiseLinear
	_ = pl.Fit(old.Z, field)
	for j, z := range g.Z {
		out[j] = pl.Predict(z)
	}
	return
}

// Profile is a tabulated curve of y against normalized position in [0,1].
type Profile struct {
	Pos, Value []float64
	pl         interp.PiecewiseLinear
	constant   bool
}

func NewProfile(pos, value []float64) (p *Profile, err error) {
	if len(pos) != len(value) || len(pos) == 0 {
		err = fmt.Errorf("profile has %d positions and %d values", len(pos), len(value))
		return
	}
	p = &Profile{
		Pos:   append([]float64{}, pos...),
		Value: append([]float64{}, value...),
	}
	if len(pos) == 1 {
		p.constant = true
		return
	}
	for i := 1; i < len(pos); i++ {
		if pos[i] <= pos[i-1] {
			err = fmt.Errorf("profile positions: %w", types.ErrInvalidGrid)
			return nil, err
		}
	}
	_ = p.pl.Fit(p.Pos, p.Value)
	return
}

func (p *Profile) At(pos float64) float64 {
	if p.constant {
		return p.Value[0]
	}
	return p.pl.Predict(pos)
}
