package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/cartogram/flow"
	"github.com/katalvlaran/cartogram/geometry"
	"github.com/katalvlaran/cartogram/grid"
	"github.com/katalvlaran/cartogram/parallel"
	"github.com/katalvlaran/cartogram/spectral"
)

// FlowSuite drives single passes over a 16×16 lattice.
type FlowSuite struct {
	suite.Suite
	g *grid.Grid
}

// SetupTest allocates a fresh lattice for every test.
func (s *FlowSuite) SetupTest() {
	g, err := grid.New(geometry.BBox{MaxX: 8, MaxY: 8}, 16)
	s.Require().NoError(err)
	s.g = g
}

// fill sets every density cell to v.
func (s *FlowSuite) fill(v float64) {
	for k := range s.g.RhoInit {
		s.g.RhoInit[k] = v
	}
}

// TestUniformDensityDoesNotMove checks that a flat density leaves the lattice in place.
func (s *FlowSuite) TestUniformDensityDoesNotMove() {
	s.fill(2)
	in := flow.New(s.g, spectral.NewFFT(nil), nil, nil)
	s.Require().NoError(in.Init())
	s.InDelta(2.0, s.g.RhoFT[0], 1e-12)

	st, err := in.Integrate()
	s.Require().NoError(err)
	s.Positive(st.Steps)
	for i := 0; i < s.g.LX; i++ {
		for j := 0; j < s.g.LY; j++ {
			p := s.g.Proj[s.g.Index(i, j)]
			s.InDelta(float64(i)+0.5, p.X, 1e-9)
			s.InDelta(float64(j)+0.5, p.Y, 1e-9)
		}
	}
}

// TestDenseBlockExpands checks that points flow away from a dense block.
func (s *FlowSuite) TestDenseBlockExpands() {
	s.fill(1)
	for i := 6; i < 10; i++ {
		for j := 6; j < 10; j++ {
			s.g.RhoInit[s.g.Index(i, j)] = 4
		}
	}
	tr := spectral.NewFFT(nil)
	s.Require().NoError(s.g.Smooth(tr, nil, 1))

	in := flow.New(s.g, tr, parallel.NewPooled(4), nil)
	s.Require().NoError(in.Init())
	_, err := in.Integrate()
	s.Require().NoError(err)

	right := s.g.Proj[s.g.Index(11, 8)]
	left := s.g.Proj[s.g.Index(4, 8)]
	top := s.g.Proj[s.g.Index(8, 11)]
	s.Greater(right.X, 11.5)
	s.Less(left.X, 4.5)
	s.Greater(top.Y, 11.5)
	for _, p := range s.g.Proj {
		s.True(s.g.Contains(p))
	}
}

// TestStepUnderflow forces every trial out of the lattice.
func (s *FlowSuite) TestStepUnderflow() {
	s.fill(1)
	s.g.RhoFT[0] = 1
	for k := range s.g.FluxX {
		s.g.FluxX[k] = -1e12
	}
	in := flow.New(s.g, spectral.NewFFT(nil), nil, nil)

	st, err := in.Integrate()
	s.Require().ErrorIs(err, flow.ErrStepUnderflow)
	s.Zero(st.Steps)
	s.Positive(st.Rejected)
}

// TestProjectShift carries rings and the cumulative lattice by a uniform shift.
func (s *FlowSuite) TestProjectShift() {
	d := geometry.Point{X: 0.1, Y: 0.2}
	for k := range s.g.Proj {
		s.g.Proj[k] = s.g.Proj[k].Add(d)
	}
	ring := geometry.Ring{{X: 5.3, Y: 6.7}, {X: 5.3, Y: 9}, {X: 8, Y: 9}, {X: 5.3, Y: 6.7}}
	in := flow.New(s.g, spectral.NewFFT(nil), nil, nil)
	in.Project([]geometry.Ring{ring})

	s.InDelta(5.4, ring[0].X, 1e-12)
	s.InDelta(6.9, ring[0].Y, 1e-12)
	s.InDelta(8.1, ring[2].X, 1e-12)
	s.InDelta(9.2, ring[2].Y, 1e-12)
	c := s.g.Cumulative[s.g.Index(3, 4)]
	s.InDelta(3.6, c.X, 1e-12)
	s.InDelta(4.7, c.Y, 1e-12)
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowSuite))
}

// TestProjectIdentity leaves rings untouched when the lattice did not move.
func TestProjectIdentity(t *testing.T) {
	g, err := grid.New(geometry.BBox{MaxX: 4, MaxY: 2}, 16)
	require.NoError(t, err)
	ring := geometry.Ring{{X: 0, Y: 0}, {X: 0, Y: 3}, {X: 16, Y: 3}, {X: 0, Y: 0}}
	want := ring.Clone()

	flow.New(g, spectral.Direct{}, nil, nil).Project([]geometry.Ring{ring})
	require.Equal(t, want, ring)
}
