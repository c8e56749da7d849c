package undgraph

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Vertex is one point of the graph polyline in viewport pixel space, with the
// origin at the bottom-left corner. Two packed float32 to match the
// renderer's 2D vertex layout.
type Vertex struct {
	X float32
	Y float32
}

// BuildMesh maps every sample of g to one Vertex inside a viewport of the
// given size, in sample order. X advances uniformly with the sample index; Y
// is the sample scaled by the series maximum. FramePx pixels are reserved on
// every side of the plot area.
//
// Degenerate coordinates are kept: a flat zero series divides by a zero
// maximum and yields NaN or infinite Y values, which are reported per vertex
// as warnings but never rejected. Degeneracy is checked on the float32
// coordinates as stored, so a value pushed out of range only by the
// narrowing is reported too.
func BuildMesh(g *GraphData, width, height int) []Vertex {
	logger := logrus.WithField("tag", "MeshBuilder")

	n := len(g.Samples)
	mesh := make([]Vertex, n)
	innerWidth := float64(width) - g.FramePx*2
	innerHeight := float64(height) - g.FramePx*2

	for i, sample := range g.Samples {
		x := float32(g.FramePx + float64(i)*innerWidth/float64(n))
		y := float32(g.FramePx + sample/g.MaxValue*innerHeight)
		warnDegenerate(logger, i, "x", x)
		warnDegenerate(logger, i, "y", y)
		mesh[i] = Vertex{X: x, Y: y}
	}

	return mesh
}

func warnDegenerate(logger logrus.FieldLogger, index int, axis string, value float32) {
	switch {
	case math.IsInf(float64(value), 0):
		logger.WithFields(logrus.Fields{"index": index, "axis": axis}).Warn("vertex coordinate is infinite")
	case math.IsNaN(float64(value)):
		logger.WithFields(logrus.Fields{"index": index, "axis": axis}).Warn("vertex coordinate is NaN")
	}
}
