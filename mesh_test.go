package undgraph

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestBuildMesh(t *testing.T) {
	t.Run("XSpacing", func(t *testing.T) {
		g := &GraphData{
			FramePx:  10,
			MaxValue: 4,
			Samples:  []float64{1, 2, 3, 4},
		}
		mesh := BuildMesh(g, 100, 50)

		if len(mesh) != 4 {
			t.Fatalf("unexpected mesh length: got %d want 4", len(mesh))
		}
		if mesh[0].X != 10 {
			t.Fatalf("first vertex must start at the frame padding: got %v want 10", mesh[0].X)
		}
		// The last vertex stops one step short of the far edge:
		// 10 + 3*(100-20)/4 = 70, not 90.
		want := float32(10 + 3*float64(100-2*10)/4)
		if mesh[3].X != want {
			t.Fatalf("unexpected last x: got %v want %v", mesh[3].X, want)
		}
	})

	t.Run("XMonotonic", func(t *testing.T) {
		g := &GraphData{
			MaxValue: 1,
			Samples:  []float64{1, 1, 1, 1, 1, 1},
		}
		mesh := BuildMesh(g, 200, 100)
		for i := 1; i < len(mesh); i++ {
			if mesh[i].X <= mesh[i-1].X {
				t.Fatalf("x must increase with the sample index: mesh[%d].X=%v mesh[%d].X=%v", i-1, mesh[i-1].X, i, mesh[i].X)
			}
		}
	})

	t.Run("YMapping", func(t *testing.T) {
		g := &GraphData{
			FramePx:  5,
			MaxValue: 4,
			Samples:  []float64{2, 4},
		}
		mesh := BuildMesh(g, 100, 50)

		inner := float64(50 - 2*5)
		if want := float32(5 + 2.0/4.0*inner); mesh[0].Y != want {
			t.Fatalf("unexpected y for half-max sample: got %v want %v", mesh[0].Y, want)
		}
		// The maximum sample lands on the top edge of the plot area.
		if want := float32(5 + inner); mesh[1].Y != want {
			t.Fatalf("unexpected y for max sample: got %v want %v", mesh[1].Y, want)
		}
	})

	t.Run("ZeroPaddingUsesFullViewport", func(t *testing.T) {
		g := &GraphData{
			MaxValue: 2,
			Samples:  []float64{2, 2},
		}
		mesh := BuildMesh(g, 100, 50)
		if mesh[0].X != 0 {
			t.Fatalf("unexpected first x: got %v want 0", mesh[0].X)
		}
		if mesh[0].Y != 50 {
			t.Fatalf("a max sample without padding must reach the viewport height: got %v", mesh[0].Y)
		}
	})

	t.Run("ZeroMaxIsDegenerateNotFatal", func(t *testing.T) {
		g := &GraphData{
			MaxValue: 0,
			Samples:  []float64{0, 0},
		}
		mesh := BuildMesh(g, 100, 50) // must not panic
		for i, v := range mesh {
			if !math.IsNaN(float64(v.Y)) {
				t.Fatalf("0/0 must survive as NaN in vertex %d: got %v", i, v.Y)
			}
		}
	})

	t.Run("NegativeOverZeroMaxIsInf", func(t *testing.T) {
		g := &GraphData{
			MaxValue: 0,
			Samples:  []float64{-5},
		}
		mesh := BuildMesh(g, 100, 50)
		if !math.IsInf(float64(mesh[0].Y), -1) {
			t.Fatalf("-5/0 must survive as -Inf: got %v", mesh[0].Y)
		}
	})

	t.Run("Float32OverflowWarns", func(t *testing.T) {
		hook := test.NewGlobal()
		defer hook.Reset()

		// 1e39/1*inner is finite in float64 but past the float32 range,
		// so the stored vertex degenerates to +Inf.
		g := &GraphData{
			MaxValue: 1,
			Samples:  []float64{1e39, 1},
		}
		mesh := BuildMesh(g, 100, 50)
		if !math.IsInf(float64(mesh[0].Y), 1) {
			t.Fatalf("unexpected stored y: got %v want +Inf", mesh[0].Y)
		}

		warned := false
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel && entry.Data["axis"] == "y" && entry.Data["index"] == 0 {
				warned = true
			}
		}
		if !warned {
			t.Fatal("the out-of-range vertex must be reported")
		}
	})

	t.Run("EmptyGraph", func(t *testing.T) {
		mesh := BuildMesh(&GraphData{}, 100, 50)
		if len(mesh) != 0 {
			t.Fatalf("an empty series must produce an empty mesh: got %v", mesh)
		}
	})

	t.Run("OrderMatchesSamples", func(t *testing.T) {
		g := &GraphData{
			MaxValue: 8,
			Samples:  []float64{8, 2, 4},
		}
		mesh := BuildMesh(g, 90, 80)
		if len(mesh) != len(g.Samples) {
			t.Fatalf("one vertex per sample: got %d want %d", len(mesh), len(g.Samples))
		}
		for i, sample := range g.Samples {
			want := float32(sample / 8 * 80)
			if mesh[i].Y != want {
				t.Fatalf("vertex %d out of order: got y=%v want %v", i, mesh[i].Y, want)
			}
		}
	})
}
