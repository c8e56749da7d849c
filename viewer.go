package undgraph

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
)

// Window geometry and the color scheme are compile-time constants.
const (
	Width  = 1152
	Height = 648
)

var (
	backgroundColor = color.RGBA{A: 0xFF}
	lineColor       = color.RGBA{G: 0xFF, A: 0xFF}
)

// Viewer owns the window and the draw loop. The stroke geometry is built
// once from the mesh at construction; every tick just clears the plot,
// replays the geometry and presents it. Update, Draw and the one-shot Save
// flag all run on the single game goroutine, so there is no locking.
type Viewer struct {
	graph *GraphData
	name  string

	vertices []ebiten.Vertex
	indices  []uint16

	// plot is the offscreen framebuffer. The final screen image cannot be
	// read back, so the polyline is drawn here, blitted to the screen and
	// read from here on export.
	plot  *ebiten.Image
	white *ebiten.Image

	exportPath string
	logger     logrus.FieldLogger
}

// NewViewer builds a viewer for the loaded graph. name labels the window
// title and derives the export file name (name + ".png").
func NewViewer(graph *GraphData, mesh []Vertex, name string) *Viewer {
	vertices, indices := buildLineStrip(mesh, Height, graph.LineWidth)

	// A single white texel to source solid-color triangles from; the 3x3
	// image avoids sampling bleed at the texture edges.
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	return &Viewer{
		graph:      graph,
		name:       name,
		vertices:   vertices,
		indices:    indices,
		plot:       ebiten.NewImage(Width, Height),
		white:      white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		exportPath: name + ".png",
		logger:     logrus.WithField("tag", "Viewer"),
	}
}

// buildLineStrip converts the bottom-origin mesh into stroke triangles in the
// renderer's top-down device space and colors them. Fewer than two points
// leave nothing to stroke.
func buildLineStrip(mesh []Vertex, height int, lineWidth float64) ([]ebiten.Vertex, []uint16) {
	if len(mesh) < 2 {
		return nil, nil
	}

	var path vector.Path
	path.MoveTo(mesh[0].X, float32(height)-mesh[0].Y)
	for _, v := range mesh[1:] {
		path.LineTo(v.X, float32(height)-v.Y)
	}

	op := &vector.StrokeOptions{}
	op.Width = float32(lineWidth)
	op.MiterLimit = 10

	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, op)
	for i := range vertices {
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
		vertices[i].ColorR = float32(lineColor.R) / 0xFF
		vertices[i].ColorG = float32(lineColor.G) / 0xFF
		vertices[i].ColorB = float32(lineColor.B) / 0xFF
		vertices[i].ColorA = 1
	}

	return vertices, indices
}

func (v *Viewer) Update() error {
	// S requests another one-shot export.
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		v.graph.Save = true
	}
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	v.plot.Fill(backgroundColor)

	if len(v.vertices) > 0 {
		op := &ebiten.DrawTrianglesOptions{AntiAlias: v.graph.MSAA}
		v.plot.DrawTriangles(v.vertices, v.indices, v.white, op)
	}

	screen.DrawImage(v.plot, nil)

	if v.consumeSave() {
		v.export()
	}
}

// consumeSave reports whether an export was pending. The save flag is
// one-shot: it reads false again as soon as it is consumed.
func (v *Viewer) consumeSave() bool {
	if !v.graph.Save {
		return false
	}
	v.graph.Save = false
	return true
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return Width, Height
}

func (v *Viewer) export() {
	pixels := make([]byte, 4*Width*Height)
	v.plot.ReadPixels(pixels)

	if err := ExportPNG(pixels, Width, Height, v.exportPath); err != nil {
		v.logger.WithError(err).Error("failed to export frame")
		return
	}
	v.logger.WithField("path", v.exportPath).Info("exported frame")
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() error {
	v.logger.WithFields(logrus.Fields{
		"width":  Width,
		"height": Height,
		"color":  fmt.Sprintf("#%02X%02X%02XFF", lineColor.R, lineColor.G, lineColor.B),
	}).Info("opening window")

	ebiten.SetWindowTitle("UndGraph - " + v.name)
	ebiten.SetWindowSize(Width, Height)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("run graph window: %w", err)
	}
	return nil
}
