package undgraph

// GraphData is the parsed content of one undgraph file: the header tags plus
// the sample series and the statistics derived from it. It is built once per
// run and stays read-only afterward, except for Save which the viewer clears
// after consuming it.
type GraphData struct {
	// Header tags.
	MSAA      bool
	Save      bool
	LineWidth float64
	FramePx   float64

	// Derived from the samples.
	MaxValue float64
	MinValue float64
	TickSize float64

	// The raw series, in file line order.
	Samples []float64
}

// newGraphData returns a GraphData with the tag defaults applied.
func newGraphData() *GraphData {
	return &GraphData{
		LineWidth: 1.0,
	}
}

// ApplyModeArgs applies the force keywords accepted on the command line after
// the file path. forcemsaa turns antialiasing on and forcesave requests a
// one-shot export on the first frame; anything else is silently ignored.
func (g *GraphData) ApplyModeArgs(args []string) {
	for _, arg := range args {
		switch arg {
		case "forcemsaa":
			g.MSAA = true
		case "forcesave":
			g.Save = true
		}
	}
}
