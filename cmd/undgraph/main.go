package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/undnull/undgraph"
)

const version = "1.0.0"

// defaultFile is read when no path is given on the command line.
const defaultFile = "undgraph.txt"

type options struct {
	Verbose bool `short:"v" long:"verbose" description:"Enable debug logging"`
	Version bool `long:"version" description:"Print the version and exit"`

	Args struct {
		File  string   `positional-arg-name:"file" description:"undgraph data file, - for stdin (default: undgraph.txt)"`
		Modes []string `positional-arg-name:"mode" description:"forcemsaa and/or forcesave"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Println("undgraph " + version)
		return
	}

	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logger := logrus.WithField("tag", "Main")

	path := opts.Args.File
	if path == "" {
		logger.WithField("path", defaultFile).Info("no undgraph file specified, using default")
		path = defaultFile
	}

	var (
		data *undgraph.GraphData
		err  error
	)
	name := path
	if path == "-" {
		name = "stdin"
		logger.Info("reading graph data from stdin")
		data, err = undgraph.ReadGraphData(os.Stdin)
	} else {
		logger.WithField("path", path).Info("reading graph file")
		data, err = undgraph.LoadGraphData(path)
	}
	if err != nil {
		logger.WithError(err).Fatal("failed to load graph data")
	}

	data.ApplyModeArgs(opts.Args.Modes)

	logger.WithFields(logrus.Fields{
		"msaa":       data.MSAA,
		"save":       data.Save,
		"line_width": data.LineWidth,
		"frame_px":   data.FramePx,
	}).Info("graph options")

	if data.FramePx < 1e-7 {
		// The polyline can then touch or overflow the intended plot box.
		logger.Warn("frame_px is close to zero, the graph may reach the window edges")
	}

	mesh := undgraph.BuildMesh(data, undgraph.Width, undgraph.Height)

	viewer := undgraph.NewViewer(data, mesh, name)
	if err := viewer.Run(); err != nil {
		logger.WithError(err).Fatal("window failed")
	}
}
