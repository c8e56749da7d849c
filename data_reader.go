package undgraph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// An undgraph file is line-oriented text. The first line is a header starting
// with the magic token followed by optional key:value tags; every following
// line holds one sample. The series ends at the first line without a numeric
// value, so a blank line or a trailing comment terminates it cleanly:
//
//	undgraph msaa:1 lw:2.5 frame_px:16
//	0.5
//	1.25
//	-3
//
// Unknown tags and malformed tag values are never fatal: unknown tags are
// logged and skipped, malformed values fall back to the defaults.

// HeaderMagic is the token every undgraph file must start with.
const HeaderMagic = "undgraph"

// ErrInvalidHeader is returned when the first line of the input does not
// start with the undgraph magic token.
var ErrInvalidHeader = errors.New("invalid header format")

// Split the header on any number of spaces or tabs.
var headerSplitter = regexp.MustCompile("[ \t]+")

// floatPrefix matches the longest leading token strtof-style parsing would
// consume: optional sign, then inf/infinity/nan, a hex literal with an
// optional binary exponent, or digits with an optional fraction and exponent.
var floatPrefix = regexp.MustCompile(`^[+-]?(?i:inf(?:inity)?|nan|0x(?:[0-9a-f]+(?:\.[0-9a-f]*)?|\.[0-9a-f]+)(?:p[+-]?[0-9]+)?|(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)`)

// intPrefix matches the longest leading integer, sign included.
var intPrefix = regexp.MustCompile(`^[+-]?[0-9]+`)

// parseLeadingFloat parses the longest numeric prefix of s. It reports false
// when s has no numeric prefix at all; trailing garbage after the number is
// allowed and ignored, and an overflowing value saturates to ±Inf.
func parseLeadingFloat(s string) (float64, bool) {
	m := floatPrefix.FindString(s)
	if m == "" {
		return 0, false
	}

	// Hex literals may omit the binary exponent ParseFloat insists on.
	if strings.ContainsAny(m, "xX") && !strings.ContainsAny(m, "pP") {
		m += "p0"
	}

	f, err := strconv.ParseFloat(m, 64)
	if err != nil && !isRangeError(err) {
		return 0, false
	}
	return f, true
}

// parseLeadingInt is the integer flavor of parseLeadingFloat.
func parseLeadingInt(s string) (int, bool) {
	m := intPrefix.FindString(s)
	if m == "" {
		return 0, false
	}

	n, err := strconv.Atoi(m)
	if err != nil && !isRangeError(err) {
		return 0, false
	}
	return n, true
}

// isRangeError reports whether err is strconv's out-of-range error. The
// prefix matchers only emit well-formed literals, so a range overflow is the
// only error the conversions can hit; strtof-style parsing saturates the
// value instead of rejecting the token.
func isRangeError(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)
}

// floatTag extracts the value of a "key:<float>" header token. The token has
// already been matched by key prefix; the value only applies when the key is
// followed by a colon and a parseable number, otherwise the tag keeps its
// default.
func floatTag(token, key string) (float64, bool) {
	rest, found := strings.CutPrefix(token, key+":")
	if !found {
		return 0, false
	}
	return parseLeadingFloat(rest)
}

// intTag is the integer flavor of floatTag, used for the boolean 0/1 tags.
func intTag(token, key string) (int, bool) {
	rest, found := strings.CutPrefix(token, key+":")
	if !found {
		return 0, false
	}
	return parseLeadingInt(rest)
}

// parseHeaderTags dispatches the header tokens after the magic by key prefix.
// Unknown tokens are logged with a warning and skipped.
func parseHeaderTags(g *GraphData, tokens []string, logger logrus.FieldLogger) {
	for _, token := range tokens {
		switch {
		case strings.HasPrefix(token, "msaa"):
			if v, ok := intTag(token, "msaa"); ok {
				g.MSAA = v != 0
			}
		case strings.HasPrefix(token, "save"):
			if v, ok := intTag(token, "save"); ok {
				g.Save = v != 0
			}
		case strings.HasPrefix(token, "lw"):
			if v, ok := floatTag(token, "lw"); ok {
				g.LineWidth = v
			}
		case strings.HasPrefix(token, "frame_px"):
			if v, ok := floatTag(token, "frame_px"); ok {
				g.FramePx = v
			}
		default:
			logger.WithField("tag", token).Warn("unknown tag")
		}
	}
}

// ReadGraphData parses undgraph data from r. It fails only on an unreadable
// input or a bad header; a file with no samples loads as an empty graph.
func ReadGraphData(r io.Reader) (*GraphData, error) {
	logger := logrus.WithField("tag", "GraphReader")

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, fmt.Errorf("%w: empty input", ErrInvalidHeader)
	}

	tokens := Filter(headerSplitter.Split(strings.TrimSpace(scanner.Text()), -1), func(value string) bool {
		return len(value) > 0
	})
	if len(tokens) == 0 || tokens[0] != HeaderMagic {
		return nil, fmt.Errorf("%w: first token must be %q", ErrInvalidHeader, HeaderMagic)
	}

	data := newGraphData()
	parseHeaderTags(data, tokens[1:], logger)

	// One sample per line until the first line that does not start with a
	// number. The running extrema go through Min/Max with the accumulator
	// first so NaN samples are stored but never become an extremum.
	data.MaxValue = math.Inf(-1)
	data.MinValue = math.Inf(1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		f, ok := parseLeadingFloat(line)
		if !ok {
			logger.WithField("line", line).Debug("series ended by a non-numeric line")
			break
		}

		data.MaxValue = Max(data.MaxValue, f)
		data.MinValue = Min(data.MinValue, f)
		data.Samples = append(data.Samples, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}

	if len(data.Samples) == 0 {
		// Accepted degenerate case: the viewer shows an empty plot.
		logger.Warn("no samples found, the graph will be empty")
		data.MaxValue = 0
		data.MinValue = 0
		data.TickSize = 0
		return data, nil
	}

	data.TickSize = math.Abs(data.MaxValue-data.MinValue) / float64(len(data.Samples))
	logger.WithField("count", len(data.Samples)).Info("found values")

	return data, nil
}

// LoadGraphData reads undgraph data from the file at path.
func LoadGraphData(path string) (*GraphData, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	defer fp.Close()

	return ReadGraphData(fp)
}
