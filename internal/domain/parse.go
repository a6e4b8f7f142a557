package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// headerIDRe matches a storm header identifier: two-letter basin code,
// two-digit cyclone number, four-digit year, e.g. "AL092005".
var headerIDRe = regexp.MustCompile(`^([A-Z]{2})(\d{2})(\d{4})$`)

// minDataFields is the number of leading observation columns the parser
// requires; the trailing wind-radii columns vary by archive vintage.
const minDataFields = 8

// FormatError is a fatal dataset error: the input is malformed or truncated
// and no partial result is produced. Line numbers are 1-based.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("hurdat2: line %d: %s", e.Line, e.Reason)
}

// Warning records a non-fatal data integrity anomaly: the offending
// observation is excluded from the parse result and the run continues.
// Legacy archive data occasionally contains these.
type Warning struct {
	Line    int    `json:"line"`
	StormID string `json:"storm_id"`
	Reason  string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d (storm %s): %s", w.Line, w.StormID, w.Reason)
}

// ParseDataset converts raw HURDAT2 text into the ordered storm sequence.
// It returns the storms, any integrity warnings for excluded observations,
// and a *FormatError if the input is structurally invalid. Parsing the same
// input always yields a structurally equal result.
func ParseDataset(raw []byte) ([]Storm, []Warning, error) {
	lines := strings.Split(string(raw), "\n")
	for len(lines) > 0 && strings.TrimSpace(strings.TrimRight(lines[len(lines)-1], "\r")) == "" {
		lines = lines[:len(lines)-1]
	}

	var storms []Storm
	var warnings []Warning

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(strings.TrimRight(lines[i], "\r"))
		if line == "" {
			i++
			continue
		}

		storm, declared, err := parseHeader(line, i+1)
		if err != nil {
			return nil, nil, err
		}
		i++

		for consumed := 0; consumed < declared; consumed++ {
			if i >= len(lines) {
				return nil, nil, &FormatError{
					Line:   i,
					Reason: fmt.Sprintf("storm %s: input ends after %d of %d declared observations", storm.ID(), consumed, declared),
				}
			}
			data := strings.TrimSpace(strings.TrimRight(lines[i], "\r"))
			if data == "" {
				return nil, nil, &FormatError{
					Line:   i + 1,
					Reason: fmt.Sprintf("storm %s: blank line after %d of %d declared observations", storm.ID(), consumed, declared),
				}
			}
			if isHeaderLine(data) {
				return nil, nil, &FormatError{
					Line:   i + 1,
					Reason: fmt.Sprintf("storm %s: next header after %d of %d declared observations", storm.ID(), consumed, declared),
				}
			}

			obs, warn, err := parseObservation(data, i+1)
			if err != nil {
				return nil, nil, err
			}
			i++

			if warn != nil {
				warn.StormID = storm.ID()
				warnings = append(warnings, *warn)
				continue
			}
			if n := len(storm.Observations); n > 0 && obs.Timestamp.Before(storm.Observations[n-1].Timestamp) {
				warnings = append(warnings, Warning{
					Line:    i,
					StormID: storm.ID(),
					Reason:  fmt.Sprintf("timestamp %s precedes previous observation", obs.Timestamp.Format(time.RFC3339)),
				})
				continue
			}
			storm.Observations = append(storm.Observations, obs)
		}

		storms = append(storms, storm)
	}

	return storms, warnings, nil
}

// parseHeader parses a storm header line. Any line appearing where a header
// is expected that does not match the header layout is a FormatError.
func parseHeader(line string, lineNum int) (Storm, int, error) {
	fields := splitFields(line)
	if len(fields) < 3 {
		return Storm{}, 0, &FormatError{Line: lineNum, Reason: fmt.Sprintf("expected storm header, got %q", line)}
	}

	m := headerIDRe.FindStringSubmatch(fields[0])
	if m == nil {
		return Storm{}, 0, &FormatError{Line: lineNum, Reason: fmt.Sprintf("invalid storm identifier %q", fields[0])}
	}
	cycloneNo, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	declared, err := strconv.Atoi(fields[2])
	if err != nil {
		return Storm{}, 0, &FormatError{Line: lineNum, Reason: fmt.Sprintf("invalid observation count %q", fields[2])}
	}
	if declared <= 0 {
		return Storm{}, 0, &FormatError{Line: lineNum, Reason: fmt.Sprintf("declared observation count %d must be positive", declared)}
	}

	return Storm{
		Basin:     m[1],
		CycloneNo: cycloneNo,
		Year:      year,
		Name:      fields[1],
	}, declared, nil
}

// parseObservation parses one data line. Structural problems (bad field
// count, unparseable numbers or dates) are FormatErrors; recognized-but-
// anomalous values (unknown status, out-of-range coordinates) yield a
// Warning and exclude the observation.
func parseObservation(line string, lineNum int) (Observation, *Warning, error) {
	fields := splitFields(line)
	if len(fields) < minDataFields {
		return Observation{}, nil, &FormatError{
			Line:   lineNum,
			Reason: fmt.Sprintf("observation has %d fields, want at least %d", len(fields), minDataFields),
		}
	}

	ts, err := time.Parse("200601021504", fields[0]+fields[1])
	if err != nil {
		return Observation{}, nil, &FormatError{Line: lineNum, Reason: fmt.Sprintf("invalid date/time %q %q", fields[0], fields[1])}
	}

	lat, err := parseCoordinate(fields[4], 'N', 'S')
	if err != nil {
		return Observation{}, nil, &FormatError{Line: lineNum, Reason: fmt.Sprintf("invalid latitude %q", fields[4])}
	}
	lon, err := parseCoordinate(fields[5], 'E', 'W')
	if err != nil {
		return Observation{}, nil, &FormatError{Line: lineNum, Reason: fmt.Sprintf("invalid longitude %q", fields[5])}
	}

	wind, err := strconv.Atoi(fields[6])
	if err != nil {
		return Observation{}, nil, &FormatError{Line: lineNum, Reason: fmt.Sprintf("invalid max wind %q", fields[6])}
	}
	pressure, err := strconv.Atoi(fields[7])
	if err != nil {
		return Observation{}, nil, &FormatError{Line: lineNum, Reason: fmt.Sprintf("invalid min pressure %q", fields[7])}
	}

	obs := Observation{
		Timestamp:        ts.UTC(),
		RecordIdentifier: RecordIdentifier(fields[2]),
		Status:           Status(fields[3]),
		Lat:              lat,
		Lon:              lon,
		MaxWindKt:        wind,
		MinPressureMb:    pressure,
	}

	if !obs.Status.IsValid() {
		return Observation{}, &Warning{Line: lineNum, Reason: fmt.Sprintf("unrecognized status code %q", fields[3])}, nil
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Observation{}, &Warning{Line: lineNum, Reason: fmt.Sprintf("coordinate out of range (%.1f, %.1f)", lat, lon)}, nil
	}
	if !obs.RecordIdentifier.IsValid() {
		return Observation{}, &Warning{Line: lineNum, Reason: fmt.Sprintf("unrecognized record identifier %q", fields[2])}, nil
	}

	return obs, nil, nil
}

// parseCoordinate converts a hemisphere-suffixed value like "28.0N" or
// "80.0W" to signed decimal degrees. The neg hemisphere letter flips sign.
func parseCoordinate(s string, pos, neg byte) (float64, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("coordinate too short")
	}
	suffix := s[len(s)-1]
	v, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return 0, err
	}
	switch suffix {
	case pos:
		return v, nil
	case neg:
		return -v, nil
	default:
		return 0, fmt.Errorf("unknown hemisphere suffix %q", string(suffix))
	}
}

func isHeaderLine(line string) bool {
	fields := splitFields(line)
	return len(fields) >= 3 && headerIDRe.MatchString(fields[0])
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
