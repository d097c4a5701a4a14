package classify

import "regexp"

// lineShape enumerates the recognized line shapes. The classifier checks
// shapes in a fixed priority order depending on whether a case is open;
// a line matching several shapes obeys that priority.
type lineShape int

const (
	shapeNone lineShape = iota

	// Top-level shapes (no case open).
	shapeStandaloneError // ERROR: <file>:<line>:<col>: <message>
	shapeCompletedTest   // % PL-Unit: <name> ... done
	shapeBeginTest       // % PL-Unit: <name> ...

	// In-body shapes (case open).
	shapeInBodyError // ERROR: <file>:<line>: prefix, no column
	shapeEndOfTest   // ... done
)

var (
	reStandaloneError = regexp.MustCompile(`^ERROR: (\S+):(\d+):(\d+): (.*)$`)
	reCompletedTest   = regexp.MustCompile(`^% PL-Unit: (\S+) \.* done$`)
	reBeginTest       = regexp.MustCompile(`^% PL-Unit: (\S+) \.*$`)
	reInBodyError     = regexp.MustCompile(`^ERROR: (\S+):(\d+):`)
	reEndOfTest       = regexp.MustCompile(`^\.* done$`)
)

// shapeMatcher pairs a shape with its pattern. Order within a table is the
// classification priority.
type shapeMatcher struct {
	shape lineShape
	re    *regexp.Regexp
}

var topLevelShapes = []shapeMatcher{
	{shapeStandaloneError, reStandaloneError},
	{shapeCompletedTest, reCompletedTest},
	{shapeBeginTest, reBeginTest},
}

var inBodyShapes = []shapeMatcher{
	{shapeInBodyError, reInBodyError},
	{shapeEndOfTest, reEndOfTest},
}

// matchShape classifies a line against a shape table, returning the first
// matching shape and its capture groups, or shapeNone.
func matchShape(table []shapeMatcher, content string) (lineShape, []string) {
	for _, m := range table {
		if groups := m.re.FindStringSubmatch(content); groups != nil {
			return m.shape, groups
		}
	}
	return shapeNone, nil
}
