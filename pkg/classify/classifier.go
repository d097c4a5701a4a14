package classify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/plreport/plreport/pkg/parser"
)

// ErrHalt is returned by Process after a standalone compiler error when the
// classifier is not configured to keep going. The run is still valid; the
// caller should stop feeding lines and call Finalize.
var ErrHalt = errors.New("processing halted after compiler error")

// Classifier is the streaming state machine. It holds the currently open
// test case (if any), its accumulated detail buffer, and the running
// counters. Not safe for concurrent use; feed lines from a single loop.
type Classifier struct {
	baseDir   string
	keepGoing bool

	// In-flight state for the open case.
	open        *TestCase
	detail      strings.Builder
	failureSeen bool
	halted      bool

	cases  []TestCase
	passed int
	failed int
	errors int
	lines  int
}

// Option configures classifier behavior.
type Option func(*Classifier)

// WithBaseDir sets the directory compiler-error file paths are relativized
// against. Defaults to the current working directory.
func WithBaseDir(dir string) Option {
	return func(c *Classifier) {
		c.baseDir = dir
	}
}

// WithKeepGoing makes the classifier continue scanning for further events
// after a standalone compiler error instead of halting.
func WithKeepGoing(keep bool) Option {
	return func(c *Classifier) {
		c.keepGoing = keep
	}
}

// New creates a classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Process classifies a single line, updating cases and counters.
// Returns ErrHalt when a standalone compiler error terminates processing.
func (c *Classifier) Process(_ context.Context, line *parser.Line) error {
	if c.halted {
		return ErrHalt
	}
	c.lines++

	if c.open == nil {
		return c.processTopLevel(line)
	}
	c.processInBody(line)
	return nil
}

func (c *Classifier) processTopLevel(line *parser.Line) error {
	shape, groups := matchShape(topLevelShapes, line.Content)
	switch shape {
	case shapeStandaloneError:
		c.emitCompilerError(groups)
		if !c.keepGoing {
			c.halted = true
			return ErrHalt
		}

	case shapeCompletedTest:
		c.cases = append(c.cases, TestCase{
			Name:   groups[1],
			Status: StatusPassed,
		})
		c.passed++

	case shapeBeginTest:
		// Tentatively passed until an in-body error says otherwise.
		c.passed++
		c.open = &TestCase{
			Name:   groups[1],
			Status: StatusPassed,
		}
		c.failureSeen = false
		c.detail.Reset()
		c.detail.WriteString(line.Content)
		c.detail.WriteByte('\n')
	}
	// Unmatched top-level lines are ignored.
	return nil
}

func (c *Classifier) processInBody(line *parser.Line) {
	// Every line while a case is open becomes detail, including the one
	// that closes it.
	c.detail.WriteString(line.Content)
	c.detail.WriteByte('\n')

	shape, _ := matchShape(inBodyShapes, line.Content)
	switch shape {
	case shapeInBodyError:
		if !c.failureSeen {
			c.failureSeen = true
			c.open.Status = StatusFailed
			c.passed--
			c.failed++
		}

	case shapeEndOfTest:
		if c.failureSeen {
			c.open.Detail = c.detail.String()
		}
		c.cases = append(c.cases, *c.open)
		c.open = nil
		c.failureSeen = false
		c.detail.Reset()
	}
}

// emitCompilerError finalizes a self-contained error case from a standalone
// compiler diagnostic. It never opens a case.
func (c *Classifier) emitCompilerError(groups []string) {
	file := groups[1]
	lineNo, _ := strconv.Atoi(groups[2])
	c.cases = append(c.cases, TestCase{
		Name:   fmt.Sprintf("Compiler error in %s line %s", c.relativize(file), groups[2]),
		Status: StatusError,
		Detail: groups[4],
		SourceLocation: &SourceLocation{
			File: file,
			Line: lineNo,
		},
	})
	c.errors++
}

// relativize shortens a diagnostic file path relative to the base directory.
// Paths that cannot be relativized are returned unchanged.
func (c *Classifier) relativize(path string) string {
	base := c.baseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return path
		}
		base = wd
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}

// Finalize completes classification and returns the result. A case still
// open at end of stream is dropped and its counter rolled back, so every
// case in the result has a terminal status.
func (c *Classifier) Finalize(_ context.Context) (*Result, error) {
	if c.open != nil {
		if c.failureSeen {
			c.failed--
		} else {
			c.passed--
		}
		c.open = nil
		c.failureSeen = false
		c.detail.Reset()
	}

	return &Result{
		Cases:          c.cases,
		Passed:         c.passed,
		Failed:         c.failed,
		Errors:         c.errors,
		LinesProcessed: c.lines,
	}, nil
}

// Halted reports whether a standalone compiler error stopped processing.
func (c *Classifier) Halted() bool {
	return c.halted
}

// Reset clears all state for reuse.
func (c *Classifier) Reset() {
	c.open = nil
	c.failureSeen = false
	c.halted = false
	c.detail.Reset()
	c.cases = nil
	c.passed, c.failed, c.errors, c.lines = 0, 0, 0, 0
}
