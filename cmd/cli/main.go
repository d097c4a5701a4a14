// plreport - PL-Unit test report generator
//
// plreport converts SWI-Prolog PL-Unit test runner output into an
// xunit-style XML report for CI dashboards, and runs batch regression
// tests over directories of input/expected-output file pairs.
package main

import (
	"os"

	"github.com/plreport/plreport/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
