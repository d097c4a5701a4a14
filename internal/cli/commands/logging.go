package commands

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logger writes human-readable diagnostics to stderr. Level is controlled
// by the root command's --debug flag via the global zerolog level.
var logger = log.Output(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.RFC3339,
})
