package support

import (
	"github.com/google/wire"

	"github.com/weegigs/tally-go/tally"
)

var Set = wire.NewSet(
	NewLogger,
	NewMetrics,
	NewTracing,
	wire.Bind(new(tally.Recorder), new(*Metrics)),
)
