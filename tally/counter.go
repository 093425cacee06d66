package tally

import (
	"context"
	"sync"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	Name    = "Tally Counter API"
	Version = "1.0.0"
)

const tracerName = "tally-counter"

type Service interface {
	Read(ctx context.Context) int
	Increase(ctx context.Context) int
	Reset(ctx context.Context) int
}

type Option func(counter *Counter)

func WithLogger(log *zerolog.Logger) Option {
	return func(counter *Counter) {
		counter.log = log
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(counter *Counter) {
		counter.recorder = recorder
	}
}

// Counter is the process wide tally. The zero value is not usable, create one
// with NewCounter and share the pointer.
type Counter struct {
	mu       sync.Mutex
	value    int
	log      *zerolog.Logger
	recorder Recorder
}

func NewCounter(options ...Option) *Counter {
	counter := &Counter{}
	for _, option := range options {
		option(counter)
	}
	if counter.log == nil {
		counter.log = &log.Logger
	}
	if counter.recorder == nil {
		counter.recorder = nopRecorder{}
	}

	return counter
}

// Provide builds the counter from injected collaborators.
func Provide(log *zerolog.Logger, recorder Recorder) *Counter {
	return NewCounter(WithLogger(log), WithRecorder(recorder))
}

var Set = wire.NewSet(
	Provide,
	wire.Bind(new(Service), new(*Counter)),
)

func (c *Counter) Read(ctx context.Context) int {
	return c.apply(ctx, Read, func(value int) int { return value })
}

func (c *Counter) Increase(ctx context.Context) int {
	return c.apply(ctx, Increase, func(value int) int { return value + 1 })
}

func (c *Counter) Reset(ctx context.Context) int {
	return c.apply(ctx, Reset, func(int) int { return 0 })
}

// apply runs the mutation, the log line and the observation under one lock so
// the reported count is always the count this call produced.
func (c *Counter) apply(ctx context.Context, op Operation, mutate func(value int) int) int {
	_, span := otel.Tracer(tracerName).Start(ctx, "counter "+op.String())
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = mutate(c.value)
	count := c.value

	c.log.Info().Str("component", "counter").Stringer("operation", op).Int("count", count).Msg("counter " + op.String())
	c.recorder.Observe(op, count)
	span.SetAttributes(attribute.Int("tally.count", count))

	return count
}
