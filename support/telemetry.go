package support

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"

	"github.com/weegigs/tally-go/tally"
)

const ServiceName = "tally"

// Tracing owns the tracer provider registered as the otel global. With the
// none exporter nothing is registered and spans stay no-ops.
type Tracing struct {
	Exporter string
	provider *trace.TracerProvider
}

func (t *Tracing) Enabled() bool {
	return t.provider != nil
}

func NewTracing(ctx context.Context, cfg Config) (*Tracing, func(), error) {
	return newTracing(ctx, cfg, os.Stdout)
}

func newTracing(ctx context.Context, cfg Config, console io.Writer) (*Tracing, func(), error) {
	name := strings.ToLower(cfg.TraceExporter)
	if name == "" {
		name = ExporterNone
	}
	tracing := &Tracing{Exporter: name}

	var exporter trace.SpanExporter
	var err error
	switch name {
	case ExporterNone:
		return tracing, func() {}, nil
	case ExporterConsole:
		exporter, err = ConsoleExporter(console)
	case ExporterOTLP:
		exporter, err = OTLPExporter(ctx, cfg.TraceEndpoint, cfg.TraceInsecure)
	case ExporterJaeger:
		exporter, err = JaegerExporter(cfg.TraceEndpoint)
	default:
		err = errors.Errorf("unknown trace exporter %q", cfg.TraceExporter)
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "can't create %s trace exporter", name)
	}

	tracing.provider = trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
			attribute.String("service.version", tally.Version),
		)),
	)
	otel.SetTracerProvider(tracing.provider)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracing.provider.Shutdown(ctx)
	}

	return tracing, cleanup, nil
}

func ConsoleExporter(w io.Writer) (trace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
}

func OTLPExporter(ctx context.Context, endpoint string, insecure bool) (*otlptrace.Exporter, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	} else {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
	}

	client := otlptracegrpc.NewClient(opts...)
	return otlptrace.New(ctx, client)
}

func JaegerExporter(endpoint string) (*jaeger.Exporter, error) {
	return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
}
