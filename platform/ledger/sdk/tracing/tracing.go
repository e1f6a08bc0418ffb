/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tracing

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/common/services/logging"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/services/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type TracerType string

const (
	None        TracerType = "none"
	Otlp        TracerType = "otlp"
	File        TracerType = "file"
	Console     TracerType = "console"
	ServiceName            = "ledger-client"
)

var logger = logging.MustGetLogger("ledger.tracing")

// consoleOutput receives console spans. Stdout is left to the command output.
var consoleOutput io.Writer = os.Stderr

// Provider is a tracer provider that must be shut down to flush pending spans
type Provider struct {
	trace.TracerProvider
	shutdown func(ctx context.Context) error
}

func (p *Provider) Shutdown(ctx context.Context) error {
	if p.shutdown == nil {
		return nil
	}
	return p.shutdown(ctx)
}

func NewTracerProvider(c *config.Tracing) (*Provider, error) {
	ratio := 1.0
	if c.Sampling != nil {
		ratio = *c.Sampling
	}
	switch TracerType(c.Provider) {
	case None, "":
		logger.Debugf("no-op tracer provider selected")
		return NoopProvider(), nil
	case Otlp:
		logger.Infof("OTLP tracer provider selected")
		return GrpcProvider(c.Otlp.Address, ratio)
	case File:
		logger.Infof("file tracer provider selected")
		return FileProvider(c.File.Path, ratio)
	case Console:
		logger.Infof("console tracer provider selected")
		return ConsoleProvider(consoleOutput, ratio)
	default:
		return nil, errors.Errorf("unknown tracing provider [%s]", c.Provider)
	}
}

func NoopProvider() *Provider {
	return &Provider{TracerProvider: noop.NewTracerProvider()}
}

func FileProvider(path string, ratio float64) (*Provider, error) {
	if len(path) == 0 {
		return nil, errors.New("filepath must not be empty")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open output file")
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "failed to initialize stdouttrace")
	}
	p, err := providerWithExporter(context.Background(), exporter, ratio)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	flush := p.shutdown
	p.shutdown = func(ctx context.Context) error {
		err := flush(ctx)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}
	return p, nil
}

func ConsoleProvider(w io.Writer, ratio float64) (*Provider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(w))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize stdouttrace")
	}
	return providerWithExporter(context.Background(), exporter, ratio)
}

func GrpcProvider(address string, ratio float64) (*Provider, error) {
	if len(address) == 0 {
		return nil, errors.New("empty otlp address")
	}
	exporter, err := otlptrace.New(context.Background(), otlptracegrpc.NewClient(otlptracegrpc.WithInsecure(), otlptracegrpc.WithEndpoint(address)))
	if err != nil {
		return nil, errors.Wrap(err, "failed creating trace exporter")
	}
	return providerWithExporter(context.Background(), exporter, ratio)
}

func providerWithExporter(ctx context.Context, exporter sdktrace.SpanExporter, ratio float64) (*Provider, error) {
	r, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(ServiceName),
	))
	if err != nil {
		return nil, errors.WithMessagef(err, "failed creating resource")
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithExportTimeout(1*time.Second)),
		sdktrace.WithResource(r),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return &Provider{TracerProvider: tp, shutdown: tp.Shutdown}, nil
}
