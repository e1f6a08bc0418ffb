/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tracing

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/services/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNoopProvider(t *testing.T) {
	for _, provider := range []string{"", "none"} {
		p, err := NewTracerProvider(&config.Tracing{Provider: provider})
		require.NoError(t, err)
		assert.IsType(t, noop.NewTracerProvider(), p.TracerProvider)
		assert.NoError(t, p.Shutdown(context.Background()))
	}
}

func TestUnknownProvider(t *testing.T) {
	_, err := NewTracerProvider(&config.Tracing{Provider: "jaeger"})
	require.ErrorContains(t, err, "unknown tracing provider [jaeger]")
}

func TestMissingSettings(t *testing.T) {
	_, err := NewTracerProvider(&config.Tracing{Provider: "file"})
	require.Error(t, err)
	_, err = NewTracerProvider(&config.Tracing{Provider: "otlp"})
	require.Error(t, err)
}

func TestFileProvider(t *testing.T) {
	c := &config.Tracing{Provider: "file"}
	c.File.Path = filepath.Join(t.TempDir(), "traces.json")
	p, err := NewTracerProvider(c)
	require.NoError(t, err)

	_, span := p.Tracer("test").Start(context.Background(), "fetch_page")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	raw, err := os.ReadFile(c.File.Path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Name":"fetch_page"`)
	assert.Contains(t, string(raw), ServiceName)
}

func TestConsoleProviderSampling(t *testing.T) {
	var buf bytes.Buffer
	p, err := ConsoleProvider(&buf, 0)
	require.NoError(t, err)

	_, span := p.Tracer("test").Start(context.Background(), "fetch_page")
	assert.False(t, span.SpanContext().IsSampled())
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
	assert.Empty(t, buf.String())
}

func TestConsoleProviderWritesToStderr(t *testing.T) {
	assert.Equal(t, os.Stderr, consoleOutput)

	var buf bytes.Buffer
	consoleOutput = &buf
	defer func() { consoleOutput = os.Stderr }()

	p, err := NewTracerProvider(&config.Tracing{Provider: "console"})
	require.NoError(t, err)
	_, span := p.Tracer("test").Start(context.Background(), "console_span")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "console_span")
}
