/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package streamer

import (
	"context"
	"iter"

	"github.com/hyperledger-labs/ledger-client-sdk/platform/common/services/logging"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/common/utils/collections/iterators"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/driver"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/query"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Unbounded is the limit of a stream that runs until the end of the data
const Unbounded = -1

var logger = logging.MustGetLogger("ledger.streamer")

type options struct {
	name           string
	logger         logging.Logger
	tracerProvider trace.TracerProvider
	metrics        *Metrics
}

type Option func(*options)

// WithName labels the streams in logs, spans and metrics
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Streamer turns a paged repository into lazy item streams.
// A Streamer holds no per-stream state and can serve any number of concurrent streams.
type Streamer[T any] struct {
	name       string
	repository driver.PagedRepository[T]
	idOf       driver.IDGetter[T]
	compare    Comparator[T]

	logger  logging.Logger
	tracer  trace.Tracer
	metrics *Metrics
}

// New returns a Streamer over repository. idOf yields the cursor of the page following an item.
func New[T any](repository driver.PagedRepository[T], idOf driver.IDGetter[T], opts ...Option) *Streamer[T] {
	o := &options{name: "items"}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger
	}
	if o.tracerProvider == nil {
		o.tracerProvider = noop.NewTracerProvider()
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(&disabled.Provider{})
	}
	return &Streamer[T]{
		name:       o.name,
		repository: repository,
		idOf:       idOf,
		logger:     o.logger.Named(o.name),
		tracer:     o.tracerProvider.Tracer("ledger_streamer"),
		metrics:    o.metrics,
	}
}

// WithOrderCheck returns a copy of the streamer that verifies every page against the
// requested order using compare. Out of order items fail the stream with a *driver.LogicError.
func (s *Streamer[T]) WithOrderCheck(compare Comparator[T]) *Streamer[T] {
	c := *s
	c.compare = compare
	return &c
}

// Search streams every item matching params, across as many pages as needed
func (s *Streamer[T]) Search(ctx context.Context, params query.Params) iterators.Iterator[*T] {
	return s.SearchWithLimit(ctx, params, Unbounded)
}

// SearchWithLimit streams at most limit items. A negative limit is Unbounded, zero yields
// nothing without contacting the repository.
// The returned iterator has a single consumer and is not safe for concurrent use.
func (s *Streamer[T]) SearchWithLimit(ctx context.Context, params query.Params, limit int) iterators.Iterator[*T] {
	return newStream(ctx, s, params, limit)
}

// Seq is the range-over-func form of SearchWithLimit. Each range loop runs its own stream;
// a failure is the last pair produced, and breaking out of the loop stops the stream.
func (s *Streamer[T]) Seq(ctx context.Context, params query.Params, limit int) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		iterators.Seq2(s.SearchWithLimit(ctx, params, limit))(yield)
	}
}
