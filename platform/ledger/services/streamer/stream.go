/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package streamer

import (
	"context"
	"time"

	"github.com/hyperledger-labs/ledger-client-sdk/platform/common/services/logging"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/driver"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/query"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type state int

const (
	// initialized means a page must be fetched before the next item
	initialized state = iota
	emitting
	ended
	failed
)

// stream is the state of one traversal. At most one page is held at any time.
type stream[T any] struct {
	ctx      context.Context
	streamer *Streamer[T]
	logger   logging.Logger

	params    query.Params
	cursor    string
	remaining int

	page     []*T
	pos      int
	lastPage bool
	// previous is the last item of the previous page, used by the order check
	previous *T

	state   state
	err     error
	fetches int
	yielded int
}

func newStream[T any](ctx context.Context, s *Streamer[T], params query.Params, limit int) *stream[T] {
	params = params.Normalized()
	st := &stream[T]{
		ctx:       ctx,
		streamer:  s,
		logger:    s.logger,
		params:    params,
		cursor:    params.ID,
		remaining: limit,
	}
	if limit < 0 {
		st.remaining = Unbounded
	}
	st.logger.Debugf("start stream: page size [%d], order [%s], cursor [%s], limit [%d]", params.PageSize, params.Order, params.ID, limit)
	if limit == 0 {
		st.end("limit is zero")
	}
	return st
}

func (s *stream[T]) Next() (*T, error) {
	for {
		switch s.state {
		case ended:
			return nil, nil
		case failed:
			return nil, s.err
		case initialized:
			if err := s.fetch(); err != nil {
				s.fail(err)
				return nil, err
			}
		case emitting:
			if s.pos < len(s.page) {
				return s.emit(), nil
			}
			if s.lastPage {
				s.end("last page consumed")
				continue
			}
			s.state = initialized
		}
	}
}

// Close stops the stream. Items of the current page are discarded and nothing more is fetched.
func (s *stream[T]) Close() {
	if s.state == initialized || s.state == emitting {
		s.end("closed by consumer")
	}
}

func (s *stream[T]) emit() *T {
	item := s.page[s.pos]
	s.pos++
	s.yielded++
	s.streamer.metrics.Items.With("stream", s.streamer.name).Add(1)

	if s.pos == len(s.page) {
		// the cursor always comes from the last item of the page just consumed
		s.cursor = s.streamer.idOf(item)
		s.previous = item
	}
	if s.remaining > 0 {
		s.remaining--
		if s.remaining == 0 {
			s.end("limit reached")
		}
	}
	return item
}

func (s *stream[T]) fetch() error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	params := s.params.WithID(s.cursor)

	ctx, span := s.streamer.tracer.Start(s.ctx, "fetch_page", trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(
		attribute.String("stream", s.streamer.name),
		attribute.String("cursor", params.ID),
		attribute.String("order", string(params.Order)),
		attribute.Int("page_size", params.PageSize),
		attribute.Int("fetch", s.fetches+1),
	))
	defer span.End()

	s.fetches++
	s.streamer.metrics.Fetches.With("stream", s.streamer.name).Add(1)
	start := time.Now()
	page, err := s.streamer.repository.Search(ctx, params)
	s.streamer.metrics.FetchDuration.With("stream", s.streamer.name).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	// a fetch that completes after cancellation is discarded
	if err := s.ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if page == nil {
		err := driver.NewLogicError("repository returned no page for cursor [%s]", params.ID)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.Int("items", len(page.Items)), attribute.Bool("last", page.Last))
	s.logger.Debugf("fetched page [%d] with cursor [%s]: [%d] items, last [%v]", s.fetches, params.ID, len(page.Items), page.Last)

	if err := s.validate(page.Items, params); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if len(page.Items) == 0 {
		s.end("empty page")
		return nil
	}
	s.page = page.Items
	s.pos = 0
	s.lastPage = page.Last || len(page.Items) < params.PageSize
	s.state = emitting
	return nil
}

func (s *stream[T]) validate(items []*T, params query.Params) error {
	if len(items) > params.PageSize {
		return driver.NewLogicError("page with cursor [%s] has [%d] items, more than the page size [%d]", params.ID, len(items), params.PageSize)
	}
	for i, item := range items {
		if item == nil {
			return driver.NewLogicError("page with cursor [%s] has a nil item at position [%d]", params.ID, i)
		}
	}
	if s.streamer.compare == nil || len(items) == 0 {
		return nil
	}
	prev := s.previous
	for i, item := range items {
		if prev != nil && !s.inOrder(prev, item, params.Order) {
			return driver.NewLogicError("page with cursor [%s] is not in [%s] order at position [%d]", params.ID, params.Order, i)
		}
		prev = item
	}
	return nil
}

func (s *stream[T]) inOrder(prev, next *T, order query.Order) bool {
	c := s.streamer.compare(prev, next)
	if order == query.Asc {
		return c < 0
	}
	return c > 0
}

func (s *stream[T]) end(reason string) {
	s.logger.Debugf("stream ended after [%d] fetches and [%d] items: %s", s.fetches, s.yielded, reason)
	s.state = ended
	s.page = nil
	s.pos = 0
}

func (s *stream[T]) fail(err error) {
	s.logger.Warnf("stream failed after [%d] fetches and [%d] items: %v", s.fetches, s.yielded, err)
	s.streamer.metrics.Failures.With("stream", s.streamer.name).Add(1)
	s.state = failed
	s.err = err
	s.page = nil
	s.pos = 0
}
