/*
Copyright IBM Corp All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	errors2 "github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/common/services/logging"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/driver"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/model"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/query"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/sdk/tracing"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/services/config"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/services/rest"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/services/streamer"
	"github.com/hyperledger/fabric-lib-go/common/metrics"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/hyperledger/fabric-lib-go/common/metrics/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/dig"
)

var logger = logging.MustGetLogger("ledger.sdk")

// SDK assembles the ledger client services in a dig container
type SDK struct {
	c   *dig.Container
	cfg *config.Provider

	mu      sync.Mutex
	closers []func(context.Context) error
}

// NewSDK loads client.yaml from confPath
func NewSDK(confPath string) (*SDK, error) {
	cfg, err := config.NewProvider(confPath)
	if err != nil {
		return nil, errors2.WithMessagef(err, "failed loading configuration")
	}
	return NewSDKFromConfig(cfg), nil
}

func NewSDKFromConfig(cfg *config.Provider) *SDK {
	return &SDK{c: dig.New(), cfg: cfg}
}

func (s *SDK) Container() *dig.Container { return s.c }

func (s *SDK) ConfigService() *config.Provider { return s.cfg }

func (s *SDK) Install() error {
	err := errors.Join(
		s.c.Provide(func() *config.Provider { return s.cfg }),
		s.c.Provide(func(cfg *config.Provider) (*config.Ledger, error) { return cfg.Ledger() }),
		s.c.Provide(newSearchParams),
		s.c.Provide(newMetricsProvider),
		s.c.Provide(streamer.NewMetrics),
		s.c.Provide(s.newTracerProvider),
		s.c.Provide(func(p *tracing.Provider) trace.TracerProvider { return p }),
		s.c.Provide(s.newClient),
		s.c.Provide(rest.NewBlockRepository),
		s.c.Provide(rest.NewTransactionRepository),
		s.c.Provide(rest.NewAccountRepository),
		s.c.Provide(func(r *rest.Repository[model.Block]) driver.PagedRepository[model.Block] { return r }),
		s.c.Provide(func(r *rest.Repository[model.Transaction]) driver.PagedRepository[model.Transaction] { return r }),
		s.c.Provide(func(r *rest.Repository[model.Account]) driver.PagedRepository[model.Account] { return r }),
		s.c.Provide(newStreamer(streamer.NewBlockStreamer)),
		s.c.Provide(newStreamer(streamer.NewTransactionStreamer)),
		s.c.Provide(newStreamer(streamer.NewAccountStreamer)),
	)
	if err != nil {
		return errors2.Wrapf(err, "failed installing ledger services")
	}
	return nil
}

type searchParamsOut struct {
	dig.Out
	Params       query.Params
	Transactions query.Params `name:"transactions"`
}

// SearchParams are the configured search defaults.
// Transactions carries the transaction type filter, Params does not.
type SearchParams struct {
	dig.In
	Params       query.Params
	Transactions query.Params `name:"transactions"`
}

func newSearchParams(l *config.Ledger) searchParamsOut {
	return searchParamsOut{Params: l.Query.Params(), Transactions: l.Query.TransactionParams()}
}

// Invoke runs function with its arguments resolved from the container
func (s *SDK) Invoke(function any) error {
	return s.c.Invoke(function)
}

// Stop releases the services built so far, in reverse order of construction
func (s *SDK) Stop(ctx context.Context) error {
	s.mu.Lock()
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	var errs []error
	for _, closer := range slices.Backward(closers) {
		errs = append(errs, closer(ctx))
	}
	return errors.Join(errs...)
}

func (s *SDK) Visualize() string {
	var w bytes.Buffer
	if err := dig.Visualize(s.c, &w); err != nil {
		return fmt.Sprintf("could not visualize: [%v]", err)
	}
	return w.String()
}

func (s *SDK) onStop(closer func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closers = append(s.closers, closer)
}

func (s *SDK) newTracerProvider(cfg *config.Provider) (*tracing.Provider, error) {
	c, err := cfg.Tracing()
	if err != nil {
		return nil, err
	}
	p, err := tracing.NewTracerProvider(c)
	if err != nil {
		return nil, err
	}
	s.onStop(p.Shutdown)
	return p, nil
}

func (s *SDK) newClient(l *config.Ledger, tp trace.TracerProvider) (*rest.Client, error) {
	c, err := rest.NewClient(&rest.Config{
		Address:     l.Endpoint.Address,
		CACertPath:  l.Endpoint.TLS.CACertPath,
		TLSCertPath: l.Endpoint.TLS.CertPath,
		TLSKeyPath:  l.Endpoint.TLS.KeyPath,
		Timeout:     l.Timeout,
	}, otelhttp.WithTracerProvider(tp))
	if err != nil {
		return nil, errors2.WithMessagef(err, "failed creating client for [%s]", l.Endpoint.Address)
	}
	s.onStop(func(context.Context) error {
		c.Close()
		return nil
	})
	return c, nil
}

func newMetricsProvider(cfg *config.Provider) (metrics.Provider, error) {
	switch p := cfg.MetricsProvider(); p {
	case "disabled":
		return &disabled.Provider{}, nil
	case "prometheus":
		logger.Infof("prometheus metrics provider selected")
		return &prometheus.Provider{}, nil
	default:
		return nil, errors2.Errorf("unknown metrics provider [%s]", p)
	}
}

func newStreamer[T any](constructor func(driver.PagedRepository[T], ...streamer.Option) *streamer.Streamer[T]) func(driver.PagedRepository[T], trace.TracerProvider, *streamer.Metrics) *streamer.Streamer[T] {
	return func(repository driver.PagedRepository[T], tp trace.TracerProvider, m *streamer.Metrics) *streamer.Streamer[T] {
		return constructor(repository, streamer.WithTracerProvider(tp), streamer.WithMetrics(m))
	}
}
