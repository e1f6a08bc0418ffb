/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"time"

	"github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/model"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/query"
)

const (
	LedgerKey          = "ledger"
	MetricsProviderKey = "metrics.provider"
	TracingKey         = "tracing"
)

// Ledger is the `ledger` section
type Ledger struct {
	Endpoint Endpoint      `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Query    Query         `mapstructure:"query"`
}

type Endpoint struct {
	Address string `mapstructure:"address"`
	TLS     TLS    `mapstructure:"tls"`
}

type TLS struct {
	CACertPath string `mapstructure:"caCertPath"`
	CertPath   string `mapstructure:"certPath"`
	KeyPath    string `mapstructure:"keyPath"`
}

// Query holds the defaults of every search
type Query struct {
	PageSize int                     `mapstructure:"pageSize"`
	Order    query.Order             `mapstructure:"order"`
	Types    []model.TransactionType `mapstructure:"types"`
}

// Params returns the search descriptor built from the defaults.
// Types only filter transactions and are left out.
func (q Query) Params() query.Params {
	return query.NewParams().WithPageSize(q.PageSize).WithOrder(q.Order)
}

// TransactionParams returns Params filtered by the configured transaction types
func (q Query) TransactionParams() query.Params {
	return q.Params().WithTypes(q.Types...)
}

// Tracing is the `tracing` section
type Tracing struct {
	// Provider is one of none, console, file, otlp
	Provider string `mapstructure:"provider"`
	File     struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"file"`
	Otlp struct {
		Address string `mapstructure:"address"`
	} `mapstructure:"otlp"`
	// Sampling is the ratio of traced streams, 1 when unset
	Sampling *float64 `mapstructure:"sampling"`
}

// Ledger returns the ledger section with defaults applied and paths resolved
func (p *Provider) Ledger() (*Ledger, error) {
	l := &Ledger{}
	if p.IsSet(LedgerKey) {
		if err := p.UnmarshalKey(LedgerKey, l); err != nil {
			return nil, errors.Wrapf(err, "failed loading %s configuration", LedgerKey)
		}
	}
	if l.Query.PageSize == 0 {
		l.Query.PageSize = query.DefaultPageSize
	}
	if len(l.Query.Order) == 0 {
		l.Query.Order = query.Desc
	}
	l.Endpoint.TLS.CACertPath = p.TranslatePath(l.Endpoint.TLS.CACertPath)
	l.Endpoint.TLS.CertPath = p.TranslatePath(l.Endpoint.TLS.CertPath)
	l.Endpoint.TLS.KeyPath = p.TranslatePath(l.Endpoint.TLS.KeyPath)
	return l, nil
}

// Tracing returns the tracing section, defaulting to no tracing
func (p *Provider) Tracing() (*Tracing, error) {
	t := &Tracing{}
	if p.IsSet(TracingKey) {
		if err := p.UnmarshalKey(TracingKey, t); err != nil {
			return nil, errors.Wrapf(err, "failed loading %s configuration", TracingKey)
		}
	}
	if len(t.Provider) == 0 {
		t.Provider = "none"
	}
	t.File.Path = p.TranslatePath(t.File.Path)
	return t, nil
}

// MetricsProvider returns disabled or prometheus
func (p *Provider) MetricsProvider() string {
	if v := p.GetString(MetricsProviderKey); len(v) != 0 {
		return v
	}
	return "disabled"
}
