/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package streamer

import (
	"github.com/hyperledger/fabric-lib-go/common/metrics"
)

var (
	fetches = metrics.CounterOpts{
		Namespace:    "ledger",
		Subsystem:    "streamer",
		Name:         "fetches",
		Help:         "The number of pages requested from paged repositories.",
		LabelNames:   []string{"stream"},
		StatsdFormat: "%{#fqname}.%{stream}",
	}
	items = metrics.CounterOpts{
		Namespace:    "ledger",
		Subsystem:    "streamer",
		Name:         "items",
		Help:         "The number of items handed to stream consumers.",
		LabelNames:   []string{"stream"},
		StatsdFormat: "%{#fqname}.%{stream}",
	}
	fetchDuration = metrics.HistogramOpts{
		Namespace:    "ledger",
		Subsystem:    "streamer",
		Name:         "fetch_duration",
		Help:         "The time spent waiting for a page, in seconds.",
		LabelNames:   []string{"stream"},
		StatsdFormat: "%{#fqname}.%{stream}",
		Buckets:      []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}
	failures = metrics.CounterOpts{
		Namespace:    "ledger",
		Subsystem:    "streamer",
		Name:         "failures",
		Help:         "The number of streams terminated by an error.",
		LabelNames:   []string{"stream"},
		StatsdFormat: "%{#fqname}.%{stream}",
	}
)

type Metrics struct {
	Fetches       metrics.Counter
	FetchDuration metrics.Histogram
	Items         metrics.Counter
	Failures      metrics.Counter
}

func NewMetrics(p metrics.Provider) *Metrics {
	return &Metrics{
		Fetches:       p.NewCounter(fetches),
		FetchDuration: p.NewHistogram(fetchDuration),
		Items:         p.NewCounter(items),
		Failures:      p.NewCounter(failures),
	}
}
