/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/model"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/query"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	p, err := NewProvider("./testdata")
	require.NoError(t, err)

	assert.Equal(t, "localhost:3000", p.GetString("ledger.endpoint.address"))
	assert.Equal(t, 30*time.Second, p.GetDuration("ledger.timeout"))
	assert.Equal(t, 50, p.GetInt("ledger.query.pageSize"))
	assert.Equal(t, "prometheus", p.MetricsProvider())
	assert.True(t, p.IsSet("tracing.otlp"))
	assert.False(t, p.IsSet("ledger.nothing"))

	caPath, _ := filepath.Abs("testdata/tls/ca.pem")
	assert.Equal(t, caPath, p.TranslatePath(p.GetString("ledger.endpoint.tls.caCertPath")))
	assert.Equal(t, "/absolute/file", p.TranslatePath("/absolute/file"))
	assert.Equal(t, "", p.TranslatePath(""))
}

func TestLedger(t *testing.T) {
	p, err := NewProvider("./testdata")
	require.NoError(t, err)

	l, err := p.Ledger()
	require.NoError(t, err)
	caPath, _ := filepath.Abs("testdata/tls/ca.pem")
	assert.Equal(t, "localhost:3000", l.Endpoint.Address)
	assert.Equal(t, caPath, l.Endpoint.TLS.CACertPath)
	assert.Empty(t, l.Endpoint.TLS.CertPath)
	assert.Equal(t, 30*time.Second, l.Timeout)
	assert.Equal(t, 50, l.Query.PageSize)
	assert.Equal(t, query.Asc, l.Query.Order)
	assert.Equal(t, []model.TransactionType{model.Transfer, model.AggregateBonded, model.AggregateComplete}, l.Query.Types)

	params := l.Query.Params()
	assert.Equal(t, 50, params.PageSize)
	assert.Equal(t, query.Asc, params.Order)
	_, ok := params.TypesCSV()
	assert.False(t, ok, "types only apply to transactions")

	params = l.Query.TransactionParams()
	assert.Equal(t, 50, params.PageSize)
	assert.Equal(t, query.Asc, params.Order)
	csv, ok := params.TypesCSV()
	assert.True(t, ok)
	assert.Equal(t, "16724,16961,16705", csv)
}

func TestDefaults(t *testing.T) {
	p, err := NewProvider("./testdata/minimal")
	require.NoError(t, err)

	l, err := p.Ledger()
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.example.com", l.Endpoint.Address)
	assert.Equal(t, query.DefaultPageSize, l.Query.PageSize)
	assert.Equal(t, query.Desc, l.Query.Order)
	assert.Empty(t, l.Query.Types)
	assert.Zero(t, l.Timeout)

	tr, err := p.Tracing()
	require.NoError(t, err)
	assert.Equal(t, "none", tr.Provider)
	assert.Nil(t, tr.Sampling)
	assert.Equal(t, "disabled", p.MetricsProvider())
}

func TestTracing(t *testing.T) {
	p, err := NewProvider("./testdata")
	require.NoError(t, err)

	tr, err := p.Tracing()
	require.NoError(t, err)
	path, _ := filepath.Abs("testdata/traces.json")
	assert.Equal(t, "file", tr.Provider)
	assert.Equal(t, path, tr.File.Path)
	assert.Equal(t, "localhost:4317", tr.Otlp.Address)
	require.NotNil(t, tr.Sampling)
	assert.Equal(t, 0.5, *tr.Sampling)
}

func TestEnvSubstitution(t *testing.T) {
	t.Setenv("LEDGER_LEDGER_ENDPOINT_ADDRESS", "gateway:3001")
	t.Setenv("LEDGER_LEDGER_TIMEOUT", "5s")
	t.Setenv("LEDGER_LEDGER_QUERY_PAGESIZE", "20")
	t.Setenv("LEDGER_LEDGER_QUERY_ORDER", "desc")
	t.Setenv("LEDGER_LEDGER_QUERY_TYPES", "hash_lock,secret_lock")
	t.Setenv("LEDGER_METRICS_PROVIDER", "") // empty env vars are disregarded
	t.Setenv("LEDGER_NON_EXISTENT_KEY", "new")
	t.Setenv("LEDGER_LEDGER_ENDPOINT", "cannot replace a map")

	p, err := NewProvider("./testdata")
	require.NoError(t, err)

	l, err := p.Ledger()
	require.NoError(t, err)
	assert.Equal(t, "gateway:3001", l.Endpoint.Address)
	assert.NotEmpty(t, l.Endpoint.TLS.CACertPath)
	assert.Equal(t, 5*time.Second, l.Timeout)
	assert.Equal(t, 20, l.Query.PageSize)
	assert.Equal(t, query.Desc, l.Query.Order)
	assert.Equal(t, []model.TransactionType{model.HashLock, model.SecretLock}, l.Query.Types)

	assert.Equal(t, "prometheus", p.MetricsProvider())
	assert.Equal(t, "new", p.GetString("non.existent.key"))
}

func TestInvalidValues(t *testing.T) {
	t.Setenv("LEDGER_LEDGER_QUERY_ORDER", "sideways")
	p, err := NewProvider("./testdata")
	require.NoError(t, err)
	_, err = p.Ledger()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order")
}

func TestMissingConfig(t *testing.T) {
	t.Setenv(PathEnv, t.TempDir())
	_, err := NewProvider("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find config file")

	t.Setenv(PathEnv, filepath.Join(t.TempDir(), "missing"))
	_, err = NewProvider("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestListDecodeHook(t *testing.T) {
	var out struct {
		Bracketed []string `mapstructure:"bracketed"`
		CSV       []string `mapstructure:"csv"`
		Plain     string   `mapstructure:"plain"`
		Empty     []string `mapstructure:"empty"`
	}
	p, err := NewProvider("./testdata")
	require.NoError(t, err)
	p.Backend.Set("lists", map[string]any{
		"bracketed": "[a, b , c]",
		"csv":       "x,y",
		"plain":     "one,two",
		"empty":     "[]",
	})
	require.NoError(t, p.UnmarshalKey("lists", &out))
	assert.Equal(t, []string{"a", "b", "c"}, out.Bracketed)
	assert.Equal(t, []string{"x", "y"}, out.CSV)
	assert.Equal(t, "one,two", out.Plain)
	assert.Empty(t, out.Empty)

	require.Error(t, p.UnmarshalKey("lists", out))
}

func TestProviderFromViper(t *testing.T) {
	v := viper.New()
	v.Set("ledger", map[string]any{"endpoint": map[string]any{"address": "localhost:3000"}, "query": map[string]any{"order": "id"}})
	p := NewProviderFromViper(v)

	l, err := p.Ledger()
	require.NoError(t, err)
	assert.Equal(t, "localhost:3000", l.Endpoint.Address)
	assert.Equal(t, query.Asc, l.Query.Order)
	assert.Equal(t, query.DefaultPageSize, l.Query.PageSize)
	assert.Equal(t, "disabled", NewProviderFromViper(viper.New()).MetricsProvider())
}
