/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/common/services/logging"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/driver"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var logger = logging.MustGetLogger("ledger.rest")

// maxErrorBody bounds how much of a failed response is read to extract the error document
const maxErrorBody = 64 * 1024

// Config models the connection to a ledger REST gateway
type Config struct {
	// Address is host:port, or a URL when a scheme or base path is needed
	Address string
	// CACertRaw is the certificate authority's certificates
	CACertRaw []byte
	// CACertPath is the Certificate Authority Cert Path
	CACertPath string
	// TLSCertPath is the TLS client certificate path
	TLSCertPath string
	// TLSKeyPath is the TLS client key path
	TLSKeyPath string
	// Timeout bounds every request, zero means no timeout
	Timeout time.Duration
}

// URL returns the base URL requests are resolved against
func (c *Config) URL() string {
	if strings.Contains(c.Address, "://") {
		return strings.TrimRight(c.Address, "/")
	}
	protocol := "http"
	if c.isTLSEnabled() {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s", protocol, strings.TrimRight(c.Address, "/"))
}

func (c *Config) isTLSEnabled() bool {
	return len(c.CACertPath) != 0 || len(c.CACertRaw) != 0
}

// errorBody is the document the gateway returns with a non-success status
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client issues read requests to a ledger REST gateway.
// It is safe for concurrent use.
type Client struct {
	c   *http.Client
	url string
}

// NewClient returns a new REST client. The options configure the otelhttp transport,
// e.g. otelhttp.WithTracerProvider.
func NewClient(config *Config, opts ...otelhttp.Option) (*Client, error) {
	if len(config.Address) == 0 {
		return nil, errors.New("no address configured")
	}
	var tlsClientConfig *tls.Config
	if config.isTLSEnabled() {
		rootCAs := x509.NewCertPool()

		caCert := config.CACertRaw
		if len(config.CACertPath) != 0 {
			var err error
			caCert, err = os.ReadFile(config.CACertPath)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to open ca cert")
			}
		}
		if !rootCAs.AppendCertsFromPEM(caCert) {
			return nil, errors.Errorf("no certificate found in ca cert")
		}
		tlsClientConfig = &tls.Config{
			RootCAs:    rootCAs,
			MinVersion: tls.VersionTLS12,
		}

		if len(config.TLSCertPath) != 0 && len(config.TLSKeyPath) != 0 {
			clientCert, err := tls.LoadX509KeyPair(config.TLSCertPath, config.TLSKeyPath)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to load x509 key pair")
			}
			tlsClientConfig.Certificates = []tls.Certificate{clientCert}
		}
	}

	return &Client{
		c: &http.Client{
			Transport: otelhttp.NewTransport(&http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: tlsClientConfig,
			}, opts...),
			Timeout: config.Timeout,
		},
		url: config.URL(),
	}, nil
}

// Get reads path with the given query and decodes the JSON response into out.
// Failures are *driver.TransportError or *driver.ServerError.
func (c *Client) Get(ctx context.Context, path string, values url.Values, out any) error {
	u := c.url + path
	if len(values) != 0 {
		u += "?" + values.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return driver.NewTransportError(u, errors.Wrapf(err, "failed to create http request"))
	}
	req.Header.Set("Accept", "application/json")
	logger.Debugf("send http request to [%s]", u)

	resp, err := c.c.Do(req)
	if err != nil {
		return driver.NewTransportError(u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return serverError(u, resp)
	}
	buff, err := io.ReadAll(resp.Body)
	if err != nil {
		return driver.NewTransportError(u, errors.Wrapf(err, "failed to read response"))
	}
	if err := json.Unmarshal(buff, out); err != nil {
		return driver.NewTransportError(u, errors.Wrapf(err, "failed to unmarshal response [%s]", abbreviate(buff)))
	}
	return nil
}

// Close releases idle connections
func (c *Client) Close() {
	c.c.CloseIdleConnections()
}

func serverError(u string, resp *http.Response) *driver.ServerError {
	e := &driver.ServerError{URL: u, StatusCode: resp.StatusCode}
	buff, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		logger.Debugf("failed reading error body from [%s]: %v", u, err)
		return e
	}
	body := &errorBody{}
	if err := json.Unmarshal(buff, body); err != nil {
		e.Message = string(bytes.TrimSpace(abbreviate(buff)))
		return e
	}
	e.Code, e.Message = body.Code, body.Message
	return e
}

func abbreviate(b []byte) []byte {
	if len(b) > 256 {
		return append(b[:256:256], "..."...)
	}
	return b
}
