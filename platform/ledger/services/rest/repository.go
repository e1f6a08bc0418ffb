/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rest

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/driver"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/model"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/query"
)

const (
	BlocksPath       = "/blocks"
	TransactionsPath = "/transactions"
	AccountsPath     = "/accounts"
)

// Repository searches one collection of the gateway
type Repository[T any] struct {
	client *Client
	path   string
}

func NewRepository[T any](client *Client, path string) *Repository[T] {
	return &Repository[T]{client: client, path: path}
}

func NewBlockRepository(client *Client) *Repository[model.Block] {
	return NewRepository[model.Block](client, BlocksPath)
}

func NewTransactionRepository(client *Client) *Repository[model.Transaction] {
	return NewRepository[model.Transaction](client, TransactionsPath)
}

func NewAccountRepository(client *Client) *Repository[model.Account] {
	return NewRepository[model.Account](client, AccountsPath)
}

// Search returns one page. The gateway answers with a JSON array of items, or with
// the same array under "data" next to pagination details.
func (r *Repository[T]) Search(ctx context.Context, params query.Params) (*driver.Page[T], error) {
	values, err := params.Normalized().Values()
	if err != nil {
		return nil, errors.Wrapf(err, "failed encoding query for [%s]", r.path)
	}
	var body page[T]
	if err := r.client.Get(ctx, r.path, values, &body); err != nil {
		return nil, err
	}
	return &driver.Page[T]{Items: body.items}, nil
}

type page[T any] struct {
	items []*T
}

func (p *page[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) != 0 && data[0] == '[' {
		return json.Unmarshal(data, &p.items)
	}
	var envelope struct {
		Data *[]*T `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if envelope.Data == nil {
		return errors.New("response has no data array")
	}
	p.items = *envelope.Data
	return nil
}
