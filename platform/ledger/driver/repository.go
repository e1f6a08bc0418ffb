/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package driver

import (
	"context"

	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/query"
)

// Page is the answer to a single search request
type Page[T any] struct {
	// Items are ordered as requested by the query's Order
	Items []*T
	// Last is set by repositories that know no further page exists.
	// An empty or short page ends the traversal regardless.
	Last bool
}

// PagedRepository searches one collection of the ledger, one page per call.
// Implementations must be safe for concurrent use.
type PagedRepository[T any] interface {
	Search(ctx context.Context, params query.Params) (*Page[T], error)
}

// RepositoryFunc is a function adapter that implements PagedRepository
type RepositoryFunc[T any] func(ctx context.Context, params query.Params) (*Page[T], error)

func (f RepositoryFunc[T]) Search(ctx context.Context, params query.Params) (*Page[T], error) {
	return f(ctx, params)
}

// IDGetter extracts the object id an item is paginated on
type IDGetter[T any] func(*T) string
