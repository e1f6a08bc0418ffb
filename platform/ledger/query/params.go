/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package query

import (
	"net/url"
	"slices"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/model"
)

const (
	DefaultPageSize = 10
	MinPageSize     = 10
	MaxPageSize     = 100
)

// Order is the traversal order over the collection's object id
type Order string

const (
	// Asc returns older (smaller id) items first
	Asc Order = "id"
	// Desc returns newer (larger id) items first
	Desc Order = "-id"
)

var ErrInvalidOrder = errors.New("invalid order")

// ParseOrder accepts asc/id and desc/-id, case-insensitive
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", string(Asc):
		return Asc, nil
	case "desc", string(Desc), "":
		return Desc, nil
	default:
		return "", errors.Wrapf(ErrInvalidOrder, "[%s]", s)
	}
}

// Types is the transaction type allow-list of a query.
// It encodes as a single comma separated parameter and is omitted when empty.
type Types []model.TransactionType

// EncodeValues implements query.Encoder
func (t Types) EncodeValues(key string, v *url.Values) error {
	if csv, ok := t.CSV(); ok {
		v.Set(key, csv)
	}
	return nil
}

// CSV joins the type tokens with commas. It returns false for an empty set.
func (t Types) CSV() (string, bool) {
	if len(t) == 0 {
		return "", false
	}
	tokens := make([]string, len(t))
	for i, tt := range t {
		tokens[i] = tt.Token()
	}
	return strings.Join(tokens, ","), true
}

// Params describes one page request against a ledger collection.
// Params is a value: the With methods return modified copies and never touch the receiver.
type Params struct {
	PageSize int    `url:"pageSize"`
	ID       string `url:"id,omitempty"`
	Order    Order  `url:"ordering"`
	Types    Types  `url:"type,omitempty"`
}

func NewParams() Params {
	return Params{PageSize: DefaultPageSize, Order: Desc}
}

// WithPageSize keeps sizes within [MinPageSize, MaxPageSize], anything else becomes DefaultPageSize
func (p Params) WithPageSize(pageSize int) Params {
	p.PageSize = clampPageSize(pageSize)
	return p
}

// WithID sets the continuation cursor, the empty string clears it
func (p Params) WithID(id string) Params {
	p.ID = id
	return p
}

func (p Params) WithOrder(order Order) Params {
	if order == "" {
		order = Desc
	}
	p.Order = order
	return p
}

// WithTypes replaces the type filter, dropping duplicates
func (p Params) WithTypes(types ...model.TransactionType) Params {
	if len(types) == 0 {
		p.Types = nil
		return p
	}
	set := make(Types, 0, len(types))
	for _, t := range types {
		if !slices.Contains(set, t) {
			set = append(set, t)
		}
	}
	p.Types = set
	return p
}

// TypesCSV is the wire form of the type filter
func (p Params) TypesCSV() (string, bool) {
	return p.Types.CSV()
}

// Normalized returns a copy safe to send: page size clamped, order defaulted,
// filter storage detached from the receiver's
func (p Params) Normalized() Params {
	p.PageSize = clampPageSize(p.PageSize)
	if p.Order == "" {
		p.Order = Desc
	}
	p.Types = slices.Clone(p.Types)
	return p
}

// Values renders the normalized params as query-string values
func (p Params) Values() (url.Values, error) {
	v, err := query.Values(p.Normalized())
	if err != nil {
		return nil, errors.Wrapf(err, "failed encoding query params")
	}
	return v, nil
}

func clampPageSize(pageSize int) int {
	if pageSize >= MinPageSize && pageSize <= MaxPageSize {
		return pageSize
	}
	return DefaultPageSize
}
