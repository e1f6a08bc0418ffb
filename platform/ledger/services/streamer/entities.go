/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package streamer

import (
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/driver"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/model"
)

type (
	BlockStreamer       = Streamer[model.Block]
	TransactionStreamer = Streamer[model.Transaction]
	AccountStreamer     = Streamer[model.Account]
)

// ByBlockHeight orders blocks as the block collection's object id does
var ByBlockHeight = CompareBy(func(b *model.Block) uint64 { return b.Block.Height })

func NewBlockStreamer(repository driver.PagedRepository[model.Block], opts ...Option) *BlockStreamer {
	return New(repository, model.BlockID, append([]Option{WithName("blocks")}, opts...)...)
}

func NewTransactionStreamer(repository driver.PagedRepository[model.Transaction], opts ...Option) *TransactionStreamer {
	return New(repository, model.TransactionID, append([]Option{WithName("transactions")}, opts...)...)
}

func NewAccountStreamer(repository driver.PagedRepository[model.Account], opts ...Option) *AccountStreamer {
	return New(repository, model.AccountID, append([]Option{WithName("accounts")}, opts...)...)
}
