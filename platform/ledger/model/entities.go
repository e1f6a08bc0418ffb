/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package model

// Meta is the server-side envelope of every collection item.
// ID is the object identifier the collections are ordered by and paginated on.
type Meta struct {
	ID string `json:"id"`
}

type BlockMeta struct {
	Meta
	Hash            string `json:"hash"`
	GenerationHash  string `json:"generationHash"`
	TotalFee        uint64 `json:"totalFee,string"`
	NumTransactions uint32 `json:"numTransactions"`
}

type BlockHeader struct {
	Height     uint64 `json:"height,string"`
	Timestamp  uint64 `json:"timestamp,string"`
	Difficulty uint64 `json:"difficulty,string"`
	Signer     string `json:"signerPublicKey"`
	Version    uint8  `json:"version"`
	Type       uint16 `json:"type"`
}

type Block struct {
	Meta  BlockMeta   `json:"meta"`
	Block BlockHeader `json:"block"`
}

type TransactionMeta struct {
	Meta
	Height uint64 `json:"height,string"`
	Hash   string `json:"hash"`
	Index  uint32 `json:"index"`
}

type TransactionHeader struct {
	Signer   string          `json:"signerPublicKey"`
	Version  uint8           `json:"version"`
	Type     TransactionType `json:"type"`
	MaxFee   uint64          `json:"maxFee,string"`
	Deadline uint64          `json:"deadline,string"`
}

type Transaction struct {
	Meta        TransactionMeta   `json:"meta"`
	Transaction TransactionHeader `json:"transaction"`
}

type AccountInfo struct {
	Address         string `json:"address"`
	AddressHeight   uint64 `json:"addressHeight,string"`
	PublicKey       string `json:"publicKey"`
	PublicKeyHeight uint64 `json:"publicKeyHeight,string"`
	Importance      uint64 `json:"importance,string"`
}

type Account struct {
	Meta    Meta        `json:"meta"`
	Account AccountInfo `json:"account"`
}

func BlockID(b *Block) string { return b.Meta.ID }

func TransactionID(tx *Transaction) string { return tx.Meta.ID }

func AccountID(a *Account) string { return a.Meta.ID }
