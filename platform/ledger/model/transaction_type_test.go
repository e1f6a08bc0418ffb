/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package model

import (
	"encoding/json"
	"testing"

	"github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionTypeTokens(t *testing.T) {
	assert.Equal(t, "16724", Transfer.Token())
	assert.Equal(t, "16712", HashLock.Token())
	assert.Equal(t, "16705", AggregateComplete.Token())
	assert.Equal(t, "16961", AggregateBonded.Token())
	assert.Equal(t, "transfer", Transfer.String())
	assert.Equal(t, "1", TransactionType(1).String())
}

func TestParseTransactionType(t *testing.T) {
	for in, expected := range map[string]TransactionType{
		"transfer":          Transfer,
		"Hash-Lock":         HashLock,
		" account_metadata": AccountMetadata,
		"16961":             AggregateBonded,
	} {
		actual, err := ParseTransactionType(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, actual, in)
	}

	_, err := ParseTransactionType("teleport")
	assert.True(t, errors.HasCause(err, ErrUnknownTransactionType))
	_, err = ParseTransactionType("70000")
	assert.True(t, errors.HasCause(err, ErrUnknownTransactionType))
}

func TestDecodeTransaction(t *testing.T) {
	raw := `{
		"meta": {"height": "12", "hash": "AB", "index": 0, "id": "5e5f6a"},
		"transaction": {"signerPublicKey": "CD", "version": 1, "type": 16724, "maxFee": "100", "deadline": "9"}
	}`
	tx := &Transaction{}
	require.NoError(t, json.Unmarshal([]byte(raw), tx))
	assert.Equal(t, "5e5f6a", TransactionID(tx))
	assert.Equal(t, uint64(12), tx.Meta.Height)
	assert.Equal(t, Transfer, tx.Transaction.Type)
	assert.Equal(t, uint64(100), tx.Transaction.MaxFee)
}
