/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package model

import (
	"strconv"
	"strings"

	"github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
)

// TransactionType is the entity type code the ledger assigns to each transaction kind
type TransactionType uint16

const (
	AggregateComplete        TransactionType = 0x4141
	AggregateBonded          TransactionType = 0x4241
	Transfer                 TransactionType = 0x4154
	HashLock                 TransactionType = 0x4148
	SecretLock               TransactionType = 0x4152
	SecretProof              TransactionType = 0x4252
	NamespaceRegistration    TransactionType = 0x414E
	MosaicDefinition         TransactionType = 0x414D
	MosaicSupplyChange       TransactionType = 0x424D
	AccountMetadata          TransactionType = 0x4144
	MosaicMetadata           TransactionType = 0x4244
	NamespaceMetadata        TransactionType = 0x4344
	MosaicGlobalRestriction  TransactionType = 0x4151
	MosaicAddressRestriction TransactionType = 0x4251
)

var ErrUnknownTransactionType = errors.New("unknown transaction type")

var transactionTypeNames = map[TransactionType]string{
	AggregateComplete:        "aggregate_complete",
	AggregateBonded:          "aggregate_bonded",
	Transfer:                 "transfer",
	HashLock:                 "hash_lock",
	SecretLock:               "secret_lock",
	SecretProof:              "secret_proof",
	NamespaceRegistration:    "namespace_registration",
	MosaicDefinition:         "mosaic_definition",
	MosaicSupplyChange:       "mosaic_supply_change",
	AccountMetadata:          "account_metadata",
	MosaicMetadata:           "mosaic_metadata",
	NamespaceMetadata:        "namespace_metadata",
	MosaicGlobalRestriction:  "mosaic_global_restriction",
	MosaicAddressRestriction: "mosaic_address_restriction",
}

// Token is the wire form used in query filters: the decimal type code
func (t TransactionType) Token() string {
	return strconv.FormatUint(uint64(t), 10)
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return t.Token()
}

// ParseTransactionType accepts a known name (case-insensitive, '-' or '_' separated)
// or a decimal type code
func ParseTransactionType(s string) (TransactionType, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for t, n := range transactionTypeNames {
		if n == name {
			return t, nil
		}
	}
	code, err := strconv.ParseUint(name, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(ErrUnknownTransactionType, "[%s]", s)
	}
	return TransactionType(code), nil
}
