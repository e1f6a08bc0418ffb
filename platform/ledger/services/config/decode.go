/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/model"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/query"
	"github.com/spf13/viper"
)

var (
	orderType           = reflect.TypeOf(query.Order(""))
	transactionTypeType = reflect.TypeOf(model.TransactionType(0))
)

// listDecodeHook parses strings of the format "[thing1, thing2, thing3]" and, for slice
// targets, "thing1,thing2" into string slices. Whitespace around elements is removed.
func listDecodeHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f.Kind() != reflect.String {
		return data, nil
	}
	raw := strings.TrimSpace(data.(string))
	l := len(raw)
	switch {
	case l > 1 && raw[0] == '[' && raw[l-1] == ']':
		raw = raw[1 : l-1]
	case t.Kind() == reflect.Slice && strings.Contains(raw, ","):
	default:
		return data, nil
	}
	if len(strings.TrimSpace(raw)) == 0 {
		return []string{}, nil
	}
	slice := strings.Split(raw, ",")
	for i, v := range slice {
		slice[i] = strings.TrimSpace(v)
	}
	return slice, nil
}

// orderDecodeHook accepts asc/desc as well as the wire tokens
func orderDecodeHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f.Kind() != reflect.String || t != orderType {
		return data, nil
	}
	return query.ParseOrder(data.(string))
}

// transactionTypeDecodeHook accepts transaction type names and numeric tokens
func transactionTypeDecodeHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f.Kind() != reflect.String || t != transactionTypeType {
		return data, nil
	}
	return model.ParseTransactionType(data.(string))
}

// unmarshal decodes the value under key into output, supporting durations, lists,
// orders and transaction types written the way operators write them
func unmarshal(v *viper.Viper, key string, output any) error {
	if reflect.TypeOf(output).Kind() != reflect.Ptr {
		return errors.Errorf("supplied output argument must be a pointer to a struct but is not pointer")
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			listDecodeHook,
			orderDecodeHook,
			transactionTypeDecodeHook,
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(v.Get(key))
}
