/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package stream

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/common/utils/collections/iterators"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/model"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/query"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/sdk/dig"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/services/config"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/services/streamer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type options struct {
	configPath string
	endpoint   string
	caCert     string
	timeout    time.Duration

	limit    int
	pageSize int
	order    string
	id       string
	types    []string
}

// NewCmd returns the stream command. Every item is written to stdout as one JSON document per line.
func NewCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Stream ledger collections.",
		Long:  `Stream blocks, transactions or accounts from a ledger REST gateway, fetching pages as they are consumed.`,
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "Directory containing client.yaml")
	flags.StringVarP(&o.endpoint, "endpoint", "e", "", "Gateway address (host:port or URL), overrides ledger.endpoint.address")
	flags.StringVar(&o.caCert, "ca-cert", "", "TLS CA certificate file path, overrides ledger.endpoint.tls.caCertPath")
	flags.DurationVar(&o.timeout, "timeout", 0, "Request timeout, overrides ledger.timeout")
	flags.IntVarP(&o.limit, "limit", "l", streamer.Unbounded, "Maximum number of items, negative for all")
	flags.IntVarP(&o.pageSize, "page-size", "p", 0, "Items per request, between 10 and 100")
	flags.StringVarP(&o.order, "order", "o", "", "asc or desc")
	flags.StringVar(&o.id, "id", "", "Object id to continue after")

	cmd.AddCommand(
		newEntityCmd("blocks", "Stream blocks.", o, run[model.Block](defaultParams)),
		newEntityCmd("accounts", "Stream accounts.", o, run[model.Account](defaultParams)),
	)
	transactions := newEntityCmd("transactions", "Stream transactions.", o, run[model.Transaction](transactionParams))
	transactions.Flags().StringSliceVarP(&o.types, "type", "t", nil, "Transaction types to include, by name or code (repeatable)")
	cmd.AddCommand(transactions)
	return cmd
}

func newEntityCmd(use, short string, o *options, run func(context.Context, *dig.SDK, *options, io.Writer) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := o.newSDK(cmd.Flags())
			if err != nil {
				return err
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			err = run(cmd.Context(), sdk, o, cmd.OutOrStdout())
			return errors.Join(err, sdk.Stop(context.Background()))
		},
	}
}

func defaultParams(p dig.SearchParams) query.Params { return p.Params }

func transactionParams(p dig.SearchParams) query.Params { return p.Transactions }

func run[T any](paramsOf func(dig.SearchParams) query.Params) func(context.Context, *dig.SDK, *options, io.Writer) error {
	return func(ctx context.Context, sdk *dig.SDK, o *options, out io.Writer) error {
		return sdk.Invoke(func(s *streamer.Streamer[T], p dig.SearchParams) error {
			enc := json.NewEncoder(out)
			return iterators.ForEach(s.SearchWithLimit(ctx, paramsOf(p).WithID(o.id), o.limit), func(item *T) error {
				return errors.Wrapf(enc.Encode(item), "failed writing item")
			})
		})
	}
}

func (o *options) newSDK(flags *pflag.FlagSet) (*dig.SDK, error) {
	var sdk *dig.SDK
	if len(o.configPath) != 0 {
		var err error
		if sdk, err = dig.NewSDK(o.configPath); err != nil {
			return nil, err
		}
	} else {
		sdk = dig.NewSDKFromConfig(config.NewProviderFromViper(viper.New()))
	}
	if err := sdk.Install(); err != nil {
		return nil, err
	}
	overrides, err := o.overrides(flags)
	if err != nil {
		return nil, err
	}
	if err := sdk.Container().Decorate(overrides); err != nil {
		return nil, errors.Wrapf(err, "failed applying command line overrides")
	}
	return sdk, nil
}

// overrides returns a decorator applying the flags set on the command line to the configuration
func (o *options) overrides(flags *pflag.FlagSet) (func(*config.Ledger) *config.Ledger, error) {
	var order query.Order
	if flags.Changed("order") {
		var err error
		if order, err = query.ParseOrder(o.order); err != nil {
			return nil, err
		}
	}
	types := make([]model.TransactionType, 0, len(o.types))
	for _, t := range o.types {
		tt, err := model.ParseTransactionType(t)
		if err != nil {
			return nil, err
		}
		types = append(types, tt)
	}

	return func(l *config.Ledger) *config.Ledger {
		c := *l
		if flags.Changed("endpoint") {
			c.Endpoint.Address = o.endpoint
		}
		if flags.Changed("ca-cert") {
			c.Endpoint.TLS.CACertPath = o.caCert
		}
		if flags.Changed("timeout") {
			c.Timeout = o.timeout
		}
		if flags.Changed("page-size") {
			c.Query.PageSize = o.pageSize
		}
		if len(order) != 0 {
			c.Query.Order = order
		}
		if len(types) != 0 {
			c.Query.Types = types
		}
		return &c
	}, nil
}
