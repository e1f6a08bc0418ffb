/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hyperledger-labs/ledger-client-sdk/cmd/ledgercli/stream"
	"github.com/hyperledger-labs/ledger-client-sdk/cmd/ledgercli/version"
	"github.com/spf13/cobra"
)

// The main command describes the service and
// defaults to printing the help message.
var mainCmd = &cobra.Command{Use: version.ProgramName}

func main() {
	mainCmd.AddCommand(stream.NewCmd())
	mainCmd.AddCommand(version.Cmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// On failure Cobra prints the usage message and error string, so we only
	// need to exit with a non-0 status
	if mainCmd.ExecuteContext(ctx) != nil {
		stop()
		os.Exit(1)
	}
}
