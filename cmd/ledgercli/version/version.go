/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package version

import (
	"fmt"
	"runtime"

	"github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X .../version.Version=..."
var (
	ProgramName = "ledgercli"
	Version     = "latest"
	CommitSHA   = "development build"
)

// Cmd returns the cobra command for version
func Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version.",
		Long:  `Print current version of the ledger client.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.Errorf("trailing args detected")
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			_, _ = fmt.Fprint(cmd.OutOrStdout(), GetInfo())
			return nil
		},
	}
}

// GetInfo returns version information for the ledger client
func GetInfo() string {
	return fmt.Sprintf("%s:\n Version: %s\n Commit SHA: %s\n Go version: %s\n OS/Arch: %s\n",
		ProgramName, Version, CommitSHA, runtime.Version(),
		fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
}
