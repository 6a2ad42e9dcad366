// Copyright 2026 The Bda Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command bdacli is a thin client for bdad: apply, get, show and del
// subcommands mirroring the reference implementation's own CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/catalogdb/bda/client"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "bdacli",
		Short: "bdacli talks to a running bdad server",
	}
	cmd.PersistentFlags().StringVar(&server, "server", "http://localhost:8080", "bdad base URL")

	newClient := func() *client.Client { return client.New(server, nil) }

	cmd.AddCommand(newApplyCmd(newClient))
	cmd.AddCommand(newGetCmd(newClient))
	cmd.AddCommand(newShowCmd(newClient))
	cmd.AddCommand(newDelCmd(newClient))
	return cmd
}
