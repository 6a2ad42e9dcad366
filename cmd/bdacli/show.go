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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catalogdb/bda/catalog"
	"github.com/catalogdb/bda/client"
	"github.com/catalogdb/bda/internal/jsonutil"
)

func newShowCmd(newClient func() *client.Client) *cobra.Command {
	var namespaces, kinds, revision, bql string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "list resources matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := newClient().GetResources(cmd.Context(), catalog.Filter{
				Namespaces: namespaces,
				Kinds:      kinds,
				Revision:   revision,
				Bql:        bql,
			})
			if err != nil {
				return err
			}
			data, err := jsonutil.MarshalIndent(resources, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&namespaces, "namespaces", "", "comma-separated namespaces, empty or 'all' for every namespace")
	cmd.Flags().StringVar(&kinds, "kinds", "", "comma-separated resource kinds, empty or 'all' for every kind")
	cmd.Flags().StringVar(&revision, "revision", "", "revision to query, defaults to 'latest'")
	cmd.Flags().StringVar(&bql, "bql", "", "additional bql expression")
	return cmd
}
