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

func newGetCmd(newClient func() *client.Client) *cobra.Command {
	var bql string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "fetch a single resource matching a bql expression",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := newClient().GetResources(cmd.Context(), catalog.Filter{Bql: bql})
			if err != nil {
				return err
			}
			if len(resources) == 0 {
				return fmt.Errorf("no resource matched %q", bql)
			}
			data, err := jsonutil.MarshalIndent(resources[0], "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&bql, "bql", "", "bql expression identifying the resource")
	cmd.MarkFlagRequired("bql")
	return cmd
}
