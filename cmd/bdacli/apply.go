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
	"os"

	"github.com/spf13/cobra"

	"github.com/catalogdb/bda/client"
	"github.com/catalogdb/bda/internal/jsonutil"
	"github.com/catalogdb/bda/resource"
)

// applyDocument is the file shape `bdacli apply` reads: the resource
// body alone, its kind derived from its own resource_kind field just as
// PutRequest derives it server-side.
type applyDocument struct {
	Resource resource.Resource `json:"resource"`
}

func newApplyCmd(newClient func() *client.Client) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "create or update a resource from a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}
			var doc applyDocument
			if err := jsonutil.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parsing %s: %w", file, err)
			}
			resp, err := newClient().PutResource(cmd.Context(), doc.Resource)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", resp.Op, resp.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the resource document")
	cmd.MarkFlagRequired("file")
	return cmd
}
