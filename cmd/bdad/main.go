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

// Command bdad is the catalog daemon: it wires a Catalog behind the HTTP
// wire surface (server.Server), plus a /healthz, /readyz and /metrics
// sidecar (internal/healthserver).
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/catalogdb/bda/catalog"
	"github.com/catalogdb/bda/internal/healthserver"
	"github.com/catalogdb/bda/internal/logging"
	"github.com/catalogdb/bda/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		port       int
		healthPort int
		logStyle   string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "bdad",
		Short: "bdad serves the resource catalog over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewLogger(&logging.Config{Style: logging.Style(logStyle), Debug: debug})
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer logger.Sync()

			cat := catalog.New(logger)
			srv := server.New(cat, logger)

			ready := true
			healthserver.Start(logger, healthPort, func() bool { return ready })

			addr := fmt.Sprintf(":%d", port)
			logger.Info("bdad listening", zap.String("addr", addr))
			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to serve the wire surface on")
	cmd.Flags().IntVar(&healthPort, "health-port", 8081, "port to serve /healthz, /readyz and /metrics on")
	cmd.Flags().StringVar(&logStyle, "log-style", string(logging.StyleTerminal), "terminal, json, or noop")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug-level logging")

	return cmd
}
