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

// Package server exposes a Catalog over the wire surface described in
// §6: kinds/namespaces/revisions listing, filtered resource queries
// (buffered and streamed), and resource put/delete.
package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/catalogdb/bda/catalog"
	"github.com/catalogdb/bda/internal/jsonutil"
)

// Server wires a Catalog behind net/http handlers.
type Server struct {
	cat    *catalog.Catalog
	logger *zap.Logger
	json   *jsonutil.Config
	mux    *http.ServeMux
}

// New builds a Server backed by cat. logger may be nil.
func New(cat *catalog.Catalog, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{cat: cat, logger: logger, json: jsonutil.Default(), mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the http.Handler to mount (directly, or behind your
// own middleware chain).
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("GET /v1/kinds", s.handleGetKinds)
	s.mux.HandleFunc("GET /v1/namespaces", s.handleGetNamespaces)
	s.mux.HandleFunc("GET /v1/revisions", s.handleGetRevisions)
	s.mux.HandleFunc("GET /v1/resources", s.handleGetResources)
	s.mux.HandleFunc("GET /v1/resources/stream", s.handleStreamResources)
	s.mux.HandleFunc("PUT /v1/resources", s.handlePutResource)
	s.mux.HandleFunc("DELETE /v1/resources/{id...}", s.handleDelResource)
	s.mux.HandleFunc("DELETE /v1/resources", s.handleDelResources)
}
