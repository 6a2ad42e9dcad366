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

package server

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/catalogdb/bda/catalog"
	"github.com/catalogdb/bda/resource"
)

// PutRequest is the wire body for PUT /v1/resources: the resource
// document alone. Its index partition is derived from its own
// resource_kind, never supplied separately by the caller.
type PutRequest struct {
	Resource resource.Resource `json:"resource"`
}

// PutResponse reports what the put actually did.
type PutResponse struct {
	ID string `json:"id"`
	Op string `json:"op"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := s.json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("request failed", zap.Int("status", status), zap.Error(err))
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) filterFromRequest(r *http.Request) catalog.Filter {
	q := r.URL.Query()
	return catalog.Filter{
		Revision:   q.Get("revision"),
		Namespaces: q.Get("namespaces"),
		Kinds:      q.Get("kinds"),
		Bql:        q.Get("bql"),
	}
}

func (s *Server) handleGetKinds(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.cat.Kinds())
}

func (s *Server) handleGetNamespaces(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.cat.Namespaces())
}

func (s *Server) handleGetRevisions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.cat.Revisions())
}

func (s *Server) handleGetResources(w http.ResponseWriter, r *http.Request) {
	q, err := catalog.QueryFromFilter(s.filterFromRequest(r))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	resources, err := s.cat.Search(q)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resources)
}

func (s *Server) handlePutResource(w http.ResponseWriter, r *http.Request) {
	var req PutRequest
	if err := s.json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decoding put request: %w", err))
		return
	}
	op, err := s.cat.Put(&req.Resource)
	if err != nil {
		if errors.Is(err, resource.ErrMissingKind) {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, PutResponse{ID: op.ID, Op: op.Kind.String()})
}

func (s *Server) handleDelResource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("id is required"))
		return
	}
	// Resource ids begin with "/"; the route's wildcard captures what
	// follows the "/v1/resources/" prefix, so the leading slash is restored.
	op, err := s.cat.Del("/" + id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, PutResponse{ID: op.ID, Op: op.Kind.String()})
}

func (s *Server) handleDelResources(w http.ResponseWriter, r *http.Request) {
	q, err := catalog.QueryFromFilter(s.filterFromRequest(r))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	ops, err := s.cat.DelMatching(q)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ops)
}
