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
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/catalogdb/bda/catalog"
)

// handleStreamResources is GetResources' streaming sibling: it writes
// one server-sent "resource" event per match instead of buffering the
// whole response, so a large query doesn't force a client to wait for
// every record before seeing the first one.
func (s *Server) handleStreamResources(w http.ResponseWriter, r *http.Request) {
	q, err := catalog.QueryFromFilter(s.filterFromRequest(r))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	for res, streamErr := range s.cat.Stream(q) {
		if ctx.Err() != nil {
			return
		}
		if streamErr != nil {
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", streamErr.Error())
			flusher.Flush()
			return
		}
		data, err := s.json.Marshal(res)
		if err != nil {
			s.logger.Error("marshaling streamed resource", zap.Error(err))
			continue
		}
		fmt.Fprintf(w, "event: resource\ndata: %s\n\n", data)
		flusher.Flush()
	}
}
