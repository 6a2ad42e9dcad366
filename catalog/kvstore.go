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

package catalog

import (
	"sync"

	"github.com/catalogdb/bda/resource"
)

// kvstore holds the full resource body for every id the catalog knows
// about. The index only ever stores ids and flattened field/value
// bookkeeping; full-record retrieval is always a kvstore lookup, mirroring
// how the reference datastore pairs an index with a plain key/value
// store rather than keeping documents inside the index itself.
type kvstore struct {
	mu   sync.RWMutex
	data map[string]*resource.Resource
}

func newKVStore() *kvstore {
	return &kvstore{data: make(map[string]*resource.Resource)}
}

func (s *kvstore) get(id string) (*resource.Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.data[id]
	return r, ok
}

func (s *kvstore) put(id string, r *resource.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = r
}

func (s *kvstore) del(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}
