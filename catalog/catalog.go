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

// Package catalog is the facade the server and CLI talk to: it merges
// what was, in the reference implementation, two parallel data-layer
// drafts into one path (validate/default -> diff against the prior
// record -> persist -> index), over an in-memory index.Index and a
// plain key/value store held by the Catalog itself.
package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/catalogdb/bda/bql"
	"github.com/catalogdb/bda/index"
	"github.com/catalogdb/bda/internal/jsonutil"
	"github.com/catalogdb/bda/resource"
)

// ErrLookupMiss is returned when the index names an id that the key/value
// store no longer holds a record for. The index and the store are kept
// in lockstep under the same writer lock, so this can only mean the two
// have drifted out of sync; it is always fatal, never a retry signal.
var ErrLookupMiss = errors.New("catalog: record missing for id returned by index")

// EntityID and EntityKind are re-exported from index so callers never
// need to import it directly just to name a kind.
type EntityID = index.EntityID
type EntityKind = index.EntityKind

// OpKind reports what Put or Del actually did.
type OpKind int

const (
	OpNone OpKind = iota
	OpCreate
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "none"
	}
}

// Op describes the effect a Put or Del call had.
type Op struct {
	Kind OpKind
	ID   string
	New  *resource.Resource
	Old  *resource.Resource
}

// Catalog is the in-process resource catalog: an inverted index paired
// with full-record storage, kept in lockstep under a single writer lock.
type Catalog struct {
	kv     *kvstore
	ix     *index.Index
	logger *zap.Logger

	mu    sync.RWMutex
	kinds map[EntityKind]bool
}

// New returns an empty Catalog. logger may be nil, in which case a no-op
// logger is used.
func New(logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		kv:     newKVStore(),
		ix:     index.New(),
		logger: logger,
		kinds:  make(map[EntityKind]bool),
	}
}

// Put defaults r's identity fields, derives its id and index partition
// from its own resource_kind, and either creates a new record, updates
// an existing one, or — if r is equal to the record already stored at
// that id — does nothing at all. Put owns defaulting; callers pass the
// record as the user wrote it. A resource with no Function and no
// Runtime/Container body is a SchemaError (resource.ErrMissingKind),
// surfaced before any id derivation or storage is attempted, matching
// §7's "missing resource_kind, never retried" policy.
func (c *Catalog) Put(r *resource.Resource) (Op, error) {
	resource.Defaults(r)
	kind, err := r.DottedKind()
	if err != nil {
		return Op{}, err
	}
	id, err := resource.ID(r)
	if err != nil {
		return Op{}, err
	}

	doc, err := toDoc(r)
	if err != nil {
		return Op{}, fmt.Errorf("catalog: encoding resource %s: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	old, existed := c.kv.get(id)
	if existed {
		if reflect.DeepEqual(old, r) {
			putNoopTotal.Inc()
			return Op{Kind: OpNone, ID: id}, nil
		}
		oldKind, err := old.DottedKind()
		if err != nil {
			return Op{}, fmt.Errorf("catalog: prior resource %s: %w", id, err)
		}
		oldDoc, err := toDoc(old)
		if err != nil {
			return Op{}, fmt.Errorf("catalog: encoding prior resource %s: %w", id, err)
		}
		c.ix.Remove(EntityKind(oldKind), EntityID(id), oldDoc)
	}

	c.kv.put(id, r)
	c.ix.Insert(EntityKind(kind), EntityID(id), doc)
	c.kinds[EntityKind(kind)] = true

	if existed {
		putUpdateTotal.Inc()
		c.logger.Debug("resource updated", zap.String("id", id))
		return Op{Kind: OpUpdate, ID: id, New: r, Old: old}, nil
	}
	putCreateTotal.Inc()
	c.logger.Debug("resource created", zap.String("id", id))
	return Op{Kind: OpCreate, ID: id, New: r}, nil
}

// Del removes the record at id from storage and from whichever index
// partition its own resource_kind puts it in. It is a no-op if the
// record doesn't exist.
func (c *Catalog) Del(id string) (Op, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	old, existed := c.kv.get(id)
	if !existed {
		return Op{Kind: OpNone, ID: id}, nil
	}
	kind, err := old.DottedKind()
	if err != nil {
		return Op{}, fmt.Errorf("catalog: resource %s: %w", id, err)
	}
	doc, err := toDoc(old)
	if err != nil {
		return Op{}, fmt.Errorf("catalog: encoding resource %s for delete: %w", id, err)
	}
	c.ix.Remove(EntityKind(kind), EntityID(id), doc)
	c.kv.del(id)
	delTotal.Inc()
	c.logger.Debug("resource deleted", zap.String("id", id))
	return Op{Kind: OpDelete, ID: id, Old: old}, nil
}

// Get returns the full record stored at id, if any.
func (c *Catalog) Get(id string) (*resource.Resource, bool) {
	return c.kv.get(id)
}

// Kinds returns every EntityKind a resource has ever been Put under.
func (c *Catalog) Kinds() []EntityKind {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]EntityKind, 0, len(c.kinds))
	for k := range c.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Search evaluates q against the index and returns every matching
// record, ordered by id. When q.Kinds is empty every registered kind is
// searched.
func (c *Catalog) Search(q Query) ([]*resource.Resource, error) {
	started := time.Now()
	defer func() { searchDuration.Observe(time.Since(started).Seconds()) }()

	kinds := q.Kinds
	if len(kinds) == 0 {
		kinds = c.Kinds()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	idSet := make(map[string]bool)
	for _, kind := range kinds {
		it := c.ix.Search(kind, q.Ast)
		for {
			id, ok := it.Next()
			if !ok {
				break
			}
			idSet[string(id)] = true
		}
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*resource.Resource, 0, len(ids))
	for _, id := range ids {
		r, ok := c.kv.get(id)
		if !ok {
			c.logger.Error("index named an id with no stored record", zap.String("id", id))
			return nil, fmt.Errorf("%w: %s", ErrLookupMiss, id)
		}
		out = append(out, r)
	}
	return out, nil
}

// Values returns every distinct value currently stored at (kind, field),
// ascending under the bql value order.
func (c *Catalog) Values(kind EntityKind, field string) []bql.Value {
	return c.ix.Values(kind, field)
}

// Namespaces returns every distinct namespace across every registered
// kind, matching §6's GetNamespaces operation.
func (c *Catalog) Namespaces() []string {
	return c.distinctStrings(".namespace")
}

// Revisions returns every distinct version across every registered
// kind, matching §6's GetRevisions operation.
func (c *Catalog) Revisions() []string {
	return c.distinctStrings(".version")
}

func (c *Catalog) distinctStrings(field string) []string {
	seen := make(map[string]bool)
	for _, kind := range c.Kinds() {
		for _, v := range c.ix.Values(kind, field) {
			if v.Kind() == bql.KindText {
				seen[v.Str()] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// DelMatching deletes every record matching q and returns the ops
// performed, matching §6's DelResources(filter) operation.
func (c *Catalog) DelMatching(q Query) ([]Op, error) {
	matches, err := c.Search(q)
	if err != nil {
		return nil, err
	}
	ops := make([]Op, 0, len(matches))
	for _, r := range matches {
		id, err := resource.ID(r)
		if err != nil {
			return ops, err
		}
		op, err := c.Del(id)
		if err != nil {
			return ops, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Stream evaluates q and yields each matching record one at a time,
// for the server's SSE handler to forward to the client incrementally
// instead of buffering the whole response.
func (c *Catalog) Stream(q Query) func(yield func(*resource.Resource, error) bool) {
	return func(yield func(*resource.Resource, error) bool) {
		matches, err := c.Search(q)
		if err != nil {
			yield(nil, err)
			return
		}
		for _, r := range matches {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// toDoc renders r as the generic document tree flatten.Values/Fields
// walk: a round trip through the wire JSON encoding, which is also what
// guarantees the indexed view of a record matches exactly what a client
// would see reading it back over the network.
func toDoc(r *resource.Resource) (any, error) {
	data, err := jsonutil.Marshal(r)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := jsonutil.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
